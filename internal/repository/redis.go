package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/arcadebit/tictactoe-server/internal/apperror"
	"github.com/arcadebit/tictactoe-server/internal/entity"
)

const userKeyPrefix = "user:"

type redisUser struct {
	client *redis.Client
}

// NewRedisUserRepository - returns a user repository backed by Redis,
// keyed user:<username> with JSON values.
func NewRedisUserRepository(client *redis.Client) UserRepository {
	return &redisUser{
		client: client,
	}
}

func (that *redisUser) Find(ctx context.Context, username string) (*entity.User, error) {
	response, err := that.client.Get(ctx, userKeyPrefix+username).Result()

	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	var user entity.User
	if err = json.Unmarshal([]byte(response), &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}

	return &user, nil
}

func (that *redisUser) Create(ctx context.Context, user *entity.User) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	created, err := that.client.SetNX(ctx, userKeyPrefix+user.Username, userJSON, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to set user: %w", err)
	}

	if !created {
		return apperror.ErrUserAlreadyExists
	}

	return nil
}

func (that *redisUser) All(ctx context.Context) ([]entity.User, error) {
	var users []entity.User

	iter := that.client.Scan(ctx, 0, userKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		response, err := that.client.Get(ctx, iter.Val()).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get user: %w", err)
		}

		var user entity.User
		if err = json.Unmarshal([]byte(response), &user); err != nil {
			return nil, fmt.Errorf("failed to unmarshal user: %w", err)
		}

		users = append(users, user)
	}

	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan users: %w", err)
	}

	return users, nil
}
