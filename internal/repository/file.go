package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/arcadebit/tictactoe-server/internal/apperror"
	"github.com/arcadebit/tictactoe-server/internal/entity"
)

// fileUser keeps the whole user database in memory and rewrites the JSON
// file in full on every registration.
type fileUser struct {
	path  string
	users []entity.User
}

// NewFileUserRepository - loads the user database from a JSON array of
// {username, password} records. A missing or malformed file is an error;
// the caller treats it as fatal at startup.
func NewFileUserRepository(path string) (UserRepository, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("can't read user database: %w", err)
	}

	var users []entity.User
	if err = json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("user database is not valid JSON: %w", err)
	}

	for _, user := range users {
		if user.Username == "" || user.PasswordHash == "" {
			return nil, fmt.Errorf("user database contains an invalid record: %+v", user)
		}
	}

	return &fileUser{path: path, users: users}, nil
}

func (that *fileUser) Find(_ context.Context, username string) (*entity.User, error) {
	for i := range that.users {
		if that.users[i].Username == username {
			user := that.users[i]
			return &user, nil
		}
	}

	return nil, apperror.ErrNotFound
}

func (that *fileUser) Create(ctx context.Context, user *entity.User) error {
	if _, err := that.Find(ctx, user.Username); err == nil {
		return apperror.ErrUserAlreadyExists
	}

	that.users = append(that.users, *user)

	if err := that.flush(); err != nil {
		// roll back the in-memory record so the store stays consistent
		// with the file
		that.users = that.users[:len(that.users)-1]
		return fmt.Errorf("can't persist user database: %w", err)
	}

	return nil
}

func (that *fileUser) All(_ context.Context) ([]entity.User, error) {
	out := make([]entity.User, len(that.users))
	copy(out, that.users)

	return out, nil
}

func (that *fileUser) flush() error {
	raw, err := json.Marshal(that.users)
	if err != nil {
		return fmt.Errorf("can't marshal user database: %w", err)
	}

	if err = os.WriteFile(that.path, raw, 0o600); err != nil {
		return fmt.Errorf("can't write user database: %w", err)
	}

	return nil
}
