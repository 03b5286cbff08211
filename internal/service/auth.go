package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/arcadebit/tictactoe-server/internal/apperror"
	"github.com/arcadebit/tictactoe-server/internal/entity"
	"github.com/arcadebit/tictactoe-server/internal/repository"
)

// PasswordHasher is the password verification capability: hashing on
// registration, constant-time verification on login.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, storedHash string) bool
}

type bcryptHasher struct{}

func NewBcryptHasher() PasswordHasher {
	return &bcryptHasher{}
}

func (that *bcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hash), nil
}

func (that *bcryptHasher) Verify(password, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password)) == nil
}

// AuthService authenticates and registers accounts against the user
// repository. It distinguishes unknown users from wrong passwords so the
// protocol can surface separate statuses.
type AuthService interface {
	Login(ctx context.Context, username, password string) error
	Register(ctx context.Context, username, password string) error
}

type authService struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
}

func NewAuthService(userRepo repository.UserRepository, hasher PasswordHasher) AuthService {
	return &authService{
		userRepo: userRepo,
		hasher:   hasher,
	}
}

func (that *authService) Login(ctx context.Context, username, password string) error {
	user, err := that.userRepo.Find(ctx, username)
	if errors.Is(err, apperror.ErrNotFound) {
		return apperror.ErrNotFound
	}

	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}

	if !that.hasher.Verify(password, user.PasswordHash) {
		return apperror.ErrWrongPassword
	}

	return nil
}

func (that *authService) Register(ctx context.Context, username, password string) error {
	hash, err := that.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash credential: %w", err)
	}

	user := &entity.User{
		Username:     username,
		PasswordHash: hash,
	}

	if err = that.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, apperror.ErrUserAlreadyExists) {
			return apperror.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to store user: %w", err)
	}

	return nil
}
