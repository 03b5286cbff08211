package repository

import (
	"context"

	"github.com/arcadebit/tictactoe-server/internal/entity"
)

// UserRepository stores account records. Implementations: a flat JSON file
// rewritten in full on every registration, and a Redis-backed store.
type UserRepository interface {
	Find(ctx context.Context, username string) (*entity.User, error)
	Create(ctx context.Context, user *entity.User) error
	All(ctx context.Context) ([]entity.User, error)
}
