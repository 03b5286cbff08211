package repository_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcadebit/tictactoe-server/internal/apperror"
	"github.com/arcadebit/tictactoe-server/internal/entity"
	"github.com/arcadebit/tictactoe-server/internal/repository"
	"github.com/arcadebit/tictactoe-server/testing/suite"
)

func TestRedisUser(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx, s := suite.New(t)

	repo := repository.NewRedisUserRepository(s.Storage)

	t.Run("Find returns ErrNotFound for an unknown user", func(t *testing.T) {
		// When: looking up a user that was never created
		_, err := repo.Find(ctx, "nobody")

		// Then: the sentinel comes back
		require.ErrorIs(t, err, apperror.ErrNotFound)
	})

	t.Run("Create then Find round-trips the record", func(t *testing.T) {
		// Given: a stored user
		err := repo.Create(ctx, &entity.User{Username: "alice", PasswordHash: "h1"})
		require.NoError(t, err)

		// When: finding it
		user, err := repo.Find(ctx, "alice")

		// Then: the record matches
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "h1", user.PasswordHash)
	})

	t.Run("Create refuses a duplicate username", func(t *testing.T) {
		// Given: alice already stored
		err := repo.Create(ctx, &entity.User{Username: "alice", PasswordHash: "h9"})

		// Then: the create is refused and the hash is untouched
		require.ErrorIs(t, err, apperror.ErrUserAlreadyExists)
		user, err := repo.Find(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "h1", user.PasswordHash)
	})

	t.Run("All lists every stored user", func(t *testing.T) {
		// Given: a second user
		require.NoError(t, repo.Create(ctx, &entity.User{Username: "bob", PasswordHash: "h2"}))

		// When: listing
		users, err := repo.All(ctx)

		// Then: both users are present
		require.NoError(t, err)
		assert.Len(t, users, 2)
	})
}
