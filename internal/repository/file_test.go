package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcadebit/tictactoe-server/internal/apperror"
	"github.com/arcadebit/tictactoe-server/internal/entity"
)

func writeDB(t *testing.T, users []entity.User) string {
	t.Helper()

	raw, err := json.Marshal(users)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	return path
}

func TestNewFileUserRepository(t *testing.T) {
	t.Run("Loads an existing database", func(t *testing.T) {
		// Given: a database with one record
		path := writeDB(t, []entity.User{{Username: "alice", PasswordHash: "h1"}})

		// When: opening the repository
		repo, err := NewFileUserRepository(path)
		require.NoError(t, err)

		// Then: the record is available
		user, err := repo.Find(context.Background(), "alice")
		require.NoError(t, err)
		assert.Equal(t, "h1", user.PasswordHash)
	})

	t.Run("Fails on a missing file", func(t *testing.T) {
		_, err := NewFileUserRepository(filepath.Join(t.TempDir(), "absent.json"))

		require.Error(t, err)
	})

	t.Run("Fails on malformed JSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "users.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

		_, err := NewFileUserRepository(path)

		require.Error(t, err)
	})

	t.Run("Fails on an invalid record shape", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "users.json")
		require.NoError(t, os.WriteFile(path, []byte(`[{"username":"alice"}]`), 0o600))

		_, err := NewFileUserRepository(path)

		require.Error(t, err)
	})
}

func TestFileUser_Find(t *testing.T) {
	// Given: a repository with one user
	repo, err := NewFileUserRepository(writeDB(t, []entity.User{{Username: "alice", PasswordHash: "h1"}}))
	require.NoError(t, err)

	t.Run("Returns a known user", func(t *testing.T) {
		user, err := repo.Find(context.Background(), "alice")

		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("Returns ErrNotFound for an unknown user", func(t *testing.T) {
		_, err := repo.Find(context.Background(), "mallory")

		require.ErrorIs(t, err, apperror.ErrNotFound)
	})
}

func TestFileUser_Create(t *testing.T) {
	t.Run("Persists the new record by rewriting the file", func(t *testing.T) {
		// Given: an empty database
		path := writeDB(t, []entity.User{})
		repo, err := NewFileUserRepository(path)
		require.NoError(t, err)

		// When: registering bob
		err = repo.Create(context.Background(), &entity.User{Username: "bob", PasswordHash: "h2"})
		require.NoError(t, err)

		// Then: a fresh repository over the same file sees bob
		reloaded, err := NewFileUserRepository(path)
		require.NoError(t, err)
		user, err := reloaded.Find(context.Background(), "bob")
		require.NoError(t, err)
		assert.Equal(t, "h2", user.PasswordHash)
	})

	t.Run("Refuses a duplicate username", func(t *testing.T) {
		// Given: a database that already holds alice
		repo, err := NewFileUserRepository(writeDB(t, []entity.User{{Username: "alice", PasswordHash: "h1"}}))
		require.NoError(t, err)

		// When: registering alice again
		err = repo.Create(context.Background(), &entity.User{Username: "alice", PasswordHash: "h9"})

		// Then: the create is refused and the stored hash is untouched
		require.ErrorIs(t, err, apperror.ErrUserAlreadyExists)
		user, err := repo.Find(context.Background(), "alice")
		require.NoError(t, err)
		assert.Equal(t, "h1", user.PasswordHash)
	})
}

func TestFileUser_All(t *testing.T) {
	// Given: two stored users
	repo, err := NewFileUserRepository(writeDB(t, []entity.User{
		{Username: "alice", PasswordHash: "h1"},
		{Username: "bob", PasswordHash: "h2"},
	}))
	require.NoError(t, err)

	// When: listing everything
	users, err := repo.All(context.Background())

	// Then: both records come back
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
