package registry

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcadebit/tictactoe-server/internal/apperror"
	"github.com/arcadebit/tictactoe-server/internal/entity"
	"github.com/arcadebit/tictactoe-server/internal/protocol"
)

func TestRoomRegistry_Create(t *testing.T) {
	t.Run("Creates a waiting room with a valid name", func(t *testing.T) {
		// Given: an empty registry
		rooms := NewRoomRegistry()

		// When: creating a room
		room, err := rooms.Create("arena")

		// Then: the room exists, empty and waiting
		require.NoError(t, err)
		assert.True(t, room.IsWaiting())
		assert.Equal(t, 1, rooms.Len())
	})

	t.Run("Trims surrounding whitespace from the name", func(t *testing.T) {
		// Given: an empty registry
		rooms := NewRoomRegistry()

		// When: creating with a padded name
		room, err := rooms.Create("  arena  ")

		// Then: the room is stored under the trimmed name
		require.NoError(t, err)
		assert.Equal(t, "arena", room.Name)
	})

	t.Run("Rejects an empty name", func(t *testing.T) {
		rooms := NewRoomRegistry()

		_, err := rooms.Create("   ")

		require.ErrorIs(t, err, apperror.ErrEmptyRoomName)
	})

	t.Run("Rejects a name over twenty characters", func(t *testing.T) {
		rooms := NewRoomRegistry()

		_, err := rooms.Create("this room name is far too long")

		require.ErrorIs(t, err, apperror.ErrInvalidName)
	})

	t.Run("Rejects names outside the allowed charset", func(t *testing.T) {
		rooms := NewRoomRegistry()

		for _, name := range []string{"no:colons", "no/slash", "no!bang", "ünïcode"} {
			_, err := rooms.Create(name)
			assert.ErrorIs(t, err, apperror.ErrInvalidName, "name %q", name)
		}
	})

	t.Run("Accepts letters, digits, spaces, hyphens, underscores", func(t *testing.T) {
		rooms := NewRoomRegistry()

		for _, name := range []string{"arena", "Arena 2", "the-pit", "under_score", "A1 b2-C_3"} {
			_, err := rooms.Create(name)
			assert.NoError(t, err, "name %q", name)
		}
	})

	t.Run("Rejects a duplicate name", func(t *testing.T) {
		// Given: a registry that already holds the room
		rooms := NewRoomRegistry()
		_, err := rooms.Create("arena")
		require.NoError(t, err)

		// When: creating it again
		_, err = rooms.Create("arena")

		// Then: the create is refused
		require.ErrorIs(t, err, apperror.ErrRoomExists)
	})

	t.Run("Validation is deterministic for the same state", func(t *testing.T) {
		// Given: a registry with one room
		rooms := NewRoomRegistry()
		_, err := rooms.Create("arena")
		require.NoError(t, err)

		// Then: repeating the same create yields the same status
		for i := 0; i < 3; i++ {
			_, err = rooms.Create("arena")
			assert.ErrorIs(t, err, apperror.ErrRoomExists)
		}
	})

	t.Run("Refuses the 257th room", func(t *testing.T) {
		// Given: a registry filled to capacity
		rooms := NewRoomRegistry()
		for i := 0; i < MaxRooms; i++ {
			_, err := rooms.Create(fmt.Sprintf("room %d", i))
			require.NoError(t, err)
		}

		// When: creating one more
		_, err := rooms.Create("one too many")

		// Then: the registry is full
		require.ErrorIs(t, err, apperror.ErrRegistryFull)
	})
}

func TestRoomRegistry_Join(t *testing.T) {
	t.Run("Seats at most two players", func(t *testing.T) {
		// Given: a room with two seated players
		rooms := NewRoomRegistry()
		room, err := rooms.Create("arena")
		require.NoError(t, err)
		require.NoError(t, rooms.JoinPlayer(room, 1))
		require.NoError(t, rooms.JoinPlayer(room, 2))

		// When: a third player tries to sit down
		err = rooms.JoinPlayer(room, 3)

		// Then: the room is full and still holds two players
		require.ErrorIs(t, err, apperror.ErrRoomFull)
		assert.Len(t, room.Players, entity.MaxPlayers)
	})

	t.Run("Refuses a connection that is already in a room", func(t *testing.T) {
		// Given: a player seated in one room and a second room
		rooms := NewRoomRegistry()
		first, err := rooms.Create("first")
		require.NoError(t, err)
		second, err := rooms.Create("second")
		require.NoError(t, err)
		require.NoError(t, rooms.JoinPlayer(first, 1))

		// When: the same connection joins elsewhere
		err = rooms.JoinPlayer(second, 1)

		// Then: the join is refused either way
		require.ErrorIs(t, err, apperror.ErrAlreadyInRoom)
		assert.ErrorIs(t, rooms.JoinViewer(second, 1), apperror.ErrAlreadyInRoom)
	})

	t.Run("Viewers always get in and are indexed", func(t *testing.T) {
		// Given: a room
		rooms := NewRoomRegistry()
		room, err := rooms.Create("arena")
		require.NoError(t, err)

		// When: a viewer joins
		require.NoError(t, rooms.JoinViewer(room, 7))

		// Then: the viewer is in the set and resolvable
		found, ok := rooms.RoomOf(7)
		require.True(t, ok)
		assert.Equal(t, room, found)
	})
}

func TestRoomRegistry_Leave(t *testing.T) {
	t.Run("Reaps an abandoned waiting room", func(t *testing.T) {
		// Given: a waiting room with one player and one viewer
		rooms := NewRoomRegistry()
		room, err := rooms.Create("arena")
		require.NoError(t, err)
		require.NoError(t, rooms.JoinPlayer(room, 1))
		require.NoError(t, rooms.JoinViewer(room, 7))

		// When: the only player leaves
		rooms.Leave(1)

		// Then: the room is gone and the viewer's association cleared
		assert.Equal(t, 0, rooms.Len())
		_, ok := rooms.RoomOf(7)
		assert.False(t, ok)
	})

	t.Run("A leaving viewer does not reap the room", func(t *testing.T) {
		// Given: a waiting room with a player and a viewer
		rooms := NewRoomRegistry()
		room, err := rooms.Create("arena")
		require.NoError(t, err)
		require.NoError(t, rooms.JoinPlayer(room, 1))
		require.NoError(t, rooms.JoinViewer(room, 7))

		// When: the viewer leaves
		rooms.Leave(7)

		// Then: the room survives with its player
		assert.Equal(t, 1, rooms.Len())
		assert.Len(t, room.Players, 1)
		assert.Empty(t, room.Viewers)
	})
}

func TestRoomRegistry_Delete(t *testing.T) {
	// Given: a room with players and a viewer
	rooms := NewRoomRegistry()
	room, err := rooms.Create("arena")
	require.NoError(t, err)
	require.NoError(t, rooms.JoinPlayer(room, 1))
	require.NoError(t, rooms.JoinPlayer(room, 2))
	require.NoError(t, rooms.JoinViewer(room, 7))

	// When: the room is deleted
	rooms.Delete(room)

	// Then: nobody resolves to it any more
	assert.Equal(t, 0, rooms.Len())
	for _, id := range []entity.ConnID{1, 2, 7} {
		_, ok := rooms.RoomOf(id)
		assert.False(t, ok, "conn %d", id)
	}
}

func TestRoomRegistry_List(t *testing.T) {
	// Given: one open room and one full room
	rooms := NewRoomRegistry()
	open, err := rooms.Create("open")
	require.NoError(t, err)
	full, err := rooms.Create("full")
	require.NoError(t, err)
	require.NoError(t, rooms.JoinPlayer(full, 1))
	require.NoError(t, rooms.JoinPlayer(full, 2))
	require.NoError(t, rooms.JoinPlayer(open, 3))

	t.Run("PLAYER mode hides full rooms", func(t *testing.T) {
		assert.Equal(t, []string{"open"}, rooms.List(protocol.ModePlayer))
	})

	t.Run("VIEWER mode lists everything, sorted", func(t *testing.T) {
		assert.Equal(t, []string{"full", "open"}, rooms.List(protocol.ModeViewer))
	})

	t.Run("Listing is idempotent without intervening changes", func(t *testing.T) {
		// When: listing twice with no room changes
		first := rooms.List(protocol.ModeViewer)
		second := rooms.List(protocol.ModeViewer)

		// Then: the lists are identical
		assert.Equal(t, first, second)
	})
}
