package registry

import (
	"sort"
	"strings"

	"github.com/arcadebit/tictactoe-server/internal/apperror"
	"github.com/arcadebit/tictactoe-server/internal/entity"
	"github.com/arcadebit/tictactoe-server/internal/protocol"
)

const (
	MaxRooms       = 256
	MaxRoomNameLen = 20
	extraNameChars = " -_"
)

// RoomRegistry owns every live room and the connection-to-room index.
type RoomRegistry struct {
	rooms      map[string]*entity.Room
	roomByConn map[entity.ConnID]string
}

func NewRoomRegistry() *RoomRegistry {
	return &RoomRegistry{
		rooms:      make(map[string]*entity.Room),
		roomByConn: make(map[entity.ConnID]string),
	}
}

// Create - validates the room name and adds an empty waiting room.
// Validation is pure: the same name against the same registry state always
// yields the same outcome.
func (that *RoomRegistry) Create(name string) (*entity.Room, error) {
	name = strings.TrimSpace(name)

	if name == "" {
		return nil, apperror.ErrEmptyRoomName
	}

	if len(that.rooms) >= MaxRooms {
		return nil, apperror.ErrRegistryFull
	}

	if !ValidRoomName(name) {
		return nil, apperror.ErrInvalidName
	}

	if _, ok := that.rooms[name]; ok {
		return nil, apperror.ErrRoomExists
	}

	room := entity.NewRoom(name)
	that.rooms[name] = room

	return room, nil
}

// ValidRoomName - reports whether a trimmed name is within the length
// limit and restricted to letters, digits, spaces, hyphens, underscores.
func ValidRoomName(name string) bool {
	if len(name) > MaxRoomNameLen {
		return false
	}

	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case strings.ContainsRune(extraNameChars, r):
		default:
			return false
		}
	}

	return true
}

func (that *RoomRegistry) Get(name string) (*entity.Room, bool) {
	room, ok := that.rooms[strings.TrimSpace(name)]
	return room, ok
}

// RoomOf - returns the room a connection currently belongs to.
func (that *RoomRegistry) RoomOf(id entity.ConnID) (*entity.Room, bool) {
	name, ok := that.roomByConn[id]
	if !ok {
		return nil, false
	}

	room, ok := that.rooms[name]

	return room, ok
}

// JoinPlayer - seats a connection as a player. The caller decides whether
// the join starts the game.
func (that *RoomRegistry) JoinPlayer(room *entity.Room, id entity.ConnID) error {
	if _, ok := that.roomByConn[id]; ok {
		return apperror.ErrAlreadyInRoom
	}

	if len(room.Players) >= entity.MaxPlayers {
		return apperror.ErrRoomFull
	}

	room.Players = append(room.Players, id)
	that.roomByConn[id] = room.Name

	return nil
}

// JoinViewer - adds a connection to the room's viewer set.
func (that *RoomRegistry) JoinViewer(room *entity.Room, id entity.ConnID) error {
	if _, ok := that.roomByConn[id]; ok {
		return apperror.ErrAlreadyInRoom
	}

	room.Viewers[id] = struct{}{}
	that.roomByConn[id] = room.Name

	return nil
}

// Leave - detaches a connection from its room, if any. An abandoned
// waiting room with no players left is reaped together with its viewers'
// associations.
func (that *RoomRegistry) Leave(id entity.ConnID) {
	room, ok := that.RoomOf(id)
	if !ok {
		delete(that.roomByConn, id)
		return
	}

	room.RemovePlayer(id)
	room.RemoveViewer(id)
	delete(that.roomByConn, id)

	if room.IsWaiting() && len(room.Players) == 0 {
		that.Delete(room)
	}
}

// Delete - removes a room and clears every participant's association.
func (that *RoomRegistry) Delete(room *entity.Room) {
	for _, id := range room.Participants() {
		delete(that.roomByConn, id)
	}

	delete(that.rooms, room.Name)
}

// List - returns sorted room names. In PLAYER mode only rooms with an open
// seat are listed; VIEWER mode lists everything.
func (that *RoomRegistry) List(mode string) []string {
	names := make([]string, 0, len(that.rooms))

	for name, room := range that.rooms {
		if mode == protocol.ModePlayer && len(room.Players) >= entity.MaxPlayers {
			continue
		}
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

func (that *RoomRegistry) Len() int {
	return len(that.rooms)
}
