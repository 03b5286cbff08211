package entity

const (
	StatusWaiting = "waiting"
	StatusPlaying = "playing"
	StatusEnded   = "ended"
)

const MaxPlayers = 2

// ConnID is an opaque handle for one live client connection. Handles are
// assigned by the accept loop and never reused within a process lifetime.
type ConnID uint64

// Room owns one game's lifecycle: an ordered pair of player connections,
// any number of viewers, the board, and whose turn it is. Rooms are owned
// exclusively by the room registry.
type Room struct {
	Name    string
	Players []ConnID
	Viewers map[ConnID]struct{}
	Board   Board
	Turn    ConnID
	Winner  string
	Status  string
}

func NewRoom(name string) *Room {
	return &Room{
		Name:    name,
		Players: make([]ConnID, 0, MaxPlayers),
		Viewers: make(map[ConnID]struct{}),
		Status:  StatusWaiting,
	}
}

func (that *Room) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Room) IsPlaying() bool {
	return that.Status == StatusPlaying
}

func (that *Room) IsEnded() bool {
	return that.Status == StatusEnded
}

func (that *Room) HasPlayer(id ConnID) bool {
	for _, player := range that.Players {
		if player == id {
			return true
		}
	}
	return false
}

// MarkOf - returns the mark assigned to a player: player 1 is X, player 2
// is O. Returns an empty string for non-players.
func (that *Room) MarkOf(id ConnID) string {
	for i, player := range that.Players {
		if player != id {
			continue
		}
		if i == 0 {
			return MarkX
		}
		return MarkO
	}
	return ""
}

// PlayerByMark - returns the connection holding the given mark.
func (that *Room) PlayerByMark(mark string) (ConnID, bool) {
	switch {
	case mark == MarkX && len(that.Players) > 0:
		return that.Players[0], true
	case mark == MarkO && len(that.Players) > 1:
		return that.Players[1], true
	default:
		return 0, false
	}
}

// Opponent - returns the other player of a two-player room.
func (that *Room) Opponent(id ConnID) (ConnID, bool) {
	if len(that.Players) != MaxPlayers {
		return 0, false
	}

	switch id {
	case that.Players[0]:
		return that.Players[1], true
	case that.Players[1]:
		return that.Players[0], true
	default:
		return 0, false
	}
}

func (that *Room) RemovePlayer(id ConnID) {
	for i, player := range that.Players {
		if player == id {
			that.Players = append(that.Players[:i], that.Players[i+1:]...)
			return
		}
	}
}

func (that *Room) RemoveViewer(id ConnID) {
	delete(that.Viewers, id)
}

// Participants - returns every connection in the room, players first.
// Broadcasts follow this order.
func (that *Room) Participants() []ConnID {
	out := make([]ConnID, 0, len(that.Players)+len(that.Viewers))
	out = append(out, that.Players...)
	for viewer := range that.Viewers {
		out = append(out, viewer)
	}
	return out
}
