package server

import (
	"github.com/arcadebit/tictactoe-server/internal/entity"
)

// broadcast - delivers a message to every participant of a room, players
// first and viewers after, in one pass. A dead recipient never aborts
// delivery to the rest; its cleanup is deferred to the disconnect event
// the transport will raise.
func (that *Server) broadcast(room *entity.Room, msg string) {
	for _, id := range room.Participants() {
		c, ok := that.conns[id]
		if !ok {
			continue
		}

		that.send(c, msg)
	}
}
