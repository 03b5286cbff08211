// Package registry holds the process-wide session and room registries.
// Both are owned by the event loop and mutated only from that goroutine,
// so neither carries a lock.
package registry

import (
	"fmt"

	"github.com/arcadebit/tictactoe-server/internal/entity"
)

// SessionRegistry maps live connections to authenticated identities.
// An identity is bound once per connection and is immutable until the
// connection goes away.
type SessionRegistry struct {
	identities map[entity.ConnID]string
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		identities: make(map[entity.ConnID]string),
	}
}

// Bind - associates a connection with a username. Rebinding is refused;
// identities are immutable for the connection's lifetime.
func (that *SessionRegistry) Bind(id entity.ConnID, username string) error {
	if existing, ok := that.identities[id]; ok {
		return fmt.Errorf("connection already authenticated as %q", existing)
	}

	that.identities[id] = username

	return nil
}

// Identity - returns the username bound to a connection, if any.
func (that *SessionRegistry) Identity(id entity.ConnID) (string, bool) {
	username, ok := that.identities[id]
	return username, ok
}

func (that *SessionRegistry) Remove(id entity.ConnID) {
	delete(that.identities, id)
}

func (that *SessionRegistry) Len() int {
	return len(that.identities)
}
