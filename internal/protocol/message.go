// Package protocol implements the colon-separated ASCII wire protocol:
// one "COMMAND:arg1:arg2" frame per line.
package protocol

import (
	"errors"
	"fmt"
	"strings"
)

const Separator = ":"

type Command string

const (
	CmdLogin    Command = "LOGIN"
	CmdRegister Command = "REGISTER"
	CmdRoomList Command = "ROOMLIST"
	CmdCreate   Command = "CREATE"
	CmdJoin     Command = "JOIN"
	CmdPlace    Command = "PLACE"
	CmdForfeit  Command = "FORFEIT"
)

const (
	ModePlayer = "PLAYER"
	ModeViewer = "VIEWER"
)

var (
	ErrEmptyMessage   = errors.New("empty message")
	ErrUnknownCommand = errors.New("unknown command")
	ErrUnknownMode    = errors.New("unknown mode")
)

// arities maps each command to its required argument count.
var arities = map[Command]int{
	CmdLogin:    2,
	CmdRegister: 2,
	CmdRoomList: 1,
	CmdCreate:   1,
	CmdJoin:     2,
	CmdPlace:    2,
	CmdForfeit:  0,
}

// Message is one parsed inbound frame.
type Message struct {
	Command Command
	Args    []string
}

// Parse - splits a raw frame into a typed command and its arguments.
// Argument counts are validated separately so the dispatcher can reply
// with a command-specific status.
func Parse(line string) (*Message, error) {
	fields := strings.Split(line, Separator)

	command := Command(strings.TrimSpace(fields[0]))
	if command == "" {
		return nil, ErrEmptyMessage
	}

	if _, ok := arities[command]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, command)
	}

	return &Message{Command: command, Args: fields[1:]}, nil
}

// ValidArity - reports whether the message carries the argument count its
// command requires.
func (that *Message) ValidArity() bool {
	return len(that.Args) == arities[that.Command]
}

// RequiresAuth - reports whether the command needs an established identity.
func (that *Message) RequiresAuth() bool {
	return that.Command != CmdLogin && that.Command != CmdRegister
}

// ParseMode - validates a room participation mode argument.
func ParseMode(raw string) (string, error) {
	mode := strings.TrimSpace(raw)
	if mode != ModePlayer && mode != ModeViewer {
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, raw)
	}
	return mode, nil
}
