package client

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/arcadebit/tictactoe-server/internal/protocol"
)

// Client is a thin interactive front end over the wire protocol: one
// goroutine renders everything the server pushes, the main loop turns
// typed commands into frames.
type Client struct {
	addr    string
	conn    net.Conn
	display *Display
}

func New(addr string) *Client {
	return &Client{
		addr:    addr,
		display: NewDisplay(),
	}
}

// Run - connects, starts the render pump, and drives the prompt loop
// until EOF or "quit".
func (that *Client) Run() error {
	conn, err := net.Dial("tcp", that.addr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", that.addr, err)
	}
	that.conn = conn

	defer conn.Close()

	that.display.PrintBanner()
	that.display.PrintInfo("Connected to %s. Type 'help' for commands.", that.addr)

	done := make(chan struct{})
	go func() {
		that.readPump()
		close(done)
	}()

	input := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("> ")

		if !input.Scan() {
			return nil
		}

		line := strings.TrimSpace(input.Text())
		if line == "" {
			continue
		}

		frame, quit := that.buildFrame(line)
		if quit {
			return nil
		}

		if frame == "" {
			continue
		}

		if _, err = fmt.Fprintf(conn, "%s\n", frame); err != nil {
			return fmt.Errorf("failed to send: %w", err)
		}

		select {
		case <-done:
			that.display.PrintError("server closed the connection")
			return nil
		default:
		}
	}
}

// buildFrame - maps one typed command to a protocol frame. The second
// return value reports a quit request.
func (that *Client) buildFrame(line string) (string, bool) {
	fields := strings.Fields(line)
	command := strings.ToLower(fields[0])
	args := fields[1:]

	switch command {
	case "help":
		that.printHelp()
		return "", false
	case "quit", "exit":
		return "", true
	case "login", "register":
		if len(args) != 2 {
			that.display.PrintError("usage: %s <username> <password>", command)
			return "", false
		}
		return fmt.Sprintf("%s:%s:%s", strings.ToUpper(command), args[0], args[1]), false
	case "rooms":
		mode := protocol.ModePlayer
		if len(args) == 1 {
			mode = strings.ToUpper(args[0])
		}
		return fmt.Sprintf("%s:%s", protocol.CmdRoomList, mode), false
	case "create":
		if len(args) < 1 {
			that.display.PrintError("usage: create <room name>")
			return "", false
		}
		return fmt.Sprintf("%s:%s", protocol.CmdCreate, strings.Join(args, " ")), false
	case "join", "watch":
		if len(args) < 1 {
			that.display.PrintError("usage: %s <room name>", command)
			return "", false
		}
		mode := protocol.ModePlayer
		if command == "watch" {
			mode = protocol.ModeViewer
		}
		return fmt.Sprintf("%s:%s:%s", protocol.CmdJoin, strings.Join(args, " "), mode), false
	case "place":
		if len(args) != 2 {
			that.display.PrintError("usage: place <x> <y>  (0-2)")
			return "", false
		}
		return fmt.Sprintf("%s:%s:%s", protocol.CmdPlace, args[0], args[1]), false
	case "forfeit":
		return string(protocol.CmdForfeit), false
	default:
		that.display.PrintError("unknown command %q, type 'help'", command)
		return "", false
	}
}

func (that *Client) printHelp() {
	that.display.PrintInfo(`commands:
  login <user> <pass>     authenticate
  register <user> <pass>  create an account
  rooms [player|viewer]   list rooms
  create <room name>      create a room and wait for an opponent
  join <room name>        join a room as a player
  watch <room name>       join a room as a viewer
  place <x> <y>           place your mark (0-2)
  forfeit                 concede the game
  quit                    leave`)
}

// readPump - renders every line the server sends until the connection
// drops.
func (that *Client) readPump() {
	scanner := bufio.NewScanner(that.conn)

	for scanner.Scan() {
		that.render(scanner.Text())
	}
}

// render - pretty-prints one server message; unrecognized frames are shown
// raw so nothing is silently dropped.
func (that *Client) render(raw string) {
	fields := strings.Split(raw, protocol.Separator)

	switch fields[0] {
	case "BEGIN":
		if len(fields) == 3 {
			that.display.PrintGame("game on: %s (X) vs %s (O), %s moves first", fields[1], fields[2], fields[1])
		}
	case "BOARDSTATUS":
		if len(fields) == 2 {
			that.display.PrintBoard(fields[1])
		}
	case "GAMEEND":
		that.renderGameEnd(fields)
	case "INPROGRESS":
		if len(fields) == 3 {
			that.display.PrintGame("match in progress: %s to move against %s", fields[1], fields[2])
		}
	case "BADAUTH":
		that.display.PrintError("you must be logged in to do that")
	case "NOROOM":
		that.display.PrintError("you are not in a room")
	default:
		that.renderAck(raw, fields)
	}
}

func (that *Client) renderGameEnd(fields []string) {
	if len(fields) < 3 {
		that.display.PrintError("malformed game end: %q", strings.Join(fields, protocol.Separator))
		return
	}

	that.display.PrintBoard(fields[1])

	switch fields[2] {
	case "0":
		that.display.PrintWin("%s wins!", fields[3])
	case "1":
		that.display.PrintGame("it's a draw")
	case "2":
		that.display.PrintLose("forfeit: %s wins", fields[3])
	}
}

// renderAck - maps ACKSTATUS replies to human-readable text, matching the
// status tables of the protocol.
func (that *Client) renderAck(raw string, fields []string) {
	if len(fields) < 3 || fields[1] != "ACKSTATUS" {
		that.display.PrintServer("%s", raw)
		return
	}

	command, status := fields[0], fields[2]

	messages := map[string]map[string]string{
		"LOGIN": {
			"0": "welcome!",
			"1": "no such user",
			"2": "wrong password",
			"3": "bad login arguments",
			"4": "already logged in",
		},
		"REGISTER": {
			"0": "account created",
			"1": "user already exists",
			"2": "bad register arguments",
		},
		"CREATE": {
			"0": "room created, waiting for an opponent...",
			"1": "invalid room name",
			"2": "room already exists",
			"3": "server is full (256 rooms)",
			"4": "room name must not be empty",
			"5": "leave your current room first",
		},
		"JOIN": {
			"0": "joined",
			"1": "no such room",
			"2": "room is full",
			"3": "bad join mode",
			"4": "leave your current room first",
		},
		"PLACE": {
			"4": "bad coordinates",
			"5": "not your turn",
			"6": "that cell is taken",
		},
	}

	if byStatus, ok := messages[command]; ok {
		if text, ok := byStatus[status]; ok {
			if status == "0" {
				that.display.PrintServer("%s", text)
			} else {
				that.display.PrintError("%s", text)
			}
			return
		}
	}

	if command == "ROOMLIST" && status == "0" {
		rooms := ""
		if len(fields) > 3 {
			rooms = fields[3]
		}
		if rooms == "" {
			that.display.PrintServer("no rooms available")
		} else {
			that.display.PrintServer("rooms: %s", rooms)
		}
		return
	}

	that.display.PrintServer("%s", raw)
}
