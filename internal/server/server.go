// Package server implements the TCP game server: a single event loop that
// owns every registry, fed by per-connection reader goroutines and drained
// by per-connection writer goroutines. All room and session state is
// mutated only on the loop goroutine, so none of it is locked.
package server

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/arcadebit/tictactoe-server/internal/entity"
	"github.com/arcadebit/tictactoe-server/internal/protocol"
	"github.com/arcadebit/tictactoe-server/internal/registry"
	"github.com/arcadebit/tictactoe-server/internal/service"
)

const (
	// outboundBuffer bounds each connection's write queue. A peer that
	// falls this far behind is treated as dead so one slow consumer can
	// never stall the loop.
	outboundBuffer = 64

	writeTimeout = 10 * time.Second
)

type eventKind int

const (
	eventConnect eventKind = iota
	eventMessage
	eventDisconnect
)

// event is one unit of work for the loop: a new connection, one inbound
// frame, or a transport-level disconnect.
type event struct {
	kind eventKind
	id   entity.ConnID
	conn net.Conn
	line string
}

// client is the loop-side view of one live connection.
type client struct {
	id   entity.ConnID
	conn net.Conn
	out  chan string
	dead bool
}

type handlerFunc func(ctx context.Context, c *client, username string, args []string) string

type Server struct {
	logger *slog.Logger

	auth     service.AuthService
	sessions *registry.SessionRegistry
	rooms    *registry.RoomRegistry

	handlers map[protocol.Command]handlerFunc

	events chan event
	conns  map[entity.ConnID]*client
	nextID entity.ConnID
}

func New(logger *slog.Logger, auth service.AuthService) *Server {
	server := &Server{
		logger:   logger.With("component", "server"),
		auth:     auth,
		sessions: registry.NewSessionRegistry(),
		rooms:    registry.NewRoomRegistry(),
		events:   make(chan event, 256),
		conns:    make(map[entity.ConnID]*client),
	}

	server.handlers = map[protocol.Command]handlerFunc{
		protocol.CmdLogin:    server.handleLogin,
		protocol.CmdRegister: server.handleRegister,
		protocol.CmdRoomList: server.handleRoomList,
		protocol.CmdCreate:   server.handleCreate,
		protocol.CmdJoin:     server.handleJoin,
		protocol.CmdPlace:    server.handlePlace,
		protocol.CmdForfeit:  server.handleForfeit,
	}

	return server
}

// Start - listens on the given port and runs the event loop until the
// context is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	listener, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return fmt.Errorf("failed to listen on port %s: %w", port, err)
	}

	return that.Serve(ctx, listener)
}

// Serve - runs the accept loop and the event loop against an existing
// listener. Exposed separately so tests can bind to an ephemeral port.
func (that *Server) Serve(ctx context.Context, listener net.Listener) error {
	log := that.logger.With("method", "Serve")

	go func() {
		<-ctx.Done()
		if err := listener.Close(); err != nil {
			log.Error("failed to close listener", "error", err)
		}
	}()

	go that.acceptLoop(ctx, listener)

	log.Info("server started", "addr", listener.Addr().String())

	that.run(ctx)

	return nil
}

// acceptLoop - hands every accepted connection to the event loop. The loop
// alone registers it, so the connection map stays single-owner.
func (that *Server) acceptLoop(ctx context.Context, listener net.Listener) {
	log := that.logger.With("method", "acceptLoop")

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() == nil {
				log.Error("accept failed", "error", err)
			}
			return
		}

		select {
		case that.events <- event{kind: eventConnect, conn: conn}:
		case <-ctx.Done():
			_ = conn.Close()
			return
		}
	}
}

// run - the multiplexer. One event is processed to completion, including
// every broadcast it triggers, before the next is taken; that keeps all
// recipients' views of a single message consistent.
func (that *Server) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			that.shutdown()
			return
		case ev := <-that.events:
			switch ev.kind {
			case eventConnect:
				that.addClient(ev.conn)
			case eventMessage:
				that.dispatch(ctx, ev.id, ev.line)
			case eventDisconnect:
				that.removeClient(ev.id)
			}
		}
	}
}

func (that *Server) addClient(conn net.Conn) {
	that.nextID++

	c := &client{
		id:   that.nextID,
		conn: conn,
		out:  make(chan string, outboundBuffer),
	}

	that.conns[c.id] = c

	go that.readLoop(c)
	go that.writeLoop(c)

	that.logger.Info("client connected", "connID", c.id, "remote", conn.RemoteAddr().String())
}

// readLoop - turns newline-framed input into message events. A scanner
// error or EOF becomes a disconnect event; cleanup happens on the loop.
func (that *Server) readLoop(c *client) {
	scanner := bufio.NewScanner(c.conn)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		that.events <- event{kind: eventMessage, id: c.id, line: line}
	}

	that.events <- event{kind: eventDisconnect, id: c.id}
}

// writeLoop - drains the outbound queue. Messages to one connection are
// never reordered because this is the only writer.
func (that *Server) writeLoop(c *client) {
	var failed bool

	for msg := range c.out {
		if failed {
			continue
		}

		if err := c.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
			failed = true
			continue
		}

		if _, err := fmt.Fprintf(c.conn, "%s\n", msg); err != nil {
			// the read loop will surface the disconnect
			failed = true
			_ = c.conn.Close()
		}
	}
}

// send - enqueues one message without ever blocking the loop. A full queue
// marks the connection dead; it is reaped like any other disconnect.
func (that *Server) send(c *client, msg string) {
	if c.dead {
		return
	}

	select {
	case c.out <- msg:
	default:
		that.logger.Warn("outbound queue full, dropping connection", "connID", c.id)
		c.dead = true
		_ = c.conn.Close()
	}
}

// removeClient - runs the disconnect transition: a player of a live game
// forfeits it, then the connection leaves every registry.
func (that *Server) removeClient(id entity.ConnID) {
	c, ok := that.conns[id]
	if !ok {
		return
	}

	that.handleDeparture(c)

	that.sessions.Remove(id)
	delete(that.conns, id)
	close(c.out)
	_ = c.conn.Close()

	that.logger.Info("client disconnected", "connID", id)
}

func (that *Server) shutdown() {
	for id, c := range that.conns {
		delete(that.conns, id)
		close(c.out)
		_ = c.conn.Close()
	}
}

// dispatch - parses one frame, applies auth, room, and arity gates, and
// routes it to its handler. Handlers run synchronously and either return a
// direct reply or broadcast themselves.
func (that *Server) dispatch(ctx context.Context, id entity.ConnID, line string) {
	c, ok := that.conns[id]
	if !ok {
		return
	}

	msg, err := protocol.Parse(line)
	if err != nil {
		that.send(c, protocol.Invalid)
		return
	}

	username, authed := that.sessions.Identity(id)
	if msg.RequiresAuth() && !authed {
		that.send(c, protocol.BadAuth)
		return
	}

	if msg.Command == protocol.CmdPlace || msg.Command == protocol.CmdForfeit {
		if _, inRoom := that.rooms.RoomOf(id); !inRoom {
			that.send(c, protocol.NoRoom)
			return
		}
	}

	if !msg.ValidArity() {
		that.send(c, protocol.BadArityReply(msg.Command))
		return
	}

	if reply := that.handlers[msg.Command](ctx, c, username, msg.Args); reply != "" {
		that.send(c, reply)
	}
}

// identity - resolves a connection to its username for outbound messages.
func (that *Server) identity(id entity.ConnID) string {
	username, _ := that.sessions.Identity(id)
	return username
}
