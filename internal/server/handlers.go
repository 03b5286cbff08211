package server

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/arcadebit/tictactoe-server/internal/apperror"
	"github.com/arcadebit/tictactoe-server/internal/entity"
	"github.com/arcadebit/tictactoe-server/internal/protocol"
	"github.com/arcadebit/tictactoe-server/internal/tictactoe"
)

func (that *Server) handleLogin(ctx context.Context, c *client, username string, args []string) string {
	log := that.logger.With("method", "handleLogin")

	if username != "" {
		return protocol.Ack(protocol.CmdLogin, protocol.StatusLoginAlreadyAuthed)
	}

	name, password := args[0], args[1]

	err := that.auth.Login(ctx, name, password)

	switch {
	case errors.Is(err, apperror.ErrNotFound):
		return protocol.Ack(protocol.CmdLogin, protocol.StatusLoginUnknownUser)
	case errors.Is(err, apperror.ErrWrongPassword):
		return protocol.Ack(protocol.CmdLogin, protocol.StatusLoginWrongPassword)
	case err != nil:
		log.Error("login failed", "error", err)
		return protocol.BadArityReply(protocol.CmdLogin)
	}

	if err = that.sessions.Bind(c.id, name); err != nil {
		log.Error("failed to bind identity", "error", err)
		return protocol.Ack(protocol.CmdLogin, protocol.StatusLoginAlreadyAuthed)
	}

	log.Info("user logged in", "username", name, "connID", c.id)

	return protocol.Ack(protocol.CmdLogin, protocol.StatusLoginOK)
}

func (that *Server) handleRegister(ctx context.Context, c *client, _ string, args []string) string {
	log := that.logger.With("method", "handleRegister")

	name, password := args[0], args[1]

	err := that.auth.Register(ctx, name, password)

	switch {
	case errors.Is(err, apperror.ErrUserAlreadyExists):
		return protocol.Ack(protocol.CmdRegister, protocol.StatusRegisterExists)
	case err != nil:
		log.Error("register failed", "error", err)
		return protocol.BadArityReply(protocol.CmdRegister)
	}

	log.Info("user registered", "username", name, "connID", c.id)

	return protocol.Ack(protocol.CmdRegister, protocol.StatusRegisterOK)
}

func (that *Server) handleRoomList(_ context.Context, _ *client, _ string, args []string) string {
	mode, err := protocol.ParseMode(args[0])
	if err != nil {
		return protocol.Ack(protocol.CmdRoomList, protocol.StatusRoomListBadMode)
	}

	return protocol.RoomList(that.rooms.List(mode))
}

func (that *Server) handleCreate(_ context.Context, c *client, username string, args []string) string {
	log := that.logger.With("method", "handleCreate")

	if _, inRoom := that.rooms.RoomOf(c.id); inRoom {
		return protocol.Ack(protocol.CmdCreate, protocol.StatusCreateAlreadyInRoom)
	}

	room, err := that.rooms.Create(args[0])

	switch {
	case errors.Is(err, apperror.ErrEmptyRoomName):
		return protocol.Ack(protocol.CmdCreate, protocol.StatusCreateEmptyName)
	case errors.Is(err, apperror.ErrRegistryFull):
		return protocol.Ack(protocol.CmdCreate, protocol.StatusCreateRegistryFull)
	case errors.Is(err, apperror.ErrInvalidName):
		return protocol.Ack(protocol.CmdCreate, protocol.StatusCreateInvalidName)
	case errors.Is(err, apperror.ErrRoomExists):
		return protocol.Ack(protocol.CmdCreate, protocol.StatusCreateExists)
	case err != nil:
		log.Error("failed to create room", "error", err)
		return protocol.Ack(protocol.CmdCreate, protocol.StatusCreateInvalidName)
	}

	// the creator takes the first seat
	if err = that.rooms.JoinPlayer(room, c.id); err != nil {
		log.Error("failed to seat creator", "room", room.Name, "error", err)
	}

	log.Info("room created", "room", room.Name, "creator", username)

	return protocol.Ack(protocol.CmdCreate, protocol.StatusCreateOK)
}

func (that *Server) handleJoin(_ context.Context, c *client, username string, args []string) string {
	log := that.logger.With("method", "handleJoin")

	if _, inRoom := that.rooms.RoomOf(c.id); inRoom {
		return protocol.Ack(protocol.CmdJoin, protocol.StatusJoinAlreadyInRoom)
	}

	mode, err := protocol.ParseMode(args[1])
	if err != nil {
		return protocol.Ack(protocol.CmdJoin, protocol.StatusJoinBadMode)
	}

	room, ok := that.rooms.Get(args[0])
	if !ok {
		return protocol.Ack(protocol.CmdJoin, protocol.StatusJoinNoRoom)
	}

	if mode == protocol.ModeViewer {
		that.joinAsViewer(c, room)
		return ""
	}

	if err = that.rooms.JoinPlayer(room, c.id); err != nil {
		return protocol.Ack(protocol.CmdJoin, protocol.StatusJoinFull)
	}

	// the ack must reach the joiner before any BEGIN push
	that.send(c, protocol.Ack(protocol.CmdJoin, protocol.StatusJoinOK))

	log.Info("player joined room", "room", room.Name, "username", username)

	if len(room.Players) == entity.MaxPlayers {
		that.startGame(room)
	}

	return ""
}

// joinAsViewer - always succeeds; a viewer arriving mid-game additionally
// gets a private snapshot of who is to move.
func (that *Server) joinAsViewer(c *client, room *entity.Room) {
	if err := that.rooms.JoinViewer(room, c.id); err != nil {
		that.send(c, protocol.Ack(protocol.CmdJoin, protocol.StatusJoinAlreadyInRoom))
		return
	}

	that.send(c, protocol.Ack(protocol.CmdJoin, protocol.StatusJoinOK))

	if room.IsPlaying() {
		mover := that.identity(room.Turn)
		opponentID, _ := room.Opponent(room.Turn)
		that.send(c, protocol.InProgress(mover, that.identity(opponentID)))
	}
}

// startGame - flips a full room to playing; player 1 holds X and moves
// first.
func (that *Server) startGame(room *entity.Room) {
	log := that.logger.With("method", "startGame")

	room.Status = entity.StatusPlaying
	room.Turn = room.Players[0]

	player1 := that.identity(room.Players[0])
	player2 := that.identity(room.Players[1])

	that.broadcast(room, protocol.Begin(player1, player2))

	log.Info("game started", "room", room.Name, "player1", player1, "player2", player2)
}

func (that *Server) handlePlace(_ context.Context, c *client, _ string, args []string) string {
	room, _ := that.rooms.RoomOf(c.id)

	x, errX := strconv.Atoi(strings.TrimSpace(args[0]))
	y, errY := strconv.Atoi(strings.TrimSpace(args[1]))
	if errX != nil || errY != nil {
		return protocol.Ack(protocol.CmdPlace, protocol.StatusPlaceBadArgs)
	}

	err := tictactoe.MakeTurn(room, c.id, x, y)

	switch {
	case errors.Is(err, apperror.ErrGameIsNotStarted):
		// placements before the game begins are silently ignored
		return ""
	case errors.Is(err, apperror.ErrNotYourTurn):
		return protocol.Ack(protocol.CmdPlace, protocol.StatusPlaceNotYourTurn)
	case errors.Is(err, apperror.ErrCellOccupied):
		return protocol.Ack(protocol.CmdPlace, protocol.StatusPlaceOccupied)
	case err != nil:
		return protocol.Ack(protocol.CmdPlace, protocol.StatusPlaceBadArgs)
	}

	if room.IsEnded() {
		that.finishGame(room)
		return ""
	}

	that.broadcast(room, protocol.BoardStatus(room.Board.Encode()))

	return ""
}

// finishGame - broadcasts the terminal GAMEEND for a won or drawn board
// and deletes the room. Deletion guarantees GAMEEND goes out exactly once.
func (that *Server) finishGame(room *entity.Room) {
	log := that.logger.With("method", "finishGame")

	board := room.Board.Encode()

	if room.Winner == entity.MarkTie {
		that.broadcast(room, protocol.GameEndDraw(board))
		log.Info("game drawn", "room", room.Name)
	} else {
		winnerID, _ := room.PlayerByMark(room.Winner)
		winner := that.identity(winnerID)
		that.broadcast(room, protocol.GameEndWin(board, winner))
		log.Info("game won", "room", room.Name, "winner", winner)
	}

	that.rooms.Delete(room)
}

func (that *Server) handleForfeit(_ context.Context, c *client, _ string, _ []string) string {
	room, _ := that.rooms.RoomOf(c.id)

	if !room.IsPlaying() || !room.HasPlayer(c.id) {
		return ""
	}

	that.forfeit(room, c.id)

	return ""
}

// forfeit - ends a live game in the opponent's favour and deletes the
// room. Shared by the FORFEIT command and the disconnect transition.
func (that *Server) forfeit(room *entity.Room, loser entity.ConnID) {
	log := that.logger.With("method", "forfeit")

	opponentID, _ := room.Opponent(loser)
	winner := that.identity(opponentID)

	room.Status = entity.StatusEnded
	room.Turn = 0

	that.broadcast(room, protocol.GameEndForfeit(room.Board.Encode(), winner))
	that.rooms.Delete(room)

	log.Info("game forfeited", "room", room.Name, "winner", winner)
}

// handleDeparture - the disconnect transition: a player of a live game
// forfeits it before leaving; everyone else just leaves their room.
func (that *Server) handleDeparture(c *client) {
	room, ok := that.rooms.RoomOf(c.id)
	if !ok {
		return
	}

	if room.IsPlaying() && room.HasPlayer(c.id) {
		that.forfeit(room, c.id)
		return
	}

	that.rooms.Leave(c.id)
}
