package protocol

import (
	"fmt"
	"strings"
)

// Standalone replies.
const (
	BadAuth = "BADAUTH"
	NoRoom  = "NOROOM"
	Invalid = "INVALID COMMAND INPUT"
)

// LOGIN ack statuses.
const (
	StatusLoginOK            = 0
	StatusLoginUnknownUser   = 1
	StatusLoginWrongPassword = 2
	StatusLoginBadArgs       = 3
	StatusLoginAlreadyAuthed = 4
)

// REGISTER ack statuses.
const (
	StatusRegisterOK      = 0
	StatusRegisterExists  = 1
	StatusRegisterBadArgs = 2
)

// ROOMLIST ack statuses.
const (
	StatusRoomListOK      = 0
	StatusRoomListBadMode = 1
)

// CREATE ack statuses.
const (
	StatusCreateOK            = 0
	StatusCreateInvalidName   = 1
	StatusCreateExists        = 2
	StatusCreateRegistryFull  = 3
	StatusCreateEmptyName     = 4
	StatusCreateAlreadyInRoom = 5
)

// JOIN ack statuses.
const (
	StatusJoinOK            = 0
	StatusJoinNoRoom        = 1
	StatusJoinFull          = 2
	StatusJoinBadMode       = 3
	StatusJoinAlreadyInRoom = 4
)

// PLACE ack statuses. Legal placements have no direct reply.
const (
	StatusPlaceBadArgs     = 4
	StatusPlaceNotYourTurn = 5
	StatusPlaceOccupied    = 6
)

// Game end result codes carried by GAMEEND.
const (
	ResultWin     = 0
	ResultDraw    = 1
	ResultForfeit = 2
)

// Ack - builds "<CMD>:ACKSTATUS:<code>".
func Ack(cmd Command, status int) string {
	return fmt.Sprintf("%s:ACKSTATUS:%d", cmd, status)
}

// RoomList - builds the ROOMLIST success reply with comma-separated names.
func RoomList(names []string) string {
	return fmt.Sprintf("%s:%s", Ack(CmdRoomList, StatusRoomListOK), strings.Join(names, ","))
}

// Begin - announces game start; player1 moves first.
func Begin(player1, player2 string) string {
	return fmt.Sprintf("BEGIN:%s:%s", player1, player2)
}

// BoardStatus - carries the encoded board after a non-terminal placement.
func BoardStatus(board string) string {
	return "BOARDSTATUS:" + board
}

// GameEndWin - terminal broadcast for a win.
func GameEndWin(board, winner string) string {
	return fmt.Sprintf("GAMEEND:%s:%d:%s", board, ResultWin, winner)
}

// GameEndDraw - terminal broadcast for a draw; no winner field.
func GameEndDraw(board string) string {
	return fmt.Sprintf("GAMEEND:%s:%d", board, ResultDraw)
}

// GameEndForfeit - terminal broadcast when a player forfeits or disconnects
// mid-game; the remaining player wins.
func GameEndForfeit(board, winner string) string {
	return fmt.Sprintf("GAMEEND:%s:%d:%s", board, ResultForfeit, winner)
}

// InProgress - sent only to a viewer joining mid-game.
func InProgress(currentMover, opponent string) string {
	return fmt.Sprintf("INPROGRESS:%s:%s", currentMover, opponent)
}

// BadArityReply - returns the command-specific "bad arguments" status
// reply for a malformed frame.
func BadArityReply(cmd Command) string {
	switch cmd {
	case CmdLogin:
		return Ack(CmdLogin, StatusLoginBadArgs)
	case CmdRegister:
		return Ack(CmdRegister, StatusRegisterBadArgs)
	case CmdRoomList:
		return Ack(CmdRoomList, StatusRoomListBadMode)
	case CmdCreate:
		return Ack(CmdCreate, StatusCreateEmptyName)
	case CmdJoin:
		return Ack(CmdJoin, StatusJoinBadMode)
	case CmdPlace:
		return Ack(CmdPlace, StatusPlaceBadArgs)
	default:
		return Invalid
	}
}
