package apperror

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrWrongPassword     = errors.New("wrong password")

	ErrGameIsNotStarted = errors.New("game is not started")
	ErrGameFinished     = errors.New("game is already finished")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrCellOccupied     = errors.New("cell is already occupied")

	ErrRoomNotFound  = errors.New("room not found")
	ErrRoomFull      = errors.New("room is full")
	ErrRoomExists    = errors.New("room already exists")
	ErrRegistryFull  = errors.New("room registry is full")
	ErrEmptyRoomName = errors.New("room name is empty")
	ErrInvalidName   = errors.New("room name is invalid")
	ErrAlreadyInRoom = errors.New("connection is already in a room")
	ErrNotInRoom     = errors.New("connection is not in a room")
)
