package tictactoe

import (
	"errors"
	"fmt"

	"github.com/arcadebit/tictactoe-server/internal/apperror"
	"github.com/arcadebit/tictactoe-server/internal/entity"
)

var ErrInvalidCell = errors.New("invalid cell coordinates")

// MakeTurn - applies one placement by the given connection at (x, y) and
// updates the room's board, turn, and status. Exactly one cell changes per
// accepted placement; a non-empty cell is never overwritten.
func MakeTurn(room *entity.Room, id entity.ConnID, x, y int) error {
	if room.IsEnded() {
		return apperror.ErrGameFinished
	}

	if room.IsWaiting() {
		return apperror.ErrGameIsNotStarted
	}

	if err := validateMove(room, id, x, y); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	room.Board[entity.CellIndex(x, y)] = room.MarkOf(id)
	updateGameStatus(room, id)

	return nil
}

// validateMove - checks coordinates, that the sender is the active player,
// and that the target cell is free.
func validateMove(room *entity.Room, id entity.ConnID, x, y int) error {
	if x < 0 || x >= entity.BoardSize || y < 0 || y >= entity.BoardSize {
		return fmt.Errorf("%w: (%d, %d)", ErrInvalidCell, x, y)
	}

	if room.Turn != id || !room.HasPlayer(id) {
		return apperror.ErrNotYourTurn
	}

	if room.Board[entity.CellIndex(x, y)] != entity.EmptyCell {
		return apperror.ErrCellOccupied
	}

	return nil
}

// updateGameStatus - evaluates the board after a move and either ends the
// game or passes the turn to the opponent.
func updateGameStatus(room *entity.Room, id entity.ConnID) {
	switch result := room.Board.Result(); result {
	case entity.MarkX, entity.MarkO:
		room.Winner = result
		room.Status = entity.StatusEnded
		room.Turn = 0
	case entity.MarkTie:
		room.Winner = entity.MarkTie
		room.Status = entity.StatusEnded
		room.Turn = 0
	default:
		if opponent, ok := room.Opponent(id); ok {
			room.Turn = opponent
		}
	}
}
