package ai

import (
	"errors"

	"golang.org/x/net/context"

	"github.com/gridgame/tictactoe/board"
)

// ErrIllegalState is returned when a move is requested on a board with
// no empty cell.
var ErrIllegalState = errors.New("no empty cell to play")

type Player interface {
	GetMove(ctx context.Context, b *board.Board, m board.Mark) (board.Cell, error)
}
