package ai

import (
	"math/rand"

	"golang.org/x/net/context"

	"github.com/gridgame/tictactoe/board"
)

type RandomAI struct {
	r     *rand.Rand
	cells []board.Cell
}

func (r *RandomAI) GetMove(ctx context.Context, b *board.Board, m board.Mark) (board.Cell, error) {
	r.cells = b.AppendEmptyCells(r.cells[:0])
	if len(r.cells) == 0 {
		return board.NoCell, ErrIllegalState
	}
	return r.cells[r.r.Intn(len(r.cells))], nil
}

func NewRandom(seed int64) Player {
	return &RandomAI{
		r: rand.New(rand.NewSource(seed)),
	}
}
