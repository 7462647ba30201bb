package board

import (
	"errors"
	"fmt"
)

type Move struct {
	Cell Cell
	Mark Mark
}

var (
	ErrInvalidMove = errors.New("invalid move")
	ErrOutOfRange  = fmt.Errorf("%w: cell out of range", ErrInvalidMove)
	ErrOccupied    = fmt.Errorf("%w: cell is occupied", ErrInvalidMove)
	ErrBadMark     = errors.New("mark must be a player mark")
)

func (b *Board) IsMoveLegal(c Cell) bool {
	return b.InRange(c) && b.cells[c-1] == Empty
}

func (b *Board) IsCoordsLegal(row, col int) bool {
	n := b.cfg.Size
	return row >= 0 && row < n && col >= 0 && col < n && b.AtCoords(row, col) == Empty
}

// Validate returns nil if a mark may be placed at c. Errors satisfy
// errors.Is(err, ErrInvalidMove).
func (b *Board) Validate(c Cell) error {
	if !b.InRange(c) {
		return fmt.Errorf("%w: cell %d", ErrOutOfRange, c)
	}
	if b.cells[c-1] != Empty {
		return fmt.Errorf("%w: cell %d", ErrOccupied, c)
	}
	return nil
}

func (b *Board) ValidateCoords(row, col int) error {
	n := b.cfg.Size
	if row < 0 || row >= n || col < 0 || col >= n {
		return fmt.Errorf("%w: row %d col %d", ErrOutOfRange, row, col)
	}
	return b.Validate(b.CellAt(row, col))
}

// Apply places m at c and reports the outcome. Apply does not validate
// its arguments: c must be legal and m must be a player mark. Only the
// lines through c are examined.
func (b *Board) Apply(c Cell, m Mark) Outcome {
	i := int(c) - 1
	b.cells[i] = m
	b.empty--
	b.move++
	if b.completes(i, m) {
		return WinFor(m)
	}
	if b.empty == 0 {
		return Draw()
	}
	return InProgress()
}

// Play validates and applies a move.
func (b *Board) Play(c Cell, m Mark) (Outcome, error) {
	if !m.IsPlayer() {
		return InProgress(), ErrBadMark
	}
	if err := b.Validate(c); err != nil {
		return InProgress(), err
	}
	return b.Apply(c, m), nil
}

// Undo clears c. Undoing an empty cell is a no-op.
func (b *Board) Undo(c Cell) {
	i := int(c) - 1
	if b.cells[i] == Empty {
		return
	}
	b.cells[i] = Empty
	b.empty++
	b.move--
}

func (b *Board) completes(i int, m Mark) bool {
	n := b.cfg.Size
	row, col := i/n, i%n
	if b.line(row*n, 1, m) {
		return true
	}
	if b.line(col, n, m) {
		return true
	}
	if row == col && b.line(0, n+1, m) {
		return true
	}
	if row+col == n-1 && b.line(n-1, n-1, m) {
		return true
	}
	return false
}

// line reports whether the n cells starting at start and separated by
// stride all hold m.
func (b *Board) line(start, stride int, m Mark) bool {
	for k, i := 0, start; k < b.cfg.Size; k, i = k+1, i+stride {
		if b.cells[i] != m {
			return false
		}
	}
	return true
}
