package board

import (
	"errors"
	"fmt"
	"iter"
	"strings"
)

const DefaultSize = 3

var ErrBadConfig = errors.New("bad board config")

// ReservedSymbols are used by position notation and cannot be marks.
const ReservedSymbols = "./"

type Config struct {
	Size     int
	Alphabet Alphabet
}

func (c Config) withDefaults() Config {
	if c.Size == 0 {
		c.Size = DefaultSize
	}
	if c.Alphabet == (Alphabet{}) {
		c.Alphabet = DefaultAlphabet
	}
	return c
}

// Validate reports whether c, after defaults are applied, describes a
// playable board.
func (c Config) Validate() error {
	c = c.withDefaults()
	if c.Size < 1 {
		return fmt.Errorf("%w: size %d", ErrBadConfig, c.Size)
	}
	if c.Alphabet.A == "" || c.Alphabet.B == "" {
		return fmt.Errorf("%w: empty symbol", ErrBadConfig)
	}
	if strings.ContainsAny(c.Alphabet.A+c.Alphabet.B, ReservedSymbols) {
		return fmt.Errorf("%w: symbols %q and %q may not contain %q",
			ErrBadConfig, c.Alphabet.A, c.Alphabet.B, ReservedSymbols)
	}
	if strings.EqualFold(c.Alphabet.A, c.Alphabet.B) {
		return fmt.Errorf("%w: symbols %q and %q are not distinct",
			ErrBadConfig, c.Alphabet.A, c.Alphabet.B)
	}
	return nil
}

// Cell is a 1-based, row-major index into the grid.
type Cell int

// NoCell is returned where a cell is expected but none exists.
const NoCell Cell = 0

type Coords struct {
	Row, Col int
}

type Board struct {
	cfg   Config
	cells []Mark
	empty int
	move  int
}

// New returns an empty board. A zero Size means DefaultSize and a zero
// Alphabet means DefaultAlphabet. New panics on a config that fails
// Validate; callers taking sizes from users should validate first.
func New(cfg Config) *Board {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	b := &Board{
		cfg:   cfg,
		cells: make([]Mark, cfg.Size*cfg.Size),
	}
	b.Reset()
	return b
}

func (b *Board) Reset() {
	for i := range b.cells {
		b.cells[i] = Empty
	}
	b.empty = len(b.cells)
	b.move = 0
}

func (b *Board) Size() int {
	return b.cfg.Size
}

func (b *Board) Config() Config {
	return b.cfg
}

func (b *Board) Alphabet() Alphabet {
	return b.cfg.Alphabet
}

func (b *Board) Symbol(m Mark) string {
	return b.cfg.Alphabet.Symbol(m)
}

// MarkFor returns the player mark displayed as sym, ignoring case.
func (b *Board) MarkFor(sym string) (Mark, bool) {
	switch {
	case strings.EqualFold(sym, b.cfg.Alphabet.A):
		return MarkA, true
	case strings.EqualFold(sym, b.cfg.Alphabet.B):
		return MarkB, true
	}
	return Empty, false
}

// Cells returns the number of cells on the board.
func (b *Board) Cells() int {
	return len(b.cells)
}

func (b *Board) MoveNumber() int {
	return b.move
}

func (b *Board) EmptyCount() int {
	return b.empty
}

func (b *Board) HasEmptyCell() bool {
	return b.empty > 0
}

// IsEmpty reports whether no mark has been placed yet.
func (b *Board) IsEmpty() bool {
	return b.empty == len(b.cells)
}

func (b *Board) InRange(c Cell) bool {
	return c >= 1 && int(c) <= len(b.cells)
}

func (b *Board) At(c Cell) Mark {
	return b.cells[c-1]
}

func (b *Board) AtCoords(row, col int) Mark {
	return b.cells[row*b.cfg.Size+col]
}

func (b *Board) CellAt(row, col int) Cell {
	return Cell(row*b.cfg.Size + col + 1)
}

func (b *Board) Coords(c Cell) Coords {
	i := int(c) - 1
	return Coords{Row: i / b.cfg.Size, Col: i % b.cfg.Size}
}

// EmptyCells yields the empty cells in row-major order. The sequence
// reads the board as it is iterated, so a consumer that applies a move
// must undo it before asking for the next cell.
func (b *Board) EmptyCells() iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for i, m := range b.cells {
			if m == Empty && !yield(Cell(i+1)) {
				return
			}
		}
	}
}

// AppendEmptyCells appends the empty cells in row-major order to dst.
func (b *Board) AppendEmptyCells(dst []Cell) []Cell {
	for i, m := range b.cells {
		if m == Empty {
			dst = append(dst, Cell(i+1))
		}
	}
	return dst
}

func (b *Board) Clone() *Board {
	n := *b
	n.cells = make([]Mark, len(b.cells))
	copy(n.cells, b.cells)
	return &n
}

// Equal reports whether the two boards have the same size and the same
// occupancy everywhere.
func (b *Board) Equal(o *Board) bool {
	if b.cfg.Size != o.cfg.Size {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Evaluate scans every line of the board. It is meant for positions
// that were not built move by move; Apply already reports the outcome
// of each move it makes.
func (b *Board) Evaluate() Outcome {
	n := b.cfg.Size
	for i := 0; i < n; i++ {
		if m := b.cells[i*n]; m != Empty && b.line(i*n, 1, m) {
			return WinFor(m)
		}
		if m := b.cells[i]; m != Empty && b.line(i, n, m) {
			return WinFor(m)
		}
	}
	if m := b.cells[0]; m != Empty && b.line(0, n+1, m) {
		return WinFor(m)
	}
	if m := b.cells[n-1]; m != Empty && b.line(n-1, n-1, m) {
		return WinFor(m)
	}
	if b.empty == 0 {
		return Draw()
	}
	return InProgress()
}
