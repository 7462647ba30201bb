package board

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func playAll(t *testing.T, b *Board, moves []Move) []Outcome {
	t.Helper()
	var out []Outcome
	for _, m := range moves {
		o, err := b.Play(m.Cell, m.Mark)
		require.NoError(t, err, "play %d", m.Cell)
		out = append(out, o)
	}
	return out
}

func TestNew(t *testing.T) {
	b := New(Config{})
	assert.Equal(t, 3, b.Size())
	assert.Equal(t, 9, b.Cells())
	assert.Equal(t, DefaultAlphabet, b.Alphabet())
	assert.True(t, b.IsEmpty())
	assert.True(t, b.HasEmptyCell())
	assert.Equal(t, 0, b.MoveNumber())
	for c := Cell(1); c <= 9; c++ {
		assert.Equal(t, Empty, b.At(c))
	}

	b = New(Config{Size: 5, Alphabet: Alphabet{A: "A", B: "B"}})
	assert.Equal(t, 25, b.EmptyCount())
	assert.Equal(t, "B", b.Symbol(MarkB))
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		cfg Config
		ok  bool
	}{
		{Config{}, true},
		{Config{Size: 1}, true},
		{Config{Size: -2}, false},
		{Config{Alphabet: Alphabet{A: "X", B: ""}}, false},
		{Config{Alphabet: Alphabet{A: "x", B: "X"}}, false},
		{Config{Alphabet: Alphabet{A: "#", B: "@"}}, true},
		{Config{Alphabet: Alphabet{A: ".", B: "O"}}, false},
		{Config{Alphabet: Alphabet{A: "X", B: "/"}}, false},
		{Config{Alphabet: Alphabet{A: "X.", B: "O"}}, false},
	}
	for _, tc := range cases {
		err := tc.cfg.Validate()
		if tc.ok {
			assert.NoError(t, err, "%+v", tc.cfg)
		} else {
			assert.ErrorIs(t, err, ErrBadConfig, "%+v", tc.cfg)
		}
	}
	assert.Panics(t, func() { New(Config{Size: -1}) })
}

func TestCoords(t *testing.T) {
	b := New(Config{Size: 4})
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			c := b.CellAt(row, col)
			if c != Cell(row*4+col+1) {
				t.Errorf("CellAt(%d,%d)=%d", row, col, c)
			}
			if got := b.Coords(c); got != (Coords{row, col}) {
				t.Errorf("Coords(%d)=%v", c, got)
			}
		}
	}
}

func TestLegality(t *testing.T) {
	b := New(Config{})
	b.Apply(5, MarkA)

	for c := Cell(-1); c <= 11; c++ {
		want := c >= 1 && c <= 9 && c != 5
		assert.Equal(t, want, b.IsMoveLegal(c), "cell %d", c)
		err := b.Validate(c)
		if want {
			assert.NoError(t, err)
			continue
		}
		assert.ErrorIs(t, err, ErrInvalidMove)
		if c == 5 {
			assert.ErrorIs(t, err, ErrOccupied)
		} else {
			assert.ErrorIs(t, err, ErrOutOfRange)
		}
	}

	assert.False(t, b.IsCoordsLegal(1, 1))
	assert.True(t, b.IsCoordsLegal(0, 0))
	assert.False(t, b.IsCoordsLegal(3, 0))
	assert.False(t, b.IsCoordsLegal(0, -1))
	assert.ErrorIs(t, b.ValidateCoords(1, 1), ErrOccupied)
	assert.ErrorIs(t, b.ValidateCoords(2, 3), ErrOutOfRange)
	assert.NoError(t, b.ValidateCoords(2, 2))
}

func TestPlayRejects(t *testing.T) {
	b := New(Config{})
	_, err := b.Play(1, Empty)
	assert.ErrorIs(t, err, ErrBadMark)
	_, err = b.Play(0, MarkA)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = b.Play(1, MarkA)
	require.NoError(t, err)
	_, err = b.Play(1, MarkB)
	assert.ErrorIs(t, err, ErrOccupied)
	assert.Equal(t, 1, b.MoveNumber())
}

func TestColumnWin(t *testing.T) {
	b := New(Config{})
	outs := playAll(t, b, []Move{
		{1, MarkA}, {2, MarkB},
		{4, MarkA}, {3, MarkB},
		{7, MarkA},
	})
	assert.Equal(t, InProgress(), outs[0])
	assert.Equal(t, InProgress(), outs[2])
	assert.Equal(t, WinFor(MarkA), outs[4])
}

func TestLineWins(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4, 5} {
		var lines [][]Cell
		for i := 0; i < n; i++ {
			var row, col []Cell
			for j := 0; j < n; j++ {
				row = append(row, Cell(i*n+j+1))
				col = append(col, Cell(j*n+i+1))
			}
			lines = append(lines, row, col)
		}
		var diag, anti []Cell
		for i := 0; i < n; i++ {
			diag = append(diag, Cell(i*n+i+1))
			anti = append(anti, Cell(i*n+(n-1-i)+1))
		}
		lines = append(lines, diag, anti)

		r := rand.New(rand.NewSource(int64(n)))
		for _, line := range lines {
			order := append([]Cell(nil), line...)
			r.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
			b := New(Config{Size: n})
			for i, c := range order {
				o := b.Apply(c, MarkB)
				if i == len(order)-1 {
					assert.Equal(t, WinFor(MarkB), o, "size=%d line=%v", n, line)
				} else {
					assert.False(t, o.Over(), "size=%d line=%v after %d", n, line, i)
				}
			}
			assert.Equal(t, WinFor(MarkB), b.Evaluate())
		}
	}
}

func TestTie(t *testing.T) {
	// X:1,2,6,7,8 O:3,4,5,9
	b := New(Config{})
	outs := playAll(t, b, []Move{
		{1, MarkA}, {3, MarkB},
		{2, MarkA}, {4, MarkB},
		{6, MarkA}, {5, MarkB},
		{7, MarkA}, {9, MarkB},
		{8, MarkA},
	})
	for _, o := range outs[:len(outs)-1] {
		assert.Equal(t, Ongoing, o.Result)
	}
	assert.Equal(t, Draw(), outs[len(outs)-1])
	assert.False(t, b.HasEmptyCell())
	assert.Equal(t, Draw(), b.Evaluate())
}

func TestWinOnLastCell(t *testing.T) {
	// A full board whose final move completes a line is a win, not a tie.
	b := New(Config{})
	outs := playAll(t, b, []Move{
		{2, MarkA}, {3, MarkB},
		{6, MarkA}, {4, MarkB},
		{5, MarkA}, {8, MarkB},
		{1, MarkA}, {7, MarkB},
		{9, MarkA},
	})
	for _, o := range outs[:len(outs)-1] {
		assert.False(t, o.Over())
	}
	assert.Equal(t, WinFor(MarkA), outs[len(outs)-1])
	assert.False(t, b.HasEmptyCell())
}

func TestApplyUndo(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for trial := 0; trial < 200; trial++ {
		n := 2 + r.Intn(4)
		b := New(Config{Size: n})
		for k := r.Intn(n * n); k > 0; k-- {
			cells := b.AppendEmptyCells(nil)
			b.Apply(cells[r.Intn(len(cells))], Mark(1+r.Intn(2)))
		}
		if !b.HasEmptyCell() {
			continue
		}
		before := b.Clone()
		cells := b.AppendEmptyCells(nil)
		c := cells[r.Intn(len(cells))]
		b.Apply(c, MarkA)
		require.False(t, b.Equal(before))
		b.Undo(c)
		require.True(t, b.Equal(before))
		require.Equal(t, before.EmptyCount(), b.EmptyCount())
		require.Equal(t, before.MoveNumber(), b.MoveNumber())
	}
}

func TestUndoEmpty(t *testing.T) {
	b := New(Config{})
	b.Undo(3)
	assert.Equal(t, 9, b.EmptyCount())
	assert.Equal(t, 0, b.MoveNumber())
}

func TestEmptyCells(t *testing.T) {
	b := New(Config{})
	b.Apply(2, MarkA)
	b.Apply(5, MarkB)
	b.Apply(9, MarkA)

	var got []Cell
	for c := range b.EmptyCells() {
		got = append(got, c)
	}
	assert.Equal(t, []Cell{1, 3, 4, 6, 7, 8}, got)
	assert.Equal(t, got, b.AppendEmptyCells(nil))

	got = got[:0]
	for c := range b.EmptyCells() {
		got = append(got, c)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []Cell{1, 3}, got)

	b.Apply(1, MarkB)
	got = b.AppendEmptyCells(got[:0])
	assert.Equal(t, []Cell{3, 4, 6, 7, 8}, got)
}

func TestReset(t *testing.T) {
	b := New(Config{Size: 4})
	for c := range b.EmptyCells() {
		if c%3 == 0 {
			b.Apply(c, MarkA)
		}
	}
	require.False(t, b.IsEmpty())
	b.Reset()
	assert.True(t, b.IsEmpty())
	assert.Equal(t, 16, b.EmptyCount())
	assert.True(t, b.Equal(New(Config{Size: 4})))
}

func TestCloneIndependent(t *testing.T) {
	b := New(Config{})
	b.Apply(1, MarkA)
	c := b.Clone()
	c.Apply(2, MarkB)
	assert.Equal(t, Empty, b.At(2))
	assert.Equal(t, 8, b.EmptyCount())
	assert.Equal(t, 7, c.EmptyCount())
}

// Apply inspects only the lines through the played cell; this checks it
// against a full scan over random games.
func TestApplyMatchesEvaluate(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for trial := 0; trial < 500; trial++ {
		n := 3 + r.Intn(3)
		b := New(Config{Size: n})
		m := MarkA
		for {
			cells := b.AppendEmptyCells(nil)
			o := b.Apply(cells[r.Intn(len(cells))], m)
			require.Equal(t, b.Evaluate(), o)
			if o.Over() {
				break
			}
			m = m.Other()
		}
	}
}

func TestMarkFor(t *testing.T) {
	b := New(Config{})
	m, ok := b.MarkFor("x")
	assert.True(t, ok)
	assert.Equal(t, MarkA, m)
	m, ok = b.MarkFor("O")
	assert.True(t, ok)
	assert.Equal(t, MarkB, m)
	_, ok = b.MarkFor("z")
	assert.False(t, ok)
	assert.Equal(t, MarkB, MarkA.Other())
	assert.Equal(t, Empty, Empty.Other())
}

func BenchmarkApplyUndo(b *testing.B) {
	bd := New(Config{Size: 5})
	cells := bd.AppendEmptyCells(nil)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c := cells[i%len(cells)]
		bd.Apply(c, MarkA)
		bd.Undo(c)
	}
}
