package notation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gridgame/tictactoe/board"
)

const emptySquare = '.'

// ParsePosition reads a position written as slash-separated rows, one
// character per cell, followed by the symbol of the side to move:
//
//	x.o/.x./..o o
//
// The board size is the number of rows; the alphabet in cfg decides
// which characters are marks. Symbols must be single characters.
func ParsePosition(s string, cfg board.Config) (*board.Board, board.Mark, error) {
	words := strings.Fields(s)
	if len(words) != 2 {
		return nil, board.Empty, fmt.Errorf("%w: position: wrong number of words", ErrSyntax)
	}
	rows := strings.Split(words[0], "/")
	cfg.Size = len(rows)
	if err := cfg.Validate(); err != nil {
		return nil, board.Empty, err
	}
	b := board.New(cfg)
	alpha := b.Alphabet()
	if utf8.RuneCountInString(alpha.A) != 1 || utf8.RuneCountInString(alpha.B) != 1 {
		return nil, board.Empty, fmt.Errorf("%w: alphabet %q/%q has multi-character symbols",
			ErrSyntax, alpha.A, alpha.B)
	}

	var count [3]int
	for r, row := range rows {
		cells := []rune(row)
		if len(cells) != len(rows) {
			return nil, board.Empty, fmt.Errorf("%w: row %d has length %d", ErrSyntax, r, len(cells))
		}
		for col, ch := range cells {
			if ch == emptySquare {
				continue
			}
			m, ok := b.MarkFor(string(ch))
			if !ok {
				return nil, board.Empty, fmt.Errorf("%w: bad square %q", ErrSyntax, ch)
			}
			b.Apply(b.CellAt(r, col), m)
			count[m]++
		}
	}
	if d := count[board.MarkA] - count[board.MarkB]; d > 1 || d < -1 {
		return nil, board.Empty, fmt.Errorf("%w: unbalanced position %d/%d",
			ErrSyntax, count[board.MarkA], count[board.MarkB])
	}
	toMove, ok := b.MarkFor(words[1])
	if !ok {
		return nil, board.Empty, fmt.Errorf("%w: bad side to move %q", ErrSyntax, words[1])
	}
	return b, toMove, nil
}

func FormatPosition(b *board.Board, toMove board.Mark) string {
	var out strings.Builder
	for row := 0; row < b.Size(); row++ {
		if row != 0 {
			out.WriteByte('/')
		}
		for col := 0; col < b.Size(); col++ {
			m := b.AtCoords(row, col)
			if m == board.Empty {
				out.WriteRune(emptySquare)
			} else {
				out.WriteString(strings.ToLower(b.Symbol(m)))
			}
		}
	}
	out.WriteByte(' ')
	out.WriteString(strings.ToLower(b.Symbol(toMove)))
	return out.String()
}
