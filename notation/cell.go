package notation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gridgame/tictactoe/board"
)

var ErrSyntax = errors.New("syntax error")

// ParseCell accepts a linear index ("5"), zero-based row and column
// separated by a comma or spaces ("1,2"), or a column letter followed by
// a one-based row ("b3").
func ParseCell(s string, size int) (board.Cell, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return board.NoCell, fmt.Errorf("%w: empty cell", ErrSyntax)
	}
	if i, err := strconv.Atoi(s); err == nil {
		if i < 1 || i > size*size {
			return board.NoCell, fmt.Errorf("%w: cell %d", board.ErrOutOfRange, i)
		}
		return board.Cell(i), nil
	}
	if f := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' }); len(f) == 2 {
		row, err1 := strconv.Atoi(f[0])
		col, err2 := strconv.Atoi(f[1])
		if err1 != nil || err2 != nil {
			return board.NoCell, fmt.Errorf("%w: bad coordinates %q", ErrSyntax, s)
		}
		return coords(row, col, size)
	}
	lower := strings.ToLower(s)
	if lower[0] >= 'a' && lower[0] <= 'z' {
		row, err := strconv.Atoi(lower[1:])
		if err != nil {
			return board.NoCell, fmt.Errorf("%w: bad cell %q", ErrSyntax, s)
		}
		return coords(row-1, int(lower[0]-'a'), size)
	}
	return board.NoCell, fmt.Errorf("%w: bad cell %q", ErrSyntax, s)
}

func coords(row, col, size int) (board.Cell, error) {
	if row < 0 || row >= size || col < 0 || col >= size {
		return board.NoCell, fmt.Errorf("%w: row %d col %d", board.ErrOutOfRange, row, col)
	}
	return board.Cell(row*size + col + 1), nil
}

// FormatCell renders c as a column letter and a one-based row.
func FormatCell(c board.Cell, size int) string {
	i := int(c) - 1
	return fmt.Sprintf("%c%d", 'a'+i%size, i/size+1)
}
