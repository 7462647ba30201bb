package cli

import (
	"github.com/fatih/color"

	"github.com/gridgame/tictactoe/board"
)

// Style chooses the colors of placed marks and of each player's score,
// indexed by mark. A nil color prints plain text.
type Style struct {
	Marks  [3]*color.Color
	Scores [3]*color.Color
}

var PlainStyle = Style{}

// ColorStyle paints marks green and the scores green and blue. The color
// package already falls back to plain text when NO_COLOR is set or
// stdout is not a terminal.
var ColorStyle = Style{
	Marks:  [3]*color.Color{nil, color.New(color.FgGreen), color.New(color.FgGreen)},
	Scores: [3]*color.Color{nil, color.New(color.FgGreen), color.New(color.FgBlue)},
}

func paint(c *color.Color, s string) string {
	if c == nil {
		return s
	}
	return c.Sprint(s)
}

func (s *Style) mark(m board.Mark, text string) string {
	return paint(s.Marks[m], text)
}

func (s *Style) score(m board.Mark, text string) string {
	return paint(s.Scores[m], text)
}
