package cli

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/net/context"

	"github.com/gridgame/tictactoe/board"
	"github.com/gridgame/tictactoe/score"
)

type Result struct {
	ID      uuid.UUID
	Outcome board.Outcome
	Moves   []board.Move
}

type CLI struct {
	Board  *board.Board
	Agents [2]*Agent
	// First is the index in Agents of the agent who moves first.
	First int
	Out   io.Writer
	// Style defaults to PlainStyle.
	Style *Style

	Scores      *score.Table
	Log         *zap.Logger
	MoveTimeout time.Duration
}

// Play runs one game on a reset board and records its outcome in
// c.Scores.
func (c *CLI) Play(ctx context.Context) (Result, error) {
	res := Result{ID: uuid.New()}
	log := c.Log
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.Stringer("game", res.ID))
	c.Board.Reset()
	turn := c.First
	for {
		a := c.Agents[turn]
		c.render()
		cell, err := c.decide(ctx, a)
		if err != nil {
			return res, fmt.Errorf("%s: %w", a.Name, err)
		}
		o, err := c.Board.Play(cell, a.Mark)
		if err != nil {
			log.Warn("illegal move", zap.String("agent", a.Name), zap.Error(err))
			fmt.Fprintln(c.Out, "illegal move:", err)
			if a.Kind == Computer {
				return res, fmt.Errorf("%s: %w", a.Name, err)
			}
			continue
		}
		res.Moves = append(res.Moves, board.Move{Cell: cell, Mark: a.Mark})
		log.Debug("move",
			zap.String("agent", a.Name),
			zap.Int("cell", int(cell)),
			zap.Int("ply", c.Board.MoveNumber()))
		if a.Kind == Computer {
			fmt.Fprintf(c.Out, "%s selected cell %d\n", a.Name, cell)
		}
		if o.Over() {
			res.Outcome = o
			c.render()
			c.announce(o)
			if c.Scores != nil {
				if err := c.Scores.Record(o); err != nil {
					return res, err
				}
			}
			log.Info("game over",
				zap.Stringer("outcome", o),
				zap.Int("moves", len(res.Moves)))
			return res, nil
		}
		turn = 1 - turn
	}
}

func (c *CLI) decide(ctx context.Context, a *Agent) (board.Cell, error) {
	if a.Kind == Computer && c.MoveTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.MoveTimeout)
		defer cancel()
	}
	return a.DecideMove(ctx, c.Board)
}

// Agent returns the agent playing m.
func (c *CLI) Agent(m board.Mark) *Agent {
	for _, a := range c.Agents {
		if a.Mark == m {
			return a
		}
	}
	return nil
}

func (c *CLI) announce(o board.Outcome) {
	if o.Result == board.Tie {
		fmt.Fprintln(c.Out, "It's a tie game.")
		return
	}
	fmt.Fprintf(c.Out, "%s wins!\n", c.Agent(o.Winner).Name)
}

func (c *CLI) render() {
	RenderBoard(c.style(), c.Out, c.Board)
}

func (c *CLI) style() *Style {
	if c.Style == nil {
		return &PlainStyle
	}
	return c.Style
}

// RenderBoard draws b with empty cells showing their number. Columns are
// padded to the widest uncolored cell.
func RenderBoard(s *Style, out io.Writer, b *board.Board) {
	if s == nil {
		s = &PlainStyle
	}
	plain := make([]string, b.Cells())
	width := 0
	for i := range plain {
		c := board.Cell(i + 1)
		if m := b.At(c); m == board.Empty {
			plain[i] = fmt.Sprintf("[%d]", c)
		} else {
			plain[i] = "[" + b.Symbol(m) + "]"
		}
		width = max(width, utf8.RuneCountInString(plain[i]))
	}

	fmt.Fprintln(out)
	for row := 0; row < b.Size(); row++ {
		for col := 0; col < b.Size(); col++ {
			c := b.CellAt(row, col)
			text := plain[c-1]
			if m := b.At(c); m != board.Empty {
				text = "[" + s.mark(m, b.Symbol(m)) + "]"
			}
			fmt.Fprint(out, text)
			if col < b.Size()-1 {
				fmt.Fprint(out, strings.Repeat(" ", width-utf8.RuneCountInString(plain[c-1])+1))
			}
		}
		fmt.Fprintln(out)
	}
}
