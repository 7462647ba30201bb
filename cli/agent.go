package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/context"

	"github.com/gridgame/tictactoe/ai"
	"github.com/gridgame/tictactoe/board"
	"github.com/gridgame/tictactoe/notation"
)

type Kind byte

const (
	Human Kind = iota
	Computer
)

func (k Kind) String() string {
	if k == Computer {
		return "computer"
	}
	return "human"
}

// Agent is a participant in a game. Humans answer from a reader,
// computers from an ai.Player.
type Agent struct {
	Kind Kind
	Name string
	Mark board.Mark

	out io.Writer
	in  *bufio.Reader
	ai  ai.Player

	// scores, if set, renders the running score for the "scores"
	// command.
	scores func() string
}

func NewHuman(name string, mark board.Mark, out io.Writer, in *bufio.Reader) *Agent {
	return &Agent{Kind: Human, Name: name, Mark: mark, out: out, in: in}
}

func NewComputer(name string, mark board.Mark, p ai.Player) *Agent {
	return &Agent{Kind: Computer, Name: name, Mark: mark, ai: p}
}

// DecideMove returns a legal cell for a.Mark on b.
func (a *Agent) DecideMove(ctx context.Context, b *board.Board) (board.Cell, error) {
	switch a.Kind {
	case Human:
		return a.readMove(b)
	case Computer:
		return a.ai.GetMove(ctx, b, a.Mark)
	}
	return board.NoCell, fmt.Errorf("agent %q: bad kind %d", a.Name, a.Kind)
}

func (a *Agent) readMove(b *board.Board) (board.Cell, error) {
	for {
		fmt.Fprintf(a.out, "%s (%s)> ", a.Name, b.Symbol(a.Mark))
		line, err := a.in.ReadString('\n')
		line = strings.TrimSpace(line)
		if err != nil && line == "" {
			return board.NoCell, err
		}
		if isScoresCommand(line) {
			if a.scores != nil {
				fmt.Fprintln(a.out, "The game score:", a.scores())
			}
			continue
		}
		c, err := notation.ParseCell(line, b.Size())
		if err == nil {
			err = b.Validate(c)
		}
		if err != nil {
			fmt.Fprintln(a.out, "invalid move:", err)
			continue
		}
		return c, nil
	}
}

func isScoresCommand(s string) bool {
	return s == "scores" || s == "showScores"
}
