package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"

	"golang.org/x/net/context"

	"github.com/gridgame/tictactoe/ai"
	"github.com/gridgame/tictactoe/board"
)

// ComputerName is the name of the computer opponent in a one-player
// session.
const ComputerName = "The best tic-tac-toe computer"

var ErrPlayers = errors.New("enter one or two names separated by ','")

// ParsePlayers splits a comma-separated list of one or two names.
func ParsePlayers(s string) ([]string, error) {
	names := strings.Split(s, ",")
	if len(names) > 2 {
		return nil, ErrPlayers
	}
	for i := range names {
		names[i] = strings.TrimSpace(names[i])
		if names[i] == "" {
			return nil, ErrPlayers
		}
	}
	if len(names) == 2 && strings.EqualFold(names[0], names[1]) {
		return nil, fmt.Errorf("%w: names must differ", ErrPlayers)
	}
	return names, nil
}

// Lineup builds the agents for names. The first name plays MarkA; with
// a single name the computer plays MarkB.
func Lineup(names []string, out io.Writer, in *bufio.Reader, computer ai.Player) ([2]*Agent, error) {
	var agents [2]*Agent
	switch len(names) {
	case 1:
		agents[1] = NewComputer(ComputerName, board.MarkB, computer)
	case 2:
		agents[1] = NewHuman(names[1], board.MarkB, out, in)
	default:
		return agents, ErrPlayers
	}
	agents[0] = NewHuman(names[0], board.MarkA, out, in)
	return agents, nil
}

// Prompt writes text and reads lines until check accepts one. The
// scores command is answered in place when show is not nil.
func Prompt(out io.Writer, in *bufio.Reader, text string, show func() string, check func(string) error) (string, error) {
	for {
		fmt.Fprint(out, text)
		line, err := in.ReadString('\n')
		line = strings.TrimSpace(line)
		if err != nil && line == "" {
			return "", err
		}
		if show != nil && isScoresCommand(line) {
			fmt.Fprintln(out, "The game score:", show())
			continue
		}
		if err := check(line); err != nil {
			fmt.Fprintln(out, "invalid input:", err)
			continue
		}
		return line, nil
	}
}

// Session plays games between the same two agents until the user
// declines another one, then reports the overall winner.
type Session struct {
	CLI *CLI
	In  *bufio.Reader

	// WhoStarts picks the index of the first agent for each game.
	// Defaults to a coin flip from Rand.
	WhoStarts func() int
	Rand      *rand.Rand
}

func (s *Session) Run(ctx context.Context) error {
	c := s.CLI
	out := c.Out
	for _, a := range c.Agents {
		a.scores = s.ScoreLine
	}
	a, b := c.Agent(board.MarkA), c.Agent(board.MarkB)
	fmt.Fprintf(out, "\nWelcome %s and %s, let's start\n", a.Name, b.Name)
	fmt.Fprintf(out, "%s you will be %q and %s will be %q\n",
		a.Name, c.Board.Symbol(a.Mark), b.Name, c.Board.Symbol(b.Mark))
	fmt.Fprintln(out, "Note that any time during the games you can enter showScores to see the score")

	for {
		c.First = s.whoStarts()
		fmt.Fprintf(out, "%s you will start!\n", c.Agents[c.First].Name)
		if _, err := c.Play(ctx); err != nil {
			return err
		}
		again, err := Prompt(out, s.In, "Want to play another game? (y/n): ", s.ScoreLine, yesNo)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if strings.EqualFold(again, "n") {
			break
		}
	}

	if m, ok := c.Scores.Leader(); ok {
		fmt.Fprintf(out, "%s won with score of: %d\n", c.Agent(m).Name, c.Scores.Points(m))
	} else {
		fmt.Fprintln(out, "It's a tie game!")
	}
	return nil
}

func (s *Session) ScoreLine() string {
	var names [3]string
	for _, a := range s.CLI.Agents {
		names[a.Mark] = a.Name
	}
	return s.CLI.Scores.FormatWith(names, s.CLI.style().score)
}

func (s *Session) whoStarts() int {
	if s.WhoStarts != nil {
		return s.WhoStarts()
	}
	if s.Rand == nil {
		s.Rand = rand.New(rand.NewSource(rand.Int63()))
	}
	return s.Rand.Intn(2)
}

func yesNo(s string) error {
	if strings.EqualFold(s, "y") || strings.EqualFold(s, "n") {
		return nil
	}
	return fmt.Errorf("answer y or n, not %q", s)
}
