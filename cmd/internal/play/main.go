package play

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/google/subcommands"
	"go.uber.org/zap"

	"github.com/gridgame/tictactoe/board"
	"github.com/gridgame/tictactoe/cli"
	"github.com/gridgame/tictactoe/cmd/internal/setup"
	"github.com/gridgame/tictactoe/config"
	"github.com/gridgame/tictactoe/score"
)

type Command struct {
	setup.Flags

	players  string
	opponent string
	size     int
	seed     int64
	color    bool
}

func (*Command) Name() string     { return "play" }
func (*Command) Synopsis() string { return "Play tic-tac-toe from the command line" }
func (*Command) Usage() string {
	return `play [flags]

Play tic-tac-toe on the command-line, against a friend or the computer.
Give one name to play the computer, two to play each other.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	c.Flags.Register(flags)
	flags.StringVar(&c.players, "players", "", "comma-separated player names (prompted if empty)")
	flags.StringVar(&c.opponent, "opponent", "minimax", "computer opponent (minimax or random)")
	flags.IntVar(&c.size, "size", 0, "board size (overrides config)")
	flags.Int64Var(&c.seed, "seed", 0, "random seed (overrides config)")
	flags.BoolVar(&c.color, "color", true, "color marks and scores on a terminal (NO_COLOR also disables)")
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, log, err := c.Load("console", func(cfg *config.Config) {
		if c.size != 0 {
			cfg.Board.Size = c.size
		}
		if c.seed != 0 {
			cfg.AI.Seed = c.seed
		}
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	defer log.Sync()

	err = c.run(ctx, cfg, log, bufio.NewReader(os.Stdin), os.Stdout)
	if err != nil && !errors.Is(err, io.EOF) {
		log.Error("play", zap.Error(err))
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *Command) run(ctx context.Context, cfg *config.Config, log *zap.Logger, in *bufio.Reader, out io.Writer) error {
	fmt.Fprintln(out, "Welcome to tic-tac-toe!")
	line := c.players
	if line == "" {
		var err error
		line, err = cli.Prompt(out, in, "Enter player names, separated by ',' (one or two): ", nil,
			func(s string) error {
				_, err := cli.ParsePlayers(s)
				return err
			})
		if err != nil {
			return err
		}
	}
	names, err := cli.ParsePlayers(line)
	if err != nil {
		return err
	}

	seed := cfg.AI.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	mm := cfg.Minimax(log)
	mm.Seed = seed
	computer, err := setup.NewPlayer(c.opponent, mm)
	if err != nil {
		return err
	}
	agents, err := cli.Lineup(names, out, in, computer)
	if err != nil {
		return err
	}
	log.Debug("starting session",
		zap.Strings("players", names),
		zap.Int("size", cfg.Board.Size),
		zap.Int64("seed", seed))

	s := &cli.Session{
		CLI: &cli.CLI{
			Board:       board.New(cfg.BoardConfig()),
			Agents:      agents,
			Out:         out,
			Style:       c.style(cfg),
			Scores:      score.New(cfg.Points()),
			Log:         log,
			MoveTimeout: cfg.MoveTimeout(),
		},
		In:   in,
		Rand: rand.New(rand.NewSource(seed)),
	}
	return s.Run(ctx)
}

func (c *Command) style(cfg *config.Config) *cli.Style {
	if c.color && !cfg.Board.NoColor {
		return &cli.ColorStyle
	}
	return &cli.PlainStyle
}
