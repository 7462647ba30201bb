package selfplay

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/subcommands"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gridgame/tictactoe/cmd/internal/opt"
	"github.com/gridgame/tictactoe/cmd/internal/setup"
	"github.com/gridgame/tictactoe/config"
)

type Command struct {
	setup.Flags

	size    int
	p1      string
	p2      string
	seed    int64
	games   int
	swap    bool
	threads int
	limit   time.Duration

	summary string

	mmopt opt.Minimax
}

func (*Command) Name() string     { return "selfplay" }
func (*Command) Synopsis() string { return "Play two AIs against each other and report results" }
func (*Command) Usage() string {
	return `selfplay [flags]
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	c.Flags.Register(flags)
	flags.IntVar(&c.size, "size", 0, "board size (overrides config)")
	flags.StringVar(&c.p1, "p1", "minimax", "player1 (minimax or random)")
	flags.StringVar(&c.p2, "p2", "minimax", "player2 (minimax or random)")
	flags.Int64Var(&c.seed, "seed", 0, "starting random seed")
	flags.IntVar(&c.games, "games", 10, "number of games to play")
	flags.BoolVar(&c.swap, "swap", true, "swap marks each game")
	flags.IntVar(&c.threads, "threads", 4, "number of parallel games")
	flags.DurationVar(&c.limit, "limit", 0, "time limit per move (default from config)")
	flags.StringVar(&c.summary, "summary", "", "write summary JSON file")
	c.mmopt.AddFlags(flags)
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, log, err := c.Load("json", func(cfg *config.Config) {
		if c.size != 0 {
			cfg.Board.Size = c.size
		}
		c.mmopt.Apply(cfg)
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	defer log.Sync()

	if c.seed == 0 {
		c.seed = time.Now().Unix()
	}
	limit := c.limit
	if limit == 0 {
		limit = cfg.MoveTimeout()
	}
	sc := &Config{
		Games:   c.games,
		Threads: c.threads,
		Seed:    c.seed,
		Swap:    c.swap,
		Limit:   limit,
		Board:   cfg.BoardConfig(),
		Minimax: cfg.Minimax(log),
		P1:      c.p1,
		P2:      c.p2,
		Log:     log,
	}
	st, err := Simulate(ctx, sc)
	if err != nil {
		log.Error("selfplay", zap.Error(err))
		return subcommands.ExitFailure
	}

	if c.summary != "" {
		if err := c.writeSummary(c.summary, limit, &st); err != nil {
			log.Error("writing summary", zap.Error(err))
		}
	}

	log.Info("done",
		zap.Int("games", st.Count()),
		zap.Int64("seed", c.seed),
		zap.Int("ties", st.Ties),
		zap.Int("a", st.A),
		zap.Int("b", st.B),
		zap.Duration("limit", limit))
	printStats(os.Stdout, &st)
	return subcommands.ExitSuccess
}

func printStats(out io.Writer, st *Stats) {
	p := message.NewPrinter(language.English)
	tw := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
	p.Fprintf(tw, "\tas A\tas B\twins\tlosses\n")
	for i := range st.Players {
		ps := &st.Players[i]
		p.Fprintf(tw, "p%d\t%d\t%d\t%d\t%d\n", i+1, ps.AWins, ps.BWins, ps.Wins, ps.Losses)
	}
	p.Fprintf(tw, "sum\t%d\t%d\t%d\t\n", st.A, st.B, st.A+st.B)
	tw.Flush()
	p.Fprintf(out, "games=%d ties=%d plies=%d\n", st.Count(), st.Ties, st.Plies)
}

type Summary struct {
	Cmdline []string
	Player1 string
	Player2 string
	Limit   time.Duration
	Stats   *Stats
}

func (c *Command) writeSummary(path string, limit time.Duration, stats *Stats) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	summary := Summary{
		Cmdline: os.Args,
		Player1: c.p1,
		Player2: c.p2,
		Limit:   limit,
		Stats:   stats,
	}

	bs, err := json.MarshalIndent(&summary, "", "  ")
	if err != nil {
		return err
	}
	_, err = f.Write(bs)
	return err
}
