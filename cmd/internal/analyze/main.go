package analyze

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/subcommands"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gridgame/tictactoe/ai"
	"github.com/gridgame/tictactoe/board"
	"github.com/gridgame/tictactoe/cli"
	"github.com/gridgame/tictactoe/cmd/internal/opt"
	"github.com/gridgame/tictactoe/cmd/internal/setup"
	"github.com/gridgame/tictactoe/config"
	"github.com/gridgame/tictactoe/notation"
)

type Command struct {
	setup.Flags

	quiet     bool
	line      bool
	variation string

	mmopt opt.Minimax
}

func (*Command) Name() string     { return "analyze" }
func (*Command) Synopsis() string { return "Find the best move in a position" }
func (*Command) Usage() string {
	return `analyze [options] POSITION

Search a position written as slash-separated rows followed by the
mark to move, e.g.

  analyze "x.o/.x./... o"

Use -variation to play additional cells before the search.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	c.Flags.Register(flags)
	flags.BoolVar(&c.quiet, "quiet", false, "don't print board diagrams")
	flags.BoolVar(&c.line, "line", false, "print the principal line to the end of the game")
	flags.StringVar(&c.variation, "variation", "", "apply the listed cells, alternating marks, before searching")
	c.mmopt.AddFlags(flags)
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if flag.NArg() == 0 {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	cfg, log, err := c.Load("console", c.mmopt.Apply)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	defer log.Sync()

	if err := c.run(ctx, cfg, log, strings.Join(flag.Args(), " "), os.Stdout); err != nil {
		log.Error("analyze", zap.Error(err))
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *Command) run(ctx context.Context, cfg *config.Config, log *zap.Logger, pos string, out io.Writer) error {
	b, toMove, err := notation.ParsePosition(pos, cfg.BoardConfig())
	if err != nil {
		return err
	}
	if c.variation != "" {
		toMove, err = applyVariation(b, toMove, c.variation)
		if err != nil {
			return fmt.Errorf("-variation: %w", err)
		}
	}
	if !c.quiet {
		cli.RenderBoard(nil, out, b)
	}
	if o := b.Evaluate(); o.Over() {
		fmt.Fprintf(out, "game over: %s\n", o)
		return nil
	}

	mm := cfg.Minimax(log)
	mm.NoOpening = true
	mm.Seed = 1
	search := ai.NewMinimax(mm)

	actx := ctx
	if cfg.MoveTimeout() > 0 {
		var cancel context.CancelFunc
		actx, cancel = context.WithTimeout(ctx, cfg.MoveTimeout())
		defer cancel()
	}
	cell, val, st, err := search.Analyze(actx, b, toMove)
	if err != nil {
		return err
	}
	report(out, b, toMove, cell, val, st)
	if c.line {
		ms, err := principalLine(ctx, search, b, toMove)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, " line=%s\n", formatLine(b, ms))
	}
	fmt.Fprintf(out, " position=%q\n", notation.FormatPosition(b, toMove))
	return nil
}

func applyVariation(b *board.Board, toMove board.Mark, variation string) (board.Mark, error) {
	for _, s := range strings.Fields(variation) {
		cell, err := notation.ParseCell(s, b.Size())
		if err != nil {
			return toMove, err
		}
		o, err := b.Play(cell, toMove)
		if err != nil {
			return toMove, fmt.Errorf("bad move `%s': %w", s, err)
		}
		if o.Over() {
			return toMove, fmt.Errorf("game is over after `%s'", s)
		}
		toMove = toMove.Other()
	}
	return toMove, nil
}

func report(out io.Writer, b *board.Board, toMove board.Mark, cell board.Cell, val int, st ai.Stats) {
	p := message.NewPrinter(language.English)
	p.Fprintf(out, "AI analysis (%s to move):\n", b.Symbol(toMove))
	p.Fprintf(out, " best=%s (cell %d)\n", notation.FormatCell(cell, b.Size()), cell)
	p.Fprintf(out, " value=%d (%s)\n", val, verdict(val))
	p.Fprintf(out, " visited=%d terminal=%d cutoffs=%d time=%s\n",
		st.Visited, st.Terminal, st.Cutoffs, st.Elapsed)
	if st.Partial {
		p.Fprintf(out, " search was cut short; result is not exact\n")
	}
}

func verdict(val int) string {
	switch {
	case val > 0:
		return "win"
	case val < 0:
		return "loss"
	}
	return "draw"
}

// principalLine plays the best move for each side in turn on a copy of
// b until the game ends.
func principalLine(ctx context.Context, search *ai.MinimaxAI, b *board.Board, toMove board.Mark) ([]board.Move, error) {
	b = b.Clone()
	var ms []board.Move
	for b.HasEmptyCell() {
		cell, err := search.GetMove(ctx, b, toMove)
		if err != nil {
			return nil, err
		}
		ms = append(ms, board.Move{Cell: cell, Mark: toMove})
		if b.Apply(cell, toMove).Over() {
			break
		}
		toMove = toMove.Other()
	}
	return ms, nil
}

func formatLine(b *board.Board, ms []board.Move) string {
	var words []string
	for _, m := range ms {
		words = append(words, strings.ToLower(b.Symbol(m.Mark))+notation.FormatCell(m.Cell, b.Size()))
	}
	return strings.Join(words, " ")
}
