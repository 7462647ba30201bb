package selfplay

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gridgame/tictactoe/ai"
	"github.com/gridgame/tictactoe/board"
	"github.com/gridgame/tictactoe/cmd/internal/setup"
)

type Config struct {
	Games   int
	Threads int
	Seed    int64
	Swap    bool
	Limit   time.Duration

	Board   board.Config
	Minimax ai.MinimaxConfig

	P1, P2 string

	Log *zap.Logger
}

type Stats struct {
	Players [2]struct {
		Wins   int
		AWins  int
		BWins  int
		Losses int
	}
	A, B  int
	Ties  int
	Plies int

	Games []Result `json:"-"`
}

func (s *Stats) Count() int {
	return s.A + s.B + s.Ties
}

func (s *Stats) add(r *Result) {
	s.Plies += len(r.Moves)
	s.Games = append(s.Games, *r)
	if r.Outcome.Result == board.Tie {
		s.Ties++
		return
	}
	w := r.Outcome.Winner
	if w == board.MarkA {
		s.A++
	} else {
		s.B++
	}
	winner := 0
	if w != r.P1 {
		winner = 1
	}
	pst := &s.Players[winner]
	pst.Wins++
	if w == board.MarkA {
		pst.AWins++
	} else {
		pst.BWins++
	}
	s.Players[1-winner].Losses++
}

type gameSpec struct {
	i    int
	seed int64
	p1   board.Mark
}

type Result struct {
	ID      uuid.UUID
	Index   int
	P1      board.Mark
	Outcome board.Outcome
	Moves   []board.Move
	Elapsed time.Duration
}

// Simulate plays c.Games games on c.Threads workers. Results are
// reported in game order whatever order the workers finish in.
func Simulate(ctx context.Context, c *Config) (Stats, error) {
	if c.Log == nil {
		c.Log = zap.NewNop()
	}
	threads := c.Threads
	if threads < 1 {
		threads = 1
	}
	results := make([]Result, c.Games)
	g, ctx := errgroup.WithContext(ctx)
	gc := make(chan gameSpec)
	g.Go(func() error {
		defer close(gc)
		r := rand.New(rand.NewSource(c.Seed))
		for i := 0; i < c.Games; i++ {
			spec := gameSpec{i: i, seed: r.Int63(), p1: board.MarkA}
			if c.Swap && i%2 == 1 {
				spec.p1 = board.MarkB
			}
			select {
			case gc <- spec:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
	for i := 0; i < threads; i++ {
		g.Go(func() error {
			return worker(ctx, c, gc, results)
		})
	}
	if err := g.Wait(); err != nil {
		return Stats{}, err
	}

	var st Stats
	for i := range results {
		st.add(&results[i])
	}
	return st, nil
}

func worker(ctx context.Context, c *Config, games <-chan gameSpec, out []Result) error {
	for g := range games {
		r, err := playGame(ctx, c, g)
		if err != nil {
			return err
		}
		c.Log.Debug("game",
			zap.Stringer("id", r.ID),
			zap.Int("n", g.i),
			zap.Stringer("p1", g.p1),
			zap.Stringer("outcome", r.Outcome),
			zap.Int("plies", len(r.Moves)),
			zap.Duration("elapsed", r.Elapsed))
		out[g.i] = r
	}
	return nil
}

func playGame(ctx context.Context, c *Config, g gameSpec) (Result, error) {
	res := Result{ID: uuid.New(), Index: g.i, P1: g.p1}
	start := time.Now()

	var players [3]ai.Player
	for _, p := range []struct {
		kind string
		mark board.Mark
		seed int64
	}{
		{c.P1, g.p1, g.seed},
		{c.P2, g.p1.Other(), g.seed + 1},
	} {
		mm := c.Minimax
		mm.Seed = p.seed
		mm.Logger = c.Log
		pl, err := setup.NewPlayer(p.kind, mm)
		if err != nil {
			return res, err
		}
		players[p.mark] = pl
	}

	b := board.New(c.Board)
	m := board.MarkA
	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		mctx, cancel := ctx, context.CancelFunc(func() {})
		if c.Limit > 0 {
			mctx, cancel = context.WithTimeout(ctx, c.Limit)
		}
		cell, err := players[m].GetMove(mctx, b, m)
		cancel()
		if err != nil {
			return res, fmt.Errorf("game %d: get move: %w", g.i, err)
		}
		o, err := b.Play(cell, m)
		if err != nil {
			return res, fmt.Errorf("game %d: %w", g.i, err)
		}
		res.Moves = append(res.Moves, board.Move{Cell: cell, Mark: m})
		if o.Over() {
			res.Outcome = o
			res.Elapsed = time.Since(start)
			return res, nil
		}
		m = m.Other()
	}
}
