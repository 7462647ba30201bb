package ai

import (
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/context"
	"golang.org/x/sync/errgroup"

	"github.com/gridgame/tictactoe/board"
)

const (
	MaxEval = 1 << 20
	MinEval = -MaxEval
)

type MinimaxConfig struct {
	Seed  int64
	Debug int

	// Threads > 1 searches root moves concurrently, each on its own
	// copy of the board.
	Threads int

	// DepthWeighted scores a win by the number of cells still empty
	// after it, so faster wins and slower losses are preferred.
	DepthWeighted bool
	NoPrune       bool
	NoOpening     bool

	Logger *zap.Logger
}

type Stats struct {
	Visited  uint64
	Terminal uint64
	Cutoffs  uint64
	Elapsed  time.Duration

	// Partial is set when the search was cancelled before every root
	// move had been scored.
	Partial bool
}

func (s *Stats) add(o *Stats) {
	s.Visited += o.Visited
	s.Terminal += o.Terminal
	s.Cutoffs += o.Cutoffs
}

// MinimaxAI is not safe for concurrent use; give each goroutine its own.
type MinimaxAI struct {
	cfg  MinimaxConfig
	rand *rand.Rand
	log  *zap.Logger
}

func NewMinimax(cfg MinimaxConfig) *MinimaxAI {
	m := &MinimaxAI{cfg: cfg, log: cfg.Logger}
	if m.log == nil {
		m.log = zap.NewNop()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	m.rand = rand.New(rand.NewSource(seed))
	if cfg.Debug > 0 {
		m.log.Info("minimax configured",
			zap.Int64("seed", seed),
			zap.Int("threads", cfg.Threads),
			zap.Bool("prune", !cfg.NoPrune),
			zap.Bool("weighted", cfg.DepthWeighted))
	}
	return m
}

func (m *MinimaxAI) GetMove(ctx context.Context, b *board.Board, mark board.Mark) (board.Cell, error) {
	c, _, _, err := m.Analyze(ctx, b, mark)
	return c, err
}

// Analyze returns the best cell for mark, its minimax value from mark's
// point of view, and search statistics. The board is left as it was
// found.
func (m *MinimaxAI) Analyze(ctx context.Context, b *board.Board, mark board.Mark) (board.Cell, int, Stats, error) {
	if !mark.IsPlayer() {
		return board.NoCell, 0, Stats{}, board.ErrBadMark
	}
	if !b.HasEmptyCell() {
		return board.NoCell, 0, Stats{}, ErrIllegalState
	}
	start := time.Now()

	if b.IsEmpty() && !m.cfg.NoOpening {
		cells := b.AppendEmptyCells(nil)
		c := cells[m.rand.Intn(len(cells))]
		st := Stats{Elapsed: time.Since(start)}
		if m.cfg.Debug > 0 {
			m.log.Info("[minimax] opening", zap.Int("cell", int(c)))
		}
		return c, 0, st, nil
	}

	var cancel int32
	if ctx.Err() != nil {
		cancel = 1
	}
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			atomic.StoreInt32(&cancel, 1)
		case <-done:
		}
	}()

	cells := b.AppendEmptyCells(nil)
	var results []rootResult
	var st Stats
	if m.cfg.Threads > 1 && len(cells) > 1 {
		results, st = m.searchParallel(b, mark, cells, &cancel)
	} else {
		results, st = m.searchSequential(b, mark, cells, &cancel)
	}

	best, bestV := board.NoCell, MinEval-1
	for _, r := range results {
		if r.done && r.value > bestV {
			best, bestV = r.cell, r.value
		}
	}
	st.Partial = atomic.LoadInt32(&cancel) != 0
	if best == board.NoCell {
		best, bestV = cells[0], 0
	}
	st.Elapsed = time.Since(start)

	if m.cfg.Debug > 0 {
		m.log.Info(fmt.Sprintf("[minimax] mark=%s cell=%d val=%d", mark, best, bestV),
			zap.Uint64("visited", st.Visited),
			zap.Uint64("terminal", st.Terminal),
			zap.Uint64("cutoffs", st.Cutoffs),
			zap.Duration("elapsed", st.Elapsed),
			zap.Bool("partial", st.Partial))
	}
	return best, bestV, st, nil
}

type rootResult struct {
	cell  board.Cell
	value int
	done  bool
}

// searchSequential narrows the window as root moves are scored, so a
// later move is only resolved exactly if it beats the best so far.
func (m *MinimaxAI) searchSequential(b *board.Board, mark board.Mark, cells []board.Cell, cancel *int32) ([]rootResult, Stats) {
	s := m.newSearcher(b, mark, cancel)
	results := make([]rootResult, 0, len(cells))
	alpha := MinEval - 1
	for _, c := range cells {
		v := s.branch(c, alpha, MaxEval+1)
		if atomic.LoadInt32(cancel) != 0 {
			break
		}
		results = append(results, rootResult{cell: c, value: v, done: true})
		if v > alpha {
			alpha = v
		}
	}
	return results, s.st
}

// searchParallel scores every root move exactly, on a clone of the
// board per move. Results keep the order of cells.
func (m *MinimaxAI) searchParallel(b *board.Board, mark board.Mark, cells []board.Cell, cancel *int32) ([]rootResult, Stats) {
	results := make([]rootResult, len(cells))
	stats := make([]Stats, len(cells))
	clones := make([]*board.Board, len(cells))
	for i := range cells {
		clones[i] = b.Clone()
	}

	var g errgroup.Group
	g.SetLimit(m.cfg.Threads)
	for i, c := range cells {
		g.Go(func() error {
			s := m.newSearcher(clones[i], mark, cancel)
			v := s.branch(c, MinEval-1, MaxEval+1)
			results[i] = rootResult{
				cell:  c,
				value: v,
				done:  atomic.LoadInt32(cancel) == 0,
			}
			stats[i] = s.st
			return nil
		})
	}
	// Branches report interruption through the cancel flag, never as an
	// error.
	_ = g.Wait()

	var st Stats
	for i := range stats {
		st.add(&stats[i])
	}
	return results, st
}

type searcher struct {
	b        *board.Board
	max      board.Mark
	weighted bool
	prune    bool
	cancel   *int32

	st Stats

	// one buffer of empty cells per ply
	stack [][]board.Cell
}

func (m *MinimaxAI) newSearcher(b *board.Board, mark board.Mark, cancel *int32) *searcher {
	s := &searcher{
		b:        b,
		max:      mark,
		weighted: m.cfg.DepthWeighted,
		prune:    !m.cfg.NoPrune,
		cancel:   cancel,
		stack:    make([][]board.Cell, b.EmptyCount()+1),
	}
	for i := range s.stack {
		s.stack[i] = make([]board.Cell, 0, b.EmptyCount())
	}
	return s
}

// play applies c for m, hands the outcome to f, and undoes c on every
// exit from f.
func (s *searcher) play(c board.Cell, m board.Mark, f func(board.Outcome) int) int {
	o := s.b.Apply(c, m)
	defer s.b.Undo(c)
	return f(o)
}

// branch scores the root move c for the maximizing mark.
func (s *searcher) branch(c board.Cell, α, β int) int {
	return s.play(c, s.max, func(o board.Outcome) int {
		if v, ok := s.terminal(o); ok {
			return v
		}
		return s.minimax(s.max.Other(), 1, α, β)
	})
}

// terminal scores a finished game. It must be called while the move
// that ended the game is still on the board.
func (s *searcher) terminal(o board.Outcome) (int, bool) {
	switch o.Result {
	case board.Win:
		s.st.Terminal++
		v := 1
		if s.weighted {
			v = s.b.EmptyCount() + 1
		}
		if o.Winner != s.max {
			v = -v
		}
		return v, true
	case board.Tie:
		s.st.Terminal++
		return 0, true
	}
	return 0, false
}

// minimax returns the value of the position for s.max with mover to
// play. With pruning enabled the value is exact only inside (α, β);
// outside it is a bound on the same side of the window.
func (s *searcher) minimax(mover board.Mark, ply int, α, β int) int {
	if atomic.LoadInt32(s.cancel) != 0 {
		return 0
	}
	if !s.b.HasEmptyCell() {
		s.st.Terminal++
		return 0
	}
	s.st.Visited++

	maximizing := mover == s.max
	best := MaxEval + 1
	if maximizing {
		best = MinEval - 1
	}
	cells := s.b.AppendEmptyCells(s.stack[ply][:0])
	s.stack[ply] = cells
	for _, c := range cells {
		v := s.play(c, mover, func(o board.Outcome) int {
			if v, ok := s.terminal(o); ok {
				return v
			}
			return s.minimax(mover.Other(), ply+1, α, β)
		})
		if maximizing {
			if v > best {
				best = v
			}
			if best > α {
				α = best
			}
		} else {
			if v < best {
				best = v
			}
			if best < β {
				β = best
			}
		}
		if s.prune && α >= β {
			s.st.Cutoffs++
			break
		}
		if atomic.LoadInt32(s.cancel) != 0 {
			return 0
		}
	}
	return best
}
