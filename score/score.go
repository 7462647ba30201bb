// Package score keeps the running score of a session of games between
// two players.
package score

import (
	"fmt"
	"strconv"

	"github.com/gridgame/tictactoe/board"
)

// Points awarded per game. A tie gives TiePoints to both players.
type Points struct {
	Win int
	Tie int
}

var DefaultPoints = Points{Win: 2, Tie: 1}

type Table struct {
	points Points
	score  [3]int
	wins   [3]int
	ties   int
	games  int
}

func New(p Points) *Table {
	return &Table{points: p}
}

// Record adds the result of a finished game. Recording an unfinished
// game is an error.
func (t *Table) Record(o board.Outcome) error {
	switch o.Result {
	case board.Win:
		if !o.Winner.IsPlayer() {
			return fmt.Errorf("record: %w", board.ErrBadMark)
		}
		t.score[o.Winner] += t.points.Win
		t.wins[o.Winner]++
	case board.Tie:
		t.score[board.MarkA] += t.points.Tie
		t.score[board.MarkB] += t.points.Tie
		t.ties++
	default:
		return fmt.Errorf("record: game is %s", o)
	}
	t.games++
	return nil
}

func (t *Table) Points(m board.Mark) int { return t.score[m] }
func (t *Table) Wins(m board.Mark) int   { return t.wins[m] }
func (t *Table) Ties() int               { return t.ties }
func (t *Table) Games() int              { return t.games }

// Leader returns the player with the higher score, or false if the
// scores are level.
func (t *Table) Leader() (board.Mark, bool) {
	a, b := t.score[board.MarkA], t.score[board.MarkB]
	switch {
	case a > b:
		return board.MarkA, true
	case b > a:
		return board.MarkB, true
	}
	return board.Empty, false
}

func (t *Table) Reset() {
	*t = Table{points: t.points}
}

// Format renders the score as "alice-4 VS 2-bob". names is indexed by
// mark.
func (t *Table) Format(names [3]string) string {
	return t.FormatWith(names, nil)
}

// FormatWith is Format with each player's score passed through paint.
func (t *Table) FormatWith(names [3]string, paint func(m board.Mark, s string) string) string {
	if paint == nil {
		paint = func(_ board.Mark, s string) string { return s }
	}
	return fmt.Sprintf("%s-%s VS %s-%s",
		names[board.MarkA], paint(board.MarkA, strconv.Itoa(t.score[board.MarkA])),
		paint(board.MarkB, strconv.Itoa(t.score[board.MarkB])), names[board.MarkB])
}
