package board

import "fmt"

type Result byte

const (
	Ongoing Result = iota
	Win
	Tie
)

func (r Result) String() string {
	switch r {
	case Ongoing:
		return "ongoing"
	case Win:
		return "win"
	case Tie:
		return "tie"
	}
	return fmt.Sprintf("Result(%d)", byte(r))
}

// Outcome is computed from the board after every move and is never
// stored. Winner is only meaningful when Result is Win.
type Outcome struct {
	Result Result
	Winner Mark
}

func InProgress() Outcome { return Outcome{Result: Ongoing} }

func WinFor(m Mark) Outcome { return Outcome{Result: Win, Winner: m} }

func Draw() Outcome { return Outcome{Result: Tie} }

func (o Outcome) Over() bool {
	return o.Result != Ongoing
}

func (o Outcome) String() string {
	if o.Result == Win {
		return fmt.Sprintf("win(%s)", o.Winner)
	}
	return o.Result.String()
}
