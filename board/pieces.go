package board

import "fmt"

// Mark is the content of a single cell.
type Mark byte

const (
	Empty Mark = iota
	MarkA
	MarkB
)

func (m Mark) Other() Mark {
	switch m {
	case MarkA:
		return MarkB
	case MarkB:
		return MarkA
	}
	return Empty
}

func (m Mark) IsPlayer() bool {
	return m == MarkA || m == MarkB
}

func (m Mark) String() string {
	switch m {
	case Empty:
		return "empty"
	case MarkA:
		return "A"
	case MarkB:
		return "B"
	}
	return fmt.Sprintf("Mark(%d)", byte(m))
}

// Alphabet maps the two player marks to the symbols shown to users.
type Alphabet struct {
	A, B string
}

var DefaultAlphabet = Alphabet{A: "X", B: "O"}

func (a Alphabet) Symbol(m Mark) string {
	switch m {
	case MarkA:
		return a.A
	case MarkB:
		return a.B
	}
	return ""
}
