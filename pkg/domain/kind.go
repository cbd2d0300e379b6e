package domain

import (
	"fmt"
	"strings"
)

// Kind identifies an automaton class.
type Kind string

const (
	KindDFA Kind = "dfa"
	KindPDA Kind = "pda"
	KindTM  Kind = "tm"
)

// Kinds lists every supported automaton class in a stable order.
var Kinds = []Kind{KindDFA, KindPDA, KindTM}

// ParseKind resolves a kind name (case-insensitive).
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindDFA, KindPDA, KindTM:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// Title returns the human readable name of the kind.
func (k Kind) Title() string {
	switch k {
	case KindDFA:
		return "Deterministic Finite Automaton"
	case KindPDA:
		return "Deterministic Pushdown Automaton"
	case KindTM:
		return "Turing Machine"
	default:
		return string(k)
	}
}

// Direction is a Turing machine head move.
type Direction int

const (
	Left Direction = iota
	Right
)

// ParseDirection accepts the wire forms "L" and "R".
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "L":
		return Left, true
	case "R":
		return Right, true
	default:
		return 0, false
	}
}

func (d Direction) String() string {
	if d == Left {
		return "L"
	}
	return "R"
}
