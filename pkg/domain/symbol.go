package domain

import (
	"sort"
	"unicode/utf8"
)

// Symbol is a single character token of an alphabet.
type Symbol string

// Epsilon is the empty input symbol used by PDA transitions that consume no input.
const Epsilon Symbol = ""

// IsSingle reports whether the symbol is exactly one code point.
func (s Symbol) IsSingle() bool {
	return utf8.RuneCountInString(string(s)) == 1
}

// State is an opaque state label.
type State string

// Set is an unordered collection of comparable values.
type Set[T comparable] map[T]struct{}

// NewSet builds a set from the given values. Duplicates collapse.
func NewSet[T comparable](values ...T) Set[T] {
	s := make(Set[T], len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// Has reports whether v belongs to the set.
func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}

// Len returns the number of elements.
func (s Set[T]) Len() int { return len(s) }

// Alphabet is a set of symbols.
type Alphabet = Set[Symbol]

// StateSet is a set of states.
type StateSet = Set[State]

// Sorted returns the members of a string-like set in lexical order.
func Sorted[T ~string](s Set[T]) []T {
	out := make([]T, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// SplitInput breaks an input string into its symbols, one per code point.
func SplitInput(input string) []Symbol {
	symbols := make([]Symbol, 0, utf8.RuneCountInString(input))
	for _, r := range input {
		symbols = append(symbols, Symbol(string(r)))
	}
	return symbols
}
