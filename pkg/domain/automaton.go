package domain

import "time"

// Automaton is a validated, immutable automaton value of one of the supported kinds.
// Values are only produced by the definition validator and are never mutated afterwards,
// so they can be shared by concurrent runs.
type Automaton interface {
	Kind() Kind
	// FiniteControl exposes the parts shared by every kind.
	FiniteControl() *Control
	// Definition returns the normalized wire form of the automaton.
	Definition() map[string]any
}

// Control is the finite control common to all automaton kinds.
type Control struct {
	States        StateSet
	InputAlphabet Alphabet
	Initial       State
	Finals        StateSet
}

func (c *Control) FiniteControl() *Control { return c }

// IsFinal reports whether s is an accepting state.
func (c *Control) IsFinal(s State) bool { return c.Finals.Has(s) }

func (c *Control) definition() map[string]any {
	return map[string]any{
		"states":         toStrings(Sorted(c.States)),
		"input_alphabet": toStrings(Sorted(c.InputAlphabet)),
		"initial_state":  string(c.Initial),
		"final_states":   toStrings(Sorted(c.Finals)),
	}
}

// DFAKey indexes a DFA transition.
type DFAKey struct {
	From   State
	Symbol Symbol
}

// DFA is a deterministic finite automaton. Delta may be partial.
type DFA struct {
	Control
	Delta map[DFAKey]State
}

func (*DFA) Kind() Kind { return KindDFA }

func (d *DFA) Definition() map[string]any {
	def := d.definition()
	transitions := map[string]map[string]string{}
	for k, to := range d.Delta {
		row, ok := transitions[string(k.From)]
		if !ok {
			row = map[string]string{}
			transitions[string(k.From)] = row
		}
		row[string(k.Symbol)] = string(to)
	}
	def["transitions"] = transitions
	return def
}

// PDAKey indexes a PDA transition. Input is Epsilon for moves that consume no input.
type PDAKey struct {
	From  State
	Input Symbol
	Top   Symbol
}

// PDAMove replaces the popped stack top with Push. Push[0] becomes the new top;
// an empty Push is a plain pop.
type PDAMove struct {
	To   State
	Push []Symbol
}

// PDA is a deterministic pushdown automaton accepting by final state.
type PDA struct {
	Control
	StackAlphabet      Alphabet
	InitialStackSymbol Symbol
	Delta              map[PDAKey]PDAMove
}

func (*PDA) Kind() Kind { return KindPDA }

func (p *PDA) Definition() map[string]any {
	def := p.definition()
	def["stack_alphabet"] = toStrings(Sorted(p.StackAlphabet))
	def["initial_stack_symbol"] = string(p.InitialStackSymbol)
	transitions := map[string]map[string]map[string][]any{}
	for k, mv := range p.Delta {
		byInput, ok := transitions[string(k.From)]
		if !ok {
			byInput = map[string]map[string][]any{}
			transitions[string(k.From)] = byInput
		}
		byTop, ok := byInput[string(k.Input)]
		if !ok {
			byTop = map[string][]any{}
			byInput[string(k.Input)] = byTop
		}
		byTop[string(k.Top)] = []any{string(mv.To), toStrings(mv.Push)}
	}
	def["transitions"] = transitions
	return def
}

// TMKey indexes a Turing machine transition.
type TMKey struct {
	From   State
	Symbol Symbol
}

// TMMove writes Write under the head, enters To and moves the head.
type TMMove struct {
	To    State
	Write Symbol
	Move  Direction
}

// TM is a deterministic single-tape Turing machine with a right-infinite tape.
type TM struct {
	Control
	TapeAlphabet Alphabet
	Blank        Symbol
	Delta        map[TMKey]TMMove
}

func (*TM) Kind() Kind { return KindTM }

func (m *TM) Definition() map[string]any {
	def := m.definition()
	def["tape_alphabet"] = toStrings(Sorted(m.TapeAlphabet))
	def["blank_symbol"] = string(m.Blank)
	transitions := map[string]map[string][]string{}
	for k, mv := range m.Delta {
		row, ok := transitions[string(k.From)]
		if !ok {
			row = map[string][]string{}
			transitions[string(k.From)] = row
		}
		row[string(k.Symbol)] = []string{string(mv.To), string(mv.Write), mv.Move.String()}
	}
	def["transitions"] = transitions
	return def
}

// Entry is a stored automaton.
type Entry struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Automaton Automaton `json:"-"`
}

// Description is an unvalidated automaton definition as read from a catalog or file.
type Description struct {
	Kind       Kind
	Name       string
	Source     string
	Definition map[string]any
}

func toStrings[T ~string](in []T) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}
