package runtime

import (
	"context"

	"github.com/aretw0/automata/pkg/domain"
)

// RunDFA consumes input one symbol at a time. An undeclared symbol or a missing
// transition rejects immediately; otherwise the verdict is whether the last state is final.
func (e *Engine) RunDFA(ctx context.Context, m *domain.DFA, input []domain.Symbol) (domain.Result, error) {
	current := m.Initial
	for i, sym := range input {
		if err := checkpoint(ctx, i); err != nil {
			return domain.Result{}, err
		}
		if !m.InputAlphabet.Has(sym) {
			return halt(false, i, current, domain.HaltUnknownSymbol), nil
		}
		next, ok := m.Delta[domain.DFAKey{From: current, Symbol: sym}]
		if !ok {
			return halt(false, i, current, domain.HaltNoTransition), nil
		}
		current = next
	}
	return halt(m.IsFinal(current), len(input), current, domain.HaltInputConsumed), nil
}
