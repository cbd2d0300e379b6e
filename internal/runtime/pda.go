package runtime

import (
	"context"

	"github.com/aretw0/automata/pkg/domain"
)

// RunPDA simulates a deterministic pushdown automaton with final-state acceptance.
//
// On each step an epsilon move for (state, top) wins over a consuming move. A move pops
// the top and pushes its replacement so that Push[0] ends up on top. When no move applies
// the run halts: accepted iff the input is exhausted and the state is final.
func (e *Engine) RunPDA(ctx context.Context, m *domain.PDA, input []domain.Symbol) (domain.Result, error) {
	// Top of stack is the last element.
	stack := []domain.Symbol{m.InitialStackSymbol}
	state := m.Initial
	pos, steps, idle := 0, 0, 0

	for {
		if err := checkpoint(ctx, steps); err != nil {
			return domain.Result{}, err
		}
		if len(stack) == 0 {
			return halt(false, steps, state, domain.HaltStackEmpty), nil
		}
		top := stack[len(stack)-1]

		move, ok := m.Delta[domain.PDAKey{From: state, Input: domain.Epsilon, Top: top}]
		consumed := false
		if !ok && pos < len(input) {
			sym := input[pos]
			if !m.InputAlphabet.Has(sym) {
				return halt(false, steps, state, domain.HaltUnknownSymbol), nil
			}
			move, ok = m.Delta[domain.PDAKey{From: state, Input: sym, Top: top}]
			consumed = ok
		}
		if !ok {
			if pos < len(input) {
				return halt(false, steps, state, domain.HaltNoTransition), nil
			}
			return halt(m.IsFinal(state), steps, state, domain.HaltInputConsumed), nil
		}

		if steps >= e.maxSteps {
			return domain.Result{}, &domain.StepLimitError{
				Kind: domain.KindPDA, Limit: e.maxSteps, Steps: steps, State: state,
			}
		}
		if !consumed && idle >= e.maxIdleSteps {
			return domain.Result{}, &domain.StepLimitError{
				Kind: domain.KindPDA, Limit: e.maxIdleSteps, Steps: steps, Idle: true, State: state,
			}
		}

		stack = stack[:len(stack)-1]
		for i := len(move.Push) - 1; i >= 0; i-- {
			stack = append(stack, move.Push[i])
		}
		state = move.To
		steps++
		if consumed {
			pos++
			idle = 0
		} else {
			idle++
		}
	}
}
