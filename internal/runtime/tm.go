package runtime

import (
	"context"

	"github.com/aretw0/automata/pkg/domain"
)

// RunTM simulates a single-tape deterministic Turing machine.
//
// The tape starts with the input and grows to the right on demand; cells never
// written read as blank. A left move on cell 0 keeps the head in place. The machine
// halts when no transition applies and accepts iff it halted in a final state.
func (e *Engine) RunTM(ctx context.Context, m *domain.TM, input []domain.Symbol) (domain.Result, error) {
	for _, sym := range input {
		if !m.InputAlphabet.Has(sym) {
			return halt(false, 0, m.Initial, domain.HaltUnknownSymbol), nil
		}
	}

	tape := make([]domain.Symbol, len(input))
	copy(tape, input)
	state := m.Initial
	head := 0

	for steps := 0; ; steps++ {
		if err := checkpoint(ctx, steps); err != nil {
			return domain.Result{}, err
		}

		read := m.Blank
		if head < len(tape) {
			read = tape[head]
		}
		move, ok := m.Delta[domain.TMKey{From: state, Symbol: read}]
		if !ok {
			return halt(m.IsFinal(state), steps, state, domain.HaltNoTransition), nil
		}
		if steps >= e.maxSteps {
			return domain.Result{}, &domain.StepLimitError{
				Kind: domain.KindTM, Limit: e.maxSteps, Steps: steps, State: state,
			}
		}

		for head >= len(tape) {
			tape = append(tape, m.Blank)
		}
		tape[head] = move.Write
		state = move.To
		switch {
		case move.Move == domain.Right:
			head++
		case head > 0:
			head--
		}
	}
}
