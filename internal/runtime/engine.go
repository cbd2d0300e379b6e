package runtime

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/pkg/domain"
)

const (
	// DefaultMaxSteps bounds every run, whatever the kind.
	DefaultMaxSteps = 1_000_000
	// DefaultMaxIdleSteps bounds consecutive PDA moves that consume no input.
	DefaultMaxIdleSteps = 10_000

	// cancellation is polled once every cancelCheckInterval steps.
	cancelCheckInterval = 1024
)

// Engine executes validated automata against input strings.
// It holds no per-run state and is safe for concurrent use.
type Engine struct {
	maxSteps     int
	maxIdleSteps int
	maxInputSize int
	logger       *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithMaxSteps sets the global step ceiling. Non-positive values are ignored.
func WithMaxSteps(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.maxSteps = n
		}
	}
}

// WithMaxIdleSteps sets the PDA ceiling on consecutive epsilon moves. Non-positive values are ignored.
func WithMaxIdleSteps(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.maxIdleSteps = n
		}
	}
}

// WithMaxInputSize overrides the input size limit read from the environment.
func WithMaxInputSize(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.maxInputSize = n
		}
	}
}

// WithLogger sets the logger used for run diagnostics.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates an engine with default budgets.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		maxSteps:     DefaultMaxSteps,
		maxIdleSteps: DefaultMaxIdleSteps,
		maxInputSize: MaxInputSize(),
		logger:       logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// MaxSteps returns the configured global step ceiling.
func (e *Engine) MaxSteps() int { return e.maxSteps }

// MaxIdleSteps returns the configured PDA idle ceiling.
func (e *Engine) MaxIdleSteps() int { return e.maxIdleSteps }

// Run sanitizes input, splits it into one symbol per character and runs a on it.
func (e *Engine) Run(ctx context.Context, a domain.Automaton, input string) (domain.Result, error) {
	if err := SanitizeInput(input, e.maxInputSize); err != nil {
		return domain.Result{}, err
	}
	symbols := domain.SplitInput(input)

	var (
		res domain.Result
		err error
	)
	switch m := a.(type) {
	case *domain.DFA:
		res, err = e.RunDFA(ctx, m, symbols)
	case *domain.PDA:
		res, err = e.RunPDA(ctx, m, symbols)
	case *domain.TM:
		res, err = e.RunTM(ctx, m, symbols)
	default:
		return domain.Result{}, fmt.Errorf("%w: %T", domain.ErrUnknownKind, a)
	}
	if err != nil {
		e.logger.Debug("run aborted", "kind", a.Kind(), "input_len", len(symbols), "err", err)
		return domain.Result{}, err
	}

	e.logger.Debug("run finished",
		"kind", a.Kind(),
		"input_len", len(symbols),
		"verdict", res.Verdict,
		"steps", res.Steps,
		"state", res.State,
		"halt", res.Halt,
	)
	return res, nil
}

// checkpoint reports ctx cancellation on every cancelCheckInterval-th step.
func checkpoint(ctx context.Context, step int) error {
	if step%cancelCheckInterval != 0 {
		return nil
	}
	return ctx.Err()
}

func halt(accepted bool, steps int, state domain.State, why domain.Halt) domain.Result {
	v := domain.Rejected
	if accepted {
		v = domain.Accepted
	}
	return domain.Result{Verdict: v, Steps: steps, State: state, Halt: why}
}
