package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidDefinition is matched by every *ValidationError.
	ErrInvalidDefinition = errors.New("invalid automaton definition")

	// ErrNotFound is returned when an automaton ID is unknown to the registry.
	ErrNotFound = errors.New("automaton not found")

	// ErrKindMismatch is returned when an ID exists but was created under another kind.
	ErrKindMismatch = errors.New("automaton kind mismatch")

	// ErrStepLimitExceeded is matched by every *StepLimitError.
	ErrStepLimitExceeded = errors.New("step limit exceeded")

	// ErrDuplicateID is returned by stores asked to overwrite an existing entry.
	ErrDuplicateID = errors.New("duplicate automaton id")

	// ErrUnknownKind is returned for kind names outside dfa, pda and tm.
	ErrUnknownKind = errors.New("unknown automaton kind")

	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)

// ValidationCode classifies a definition error.
type ValidationCode string

const (
	CodeMissingField       ValidationCode = "missing_field"
	CodeMalformedField     ValidationCode = "malformed_field"
	CodeUndeclaredState    ValidationCode = "undeclared_state"
	CodeUndeclaredSymbol   ValidationCode = "undeclared_symbol"
	CodeUndeclaredInitial  ValidationCode = "undeclared_initial_state"
	CodeUndeclaredFinal    ValidationCode = "undeclared_final_state"
	CodeUndeclaredStackTop ValidationCode = "undeclared_initial_stack_symbol"
	CodeInvalidBlank       ValidationCode = "invalid_blank_symbol"
	CodeInvalidDirection   ValidationCode = "invalid_direction"
)

// ValidationError reports the first violation found in a raw description.
type ValidationError struct {
	Code ValidationCode `json:"code"`
	// Field is the top-level description field, e.g. "transitions".
	Field string `json:"field"`
	// Key locates the offending entry inside Field, e.g. "q0/a".
	Key string `json:"key,omitempty"`
	// Value is the offending reference.
	Value  string `json:"value,omitempty"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "field %q", e.Field)
	if e.Key != "" {
		fmt.Fprintf(&b, " at %q", e.Key)
	}
	fmt.Fprintf(&b, ": %s", e.Reason)
	if e.Value != "" {
		fmt.Fprintf(&b, " (%q)", e.Value)
	}
	return b.String()
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidDefinition
}

// StepLimitError is returned when a PDA or TM run exhausts its step budget.
type StepLimitError struct {
	Kind  Kind
	Limit int
	Steps int
	// Idle is set when the idle (no input consumed) ceiling was hit rather than the global one.
	Idle  bool
	State State
}

func (e *StepLimitError) Error() string {
	budget := "step"
	if e.Idle {
		budget = "idle step"
	}
	return fmt.Sprintf("%s: %s budget of %d exhausted after %d steps in state %q",
		ErrStepLimitExceeded, budget, e.Limit, e.Steps, e.State)
}

func (e *StepLimitError) Is(target error) bool {
	return target == ErrStepLimitExceeded
}
