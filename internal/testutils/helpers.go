package testutils

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/automata/internal/validator"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/require"
)

// DFADefinition accepts strings with at least one "a" followed by at least one "b".
func DFADefinition() map[string]any {
	return decode(`{
		"states": ["q0", "q1", "q2"],
		"input_alphabet": ["a", "b"],
		"initial_state": "q0",
		"final_states": ["q2"],
		"transitions": {
			"q0": {"a": "q1", "b": "q0"},
			"q1": {"a": "q1", "b": "q2"},
			"q2": {"a": "q2", "b": "q2"}
		}
	}`)
}

// PDADefinition accepts a^n b^n for n >= 1.
func PDADefinition() map[string]any {
	return decode(`{
		"states": ["q0", "q1", "q2"],
		"input_alphabet": ["a", "b"],
		"stack_alphabet": ["A", "Z"],
		"initial_state": "q0",
		"initial_stack_symbol": "Z",
		"final_states": ["q2"],
		"transitions": {
			"q0": {
				"a": {"Z": ["q0", ["A", "Z"]], "A": ["q0", ["A", "A"]]},
				"b": {"A": ["q1", []]}
			},
			"q1": {
				"b": {"A": ["q1", []]},
				"": {"Z": ["q2", ["Z"]]}
			}
		}
	}`)
}

// TMDefinition accepts strings over {a,b} with an even number of "a".
func TMDefinition() map[string]any {
	return decode(`{
		"states": ["q0", "q1", "q_accept"],
		"input_alphabet": ["a", "b"],
		"tape_alphabet": ["a", "b", "_"],
		"initial_state": "q0",
		"final_states": ["q_accept"],
		"blank_symbol": "_",
		"transitions": {
			"q0": {"a": ["q1", "a", "R"], "b": ["q0", "b", "R"], "_": ["q_accept", "_", "R"]},
			"q1": {"a": ["q0", "a", "R"], "b": ["q1", "b", "R"]}
		}
	}`)
}

// Definition returns the reference definition for kind.
func Definition(kind domain.Kind) map[string]any {
	switch kind {
	case domain.KindPDA:
		return PDADefinition()
	case domain.KindTM:
		return TMDefinition()
	default:
		return DFADefinition()
	}
}

// MustBuild validates raw and fails the test immediately on error.
func MustBuild[T domain.Automaton](t *testing.T, kind domain.Kind, raw map[string]any) T {
	t.Helper()

	a, err := validator.Validate(kind, raw)
	require.NoError(t, err, "reference definition must validate")

	typed, ok := a.(T)
	require.True(t, ok, "unexpected automaton type %T", a)
	return typed
}

func decode(s string) map[string]any {
	var m map[string]any
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		panic(err)
	}
	return m
}
