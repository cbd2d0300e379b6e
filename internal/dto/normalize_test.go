package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	in := map[string]any{
		"states":        []any{"q0", 1, json.Number("2")},
		"initial_state": 1,
		"flag":          true,
		"transitions": map[any]any{
			"q0": map[any]any{"a": []any{"q1", []string{"A", "Z"}}},
			3:    map[string]any{"b": 2.5},
		},
		"empty": nil,
	}

	got := NormalizeDefinition(in)

	assert.Equal(t, []any{"q0", "1", "2"}, got["states"])
	assert.Equal(t, "1", got["initial_state"])
	assert.Equal(t, "true", got["flag"])
	assert.Nil(t, got["empty"])
	assert.Equal(t, map[string]any{
		"q0": map[string]any{"a": []any{"q1", []any{"A", "Z"}}},
		"3":  map[string]any{"b": "2.5"},
	}, got["transitions"])
}

func TestNormalizeDefinition_Nil(t *testing.T) {
	assert.Nil(t, NormalizeDefinition(nil))
}
