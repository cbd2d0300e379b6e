package dto

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Normalize rewrites a decoded YAML or frontmatter tree into the JSON shape the
// validator expects: every mapping becomes map[string]any and every scalar a string.
// Lists keep their order; nil stays nil.
func Normalize(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		return t
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = Normalize(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[scalar(k)] = Normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = Normalize(val)
		}
		return out
	case []string:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = val
		}
		return out
	default:
		return scalar(t)
	}
}

// NormalizeDefinition applies Normalize to a definition map.
func NormalizeDefinition(def map[string]any) map[string]any {
	if def == nil {
		return nil
	}
	return Normalize(def).(map[string]any)
}

func scalar(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}
