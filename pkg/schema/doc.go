// Package schema provides a small type system for checking the shape of untyped,
// decoded documents (the map[string]any / []any trees produced by encoding/json or
// YAML decoders) before they are converted into typed values.
//
// Schemas map field names to types. Composite types (Slice, Map, Tuple) report the
// location of a nested failure as a path, so callers can point at the exact entry:
//
//	s := schema.Schema{
//	    "states":      schema.Slice(schema.String()),
//	    "transitions": schema.Map(schema.Map(schema.String())),
//	}
//
//	err := schema.ValidateFields(s, data, "states", "transitions")
//	for _, e := range schema.ValidationErrors(err) {
//	    var ve *schema.ValidationError
//	    if errors.As(e, &ve) {
//	        fmt.Println(ve.Key, ve.Path, ve.Reason)
//	    }
//	}
//
// Custom validators can be registered for domain-specific scalars:
//
//	direction := schema.Custom("direction", func(v any) error {
//	    if v != "L" && v != "R" {
//	        return fmt.Errorf("expected L or R")
//	    }
//	    return nil
//	})
//
// This package has no dependencies beyond the Go standard library.
package schema
