package schema

import (
	"errors"
	"sort"
	"strings"
)

const reasonRequired = "required"

// Schema is a map of field names to their expected types.
// Example: {"states": Slice(String()), "initial_state": String()}
type Schema map[string]Type

// Validate checks if data conforms to the schema.
// Returns an error with all validation failures found, ordered by field name.
func Validate(schema Schema, data map[string]any) error {
	if len(schema) == 0 {
		// No schema = no validation
		return nil
	}

	fields := make([]string, 0, len(schema))
	for name := range schema {
		fields = append(fields, name)
	}
	sort.Strings(fields)

	return ValidateFields(schema, data, fields...)
}

// ValidateFields validates only specific fields from data against the schema,
// in the given order. Missing fields are treated as an error.
func ValidateFields(schema Schema, data map[string]any, fields ...string) error {
	if len(fields) == 0 {
		// No fields to validate
		return nil
	}

	var errs []error

	for _, fieldName := range fields {
		fieldType, exists := schema[fieldName]
		if !exists {
			// Field not defined in schema
			errs = append(errs, &ValidationError{
				Key:    fieldName,
				Reason: "not defined in schema",
			})
			continue
		}

		value, fieldExists := data[fieldName]
		if !fieldExists {
			errs = append(errs, &ValidationError{
				Key:    fieldName,
				Reason: reasonRequired,
			})
			continue
		}

		if err := fieldType.Validate(value); err != nil {
			errs = append(errs, fieldError(fieldName, value, err))
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}

	return nil
}

// First returns the first failure of a ValidateFields/Validate error as a
// *ValidationError, or nil.
func First(err error) *ValidationError {
	for _, e := range ValidationErrors(err) {
		var ve *ValidationError
		if errors.As(e, &ve) {
			return ve
		}
	}
	return nil
}

func fieldError(field string, value any, err error) *ValidationError {
	ve := &ValidationError{Key: field, Reason: err.Error(), Value: value}
	var pe *PathError
	if errors.As(err, &pe) {
		ve.Path = strings.Join(pe.Path, "/")
		ve.Reason = pe.Err.Error()
		ve.Value = nil
	}
	return ve
}
