package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError represents a single field validation failure.
type ValidationError struct {
	Key    string // Field name
	Path   string // Location inside the field ("q0/a"), empty for the field itself
	Reason string // Human-readable reason for failure
	Value  any    // The value that failed validation
}

// Missing reports whether the field was absent.
func (e *ValidationError) Missing() bool {
	return e.Reason == reasonRequired
}

func (e *ValidationError) Error() string {
	loc := e.Key
	if e.Path != "" {
		loc += "/" + e.Path
	}
	if e.Value == nil {
		return fmt.Sprintf("field %q: %s", loc, e.Reason)
	}
	return fmt.Sprintf("field %q: %s (got %T)", loc, e.Reason, e.Value)
}

// PathError locates a failure inside a composite value.
type PathError struct {
	Path []string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s: %v", strings.Join(e.Path, "/"), e.Err)
}

func (e *PathError) Unwrap() error { return e.Err }

// at prefixes err with a path segment, flattening nested PathErrors.
func at(segment string, err error) error {
	var pe *PathError
	if errors.As(err, &pe) {
		return &PathError{Path: append([]string{segment}, pe.Path...), Err: pe.Err}
	}
	return &PathError{Path: []string{segment}, Err: err}
}

// AggregateError represents multiple validation failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// ValidationErrors returns all validation errors if err is an AggregateError.
// Otherwise returns nil.
func ValidationErrors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}
