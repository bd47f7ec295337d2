package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation failure.
//
// Fields:
//   - Field: Dotted path of the invalid field (e.g., "list_outdated.timeout_seconds")
//   - Message: Description of what's wrong
//   - Expected: What a valid value should look like
//   - ValidKeys: Accepted keys, listed when an unknown key was used
type ValidationError struct {
	Field     string
	Message   string
	Expected  string
	ValidKeys []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var b strings.Builder
	if e.Field != "" {
		b.WriteString(e.Field)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Expected != "" {
		fmt.Fprintf(&b, " (expected %s)", e.Expected)
	}
	if len(e.ValidKeys) > 0 {
		fmt.Fprintf(&b, "; valid keys: %s", strings.Join(e.ValidKeys, ", "))
	}
	return b.String()
}

// IsValidationError checks if err is a ValidationError and returns it.
func IsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// ValidationErrors aggregates every problem found in one configuration file.
type ValidationErrors struct {
	Source string
	Errors []*ValidationError
}

// Error implements the error interface, listing one problem per line.
func (e *ValidationErrors) Error() string {
	var b strings.Builder
	if e.Source != "" {
		fmt.Fprintf(&b, "configuration validation failed for %s:", e.Source)
	} else {
		b.WriteString("configuration validation failed:")
	}
	for _, ve := range e.Errors {
		b.WriteString("\n  - ")
		b.WriteString(ve.Error())
	}
	return b.String()
}

// Unwrap exposes the individual errors to errors.Is/As.
func (e *ValidationErrors) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i, ve := range e.Errors {
		errs[i] = ve
	}
	return errs
}

// HasErrors reports whether any validation error was collected.
func (e *ValidationErrors) HasErrors() bool {
	return e != nil && len(e.Errors) > 0
}
