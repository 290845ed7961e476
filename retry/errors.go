package retry

import (
	"fmt"
	"strings"
)

// MultiError collects the error of every failed attempt.
type MultiError struct {
	Errors   []error
	Attempts int
}

// Error implements the error interface.
func (e *MultiError) Error() string {
	if len(e.Errors) == 0 {
		return "retry: no errors"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "retry: %d attempt(s) failed", e.Attempts)
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "; #%d: %v", i+1, err)
	}
	return sb.String()
}

// Unwrap exposes the last attempt's error to errors.Is/As.
func (e *MultiError) Unwrap() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e.Errors[len(e.Errors)-1]
}
