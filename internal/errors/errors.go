// Package errors defines the structured error type used across acctop.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes for categorizing errors
const (
	ErrConfig   = "CONFIG"
	ErrSample   = "SAMPLE"
	ErrTerminal = "TERMINAL"
)

// Error carries a code, a short message, an optional hint for the user, and
// the underlying cause. Rendered as:
//
//	✗ <What failed>
//
//	  <Cause>
//
//	  <Suggestion>
type Error struct {
	Code       string
	Message    string
	Suggestion string
	Cause      error
}

// New creates a structured error with no cause.
func New(code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}

// Wrap wraps err as a sampling failure.
func Wrap(err error, message string) *Error {
	return &Error{
		Code:    ErrSample,
		Message: message,
		Cause:   err,
	}
}

// WrapWithCode wraps an existing error with a specific code, message, and suggestion.
func WrapWithCode(err error, code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
		Cause:      err,
	}
}

func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("✗ %s\n", e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Cause.Error()))
	}

	if e.Suggestion != "" {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Suggestion))
	}

	return b.String()
}

// Short returns the message and cause on a single line, for inline display
// inside a rendered frame.
func (e *Error) Short() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

// Unwrap returns the underlying cause for use with errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsCode checks if an error is a structured Error with the given code.
func IsCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var acErr *Error
	if errors.As(err, &acErr) {
		return acErr.Code == code
	}
	return false
}

// OneLine flattens any error into a single line.
func OneLine(err error) string {
	if err == nil {
		return ""
	}
	var acErr *Error
	if errors.As(err, &acErr) {
		return acErr.Short()
	}
	return strings.Join(strings.Fields(err.Error()), " ")
}
