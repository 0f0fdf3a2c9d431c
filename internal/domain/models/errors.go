package models

import "fmt"

// MalformedInputError is returned by the strict loader for a row it cannot parse.
type MalformedInputError struct {
	Source string
	Line   int
	Text   string
	Reason string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input %s:%d: %s (%q)", e.Source, e.Line, e.Reason, e.Text)
}

// InsufficientDataError is returned when a series is too short to forecast.
type InsufficientDataError struct {
	Have int
	Need int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: have %d observations, need at least %d", e.Have, e.Need)
}

// ModelFittingError wraps a failure reported by a model backend.
type ModelFittingError struct {
	Backend string
	Err     error
}

func (e *ModelFittingError) Error() string {
	return fmt.Sprintf("model fitting failed (%s): %v", e.Backend, e.Err)
}

func (e *ModelFittingError) Unwrap() error { return e.Err }

// InvalidInputError reports arguments that violate a precondition.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string {
	return "invalid input: " + e.Message
}

// NewInvalidInput formats an InvalidInputError.
func NewInvalidInput(format string, a ...interface{}) *InvalidInputError {
	return &InvalidInputError{Message: fmt.Sprintf(format, a...)}
}

// IOError wraps a file read or write failure.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
