package core

import "github.com/pkg/errors"

// FieldError reports a validation problem on a single input field.
type FieldError struct {
	Field string
	Error string
}

// ValidationError wraps an invalid-input error together with its field details;
// the API layer renders it as a 400 with a per-field message map.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

type shutdown struct {
	message string
}

// NewShutdownError returns an error that signals the server to shut down
// gracefully instead of answering further requests.
func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

// IsShutdown checks whether err, at its cause, is a shutdown error.
func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
