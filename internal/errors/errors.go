package errors

import (
	"errors"
	"fmt"
)

// Common error types for the web client
var (
	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrNotLoggedIn     = errors.New("not logged in")
	ErrTokenMissing    = errors.New("token missing")

	// Backend errors
	ErrUnauthorized   = errors.New("unauthorized")
	ErrNotFound       = errors.New("not found")
	ErrBackendFailure = errors.New("backend failure")

	// Wizard errors
	ErrStepIncomplete  = errors.New("step incomplete")
	ErrSelectionLimit  = errors.New("selection limit exceeded")
	ErrNothingToSubmit = errors.New("nothing to submit")

	// General errors
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
