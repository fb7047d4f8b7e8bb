// Package errors defines the error classes the codec reports. Every domain
// error wraps one class sentinel; transports and metrics classify errors with
// KindOf instead of matching individual domain errors.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks failures caused by the caller's data: malformed or
	// tampered tokens, unknown variants, identifiers a provider cannot represent.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnavailable marks a bounded resource that could not be obtained in
	// time. The same call may succeed later.
	ErrUnavailable = errors.New("unavailable")
)

// Kind is the class of an error.
type Kind int

const (
	// KindNone is the kind of a nil error.
	KindNone Kind = iota
	// KindInvalidInput is the kind of errors wrapping ErrInvalidInput.
	KindInvalidInput
	// KindUnavailable is the kind of errors wrapping ErrUnavailable.
	KindUnavailable
	// KindInternal is the kind of every other error.
	KindInternal
)

// String returns the snake_case name used in API error codes and metric labels.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindInvalidInput:
		return "invalid_input"
	case KindUnavailable:
		return "unavailable"
	default:
		return "internal_error"
	}
}

// KindOf classifies err. Input errors win when an error wraps both sentinels.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, ErrUnavailable):
		return KindUnavailable
	default:
		return KindInternal
	}
}

// Retryable reports whether repeating the call may succeed.
func Retryable(err error) bool {
	return KindOf(err) == KindUnavailable
}

// New creates a new error with the given message.
func New(message string) error {
	return errors.New(message)
}

// Wrap prefixes err with message, keeping err in the chain. Returns nil for a nil err.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
