// Package common holds the error taxonomy shared by the graph packages.
//
// All errors are fail-fast: nothing in the core retries or rolls back. Call
// sites wrap one of the sentinels below with context, so callers classify a
// failure with errors.Is:
//
//	if errors.Is(err, common.ErrInvalidAssignment) { ... }
package common

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration reports a missing or semantically invalid parameter.
	ErrConfiguration = errors.New("configuration error")

	// ErrInvalidAssignment reports a value that fails a feature's validity rule.
	ErrInvalidAssignment = errors.New("invalid assignment")

	// ErrInvalidOperation reports an operation against an object whose state
	// does not support it, e.g. resetting the cache of a non-caching feature.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrInvalidState reports a violated invariant.
	ErrInvalidState = errors.New("invalid state")

	// ErrUnsupportedType reports a runtime type the operation does not handle.
	ErrUnsupportedType = errors.New("unsupported type")
)

// Configurationf wraps ErrConfiguration with a formatted message.
func Configurationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}

// InvalidAssignmentf wraps ErrInvalidAssignment with a formatted message.
func InvalidAssignmentf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidAssignment, fmt.Sprintf(format, args...))
}

// InvalidOperationf wraps ErrInvalidOperation with a formatted message.
func InvalidOperationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidOperation, fmt.Sprintf(format, args...))
}

// InvalidStatef wraps ErrInvalidState with a formatted message.
func InvalidStatef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidState, fmt.Sprintf(format, args...))
}

// UnsupportedTypef wraps ErrUnsupportedType with a formatted message.
func UnsupportedTypef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedType, fmt.Sprintf(format, args...))
}
