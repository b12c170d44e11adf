package usecase

import (
	"context"
	"errors"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	// ErrDependencyUnavailable marks failures of the points source or the
	// record store that may succeed on a later attempt.
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// Retryable reports whether a caller may retry the operation unchanged.
func Retryable(err error) bool {
	return errors.Is(err, ErrDependencyUnavailable) || errors.Is(err, context.DeadlineExceeded)
}
