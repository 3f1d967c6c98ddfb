// Package common defines shared constants and sentinel errors used across
// the layers of the journal server. Callers should use errors.Is to match
// these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrNotFound   = errors.New("not found")
	ErrDuplicate  = errors.New("duplicate value")
	ErrEmptyPatch = errors.New("empty patch")

	// Service-level errors (generic/internal flow control).
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// Credential codec errors (hashing failure or malformed digest).
	ErrHashing = errors.New("hashing error")

	// Auth errors (invalid, malformed or expired token).
	ErrInvalidToken = errors.New("invalid token")
)

// NotFoundError is a lookup miss that remembers which key was missed.
// It matches ErrNotFound under errors.Is, so callers that do not need
// the key can keep matching on the sentinel.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("document not found: %s", e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError wraps a missed lookup key.
func NewNotFoundError(key string) error {
	return &NotFoundError{Key: key}
}
