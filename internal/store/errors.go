package store

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrUnknownBackend is returned for an unsupported backend name.
	ErrUnknownBackend = errors.New("unknown store backend")

	// ErrNotFound is returned when the gist or database does not exist.
	ErrNotFound = errors.New("dictionary not found")

	// ErrUnauthorized is returned when the store rejects the credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimited is returned when GitHub refuses requests until its
	// rate limit resets.
	ErrRateLimited = errors.New("rate limited")

	// ErrMalformed is returned when a stored file is not a JSON object.
	ErrMalformed = errors.New("malformed dictionary file")
)

// StoreError wraps a failed store operation.
type StoreError struct {
	Backend string
	Op      string
	Err     error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Backend, e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *StoreError) Unwrap() error {
	return e.Err
}
