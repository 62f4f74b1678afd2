// Package apperr defines the sentinel errors shared across layers.
package apperr

import "errors"

var (
	// ErrNotFound means the requested post (or image) does not exist.
	// Handlers map it to 404; callers must never treat it as fatal.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput means the caller supplied something unusable
	// (malformed body, disallowed upload type). Handlers map it to 400.
	ErrInvalidInput = errors.New("invalid input")

	// ErrIO wraps filesystem failures at the storage boundary so handlers
	// answer with an error response instead of crashing the process.
	ErrIO = errors.New("i/o failure")
)
