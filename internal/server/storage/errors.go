package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrKeyConflict indicates that idempotency key was already used for another request body
	ErrKeyConflict = errors.New("idempotency key reused with different payload")
)
