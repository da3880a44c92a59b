package storage

import "errors"

// Common client storage errors
var (
	// ErrRecordNotFound indicates that record with given id does not exist
	ErrRecordNotFound = errors.New("record not found")

	// ErrRecordExists indicates that rename target id is already taken
	ErrRecordExists = errors.New("record already exists")

	// ErrPendingNotFound indicates that pending operation was not found
	ErrPendingNotFound = errors.New("pending operation not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
