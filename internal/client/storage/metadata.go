package storage

import "context"

// MetadataStorage defines interface for storing client metadata
type MetadataStorage interface {
	// SaveLastSyncTimestamp saves the time (unix seconds) of the last successful authoritative refresh
	SaveLastSyncTimestamp(ctx context.Context, timestamp int64) error

	// GetLastSyncTimestamp retrieves the time of the last successful refresh
	// Returns 0 if no refresh has been performed yet
	GetLastSyncTimestamp(ctx context.Context) (int64, error)
}
