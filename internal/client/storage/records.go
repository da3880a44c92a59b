package storage

import (
	"context"

	"github.com/iudanet/usersync/internal/models"
)

// RecordStorage defines interface for the local mirror of user records.
// Every method is a single durable write (or read); there is no multi-call transaction.
type RecordStorage interface {
	// LoadAll returns all records ordered by id ascending
	LoadAll(ctx context.Context) ([]models.Record, error)

	// Get retrieves a record by id
	// Returns ErrRecordNotFound if record doesn't exist
	Get(ctx context.Context, id int64) (*models.Record, error)

	// Upsert inserts or overwrites a record by id
	Upsert(ctx context.Context, rec models.Record) error

	// Delete removes a record; no-op if absent
	Delete(ctx context.Context, id int64) error

	// Rename changes record id in place
	// Returns ErrRecordNotFound if oldID is absent and ErrRecordExists if newID is taken
	Rename(ctx context.Context, oldID, newID int64) error

	// NextTempID returns a strictly negative id not used by any record
	NextTempID(ctx context.Context) (int64, error)
}
