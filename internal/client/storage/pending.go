package storage

import (
	"context"

	"github.com/iudanet/usersync/internal/models"
)

//go:generate moq -out pendingstorage_mock.go . PendingStorage

// PendingStorage defines interface for the durable table of pending operations
type PendingStorage interface {
	// Enqueue stores operation and assigns PendingID and CreatedAt
	// CreatedAt is strictly greater than CreatedAt of every stored operation
	Enqueue(ctx context.Context, op models.PendingOperation) (models.PendingOperation, error)

	// ListPending returns operations ordered by CreatedAt ascending
	ListPending(ctx context.Context) ([]models.PendingOperation, error)

	// RemovePending removes operation by id; no-op if absent
	RemovePending(ctx context.Context, pendingID uint64) error

	// RemoveInsertByTempID cancels unresolved insert for the temp id
	// Returns false if no insert matched
	RemoveInsertByTempID(ctx context.Context, tempID int64) (bool, error)

	// CountPending returns number of queued operations
	CountPending(ctx context.Context) (int, error)
}

// LocalStore объединяет таблицу записей и таблицу отложенных операций.
// boltdb.Storage реализует все три интерфейса.
type LocalStore interface {
	RecordStorage
	PendingStorage
	MetadataStorage
}
