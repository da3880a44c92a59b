package boltdb

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"github.com/iudanet/usersync/internal/client/storage"
	"github.com/iudanet/usersync/internal/clock"
	"github.com/iudanet/usersync/internal/models"
)

// createTestStorage открывает хранилище во временной директории
func createTestStorage(t *testing.T) (*Storage, string) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "mirror.db")
	store, err := New(context.Background(), dbPath)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})

	return store, dbPath
}

func TestNew_CreatesBuckets(t *testing.T) {
	store, dbPath := createTestStorage(t)

	info, err := os.Stat(dbPath)
	require.NoError(t, err)
	assert.False(t, info.IsDir())

	err = store.db.View(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketRecords, bucketPending, bucketMetadata} {
			if tx.Bucket(b) == nil {
				return os.ErrNotExist
			}
		}
		return nil
	})
	require.NoError(t, err)
}

func TestNew_InvalidPath(t *testing.T) {
	store, err := New(context.Background(), filepath.Join(t.TempDir(), "missing", "dir", "mirror.db"))
	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestClose_Idempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "mirror.db")
	store, err := New(context.Background(), dbPath)
	require.NoError(t, err)

	require.NoError(t, store.Close())
	assert.Nil(t, store.db)
	assert.NoError(t, store.Close())
}

func TestClosedStorage(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "mirror.db")
	store, err := New(ctx, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	_, err = store.LoadAll(ctx)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)

	_, err = store.Get(ctx, 1)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)

	assert.ErrorIs(t, store.Upsert(ctx, models.Record{ID: 1}), storage.ErrStorageClosed)
	assert.ErrorIs(t, store.Delete(ctx, 1), storage.ErrStorageClosed)
	assert.ErrorIs(t, store.Rename(ctx, -1, 1), storage.ErrStorageClosed)

	_, err = store.NextTempID(ctx)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)

	_, err = store.Enqueue(ctx, models.PendingOperation{Type: models.OpDelete, ServerID: 1})
	assert.ErrorIs(t, err, storage.ErrStorageClosed)

	_, err = store.ListPending(ctx)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)

	assert.ErrorIs(t, store.RemovePending(ctx, 1), storage.ErrStorageClosed)

	_, err = store.RemoveInsertByTempID(ctx, -1)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)

	_, err = store.CountPending(ctx)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)

	assert.ErrorIs(t, store.SaveLastSyncTimestamp(ctx, 1), storage.ErrStorageClosed)

	_, err = store.GetLastSyncTimestamp(ctx)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}

func TestReopen_KeepsDataAndClockOrder(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "mirror.db")

	store, err := New(ctx, dbPath)
	require.NoError(t, err)

	require.NoError(t, store.Upsert(ctx, models.Record{ID: 4, Name: "ann", Age: 30}))
	first, err := store.Enqueue(ctx, models.PendingOperation{Type: models.OpDelete, ServerID: 4})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Часы после перезапуска стоят в прошлом, но метки все равно должны расти
	frozen := clock.NewWithSource(func() time.Time { return time.Unix(0, 1) })
	store, err = NewWithClock(ctx, dbPath, frozen)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, store.Close())
	}()

	records, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Record{{ID: 4, Name: "ann", Age: 30}}, records)

	second, err := store.Enqueue(ctx, models.PendingOperation{Type: models.OpDelete, ServerID: 5})
	require.NoError(t, err)
	assert.Greater(t, second.CreatedAt, first.CreatedAt)
	assert.Greater(t, second.PendingID, first.PendingID)
}

func TestRecordKey_Order(t *testing.T) {
	ids := []int64{-9000, -2, -1, 0, 1, 2, 1 << 40}
	for i := 1; i < len(ids); i++ {
		assert.True(t, string(recordKey(ids[i-1])) < string(recordKey(ids[i])), "ids %d and %d", ids[i-1], ids[i])
	}
	for _, id := range ids {
		assert.Equal(t, id, recordID(recordKey(id)))
	}
}
