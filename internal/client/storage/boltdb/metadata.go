package boltdb

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/usersync/internal/client/storage"
)

var keyLastRefresh = []byte("last_refresh_unix")

var errMetadataMissing = errors.New("metadata bucket not found")

// SaveLastSyncTimestamp records when the mirror last matched the server (unix seconds)
func (s *Storage) SaveLastSyncTimestamp(ctx context.Context, timestamp int64) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		meta := tx.Bucket(bucketMetadata)
		if meta == nil {
			return errMetadataMissing
		}

		value := make([]byte, 8)
		binary.BigEndian.PutUint64(value, uint64(timestamp))
		return meta.Put(keyLastRefresh, value)
	})
	if err != nil {
		return fmt.Errorf("failed to save last refresh time: %w", err)
	}
	return nil
}

// GetLastSyncTimestamp returns 0 until the first authoritative refresh
func (s *Storage) GetLastSyncTimestamp(ctx context.Context) (int64, error) {
	if s.db == nil {
		return 0, storage.ErrStorageClosed
	}

	var ts int64
	err := s.db.View(func(tx *bbolt.Tx) error {
		meta := tx.Bucket(bucketMetadata)
		if meta == nil {
			return errMetadataMissing
		}

		value := meta.Get(keyLastRefresh)
		switch len(value) {
		case 0:
			return nil
		case 8:
			ts = int64(binary.BigEndian.Uint64(value))
			return nil
		default:
			return fmt.Errorf("last refresh time has %d bytes, want 8", len(value))
		}
	})
	if err != nil {
		return 0, fmt.Errorf("failed to get last refresh time: %w", err)
	}
	return ts, nil
}
