package boltdb

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"go.etcd.io/bbolt"

	"github.com/iudanet/usersync/internal/client/storage"
	"github.com/iudanet/usersync/internal/models"
)

// Enqueue stores pending operation, assigning PendingID and CreatedAt
func (s *Storage) Enqueue(ctx context.Context, op models.PendingOperation) (models.PendingOperation, error) {
	if s.db == nil {
		return models.PendingOperation{}, storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketPending)

		seq, err := bucket.NextSequence()
		if err != nil {
			return fmt.Errorf("failed to allocate pending id: %w", err)
		}
		op.PendingID = seq
		op.CreatedAt = s.clock.Stamp()

		data, err := json.Marshal(op)
		if err != nil {
			return fmt.Errorf("failed to marshal pending operation: %w", err)
		}

		return bucket.Put(pendingKey(seq), data)
	})
	if err != nil {
		return models.PendingOperation{}, fmt.Errorf("failed to enqueue %s operation: %w", op.Type, err)
	}

	return op, nil
}

// ListPending returns pending operations ordered by CreatedAt ascending
func (s *Storage) ListPending(ctx context.Context) ([]models.PendingOperation, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	ops := make([]models.PendingOperation, 0)

	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketPending).ForEach(func(_, v []byte) error {
			var op models.PendingOperation
			if err := json.Unmarshal(v, &op); err != nil {
				return fmt.Errorf("failed to unmarshal pending operation: %w", err)
			}
			ops = append(ops, op)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list pending operations: %w", err)
	}

	// Ключи и так идут по порядку вставки, но порядок определяется created_at
	sort.SliceStable(ops, func(i, j int) bool {
		return ops[i].CreatedAt < ops[j].CreatedAt
	})

	return ops, nil
}

// RemovePending removes pending operation by id; no-op if absent
func (s *Storage) RemovePending(ctx context.Context, pendingID uint64) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketPending).Delete(pendingKey(pendingID))
	})
	if err != nil {
		return fmt.Errorf("failed to remove pending operation %d: %w", pendingID, err)
	}

	return nil
}

// RemoveInsertByTempID removes the pending insert that creates record with tempID
func (s *Storage) RemoveInsertByTempID(ctx context.Context, tempID int64) (bool, error) {
	if s.db == nil {
		return false, storage.ErrStorageClosed
	}

	var removed bool

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketPending)
		c := bucket.Cursor()

		for k, v := c.First(); k != nil; k, v = c.Next() {
			var op models.PendingOperation
			if err := json.Unmarshal(v, &op); err != nil {
				return fmt.Errorf("failed to unmarshal pending operation: %w", err)
			}
			if !op.IsInsert() || op.LocalTempID != tempID {
				continue
			}
			if err := c.Delete(); err != nil {
				return err
			}
			removed = true
			return nil
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to cancel insert for %d: %w", tempID, err)
	}

	return removed, nil
}

// CountPending returns number of queued operations
func (s *Storage) CountPending(ctx context.Context) (int, error) {
	if s.db == nil {
		return 0, storage.ErrStorageClosed
	}

	var n int
	err := s.db.View(func(tx *bbolt.Tx) error {
		n = tx.Bucket(bucketPending).Stats().KeyN
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count pending operations: %w", err)
	}

	return n, nil
}
