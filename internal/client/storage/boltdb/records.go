package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/usersync/internal/client/storage"
	"github.com/iudanet/usersync/internal/models"
)

// LoadAll returns all records ordered by id ascending
func (s *Storage) LoadAll(ctx context.Context) ([]models.Record, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	records := make([]models.Record, 0)

	err := s.db.View(func(tx *bbolt.Tx) error {
		// Ключи упорядочены по id, поэтому ForEach отдаёт записи уже отсортированными
		return tx.Bucket(bucketRecords).ForEach(func(_, v []byte) error {
			var rec models.Record
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("failed to unmarshal record: %w", err)
			}
			records = append(records, rec)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	return records, nil
}

// Get retrieves a record by id
func (s *Storage) Get(ctx context.Context, id int64) (*models.Record, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var rec *models.Record

	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketRecords).Get(recordKey(id))
		if data == nil {
			return storage.ErrRecordNotFound
		}

		rec = &models.Record{}
		if err := json.Unmarshal(data, rec); err != nil {
			return fmt.Errorf("failed to unmarshal record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return rec, nil
}

// Upsert inserts or overwrites a record by id
func (s *Storage) Upsert(ctx context.Context, rec models.Record) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketRecords).Put(recordKey(rec.ID), data)
	})
	if err != nil {
		return fmt.Errorf("failed to save record %d: %w", rec.ID, err)
	}

	return nil
}

// Delete removes a record by id; no-op if absent
func (s *Storage) Delete(ctx context.Context, id int64) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketRecords).Delete(recordKey(id))
	})
	if err != nil {
		return fmt.Errorf("failed to delete record %d: %w", id, err)
	}

	return nil
}

// Rename changes record id from oldID to newID in one transaction
func (s *Storage) Rename(ctx context.Context, oldID, newID int64) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketRecords)

		data := bucket.Get(recordKey(oldID))
		if data == nil {
			return storage.ErrRecordNotFound
		}
		if oldID == newID {
			return nil
		}
		if bucket.Get(recordKey(newID)) != nil {
			return storage.ErrRecordExists
		}

		var rec models.Record
		if err := json.Unmarshal(data, &rec); err != nil {
			return fmt.Errorf("failed to unmarshal record: %w", err)
		}
		rec.ID = newID

		renamed, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("failed to marshal record: %w", err)
		}

		if err := bucket.Put(recordKey(newID), renamed); err != nil {
			return fmt.Errorf("failed to save renamed record: %w", err)
		}
		if err := bucket.Delete(recordKey(oldID)); err != nil {
			return fmt.Errorf("failed to delete old record: %w", err)
		}
		return nil
	})
}

// NextTempID returns min(-1, minID-1) over the current records
func (s *Storage) NextTempID(ctx context.Context) (int64, error) {
	if s.db == nil {
		return 0, storage.ErrStorageClosed
	}

	var next int64

	err := s.db.View(func(tx *bbolt.Tx) error {
		k, _ := tx.Bucket(bucketRecords).Cursor().First()
		if k == nil {
			next = models.NextTempID(0, false)
			return nil
		}
		next = models.NextTempID(recordID(k), true)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to compute temp id: %w", err)
	}

	return next, nil
}
