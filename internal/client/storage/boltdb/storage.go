package boltdb

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/iudanet/usersync/internal/client/storage"
	"github.com/iudanet/usersync/internal/clock"
	"github.com/iudanet/usersync/internal/models"
)

var (
	// BoltDB bucket names
	bucketRecords  = []byte("records")
	bucketPending  = []byte("pending")
	bucketMetadata = []byte("metadata")
)

// Storage represents BoltDB storage implementation for client.
// Implements storage.LocalStore.
type Storage struct {
	db    *bbolt.DB
	clock *clock.Monotonic
}

var _ storage.LocalStore = (*Storage)(nil)

// New creates a new BoltDB storage instance
// dbPath is the path to the BoltDB database file
func New(ctx context.Context, dbPath string) (*Storage, error) {
	return NewWithClock(ctx, dbPath, clock.New())
}

// NewWithClock creates storage with custom clock for pending operation timestamps
func NewWithClock(ctx context.Context, dbPath string, clk *clock.Monotonic) (*Storage, error) {
	// Открываем BoltDB
	db, err := bbolt.Open(dbPath, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	s := &Storage{db: db, clock: clk}

	// Инициализируем buckets
	if err := s.initBuckets(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	// Часы не должны выдать метку меньше уже сохранённых
	if err := s.seedClock(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to seed clock: %w", err)
	}

	return s, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// initBuckets создает необходимые buckets если они не существуют
func (s *Storage) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketRecords, bucketPending, bucketMetadata} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("failed to create %s bucket: %w", name, err)
			}
		}
		return nil
	})
}

// seedClock продвигает часы до максимального created_at среди pending операций
func (s *Storage) seedClock() error {
	return s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketPending).ForEach(func(_, v []byte) error {
			var op models.PendingOperation
			if err := json.Unmarshal(v, &op); err != nil {
				return fmt.Errorf("failed to unmarshal pending operation: %w", err)
			}
			s.clock.Observe(op.CreatedAt)
			return nil
		})
	})
}

// recordKey кодирует id так, чтобы порядок байт совпадал с числовым порядком
func recordKey(id int64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(id)^(1<<63))
	return key
}

func recordID(key []byte) int64 {
	return int64(binary.BigEndian.Uint64(key) ^ (1 << 63))
}

func pendingKey(id uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, id)
	return key
}
