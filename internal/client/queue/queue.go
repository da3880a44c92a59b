// Package queue хранит намерения, ещё не подтверждённые сервером,
// и отдаёт их строго в порядке создания.
package queue

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/iudanet/usersync/internal/client/storage"
	"github.com/iudanet/usersync/internal/models"
)

// ErrInvalidOperation возвращается для insert с неотрицательным temp id
// или delete с отрицательным server id
var ErrInvalidOperation = errors.New("invalid pending operation")

// Queue обертка над таблицей pending операций
type Queue struct {
	store storage.PendingStorage
}

// New creates queue on top of pending storage
func New(store storage.PendingStorage) *Queue {
	return &Queue{store: store}
}

// EnqueueInsert records intent to create a record that currently lives under tempID.
// The operation gets a fresh RequestID used as idempotency key on replay.
func (q *Queue) EnqueueInsert(ctx context.Context, tempID int64, name string, age int) (models.PendingOperation, error) {
	return q.EnqueueInsertWithKey(ctx, tempID, name, age, uuid.NewString())
}

// EnqueueInsertWithKey как EnqueueInsert, но с уже выданным ключом идемпотентности.
// Нужен, когда онлайн-попытка с этим ключом уже могла дойти до сервера.
func (q *Queue) EnqueueInsertWithKey(ctx context.Context, tempID int64, name string, age int, requestID string) (models.PendingOperation, error) {
	if requestID == "" {
		requestID = uuid.NewString()
	}
	if tempID >= 0 {
		return models.PendingOperation{}, fmt.Errorf("%w: insert temp id %d must be negative", ErrInvalidOperation, tempID)
	}

	return q.store.Enqueue(ctx, models.PendingOperation{
		Type:        models.OpInsert,
		LocalTempID: tempID,
		Name:        name,
		Age:         age,
		RequestID:   requestID,
	})
}

// EnqueueDelete records intent to delete server record
func (q *Queue) EnqueueDelete(ctx context.Context, serverID int64) (models.PendingOperation, error) {
	if serverID < 0 {
		return models.PendingOperation{}, fmt.Errorf("%w: delete server id %d must not be negative", ErrInvalidOperation, serverID)
	}

	return q.store.Enqueue(ctx, models.PendingOperation{
		Type:     models.OpDelete,
		ServerID: serverID,
	})
}

// DrainInOrder returns all pending operations ordered by CreatedAt.
// Operations stay in the queue until acknowledged.
func (q *Queue) DrainInOrder(ctx context.Context) ([]models.PendingOperation, error) {
	ops, err := q.store.ListPending(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(ops, func(i, j int) bool {
		return ops[i].CreatedAt < ops[j].CreatedAt
	})

	return ops, nil
}

// Acknowledge removes operation after server confirmed it
func (q *Queue) Acknowledge(ctx context.Context, pendingID uint64) error {
	return q.store.RemovePending(ctx, pendingID)
}

// CancelInsert drops unresolved insert for tempID
func (q *Queue) CancelInsert(ctx context.Context, tempID int64) (bool, error) {
	return q.store.RemoveInsertByTempID(ctx, tempID)
}

// Len returns number of pending operations
func (q *Queue) Len(ctx context.Context) (int, error) {
	return q.store.CountPending(ctx)
}

// PendingDeletes returns set of server ids with queued delete
func (q *Queue) PendingDeletes(ctx context.Context) (map[int64]struct{}, error) {
	ops, err := q.store.ListPending(ctx)
	if err != nil {
		return nil, err
	}

	ids := make(map[int64]struct{})
	for _, op := range ops {
		if op.IsDelete() {
			ids[op.ServerID] = struct{}{}
		}
	}
	return ids, nil
}
