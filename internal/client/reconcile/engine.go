// Package reconcile реализует движок offline-first синхронизации:
// оптимистичные изменения локального зеркала, очередь отложенных операций
// и их упорядоченный replay при появлении связи с сервером.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/usersync/internal/client/api"
	"github.com/iudanet/usersync/internal/client/connectivity"
	"github.com/iudanet/usersync/internal/client/queue"
	"github.com/iudanet/usersync/internal/client/storage"
	"github.com/iudanet/usersync/internal/models"
	"github.com/iudanet/usersync/internal/validation"
)

// Mode режим replay
type Mode int32

const (
	Idle Mode = iota
	Replaying
)

func (m Mode) String() string {
	if m == Replaying {
		return "replaying"
	}
	return "idle"
}

// ReplayResult итог одного прохода replay
type ReplayResult struct {
	Err       error // первая ошибка, остановившая проход
	Replayed  int   // подтверждено сервером и удалено из очереди
	Remaining int   // осталось в очереди после остановки
	Stopped   bool  // проход остановлен на ошибке
	Skipped   bool  // другой проход уже выполняется
}

// Status сводка для команды status
type Status struct {
	LastSync time.Time
	Mode     Mode
	Pending  int
	Online   bool
}

// Option настраивает Engine
type Option func(*Engine)

// WithRefreshHook регистрирует функцию, вызываемую после каждого обновления снимка
func WithRefreshHook(fn func([]models.Record)) Option {
	return func(e *Engine) {
		e.onRefresh = fn
	}
}

// WithClock подменяет источник времени для last_sync_timestamp
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// Engine единственный владелец изменений локального зеркала и очереди.
// Create, Delete и тело replay сериализованы через mu.
type Engine struct {
	store     storage.LocalStore
	queue     *queue.Queue
	remote    api.ClientAPI
	logger    *slog.Logger
	onRefresh func([]models.Record)
	now       func() time.Time

	snapshot []models.Record
	wg       sync.WaitGroup
	mu       sync.Mutex
	snapMu   sync.RWMutex
	mode     atomic.Int32
	online   atomic.Bool
}

// New создает движок и загружает начальный снимок из локального хранилища
func New(ctx context.Context, store storage.LocalStore, remote api.ClientAPI, logger *slog.Logger, opts ...Option) (*Engine, error) {
	e := &Engine{
		store:  store,
		queue:  queue.New(store),
		remote: remote,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	records, err := store.LoadAll(ctx)
	if err != nil {
		return nil, storageErr("load records", err)
	}
	e.setSnapshot(records)

	return e, nil
}

// Create adds a user record. Online it is created on the server right away;
// otherwise (or when the server call fails) it is stored under a temp id and queued.
func (e *Engine) Create(ctx context.Context, name string, age int) (models.Record, error) {
	name = validation.NormalizeName(name)
	if err := validation.ValidateUser(name, age); err != nil {
		return models.Record{}, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// Ключ выдается заранее: если ответ потерян, replay не создаст дубликат
	requestID := uuid.NewString()

	if e.online.Load() {
		rec, err := e.remote.CreateUser(ctx, name, age, requestID)
		if err == nil {
			if err := e.store.Upsert(ctx, *rec); err != nil {
				e.logger.Error("Failed to store created record", "id", rec.ID, "error", err)
				return models.Record{}, storageErr("upsert record", err)
			}
			e.refreshFromRemote(ctx)
			return *rec, nil
		}
		e.logger.Warn("Remote create failed, queueing insert", "error", err)
	}

	return e.createOffline(ctx, name, age, requestID)
}

func (e *Engine) createOffline(ctx context.Context, name string, age int, requestID string) (models.Record, error) {
	tempID, err := e.store.NextTempID(ctx)
	if err != nil {
		e.logger.Error("Failed to allocate temp id", "error", err)
		return models.Record{}, storageErr("allocate temp id", err)
	}

	rec := models.Record{ID: tempID, Name: name, Age: age}
	if err := e.store.Upsert(ctx, rec); err != nil {
		e.logger.Error("Failed to store optimistic record", "temp_id", tempID, "error", err)
		return models.Record{}, storageErr("upsert record", err)
	}

	op, err := e.queue.EnqueueInsertWithKey(ctx, tempID, name, age, requestID)
	if err != nil {
		// Запись уже видна локально, но без pending insert
		e.logger.Error("Failed to enqueue insert", "temp_id", tempID, "error", err)
		e.refreshFromLocal(ctx)
		return models.Record{}, storageErr("enqueue insert", err)
	}

	e.logger.Debug("Insert queued", "pending_id", op.PendingID, "temp_id", tempID)
	e.refreshFromLocal(ctx)
	return rec, nil
}

// Delete removes a record. Unresolved temp records are dropped locally together
// with their pending insert; server records are deleted remotely or queued.
func (e *Engine) Delete(ctx context.Context, id int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if id < 0 {
		return e.deleteTemp(ctx, id)
	}

	if e.online.Load() {
		err := e.remote.DeleteUser(ctx, id)
		if err == nil || alreadyDeleted(err) {
			if err := e.store.Delete(ctx, id); err != nil {
				e.logger.Error("Failed to delete local record", "id", id, "error", err)
				return storageErr("delete record", err)
			}
			e.refreshFromRemote(ctx)
			return nil
		}
		e.logger.Warn("Remote delete failed, queueing delete", "id", id, "error", err)
	}

	op, err := e.queue.EnqueueDelete(ctx, id)
	if err != nil {
		e.logger.Error("Failed to enqueue delete", "id", id, "error", err)
		return storageErr("enqueue delete", err)
	}
	e.logger.Debug("Delete queued", "pending_id", op.PendingID, "id", id)

	if err := e.store.Delete(ctx, id); err != nil {
		e.logger.Error("Failed to delete local record", "id", id, "error", err)
		e.refreshFromLocal(ctx)
		return storageErr("delete record", err)
	}

	e.refreshFromLocal(ctx)
	return nil
}

// deleteTemp сервер эту запись не видел, удаленных вызовов нет
func (e *Engine) deleteTemp(ctx context.Context, tempID int64) error {
	cancelled, err := e.queue.CancelInsert(ctx, tempID)
	if err != nil {
		e.logger.Error("Failed to cancel pending insert", "temp_id", tempID, "error", err)
		return storageErr("cancel insert", err)
	}
	if !cancelled {
		e.logger.Debug("No pending insert for temp record", "temp_id", tempID)
	}

	if err := e.store.Delete(ctx, tempID); err != nil {
		e.logger.Error("Failed to delete temp record", "temp_id", tempID, "error", err)
		e.refreshFromLocal(ctx)
		return storageErr("delete record", err)
	}

	e.refreshFromLocal(ctx)
	return nil
}

// OnOnline handles an online edge: replays the queue in order and refreshes
// the mirror from the server. Ignored while another pass is running.
func (e *Engine) OnOnline(ctx context.Context) ReplayResult {
	e.online.Store(true)
	return e.replayPass(ctx)
}

// replayPass не трогает флаг online: его выставляет тот, кто видел переход
func (e *Engine) replayPass(ctx context.Context) ReplayResult {
	if !e.mode.CompareAndSwap(int32(Idle), int32(Replaying)) {
		e.logger.Debug("Replay already in progress, online edge ignored")
		return ReplayResult{Skipped: true}
	}
	defer e.mode.Store(int32(Idle))

	e.mu.Lock()
	defer e.mu.Unlock()

	res := e.replay(ctx)
	e.refreshFromRemote(ctx)

	return res
}

// OnOffline handles an offline edge. The queue is left untouched.
func (e *Engine) OnOffline() {
	if e.online.Swap(false) {
		e.logger.Info("Working offline")
	}
}

// Run dispatches connectivity events until ctx is done or events is closed.
// Replay passes run in their own goroutines; Run waits for them before returning.
func (e *Engine) Run(ctx context.Context, events <-chan connectivity.Event) {
	defer e.wg.Wait()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev {
			case connectivity.EventOnline:
				// Флаг выставляется здесь, в порядке событий; иначе поздний
				// goroutine перезапишет следующий за ним offline
				e.online.Store(true)
				e.wg.Add(1)
				go func() {
					defer e.wg.Done()
					e.replayPass(ctx)
				}()
			case connectivity.EventOffline:
				e.OnOffline()
			}
		}
	}
}

func (e *Engine) replay(ctx context.Context) ReplayResult {
	var res ReplayResult

	ops, err := e.queue.DrainInOrder(ctx)
	if err != nil {
		e.logger.Error("Failed to read pending operations", "error", err)
		return ReplayResult{Stopped: true, Err: storageErr("drain queue", err)}
	}
	if len(ops) == 0 {
		return res
	}

	e.logger.Info("Replaying pending operations", "count", len(ops))

	for i, op := range ops {
		if err := e.apply(ctx, op); err != nil {
			res.Stopped = true
			res.Remaining = len(ops) - i
			res.Err = err
			e.logger.Warn("Replay stopped",
				"pending_id", op.PendingID,
				"op_type", op.Type,
				"remaining", res.Remaining,
				"error", err)
			return res
		}
		res.Replayed++
	}

	e.logger.Info("Replay finished", "replayed", res.Replayed)
	return res
}

func (e *Engine) apply(ctx context.Context, op models.PendingOperation) error {
	switch op.Type {
	case models.OpInsert:
		return e.applyInsert(ctx, op)
	case models.OpDelete:
		return e.applyDelete(ctx, op)
	default:
		// Неизвестная операция не должна блокировать очередь навсегда
		e.logger.Error("Dropping unknown pending operation", "pending_id", op.PendingID, "op_type", op.Type)
		return e.acknowledge(ctx, op)
	}
}

func (e *Engine) applyInsert(ctx context.Context, op models.PendingOperation) error {
	rec, err := e.remote.CreateUser(ctx, op.Name, op.Age, op.RequestID)
	if err != nil {
		return err
	}

	err = e.store.Rename(ctx, op.LocalTempID, rec.ID)
	switch {
	case err == nil:
	case errors.Is(err, storage.ErrRecordExists):
		// Серверная запись уже попала в зеркало при предыдущем refresh
		if err := e.store.Delete(ctx, op.LocalTempID); err != nil {
			return storageErr("delete temp record", err)
		}
		if err := e.store.Upsert(ctx, *rec); err != nil {
			return storageErr("upsert record", err)
		}
	case errors.Is(err, storage.ErrRecordNotFound):
		if err := e.store.Upsert(ctx, *rec); err != nil {
			return storageErr("upsert record", err)
		}
	default:
		return storageErr("rename record", err)
	}

	e.logger.Debug("Insert replayed", "pending_id", op.PendingID, "temp_id", op.LocalTempID, "id", rec.ID)
	return e.acknowledge(ctx, op)
}

func (e *Engine) applyDelete(ctx context.Context, op models.PendingOperation) error {
	if err := e.remote.DeleteUser(ctx, op.ServerID); err != nil && !alreadyDeleted(err) {
		return err
	}

	e.logger.Debug("Delete replayed", "pending_id", op.PendingID, "id", op.ServerID)
	return e.acknowledge(ctx, op)
}

func (e *Engine) acknowledge(ctx context.Context, op models.PendingOperation) error {
	if err := e.queue.Acknowledge(ctx, op.PendingID); err != nil {
		return storageErr("acknowledge", err)
	}
	return nil
}

// refreshFromRemote приводит зеркало к списку сервера, при ошибке - снимок из локального состояния
func (e *Engine) refreshFromRemote(ctx context.Context) {
	remote, err := e.remote.ListUsers(ctx)
	if err != nil {
		e.logger.Warn("Failed to list users, using local snapshot", "error", err)
		e.refreshFromLocal(ctx)
		return
	}

	if err := e.mirror(ctx, remote); err != nil {
		e.logger.Error("Failed to mirror server state", "error", err)
	}
	e.refreshFromLocal(ctx)
}

// mirror: серверные записи перезаписывают локальные, кроме ожидающих удаления;
// неотрицательные id, которых нет на сервере, удаляются; временные записи остаются
func (e *Engine) mirror(ctx context.Context, remote []models.Record) error {
	pendingDeletes, err := e.queue.PendingDeletes(ctx)
	if err != nil {
		return err
	}

	onServer := make(map[int64]struct{}, len(remote))
	for _, rec := range remote {
		onServer[rec.ID] = struct{}{}
		if _, ok := pendingDeletes[rec.ID]; ok {
			continue
		}
		if err := e.store.Upsert(ctx, rec); err != nil {
			return err
		}
	}

	local, err := e.store.LoadAll(ctx)
	if err != nil {
		return err
	}
	for _, rec := range local {
		if rec.IsTemporary() {
			continue
		}
		if _, ok := onServer[rec.ID]; ok {
			continue
		}
		if err := e.store.Delete(ctx, rec.ID); err != nil {
			return err
		}
	}

	return e.store.SaveLastSyncTimestamp(ctx, e.now().Unix())
}

func (e *Engine) refreshFromLocal(ctx context.Context) {
	records, err := e.store.LoadAll(ctx)
	if err != nil {
		e.logger.Error("Failed to load records, snapshot unchanged", "error", err)
		return
	}
	e.setSnapshot(records)
}

func (e *Engine) setSnapshot(records []models.Record) {
	e.snapMu.Lock()
	e.snapshot = records
	e.snapMu.Unlock()

	if e.onRefresh != nil {
		e.onRefresh(slices.Clone(records))
	}
}

// Snapshot returns copy of the last refreshed view ordered by id
func (e *Engine) Snapshot() []models.Record {
	e.snapMu.RLock()
	defer e.snapMu.RUnlock()
	return slices.Clone(e.snapshot)
}

// Online reports whether the last connectivity edge was online
func (e *Engine) Online() bool {
	return e.online.Load()
}

// Mode returns current replay mode
func (e *Engine) Mode() Mode {
	return Mode(e.mode.Load())
}

// Pending returns queued operations in replay order
func (e *Engine) Pending(ctx context.Context) ([]models.PendingOperation, error) {
	ops, err := e.queue.DrainInOrder(ctx)
	if err != nil {
		return nil, storageErr("list pending", err)
	}
	return ops, nil
}

// Status collects connectivity, queue length and last refresh time
func (e *Engine) Status(ctx context.Context) (Status, error) {
	n, err := e.queue.Len(ctx)
	if err != nil {
		return Status{}, storageErr("count pending", err)
	}

	ts, err := e.store.GetLastSyncTimestamp(ctx)
	if err != nil {
		return Status{}, storageErr("last sync timestamp", err)
	}

	st := Status{Online: e.Online(), Mode: e.Mode(), Pending: n}
	if ts > 0 {
		st.LastSync = time.Unix(ts, 0)
	}
	return st, nil
}
