package cli

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/iudanet/usersync/internal/client/iocli"
	"github.com/iudanet/usersync/internal/client/reconcile"
	"github.com/iudanet/usersync/internal/models"
	"github.com/iudanet/usersync/internal/validation"
)

// ErrServerUnreachable сервер не ответил за connect_timeout
var ErrServerUnreachable = errors.New("server unreachable")

// Engine операции движка, которые нужны CLI
type Engine interface {
	Create(ctx context.Context, name string, age int) (models.Record, error)
	Delete(ctx context.Context, id int64) error
	OnOnline(ctx context.Context) reconcile.ReplayResult
	Snapshot() []models.Record
	Pending(ctx context.Context) ([]models.PendingOperation, error)
	Status(ctx context.Context) (reconcile.Status, error)
}

type Cli struct {
	engine Engine
	io     iocli.IO
	probe  func() string
	// live: shell перерисовывает таблицу после каждого refresh
	live atomic.Bool
}

func New(engine Engine, io iocli.IO) *Cli {
	return &Cli{
		engine: engine,
		io:     io,
	}
}

// OnRefresh is registered as the engine refresh hook
func (c *Cli) OnRefresh(records []models.Record) {
	if !c.live.Load() {
		return
	}
	c.io.Println()
	c.renderTable(records)
}

// Add validates input and creates a user record
func (c *Cli) Add(ctx context.Context, name, ageArg string) error {
	age, err := validation.ParseAge(ageArg)
	if err != nil {
		return fmt.Errorf("invalid age: %w", err)
	}

	name = validation.NormalizeName(name)
	if err := validation.ValidateName(name); err != nil {
		return fmt.Errorf("invalid name: %w", err)
	}

	rec, err := c.engine.Create(ctx, name, age)
	if err != nil {
		return fmt.Errorf("failed to add user: %w", err)
	}

	if rec.IsTemporary() {
		c.io.Printf("Saved offline: %s (age %d) as %d\n", rec.Name, rec.Age, rec.ID)
	} else {
		c.io.Printf("✓ Created %s (age %d) with id %d\n", rec.Name, rec.Age, rec.ID)
	}
	c.pendingHint(ctx)
	return nil
}

// Delete removes a record by server or temp id
func (c *Cli) Delete(ctx context.Context, idArg string) error {
	id, err := validation.ParseID(idArg)
	if err != nil {
		return fmt.Errorf("invalid id: %w", err)
	}

	if err := c.engine.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	c.io.Printf("✓ Deleted %d\n", id)
	c.pendingHint(ctx)
	return nil
}

// List prints the current snapshot
func (c *Cli) List() {
	c.renderTable(c.engine.Snapshot())
}

// Pending prints queued operations in replay order
func (c *Cli) Pending(ctx context.Context) error {
	ops, err := c.engine.Pending(ctx)
	if err != nil {
		return fmt.Errorf("failed to list pending operations: %w", err)
	}
	return c.render(pendingTemplate, ops)
}

// Status prints connectivity, queue length and last refresh time.
// server описывает результат проверки связи
func (c *Cli) Status(ctx context.Context, server string) error {
	st, err := c.engine.Status(ctx)
	if err != nil {
		return fmt.Errorf("failed to get status: %w", err)
	}
	return c.render(statusTemplate, statusView{Status: st, Server: server})
}

// Sync runs one replay pass and prints its outcome
func (c *Cli) Sync(ctx context.Context) error {
	res := c.engine.OnOnline(ctx)
	if err := c.render(replayTemplate, res); err != nil {
		return err
	}
	if res.Stopped {
		return fmt.Errorf("synchronization stopped: %w", res.Err)
	}
	return nil
}

func (c *Cli) pendingHint(ctx context.Context) {
	ops, err := c.engine.Pending(ctx)
	if err != nil {
		c.io.Printf("Warning: failed to count pending operations: %v\n", err)
		return
	}
	if len(ops) > 0 {
		c.io.Printf("%d operation(s) waiting for the server\n", len(ops))
	}
}
