package cli

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/iudanet/usersync/internal/client/api"
	"github.com/iudanet/usersync/internal/client/connectivity"
	"github.com/iudanet/usersync/internal/client/iocli"
	"github.com/iudanet/usersync/internal/client/reconcile"
	"github.com/iudanet/usersync/internal/client/storage/boltdb"
	"github.com/iudanet/usersync/internal/config"
)

// session связывает хранилище, удаленный клиент, монитор связи и движок
// на время выполнения одной команды
type session struct {
	cfg     config.ClientConfig
	logger  *slog.Logger
	store   *boltdb.Storage
	monitor *connectivity.Monitor
	engine  *reconcile.Engine
	cli     *Cli

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func openSession(ctx context.Context, cfg config.ClientConfig, logger *slog.Logger, out iocli.IO) (*session, error) {
	store, err := boltdb.New(ctx, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open local storage: %w", err)
	}

	remote := api.NewClient(cfg.ServerURL, cfg.RequestTimeout)

	// Хук движка печатает через Cli, поэтому Cli создается раньше движка
	c := New(nil, out)
	engine, err := reconcile.New(ctx, store, remote, logger, reconcile.WithRefreshHook(c.OnRefresh))
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to start engine: %w", err)
	}
	c.engine = engine

	monitor := connectivity.New(connectivity.Config{
		URL:           cfg.SignalURL(),
		RetryInterval: cfg.RetryInterval,
	}, logger)
	c.SetServerProbe(func() string { return monitor.State().String() })

	return &session{
		cfg:     cfg,
		logger:  logger,
		store:   store,
		monitor: monitor,
		engine:  engine,
		cli:     c,
		cancel:  func() {},
	}, nil
}

// follow starts the monitor. Online edges are replayed by the caller;
// only offline edges are forwarded to the engine.
func (s *session) follow(ctx context.Context) {
	s.start(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for ev := range s.monitor.Events() {
			if ev == connectivity.EventOffline {
				s.engine.OnOffline()
			}
		}
	}()
}

// live starts the monitor and lets the engine react to every edge
func (s *session) live(ctx context.Context) {
	ctx = s.start(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.engine.Run(ctx, s.monitor.Events())
	}()
}

func (s *session) start(ctx context.Context) context.Context {
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.monitor.Run(ctx)
	}()
	return ctx
}

// connect ждет соединения не дольше connect_timeout
func (s *session) connect(ctx context.Context) bool {
	waitCtx, cancel := context.WithTimeout(ctx, s.cfg.ConnectTimeout)
	defer cancel()

	if err := s.monitor.WaitState(waitCtx, connectivity.Connected); err != nil {
		s.logger.Info("Server unreachable, working offline", "url", s.cfg.SignalURL())
		return false
	}
	return true
}

// goOnline waits for the server and replays the queue before a mutation
func (s *session) goOnline(ctx context.Context) {
	if !s.connect(ctx) {
		return
	}
	res := s.engine.OnOnline(ctx)
	if res.Stopped {
		s.logger.Warn("Replay stopped", "replayed", res.Replayed, "remaining", res.Remaining, "error", res.Err)
		return
	}
	if res.Replayed > 0 {
		s.logger.Info("Pending operations replayed", "replayed", res.Replayed)
	}
}

func (s *session) Close() error {
	s.cancel()
	s.wg.Wait()
	if err := s.store.Close(); err != nil {
		return fmt.Errorf("failed to close local storage: %w", err)
	}
	return nil
}
