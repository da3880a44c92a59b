// Package server собирает HTTP сервер удаленного хранилища пользователей:
// REST /api/users, health check и сигнальный WebSocket /ws.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/iudanet/usersync/internal/config"
	"github.com/iudanet/usersync/internal/server/handlers"
	"github.com/iudanet/usersync/internal/server/middleware"
	"github.com/iudanet/usersync/internal/server/storage"
	"github.com/iudanet/usersync/internal/server/ws"
)

const healthPath = "/api/v1/health"

// Storage хранилище пользователей с проверкой доступности
type Storage interface {
	storage.UserStorage
	handlers.Pinger
}

// Server HTTP сервер пользователей
type Server struct {
	logger    *slog.Logger
	announcer *ws.Announcer
	handler   http.Handler
	cfg       config.ServerConfig
}

// New создает сервер; слушать начинает Run или Serve
func New(cfg config.ServerConfig, logger *slog.Logger, st Storage, version string) *Server {
	announcer := ws.NewAnnouncer(logger)

	return &Server{
		logger:    logger,
		announcer: announcer,
		handler:   newRouter(logger, st, announcer, version),
		cfg:       cfg,
	}
}

func newRouter(logger *slog.Logger, st Storage, announcer http.Handler, version string) http.Handler {
	users := handlers.NewUsersHandler(logger, st)
	health := handlers.NewHealthHandler(logger, st, version)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.LoggingWithSkip(logger, []string{healthPath}))
	r.Use(middleware.RecoveryMiddleware(logger))

	r.Get(healthPath, health.Health)

	r.Get("/api/users", users.List)
	r.Post("/api/users", users.Create)
	r.Put("/api/users/{id}", users.Update)
	r.Delete("/api/users/{id}", users.Delete)

	r.Method(http.MethodGet, "/ws", announcer)

	return r
}

// Handler возвращает роутер сервера
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run слушает cfg.HTTPAddr до отмены ctx
func (s *Server) Run(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.cfg.HTTPAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.HTTPAddr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve обслуживает соединения ln до отмены ctx, затем выполняет graceful shutdown.
// Сигнальные соединения закрываются вместе с сервером.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
	}
	httpServer.RegisterOnShutdown(func() {
		_ = s.announcer.Close()
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Serve(ln)
	}()

	s.logger.InfoContext(ctx, "server started", slog.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		_ = s.announcer.Close()
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server", slog.Duration("timeout", s.cfg.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	shutdownErr := httpServer.Shutdown(shutdownCtx)
	// Shutdown не ждет hijacked соединения
	_ = s.announcer.Close()

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	if shutdownErr != nil {
		return fmt.Errorf("failed to shutdown server: %w", shutdownErr)
	}

	s.logger.Info("server stopped")
	return nil
}
