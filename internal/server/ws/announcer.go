// Package ws реализует сигнальный WebSocket канал сервера.
// Каждому подключившемуся клиенту отправляется {"event":"serverOnline"},
// после чего соединение поддерживается ping/pong до отключения.
package ws

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/iudanet/usersync/pkg/api"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// ErrClosed возвращается при повторном закрытии announcer
var ErrClosed = errors.New("announcer closed")

// Announcer обслуживает GET /ws
type Announcer struct {
	logger   *slog.Logger
	conns    map[*websocket.Conn]struct{}
	upgrader websocket.Upgrader
	wg       sync.WaitGroup
	mu       sync.Mutex

	writeWait  time.Duration
	pongWait   time.Duration
	pingPeriod time.Duration

	closed bool
}

// NewAnnouncer создает обработчик сигнального канала
func NewAnnouncer(logger *slog.Logger) *Announcer {
	return &Announcer{
		logger: logger,
		conns:  make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Клиент CLI не отправляет Origin, браузерных клиентов нет
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		writeWait:  writeWait,
		pongWait:   pongWait,
		pingPeriod: pingPeriod,
	}
}

// ServeHTTP выполняет upgrade, объявляет сервер доступным и держит соединение до отключения клиента
func (a *Announcer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if a.isClosed() {
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		return
	}

	conn, err := a.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade уже записал ответ с ошибкой
		a.logger.WarnContext(ctx, "websocket upgrade failed", slog.Any("error", err))
		return
	}

	if !a.register(conn) {
		_ = conn.Close()
		return
	}
	defer a.unregister(conn)

	a.logger.DebugContext(ctx, "signal client connected", slog.String("remote_addr", r.RemoteAddr))

	_ = conn.SetWriteDeadline(time.Now().Add(a.writeWait))
	if err := conn.WriteJSON(api.SignalMessage{Event: api.SignalEventServerOnline}); err != nil {
		a.logger.WarnContext(ctx, "failed to announce server online", slog.Any("error", err))
		return
	}

	done := make(chan struct{})
	pingerDone := make(chan struct{})
	go func() {
		defer close(pingerDone)
		a.pingLoop(conn, done)
	}()

	a.readLoop(conn)

	close(done)
	<-pingerDone

	a.logger.DebugContext(ctx, "signal client disconnected", slog.String("remote_addr", r.RemoteAddr))
}

// readLoop обрабатывает pong и входящие кадры; содержимое кадров не используется
func (a *Announcer) readLoop(conn *websocket.Conn) {
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(a.pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(a.pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				a.logger.Warn("signal connection read error", slog.Any("error", err))
			}
			return
		}
	}
}

func (a *Announcer) pingLoop(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(a.pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(a.writeWait)); err != nil {
				// readLoop завершится по закрытию соединения
				_ = conn.Close()
				return
			}
		}
	}
}

func (a *Announcer) register(conn *websocket.Conn) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return false
	}
	a.conns[conn] = struct{}{}
	a.wg.Add(1)
	return true
}

func (a *Announcer) unregister(conn *websocket.Conn) {
	a.mu.Lock()
	delete(a.conns, conn)
	a.mu.Unlock()

	_ = conn.Close()
	a.wg.Done()
}

func (a *Announcer) isClosed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.closed
}

// Count возвращает число открытых сигнальных соединений
func (a *Announcer) Count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.conns)
}

// Close отправляет клиентам CloseGoingAway и ждет завершения обработчиков.
// http.Server.Shutdown не закрывает hijacked соединения, поэтому Close вызывается при остановке сервера.
func (a *Announcer) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		a.wg.Wait()
		return ErrClosed
	}
	a.closed = true
	conns := make([]*websocket.Conn, 0, len(a.conns))
	for conn := range a.conns {
		conns = append(conns, conn)
	}
	a.mu.Unlock()

	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutdown")
	for _, conn := range conns {
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(a.writeWait))
		_ = conn.Close()
	}

	a.wg.Wait()
	return nil
}
