// Package connectivity следит за доступностью сервера через WebSocket канал
// и сообщает о переходах online/offline.
package connectivity

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/iudanet/usersync/pkg/api"
)

const (
	// DefaultRetryInterval пауза между попытками подключения
	DefaultRetryInterval = 2 * time.Second

	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 512
)

// State состояние канала связи
type State int32

const (
	Disconnected State = iota
	Connecting
	Connected
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	default:
		return "unknown"
	}
}

// Event переход, на который реагирует движок синхронизации
type Event int

const (
	EventOnline Event = iota + 1
	EventOffline
)

func (e Event) String() string {
	switch e {
	case EventOnline:
		return "online"
	case EventOffline:
		return "offline"
	default:
		return "unknown"
	}
}

// Config параметры монитора. Нулевые длительности заменяются значениями по умолчанию.
type Config struct {
	URL           string
	RetryInterval time.Duration
	WriteWait     time.Duration
	PongWait      time.Duration
	PingPeriod    time.Duration
}

func (c *Config) setDefaults() {
	if c.RetryInterval <= 0 {
		c.RetryInterval = DefaultRetryInterval
	}
	if c.WriteWait <= 0 {
		c.WriteWait = writeWait
	}
	if c.PongWait <= 0 {
		c.PongWait = pongWait
	}
	if c.PingPeriod <= 0 || c.PingPeriod >= c.PongWait {
		c.PingPeriod = (c.PongWait * 9) / 10
	}
}

// Monitor держит одно WebSocket соединение с сервером и переподключается,
// пока соединения нет. Хранилище монитор не трогает.
type Monitor struct {
	logger  *slog.Logger
	dialer  *websocket.Dialer
	events  chan Event
	changed chan struct{}
	cfg     Config
	mu      sync.Mutex
	state   State
}

// New создает монитор. Run запускает его.
func New(cfg Config, logger *slog.Logger) *Monitor {
	cfg.setDefaults()
	return &Monitor{
		cfg:     cfg,
		logger:  logger,
		dialer:  &websocket.Dialer{HandshakeTimeout: cfg.WriteWait},
		events:  make(chan Event, 16),
		changed: make(chan struct{}),
		state:   Disconnected,
	}
}

// Events returns channel of online/offline transitions.
// Channel is closed when Run returns.
func (m *Monitor) Events() <-chan Event {
	return m.events
}

// State returns current connection state
func (m *Monitor) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// WaitState blocks until monitor reaches want or ctx is done
func (m *Monitor) WaitState(ctx context.Context, want State) error {
	for {
		m.mu.Lock()
		state, changed := m.state, m.changed
		m.mu.Unlock()

		if state == want {
			return nil
		}

		select {
		case <-changed:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Run dials the server immediately and redials every RetryInterval while not connected.
// Returns when ctx is cancelled.
func (m *Monitor) Run(ctx context.Context) {
	defer close(m.events)
	defer m.setState(Disconnected)

	for {
		if conn := m.dial(ctx); conn != nil {
			m.serve(ctx, conn)
		}

		if ctx.Err() != nil {
			return
		}

		// Таймер взводится только пока соединения нет
		timer := time.NewTimer(m.cfg.RetryInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

func (m *Monitor) dial(ctx context.Context) *websocket.Conn {
	m.setState(Connecting)

	conn, resp, err := m.dialer.DialContext(ctx, m.cfg.URL, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		m.setState(Disconnected)
		m.logger.Debug("Signal channel dial failed", "url", m.cfg.URL, "error", err)
		return nil
	}

	return conn
}

// serve держит соединение до ошибки чтения или отмены ctx
func (m *Monitor) serve(ctx context.Context, conn *websocket.Conn) {
	m.setState(Connected)
	m.logger.Info("Server is online", "url", m.cfg.URL)
	m.emit(ctx, EventOnline)

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		m.pingLoop(ctx, conn, done)
	}()

	m.readLoop(ctx, conn)

	close(done)
	wg.Wait()
	_ = conn.Close()

	m.setState(Disconnected)
	if ctx.Err() == nil {
		m.logger.Warn("Server went offline", "url", m.cfg.URL)
	}
	m.emit(ctx, EventOffline)
}

func (m *Monitor) readLoop(ctx context.Context, conn *websocket.Conn) {
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(m.cfg.PongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(m.cfg.PongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				m.logger.Debug("Signal channel read failed", "error", err)
			}
			return
		}

		var msg api.SignalMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			m.logger.Warn("Malformed signal frame ignored", "error", err)
			continue
		}

		switch msg.Event {
		case api.SignalEventServerOnline:
			// Тот же сигнал, что и переход в Connected; повтор гасит защита replay в движке
			m.logger.Debug("Server announced itself online")
			m.emit(ctx, EventOnline)
		default:
			m.logger.Debug("Unknown signal event ignored", "event", msg.Event)
		}
	}
}

func (m *Monitor) pingLoop(ctx context.Context, conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(m.cfg.PingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			deadline := time.Now().Add(m.cfg.WriteWait)
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
			_ = conn.WriteControl(websocket.CloseMessage, msg, deadline)
			// Разблокирует readLoop
			_ = conn.Close()
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(m.cfg.WriteWait)); err != nil {
				_ = conn.Close()
				return
			}
		}
	}
}

func (m *Monitor) setState(s State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == s {
		return
	}
	m.state = s
	close(m.changed)
	m.changed = make(chan struct{})
}

func (m *Monitor) emit(ctx context.Context, ev Event) {
	select {
	case m.events <- ev:
	case <-ctx.Done():
	}
}
