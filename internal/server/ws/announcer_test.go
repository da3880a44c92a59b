package ws

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/iudanet/usersync/pkg/api"
)

// newTestAnnouncer запускает announcer за httptest сервером.
// Таймауты задаются до старта сервера; cleanup вызывается через defer до проверки goleak.
func newTestAnnouncer(t *testing.T, pingPeriod, pongWait time.Duration) (*Announcer, string, func()) {
	t.Helper()

	a := NewAnnouncer(slog.New(slog.NewTextHandler(io.Discard, nil)))
	if pingPeriod > 0 {
		a.pingPeriod = pingPeriod
	}
	if pongWait > 0 {
		a.pongWait = pongWait
	}
	srv := httptest.NewServer(a)
	cleanup := func() {
		_ = a.Close()
		srv.Close()
	}

	return a, "ws" + strings.TrimPrefix(srv.URL, "http"), cleanup
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn
}

func TestAnnouncer_SendsServerOnline(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	a, url, cleanup := newTestAnnouncer(t, 0, 0)
	defer cleanup()
	conn := dial(t, url)
	defer func() { _ = conn.Close() }()

	var msg api.SignalMessage
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, api.SignalEventServerOnline, msg.Event)

	require.Eventually(t, func() bool { return a.Count() == 1 }, time.Second, 10*time.Millisecond)

	// Отключение клиента освобождает соединение на сервере
	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	require.Eventually(t, func() bool { return a.Count() == 0 }, time.Second, 10*time.Millisecond)
}

func TestAnnouncer_EveryConnectionIsAnnounced(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	a, url, cleanup := newTestAnnouncer(t, 0, 0)
	defer cleanup()

	for range 3 {
		conn := dial(t, url)
		var msg api.SignalMessage
		require.NoError(t, conn.ReadJSON(&msg))
		assert.Equal(t, api.SignalEventServerOnline, msg.Event)
		_ = conn.Close()
	}

	require.Eventually(t, func() bool { return a.Count() == 0 }, time.Second, 10*time.Millisecond)
}

func TestAnnouncer_Pings(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	a, url, cleanup := newTestAnnouncer(t, 20*time.Millisecond, 200*time.Millisecond)
	defer cleanup()

	conn := dial(t, url)
	defer func() { _ = conn.Close() }()

	var pings atomic.Int32
	conn.SetPingHandler(func(data string) error {
		pings.Add(1)
		return conn.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(time.Second))
	})

	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	require.Eventually(t, func() bool { return pings.Load() >= 3 }, 2*time.Second, 10*time.Millisecond)
	// Клиент отвечает на ping, поэтому соединение живет дольше pongWait
	assert.Equal(t, 1, a.Count())

	_ = conn.Close()
	<-readDone
}

func TestAnnouncer_DropsSilentClient(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	a, url, cleanup := newTestAnnouncer(t, time.Hour, 100*time.Millisecond)
	defer cleanup()

	conn := dial(t, url)
	defer func() { _ = conn.Close() }()

	// Клиент не читает и не отвечает на ping: сервер закрывает соединение по таймауту
	require.Eventually(t, func() bool { return a.Count() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestAnnouncer_Close(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	a, url, cleanup := newTestAnnouncer(t, 0, 0)
	defer cleanup()
	conn := dial(t, url)
	defer func() { _ = conn.Close() }()

	var msg api.SignalMessage
	require.NoError(t, conn.ReadJSON(&msg))
	require.Eventually(t, func() bool { return a.Count() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, a.Close())
	assert.Equal(t, 0, a.Count())

	_, _, err := conn.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "unexpected error: %v", err)

	assert.ErrorIs(t, a.Close(), ErrClosed)

	// После Close новые подключения отклоняются
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestAnnouncer_RejectsPlainHTTP(t *testing.T) {
	a := NewAnnouncer(slog.New(slog.NewTextHandler(io.Discard, nil)))
	defer func() { _ = a.Close() }()

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	w := httptest.NewRecorder()

	a.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, a.Count())
}
