package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger() (*slog.Logger, *strings.Builder) {
	var buf strings.Builder
	return slog.New(slog.NewTextHandler(&buf, nil)), &buf
}

func TestLoggingMiddleware_LevelByStatus(t *testing.T) {
	tests := []struct {
		name      string
		method    string
		path      string
		body      string
		wantLevel string
		status    int
	}{
		{name: "list users", method: http.MethodGet, path: "/api/users", body: `[]`, status: http.StatusOK, wantLevel: "level=INFO"},
		{name: "create user", method: http.MethodPost, path: "/api/users", body: `{"name":"Alice","id":1,"age":30}`, status: http.StatusCreated, wantLevel: "level=INFO"},
		{name: "delete user", method: http.MethodDelete, path: "/api/users/1", status: http.StatusNoContent, wantLevel: "level=INFO"},
		{name: "missing user", method: http.MethodDelete, path: "/api/users/999", body: `{"error":"Not Found"}`, status: http.StatusNotFound, wantLevel: "level=WARN"},
		{name: "key conflict", method: http.MethodPost, path: "/api/users", body: `{"error":"Unprocessable Entity"}`, status: http.StatusUnprocessableEntity, wantLevel: "level=WARN"},
		{name: "storage failure", method: http.MethodGet, path: "/api/users", body: `{"error":"Internal Server Error"}`, status: http.StatusInternalServerError, wantLevel: "level=ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, logBuf := newBufferLogger()

			handler := LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))

			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.RemoteAddr = "10.0.0.7:40000"
			req.Header.Set("User-Agent", "usersync-client/test")
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			require.Equal(t, tt.status, w.Code)
			logOutput := logBuf.String()
			assert.Contains(t, logOutput, `msg="HTTP request"`)
			assert.Contains(t, logOutput, tt.wantLevel)
			assert.Contains(t, logOutput, "method="+tt.method)
			assert.Contains(t, logOutput, "path="+tt.path)
			assert.Contains(t, logOutput, "remote_addr=10.0.0.7:40000")
			assert.Contains(t, logOutput, "user_agent=usersync-client/test")
			assert.Contains(t, logOutput, fmt.Sprintf("status=%d", tt.status))
			assert.Contains(t, logOutput, fmt.Sprintf("bytes_written=%d", len(tt.body)))
		})
	}
}

func TestLoggingMiddleware_Duration(t *testing.T) {
	logger, logBuf := newBufferLogger()

	handler := LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(15 * time.Millisecond)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/users", nil))

	logOutput := logBuf.String()
	// Обработчик ничего не записал: статус по умолчанию 200
	assert.Contains(t, logOutput, "status=200")
	assert.Contains(t, logOutput, "bytes_written=0")
	assert.Regexp(t, `duration_ms=(1[5-9]|[2-9]\d|\d{3,})`, logOutput)
	// Вне chi маршрут и request id пустые
	assert.Contains(t, logOutput, "route=\"\"")
	assert.Contains(t, logOutput, "request_id=\"\"")
}

func TestLoggingMiddleware_RouteAndRequestID(t *testing.T) {
	var logBuf strings.Builder
	logger := slog.New(slog.NewTextHandler(&logBuf, nil))

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(LoggingMiddleware(logger))
	r.Delete("/api/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodDelete, "/api/users/42", nil)
	req.Header.Set(chimw.RequestIDHeader, "req-123")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	logOutput := logBuf.String()
	assert.Contains(t, logOutput, "route=/api/users/{id}")
	assert.Contains(t, logOutput, "path=/api/users/42")
	assert.Contains(t, logOutput, "request_id=req-123")
	assert.Contains(t, logOutput, "status=204")
}

func TestLoggingMiddleware_WebSocketUpgrade(t *testing.T) {
	var (
		mu     sync.Mutex
		logBuf strings.Builder
	)
	logger := slog.New(slog.NewTextHandler(writerFunc(func(p []byte) (int, error) {
		mu.Lock()
		defer mu.Unlock()
		return logBuf.Write(p)
	}), nil))

	upgrader := websocket.Upgrader{}
	done := make(chan struct{})
	handler := LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer close(done)
		conn, err := upgrader.Upgrade(w, r, nil)
		if !assert.NoError(t, err, "wrapped writer must support hijacking") {
			return
		}
		_ = conn.Close()
	}))

	srv := httptest.NewServer(handler)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	_ = conn.Close()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handler did not finish")
	}

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return strings.Contains(logBuf.String(), "status=101")
	}, time.Second, 10*time.Millisecond)
}

type writerFunc func(p []byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }

func TestResponseWriter_HijackUnsupported(t *testing.T) {
	rw := &responseWriter{ResponseWriter: httptest.NewRecorder(), statusCode: http.StatusOK}

	_, _, err := rw.Hijack()
	assert.Error(t, err)
	assert.Equal(t, http.StatusOK, rw.statusCode)
}

func TestLoggingWithSkip(t *testing.T) {
	logger, logBuf := newBufferLogger()

	handler := LoggingWithSkip(logger, []string{"/api/v1/health"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))

	tests := []struct {
		name   string
		path   string
		logged bool
	}{
		{name: "health check is not logged", path: "/api/v1/health"},
		{name: "users are logged", path: "/api/users", logged: true},
		{name: "skip matches the exact path", path: "/api/v1/health/extra", logged: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logBuf.Reset()

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, http.StatusOK, w.Code)
			if tt.logged {
				assert.Contains(t, logBuf.String(), "path="+tt.path)
			} else {
				assert.Empty(t, logBuf.String())
			}
		})
	}
}

func TestResponseWriter_Captures(t *testing.T) {
	tests := []struct {
		name        string
		chunks      []string
		writeStatus int
		wantStatus  int
		wantBytes   int64
	}{
		{name: "created with body", writeStatus: http.StatusCreated, chunks: []string{`{"id":1,`, `"name":"Alice","age":30}`}, wantStatus: http.StatusCreated, wantBytes: 32},
		{name: "no content", writeStatus: http.StatusNoContent, wantStatus: http.StatusNoContent},
		{name: "implicit 200", chunks: []string{"[]"}, wantStatus: http.StatusOK, wantBytes: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rw := &responseWriter{ResponseWriter: httptest.NewRecorder(), statusCode: http.StatusOK}

			if tt.writeStatus != 0 {
				rw.WriteHeader(tt.writeStatus)
			}
			for _, c := range tt.chunks {
				n, err := rw.Write([]byte(c))
				require.NoError(t, err)
				assert.Equal(t, len(c), n)
			}

			assert.Equal(t, tt.wantStatus, rw.statusCode)
			assert.Equal(t, tt.wantBytes, rw.written)
			assert.Same(t, rw.ResponseWriter, rw.Unwrap())
		})
	}
}
