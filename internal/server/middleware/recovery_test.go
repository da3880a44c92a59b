package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/usersync/pkg/api"
)

func TestRecoveryMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		panicValue any
		name       string
	}{
		{name: "string", panicValue: "index out of range"},
		{name: "error", panicValue: errors.New("storage exploded")},
		{name: "struct", panicValue: struct{ id int64 }{42}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := RecoveryMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				panic(tt.panicValue)
			}))

			w := httptest.NewRecorder()
			require.NotPanics(t, func() {
				handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/users", nil))
			})

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var resp api.ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, http.StatusText(http.StatusInternalServerError), resp.Error)
			// Детали паники клиенту не отдаются
			assert.Equal(t, "internal server error", resp.Message)
		})
	}
}

func TestRecoveryMiddleware_PassesThrough(t *testing.T) {
	logger, logBuf := newBufferLogger()

	handler := RecoveryMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/users/1", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Empty(t, logBuf.String())
}

func TestRecoveryMiddleware_RepanicsAbortHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	handler := RecoveryMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ws", nil))
	})
}

func TestRecoveryMiddleware_LogsStackTrace(t *testing.T) {
	var logBuf strings.Builder
	logger := slog.New(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{Level: slog.LevelError}))

	handler := RecoveryMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("nil user record")
	}))

	req := httptest.NewRequest(http.MethodPut, "/api/users/7", nil)
	req.RemoteAddr = "10.0.0.7:40000"
	handler.ServeHTTP(httptest.NewRecorder(), req)

	logOutput := logBuf.String()
	assert.Contains(t, logOutput, "Panic recovered")
	assert.Contains(t, logOutput, "nil user record")
	assert.Contains(t, logOutput, "method=PUT")
	assert.Contains(t, logOutput, "path=/api/users/7")
	assert.Contains(t, logOutput, "remote_addr=10.0.0.7:40000")
	assert.Contains(t, logOutput, "goroutine", "log should contain stack trace")
}

// Порядок как в роутере сервера: recovery внутри логирования, 500 попадает в лог запросов
func TestRecoveryMiddleware_InRouterChain(t *testing.T) {
	logger, logBuf := newBufferLogger()

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(LoggingMiddleware(logger))
	r.Use(RecoveryMiddleware(logger))
	r.Get("/api/users", func(w http.ResponseWriter, r *http.Request) {
		panic("list failed")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	logOutput := logBuf.String()
	assert.Contains(t, logOutput, "Panic recovered")
	assert.Contains(t, logOutput, `msg="HTTP request"`)
	assert.Contains(t, logOutput, "status=500")
	assert.Contains(t, logOutput, "level=ERROR")
}
