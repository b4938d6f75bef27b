package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/storyspire/saarthi-api/internal/api/shared"
	"github.com/storyspire/saarthi-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceMiddleware(t *testing.T) {
	var logBuf bytes.Buffer
	base := logger.New(&logBuf, slog.LevelDebug)

	var seenTrace string
	var scoped *slog.Logger
	handler := NewTraceMiddleware(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenTrace = shared.GetTraceID(r.Context())
		var ok bool
		scoped, ok = logger.FromContext(r.Context())
		require.True(t, ok, "handler should see a request logger")
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("generates an id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Len(t, seenTrace, 32)
		assert.Equal(t, seenTrace, rec.Header().Get(TraceHeader))
		assert.NotNil(t, scoped)
		assert.Contains(t, logBuf.String(), seenTrace)
	})

	t.Run("reuses the client id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(TraceHeader, "client-trace-1")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, "client-trace-1", seenTrace)
		assert.Equal(t, "client-trace-1", rec.Header().Get(TraceHeader))
	})
}
