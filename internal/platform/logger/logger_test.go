// Package logger_test contains tests for the logger package
package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/storyspire/saarthi-api/internal/config"
	"github.com/storyspire/saarthi-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		want   slog.Level
		wantOK bool
	}{
		{name: "debug", want: slog.LevelDebug, wantOK: true},
		{name: "INFO", want: slog.LevelInfo, wantOK: true},
		{name: " warn ", want: slog.LevelWarn, wantOK: true},
		{name: "error", want: slog.LevelError, wantOK: true},
		{name: "fatal", want: slog.LevelInfo, wantOK: false},
		{name: "", want: slog.LevelInfo, wantOK: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := logger.ParseLevel(tc.name)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.wantOK, ok)
		})
	}
}

// TestSetupWithWriter is not parallel: it replaces the default logger.
func TestSetupWithWriter(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	var buf bytes.Buffer
	l, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: "warn"}, &buf)
	require.NoError(t, err)
	require.NotNil(t, l)

	l.Info("dropped")
	slog.Warn("kept", "component", "test")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1, "info records must be filtered at warn level")

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "test", entry["component"])
}

func TestSetupWithWriter_InvalidLevelFallsBackToInfo(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	var buf bytes.Buffer
	l, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: "verbose"}, &buf)
	require.NoError(t, err)

	l.Debug("hidden")
	l.Info("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestContextLogger(t *testing.T) {
	t.Parallel()

	def := logger.Discard()
	ctx := context.Background()

	_, ok := logger.FromContext(ctx)
	assert.False(t, ok)
	assert.Same(t, def, logger.FromContextOrDefault(ctx, def))

	var buf bytes.Buffer
	scoped := logger.New(&buf, slog.LevelInfo).With("trace_id", "abc")
	ctx = logger.WithContext(ctx, scoped)

	got, ok := logger.FromContext(ctx)
	require.True(t, ok)
	assert.Same(t, scoped, got)

	logger.FromContextOrDefault(ctx, def).Info("hello")
	assert.Contains(t, buf.String(), `"trace_id":"abc"`)
}
