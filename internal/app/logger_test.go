package app

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		level   string
		enabled slog.Level
		muted   slog.Level
	}{
		{"debug", slog.LevelDebug, slog.LevelDebug - 1},
		{"info", slog.LevelInfo, slog.LevelDebug},
		{"warn", slog.LevelWarn, slog.LevelInfo},
		{"error", slog.LevelError, slog.LevelWarn},
		{"bogus", slog.LevelInfo, slog.LevelDebug},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := newLogger(tt.level, "text", &bytes.Buffer{})
			require.True(t, logger.Enabled(context.Background(), tt.enabled))
			require.False(t, logger.Enabled(context.Background(), tt.muted))
		})
	}
}

func TestNewLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	newLogger("info", "json", &buf).Info("Decoding finished.", "documents", 2)
	require.Contains(t, buf.String(), `"msg":"Decoding finished."`)

	buf.Reset()
	newLogger("info", "text", &buf).Info("Decoding finished.", "documents", 2)
	require.Contains(t, buf.String(), `msg="Decoding finished."`)
}
