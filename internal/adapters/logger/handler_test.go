package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/comfortmap/internal/adapters/logger"
)

func newPretty(t *testing.T, buf *bytes.Buffer) *logger.PrettyHandler {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	return logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo})
}

func TestPrettyHandler_Levels(t *testing.T) {
	tests := []struct {
		name       string
		level      slog.Level
		msg        string
		goldenName string
	}{
		{"info level", slog.LevelInfo, "rendering pmv-map", "handler_info"},
		{"warn level", slog.LevelWarn, "schedule.txt not found", "handler_warn"},
		{"error level", slog.LevelError, "command failed", "handler_error"},
		{"debug level filtered", slog.LevelDebug, "debug message", "handler_debug_filtered"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			slog.New(newPretty(t, buf)).Log(t.Context(), tt.level, tt.msg)

			goldie.New(t).Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestPrettyHandler_Attrs(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(h slog.Handler) slog.Handler
		attrs      []any
		goldenName string
	}{
		{
			name:       "record attrs",
			setup:      func(h slog.Handler) slog.Handler { return h },
			attrs:      []any{"task", "tcp", "exit_code", 0},
			goldenName: "handler_record_attrs",
		},
		{
			name: "handler and record attrs",
			setup: func(h slog.Handler) slog.Handler {
				return h.WithAttrs([]slog.Attr{slog.String("job", "office-tcp")})
			},
			attrs:      []any{"task", "tcp"},
			goldenName: "handler_combined_attrs",
		},
		{
			name: "nested groups",
			setup: func(h slog.Handler) slog.Handler {
				return h.WithGroup("job").WithAttrs([]slog.Attr{slog.String("name", "office-tcp")}).WithGroup("task")
			},
			attrs:      []any{"name", "tcp"},
			goldenName: "handler_nested_groups",
		},
		{
			name:       "group attribute",
			setup:      func(h slog.Handler) slog.Handler { return h },
			attrs:      []any{slog.Group("input", slog.String("name", "epw"), slog.String("path", "weather.epw"))},
			goldenName: "handler_group_attr",
		},
		{
			name:       "empty group name",
			setup:      func(h slog.Handler) slog.Handler { return h.WithGroup("") },
			attrs:      []any{"task", "air-map"},
			goldenName: "handler_group_empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			slog.New(tt.setup(newPretty(t, buf))).Info("staged", tt.attrs...)

			goldie.New(t).Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestPrettyHandler_Enabled(t *testing.T) {
	tests := []struct {
		handlerLevel slog.Level
		recordLevel  slog.Level
		want         bool
	}{
		{slog.LevelInfo, slog.LevelDebug, false},
		{slog.LevelInfo, slog.LevelInfo, true},
		{slog.LevelInfo, slog.LevelError, true},
		{slog.LevelError, slog.LevelWarn, false},
	}

	for _, tt := range tests {
		handler := logger.NewPrettyHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: tt.handlerLevel})
		assert.Equal(t, tt.want, handler.Enabled(t.Context(), tt.recordLevel), "%v at %v", tt.recordLevel, tt.handlerLevel)
	}
}

func TestPrettyHandler_NilWriter(t *testing.T) {
	require.NotPanics(t, func() {
		_ = logger.NewPrettyHandler(nil, nil)
	})
}

func TestPrettyHandler_WriteError(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	handler := logger.NewPrettyHandler(brokenWriter{}, nil)
	require.NotPanics(t, func() {
		slog.New(handler).Info("this will fail to write")
	})
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) {
	return 0, assert.AnError
}
