package log

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelString(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(42), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.level.String())
		})
	}
}

func TestToSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LevelDebug.ToSlogLevel())
	assert.Equal(t, slog.LevelInfo, LevelInfo.ToSlogLevel())
	assert.Equal(t, slog.LevelWarn, LevelWarn.ToSlogLevel())
	assert.Equal(t, slog.LevelError, LevelError.ToSlogLevel())
	assert.Equal(t, slog.LevelInfo, Level(42).ToSlogLevel(), "unknown levels log at info")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"Warning", LevelWarn},
		{"error", LevelError},
		{"ERROR", LevelError},
		{"", LevelInfo},
		{"verbose", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}
