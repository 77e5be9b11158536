package log

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in       string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"Error", slog.LevelError},
		{"verbose", slog.LevelWarn},
		{"", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.in))
		})
	}
}

func TestSetup(t *testing.T) {
	logger = nil
	once = *new(sync.Once)

	Setup("DEBUG")
	require.NotNil(t, logger)

	first := logger
	Setup("ERROR")
	assert.Same(t, first, logger, "only the first Setup call takes effect")
}

func TestContextHelpers(t *testing.T) {
	var buf bytes.Buffer
	logger = newLogger(&buf, "DEBUG")

	WithComponent("dispatch").Info("starting")
	WithBinary("cargo-unit-tests").Debug("resolved", "path", "/usr/bin/cargo-unit-tests")

	out := buf.String()
	assert.Contains(t, out, "component=dispatch")
	assert.Contains(t, out, "msg=starting")
	assert.Contains(t, out, "binary=cargo-unit-tests")
	assert.Contains(t, out, "path=/usr/bin/cargo-unit-tests")
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger = newLogger(&buf, "WARN")

	Get().Info("hidden")
	Get().Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
