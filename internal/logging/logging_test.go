package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   LevelDebug,
		" WARN ":  LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"info":    LevelInfo,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "input %q", in)
	}
}

func TestNewLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LevelWarn)

	logger.Info("hidden")
	logger.Warn("shown", "path", "ros.bogus")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "path=ros.bogus")
}

func TestForRequest(t *testing.T) {
	var buf bytes.Buffer
	logger, id := ForRequest(NewLogger(&buf, LevelInfo))

	_, err := uuid.Parse(id)
	require.NoError(t, err)

	logger.Info("generating")
	assert.Contains(t, buf.String(), RequestIDKey+"="+id)
}

func TestForRequest_NilLogger(t *testing.T) {
	logger, id := ForRequest(nil)
	require.NotNil(t, logger)
	assert.NotEmpty(t, id)
	assert.False(t, logger.Enabled(t.Context(), slog.LevelError))
}
