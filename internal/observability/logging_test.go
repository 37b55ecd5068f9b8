package observability

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cory-johannsen/worldmap/internal/config"
)

func TestNewLogger_JSON(t *testing.T) {
	cfg := config.LoggingConfig{Level: "info", Format: "json"}
	logger, err := NewLogger(cfg)
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestNewLogger_Console(t *testing.T) {
	cfg := config.LoggingConfig{Level: "debug", Format: "console"}
	logger, err := NewLogger(cfg)
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	cfg := config.LoggingConfig{Level: "trace", Format: "json"}
	_, err := NewLogger(cfg)
	assert.Error(t, err)
}

func TestNewLogger_InvalidFormat(t *testing.T) {
	cfg := config.LoggingConfig{Level: "info", Format: "xml"}
	_, err := NewLogger(cfg)
	assert.Error(t, err)
}

func TestNewLogger_AllLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		cfg := config.LoggingConfig{Level: level, Format: "json"}
		logger, err := NewLogger(cfg)
		require.NoError(t, err, "level %q should be valid", level)
		assert.NotNil(t, logger)
	}
}

func TestForDocument(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	ForDocument(zap.New(core), "maps/one.xml").Info("hello")
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "maps/one.xml", logs.All()[0].ContextMap()["source"])
}

func TestTimed(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	Timed(logger, "convert", zap.String("in", "a.xml"))(nil)
	Timed(logger, "convert")(errors.New("boom"))

	entries := logs.All()
	require.Len(t, entries, 4)
	assert.Equal(t, "convert started", entries[0].Message)
	assert.Equal(t, "convert finished", entries[1].Message)
	assert.Equal(t, "a.xml", entries[1].ContextMap()["in"])
	assert.Contains(t, entries[1].ContextMap(), "elapsed")
	assert.Equal(t, "convert failed", entries[3].Message)
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
}
