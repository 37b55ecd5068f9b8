// Package observability provides logging utilities shared by the map tools.
package observability

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/worldmap/internal/config"
)

// NewLogger creates a structured logger from the given logging configuration.
//
// Precondition: cfg.Level must be one of "debug", "info", "warn", "error".
// Precondition: cfg.Format must be "json" or "console".
// Postcondition: Returns a configured zap.Logger or a non-nil error.
func NewLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}

	var zapCfg zap.Config
	switch cfg.Format {
	case "json":
		zapCfg = zap.NewProductionConfig()
	case "console":
		zapCfg = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}

// ForDocument returns a child logger tagged with the document being processed.
func ForDocument(logger *zap.Logger, source string) *zap.Logger {
	return logger.With(zap.String("source", source))
}

// Timed logs op at Info and returns a function that logs its completion with
// the elapsed time. A non-nil error passed to the returned function is logged
// at Error instead.
//
// Precondition: logger must be non-nil.
func Timed(logger *zap.Logger, op string, fields ...zap.Field) func(error) {
	start := time.Now()
	logger.Info(op+" started", fields...)
	return func(err error) {
		done := append(fields, zap.Duration("elapsed", time.Since(start)))
		if err != nil {
			logger.Error(op+" failed", append(done, zap.Error(err))...)
			return
		}
		logger.Info(op+" finished", done...)
	}
}
