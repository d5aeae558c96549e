// Package logger owns the process-wide zap logger.
package logger

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var defaultLogger atomic.Pointer[zap.Logger]

// Setup builds the default logger. level is debug|info|warn|error, format is
// json|console. Output goes to stderr so stdout stays free for the summary.
func Setup(level, format string) (*zap.Logger, error) {
	l, err := build(level, format)
	if err != nil {
		return nil, err
	}
	defaultLogger.Store(l)
	return l, nil
}

func build(level, format string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		lvl = zapcore.InfoLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	switch strings.ToLower(format) {
	case "", "json":
	case "console":
		config.Encoding = "console"
	default:
		return nil, fmt.Errorf("unknown log format: %s", format)
	}

	l, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return l, nil
}

// L returns the default logger, building one from LOG_LEVEL and LOG_FORMAT
// when Setup was never called.
func L() *zap.Logger {
	if l := defaultLogger.Load(); l != nil {
		return l
	}
	l, err := build(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
	if err != nil {
		l = zap.NewNop()
	}
	// first caller wins when several goroutines race here
	if defaultLogger.CompareAndSwap(nil, l) {
		return l
	}
	return defaultLogger.Load()
}

// Set replaces the default logger. Tests use it to capture output.
func Set(l *zap.Logger) {
	defaultLogger.Store(l)
}

// Sync flushes buffered log entries
func Sync() {
	if l := defaultLogger.Load(); l != nil {
		_ = l.Sync()
	}
}
