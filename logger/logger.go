// Package logger provides the structured diagnostics logger of the pts tool.
//
// Diagnostics go to stderr so they never mix with the interactive menu on stdout.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var sugar *zap.SugaredLogger

// Init builds the global logger at the given level ("debug", "info", "warn",
// "error"). An unknown level falls back to "warn" and is reported.
func Init(level string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.WarnLevel
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	base, buildErr := cfg.Build()
	if buildErr != nil {
		// Fallback to nop logger if initialization fails.
		sugar = zap.NewNop().Sugar()
		return buildErr
	}
	sugar = base.Sugar()
	return err
}

// Get returns the global sugared logger.
// If Init has not been called, it returns a logger at the "warn" level.
func Get() *zap.SugaredLogger {
	if sugar == nil {
		Init("warn")
	}
	return sugar
}

// Set replaces the global logger, tests use it to capture or silence logs.
func Set(l *zap.SugaredLogger) { sugar = l }

// Sync flushes any buffered log entries. Call this before application exit.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}
