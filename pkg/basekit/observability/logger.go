// Package observability provides structured logging, metrics, and tracing
// hooks for basekit managers.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in; the manager defaults to no-op implementations.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds manager context to a logger. Returns a new logger with
// manager and operation fields attached. The Log* helpers below expect an
// enriched logger.
func EnrichLogger(logger *slog.Logger, manager, op string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("manager", manager),
		slog.String("operation", op),
	)
}

// LogOperationStart logs the start of a manager operation.
func LogOperationStart(logger *slog.Logger, key string) {
	if logger == nil {
		return
	}
	logger.Debug("operation starting",
		slog.String("key", key),
	)
}

// LogOperationComplete logs a successful manager operation.
func LogOperationComplete(logger *slog.Logger, key string, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("operation completed",
		slog.String("key", key),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogOperationError logs a failed manager operation.
func LogOperationError(logger *slog.Logger, key string, err error) {
	if logger == nil {
		return
	}
	logger.Error("operation failed",
		slog.String("key", key),
		slog.String("error", err.Error()),
	)
}

// LogConstruction logs a factory construction performed on behalf of a
// manager.
func LogConstruction(logger *slog.Logger, factoryKey string, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("instance constructed",
		slog.String("factory_key", factoryKey),
		slog.Float64("duration_ms", durationMs),
	)
}

// TimedOperation measures the duration of an operation. Returns a function
// that, when called, returns the elapsed time in milliseconds.
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Milliseconds())
	}
}
