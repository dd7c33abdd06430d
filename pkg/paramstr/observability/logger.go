// Package observability provides production-grade observability features
// for paramstr: structured logging, metrics, and distributed tracing.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds template context to a logger.
// Returns a new logger with template and pattern fields.
//
// Example:
//
//	enriched := EnrichLogger(logger, "user-path", "/users/{id}")
//	enriched.Info("loaded") // includes template, pattern
func EnrichLogger(logger *slog.Logger, name, pattern string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("template", name),
		slog.String("pattern", pattern),
	)
}

// LogCompile logs a successful pattern compilation.
func LogCompile(logger *slog.Logger, pattern string, occurrences, names int) {
	if logger == nil {
		return
	}
	logger.Debug("pattern compiled",
		slog.String("pattern", pattern),
		slog.Int("occurrences", occurrences),
		slog.Int("names", names),
	)
}

// LogCompileError logs a pattern that failed to compile.
func LogCompileError(logger *slog.Logger, pattern string, err error) {
	if logger == nil {
		return
	}
	logger.Debug("pattern rejected",
		slog.String("pattern", pattern),
		slog.String("error", err.Error()),
	)
}

// LogParseMismatch logs an input that did not match its pattern.
func LogParseMismatch(logger *slog.Logger, pattern, input string, err error) {
	if logger == nil {
		return
	}
	logger.Debug("input does not match pattern",
		slog.String("pattern", pattern),
		slog.String("input", input),
		slog.String("error", err.Error()),
	)
}

// LogCatalogLoad logs a successful catalog load.
func LogCatalogLoad(logger *slog.Logger, source string, templates int, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Info("catalog loaded",
		slog.String("source", source),
		slog.Int("templates", templates),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogCatalogError logs a catalog load failure. The previous contents stay active.
func LogCatalogError(logger *slog.Logger, source string, err error) {
	if logger == nil {
		return
	}
	logger.Error("catalog load failed",
		slog.String("source", source),
		slog.String("error", err.Error()),
	)
}

// LogCatalogReload logs a file change that triggers a catalog reload.
func LogCatalogReload(logger *slog.Logger, source, op string) {
	if logger == nil {
		return
	}
	logger.Info("catalog reload triggered",
		slog.String("source", source),
		slog.String("op", op),
	)
}

// LogSnapshotSaved logs a persisted value snapshot.
func LogSnapshotSaved(logger *slog.Logger, template, id string, sizeBytes int) {
	if logger == nil {
		return
	}
	logger.Debug("snapshot saved",
		slog.String("template", template),
		slog.String("snapshot_id", id),
		slog.Int("size_bytes", sizeBytes),
	)
}

// LogSnapshotError logs a snapshot store failure.
func LogSnapshotError(logger *slog.Logger, template, op string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("snapshot failed",
		slog.String("template", template),
		slog.String("operation", op),
		slog.String("error", err.Error()),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	elapsed := done()
func TimedOperation() func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		return time.Since(start)
	}
}

// Milliseconds converts d to fractional milliseconds for log fields.
func Milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
