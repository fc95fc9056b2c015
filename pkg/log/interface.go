// Package log provides the structured logging interface used by mirpls.
//
// Logger mirrors the method set of log/slog so that callers can swap the
// backing implementation. The default backend is zerolog (see
// NewZerologProvider); tests use TestLogger to capture records in memory.
//
// Example:
//
//	logger := log.NewZerologProvider(log.LevelInfo).GetLoggerWithName("pipeline")
//	logger.Info("Data loaded",
//	    log.SamplesKey, 100,
//	    log.FeaturesKey, 500,
//	)
package log

import (
	"context"
)

// Logger is a structured logger with slog-style key/value fields.
type Logger interface {
	// Debug logs detailed diagnostic information.
	Debug(msg string, fields ...any)

	// Info logs normal progress, one record per pipeline stage.
	Info(msg string, fields ...any)

	// Warn logs conditions that do not stop execution, such as solver
	// convergence warnings.
	Warn(msg string, fields ...any)

	// Error logs a failure. If the first field is an error it is attached
	// under the "error" key together with its stack trace.
	Error(msg string, fields ...any)

	// With returns a Logger that adds fields to every record.
	With(fields ...any) Logger

	// Enabled reports whether records at level would be emitted.
	Enabled(ctx context.Context, level Level) bool
}

// Level is a logging level. Values match slog.Level.
type Level int

const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// LoggerProvider creates loggers that share a backend and level.
type LoggerProvider interface {
	// GetLogger returns the root logger.
	GetLogger() Logger

	// GetLoggerWithName returns a logger tagged with a component name.
	GetLoggerWithName(name string) Logger

	// SetLevel sets the minimum level for loggers created by this provider.
	SetLevel(level Level)
}
