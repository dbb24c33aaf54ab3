package vecdb

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with vecdb-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", dim),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogInsert logs an insert operation.
func (l *Logger) LogInsert(id string, dimension int, err error) {
	if err != nil {
		l.Error("insert failed",
			"id", id,
			"dimension", dimension,
			"error", err,
		)
	} else {
		l.Debug("insert completed",
			"id", id,
			"dimension", dimension,
		)
	}
}

// LogBatchInsert logs a batch insert operation.
func (l *Logger) LogBatchInsert(count int, err error) {
	if err != nil {
		l.Error("batch insert rejected",
			"count", count,
			"error", err,
		)
	} else {
		l.Info("batch insert completed",
			"count", count,
		)
	}
}

// LogRemove logs a remove operation.
func (l *Logger) LogRemove(id string, removed bool) {
	l.Debug("remove completed",
		"id", id,
		"removed", removed,
	)
}

// LogSearch logs a top-k search operation.
func (l *Logger) LogSearch(k, resultsFound int, err error) {
	if err != nil {
		l.Error("search failed",
			"k", k,
			"error", err,
		)
	} else {
		l.Debug("search completed",
			"k", k,
			"results", resultsFound,
		)
	}
}

// LogRadiusSearch logs a radius search operation.
func (l *Logger) LogRadiusSearch(radius float32, resultsFound int, err error) {
	if err != nil {
		l.Error("radius search failed",
			"radius", radius,
			"error", err,
		)
	} else {
		l.Debug("radius search completed",
			"radius", radius,
			"results", resultsFound,
		)
	}
}

// LogSave logs a snapshot save operation.
func (l *Logger) LogSave(target string, count int, err error) {
	if err != nil {
		l.Error("snapshot save failed",
			"target", target,
			"error", err,
		)
	} else {
		l.Info("snapshot saved",
			"target", target,
			"count", count,
		)
	}
}

// LogLoad logs a snapshot load operation.
func (l *Logger) LogLoad(source string, count int, err error) {
	if err != nil {
		l.Error("snapshot load failed",
			"source", source,
			"error", err,
		)
	} else {
		l.Info("snapshot loaded",
			"source", source,
			"count", count,
		)
	}
}
