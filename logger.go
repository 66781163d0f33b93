package nest

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/AlexVanMeegen/nest-simulator/model"
)

// Logger wraps slog.Logger with kernel-specific context. This provides
// structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler. If handler is nil,
// uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs. level
// sets the minimum log level.
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{Logger: slog.New(handler)}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{Logger: slog.New(handler)}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{Logger: slog.New(handler)}
}

// WithRank adds the local rank to the logger.
func (l *Logger) WithRank(rank model.Rank) *Logger {
	return &Logger{Logger: l.Logger.With("rank", int(rank))}
}

// WithGID adds a global identifier field to the logger.
func (l *Logger) WithGID(gid model.GID) *Logger {
	return &Logger{Logger: l.Logger.With("gid", uint64(gid))}
}

// WithModel adds a model name field to the logger.
func (l *Logger) WithModel(name string) *Logger {
	return &Logger{Logger: l.Logger.With("model", name)}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{Logger: l.Logger.With("count", count)}
}

// LogCreate logs a node creation call.
func (l *Logger) LogCreate(ctx context.Context, modelName string, count int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "create failed",
			"model", modelName,
			"count", count,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "create completed",
			"model", modelName,
			"count", count,
		)
	}
}

// LogExchange logs one run of the position synchronization protocol.
func (l *Logger) LogExchange(ctx context.Context, records int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "position exchange failed",
			"records", records,
			"duration", duration,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "position exchange completed",
			"records", records,
			"duration", duration,
		)
	}
}

// LogPrepare logs a lifecycle fan-out.
func (l *Logger) LogPrepare(ctx context.Context, nodes int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "prepare failed",
			"nodes", nodes,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "prepare completed",
			"nodes", nodes,
		)
	}
}

// LogSnapshot logs a snapshot save or load.
func (l *Logger) LogSnapshot(ctx context.Context, name string, entries int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot failed",
			"name", name,
			"entries", entries,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "snapshot completed",
			"name", name,
			"entries", entries,
		)
	}
}
