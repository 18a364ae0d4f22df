package infrastructure

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type contextKey string

const runIDContextKey contextKey = "run_id"

// GenerateRunID creates a unique id for one tool invocation so every log
// line from a run can be correlated.
func GenerateRunID() string {
	return uuid.New().String()
}

// WithRunID stores a run id on the context.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDContextKey, runID)
}

// RunID returns the run id from the context, or "".
func RunID(ctx context.Context) string {
	if id, ok := ctx.Value(runIDContextKey).(string); ok {
		return id
	}
	return ""
}

// EnsureRunID returns a context that carries a run id, generating one if
// the context has none.
func EnsureRunID(ctx context.Context) context.Context {
	if RunID(ctx) == "" {
		return WithRunID(ctx, GenerateRunID())
	}
	return ctx
}

// LoggerWithContext returns the global logger annotated with the run id
// from ctx when present.
func LoggerWithContext(ctx context.Context) *slog.Logger {
	logger := GetLogger()
	if id := RunID(ctx); id != "" {
		logger = logger.With(slog.String("run_id", id))
	}
	return logger
}
