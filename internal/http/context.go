package http

import (
	"context"
	"log/slog"

	"github.com/example/villays/internal/logging"
)

type contextKey string

const (
	visitorContextKey contextKey = "visitor"
	suiteIDContextKey contextKey = "suite_id"
)

// ContextWithLogger returns a derived context carrying the request logger.
// The logger rides the shared logging context key so services see it too.
func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return logging.ContextWithLogger(ctx, logger)
}

// LoggerFromContext extracts the request logger from context if available.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx)
}

// ContextWithVisitor returns a derived context carrying the resolved visitor.
func ContextWithVisitor(ctx context.Context, visitor *Visitor) context.Context {
	return context.WithValue(ctx, visitorContextKey, visitor)
}

// VisitorFromContext extracts the visitor resolved by the session middleware.
func VisitorFromContext(ctx context.Context) (*Visitor, bool) {
	visitor, ok := ctx.Value(visitorContextKey).(*Visitor)
	return visitor, ok
}

// ContextWithSuiteID injects the suite identifier resolved from the request path.
func ContextWithSuiteID(ctx context.Context, suiteID string) context.Context {
	return context.WithValue(ctx, suiteIDContextKey, suiteID)
}

// SuiteIDFromContext extracts a suite identifier previously associated with the context.
func SuiteIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(suiteIDContextKey).(string)
	return id, ok
}
