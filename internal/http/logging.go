package http

import (
	"context"
	"log/slog"
)

// fallbackLogger resolves the logger a handler was constructed with,
// defaulting to the process logger when nil was injected.
func fallbackLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// handlerLogger prefers the request-scoped logger placed by RequestLogger and
// tags it with the handler name and operation.
func handlerLogger(ctx context.Context, fallback *slog.Logger, handlerName, operation string, attrs ...any) *slog.Logger {
	logger := LoggerFromContext(ctx)
	if logger == nil {
		logger = fallbackLogger(fallback)
	}

	logger = logger.With("handler", handlerName, "operation", operation)
	if len(attrs) > 0 {
		logger = logger.With(attrs...)
	}
	return logger
}
