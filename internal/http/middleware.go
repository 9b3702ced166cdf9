package http

import (
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"
)

// VisitorTokenHeader carries the session token between client and server.
const VisitorTokenHeader = "X-Visitor-Token"

// VisitorSession resolves the funnel session for each request from the token
// header, minting a new session when none is presented. The token the client
// should keep is echoed on every response.
func VisitorSession(manager *VisitorManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			visitor := manager.Acquire(r.Context(), r.Header.Get(VisitorTokenHeader))
			w.Header().Set(VisitorTokenHeader, visitor.Token)

			ctx := ContextWithVisitor(r.Context(), visitor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestLogger attaches a per-request logger to the context and logs the
// request lifecycle.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}
	var counter atomic.Uint64

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := counter.Add(1)
			logger := base.With(
				"request_id", id,
				"method", r.Method,
				"path", r.URL.Path,
			)

			ctx := ContextWithLogger(r.Context(), logger)
			start := time.Now()
			logger.InfoContext(ctx, "request started")
			next.ServeHTTP(w, r.WithContext(ctx))
			logger.InfoContext(ctx, "request completed", "duration", time.Since(start))
		})
	}
}
