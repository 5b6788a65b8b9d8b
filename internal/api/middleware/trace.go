package middleware

import (
	"log/slog"
	"net/http"

	"github.com/kheyfetsdan/wordsaveriii/internal/api/shared"
	"github.com/kheyfetsdan/wordsaveriii/internal/platform/logger"
)

// NewTraceMiddleware returns middleware that adds a trace ID and a logger
// tagged with it to the request context. Apply it before any handler that
// logs or writes errors.
func NewTraceMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.SetTraceID(r.Context())
			traceID := shared.GetTraceID(ctx)

			log := base.With(slog.String("trace_id", traceID))
			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			w.Header().Set("X-Trace-ID", traceID)
			next.ServeHTTP(w, r.WithContext(logger.WithLogger(ctx, log)))
		})
	}
}
