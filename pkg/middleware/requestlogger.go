package middleware

import (
	"log/slog"
	"net/http"

	"github.com/burhaniassociates/storefront/pkg/logger"
)

// RequestLogger stores a logger enriched with correlation_id, trace_id and
// span_id in the request context, retrievable with logger.FromContext.
// Mount it after RequestLogging and Tracing.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := logger.NewContext(r.Context(), logger.WithContext(r.Context(), base))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Route tags the request with a stable route name and adds it to the
// request-scoped logger.
func Route(name string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := logger.WithRoute(r.Context(), name)
			ctx = logger.NewContext(ctx, logger.FromContext(ctx).With(slog.String("route", name)))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
