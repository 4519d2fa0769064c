package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/burhaniassociates/storefront/pkg/httputil"
)

// Recovery turns a panic into a 500 response. When fallback is non-nil it
// renders the response (the HTML error page); otherwise a JSON error is written.
func Recovery(l *slog.Logger, fallback http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				l.ErrorContext(r.Context(), "panic recovered",
					slog.Any("panic", rec),
					slog.String("stack", string(debug.Stack())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
				)

				if fallback != nil {
					fallback.ServeHTTP(w, r)
					return
				}
				httputil.WriteJSON(w, http.StatusInternalServerError, httputil.Response{
					Error: &httputil.ErrorResponse{Code: "INTERNAL_ERROR", Message: "an internal error occurred"},
				})
			}()

			next.ServeHTTP(w, r)
		})
	}
}
