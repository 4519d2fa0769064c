package middleware

import (
	"fmt"
	"net/http"
)

// NoStoreValue is the Cache-Control value for responses shared caches must not keep.
const NoStoreValue = "no-store"

// CacheControl sets a public Cache-Control header on successful GET and HEAD
// responses. Other statuses get no-store. A header already set by the handler
// is left alone, so handlers opt out of caching a degraded 200 by setting
// no-store themselves. A positive staleWhileRevalidate lets shared caches serve
// a stale catalog page while they refetch it.
func CacheControl(maxAge, staleWhileRevalidate int) func(http.Handler) http.Handler {
	value := fmt.Sprintf("public, max-age=%d", maxAge)
	if staleWhileRevalidate > 0 {
		value += fmt.Sprintf(", stale-while-revalidate=%d", staleWhileRevalidate)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(&cacheWriter{ResponseWriter: w, value: value}, r)
		})
	}
}

// cacheWriter decides the Cache-Control header once the status is known.
type cacheWriter struct {
	http.ResponseWriter
	value   string
	decided bool
}

func (cw *cacheWriter) decide(status int) {
	if cw.decided {
		return
	}
	cw.decided = true
	h := cw.Header()
	if h.Get("Cache-Control") != "" {
		return
	}
	if status == http.StatusOK {
		h.Set("Cache-Control", cw.value)
		return
	}
	h.Set("Cache-Control", NoStoreValue)
}

func (cw *cacheWriter) WriteHeader(code int) {
	cw.decide(code)
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *cacheWriter) Write(b []byte) (int, error) {
	cw.decide(http.StatusOK)
	return cw.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (cw *cacheWriter) Unwrap() http.ResponseWriter {
	return cw.ResponseWriter
}

// NoStore marks responses as uncacheable (health, metrics, debug endpoints).
func NoStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", NoStoreValue)
		next.ServeHTTP(w, r)
	})
}
