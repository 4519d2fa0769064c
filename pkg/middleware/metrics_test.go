package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMetrics_RecordsRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewHTTPMetrics(reg, "storefront")
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(m.Handler)
	r.Get("/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"a", "b", "c"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/products/"+id, nil))
	}

	got := testutil.ToFloat64(m.requests.WithLabelValues("storefront", http.MethodGet, "/products/{id}", "404"))
	assert.Equal(t, float64(3), got)
	assert.Equal(t, 1, testutil.CollectAndCount(m.requests))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.inFlight))
}

func TestHTTPMetrics_UnmatchedRoute(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewHTTPMetrics(reg, "storefront")
	require.NoError(t, err)

	m.Handler(okHandler()).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	got := testutil.ToFloat64(m.requests.WithLabelValues("storefront", http.MethodGet, "unmatched", "200"))
	assert.Equal(t, float64(1), got)
}

func TestNewHTTPMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewHTTPMetrics(reg, "storefront")
	require.NoError(t, err)

	_, err = NewHTTPMetrics(reg, "storefront")
	assert.Error(t, err)
}
