package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/burhaniassociates/storefront/internal/catalog"
	"github.com/burhaniassociates/storefront/internal/content"
	apperrors "github.com/burhaniassociates/storefront/pkg/errors"
	"github.com/burhaniassociates/storefront/pkg/health"
	"github.com/burhaniassociates/storefront/pkg/httputil"
	"github.com/burhaniassociates/storefront/pkg/middleware"
)

// Cache lifetimes in seconds.
const (
	pageMaxAge   = 60
	pageStale    = 300
	apiMaxAge    = 30
	apiStale     = 120
	staticMaxAge = 86400
)

// RouterConfig holds the dependencies of the storefront router. Metrics,
// Gatherer and RateLimiter are optional.
type RouterConfig struct {
	ServiceName       string
	Catalog           *catalog.Service
	Site              *content.Site
	Health            *health.Handler
	Metrics           *middleware.HTTPMetrics
	Gatherer          prometheus.Gatherer
	RateLimiter       *middleware.RateLimiter
	CORS              middleware.CORSConfig
	PprofAllowedCIDRs []string
	Logger            *slog.Logger
}

// NewRouter creates a chi router with the storefront pages, the JSON API and
// the operational endpoints registered.
func NewRouter(cfg RouterConfig) (http.Handler, error) {
	renderer, err := NewRenderer(cfg.Site)
	if err != nil {
		return nil, fmt.Errorf("build renderer: %w", err)
	}
	logger := cfg.Logger

	pages := NewPageHandler(cfg.Catalog, cfg.Site, renderer, logger)
	api := NewAPIHandler(cfg.Catalog, cfg.Site, renderer, logger)

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Tracing(cfg.ServiceName))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.RequestLogger(logger))
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Handler)
	}
	r.Use(middleware.Recovery(logger, nil))

	r.NotFound(pages.NotFound)

	// Operational endpoints
	r.Group(func(r chi.Router) {
		r.Use(middleware.NoStore)
		r.Get("/health/live", cfg.Health.LivenessHandler())
		r.Get("/health/ready", cfg.Health.ReadinessHandler())
		if cfg.Gatherer != nil {
			r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
		}
	})
	middleware.RegisterPprof(r, cfg.PprofAllowedCIDRs, logger)

	r.With(middleware.CacheControl(staticMaxAge, 0)).Handle("/static/*", Static())

	// Storefront pages
	r.Group(func(r chi.Router) {
		r.Use(middleware.Recovery(logger, http.HandlerFunc(pages.ServerError)))
		r.Use(middleware.CacheControl(pageMaxAge, pageStale))

		r.With(middleware.Route("home")).Get("/", pages.Home)
		r.With(middleware.Route("brands.list")).Get("/brands", pages.Brands)
		r.With(middleware.Route("categories.list")).Get("/categories", pages.Categories)

		r.Route("/products", func(r chi.Router) {
			if cfg.RateLimiter != nil {
				r.Use(cfg.RateLimiter.Middleware(logger, http.HandlerFunc(pages.TooManyRequests)))
			}
			r.With(middleware.Route("products.list")).Get("/", pages.Products)
			r.With(middleware.Route("products.detail")).Get("/{id}", pages.Product)
		})
	})

	// JSON API
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.CORS(cfg.CORS))
		r.Use(middleware.CacheControl(apiMaxAge, apiStale))
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			httputil.WriteError(w, r, apperrors.ErrNotFound, logger)
		})

		r.With(middleware.Route("api.brands.list")).Get("/brands", api.ListBrands)
		r.With(middleware.Route("api.categories.list")).Get("/categories", api.ListCategories)

		r.Route("/products", func(r chi.Router) {
			if cfg.RateLimiter != nil {
				r.Use(cfg.RateLimiter.Middleware(logger, nil))
			}
			r.With(middleware.Route("api.products.list")).Get("/", api.ListProducts)
			r.With(middleware.Route("api.products.detail")).Get("/{id}", api.GetProduct)
		})
	})

	return r, nil
}
