package breaker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sony/gobreaker/v2"

	"github.com/burhaniassociates/storefront/internal/domain"
	"github.com/burhaniassociates/storefront/internal/repository"
	apperrors "github.com/burhaniassociates/storefront/pkg/errors"
)

// Config holds the circuit breaker settings for the catalog store.
type Config struct {
	// Name identifies the breaker in metrics and logs.
	Name string

	// MaxRequests is the number of trial requests allowed while half-open.
	MaxRequests uint32

	// Interval is the cyclic period of the closed state for clearing counts.
	Interval time.Duration

	// Timeout is how long the breaker stays open before moving to half-open.
	Timeout time.Duration

	// FailureRatio trips the breaker once MinRequests have been observed.
	FailureRatio float64

	// MinRequests is the minimum number of requests before FailureRatio applies.
	MinRequests uint32
}

// DefaultConfig returns the breaker settings used when none are configured.
func DefaultConfig(name string) Config {
	return Config{
		Name:         name,
		MaxRequests:  1,
		Interval:     60 * time.Second,
		Timeout:      30 * time.Second,
		FailureRatio: 0.5,
		MinRequests:  5,
	}
}

var _ repository.CatalogRepository = (*CatalogRepository)(nil)

// CatalogRepository fails fast with an unavailable error while the wrapped
// store keeps failing. Not-found results and caller cancellations do not
// count against the store.
type CatalogRepository struct {
	next    repository.CatalogRepository
	breaker *gobreaker.CircuitBreaker[any]
	name    string
}

// NewCatalogRepository wraps next with a circuit breaker. The state gauge is
// registered on reg when it is non-nil.
func NewCatalogRepository(next repository.CatalogRepository, cfg Config, reg prometheus.Registerer, logger *slog.Logger) (*CatalogRepository, error) {
	state := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current state of the circuit breaker (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)
	if reg != nil {
		if err := reg.Register(state); err != nil {
			return nil, fmt.Errorf("register breaker metrics: %w", err)
		}
	}

	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureRatio
		},
		IsSuccessful: isSuccessful,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
			state.WithLabelValues(name).Set(stateToFloat(to))
		},
	}

	state.WithLabelValues(cfg.Name).Set(0)

	return &CatalogRepository{
		next:    next,
		breaker: gobreaker.NewCircuitBreaker[any](settings),
		name:    cfg.Name,
	}, nil
}

// State returns the current breaker state.
func (c *CatalogRepository) State() gobreaker.State {
	return c.breaker.State()
}

// ListBrands calls the wrapped store unless the breaker is open.
func (c *CatalogRepository) ListBrands(ctx context.Context) ([]domain.BrandSummary, error) {
	return execute(c, func() ([]domain.BrandSummary, error) {
		return c.next.ListBrands(ctx)
	})
}

// ListCategories calls the wrapped store unless the breaker is open.
func (c *CatalogRepository) ListCategories(ctx context.Context) ([]domain.CategorySummary, error) {
	return execute(c, func() ([]domain.CategorySummary, error) {
		return c.next.ListCategories(ctx)
	})
}

// ListProducts calls the wrapped store unless the breaker is open.
func (c *CatalogRepository) ListProducts(ctx context.Context, q repository.ProductQuery) ([]domain.Product, error) {
	return execute(c, func() ([]domain.Product, error) {
		return c.next.ListProducts(ctx, q)
	})
}

// GetProduct calls the wrapped store unless the breaker is open.
func (c *CatalogRepository) GetProduct(ctx context.Context, id string) (*domain.ProductDetail, error) {
	return execute(c, func() (*domain.ProductDetail, error) {
		return c.next.GetProduct(ctx, id)
	})
}

func execute[T any](c *CatalogRepository, fn func() (T, error)) (T, error) {
	var zero T

	res, err := c.breaker.Execute(func() (any, error) {
		return fn()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return zero, apperrors.Unavailable(c.name, err)
	}
	if err != nil {
		return zero, err
	}

	v, _ := res.(T)
	return v, nil
}

func isSuccessful(err error) bool {
	return err == nil ||
		errors.Is(err, apperrors.ErrNotFound) ||
		errors.Is(err, context.Canceled)
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
