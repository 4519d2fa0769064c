// Package catalog loads the data behind each storefront page. It is the one
// place where store failures are absorbed: a failed read is logged and the
// page gets an empty result marked Unavailable instead of an error.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/burhaniassociates/storefront/internal/domain"
	"github.com/burhaniassociates/storefront/internal/filter"
	"github.com/burhaniassociates/storefront/internal/repository"
	apperrors "github.com/burhaniassociates/storefront/pkg/errors"
	"github.com/burhaniassociates/storefront/pkg/logger"
)

// ErrUnavailable marks a catalog read that failed at the store.
var ErrUnavailable = fmt.Errorf("catalog data access failed: %w", apperrors.ErrServiceUnavail)

// Listing is a page-ready collection. Items is never nil. Unavailable is set
// when the store failed and Items is empty for that reason rather than
// because the catalog has no entries.
type Listing[T any] struct {
	Items       []T  `json:"items"`
	Unavailable bool `json:"unavailable"`
}

// ProductResult is the outcome of a detail lookup. Product is nil when the
// product does not exist or could not be loaded; Unavailable tells the two apart.
type ProductResult struct {
	Product     *domain.ProductDetail
	Unavailable bool
}

// Found reports whether a product was loaded.
func (r ProductResult) Found() bool {
	return r.Product != nil
}

// CatalogPage is the data of the product listing page.
type CatalogPage struct {
	Products    []domain.Product
	Brands      []domain.BrandSummary
	Categories  []domain.CategorySummary
	Unavailable bool
}

// Service loads catalog data for pages.
type Service struct {
	repo     repository.CatalogRepository
	logger   *slog.Logger
	degraded *prometheus.CounterVec
}

// NewService creates a catalog service. The degrade counter is registered on
// reg when it is non-nil.
func NewService(repo repository.CatalogRepository, logger *slog.Logger, reg prometheus.Registerer) (*Service, error) {
	degraded := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_degraded_reads_total",
			Help: "Catalog reads answered with an empty result because the store failed.",
		},
		[]string{"operation"},
	)
	if reg != nil {
		if err := reg.Register(degraded); err != nil {
			return nil, fmt.Errorf("register catalog metrics: %w", err)
		}
	}

	return &Service{
		repo:     repo,
		logger:   logger,
		degraded: degraded,
	}, nil
}

// Brands returns every brand with its product count.
func (s *Service) Brands(ctx context.Context) Listing[domain.BrandSummary] {
	brands, err := s.repo.ListBrands(ctx)
	if err != nil {
		s.degrade(ctx, "ListBrands", err)
		return unavailable[domain.BrandSummary]()
	}
	return available(brands)
}

// Categories returns every category with its product count.
func (s *Service) Categories(ctx context.Context) Listing[domain.CategorySummary] {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		s.degrade(ctx, "ListCategories", err)
		return unavailable[domain.CategorySummary]()
	}
	return available(categories)
}

// Products returns products newest first, at most limit when limit > 0.
func (s *Service) Products(ctx context.Context, limit int) Listing[domain.Product] {
	products, err := s.repo.ListProducts(ctx, repository.ProductQuery{Limit: limit})
	if err != nil {
		s.degrade(ctx, "ListProducts", err)
		return unavailable[domain.Product]()
	}
	return available(products)
}

// Catalog loads every product and narrows it by c, along with the brand and
// category sidebars. Each read degrades on its own.
func (s *Service) Catalog(ctx context.Context, c filter.Criteria) CatalogPage {
	products := s.Products(ctx, 0)
	brands := s.Brands(ctx)
	categories := s.Categories(ctx)

	return CatalogPage{
		Products:    filter.Apply(products.Items, c),
		Brands:      brands.Items,
		Categories:  categories.Items,
		Unavailable: products.Unavailable || brands.Unavailable || categories.Unavailable,
	}
}

// Product looks up one product. A missing product and a failed lookup both
// leave Product nil.
func (s *Service) Product(ctx context.Context, id string) ProductResult {
	detail, err := s.repo.GetProduct(ctx, id)
	switch {
	case err == nil:
		return ProductResult{Product: detail}
	case errors.Is(err, apperrors.ErrNotFound):
		return ProductResult{}
	default:
		s.degrade(ctx, "GetProduct", err)
		return ProductResult{Unavailable: true}
	}
}

func (s *Service) degrade(ctx context.Context, op string, err error) {
	s.degraded.WithLabelValues(op).Inc()
	logger.WithContext(ctx, s.logger).ErrorContext(ctx, "catalog read degraded to empty result",
		slog.String("operation", op),
		slog.String("error", fmt.Errorf("%w: %w", ErrUnavailable, err).Error()),
	)
}

func available[T any](items []T) Listing[T] {
	if items == nil {
		items = []T{}
	}
	return Listing[T]{Items: items}
}

func unavailable[T any]() Listing[T] {
	return Listing[T]{Items: []T{}, Unavailable: true}
}
