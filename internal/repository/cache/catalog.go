package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/burhaniassociates/storefront/internal/domain"
	"github.com/burhaniassociates/storefront/internal/repository"
)

const (
	keyPrefix     = "catalog:"
	brandsKey     = keyPrefix + "brands"
	categoriesKey = keyPrefix + "categories"
	productsKey   = keyPrefix + "products"
)

var _ repository.CatalogRepository = (*CatalogRepository)(nil)

// CatalogRepository is a read-through redis cache in front of another
// CatalogRepository. Redis failures are logged and the call falls through to
// the wrapped store; store errors and not-found results are never cached.
type CatalogRepository struct {
	next   repository.CatalogRepository
	client redis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

// NewCatalogRepository wraps next with a redis cache whose entries expire after ttl.
func NewCatalogRepository(next repository.CatalogRepository, client redis.Cmdable, ttl time.Duration, logger *slog.Logger) *CatalogRepository {
	return &CatalogRepository{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// ListBrands returns the cached brand list, loading it on a miss.
func (c *CatalogRepository) ListBrands(ctx context.Context) ([]domain.BrandSummary, error) {
	return readThrough(ctx, c, brandsKey, func() ([]domain.BrandSummary, error) {
		return c.next.ListBrands(ctx)
	})
}

// ListCategories returns the cached category list, loading it on a miss.
func (c *CatalogRepository) ListCategories(ctx context.Context) ([]domain.CategorySummary, error) {
	return readThrough(ctx, c, categoriesKey, func() ([]domain.CategorySummary, error) {
		return c.next.ListCategories(ctx)
	})
}

// ListProducts returns the cached product list for the query's limit.
func (c *CatalogRepository) ListProducts(ctx context.Context, q repository.ProductQuery) ([]domain.Product, error) {
	return readThrough(ctx, c, productsKeyFor(q), func() ([]domain.Product, error) {
		return c.next.ListProducts(ctx, q)
	})
}

// GetProduct returns the cached product detail, loading it on a miss.
func (c *CatalogRepository) GetProduct(ctx context.Context, id string) (*domain.ProductDetail, error) {
	return readThrough(ctx, c, productKey(id), func() (*domain.ProductDetail, error) {
		return c.next.GetProduct(ctx, id)
	})
}

// Invalidate drops every cached listing and the detail entries of the given
// products. Listings are always dropped because product counts and the
// newest-first order may both have changed.
func (c *CatalogRepository) Invalidate(ctx context.Context, productIDs ...string) error {
	keys := []string{brandsKey, categoriesKey, productsKey}

	iter := c.client.Scan(ctx, 0, productsKey+":*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan cached listings: %w", err)
	}

	for _, id := range productIDs {
		keys = append(keys, productKey(id))
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("invalidate catalog cache: %w", err)
	}
	return nil
}

func readThrough[T any](ctx context.Context, c *CatalogRepository, key string, load func() (T, error)) (T, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached T
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
		c.logger.WarnContext(ctx, "discarding undecodable cache entry", slog.String("key", key))
	case !errors.Is(err, redis.Nil):
		c.logger.WarnContext(ctx, "cache read failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}

	value, err := load()
	if err != nil {
		return value, err
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		c.logger.WarnContext(ctx, "cache encode failed", slog.String("key", key), slog.String("error", err.Error()))
		return value, nil
	}
	if err := c.client.Set(ctx, key, encoded, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "cache write failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}

	return value, nil
}

func productKey(id string) string {
	return keyPrefix + "product:" + id
}

func productsKeyFor(q repository.ProductQuery) string {
	if q.Limit <= 0 {
		return productsKey
	}
	return fmt.Sprintf("%s:limit:%d", productsKey, q.Limit)
}
