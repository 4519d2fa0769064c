package repository

import (
	"context"

	"github.com/burhaniassociates/storefront/internal/domain"
)

// ProductQuery narrows a product listing at the store. Filtering by brand,
// category and search term happens in memory after loading.
type ProductQuery struct {
	// Limit caps the number of products returned, newest first. Zero means all.
	Limit int
}

// CatalogRepository is the read-only data access surface of the storefront.
type CatalogRepository interface {
	// ListBrands returns every brand with its product count, ordered by name.
	ListBrands(ctx context.Context) ([]domain.BrandSummary, error)

	// ListCategories returns every category with its product count, ordered by name.
	ListCategories(ctx context.Context) ([]domain.CategorySummary, error)

	// ListProducts returns products with brand, category and images loaded,
	// newest first.
	ListProducts(ctx context.Context, q ProductQuery) ([]domain.Product, error)

	// GetProduct returns one product with brand, category, images, variants and
	// inventory. It returns an error wrapping apperrors.ErrNotFound when no
	// product has the given id.
	GetProduct(ctx context.Context, id string) (*domain.ProductDetail, error)
}
