// Package repositorytest provides a testify mock of repository.CatalogRepository
// for the packages layered on top of it.
package repositorytest

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/burhaniassociates/storefront/internal/domain"
	"github.com/burhaniassociates/storefront/internal/repository"
)

var _ repository.CatalogRepository = (*MockCatalogRepository)(nil)

// MockCatalogRepository is a testify mock of repository.CatalogRepository.
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) ListBrands(ctx context.Context) ([]domain.BrandSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BrandSummary), args.Error(1)
}

func (m *MockCatalogRepository) ListCategories(ctx context.Context) ([]domain.CategorySummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategorySummary), args.Error(1)
}

func (m *MockCatalogRepository) ListProducts(ctx context.Context, q repository.ProductQuery) ([]domain.Product, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockCatalogRepository) GetProduct(ctx context.Context, id string) (*domain.ProductDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductDetail), args.Error(1)
}
