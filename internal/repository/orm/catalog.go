package orm

import (
	"context"
	"database/sql"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/burhaniassociates/storefront/internal/domain"
	"github.com/burhaniassociates/storefront/internal/repository"
	"github.com/burhaniassociates/storefront/pkg/database"
	apperrors "github.com/burhaniassociates/storefront/pkg/errors"
)

var _ repository.CatalogRepository = (*CatalogRepository)(nil)

// CatalogRepository implements repository.CatalogRepository with gorm,
// loading associations through Preload.
type CatalogRepository struct {
	db *gorm.DB
}

// Open wraps an existing *sql.DB (usually stdlib.OpenDBFromPool over the
// shared pgx pool) in a gorm session.
func Open(sqlDB *sql.DB) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
		PrepareStmt:            false,
	})
	if err != nil {
		return nil, fmt.Errorf("open gorm: %w", err)
	}
	return db, nil
}

// NewCatalogRepository creates a new gorm-backed catalog repository.
func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// ListBrands returns all brands with their product counts ordered by name.
func (r *CatalogRepository) ListBrands(ctx context.Context) (_ []domain.BrandSummary, err error) {
	ctx, end := database.TraceQuery(ctx, "ListBrands", "orm:brands")
	defer func() { end(err) }()

	var rows []summaryRow
	err = r.db.WithContext(ctx).
		Table("brands").
		Select("brands.id, brands.name, COUNT(products.id) AS product_count").
		Joins("LEFT JOIN products ON products.brand_id = brands.id").
		Group("brands.id, brands.name").
		Order("brands.name").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}

	brands := make([]domain.BrandSummary, 0, len(rows))
	for _, row := range rows {
		brands = append(brands, domain.BrandSummary{
			Brand:        domain.Brand{ID: row.ID, Name: row.Name},
			ProductCount: row.ProductCount,
		})
	}
	return brands, nil
}

// ListCategories returns all categories with their product counts ordered by name.
func (r *CatalogRepository) ListCategories(ctx context.Context) (_ []domain.CategorySummary, err error) {
	ctx, end := database.TraceQuery(ctx, "ListCategories", "orm:categories")
	defer func() { end(err) }()

	var rows []summaryRow
	err = r.db.WithContext(ctx).
		Table("categories").
		Select("categories.id, categories.name, COUNT(products.id) AS product_count").
		Joins("LEFT JOIN products ON products.category_id = categories.id").
		Group("categories.id, categories.name").
		Order("categories.name").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	categories := make([]domain.CategorySummary, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, domain.CategorySummary{
			Category:     domain.Category{ID: row.ID, Name: row.Name},
			ProductCount: row.ProductCount,
		})
	}
	return categories, nil
}

// ListProducts returns products newest first with brand, category and images.
func (r *CatalogRepository) ListProducts(ctx context.Context, q repository.ProductQuery) (_ []domain.Product, err error) {
	ctx, end := database.TraceQuery(ctx, "ListProducts", "orm:products")
	defer func() { end(err) }()

	tx := r.db.WithContext(ctx).
		Preload("Brand").
		Preload("Category").
		Preload("Images", orderImages).
		Order("created_at DESC, id")
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	var models []productModel
	if err := tx.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	products := make([]domain.Product, 0, len(models))
	for i := range models {
		products = append(products, models[i].toDomain())
	}
	return products, nil
}

// GetProduct returns one product with every association loaded.
func (r *CatalogRepository) GetProduct(ctx context.Context, id string) (_ *domain.ProductDetail, err error) {
	ctx, end := database.TraceQuery(ctx, "GetProduct", "orm:product")
	defer func() { end(err) }()

	var models []productModel
	err = r.db.WithContext(ctx).
		Preload("Brand").
		Preload("Category").
		Preload("Images", orderImages).
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("sku")
		}).
		Preload("Inventory").
		Where("id = ?", id).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if len(models) == 0 {
		return nil, apperrors.NotFound("product", id)
	}

	return models[0].toDetail(), nil
}

func orderImages(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order, id")
}
