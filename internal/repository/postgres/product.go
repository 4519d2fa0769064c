package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/burhaniassociates/storefront/internal/domain"
	"github.com/burhaniassociates/storefront/internal/repository"
	"github.com/burhaniassociates/storefront/pkg/database"
	apperrors "github.com/burhaniassociates/storefront/pkg/errors"
)

const productSelect = `
	SELECT p.id, p.name, p.description, p.created_at,
	       b.id, b.name, c.id, c.name
	FROM products p
	LEFT JOIN brands b ON b.id = p.brand_id
	LEFT JOIN categories c ON c.id = p.category_id`

const (
	listProductsSQL        = productSelect + ` ORDER BY p.created_at DESC, p.id`
	listProductsLimitedSQL = listProductsSQL + ` LIMIT $1`
	getProductSQL          = productSelect + ` WHERE p.id = $1`

	listImagesSQL = `
		SELECT id, product_id, url, sort_order
		FROM product_images
		WHERE product_id = ANY($1)
		ORDER BY product_id, sort_order, id`

	listVariantsSQL = `
		SELECT id, product_id, sku, name, price
		FROM product_variants
		WHERE product_id = $1
		ORDER BY sku`

	getInventorySQL = `
		SELECT product_id, quantity, updated_at
		FROM inventory
		WHERE product_id = $1`
)

// ListProducts returns products newest first with brand, category and images
// attached. Images are loaded with a second query keyed by product id.
func (r *CatalogRepository) ListProducts(ctx context.Context, q repository.ProductQuery) (_ []domain.Product, err error) {
	query, args := listProductsSQL, []any{}
	if q.Limit > 0 {
		query, args = listProductsLimitedSQL, []any{q.Limit}
	}

	ctx, end := database.TraceQuery(ctx, "ListProducts", query)
	defer func() { end(err) }()

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	if len(products) == 0 {
		return products, nil
	}

	ids := make([]string, len(products))
	for i := range products {
		ids[i] = products[i].ID
	}

	images, err := r.listImages(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if imgs, ok := images[products[i].ID]; ok {
			products[i].Images = imgs
		}
	}

	return products, nil
}

// GetProduct returns a single product with its variants and inventory.
func (r *CatalogRepository) GetProduct(ctx context.Context, id string) (_ *domain.ProductDetail, err error) {
	ctx, end := database.TraceQuery(ctx, "GetProduct", getProductSQL)
	defer func() { end(err) }()

	p, err := scanProduct(r.db.QueryRow(ctx, getProductSQL, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("product", id)
		}
		return nil, err
	}

	images, err := r.listImages(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	if imgs, ok := images[id]; ok {
		p.Images = imgs
	}

	detail := &domain.ProductDetail{Product: p}

	if detail.Variants, err = r.listVariants(ctx, id); err != nil {
		return nil, err
	}
	if detail.Inventory, err = r.getInventory(ctx, id); err != nil {
		return nil, err
	}

	return detail, nil
}

func (r *CatalogRepository) listImages(ctx context.Context, productIDs []string) (map[string][]domain.ProductImage, error) {
	rows, err := r.db.Query(ctx, listImagesSQL, productIDs)
	if err != nil {
		return nil, fmt.Errorf("list product images: %w", err)
	}
	defer rows.Close()

	images := make(map[string][]domain.ProductImage, len(productIDs))
	for rows.Next() {
		var img domain.ProductImage
		if err := rows.Scan(&img.ID, &img.ProductID, &img.URL, &img.SortOrder); err != nil {
			return nil, fmt.Errorf("scan product image row: %w", err)
		}
		images[img.ProductID] = append(images[img.ProductID], img)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product image rows: %w", err)
	}

	return images, nil
}

func (r *CatalogRepository) listVariants(ctx context.Context, productID string) ([]domain.ProductVariant, error) {
	rows, err := r.db.Query(ctx, listVariantsSQL, productID)
	if err != nil {
		return nil, fmt.Errorf("list product variants: %w", err)
	}
	defer rows.Close()

	variants := []domain.ProductVariant{}
	for rows.Next() {
		var v domain.ProductVariant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.SKU, &v.Name, &v.Price); err != nil {
			return nil, fmt.Errorf("scan product variant row: %w", err)
		}
		variants = append(variants, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product variant rows: %w", err)
	}

	return variants, nil
}

// getInventory returns nil without error when the product has no stock record.
func (r *CatalogRepository) getInventory(ctx context.Context, productID string) (*domain.Inventory, error) {
	var inv domain.Inventory
	err := r.db.QueryRow(ctx, getInventorySQL, productID).Scan(&inv.ProductID, &inv.Quantity, &inv.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return &inv, nil
}

// scanProduct reads one row of productSelect. pgx.ErrNoRows is returned
// unwrapped so callers can map it.
func scanProduct(row pgx.Row) (domain.Product, error) {
	var (
		p                        domain.Product
		brandID, brandName       *string
		categoryID, categoryName *string
	)

	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.CreatedAt,
		&brandID,
		&brandName,
		&categoryID,
		&categoryName,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return p, err
		}
		return p, fmt.Errorf("scan product: %w", err)
	}

	if brandID != nil && brandName != nil {
		p.Brand = &domain.Brand{ID: *brandID, Name: *brandName}
	}
	if categoryID != nil && categoryName != nil {
		p.Category = &domain.Category{ID: *categoryID, Name: *categoryName}
	}
	p.Images = []domain.ProductImage{}

	return p, nil
}
