package postgres

import (
	"context"
	"fmt"

	"github.com/burhaniassociates/storefront/internal/domain"
	"github.com/burhaniassociates/storefront/pkg/database"
)

const listBrandsSQL = `
	SELECT b.id, b.name, COUNT(p.id) AS product_count
	FROM brands b
	LEFT JOIN products p ON p.brand_id = b.id
	GROUP BY b.id, b.name
	ORDER BY b.name`

// ListBrands returns all brands with their product counts ordered by name.
func (r *CatalogRepository) ListBrands(ctx context.Context) (_ []domain.BrandSummary, err error) {
	ctx, end := database.TraceQuery(ctx, "ListBrands", listBrandsSQL)
	defer func() { end(err) }()

	rows, err := r.db.Query(ctx, listBrandsSQL)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()

	brands := []domain.BrandSummary{}
	for rows.Next() {
		var b domain.BrandSummary
		if err := rows.Scan(&b.ID, &b.Name, &b.ProductCount); err != nil {
			return nil, fmt.Errorf("scan brand row: %w", err)
		}
		brands = append(brands, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate brand rows: %w", err)
	}

	return brands, nil
}
