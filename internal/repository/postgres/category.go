package postgres

import (
	"context"
	"fmt"

	"github.com/burhaniassociates/storefront/internal/domain"
	"github.com/burhaniassociates/storefront/pkg/database"
)

const listCategoriesSQL = `
	SELECT c.id, c.name, COUNT(p.id) AS product_count
	FROM categories c
	LEFT JOIN products p ON p.category_id = c.id
	GROUP BY c.id, c.name
	ORDER BY c.name`

// ListCategories returns all categories with their product counts ordered by name.
func (r *CatalogRepository) ListCategories(ctx context.Context) (_ []domain.CategorySummary, err error) {
	ctx, end := database.TraceQuery(ctx, "ListCategories", listCategoriesSQL)
	defer func() { end(err) }()

	rows, err := r.db.Query(ctx, listCategoriesSQL)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.CategorySummary{}
	for rows.Next() {
		var c domain.CategorySummary
		if err := rows.Scan(&c.ID, &c.Name, &c.ProductCount); err != nil {
			return nil, fmt.Errorf("scan category row: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category rows: %w", err)
	}

	return categories, nil
}
