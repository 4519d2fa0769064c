package main

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/burhaniassociates/storefront/pkg/database"
)

// ChangePublisher announces seeded products so running storefronts drop
// their cached listings.
type ChangePublisher interface {
	PublishProductUpserted(ctx context.Context, productID string) error
}

type seeder struct {
	db        database.TxBeginner
	publisher ChangePublisher
	logger    *slog.Logger
	now       func() time.Time
}

type seedResult struct {
	Brands     int
	Categories int
	Products   int
	ProductIDs []string
}

const (
	upsertBrand = `INSERT INTO brands (id, name) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name`
	upsertCategory = `INSERT INTO categories (id, name) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name`
	upsertProduct = `INSERT INTO products (id, name, description, brand_id, category_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, description = EXCLUDED.description,
			brand_id = EXCLUDED.brand_id, category_id = EXCLUDED.category_id`
	upsertImage = `INSERT INTO product_images (id, product_id, url, sort_order) VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET url = EXCLUDED.url, sort_order = EXCLUDED.sort_order`
	upsertVariant = `INSERT INTO product_variants (id, product_id, sku, name, price) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET sku = EXCLUDED.sku, name = EXCLUDED.name, price = EXCLUDED.price`
	upsertInventory = `INSERT INTO inventory (product_id, quantity, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (product_id) DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = NOW()`
)

// run writes the catalog in one transaction and then publishes a change per
// product. Publish failures are logged; the rows are already committed.
func (s *seeder) run(ctx context.Context, c seedCatalog) (seedResult, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return seedResult{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	res, err := s.write(ctx, tx, c)
	if err != nil {
		_ = tx.Rollback(ctx)
		return seedResult{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return seedResult{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	if s.publisher != nil {
		for _, id := range res.ProductIDs {
			if err := s.publisher.PublishProductUpserted(ctx, id); err != nil {
				s.logger.WarnContext(ctx, "failed to publish catalog change",
					slog.String("product_id", id),
					slog.String("error", err.Error()),
				)
			}
		}
	}
	return res, nil
}

func (s *seeder) write(ctx context.Context, tx database.DBTX, c seedCatalog) (seedResult, error) {
	var res seedResult
	for _, b := range c.Brands {
		if _, err := tx.Exec(ctx, upsertBrand, seedID("brand", b.Name), b.Name); err != nil {
			return res, fmt.Errorf("upsert brand %q: %w", b.Name, err)
		}
		res.Brands++
	}
	for _, cat := range c.Categories {
		if _, err := tx.Exec(ctx, upsertCategory, seedID("category", cat.Name), cat.Name); err != nil {
			return res, fmt.Errorf("upsert category %q: %w", cat.Name, err)
		}
		res.Categories++
	}

	base := s.now().UTC().Truncate(time.Minute)
	for i, p := range c.Products {
		id := seedID("product", p.Key)
		if _, err := tx.Exec(ctx, upsertProduct,
			id, p.Name, nullable(p.Description),
			refID("brand", p.Brand), refID("category", p.Category),
			createdAt(base, i, len(c.Products)),
		); err != nil {
			return res, fmt.Errorf("upsert product %q: %w", p.Key, err)
		}
		for n, url := range p.Images {
			if _, err := tx.Exec(ctx, upsertImage, seedID("image", p.Key+"/"+strconv.Itoa(n)), id, url, n); err != nil {
				return res, fmt.Errorf("upsert image for %q: %w", p.Key, err)
			}
		}
		for _, v := range p.Variants {
			var price *int64
			if v.Price > 0 {
				price = &v.Price
			}
			if _, err := tx.Exec(ctx, upsertVariant, seedID("variant", v.SKU), id, v.SKU, v.Name, price); err != nil {
				return res, fmt.Errorf("upsert variant %q: %w", v.SKU, err)
			}
		}
		if _, err := tx.Exec(ctx, upsertInventory, id, p.Stock); err != nil {
			return res, fmt.Errorf("upsert inventory for %q: %w", p.Key, err)
		}
		res.Products++
		res.ProductIDs = append(res.ProductIDs, id)
	}
	return res, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func refID(kind, name string) *string {
	if name == "" {
		return nil
	}
	id := seedID(kind, name)
	return &id
}
