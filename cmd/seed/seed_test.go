package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/burhaniassociates/storefront/pkg/database"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishProductUpserted(ctx context.Context, productID string) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

var (
	brandRe     = regexp.QuoteMeta("INSERT INTO brands")
	categoryRe  = regexp.QuoteMeta("INSERT INTO categories")
	productRe   = regexp.QuoteMeta("INSERT INTO products")
	imageRe     = regexp.QuoteMeta("INSERT INTO product_images")
	variantRe   = regexp.QuoteMeta("INSERT INTO product_variants")
	inventoryRe = regexp.QuoteMeta("INSERT INTO inventory")
)

var fixedNow = time.Date(2025, 6, 15, 12, 30, 45, 0, time.UTC)

func smallCatalog() seedCatalog {
	return seedCatalog{
		Brands:     []seedBrand{{Name: "Clamptek"}},
		Categories: []seedCategory{{Name: "Toggle Clamps"}},
		Products: []seedProduct{{
			Key:         "ct-101-a",
			Name:        "CT-101-A Vertical Toggle Clamp",
			Description: "<p>Clamp</p>",
			Brand:       "Clamptek",
			Category:    "Toggle Clamps",
			Images:      []string{"/uploads/ct-101-a.jpg"},
			Variants:    []seedVariant{{SKU: "CT-101-A", Name: "Standard", Price: 42000}},
			Stock:       5,
		}},
	}
}

func newTestSeeder(t *testing.T, publisher ChangePublisher) (*seeder, pgxmock.PgxPoolIface) {
	t.Helper()
	pool, err := database.NewMockPool()
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return &seeder{
		db:        pool,
		publisher: publisher,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:       func() time.Time { return fixedNow },
	}, pool
}

func TestSeeder_Run_WritesCatalogAndPublishes(t *testing.T) {
	pub := &mockPublisher{}
	s, pool := newTestSeeder(t, pub)

	productID := seedID("product", "ct-101-a")
	brandID := seedID("brand", "Clamptek")
	categoryID := seedID("category", "Toggle Clamps")
	desc := "<p>Clamp</p>"
	price := int64(42000)

	pool.ExpectBegin()
	pool.ExpectExec(brandRe).WithArgs(brandID, "Clamptek").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	pool.ExpectExec(categoryRe).WithArgs(categoryID, "Toggle Clamps").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	pool.ExpectExec(productRe).
		WithArgs(productID, "CT-101-A Vertical Toggle Clamp", &desc, &brandID, &categoryID, fixedNow.Truncate(time.Minute).Add(-time.Minute)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	pool.ExpectExec(imageRe).WithArgs(seedID("image", "ct-101-a/0"), productID, "/uploads/ct-101-a.jpg", 0).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	pool.ExpectExec(variantRe).WithArgs(seedID("variant", "CT-101-A"), productID, "CT-101-A", "Standard", &price).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	pool.ExpectExec(inventoryRe).WithArgs(productID, 5).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	pool.ExpectCommit()

	pub.On("PublishProductUpserted", mock.Anything, productID).Return(nil).Once()

	res, err := s.run(context.Background(), smallCatalog())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Brands)
	assert.Equal(t, 1, res.Categories)
	assert.Equal(t, 1, res.Products)
	assert.Equal(t, []string{productID}, res.ProductIDs)

	assert.NoError(t, pool.ExpectationsWereMet())
	pub.AssertExpectations(t)
}

func TestSeeder_Run_RollsBackOnError(t *testing.T) {
	pub := &mockPublisher{}
	s, pool := newTestSeeder(t, pub)

	pool.ExpectBegin()
	pool.ExpectExec(brandRe).WillReturnError(errors.New("relation \"brands\" does not exist"))
	pool.ExpectRollback()

	_, err := s.run(context.Background(), smallCatalog())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upsert brand \"Clamptek\"")

	assert.NoError(t, pool.ExpectationsWereMet())
	pub.AssertNotCalled(t, "PublishProductUpserted", mock.Anything, mock.Anything)
}

func TestSeeder_Run_PublishFailureIsNotFatal(t *testing.T) {
	pub := &mockPublisher{}
	s, pool := newTestSeeder(t, pub)

	c := smallCatalog()
	c.Brands, c.Categories = nil, nil
	c.Products[0].Brand, c.Products[0].Category = "", ""
	c.Products[0].Images, c.Products[0].Variants = nil, nil

	pool.ExpectBegin()
	pool.ExpectExec(productRe).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	pool.ExpectExec(inventoryRe).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	pool.ExpectCommit()

	pub.On("PublishProductUpserted", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	res, err := s.run(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Products)
	assert.NoError(t, pool.ExpectationsWereMet())
	pub.AssertExpectations(t)
}

func TestSeedID_Stable(t *testing.T) {
	assert.Equal(t, seedID("brand", "Clamptek"), seedID("brand", "Clamptek"))
	assert.NotEqual(t, seedID("brand", "Clamptek"), seedID("category", "Clamptek"))
}

func TestDefaultCatalog_ReferencesExist(t *testing.T) {
	brands := map[string]bool{}
	for _, b := range defaultCatalog.Brands {
		brands[b.Name] = true
	}
	categories := map[string]bool{}
	for _, c := range defaultCatalog.Categories {
		categories[c.Name] = true
	}

	skus := map[string]bool{}
	keys := map[string]bool{}
	for _, p := range defaultCatalog.Products {
		assert.False(t, keys[p.Key], "duplicate product key %s", p.Key)
		keys[p.Key] = true
		if p.Brand != "" {
			assert.True(t, brands[p.Brand], "unknown brand %s", p.Brand)
		}
		if p.Category != "" {
			assert.True(t, categories[p.Category], "unknown category %s", p.Category)
		}
		for _, v := range p.Variants {
			assert.False(t, skus[v.SKU], "duplicate sku %s", v.SKU)
			skus[v.SKU] = true
		}
	}
}
