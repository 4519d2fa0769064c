package postgres

import (
	"github.com/burhaniassociates/storefront/internal/repository"
	"github.com/burhaniassociates/storefront/pkg/database"
)

var _ repository.CatalogRepository = (*CatalogRepository)(nil)

// CatalogRepository implements repository.CatalogRepository over PostgreSQL
// with hand-written SQL.
type CatalogRepository struct {
	db database.DBTX
}

// NewCatalogRepository creates a new PostgreSQL-backed catalog repository.
func NewCatalogRepository(db database.DBTX) *CatalogRepository {
	return &CatalogRepository{db: db}
}
