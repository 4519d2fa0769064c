// Package event carries catalog change notifications between the seeder (or
// any catalog writer) and the storefront, which drops cached reads on receipt.
package event

import (
	pkgkafka "github.com/burhaniassociates/storefront/pkg/kafka"
)

// TopicCatalogChanged carries every catalog change event.
var TopicCatalogChanged = pkgkafka.Topic("catalog", "changed")

// Event types published on TopicCatalogChanged.
const (
	TypeProductUpserted  = "product.upserted"
	TypeProductDeleted   = "product.deleted"
	TypeBrandChanged     = "brand.changed"
	TypeCategoryChanged  = "category.changed"
	TypeInventoryChanged = "inventory.changed"
)

// Aggregate types.
const (
	AggregateProduct  = "product"
	AggregateBrand    = "brand"
	AggregateCategory = "category"
)

// CatalogChangedData is the payload of every catalog change event.
// ProductIDs lists products whose detail pages are affected beyond the
// aggregate itself (for example every product of a renamed brand).
type CatalogChangedData struct {
	ProductIDs []string `json:"product_ids,omitempty"`
}
