package repositorytest

import (
	"time"

	"github.com/burhaniassociates/storefront/internal/domain"
)

// Fixed fixtures shared by the catalog, filter and handler tests.
var (
	Clamptek     = domain.Brand{ID: "brand-clamptek", Name: "Clamptek"}
	Swiftin      = domain.Brand{ID: "brand-swiftin", Name: "Swiftin"}
	ToggleClamps = domain.Category{ID: "cat-toggle", Name: "Toggle Clamps"}
	Handwheels   = domain.Category{ID: "cat-handwheels", Name: "Handwheels"}

	baseTime = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
)

// Product builds a product with one image. Pass nil brand or category to
// leave the association empty.
func Product(id, name string, brand *domain.Brand, category *domain.Category) domain.Product {
	return domain.Product{
		ID:        id,
		Name:      name,
		Brand:     brand,
		Category:  category,
		Images:    []domain.ProductImage{{ID: "img-" + id, ProductID: id, URL: "/uploads/" + id + ".jpg"}},
		CreatedAt: baseTime,
	}
}

// Catalog returns a small product set spanning two brands and two categories.
func Catalog() []domain.Product {
	desc := "<p>Heavy duty <strong>vertical</strong> toggle clamp, 250 kg holding capacity.</p>"
	clamp := Product("prod-1", "Heavy Duty Clamp", &Clamptek, &ToggleClamps)
	clamp.Description = &desc

	return []domain.Product{
		clamp,
		Product("prod-2", "Push-Pull Clamp", &Swiftin, &ToggleClamps),
		Product("prod-3", "Bakelite Handwheel", &Clamptek, &Handwheels),
		Product("prod-4", "Rubber Buffer", nil, nil),
	}
}
