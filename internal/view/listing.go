package view

import (
	"github.com/burhaniassociates/storefront/internal/domain"
	"github.com/burhaniassociates/storefront/internal/filter"
	"github.com/burhaniassociates/storefront/pkg/slug"
)

// FilterOption is one entry of a listing sidebar.
type FilterOption struct {
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	URL    string `json:"url"`
	Active bool   `json:"active"`
}

// Listing is the product listing page: filtered products plus the sidebar.
type Listing struct {
	Criteria   filter.Criteria
	Products   []ProductView
	Brands     []FilterOption
	Categories []FilterOption

	// AllBrandsActive and AllCategoriesActive mark the "All" sidebar entries
	// when no brand or category filter is set.
	AllBrandsActive     bool
	AllCategoriesActive bool
}

// NewListing builds the listing page from already filtered products.
func NewListing(c filter.Criteria, products []domain.Product, brands []domain.BrandSummary, categories []domain.CategorySummary) Listing {
	l := Listing{
		Criteria:            c,
		Products:            Products(products),
		Brands:              make([]FilterOption, 0, len(brands)),
		Categories:          make([]FilterOption, 0, len(categories)),
		AllBrandsActive:     c.BrandSlug == "",
		AllCategoriesActive: c.CategorySlug == "",
	}
	for _, b := range brands {
		l.Brands = append(l.Brands, FilterOption{
			Name:   b.Name,
			Slug:   slug.Generate(b.Name),
			URL:    BrandFilterURL(b.Name),
			Active: c.BrandSlug != "" && slug.Matches(b.Name, c.BrandSlug),
		})
	}
	for _, cat := range categories {
		l.Categories = append(l.Categories, FilterOption{
			Name:   cat.Name,
			Slug:   slug.Generate(cat.Name),
			URL:    CategoryFilterURL(cat.Name),
			Active: c.CategorySlug != "" && slug.Matches(cat.Name, c.CategorySlug),
		})
	}
	return l
}

// ResultCount is the number of products after filtering.
func (l Listing) ResultCount() int {
	return len(l.Products)
}

// Filtered reports whether any criterion is applied.
func (l Listing) Filtered() bool {
	return !l.Criteria.IsZero()
}
