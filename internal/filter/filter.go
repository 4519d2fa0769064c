// Package filter narrows a loaded product collection by brand, category and
// free-text search. Criteria are conjunctive; an empty criterion is ignored.
package filter

import (
	"net/url"
	"strings"

	"github.com/burhaniassociates/storefront/internal/domain"
	"github.com/burhaniassociates/storefront/pkg/slug"
)

// Query parameter names read by FromQuery.
const (
	ParamBrand    = "brand"
	ParamCategory = "category"
	ParamSearch   = "search"
)

// Criteria holds the optional filters of a product listing. Values are kept
// exactly as received; matching normalizes them.
type Criteria struct {
	BrandSlug    string
	CategorySlug string
	Search       string
}

// FromQuery reads criteria from the brand, category and search parameters.
func FromQuery(q url.Values) Criteria {
	return Criteria{
		BrandSlug:    q.Get(ParamBrand),
		CategorySlug: q.Get(ParamCategory),
		Search:       q.Get(ParamSearch),
	}
}

// IsZero reports whether no criterion is set.
func (c Criteria) IsZero() bool {
	return c.BrandSlug == "" && c.CategorySlug == "" && c.Search == ""
}

// Values encodes the non-empty criteria as query parameters.
func (c Criteria) Values() url.Values {
	v := url.Values{}
	if c.BrandSlug != "" {
		v.Set(ParamBrand, c.BrandSlug)
	}
	if c.CategorySlug != "" {
		v.Set(ParamCategory, c.CategorySlug)
	}
	if c.Search != "" {
		v.Set(ParamSearch, c.Search)
	}
	return v
}

// Apply returns the products matching every criterion in c, preserving input
// order. With no criteria the input slice is returned as is.
func Apply(products []domain.Product, c Criteria) []domain.Product {
	if c.IsZero() {
		return products
	}

	search := strings.ToLower(c.Search)
	out := make([]domain.Product, 0, len(products))
	for i := range products {
		p := &products[i]
		if c.BrandSlug != "" && !matchesBrand(p, c.BrandSlug) {
			continue
		}
		if c.CategorySlug != "" && !matchesCategory(p, c.CategorySlug) {
			continue
		}
		// Search is evaluated last.
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		out = append(out, *p)
	}
	return out
}

func matchesBrand(p *domain.Product, token string) bool {
	return p.Brand != nil && slug.Matches(p.Brand.Name, token)
}

func matchesCategory(p *domain.Product, token string) bool {
	return p.Category != nil && slug.Matches(p.Category.Name, token)
}

// matchesSearch expects term already lower-cased.
func matchesSearch(p *domain.Product, term string) bool {
	if strings.Contains(strings.ToLower(p.Name), term) {
		return true
	}
	return p.Description != nil && strings.Contains(strings.ToLower(*p.Description), term)
}
