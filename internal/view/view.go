// Package view projects catalog records into the display shapes the pages
// and the JSON API render. Descriptions stay raw markup here; escaping and
// sanitizing belong to the rendering layer.
package view

import (
	"net/url"

	"github.com/burhaniassociates/storefront/internal/domain"
	"github.com/burhaniassociates/storefront/internal/filter"
	"github.com/burhaniassociates/storefront/pkg/slug"
)

// ProductView is the listing shape of a product.
type ProductView struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Slug         string   `json:"slug"`
	ImageURL     string   `json:"image_url,omitempty"`
	Images       []string `json:"images"`
	BrandName    string   `json:"brand_name,omitempty"`
	BrandSlug    string   `json:"brand_slug,omitempty"`
	CategoryName string   `json:"category_name,omitempty"`
	CategorySlug string   `json:"category_slug,omitempty"`
	Featured     bool     `json:"featured"`
}

// BrandView is a brand with its derived filter token and product count.
type BrandView struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	ProductCount int    `json:"product_count"`
}

// CategoryView is a category with its derived filter token and product count.
type CategoryView struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	ProductCount int    `json:"product_count"`
}

// Product projects a product for listings. Slug is the product id; product
// URLs are keyed by id.
func Product(p domain.Product) ProductView {
	v := ProductView{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.DescriptionText(),
		Slug:         p.ID,
		Images:       p.ImageURLs(),
		BrandName:    p.BrandName(),
		CategoryName: p.CategoryName(),
	}
	if img := p.PrimaryImage(); img != nil {
		v.ImageURL = img.URL
	}
	if v.BrandName != "" {
		v.BrandSlug = slug.Generate(v.BrandName)
	}
	if v.CategoryName != "" {
		v.CategorySlug = slug.Generate(v.CategoryName)
	}
	return v
}

// Products projects a product list. The result is never nil.
func Products(products []domain.Product) []ProductView {
	out := make([]ProductView, 0, len(products))
	for _, p := range products {
		out = append(out, Product(p))
	}
	return out
}

// Brand projects a brand summary, passing the product count through.
func Brand(b domain.BrandSummary) BrandView {
	return BrandView{
		ID:           b.ID,
		Name:         b.Name,
		Slug:         slug.Generate(b.Name),
		ProductCount: b.ProductCount,
	}
}

// Brands projects a brand list. The result is never nil.
func Brands(brands []domain.BrandSummary) []BrandView {
	out := make([]BrandView, 0, len(brands))
	for _, b := range brands {
		out = append(out, Brand(b))
	}
	return out
}

// Category projects a category summary, passing the product count through.
func Category(c domain.CategorySummary) CategoryView {
	return CategoryView{
		ID:           c.ID,
		Name:         c.Name,
		Slug:         slug.Generate(c.Name),
		ProductCount: c.ProductCount,
	}
}

// Categories projects a category list. The result is never nil.
func Categories(categories []domain.CategorySummary) []CategoryView {
	out := make([]CategoryView, 0, len(categories))
	for _, c := range categories {
		out = append(out, Category(c))
	}
	return out
}

// BrandFilterURL links to the product listing narrowed to one brand.
func BrandFilterURL(name string) string {
	return listingURL(filter.Criteria{BrandSlug: slug.Generate(name)})
}

// CategoryFilterURL links to the product listing narrowed to one category.
func CategoryFilterURL(name string) string {
	return listingURL(filter.Criteria{CategorySlug: slug.Generate(name)})
}

// ProductURL is the site-relative URL of a product page.
func ProductURL(id string) string {
	return "/products/" + url.PathEscape(id)
}

func listingURL(c filter.Criteria) string {
	q := c.Values().Encode()
	if q == "" {
		return "/products"
	}
	return "/products?" + q
}
