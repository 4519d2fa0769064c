package domain

import (
	"time"
)

// Product represents a catalog entry with its brand, category and images
// loaded. Brand and Category are nil when the product has none.
type Product struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description *string        `json:"description,omitempty"`
	Brand       *Brand         `json:"brand,omitempty"`
	Category    *Category      `json:"category,omitempty"`
	Images      []ProductImage `json:"images"`
	CreatedAt   time.Time      `json:"created_at"`
}

// ProductImage is an image owned by one product. Images are ordered by
// SortOrder and the first one is the primary image.
type ProductImage struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	URL       string `json:"url"`
	SortOrder int    `json:"sort_order"`
}

// ProductVariant is a purchasable variant of a product. Price is in minor
// units and nil when the dealer quotes on request.
type ProductVariant struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	SKU       string `json:"sku"`
	Name      string `json:"name"`
	Price     *int64 `json:"price,omitempty"`
}

// Inventory holds the stock level of a product.
type Inventory struct {
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PrimaryImage returns the first image, or nil when the product has none.
func (p *Product) PrimaryImage() *ProductImage {
	if len(p.Images) == 0 {
		return nil
	}
	return &p.Images[0]
}

// BrandName returns the brand name or "" when the product has no brand.
func (p *Product) BrandName() string {
	if p.Brand == nil {
		return ""
	}
	return p.Brand.Name
}

// CategoryName returns the category name or "" when the product has no category.
func (p *Product) CategoryName() string {
	if p.Category == nil {
		return ""
	}
	return p.Category.Name
}

// DescriptionText returns the description markup or "" when absent.
func (p *Product) DescriptionText() string {
	if p.Description == nil {
		return ""
	}
	return *p.Description
}

// ImageURLs returns the image URLs in display order.
func (p *Product) ImageURLs() []string {
	urls := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		urls = append(urls, img.URL)
	}
	return urls
}
