package view

import (
	"fmt"

	"github.com/burhaniassociates/storefront/internal/domain"
)

// Breadcrumb is one step of the detail page trail. URL is empty for the
// current page.
type Breadcrumb struct {
	Label string `json:"label"`
	URL   string `json:"url,omitempty"`
}

// VariantView is a variant with its price formatted for display.
type VariantView struct {
	SKU   string `json:"sku"`
	Name  string `json:"name"`
	Price string `json:"price,omitempty"`
}

// ProductDetailView is the detail page shape of a product.
type ProductDetailView struct {
	ProductView
	Breadcrumbs    []Breadcrumb  `json:"breadcrumbs"`
	BrandFilterURL string        `json:"brand_filter_url,omitempty"`
	Variants       []VariantView `json:"variants"`
	InStock        bool          `json:"in_stock"`
	Quantity       int           `json:"quantity"`
}

// ProductDetail projects a product detail for the detail page.
func ProductDetail(d *domain.ProductDetail) ProductDetailView {
	v := ProductDetailView{
		ProductView: Product(d.Product),
		Breadcrumbs: []Breadcrumb{
			{Label: "Home", URL: "/"},
			{Label: "Products", URL: "/products"},
		},
		Variants: make([]VariantView, 0, len(d.Variants)),
		InStock:  d.InStock(),
	}

	if name := d.CategoryName(); name != "" {
		v.Breadcrumbs = append(v.Breadcrumbs, Breadcrumb{Label: name, URL: CategoryFilterURL(name)})
	}
	v.Breadcrumbs = append(v.Breadcrumbs, Breadcrumb{Label: d.Name})

	if name := d.BrandName(); name != "" {
		v.BrandFilterURL = BrandFilterURL(name)
	}

	for _, variant := range d.Variants {
		vv := VariantView{SKU: variant.SKU, Name: variant.Name}
		if variant.Price != nil {
			vv.Price = FormatPrice(*variant.Price)
		}
		v.Variants = append(v.Variants, vv)
	}

	if d.Inventory != nil {
		v.Quantity = d.Inventory.Quantity
	}

	return v
}

// FormatPrice renders an amount in paise as rupees.
func FormatPrice(paise int64) string {
	sign := ""
	if paise < 0 {
		sign = "-"
		paise = -paise
	}
	return fmt.Sprintf("%s₹%d.%02d", sign, paise/100, paise%100)
}
