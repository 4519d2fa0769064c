package domain

// Brand represents a manufacturer the dealer is authorized for.
type Brand struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BrandSummary is a brand together with the number of products it owns.
type BrandSummary struct {
	Brand
	ProductCount int `json:"product_count"`
}
