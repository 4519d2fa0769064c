package domain

// Category represents a product category.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CategorySummary is a category together with the number of products filed under it.
type CategorySummary struct {
	Category
	ProductCount int `json:"product_count"`
}
