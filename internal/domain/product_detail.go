package domain

// ProductDetail is a product with its variants and inventory record, as
// loaded for the detail page.
type ProductDetail struct {
	Product
	Variants  []ProductVariant `json:"variants"`
	Inventory *Inventory       `json:"inventory,omitempty"`
}

// InStock reports whether an inventory record exists with a positive quantity.
func (d *ProductDetail) InStock() bool {
	return d.Inventory != nil && d.Inventory.Quantity > 0
}
