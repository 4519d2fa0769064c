package orm

import (
	"time"

	"github.com/burhaniassociates/storefront/internal/domain"
)

// Row types mapped by gorm. They stay private to the package so the domain
// types carry no ORM tags.

type brandModel struct {
	ID   string `gorm:"primaryKey"`
	Name string
}

func (brandModel) TableName() string { return "brands" }

type categoryModel struct {
	ID   string `gorm:"primaryKey"`
	Name string
}

func (categoryModel) TableName() string { return "categories" }

type productModel struct {
	ID          string `gorm:"primaryKey"`
	Name        string
	Description *string
	BrandID     *string
	CategoryID  *string
	CreatedAt   time.Time
	Brand       *brandModel     `gorm:"foreignKey:BrandID"`
	Category    *categoryModel  `gorm:"foreignKey:CategoryID"`
	Images      []imageModel    `gorm:"foreignKey:ProductID"`
	Variants    []variantModel  `gorm:"foreignKey:ProductID"`
	Inventory   *inventoryModel `gorm:"foreignKey:ProductID"`
}

func (productModel) TableName() string { return "products" }

type imageModel struct {
	ID        string `gorm:"primaryKey"`
	ProductID string
	URL       string `gorm:"column:url"`
	SortOrder int
}

func (imageModel) TableName() string { return "product_images" }

type variantModel struct {
	ID        string `gorm:"primaryKey"`
	ProductID string
	SKU       string `gorm:"column:sku"`
	Name      string
	Price     *int64
}

func (variantModel) TableName() string { return "product_variants" }

type inventoryModel struct {
	ProductID string `gorm:"primaryKey"`
	Quantity  int
	UpdatedAt time.Time
}

func (inventoryModel) TableName() string { return "inventory" }

type summaryRow struct {
	ID           string
	Name         string
	ProductCount int
}

func (m *productModel) toDomain() domain.Product {
	p := domain.Product{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		Images:      make([]domain.ProductImage, 0, len(m.Images)),
	}
	if m.Brand != nil {
		p.Brand = &domain.Brand{ID: m.Brand.ID, Name: m.Brand.Name}
	}
	if m.Category != nil {
		p.Category = &domain.Category{ID: m.Category.ID, Name: m.Category.Name}
	}
	for _, img := range m.Images {
		p.Images = append(p.Images, domain.ProductImage{
			ID:        img.ID,
			ProductID: img.ProductID,
			URL:       img.URL,
			SortOrder: img.SortOrder,
		})
	}
	return p
}

func (m *productModel) toDetail() *domain.ProductDetail {
	d := &domain.ProductDetail{
		Product:  m.toDomain(),
		Variants: make([]domain.ProductVariant, 0, len(m.Variants)),
	}
	for _, v := range m.Variants {
		d.Variants = append(d.Variants, domain.ProductVariant{
			ID:        v.ID,
			ProductID: v.ProductID,
			SKU:       v.SKU,
			Name:      v.Name,
			Price:     v.Price,
		})
	}
	if m.Inventory != nil {
		d.Inventory = &domain.Inventory{
			ProductID: m.Inventory.ProductID,
			Quantity:  m.Inventory.Quantity,
			UpdatedAt: m.Inventory.UpdatedAt,
		}
	}
	return d
}
