package main

import (
	"time"

	"github.com/google/uuid"
)

// seedNamespace keeps generated ids stable across runs.
var seedNamespace = uuid.MustParse("6f1d2c4e-9b1a-4c77-8d2e-3a5b7c9e1f20")

func seedID(kind, key string) string {
	return uuid.NewSHA1(seedNamespace, []byte(kind+":"+key)).String()
}

type seedBrand struct {
	Name string
}

type seedCategory struct {
	Name string
}

type seedVariant struct {
	SKU   string
	Name  string
	Price int64 // paise; 0 means price on request
}

type seedProduct struct {
	Key         string
	Name        string
	Description string
	Brand       string
	Category    string
	Images      []string
	Variants    []seedVariant
	Stock       int
}

type seedCatalog struct {
	Brands     []seedBrand
	Categories []seedCategory
	Products   []seedProduct
}

var defaultCatalog = seedCatalog{
	Brands: []seedBrand{
		{Name: "Clamptek"},
		{Name: "Swiftin"},
		{Name: "JGanter"},
	},
	Categories: []seedCategory{
		{Name: "Toggle Clamps"},
		{Name: "Handwheels"},
		{Name: "Vibration Mounts"},
		{Name: "Control Panel"},
	},
	Products: []seedProduct{
		{
			Key:         "ct-101-a",
			Name:        "CT-101-A Vertical Toggle Clamp",
			Description: "<p>Vertical hold-down clamp with <strong>90 kg</strong> holding capacity. Zinc plated steel, open arm with two flanged washers.</p>",
			Brand:       "Clamptek",
			Category:    "Toggle Clamps",
			Images:      []string{"/uploads/ct-101-a.jpg", "/uploads/ct-101-a-side.jpg"},
			Variants: []seedVariant{
				{SKU: "CT-101-A", Name: "Standard", Price: 42000},
				{SKU: "CT-101-AS", Name: "Stainless steel", Price: 96000},
			},
			Stock: 140,
		},
		{
			Key:         "ct-201-b",
			Name:        "CT-201-B Horizontal Toggle Clamp",
			Description: "<p>Horizontal clamp with U-bar arm for low-profile fixtures. Holding capacity <strong>227 kg</strong>.</p>",
			Brand:       "Clamptek",
			Category:    "Toggle Clamps",
			Images:      []string{"/uploads/ct-201-b.jpg"},
			Variants:    []seedVariant{{SKU: "CT-201-B", Name: "Standard", Price: 51500}},
			Stock:       85,
		},
		{
			Key:         "ct-301-pp",
			Name:        "CT-301 Push-Pull Toggle Clamp",
			Description: "<p>Straight-line action clamp for assembly and welding jigs.</p><ul><li>Stroke 32 mm</li><li>Force 450 kg</li></ul>",
			Brand:       "Clamptek",
			Category:    "Toggle Clamps",
			Images:      []string{"/uploads/ct-301-pp.jpg"},
			Variants:    []seedVariant{{SKU: "CT-301", Name: "Flanged base", Price: 118000}},
			Stock:       0,
		},
		{
			Key:         "sw-4010",
			Name:        "SW-4010 Latch Type Clamp",
			Description: "<p>Pull-action latch clamp for panel and lid closing.</p>",
			Brand:       "Swiftin",
			Category:    "Toggle Clamps",
			Images:      []string{"/uploads/sw-4010.jpg"},
			Variants:    []seedVariant{{SKU: "SW-4010", Name: "Standard"}},
			Stock:       60,
		},
		{
			Key:         "sw-bh-100",
			Name:        "Bakelite Handwheel 100 mm",
			Description: "<p>Solid bakelite handwheel with revolving handle, reamed bore.</p>",
			Brand:       "Swiftin",
			Category:    "Handwheels",
			Images:      []string{"/uploads/sw-bh-100.jpg"},
			Variants: []seedVariant{
				{SKU: "SW-BH-100-12", Name: "12 mm bore", Price: 26500},
				{SKU: "SW-BH-100-16", Name: "16 mm bore", Price: 27500},
			},
			Stock: 300,
		},
		{
			Key:         "jg-dk-950",
			Name:        "GN 950 Spoked Handwheel",
			Description: "<p>Aluminium spoked handwheel, plastic coated rim.</p>",
			Brand:       "JGanter",
			Category:    "Handwheels",
			Images:      []string{"/uploads/jg-dk-950.jpg"},
			Variants:    []seedVariant{{SKU: "GN-950-200", Name: "200 mm", Price: 348000}},
			Stock:       12,
		},
		{
			Key:         "rb-cyl-50",
			Name:        "Cylindrical Rubber Buffer 50x40",
			Description: "<p>Anti-vibration mount, male-female M10 studs, natural rubber 55 Shore A.</p>",
			Category:    "Vibration Mounts",
			Images:      []string{"/uploads/rb-cyl-50.jpg"},
			Variants:    []seedVariant{{SKU: "RB-5040-MF", Name: "M10 male-female", Price: 9500}},
			Stock:       1000,
		},
		{
			Key:         "jg-levelling-pad",
			Name:        "Levelling Pad with Anti-Vibration Base",
			Description: "<p>Swivel levelling foot for machine installation.</p>",
			Brand:       "JGanter",
			Category:    "Vibration Mounts",
			Images:      []string{"/uploads/jg-levelling-pad.jpg"},
			Variants:    []seedVariant{{SKU: "GN-343-80", Name: "80 mm base", Price: 112000}},
			Stock:       40,
		},
		{
			Key:         "cp-lock-1000",
			Name:        "Panel Lock with Key 1000",
			Description: "<p>Quarter-turn cam lock for electrical control panels. Supplied with two keys.</p>",
			Category:    "Control Panel",
			Images:      []string{"/uploads/cp-lock-1000.jpg"},
			Variants:    []seedVariant{{SKU: "CP-1000", Name: "Standard key", Price: 18500}},
			Stock:       220,
		},
		{
			Key:         "cp-hinge-ss",
			Name:        "Concealed Panel Hinge",
			Description: "",
			Category:    "Control Panel",
			Stock:       75,
		},
	},
}

// createdAt spaces products a minute apart so "newest first" is stable.
func createdAt(base time.Time, index, total int) time.Time {
	return base.Add(-time.Duration(total-index) * time.Minute)
}
