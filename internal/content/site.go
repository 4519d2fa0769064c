// Package content holds the static, site-wide configuration of the
// storefront: business identity, contact details, marketing copy and the
// default page metadata. It is loaded once at startup and never mutated.
package content

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/burhaniassociates/storefront/pkg/validator"
)

//go:embed site.yaml
var defaultSite []byte

// Site is the immutable site configuration.
type Site struct {
	Name    string `yaml:"name" validate:"required"`
	BaseURL string `yaml:"base_url" validate:"required,http_url"`
	City    string `yaml:"city" validate:"required"`
	Since   int    `yaml:"since" validate:"gte=1900"`
	Locale  string `yaml:"locale" validate:"required"`

	Metadata       Metadata  `yaml:"metadata"`
	Contact        Contact   `yaml:"contact"`
	Home           Home      `yaml:"home"`
	Catalog        Catalog   `yaml:"catalog"`
	BrandsPage     PageIntro `yaml:"brands_page"`
	CategoriesPage PageIntro `yaml:"categories_page"`
}

// Metadata is the site-wide default page metadata.
type Metadata struct {
	DefaultTitle  string   `yaml:"default_title" validate:"required"`
	TitleTemplate string   `yaml:"title_template" validate:"required,contains=%s"`
	Description   string   `yaml:"description" validate:"required"`
	Keywords      []string `yaml:"keywords"`
	Author        string   `yaml:"author"`
	OpenGraph     Social   `yaml:"open_graph"`
	Twitter       Social   `yaml:"twitter"`
}

// Social is the title and description shared on social cards.
type Social struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// Contact holds the dealer's address and how to reach them.
type Contact struct {
	Address []string `yaml:"address" validate:"required,min=1"`
	Phone   string   `yaml:"phone" validate:"required"`
	Email   string   `yaml:"email" validate:"required,email"`
	MapsURL string   `yaml:"maps_url" validate:"omitempty,http_url"`
	Enquiry string   `yaml:"enquiry"`
}

// Home is the copy of the landing page.
type Home struct {
	Hero               []HeroSlide        `yaml:"hero"`
	BrandStripTitle    string             `yaml:"brand_strip_title"`
	BrandStrip         []string           `yaml:"brand_strip"`
	FeaturedCategories []FeaturedCategory `yaml:"featured_categories" validate:"dive"`
	FeaturedTitle      string             `yaml:"featured_title"`
	FeaturedIntro      string             `yaml:"featured_intro"`
	FeaturedLimit      int                `yaml:"featured_limit" validate:"gte=1,lte=24"`
	About              string             `yaml:"about"`
	Stats              []Stat             `yaml:"stats"`
}

// HeroSlide is one slide of the landing page carousel.
type HeroSlide struct {
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
	Image    string `yaml:"image"`
	CTAText  string `yaml:"cta_text"`
	CTALink  string `yaml:"cta_link"`
}

// FeaturedCategory is a hand-picked category tile on the landing page. Slug
// is written out rather than derived so tiles can point at any filter token.
type FeaturedCategory struct {
	Name        string `yaml:"name" validate:"required"`
	Slug        string `yaml:"slug" validate:"required"`
	Description string `yaml:"description"`
	Image       string `yaml:"image"`
}

// Stat is a headline figure in the about block.
type Stat struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

// Catalog is the copy of the product listing and detail pages.
type Catalog struct {
	Title              string   `yaml:"title"`
	Intro              string   `yaml:"intro"`
	SearchPlaceholder  string   `yaml:"search_placeholder"`
	EmptyTitle         string   `yaml:"empty_title"`
	UnavailableNotice  string   `yaml:"unavailable_notice"`
	DefaultDescription string   `yaml:"default_description" validate:"required"`
	FallbackBrand      string   `yaml:"fallback_brand" validate:"required"`
	TrustIndicators    []string `yaml:"trust_indicators"`
}

// PageIntro is the header copy of a simple listing page.
type PageIntro struct {
	Title string `yaml:"title"`
	Intro string `yaml:"intro"`
}

// Default returns the built-in site configuration.
func Default() (*Site, error) {
	return parse(defaultSite, "embedded site.yaml")
}

// Load reads the site configuration from path, or the built-in one when path
// is empty.
func Load(path string) (*Site, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read site content: %w", err)
	}
	return parse(data, path)
}

func parse(data []byte, source string) (*Site, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var site Site
	if err := dec.Decode(&site); err != nil {
		return nil, fmt.Errorf("decode %s: %w", source, err)
	}

	if err := validator.Validate(site); err != nil {
		return nil, fmt.Errorf("invalid site content in %s: %w", source, err)
	}

	return &site, nil
}

// ProductURL returns the canonical URL of a product page.
func (s *Site) ProductURL(id string) string {
	return s.BaseURL + "/products/" + id
}

// Title applies the site title template to a page title.
func (s *Site) Title(page string) string {
	if page == "" {
		return s.Metadata.DefaultTitle
	}
	return fmt.Sprintf(s.Metadata.TitleTemplate, page)
}
