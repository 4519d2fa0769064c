// Package seo derives page metadata (title, description, keywords, canonical
// URL and social cards) for storefront pages.
package seo

import (
	"fmt"
	"regexp"

	"github.com/burhaniassociates/storefront/internal/content"
	"github.com/burhaniassociates/storefront/internal/domain"
)

// MaxDescriptionLength caps a product description in characters.
const MaxDescriptionLength = 160

// NotFoundTitle is the page title prefix used when a product does not exist.
const NotFoundTitle = "Product Not Found"

const (
	robotsIndex   = "index, follow"
	robotsNoIndex = "noindex, follow"
	ogType        = "website"
	twitterCard   = "summary_large_image"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// PageMetadata is everything a page emits in its document head.
type PageMetadata struct {
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Keywords     []string  `json:"keywords"`
	CanonicalURL string    `json:"canonical_url"`
	Images       []string  `json:"images"`
	Robots       string    `json:"robots"`
	Author       string    `json:"author,omitempty"`
	OpenGraph    OpenGraph `json:"open_graph"`
	Twitter      Twitter   `json:"twitter"`
}

// OpenGraph is the og:* block.
type OpenGraph struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Type        string   `json:"type"`
	URL         string   `json:"url"`
	SiteName    string   `json:"site_name"`
	Locale      string   `json:"locale"`
	Images      []string `json:"images,omitempty"`
}

// Twitter is the twitter:* card block.
type Twitter struct {
	Card        string   `json:"card"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Images      []string `json:"images,omitempty"`
}

// Site returns the site-wide default metadata.
func Site(site *content.Site) PageMetadata {
	md := site.Metadata
	return PageMetadata{
		Title:        md.DefaultTitle,
		Description:  md.Description,
		Keywords:     append([]string(nil), md.Keywords...),
		CanonicalURL: site.BaseURL,
		Images:       []string{},
		Robots:       robotsIndex,
		Author:       md.Author,
		OpenGraph: OpenGraph{
			Title:       orDefault(md.OpenGraph.Title, md.DefaultTitle),
			Description: orDefault(md.OpenGraph.Description, md.Description),
			Type:        ogType,
			URL:         site.BaseURL,
			SiteName:    site.Name,
			Locale:      site.Locale,
		},
		Twitter: Twitter{
			Card:        twitterCard,
			Title:       orDefault(md.Twitter.Title, md.DefaultTitle),
			Description: orDefault(md.Twitter.Description, md.Description),
		},
	}
}

// Page returns metadata for a simple site page at path, titled through the
// site title template. An empty description keeps the site default.
func Page(site *content.Site, title, description, path string) PageMetadata {
	m := Site(site)
	m.Title = site.Title(title)
	if description != "" {
		m.Description = description
	}
	m.CanonicalURL = site.BaseURL + path
	m.OpenGraph.Title = m.Title
	m.OpenGraph.Description = m.Description
	m.OpenGraph.URL = m.CanonicalURL
	m.Twitter.Title = m.Title
	m.Twitter.Description = m.Description
	return m
}

// Synthesize derives the metadata of a product detail page. A nil product
// yields the not-found metadata.
func Synthesize(site *content.Site, d *domain.ProductDetail) PageMetadata {
	if d == nil {
		m := Site(site)
		m.Title = fmt.Sprintf("%s | %s", NotFoundTitle, site.Name)
		m.Robots = robotsNoIndex
		m.OpenGraph.Title = m.Title
		m.Twitter.Title = m.Title
		return m
	}

	title := fmt.Sprintf("%s | %s", d.Name, site.Name)
	description := Description(site, &d.Product)
	canonical := site.ProductURL(d.ID)
	images := d.ImageURLs()

	return PageMetadata{
		Title:        title,
		Description:  description,
		Keywords:     Keywords(site, &d.Product),
		CanonicalURL: canonical,
		Images:       images,
		Robots:       robotsIndex,
		Author:       site.Metadata.Author,
		OpenGraph: OpenGraph{
			Title:       title,
			Description: description,
			Type:        ogType,
			URL:         canonical,
			SiteName:    site.Name,
			Locale:      site.Locale,
			Images:      images,
		},
		Twitter: Twitter{
			Card:        twitterCard,
			Title:       title,
			Description: description,
			Images:      images,
		},
	}
}

// Description returns the product description with markup tags removed and
// cut to MaxDescriptionLength characters. The cut ignores word boundaries.
// Products without a description get a sentence naming the brand and city.
func Description(site *content.Site, p *domain.Product) string {
	if text := p.DescriptionText(); text != "" {
		return truncate(StripTags(text), MaxDescriptionLength)
	}

	brand := p.BrandName()
	if brand == "" {
		brand = site.Catalog.FallbackBrand
	}
	return fmt.Sprintf("Buy %s - Authorized Dealer for %s in %s.", p.Name, brand, site.City)
}

// Keywords lists the product name, brand, category and the fixed site
// keywords, skipping empty values.
func Keywords(site *content.Site, p *domain.Product) []string {
	candidates := []string{
		p.Name,
		p.BrandName(),
		p.CategoryName(),
		site.Catalog.FallbackBrand,
		site.City,
		site.Name,
	}

	keywords := make([]string, 0, len(candidates))
	for _, k := range candidates {
		if k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords
}

// StripTags removes every <...> sequence from s.
func StripTags(s string) string {
	return tagPattern.ReplaceAllString(s, "")
}

func truncate(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
