package http

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/burhaniassociates/storefront/internal/catalog"
	"github.com/burhaniassociates/storefront/internal/content"
	"github.com/burhaniassociates/storefront/internal/filter"
	"github.com/burhaniassociates/storefront/internal/seo"
	"github.com/burhaniassociates/storefront/internal/view"
)

// PageHandler serves the server-rendered storefront pages.
type PageHandler struct {
	catalog  *catalog.Service
	site     *content.Site
	renderer *Renderer
	logger   *slog.Logger
}

// NewPageHandler creates a new page handler.
func NewPageHandler(svc *catalog.Service, site *content.Site, renderer *Renderer, logger *slog.Logger) *PageHandler {
	return &PageHandler{
		catalog:  svc,
		site:     site,
		renderer: renderer,
		logger:   logger,
	}
}

type categoryTile struct {
	content.FeaturedCategory
	URL string
}

type homeBody struct {
	content.Home
	Tiles    []categoryTile
	Products []view.ProductView
}

type detailBody struct {
	Product     view.ProductDetailView
	Description template.HTML
}

type messageBody struct {
	Heading   string
	Message   string
	BackURL   string
	BackLabel string
}

// Home handles GET /
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	newest := h.catalog.Products(r.Context(), h.site.Home.FeaturedLimit)

	body := homeBody{
		Home:     h.site.Home,
		Tiles:    make([]categoryTile, 0, len(h.site.Home.FeaturedCategories)),
		Products: view.Products(newest.Items),
	}
	for i := range body.Products {
		body.Products[i].Featured = true
	}
	for _, fc := range h.site.Home.FeaturedCategories {
		body.Tiles = append(body.Tiles, categoryTile{
			FeaturedCategory: fc,
			URL:              "/products?" + filter.Criteria{CategorySlug: fc.Slug}.Values().Encode(),
		})
	}

	h.renderer.Render(w, r, http.StatusOK, pageHome, pageData{
		Meta:        seo.Site(h.site),
		Unavailable: newest.Unavailable,
		Body:        body,
	})
}

// Brands handles GET /brands
func (h *PageHandler) Brands(w http.ResponseWriter, r *http.Request) {
	brands := h.catalog.Brands(r.Context())

	h.renderer.Render(w, r, http.StatusOK, pageBrands, pageData{
		Meta:        seo.Page(h.site, h.site.BrandsPage.Title, h.site.BrandsPage.Intro, "/brands"),
		Unavailable: brands.Unavailable,
		Body:        view.Brands(brands.Items),
	})
}

// Categories handles GET /categories
func (h *PageHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories := h.catalog.Categories(r.Context())

	h.renderer.Render(w, r, http.StatusOK, pageCategories, pageData{
		Meta:        seo.Page(h.site, h.site.CategoriesPage.Title, h.site.CategoriesPage.Intro, "/categories"),
		Unavailable: categories.Unavailable,
		Body:        view.Categories(categories.Items),
	})
}

// Products handles GET /products?brand=&category=&search=
func (h *PageHandler) Products(w http.ResponseWriter, r *http.Request) {
	criteria := filter.FromQuery(r.URL.Query())
	page := h.catalog.Catalog(r.Context(), criteria)

	h.renderer.Render(w, r, http.StatusOK, pageProducts, pageData{
		Meta:        seo.Page(h.site, h.site.Catalog.Title, h.site.Catalog.Intro, "/products"),
		Unavailable: page.Unavailable,
		Body:        view.NewListing(criteria, page.Products, page.Brands, page.Categories),
	})
}

// Product handles GET /products/{id}. A missing product and a failed lookup
// both render the not-found page.
func (h *PageHandler) Product(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	result := h.catalog.Product(r.Context(), id)

	if !result.Found() {
		h.renderer.Render(w, r, http.StatusNotFound, pageNotFound, pageData{
			Meta:        seo.Synthesize(h.site, nil),
			Unavailable: result.Unavailable,
			Body: messageBody{
				Heading:   "Product not found",
				Message:   "The product you are looking for does not exist or is no longer listed.",
				BackURL:   "/products",
				BackLabel: "Back to Products",
			},
		})
		return
	}

	detail := view.ProductDetail(result.Product)
	h.renderer.Render(w, r, http.StatusOK, pageProduct, pageData{
		Meta: seo.Synthesize(h.site, result.Product),
		Body: detailBody{
			Product:     detail,
			Description: h.renderer.Sanitize(detail.Description),
		},
	})
}

// NotFound renders the 404 page for unmatched routes.
func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	meta := seo.Page(h.site, "Page Not Found", "", r.URL.Path)
	meta.Robots = "noindex, follow"

	h.renderer.Render(w, r, http.StatusNotFound, pageNotFound, pageData{
		Meta: meta,
		Body: messageBody{
			Heading:   "Page not found",
			Message:   "The page you requested could not be found.",
			BackURL:   "/",
			BackLabel: "Back to Home",
		},
	})
}

// ServerError renders the 500 page. It is the fallback of the panic recovery
// middleware for page routes.
func (h *PageHandler) ServerError(w http.ResponseWriter, r *http.Request) {
	h.renderError(w, r, http.StatusInternalServerError, "Something went wrong",
		"We could not load this page. Please try again shortly.")
}

// TooManyRequests renders the 429 page for the rate limiter.
func (h *PageHandler) TooManyRequests(w http.ResponseWriter, r *http.Request) {
	h.renderError(w, r, http.StatusTooManyRequests, "Too many requests",
		"You are browsing faster than we can keep up. Please wait a moment and try again.")
}

func (h *PageHandler) renderError(w http.ResponseWriter, r *http.Request, status int, heading, message string) {
	meta := seo.Page(h.site, heading, "", r.URL.Path)
	meta.Robots = "noindex, follow"

	h.renderer.Render(w, r, status, pageError, pageData{
		Meta: meta,
		Body: messageBody{Heading: heading, Message: message},
	})
}
