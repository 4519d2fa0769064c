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
	apperrors "github.com/burhaniassociates/storefront/pkg/errors"
	"github.com/burhaniassociates/storefront/pkg/httputil"
	"github.com/burhaniassociates/storefront/pkg/pagination"
)

// APIHandler serves the read-only JSON mirror of the catalog pages.
type APIHandler struct {
	catalog  *catalog.Service
	site     *content.Site
	renderer *Renderer
	logger   *slog.Logger
}

// NewAPIHandler creates a new JSON API handler.
func NewAPIHandler(svc *catalog.Service, site *content.Site, renderer *Renderer, logger *slog.Logger) *APIHandler {
	return &APIHandler{
		catalog:  svc,
		site:     site,
		renderer: renderer,
		logger:   logger,
	}
}

// ProductResponse is the body of GET /api/v1/products/{id}.
type ProductResponse struct {
	Product         view.ProductDetailView `json:"product"`
	DescriptionHTML template.HTML          `json:"description_html"`
	Metadata        seo.PageMetadata       `json:"metadata"`
}

// ListBrands handles GET /api/v1/brands
func (h *APIHandler) ListBrands(w http.ResponseWriter, r *http.Request) {
	brands := h.catalog.Brands(r.Context())
	httputil.WriteData(w, view.Brands(brands.Items), brands.Unavailable)
}

// ListCategories handles GET /api/v1/categories
func (h *APIHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories := h.catalog.Categories(r.Context())
	httputil.WriteData(w, view.Categories(categories.Items), categories.Unavailable)
}

// ListProducts handles GET /api/v1/products?brand=&category=&search=&page=&per_page=
func (h *APIHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	criteria := filter.FromQuery(r.URL.Query())
	params := pagination.FromRequest(r)

	products := h.catalog.Products(r.Context(), 0)
	matched := view.Products(filter.Apply(products.Items, criteria))

	httputil.WriteData(w, pagination.Paginate(matched, params), products.Unavailable)
}

// GetProduct handles GET /api/v1/products/{id}. A missing product and a
// failed store both answer 404; the latter sets meta.unavailable.
func (h *APIHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	result := h.catalog.Product(r.Context(), id)

	switch {
	case result.Found():
		detail := view.ProductDetail(result.Product)
		httputil.WriteData(w, ProductResponse{
			Product:         detail,
			DescriptionHTML: h.renderer.Sanitize(detail.Description),
			Metadata:        seo.Synthesize(h.site, result.Product),
		}, false)
	case result.Unavailable:
		httputil.WriteErrorMeta(w, r, apperrors.NotFound("product", id), &httputil.Meta{Unavailable: true}, h.logger)
	default:
		httputil.WriteError(w, r, apperrors.NotFound("product", id), h.logger)
	}
}
