package http

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/burhaniassociates/storefront/internal/content"
	"github.com/burhaniassociates/storefront/internal/seo"
	"github.com/burhaniassociates/storefront/internal/view"
	"github.com/burhaniassociates/storefront/pkg/logger"
	"github.com/burhaniassociates/storefront/pkg/middleware"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Page templates, each rendered inside the shared layout.
const (
	pageHome       = "home"
	pageBrands     = "brands"
	pageCategories = "categories"
	pageProducts   = "products"
	pageProduct    = "product"
	pageNotFound   = "notfound"
	pageError      = "error"
)

var pages = []string{pageHome, pageBrands, pageCategories, pageProducts, pageProduct, pageNotFound, pageError}

// pageData is what every template receives.
type pageData struct {
	Site        *content.Site
	Meta        seo.PageMetadata
	Unavailable bool
	Year        int
	Body        any
}

// Renderer executes the page templates. Product descriptions are the only
// markup taken from the store; they pass through a bluemonday UGC policy
// before they reach a template.
type Renderer struct {
	site      *content.Site
	templates map[string]*template.Template
	policy    *bluemonday.Policy
	now       func() time.Time
}

// NewRenderer parses every page template against the shared layout.
func NewRenderer(site *content.Site) (*Renderer, error) {
	funcs := template.FuncMap{
		"join":        strings.Join,
		"productURL":  view.ProductURL,
		"brandURL":    view.BrandFilterURL,
		"categoryURL": view.CategoryFilterURL,
	}

	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		tmpl, err := template.New(page).Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html",
			"templates/card.html",
			"templates/"+page+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", page, err)
		}
		templates[page] = tmpl
	}

	return &Renderer{
		site:      site,
		templates: templates,
		policy:    bluemonday.UGCPolicy(),
		now:       time.Now,
	}, nil
}

// Sanitize makes a stored description safe to embed as HTML. An empty
// description falls back to the site's default copy.
func (rd *Renderer) Sanitize(description string) template.HTML {
	if strings.TrimSpace(description) == "" {
		description = rd.site.Catalog.DefaultDescription
	}
	return template.HTML(rd.policy.Sanitize(description)) // #nosec G203 -- sanitized by bluemonday
}

// Render executes page into a buffer and writes it with status. A template
// failure is logged and answered with a bare 500 since the page could not be built.
// Error statuses and degraded pages are marked no-store.
func (rd *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, page string, data pageData) {
	tmpl, ok := rd.templates[page]
	if !ok {
		rd.fail(w, r, fmt.Errorf("unknown page %q", page))
		return
	}

	data.Site = rd.site
	data.Year = rd.now().Year()

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		rd.fail(w, r, fmt.Errorf("render %s: %w", page, err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if status != http.StatusOK || data.Unavailable {
		w.Header().Set("Cache-Control", middleware.NoStoreValue)
	}
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (rd *Renderer) fail(w http.ResponseWriter, r *http.Request, err error) {
	logger.FromContext(r.Context()).ErrorContext(r.Context(), "page render failed",
		slog.String("error", err.Error()),
		slog.String("path", r.URL.Path),
	)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// Static serves the embedded stylesheet and images under /static/.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
