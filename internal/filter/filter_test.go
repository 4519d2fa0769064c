package filter

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/burhaniassociates/storefront/internal/domain"
	"github.com/burhaniassociates/storefront/internal/repository/repositorytest"
)

func ids(products []domain.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

// --- FromQuery / Values ---

func TestFromQuery(t *testing.T) {
	q := url.Values{
		"brand":    {"Clamptek"},
		"category": {"toggle-clamps"},
		"search":   {"Clamp"},
		"page":     {"2"},
	}

	c := FromQuery(q)
	assert.Equal(t, Criteria{BrandSlug: "Clamptek", CategorySlug: "toggle-clamps", Search: "Clamp"}, c)
	assert.False(t, c.IsZero())
}

func TestFromQuery_Empty(t *testing.T) {
	c := FromQuery(url.Values{})
	assert.True(t, c.IsZero())
	assert.Empty(t, c.Values())
}

func TestCriteria_Values_OmitsEmpty(t *testing.T) {
	c := Criteria{CategorySlug: "handwheels"}
	assert.Equal(t, "category=handwheels", c.Values().Encode())
}

// --- Apply ---

func TestApply_NoCriteriaReturnsInput(t *testing.T) {
	products := repositorytest.Catalog()
	got := Apply(products, Criteria{})
	require.Len(t, got, len(products))
	assert.Same(t, &products[0], &got[0])
}

func TestApply_EmptyInput(t *testing.T) {
	assert.Empty(t, Apply(nil, Criteria{BrandSlug: "clamptek"}))
}

func TestApply(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{name: "brand", criteria: Criteria{BrandSlug: "clamptek"}, want: []string{"prod-1", "prod-3"}},
		{name: "brand token is case-insensitive", criteria: Criteria{BrandSlug: "CLAMPTEK"}, want: []string{"prod-1", "prod-3"}},
		{name: "brand requires exact token", criteria: Criteria{BrandSlug: "clamp-tek"}, want: []string{}},
		{name: "brand prefix does not match", criteria: Criteria{BrandSlug: "clamp"}, want: []string{}},
		{name: "category", criteria: Criteria{CategorySlug: "toggle-clamps"}, want: []string{"prod-1", "prod-2"}},
		{name: "category by display name does not match", criteria: Criteria{CategorySlug: "Toggle Clamps"}, want: []string{}},
		{name: "search name", criteria: Criteria{Search: "clamp"}, want: []string{"prod-1", "prod-2"}},
		{name: "search is case-insensitive", criteria: Criteria{Search: "BUFFER"}, want: []string{"prod-4"}},
		{name: "search description", criteria: Criteria{Search: "250 kg"}, want: []string{"prod-1"}},
		{name: "brand and category", criteria: Criteria{BrandSlug: "clamptek", CategorySlug: "handwheels"}, want: []string{"prod-3"}},
		{name: "all three", criteria: Criteria{BrandSlug: "swiftin", CategorySlug: "toggle-clamps", Search: "push"}, want: []string{"prod-2"}},
		{name: "conflicting criteria", criteria: Criteria{BrandSlug: "swiftin", CategorySlug: "handwheels"}, want: []string{}},
		{name: "unknown brand", criteria: Criteria{BrandSlug: "jganter"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(repositorytest.Catalog(), tt.criteria)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestApply_ProductWithoutBrandOrCategoryNeverMatchesThoseFilters(t *testing.T) {
	loose := []domain.Product{repositorytest.Product("prod-x", "Anti-Vibration Pad", nil, nil)}

	assert.Empty(t, Apply(loose, Criteria{BrandSlug: "clamptek"}))
	assert.Empty(t, Apply(loose, Criteria{CategorySlug: "vibration-mounts"}))
	assert.Len(t, Apply(loose, Criteria{Search: "vibration"}), 1)
}

func TestApply_SearchWithoutDescriptionMatchesNameOnly(t *testing.T) {
	p := repositorytest.Product("prod-x", "Spoke Handwheel", &repositorytest.Clamptek, &repositorytest.Handwheels)

	assert.Len(t, Apply([]domain.Product{p}, Criteria{Search: "spoke"}), 1)
	assert.Empty(t, Apply([]domain.Product{p}, Criteria{Search: "bakelite"}))
}

func TestApply_SearchMatchesRawDescriptionMarkup(t *testing.T) {
	catalog := repositorytest.Catalog()
	assert.Equal(t, []string{"prod-1"}, ids(Apply(catalog, Criteria{Search: "<strong>"})))
}

// --- Properties ---

func TestApply_Composition(t *testing.T) {
	catalog := repositorytest.Catalog()
	criteria := []Criteria{
		{BrandSlug: "clamptek"},
		{CategorySlug: "toggle-clamps"},
		{Search: "clamp"},
	}

	for _, a := range criteria {
		for _, b := range criteria {
			combined := Criteria{
				BrandSlug:    a.BrandSlug + b.BrandSlug,
				CategorySlug: a.CategorySlug + b.CategorySlug,
				Search:       a.Search + b.Search,
			}
			if a == b {
				continue
			}
			sequential := Apply(Apply(catalog, a), b)
			assert.Equal(t, ids(Apply(catalog, combined)), ids(sequential), "%+v then %+v", a, b)
		}
	}
}

func TestApply_Idempotent(t *testing.T) {
	catalog := repositorytest.Catalog()
	c := Criteria{BrandSlug: "clamptek", Search: "clamp"}

	once := Apply(catalog, c)
	assert.Equal(t, ids(once), ids(Apply(once, c)))
}

func TestApply_EndToEndScenario(t *testing.T) {
	desc := "High clamping force"
	clamp := repositorytest.Product("p1", "Heavy Duty Clamp", &repositorytest.Clamptek, &repositorytest.ToggleClamps)
	clamp.Description = &desc
	catalog := []domain.Product{clamp}

	got := Apply(catalog, Criteria{BrandSlug: "clamptek", CategorySlug: "toggle-clamps"})
	assert.Equal(t, []string{"p1"}, ids(got))

	got = Apply(catalog, Criteria{BrandSlug: "clamptek", CategorySlug: "toggle-clamps", Search: "heavy"})
	assert.Equal(t, []string{"p1"}, ids(got))

	assert.Empty(t, Apply(catalog, Criteria{BrandSlug: "swiftin"}))
}
