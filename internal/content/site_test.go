package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	site, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "Burhani Associates", site.Name)
	assert.Equal(t, "https://burhaniassociates.com", site.BaseURL)
	assert.Equal(t, "Hyderabad", site.City)
	assert.Equal(t, 2000, site.Since)
	assert.Equal(t, "en_IN", site.Locale)
	assert.Equal(t, "burhaniassociates23@gmail.com", site.Contact.Email)
	assert.Equal(t, 4, site.Home.FeaturedLimit)
	require.Len(t, site.Home.FeaturedCategories, 4)
	assert.Equal(t, "toggle-clamps", site.Home.FeaturedCategories[0].Slug)
	assert.Equal(t, "Industrial Components", site.Catalog.FallbackBrand)
	assert.Contains(t, site.Metadata.Description, "Authorized Dealer for Clamptek")
}

func TestSite_Title(t *testing.T) {
	site, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "Our Brands | Burhani Associates", site.Title("Our Brands"))
	assert.Equal(t, "Burhani Associates | Industrial Components Hyderabad", site.Title(""))
}

func TestSite_ProductURL(t *testing.T) {
	site := &Site{BaseURL: "https://burhaniassociates.com"}
	assert.Equal(t, "https://burhaniassociates.com/products/abc-123", site.ProductURL("abc-123"))
}

func TestLoad_EmptyPathUsesDefault(t *testing.T) {
	site, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "Burhani Associates", site.Name)
}

func TestLoad_FromFile(t *testing.T) {
	data, err := os.ReadFile("site.yaml")
	require.NoError(t, err)

	custom := strings.Replace(string(data), "city: Hyderabad", "city: Secunderabad", 1)
	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte(custom), 0o600))

	site, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Secunderabad", site.City)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read site content")
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "malformed yaml",
			yaml:    "name: [unclosed",
			wantErr: "decode",
		},
		{
			name:    "unknown field",
			yaml:    "name: X\nbogus: true\n",
			wantErr: "field bogus not found",
		},
		{
			name:    "missing required fields",
			yaml:    "name: X\n",
			wantErr: "invalid site content",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse([]byte(tt.yaml), "test.yaml")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParse_InvalidBaseURL(t *testing.T) {
	data, err := os.ReadFile("site.yaml")
	require.NoError(t, err)

	bad := strings.Replace(string(data), "base_url: https://burhaniassociates.com", "base_url: not a url", 1)
	_, err = parse([]byte(bad), "test.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BaseURL")
}
