package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"craft-gallery/pkg/config"
	"craft-gallery/pkg/lightbox"
	"craft-gallery/pkg/models"
	"craft-gallery/pkg/services"
)

const viewsDir = "../../views"

// renderPage serves target through the router with the real pug views
func renderPage(t *testing.T, fetcher services.Fetcher, target string) string {
	t.Helper()
	svc := services.NewService(config.Defaults(), fetcher, nil)
	h := New(svc, lightbox.NewStore(time.Minute), PugRenderer{Dir: viewsDir}, nil)

	rec := httptest.NewRecorder()
	h.Router(t.TempDir()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	return rec.Body.String()
}

func TestProductViewRendersTiles(t *testing.T) {
	body := renderPage(t, manifestFetcher(soap), "/product-page.html?category=Soap&price=5")

	assert.Contains(t, body, "<title>Soap - Crafty Peaches</title>")
	assert.Contains(t, body, `id="category-title">Soap</h1>`)
	assert.Contains(t, body, "$5 each")
	assert.Contains(t, body, `data-id="image-0"`)
	assert.Contains(t, body, `data-id="image-2"`)
	assert.Contains(t, body, `src="Images/Soap/x.jpg"`)
	assert.NotContains(t, body, `id="lightbox"`)
	assert.NotContains(t, body, "no-scroll")
}

func TestProductViewEmptyCategory(t *testing.T) {
	body := renderPage(t, manifestFetcher(soap), "/product?category=Candles")

	assert.Contains(t, body, "No images found for Candles.")
	assert.NotContains(t, body, "data-id=")
	assert.Contains(t, body, `<p id="category-price"></p>`)
}

func TestProductViewFetchError(t *testing.T) {
	failing := services.FetcherFunc(func(context.Context) (models.Manifest, error) {
		return nil, errors.New("connection refused")
	})
	body := renderPage(t, failing, "/product?category=Soap")

	assert.Contains(t, body, "Error loading images:")
	assert.Contains(t, body, "connection refused")
	assert.NotContains(t, body, "data-id=")
}

func TestProductViewLightboxDeepLink(t *testing.T) {
	body := renderPage(t, manifestFetcher(soap), "/product?category=Soap&price=5&image=image-1")

	assert.Contains(t, body, `class="no-scroll"`)
	assert.Contains(t, body, `id="lightbox"`)
	assert.Contains(t, body, `<img id="lightbox-img" src="Images/Soap/y.jpg"`)
	assert.Contains(t, body, "2 / 3")
}

func TestProductViewUnknownImageHasNoOverlay(t *testing.T) {
	body := renderPage(t, manifestFetcher(soap), "/product?category=Soap&image=image-9")

	assert.NotContains(t, body, `id="lightbox"`)
	assert.Contains(t, body, `data-id="image-0"`)
}

func TestProductViewWithoutCategory(t *testing.T) {
	body := renderPage(t, manifestFetcher(soap), "/product")

	assert.Contains(t, body, "<title>Crafty Peaches</title>")
	assert.NotContains(t, body, "data-id=")
}

func TestIndexViewRendersPreviews(t *testing.T) {
	body := renderPage(t, manifestFetcher(soap), "/")

	assert.Contains(t, body, "<h1>Crafty Peaches</h1>")
	assert.Contains(t, body, `data-folder="Soap"`)
	assert.Contains(t, body, "background-image")
	assert.Contains(t, body, "Images/Soap/x.jpg")
	assert.Contains(t, body, "background-color: #f5f5f5")
	assert.Contains(t, body, "<p>View Candles</p>")
}

func TestPugRendererAbsoluteDir(t *testing.T) {
	abs, err := filepath.Abs(viewsDir)
	require.NoError(t, err)

	var buf bytes.Buffer
	page := models.ProductPage{Title: "Soap - Shop", SiteName: "Shop"}
	require.NoError(t, PugRenderer{Dir: abs}.Render(&buf, "product", page))
	assert.Contains(t, buf.String(), "<title>Soap - Shop</title>")
}

func TestPugRendererTempDirWithInclude(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "page.pug"), []byte("div\n  include footer\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "footer.pug"), []byte("p #{Title}\n"), 0o644))

	var buf bytes.Buffer
	require.NoError(t, PugRenderer{Dir: dir}.Render(&buf, "page", models.Home{Title: "Footer"}))
	assert.Contains(t, buf.String(), "<p>Footer</p>")
}
