package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gulftrading/gtg-api/internal/api"
	"github.com/gulftrading/gtg-api/internal/domain"
	"github.com/gulftrading/gtg-api/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// envelope mirrors the response body shape for test decoding.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Total   *int            `json:"total"`
	Page    *int            `json:"page"`
	Pages   *int            `json:"pages"`
}

func newProductRouter(products *mocks.ProductStore) http.Handler {
	h := api.NewProductHandler(products)
	r := chi.NewRouter()
	r.Get("/products", h.List)
	r.Get("/products/{id}", h.Get)
	r.Get("/products/featured/list", h.Featured)
	r.Get("/products/categories/list", h.Categories)
	r.Post("/products", h.Create)
	r.Put("/products/{id}", h.Update)
	r.Delete("/products/{id}", h.Delete)
	return r
}

func seedProduct(t *testing.T, products *mocks.ProductStore, name string, category domain.ProductCategory, ageOffset time.Duration, mutate func(*domain.Product)) *domain.Product {
	t.Helper()
	p, err := domain.NewProduct(name, category, "Description of "+name)
	require.NoError(t, err)
	p.CreatedAt = time.Now().UTC().Add(-ageOffset)
	if mutate != nil {
		mutate(p)
	}
	products.Seed(p)
	return p
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	r := httptest.NewRequest(method, path, &buf)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func listNames(t *testing.T, env envelope) []string {
	t.Helper()
	var products []domain.Product
	require.NoError(t, json.Unmarshal(env.Data, &products))
	names := make([]string, len(products))
	for i, p := range products {
		names[i] = p.Name
	}
	return names
}

func TestListProducts(t *testing.T) {
	t.Parallel()

	setup := func(t *testing.T) (*mocks.ProductStore, http.Handler) {
		products := mocks.NewProductStore()
		seedProduct(t, products, "Dome Camera", domain.CategorySecurityCameras, 3*time.Hour, func(p *domain.Product) {
			p.Brand = "Hikvision"
		})
		seedProduct(t, products, "Business Laptop", domain.CategoryLaptops, 2*time.Hour, func(p *domain.Product) {
			p.Featured = true
		})
		seedProduct(t, products, "Rack Server", domain.CategoryServers, time.Hour, nil)
		return products, newProductRouter(products)
	}

	t.Run("defaults to newest first", func(t *testing.T) {
		t.Parallel()
		_, router := setup(t)

		w, env := doJSON(t, router, http.MethodGet, "/products", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "success", env.Status)
		assert.Equal(t, []string{"Rack Server", "Business Laptop", "Dome Camera"}, listNames(t, env))
		require.NotNil(t, env.Total)
		assert.Equal(t, 3, *env.Total)
	})

	t.Run("sorts by name", func(t *testing.T) {
		t.Parallel()
		_, router := setup(t)

		_, env := doJSON(t, router, http.MethodGet, "/products?sort=name", nil)
		assert.Equal(t, []string{"Business Laptop", "Dome Camera", "Rack Server"}, listNames(t, env))
	})

	t.Run("unrecognized sort falls back to newest", func(t *testing.T) {
		t.Parallel()
		_, router := setup(t)

		_, env := doJSON(t, router, http.MethodGet, "/products?sort=price", nil)
		assert.Equal(t, []string{"Rack Server", "Business Laptop", "Dome Camera"}, listNames(t, env))
	})

	t.Run("filters by category", func(t *testing.T) {
		t.Parallel()
		_, router := setup(t)

		_, env := doJSON(t, router, http.MethodGet, "/products?category=Laptops", nil)
		assert.Equal(t, []string{"Business Laptop"}, listNames(t, env))
		assert.Equal(t, 1, *env.Total)
	})

	t.Run("search matches name, description, and brand", func(t *testing.T) {
		t.Parallel()
		_, router := setup(t)

		_, env := doJSON(t, router, http.MethodGet, "/products?search=hikvision", nil)
		assert.Equal(t, []string{"Dome Camera"}, listNames(t, env))
	})

	t.Run("featured=false matches only non-featured products", func(t *testing.T) {
		t.Parallel()
		_, router := setup(t)

		_, env := doJSON(t, router, http.MethodGet, "/products?featured=false", nil)
		assert.ElementsMatch(t, []string{"Dome Camera", "Rack Server"}, listNames(t, env))
	})

	t.Run("paginates with total and pages", func(t *testing.T) {
		t.Parallel()
		_, router := setup(t)

		_, env := doJSON(t, router, http.MethodGet, "/products?limit=2&page=2&sort=name", nil)
		assert.Equal(t, []string{"Rack Server"}, listNames(t, env))
		assert.Equal(t, 3, *env.Total)
		assert.Equal(t, 2, *env.Page)
		assert.Equal(t, 2, *env.Pages)
	})

	t.Run("page beyond the last is empty, not an error", func(t *testing.T) {
		t.Parallel()
		_, router := setup(t)

		w, env := doJSON(t, router, http.MethodGet, "/products?page=99", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, listNames(t, env))
		assert.Equal(t, 3, *env.Total)
	})
}

func TestGetProduct(t *testing.T) {
	t.Parallel()

	products := mocks.NewProductStore()
	p := seedProduct(t, products, "Dome Camera", domain.CategorySecurityCameras, time.Hour, nil)
	router := newProductRouter(products)

	t.Run("found", func(t *testing.T) {
		t.Parallel()
		w, env := doJSON(t, router, http.MethodGet, "/products/"+p.ID.String(), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var got domain.Product
		require.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, "dome-camera", got.Slug)
	})

	t.Run("unknown id", func(t *testing.T) {
		t.Parallel()
		w, env := doJSON(t, router, http.MethodGet, "/products/"+uuid.NewString(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "error", env.Status)
	})

	t.Run("malformed id", func(t *testing.T) {
		t.Parallel()
		w, _ := doJSON(t, router, http.MethodGet, "/products/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestFeaturedProducts(t *testing.T) {
	t.Parallel()

	products := mocks.NewProductStore()
	for i := 0; i < 9; i++ {
		seedProduct(t, products, fmt.Sprintf("Product %d", i), domain.CategoryOther, time.Duration(i)*time.Hour, func(p *domain.Product) {
			p.Featured = true
		})
	}
	router := newProductRouter(products)

	w, env := doJSON(t, router, http.MethodGet, "/products/featured/list", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got []domain.Product
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Len(t, got, 6)
}

func TestCreateProduct(t *testing.T) {
	t.Parallel()

	t.Run("creates with derived slug", func(t *testing.T) {
		t.Parallel()
		products := mocks.NewProductStore()
		router := newProductRouter(products)

		w, env := doJSON(t, router, http.MethodPost, "/products", map[string]interface{}{
			"name":        "HD Security Camera System!!",
			"category":    "Security Cameras",
			"description": "A complete camera kit.",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var got domain.Product
		require.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, "hd-security-camera-system", got.Slug)
		assert.True(t, got.InStock)
	})

	t.Run("slug collision conflicts", func(t *testing.T) {
		t.Parallel()
		products := mocks.NewProductStore()
		seedProduct(t, products, "Dome Camera", domain.CategorySecurityCameras, time.Hour, nil)
		router := newProductRouter(products)

		// Differently punctuated name, identical slug.
		w, env := doJSON(t, router, http.MethodPost, "/products", map[string]interface{}{
			"name":        "Dome   Camera!",
			"category":    "Security Cameras",
			"description": "Another dome camera.",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "error", env.Status)
	})

	t.Run("invalid category", func(t *testing.T) {
		t.Parallel()
		products := mocks.NewProductStore()
		router := newProductRouter(products)

		w, _ := doJSON(t, router, http.MethodPost, "/products", map[string]interface{}{
			"name":        "Mystery Item",
			"category":    "Appliances",
			"description": "Not in the catalog taxonomy.",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUpdateProduct(t *testing.T) {
	t.Parallel()

	t.Run("rename re-derives the slug", func(t *testing.T) {
		t.Parallel()
		products := mocks.NewProductStore()
		p := seedProduct(t, products, "Dome Camera", domain.CategorySecurityCameras, time.Hour, nil)
		router := newProductRouter(products)

		w, env := doJSON(t, router, http.MethodPut, "/products/"+p.ID.String(), map[string]interface{}{
			"name": "Bullet Camera",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var got domain.Product
		require.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, "bullet-camera", got.Slug)
		assert.Equal(t, p.Description, got.Description, "omitted fields stay unchanged")
	})

	t.Run("unknown product", func(t *testing.T) {
		t.Parallel()
		products := mocks.NewProductStore()
		router := newProductRouter(products)

		w, _ := doJSON(t, router, http.MethodPut, "/products/"+uuid.NewString(), map[string]interface{}{
			"name": "Anything",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeleteProduct(t *testing.T) {
	t.Parallel()

	products := mocks.NewProductStore()
	p := seedProduct(t, products, "Dome Camera", domain.CategorySecurityCameras, time.Hour, nil)
	router := newProductRouter(products)

	w, _ := doJSON(t, router, http.MethodDelete, "/products/"+p.ID.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, router, http.MethodDelete, "/products/"+p.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
