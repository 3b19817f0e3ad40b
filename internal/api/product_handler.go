package api

import (
	"net/http"

	"github.com/gulftrading/gtg-api/internal/api/shared"
	"github.com/gulftrading/gtg-api/internal/catalog"
	"github.com/gulftrading/gtg-api/internal/domain"
	"github.com/gulftrading/gtg-api/internal/store"
)

// featuredLimit caps the featured-products strip on the landing page.
const featuredLimit = 6

// ProductHandler handles product catalog API requests.
type ProductHandler struct {
	products store.ProductStore
}

// NewProductHandler creates a new ProductHandler with the given dependencies.
func NewProductHandler(products store.ProductStore) *ProductHandler {
	return &ProductHandler{
		products: products,
	}
}

// List handles GET /products. Filter, sort, and pagination come from the
// query string; unknown keys and sort values are ignored.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, sort, page := catalog.ParseProductQuery(r.URL.Query())

	products, total, err := h.products.List(r.Context(), filter, sort, page)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list products")
		return
	}

	shared.RespondWithList(w, r, products, total, page.Number, catalog.PageCount(total, page.Size))
}

// Get handles GET /products/{id}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	product, err := h.products.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, product)
}

// Featured handles GET /products/featured/list.
func (h *ProductHandler) Featured(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.ListFeatured(r.Context(), featuredLimit)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list featured products")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, products)
}

// Categories handles GET /products/categories/list. It returns the distinct
// categories present in the catalog, not the full closed set.
func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.products.Categories(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list categories")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, categories)
}

// Create handles POST /products.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	product, err := domain.NewProduct(req.Name, domain.ProductCategory(req.Category), req.Description)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid product data: "+err.Error())
		return
	}
	product.Specifications = req.Specifications
	product.Brand = req.Brand
	product.Model = req.Model
	product.Featured = req.Featured
	product.Tags = req.Tags
	if req.Image != "" {
		product.Image = req.Image
	}
	if req.Warranty != "" {
		product.Warranty = req.Warranty
	}
	if req.InStock != nil {
		product.InStock = *req.InStock
	}

	if err := h.products.Create(r.Context(), product); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithData(w, r, http.StatusCreated, product)
}

// Update handles PUT /products/{id}. Only the fields present in the
// payload change; a rename re-derives the slug.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdateProductRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	product, err := h.products.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if req.Name != nil {
		product.Rename(*req.Name)
	}
	if req.Category != nil {
		product.Category = domain.ProductCategory(*req.Category)
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Specifications != nil {
		product.Specifications = *req.Specifications
	}
	if req.Image != nil {
		product.Image = *req.Image
	}
	if req.Brand != nil {
		product.Brand = *req.Brand
	}
	if req.Model != nil {
		product.Model = *req.Model
	}
	if req.Warranty != nil {
		product.Warranty = *req.Warranty
	}
	if req.InStock != nil {
		product.InStock = *req.InStock
	}
	if req.Featured != nil {
		product.Featured = *req.Featured
	}
	if req.Tags != nil {
		product.Tags = *req.Tags
	}

	if err := product.Validate(); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid product data: "+err.Error())
		return
	}

	if err := h.products.Update(r.Context(), product); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, product)
}

// Delete handles DELETE /products/{id}.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.products.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithMessage(w, r, http.StatusOK, "Product deleted")
}
