package api

import (
	"net/http"

	"github.com/gulftrading/gtg-api/internal/api/shared"
	"github.com/gulftrading/gtg-api/internal/domain"
	"github.com/gulftrading/gtg-api/internal/store"
)

// ServiceHandler handles service-offering API requests.
type ServiceHandler struct {
	services store.ServiceStore
}

// NewServiceHandler creates a new ServiceHandler with the given dependencies.
func NewServiceHandler(services store.ServiceStore) *ServiceHandler {
	return &ServiceHandler{
		services: services,
	}
}

// List handles GET /services. Only active services are exposed publicly.
func (h *ServiceHandler) List(w http.ResponseWriter, r *http.Request) {
	services, err := h.services.ListActive(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list services")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, services)
}

// Get handles GET /services/{id}.
func (h *ServiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	service, err := h.services.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, service)
}

// Create handles POST /services.
func (h *ServiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateServiceRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	service, err := domain.NewService(req.Title, domain.ServiceCategory(req.Category), req.Description)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid service data: "+err.Error())
		return
	}
	service.LongDescription = req.LongDescription
	service.Features = req.Features
	service.Benefits = req.Benefits
	service.Featured = req.Featured
	if req.Icon != "" {
		service.Icon = req.Icon
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := h.services.Create(r.Context(), service); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithData(w, r, http.StatusCreated, service)
}

// Update handles PUT /services/{id}. Only the fields present in the
// payload change; a retitle re-derives the slug.
func (h *ServiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdateServiceRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	service, err := h.services.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if req.Title != nil {
		service.Rename(*req.Title)
	}
	if req.Category != nil {
		service.Category = domain.ServiceCategory(*req.Category)
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.LongDescription != nil {
		service.LongDescription = *req.LongDescription
	}
	if req.Icon != nil {
		service.Icon = *req.Icon
	}
	if req.Features != nil {
		service.Features = *req.Features
	}
	if req.Benefits != nil {
		service.Benefits = *req.Benefits
	}
	if req.Active != nil {
		service.Active = *req.Active
	}
	if req.Featured != nil {
		service.Featured = *req.Featured
	}

	if err := service.Validate(); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid service data: "+err.Error())
		return
	}

	if err := h.services.Update(r.Context(), service); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, service)
}

// Delete handles DELETE /services/{id}.
func (h *ServiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.services.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithMessage(w, r, http.StatusOK, "Service deleted")
}
