package api

import (
	"net/http"

	"github.com/gulftrading/gtg-api/internal/api/shared"
	"github.com/gulftrading/gtg-api/internal/catalog"
	"github.com/gulftrading/gtg-api/internal/domain"
	"github.com/gulftrading/gtg-api/internal/store"
)

// ContactHandler handles contact-form submissions and the admin inbox.
type ContactHandler struct {
	contacts store.ContactStore
}

// NewContactHandler creates a new ContactHandler with the given dependencies.
func NewContactHandler(contacts store.ContactStore) *ContactHandler {
	return &ContactHandler{
		contacts: contacts,
	}
}

// Create handles POST /contact, the public contact-form endpoint.
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	msg, err := domain.NewContactMessage(req.Name, req.Email, req.Phone, req.Company, req.Message)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid contact data: "+err.Error())
		return
	}

	if err := h.contacts.Create(r.Context(), msg); err != nil {
		HandleAPIError(w, r, err, "Failed to submit message")
		return
	}

	shared.RespondWithData(w, r, http.StatusCreated, msg)
}

// List handles GET /contact.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, page := catalog.ParseContactQuery(r.URL.Query())

	messages, total, err := h.contacts.List(r.Context(), filter, page)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list messages")
		return
	}

	shared.RespondWithList(w, r, messages, total, page.Number, catalog.PageCount(total, page.Size))
}

// Get handles GET /contact/{id}. Viewing a new message marks it read.
func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	msg, err := h.contacts.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, msg)
}

// UpdateStatus handles PUT /contact/{id}/status. A transition to
// replied stamps the acting user and time.
func (h *ContactHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdateContactStatusRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	status := domain.ContactStatus(req.Status)
	if !status.Valid() {
		HandleAPIError(w, r, domain.ErrInvalidStatus, "")
		return
	}

	msg, err := h.contacts.UpdateStatus(r.Context(), id, status, req.Notes, user.ID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, msg)
}

// Delete handles DELETE /contact/{id}.
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.contacts.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithMessage(w, r, http.StatusOK, "Message deleted")
}
