package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gulftrading/gtg-api/internal/api/shared"
	"github.com/gulftrading/gtg-api/internal/domain"
)

// getPathUUID extracts and parses a UUID path parameter. A missing or
// malformed value yields a domain validation error.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}

// currentUser extracts the authenticated user placed in the context by the
// auth middleware. If no user is present an error response is written and
// ok is false.
func currentUser(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	user := shared.UserFromContext(r.Context())
	if user == nil {
		HandleAPIError(w, r, domain.ErrUnauthorized, "Authentication required")
		return nil, false
	}
	return user, true
}
