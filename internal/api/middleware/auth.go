package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gulftrading/gtg-api/internal/api/shared"
	"github.com/gulftrading/gtg-api/internal/domain"
	"github.com/gulftrading/gtg-api/internal/service/auth"
)

// AuthMiddleware provides JWT authentication and role-based authorization
// for admin routes.
type AuthMiddleware struct {
	authService *auth.Service
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(authService *auth.Service) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
	}
}

// Authenticate validates the bearer token from the Authorization header,
// resolves it to an active user, and adds that user to the request context.
// A token whose account has since been deactivated is rejected even when the
// token itself is still valid.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var user *domain.User
		token, err := bearerToken(r)
		if err == nil {
			user, err = m.authService.ResolveIdentity(r.Context(), token)
		}
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrMissingToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Token expired")
			case errors.Is(err, auth.ErrInvalidToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			case errors.Is(err, auth.ErrAccountDisabled):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Account is deactivated")
			default:
				slog.Error("failed to resolve identity", "error", err)
				shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
			}
			return
		}

		next.ServeHTTP(w, r.WithContext(shared.WithUser(r.Context(), user)))
	})
}

// bearerToken extracts the token from the Authorization header. An absent
// header yields auth.ErrMissingToken, a malformed one auth.ErrInvalidToken.
func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", auth.ErrMissingToken
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", fmt.Errorf("%w: malformed authorization header", auth.ErrInvalidToken)
	}
	return parts[1], nil
}

// RequireAdmin rejects authenticated requests whose user does not hold the
// admin role. It must run after Authenticate.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := shared.UserFromContext(r.Context())
		if user == nil {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
			return
		}
		if !user.IsAdmin() {
			shared.RespondWithError(w, r, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUser extracts the authenticated user from the request context.
// Returns the user and a boolean indicating if one was found.
func GetUser(r *http.Request) (*domain.User, bool) {
	user := shared.UserFromContext(r.Context())
	return user, user != nil
}
