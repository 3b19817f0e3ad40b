package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gulftrading/gtg-api/internal/api/shared"
	"github.com/gulftrading/gtg-api/internal/config"
	"github.com/gulftrading/gtg-api/internal/domain"
	"github.com/gulftrading/gtg-api/internal/mocks"
	"github.com/gulftrading/gtg-api/internal/service/auth"
)

const testSecret = "test-secret-that-is-long-enough-for-testing"

func newTestApplication(t *testing.T) (*application, *mocks.UserStore, auth.JWTService) {
	t.Helper()
	users := mocks.NewUserStore()
	tokens := auth.NewTestJWTService(testSecret, time.Hour, nil)
	svc := auth.NewService(users, tokens, auth.NewBcryptHasher(), nil)
	app := &application{
		config:       &config.Config{},
		logger:       slog.Default(),
		userStore:    users,
		productStore: mocks.NewProductStore(),
		serviceStore: mocks.NewServiceStore(),
		orderStore:   mocks.NewOrderStore(),
		contactStore: mocks.NewContactStore(),
		jwtService:   tokens,
		authService:  svc,
	}
	return app, users, tokens
}

func seedRouterUser(t *testing.T, users *mocks.UserStore, role domain.Role) *domain.User {
	t.Helper()
	user, err := domain.NewUser("Router User", string(role)+"@example.com", "longenoughpw")
	require.NoError(t, err)
	user.HashedPassword = "not-a-real-hash"
	user.Password = ""
	user.Role = role
	users.Seed(user)
	return user
}

func tokenFor(t *testing.T, tokens auth.JWTService, user *domain.User) string {
	t.Helper()
	token, err := tokens.GenerateToken(context.Background(), user.ID)
	require.NoError(t, err)
	return token
}

func doRouter(router http.Handler, method, path, token string) (*httptest.ResponseRecorder, shared.Envelope) {
	r := httptest.NewRequest(method, path, nil)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	var env shared.Envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestRouterPublicRoutes(t *testing.T) {
	t.Parallel()
	app, _, _ := newTestApplication(t)
	router := app.setupRouter()

	for _, path := range []string{
		"/api/products",
		"/api/products/featured/list",
		"/api/products/categories/list",
		"/api/services",
		"/api/health",
	} {
		w, _ := doRouter(router, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, w.Code, "GET %s", path)
	}
}

// Admin operations live on the same collection paths as the public reads.
// Each of these must be routed (and rejected for lack of credentials), not
// fall through to the 404 handler.
func TestRouterProtectedRoutesAreServed(t *testing.T) {
	t.Parallel()
	app, _, _ := newTestApplication(t)
	router := app.setupRouter()

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/products"},
		{http.MethodPut, "/api/products/some-id"},
		{http.MethodDelete, "/api/products/some-id"},
		{http.MethodPost, "/api/services"},
		{http.MethodPut, "/api/services/some-id"},
		{http.MethodDelete, "/api/services/some-id"},
		{http.MethodGet, "/api/orders"},
		{http.MethodGet, "/api/orders/stats/overview"},
		{http.MethodGet, "/api/orders/some-id"},
		{http.MethodPut, "/api/orders/some-id/status"},
		{http.MethodPut, "/api/orders/some-id/assign"},
		{http.MethodDelete, "/api/orders/some-id"},
		{http.MethodGet, "/api/contact"},
		{http.MethodGet, "/api/contact/some-id"},
		{http.MethodPut, "/api/contact/some-id/status"},
		{http.MethodDelete, "/api/contact/some-id"},
		{http.MethodGet, "/api/auth/me"},
		{http.MethodPut, "/api/auth/change-password"},
		{http.MethodPut, "/api/auth/profile"},
	}

	for _, rt := range routes {
		w, env := doRouter(router, rt.method, rt.path, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", rt.method, rt.path)
		assert.Equal(t, "Authorization header required", env.Message, "%s %s", rt.method, rt.path)
	}
}

func TestRouterAdminAuthorization(t *testing.T) {
	t.Parallel()
	app, users, tokens := newTestApplication(t)
	router := app.setupRouter()

	admin := seedRouterUser(t, users, domain.RoleAdmin)
	staff := seedRouterUser(t, users, domain.RoleStaff)

	t.Run("staff is rejected from admin routes", func(t *testing.T) {
		t.Parallel()
		w, env := doRouter(router, http.MethodGet, "/api/orders", tokenFor(t, tokens, staff))
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "Admin access required", env.Message)
	})

	t.Run("staff can use the authenticated profile routes", func(t *testing.T) {
		t.Parallel()
		w, _ := doRouter(router, http.MethodGet, "/api/auth/me", tokenFor(t, tokens, staff))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("admin reaches the order list", func(t *testing.T) {
		t.Parallel()
		w, env := doRouter(router, http.MethodGet, "/api/orders", tokenFor(t, tokens, admin))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "success", env.Status)
	})
}

func TestRouterFallbacks(t *testing.T) {
	t.Parallel()
	app, _, _ := newTestApplication(t)
	router := app.setupRouter()

	t.Run("unknown route gets the error envelope", func(t *testing.T) {
		t.Parallel()
		w, env := doRouter(router, http.MethodGet, "/api/nope", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "error", env.Status)
		assert.Equal(t, "Route not found", env.Message)
	})

	t.Run("wrong method gets the error envelope", func(t *testing.T) {
		t.Parallel()
		w, env := doRouter(router, http.MethodDelete, "/api/health", "")
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
		assert.Equal(t, "Method not allowed", env.Message)
	})
}
