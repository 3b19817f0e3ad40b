package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/gulftrading/gtg-api/internal/api"
	apimiddleware "github.com/gulftrading/gtg-api/internal/api/middleware"
	"github.com/gulftrading/gtg-api/internal/api/shared"
)

// setupRouter builds the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.authService)
	productHandler := api.NewProductHandler(app.productStore)
	serviceHandler := api.NewServiceHandler(app.serviceStore)
	orderHandler := api.NewOrderHandler(app.orderStore)
	contactHandler := api.NewContactHandler(app.contactStore)
	authMiddleware := apimiddleware.NewAuthMiddleware(app.authService)

	r.Route("/api", func(r chi.Router) {
		// Mutations live on the same collection paths as the public reads,
		// so admin protection is applied per route rather than per subtree.
		authed := r.With(authMiddleware.Authenticate)
		admin := r.With(authMiddleware.Authenticate, authMiddleware.RequireAdmin)

		// Products
		r.Get("/products", productHandler.List)
		r.Get("/products/featured/list", productHandler.Featured)
		r.Get("/products/categories/list", productHandler.Categories)
		r.Get("/products/{id}", productHandler.Get)
		admin.Post("/products", productHandler.Create)
		admin.Put("/products/{id}", productHandler.Update)
		admin.Delete("/products/{id}", productHandler.Delete)

		// Services
		r.Get("/services", serviceHandler.List)
		r.Get("/services/{id}", serviceHandler.Get)
		admin.Post("/services", serviceHandler.Create)
		admin.Put("/services/{id}", serviceHandler.Update)
		admin.Delete("/services/{id}", serviceHandler.Delete)

		// Orders: intake is public, management is admin-only
		r.Post("/orders", orderHandler.Create)
		admin.Get("/orders", orderHandler.List)
		admin.Get("/orders/stats/overview", orderHandler.Stats)
		admin.Get("/orders/{id}", orderHandler.Get)
		admin.Put("/orders/{id}/status", orderHandler.UpdateStatus)
		admin.Put("/orders/{id}/assign", orderHandler.Assign)
		admin.Delete("/orders/{id}", orderHandler.Delete)

		// Contact: submission is public, the inbox is admin-only
		r.Post("/contact", contactHandler.Create)
		admin.Get("/contact", contactHandler.List)
		admin.Get("/contact/{id}", contactHandler.Get)
		admin.Put("/contact/{id}/status", contactHandler.UpdateStatus)
		admin.Delete("/contact/{id}", contactHandler.Delete)

		// Authentication
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		authed.Get("/auth/me", authHandler.Me)
		authed.Put("/auth/change-password", authHandler.ChangePassword)
		authed.Put("/auth/profile", authHandler.UpdateProfile)

		r.Get("/health", handleHealth)
	})

	// Unknown routes and wrong methods get the same error envelope as
	// everything else instead of chi's plain-text defaults.
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		shared.RespondWithError(w, req, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		shared.RespondWithError(w, req, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{
		"status":    "success",
		"message":   "GTG API is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
