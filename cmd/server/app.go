package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/gulftrading/gtg-api/internal/config"
	"github.com/gulftrading/gtg-api/internal/platform/postgres"
	"github.com/gulftrading/gtg-api/internal/service/auth"
	"github.com/gulftrading/gtg-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores (interfaces, so tests and future backends can swap them)
	userStore    store.UserStore
	productStore store.ProductStore
	serviceStore store.ServiceStore
	orderStore   store.OrderStore
	contactStore store.ContactStore

	// Services
	jwtService  auth.JWTService
	authService *auth.Service
}

// newApplication creates an application instance with all dependencies
// initialized. Core dependencies such as configuration, logger and the
// database connection must already be established.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_hours", cfg.Auth.TokenLifetimeHours)

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.productStore = postgres.NewPostgresProductStore(db, logger)
	app.serviceStore = postgres.NewPostgresServiceStore(db, logger)
	app.orderStore = postgres.NewPostgresOrderStore(db, logger)
	app.contactStore = postgres.NewPostgresContactStore(db, logger)

	app.authService = auth.NewService(
		app.userStore,
		app.jwtService,
		auth.NewBcryptHasher(),
		logger,
	)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the HTTP server and blocks until shutdown completes.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		closeDatabase(app.db, app.logger)
	}
	app.logger.Info("Application shutdown complete")
}
