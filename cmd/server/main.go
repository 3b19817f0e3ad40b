// Package main implements the entry point for the GTG API server,
// which serves the Gulf Trading Group catalog, order intake, contact
// inbox, and the JWT-authenticated admin panel.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"

	"github.com/joho/godotenv"

	"github.com/gulftrading/gtg-api/internal/config"
	"github.com/gulftrading/gtg-api/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String(
		"migrate",
		"",
		"run a migration command instead of the server: up, down, status or version",
	)
	seed := flag.Bool(
		"seed",
		false,
		"seed the database with the admin user and sample catalog, then exit",
	)
	flag.Parse()

	if err := run(*migrateCmd, *seed); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

// run wires the application together and either executes a migration or
// seed command or starts the HTTP server.
func run(migrateCmd string, seed bool) error {
	// A local .env is a development convenience; absence is not an error.
	if err := godotenv.Load(); err == nil {
		fmt.Println("Loaded environment from .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"env", cfg.Server.Env,
		"log_level", cfg.Server.LogLevel)

	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}

	if migrateCmd != "" {
		defer closeDatabase(db, appLogger)
		if err := runMigrations(db, appLogger, migrateCmd); err != nil {
			return fmt.Errorf("migration %q failed: %w", migrateCmd, err)
		}
		appLogger.Info("Migration command completed", "command", migrateCmd)
		return nil
	}

	if seed {
		defer closeDatabase(db, appLogger)
		if err := runSeed(context.Background(), cfg, db, appLogger); err != nil {
			return fmt.Errorf("seeding failed: %w", err)
		}
		appLogger.Info("Database seeding completed")
		return nil
	}

	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		closeDatabase(db, appLogger)
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer app.cleanup()

	return app.Run(context.Background())
}
