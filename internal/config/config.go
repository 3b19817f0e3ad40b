// Package config defines the application configuration and its loading.
package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Admin    AdminConfig    `mapstructure:"admin"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// Env selects environment-dependent behavior such as whether internal
	// error detail is exposed in responses.
	Env string `mapstructure:"env" validate:"required,oneof=development production"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	// JWTSecret signs identity tokens. It must be at least 32 characters
	// and is read-only after startup.
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`

	// TokenLifetimeHours is the identity token lifetime. The default of
	// 720 hours (30 days) matches the long-lived admin sessions the site uses.
	TokenLifetimeHours int `mapstructure:"token_lifetime_hours" validate:"required,gt=0"`
}

// AdminConfig holds the bootstrap credentials consumed by the seed command.
// The password is never defaulted; seeding fails without an explicit one.
type AdminConfig struct {
	Email    string `mapstructure:"email"    validate:"omitempty,email"`
	Password string `mapstructure:"password" validate:"omitempty,min=8"`
}

// IsProduction reports whether the server runs in production mode.
func (c ServerConfig) IsProduction() bool {
	return c.Env == "production"
}
