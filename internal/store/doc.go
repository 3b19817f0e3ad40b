// Package store defines the persistence interfaces for the application's
// entities along with the sentinel errors shared by every implementation.
// Concrete implementations live in internal/platform/postgres.
package store
