package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/gulftrading/gtg-api/internal/domain"
)

// ServiceStore defines the interface for service-offering persistence.
type ServiceStore interface {
	// Create saves a new service.
	// Returns ErrSlugExists if the derived slug is already taken.
	Create(ctx context.Context, service *domain.Service) error

	// GetByID retrieves a service by its unique ID.
	// Returns ErrServiceNotFound if the service does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Service, error)

	// ListActive returns every active service, newest first. The public
	// catalog never paginates services.
	ListActive(ctx context.Context) ([]*domain.Service, error)

	// Update modifies an existing service.
	// Returns ErrServiceNotFound if the service does not exist.
	// Returns ErrSlugExists if a rename derives a slug that is already taken.
	Update(ctx context.Context, service *domain.Service) error

	// Delete removes a service by its ID.
	// Returns ErrServiceNotFound if the service does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
