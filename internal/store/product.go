package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/gulftrading/gtg-api/internal/catalog"
	"github.com/gulftrading/gtg-api/internal/domain"
)

// ProductStore defines the interface for product catalog persistence.
type ProductStore interface {
	// Create saves a new product.
	// Returns ErrSlugExists if the derived slug is already taken.
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by its unique ID.
	// Returns ErrProductNotFound if the product does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)

	// List returns a filtered, sorted page of products along with the total
	// count of the filtered set before pagination.
	List(ctx context.Context, filter catalog.ProductFilter, sort catalog.Sort, page catalog.Page) ([]*domain.Product, int, error)

	// ListFeatured returns up to limit featured products, newest first.
	ListFeatured(ctx context.Context, limit int) ([]*domain.Product, error)

	// Categories returns the distinct categories present in the catalog.
	Categories(ctx context.Context) ([]string, error)

	// Update modifies an existing product.
	// Returns ErrProductNotFound if the product does not exist.
	// Returns ErrSlugExists if a rename derives a slug that is already taken.
	Update(ctx context.Context, product *domain.Product) error

	// Delete removes a product by its ID.
	// Returns ErrProductNotFound if the product does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
