package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/gulftrading/gtg-api/internal/catalog"
	"github.com/gulftrading/gtg-api/internal/domain"
)

// OrderStats summarizes order counts by status for the admin dashboard.
type OrderStats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	Processing int `json:"processing"`
	Completed  int `json:"completed"`
	Cancelled  int `json:"cancelled"`
}

// OrderStore defines the interface for order persistence.
type OrderStore interface {
	// Create saves a new order and its line items, assigning the order
	// number from an atomic sequence so concurrent submissions can never
	// mint the same number. The assigned number is written back to the
	// order before returning.
	Create(ctx context.Context, order *domain.Order) error

	// GetByID retrieves an order with its line items and full status
	// history. Line-item names and the assignee name are resolved on read;
	// a dangling assignee reference resolves to unassigned.
	// Returns ErrOrderNotFound if the order does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)

	// List returns a filtered, sorted page of orders (without status
	// history) along with the total count of the filtered set.
	List(ctx context.Context, filter catalog.OrderFilter, sort catalog.Sort, page catalog.Page) ([]*domain.Order, int, error)

	// UpdateStatus sets the order's status and appends an entry to its
	// status history. The history is append-only.
	// Returns ErrOrderNotFound if the order does not exist.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus, note string, updatedBy uuid.UUID) (*domain.Order, error)

	// Assign sets or clears the order's assignee.
	// Returns ErrOrderNotFound if the order does not exist.
	Assign(ctx context.Context, id uuid.UUID, assigneeID uuid.UUID) (*domain.Order, error)

	// Delete removes an order and its line items.
	// Returns ErrOrderNotFound if the order does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// Stats returns order counts grouped by status.
	Stats(ctx context.Context) (*OrderStats, error)
}
