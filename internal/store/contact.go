package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/gulftrading/gtg-api/internal/catalog"
	"github.com/gulftrading/gtg-api/internal/domain"
)

// ContactStore defines the interface for contact-message persistence.
type ContactStore interface {
	// Create saves a new contact message in the "new" state.
	Create(ctx context.Context, msg *domain.ContactMessage) error

	// GetByID retrieves a contact message. If the message is still "new" it
	// transitions to "read" as a side effect of the view; the returned
	// message reflects that transition.
	// Returns ErrContactNotFound if the message does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ContactMessage, error)

	// List returns a filtered page of contact messages, newest first,
	// along with the total count of the filtered set.
	List(ctx context.Context, filter catalog.ContactFilter, page catalog.Page) ([]*domain.ContactMessage, int, error)

	// UpdateStatus sets the message's status and notes. A transition to
	// "replied" stamps the replier identity and timestamp.
	// Returns ErrContactNotFound if the message does not exist.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ContactStatus, notes string, updatedBy uuid.UUID) (*domain.ContactMessage, error)

	// Delete removes a contact message.
	// Returns ErrContactNotFound if the message does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
