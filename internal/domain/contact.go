package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Contact message validation errors
var (
	ErrEmptyContactID      = errors.New("contact message ID cannot be empty")
	ErrEmptyContactName    = errors.New("contact name cannot be empty")
	ErrEmptyContactEmail   = errors.New("contact email cannot be empty")
	ErrEmptyContactMessage = errors.New("message cannot be empty")
	ErrMessageTooLong      = errors.New("message cannot exceed 2000 characters")
)

// ContactStatus is the closed set of contact-message states.
type ContactStatus string

const (
	ContactStatusNew     ContactStatus = "new"
	ContactStatusRead    ContactStatus = "read"
	ContactStatusReplied ContactStatus = "replied"
)

// Valid reports whether the status is a member of the closed set.
func (s ContactStatus) Valid() bool {
	switch s {
	case ContactStatusNew, ContactStatusRead, ContactStatusReplied:
		return true
	}
	return false
}

// ContactMessage represents a message submitted through the public contact
// form. A message transitions new -> read automatically on first admin view;
// the replied transition is explicit and stamps the replier and time.
type ContactMessage struct {
	ID         uuid.UUID     `json:"id"`
	Name       string        `json:"name"`
	Email      string        `json:"email"`
	Phone      string        `json:"phone,omitempty"`
	Company    string        `json:"company,omitempty"`
	Message    string        `json:"message"`
	Status     ContactStatus `json:"status"`
	Notes      string        `json:"notes,omitempty"`
	AssignedTo *uuid.UUID    `json:"assigned_to,omitempty"`
	RepliedBy  *uuid.UUID    `json:"replied_by,omitempty"`
	RepliedAt  *time.Time    `json:"replied_at,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// NewContactMessage creates a new ContactMessage in the "new" state.
// Returns an error if validation fails.
func NewContactMessage(name, email, phone, company, message string) (*ContactMessage, error) {
	now := time.Now().UTC()
	m := &ContactMessage{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Phone:     strings.TrimSpace(phone),
		Company:   strings.TrimSpace(company),
		Message:   message,
		Status:    ContactStatusNew,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return m, nil
}

// Validate checks if the ContactMessage has valid data.
func (m *ContactMessage) Validate() error {
	if m.ID == uuid.Nil {
		return ErrEmptyContactID
	}
	if m.Name == "" {
		return ErrEmptyContactName
	}
	if m.Email == "" {
		return ErrEmptyContactEmail
	}
	if !validateEmailFormat(m.Email) {
		return ErrInvalidEmail
	}
	if strings.TrimSpace(m.Message) == "" {
		return ErrEmptyContactMessage
	}
	if len(m.Message) > 2000 {
		return ErrMessageTooLong
	}
	if !m.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

// MarkReplied records the explicit replied transition, stamping the
// replier identity and timestamp.
func (m *ContactMessage) MarkReplied(by uuid.UUID, at time.Time) {
	m.Status = ContactStatusReplied
	m.RepliedBy = &by
	m.RepliedAt = &at
	m.UpdatedAt = at
}
