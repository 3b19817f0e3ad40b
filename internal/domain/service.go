package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service validation errors
var (
	ErrEmptyServiceID          = errors.New("service ID cannot be empty")
	ErrEmptyServiceTitle       = errors.New("service title cannot be empty")
	ErrEmptyServiceDescription = errors.New("service description cannot be empty")
	ErrLongDescriptionTooLong  = errors.New("long description cannot exceed 5000 characters")
)

// ServiceCategory is the closed set of service categories.
type ServiceCategory string

const (
	ServiceCategoryConsultation ServiceCategory = "IT Consultation"
	ServiceCategoryInstallation ServiceCategory = "Network Installation"
	ServiceCategorySupport      ServiceCategory = "Support"
	ServiceCategoryOther        ServiceCategory = "Other"
)

// Valid reports whether the category is a member of the closed set.
func (c ServiceCategory) Valid() bool {
	switch c {
	case ServiceCategoryConsultation, ServiceCategoryInstallation,
		ServiceCategorySupport, ServiceCategoryOther:
		return true
	}
	return false
}

// Service represents a service offering exposed on the public site.
type Service struct {
	ID              uuid.UUID       `json:"id"`
	Title           string          `json:"title"`
	Slug            string          `json:"slug"`
	Category        ServiceCategory `json:"category"`
	Description     string          `json:"description"`
	LongDescription string          `json:"long_description,omitempty"`
	Icon            string          `json:"icon"`
	Features        []string        `json:"features"`
	Benefits        []string        `json:"benefits"`
	Active          bool            `json:"active"`
	Featured        bool            `json:"featured"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// NewService creates a new Service with the given fields, deriving the slug
// from the title and setting timestamps. Returns an error if validation fails.
func NewService(title string, category ServiceCategory, description string) (*Service, error) {
	now := time.Now().UTC()
	s := &Service{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(title),
		Category:    category,
		Description: description,
		Icon:        "service-icon",
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.Slug = Slugify(s.Title)

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// Rename changes the service's title and re-derives its slug.
func (s *Service) Rename(title string) {
	s.Title = strings.TrimSpace(title)
	s.Slug = Slugify(s.Title)
}

// Validate checks if the Service has valid data.
func (s *Service) Validate() error {
	if s.ID == uuid.Nil {
		return ErrEmptyServiceID
	}
	if s.Title == "" {
		return ErrEmptyServiceTitle
	}
	if !s.Category.Valid() {
		return ErrInvalidCategory
	}
	if s.Description == "" {
		return ErrEmptyServiceDescription
	}
	if len(s.Description) > 2000 {
		return ErrDescriptionTooLong
	}
	if len(s.LongDescription) > 5000 {
		return ErrLongDescriptionTooLong
	}
	return nil
}
