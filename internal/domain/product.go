package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Product validation errors
var (
	ErrEmptyProductID          = errors.New("product ID cannot be empty")
	ErrEmptyProductName        = errors.New("product name cannot be empty")
	ErrProductNameTooLong      = errors.New("product name cannot exceed 200 characters")
	ErrEmptyProductDescription = errors.New("product description cannot be empty")
	ErrDescriptionTooLong      = errors.New("description cannot exceed 2000 characters")
)

// ProductCategory is the closed set of product categories.
type ProductCategory string

const (
	CategorySecurityCameras ProductCategory = "Security Cameras"
	CategoryLaptops         ProductCategory = "Laptops"
	CategoryPCs             ProductCategory = "PCs"
	CategoryServers         ProductCategory = "Servers"
	CategorySwitches        ProductCategory = "Switches"
	CategoryRacks           ProductCategory = "Racks"
	CategoryPrinters        ProductCategory = "Printers"
	CategoryOther           ProductCategory = "Other"
)

// ProductCategories lists every valid product category.
var ProductCategories = []ProductCategory{
	CategorySecurityCameras,
	CategoryLaptops,
	CategoryPCs,
	CategoryServers,
	CategorySwitches,
	CategoryRacks,
	CategoryPrinters,
	CategoryOther,
}

// Valid reports whether the category is a member of the closed set.
func (c ProductCategory) Valid() bool {
	for _, v := range ProductCategories {
		if c == v {
			return true
		}
	}
	return false
}

// Product represents a catalog product exposed on the public site.
type Product struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Slug           string          `json:"slug"`
	Category       ProductCategory `json:"category"`
	Description    string          `json:"description"`
	Specifications []string        `json:"specifications"`
	Image          string          `json:"image"`
	Brand          string          `json:"brand,omitempty"`
	Model          string          `json:"model,omitempty"`
	Warranty       string          `json:"warranty"`
	InStock        bool            `json:"in_stock"`
	Featured       bool            `json:"featured"`
	Tags           []string        `json:"tags"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// NewProduct creates a new Product with the given fields, deriving the slug
// from the name and setting timestamps. Returns an error if validation fails.
func NewProduct(name string, category ProductCategory, description string) (*Product, error) {
	now := time.Now().UTC()
	p := &Product{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(name),
		Category:    category,
		Description: description,
		Image:       "📦",
		Warranty:    "Contact for warranty details",
		InStock:     true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	p.Slug = Slugify(p.Name)

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

// Rename changes the product's display name and re-derives its slug.
func (p *Product) Rename(name string) {
	p.Name = strings.TrimSpace(name)
	p.Slug = Slugify(p.Name)
}

// Validate checks if the Product has valid data.
func (p *Product) Validate() error {
	if p.ID == uuid.Nil {
		return ErrEmptyProductID
	}
	if p.Name == "" {
		return ErrEmptyProductName
	}
	if len(p.Name) > 200 {
		return ErrProductNameTooLong
	}
	if !p.Category.Valid() {
		return ErrInvalidCategory
	}
	if p.Description == "" {
		return ErrEmptyProductDescription
	}
	if len(p.Description) > 2000 {
		return ErrDescriptionTooLong
	}
	return nil
}
