package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/gulftrading/gtg-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Company  string `json:"company"  validate:"max=200"`
	Phone    string `json:"phone"    validate:"max=50"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// UserResponse is the public view of a user. Password material never
// appears here.
type UserResponse struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	Company   string      `json:"company,omitempty"`
	Phone     string      `json:"phone,omitempty"`
	Active    bool        `json:"active"`
	LastLogin *time.Time  `json:"last_login,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

// NewUserResponse builds a UserResponse from a domain user.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Company:   u.Company,
		Phone:     u.Phone,
		Active:    u.Active,
		LastLogin: u.LastLogin,
		CreatedAt: u.CreatedAt,
	}
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// ChangePasswordRequest defines the payload for the password change endpoint.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required,min=1"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,max=72"`
}

// UpdateProfileRequest defines the payload for the profile update endpoint.
// Empty fields leave the corresponding profile value unchanged.
type UpdateProfileRequest struct {
	Name    string `json:"name"    validate:"max=100"`
	Company string `json:"company" validate:"max=200"`
	Phone   string `json:"phone"   validate:"max=50"`
}

// CreateProductRequest defines the payload for product creation.
type CreateProductRequest struct {
	Name           string   `json:"name"           validate:"required,max=200"`
	Category       string   `json:"category"       validate:"required"`
	Description    string   `json:"description"    validate:"required,max=2000"`
	Specifications []string `json:"specifications"`
	Image          string   `json:"image"`
	Brand          string   `json:"brand"          validate:"max=100"`
	Model          string   `json:"model"          validate:"max=100"`
	Warranty       string   `json:"warranty"       validate:"max=200"`
	InStock        *bool    `json:"in_stock"`
	Featured       bool     `json:"featured"`
	Tags           []string `json:"tags"`
}

// UpdateProductRequest defines the payload for product updates. Nil fields
// leave the corresponding value unchanged.
type UpdateProductRequest struct {
	Name           *string   `json:"name"           validate:"omitempty,max=200"`
	Category       *string   `json:"category"`
	Description    *string   `json:"description"    validate:"omitempty,max=2000"`
	Specifications *[]string `json:"specifications"`
	Image          *string   `json:"image"`
	Brand          *string   `json:"brand"          validate:"omitempty,max=100"`
	Model          *string   `json:"model"          validate:"omitempty,max=100"`
	Warranty       *string   `json:"warranty"       validate:"omitempty,max=200"`
	InStock        *bool     `json:"in_stock"`
	Featured       *bool     `json:"featured"`
	Tags           *[]string `json:"tags"`
}

// CreateServiceRequest defines the payload for service creation.
type CreateServiceRequest struct {
	Title           string   `json:"title"            validate:"required,max=200"`
	Category        string   `json:"category"         validate:"required"`
	Description     string   `json:"description"      validate:"required,max=2000"`
	LongDescription string   `json:"long_description" validate:"max=5000"`
	Icon            string   `json:"icon"`
	Features        []string `json:"features"`
	Benefits        []string `json:"benefits"`
	Active          *bool    `json:"active"`
	Featured        bool     `json:"featured"`
}

// UpdateServiceRequest defines the payload for service updates. Nil fields
// leave the corresponding value unchanged.
type UpdateServiceRequest struct {
	Title           *string   `json:"title"            validate:"omitempty,max=200"`
	Category        *string   `json:"category"`
	Description     *string   `json:"description"      validate:"omitempty,max=2000"`
	LongDescription *string   `json:"long_description" validate:"omitempty,max=5000"`
	Icon            *string   `json:"icon"`
	Features        *[]string `json:"features"`
	Benefits        *[]string `json:"benefits"`
	Active          *bool     `json:"active"`
	Featured        *bool     `json:"featured"`
}

// OrderProductRequest is a product line item in an order submission.
type OrderProductRequest struct {
	ProductID      uuid.UUID `json:"product_id"     validate:"required"`
	Quantity       int       `json:"quantity"       validate:"required,min=1"`
	Specifications string    `json:"specifications" validate:"max=500"`
}

// OrderServiceRequest is a service line item in an order submission.
type OrderServiceRequest struct {
	ServiceID uuid.UUID `json:"service_id" validate:"required"`
	Details   string    `json:"details"    validate:"max=500"`
}

// CreateOrderRequest defines the payload for the public order-intake
// endpoint. At least one product or service line item is required.
type CreateOrderRequest struct {
	Customer struct {
		Name    string `json:"name"    validate:"required,max=100"`
		Email   string `json:"email"   validate:"required,email"`
		Phone   string `json:"phone"   validate:"required,max=50"`
		Company string `json:"company" validate:"max=200"`
		Address string `json:"address" validate:"max=500"`
	} `json:"customer"`
	Products []OrderProductRequest `json:"products" validate:"dive"`
	Services []OrderServiceRequest `json:"services" validate:"dive"`
	Notes    string                `json:"notes"    validate:"max=1000"`
}

// UpdateOrderStatusRequest defines the payload for order status transitions.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Note   string `json:"note"   validate:"max=500"`
}

// AssignOrderRequest defines the payload for order assignment. A nil
// AssignedTo clears the assignment.
type AssignOrderRequest struct {
	AssignedTo *uuid.UUID `json:"assigned_to"`
}

// ContactRequest defines the payload for the public contact form.
type ContactRequest struct {
	Name    string `json:"name"    validate:"required,max=100"`
	Email   string `json:"email"   validate:"required,email"`
	Phone   string `json:"phone"   validate:"max=50"`
	Company string `json:"company" validate:"max=200"`
	Message string `json:"message" validate:"required,max=2000"`
}

// UpdateContactStatusRequest defines the payload for contact status updates.
type UpdateContactStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Notes  string `json:"notes"  validate:"max=1000"`
}
