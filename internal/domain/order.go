package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Order validation errors
var (
	ErrEmptyOrderID       = errors.New("order ID cannot be empty")
	ErrEmptyOrderNumber   = errors.New("order number cannot be empty")
	ErrEmptyCustomerName  = errors.New("customer name cannot be empty")
	ErrEmptyCustomerEmail = errors.New("customer email cannot be empty")
	ErrEmptyCustomerPhone = errors.New("customer phone cannot be empty")
	ErrEmptyOrderItems    = errors.New("order must contain at least one product or service")
	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
	ErrNotesTooLong       = errors.New("notes cannot exceed 1000 characters")
)

// OrderNumberPrefix is the leading segment of every generated order number.
const OrderNumberPrefix = "GTG"

// OrderStatus is the closed set of order lifecycle states.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusContacted  OrderStatus = "contacted"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Valid reports whether the status is a member of the closed set.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusContacted, OrderStatusProcessing,
		OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderPriority is the closed set of order priorities.
type OrderPriority string

const (
	PriorityLow    OrderPriority = "low"
	PriorityMedium OrderPriority = "medium"
	PriorityHigh   OrderPriority = "high"
)

// Valid reports whether the priority is a member of the closed set.
func (p OrderPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Customer holds the contact details captured with an order.
type Customer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company,omitempty"`
	Address string `json:"address,omitempty"`
}

// OrderProduct is a line item referencing a catalog product.
type OrderProduct struct {
	ProductID      uuid.UUID `json:"product_id"`
	ProductName    string    `json:"product_name,omitempty"` // resolved on read
	Quantity       int       `json:"quantity"`
	Specifications string    `json:"specifications,omitempty"`
}

// OrderService is a line item referencing a service offering.
type OrderService struct {
	ServiceID    uuid.UUID `json:"service_id"`
	ServiceTitle string    `json:"service_title,omitempty"` // resolved on read
	Details      string    `json:"details,omitempty"`
}

// StatusChange is a single append-only entry in an order's status history.
type StatusChange struct {
	Status    OrderStatus `json:"status"`
	Note      string      `json:"note,omitempty"`
	UpdatedBy *uuid.UUID  `json:"updated_by,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

// Order represents a public order-intake submission and its admin workflow
// state. AssignedTo is a non-owning reference: a deleted user resolves to
// unassigned on read rather than cascading.
type Order struct {
	ID            uuid.UUID      `json:"id"`
	OrderNumber   string         `json:"order_number"`
	Customer      Customer       `json:"customer"`
	Products      []OrderProduct `json:"products"`
	Services      []OrderService `json:"services"`
	Notes         string         `json:"notes,omitempty"`
	Status        OrderStatus    `json:"status"`
	Priority      OrderPriority  `json:"priority"`
	AssignedTo    *uuid.UUID     `json:"assigned_to,omitempty"`
	AssigneeName  string         `json:"assignee_name,omitempty"` // resolved on read
	StatusHistory []StatusChange `json:"status_history"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// NewOrder creates a new pending Order for the given customer and line items.
// The order number is assigned later by the store from an atomic sequence,
// so two concurrent submissions can never mint the same number.
func NewOrder(customer Customer, products []OrderProduct, services []OrderService, notes string) (*Order, error) {
	now := time.Now().UTC()
	o := &Order{
		ID:        uuid.New(),
		Customer:  customer,
		Products:  products,
		Services:  services,
		Notes:     notes,
		Status:    OrderStatusPending,
		Priority:  PriorityMedium,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := o.Validate(); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate checks if the Order has valid data. The order number is exempt
// here because it is assigned at persistence time.
func (o *Order) Validate() error {
	if o.ID == uuid.Nil {
		return ErrEmptyOrderID
	}
	if strings.TrimSpace(o.Customer.Name) == "" {
		return ErrEmptyCustomerName
	}
	if strings.TrimSpace(o.Customer.Email) == "" {
		return ErrEmptyCustomerEmail
	}
	if !validateEmailFormat(o.Customer.Email) {
		return ErrInvalidEmail
	}
	if strings.TrimSpace(o.Customer.Phone) == "" {
		return ErrEmptyCustomerPhone
	}
	if len(o.Products) == 0 && len(o.Services) == 0 {
		return ErrEmptyOrderItems
	}
	for _, p := range o.Products {
		if p.ProductID == uuid.Nil {
			return ErrInvalidID
		}
		if p.Quantity < 1 {
			return ErrInvalidQuantity
		}
	}
	for _, s := range o.Services {
		if s.ServiceID == uuid.Nil {
			return ErrInvalidID
		}
	}
	if len(o.Notes) > 1000 {
		return ErrNotesTooLong
	}
	if !o.Status.Valid() {
		return ErrInvalidStatus
	}
	if !o.Priority.Valid() {
		return ErrInvalidPriority
	}
	return nil
}

// FormatOrderNumber renders a human-readable order number from the creation
// time and a sequence value: PREFIX-YYYYMM-00001.
func FormatOrderNumber(at time.Time, seq int64) string {
	return fmt.Sprintf("%s-%04d%02d-%05d", OrderNumberPrefix, at.Year(), int(at.Month()), seq)
}
