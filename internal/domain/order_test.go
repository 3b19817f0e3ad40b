package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCustomer() Customer {
	return Customer{
		Name:  "Fatima Al-Sayed",
		Email: "fatima@example.com",
		Phone: "+973-1234-5678",
	}
}

func TestNewOrder(t *testing.T) {
	t.Parallel()

	t.Run("valid order", func(t *testing.T) {
		t.Parallel()
		order, err := NewOrder(validCustomer(), []OrderProduct{
			{ProductID: uuid.New(), Quantity: 2},
		}, nil, "deliver to reception")
		require.NoError(t, err)

		assert.Equal(t, OrderStatusPending, order.Status)
		assert.Equal(t, PriorityMedium, order.Priority)
		assert.Empty(t, order.OrderNumber, "order number is assigned by the store")
		assert.Empty(t, order.StatusHistory)
	})

	t.Run("services only is valid", func(t *testing.T) {
		t.Parallel()
		_, err := NewOrder(validCustomer(), nil, []OrderService{
			{ServiceID: uuid.New(), Details: "site survey"},
		}, "")
		assert.NoError(t, err)
	})

	tests := []struct {
		name     string
		mutate   func(*Customer, *[]OrderProduct)
		wantErr  error
	}{
		{
			name:    "missing customer name",
			mutate:  func(c *Customer, _ *[]OrderProduct) { c.Name = " " },
			wantErr: ErrEmptyCustomerName,
		},
		{
			name:    "missing customer email",
			mutate:  func(c *Customer, _ *[]OrderProduct) { c.Email = "" },
			wantErr: ErrEmptyCustomerEmail,
		},
		{
			name:    "malformed customer email",
			mutate:  func(c *Customer, _ *[]OrderProduct) { c.Email = "nope" },
			wantErr: ErrInvalidEmail,
		},
		{
			name:    "missing customer phone",
			mutate:  func(c *Customer, _ *[]OrderProduct) { c.Phone = "" },
			wantErr: ErrEmptyCustomerPhone,
		},
		{
			name:    "no line items",
			mutate:  func(_ *Customer, ps *[]OrderProduct) { *ps = nil },
			wantErr: ErrEmptyOrderItems,
		},
		{
			name:    "zero quantity",
			mutate:  func(_ *Customer, ps *[]OrderProduct) { (*ps)[0].Quantity = 0 },
			wantErr: ErrInvalidQuantity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			customer := validCustomer()
			products := []OrderProduct{{ProductID: uuid.New(), Quantity: 1}}
			tt.mutate(&customer, &products)

			_, err := NewOrder(customer, products, nil, "")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFormatOrderNumber(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, time.March, 7, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "GTG-202503-00001", FormatOrderNumber(at, 1))
	assert.Equal(t, "GTG-202503-00042", FormatOrderNumber(at, 42))
	assert.Equal(t, "GTG-202512-12345", FormatOrderNumber(time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), 12345))
}

func TestOrderStatusValid(t *testing.T) {
	t.Parallel()

	for _, s := range []OrderStatus{
		OrderStatusPending, OrderStatusContacted, OrderStatusProcessing,
		OrderStatusCompleted, OrderStatusCancelled,
	} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, OrderStatus("shipped").Valid())
}

func TestContactMessageMarkReplied(t *testing.T) {
	t.Parallel()

	msg, err := NewContactMessage("Omar", "omar@example.com", "", "", "Do you stock 42U racks?")
	require.NoError(t, err)
	assert.Equal(t, ContactStatusNew, msg.Status)

	admin := uuid.New()
	at := time.Now().UTC()
	msg.MarkReplied(admin, at)

	assert.Equal(t, ContactStatusReplied, msg.Status)
	require.NotNil(t, msg.RepliedBy)
	assert.Equal(t, admin, *msg.RepliedBy)
	require.NotNil(t, msg.RepliedAt)
	assert.Equal(t, at, *msg.RepliedAt)
}
