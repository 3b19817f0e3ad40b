package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gulftrading/gtg-api/internal/catalog"
	"github.com/gulftrading/gtg-api/internal/domain"
	"github.com/gulftrading/gtg-api/internal/store"
)

// OrderStore is an in-memory implementation of store.OrderStore. Order
// numbers are minted from a monotonically increasing counter, mirroring the
// database sequence.
type OrderStore struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*domain.Order
	seq    int64

	// Assignees maps user IDs to display names for assignee resolution.
	Assignees map[uuid.UUID]string

	CreateErr error
	GetErr    error
	ListErr   error
	UpdateErr error
	DeleteErr error
}

var _ store.OrderStore = (*OrderStore)(nil)

// NewOrderStore creates an empty in-memory order store.
func NewOrderStore() *OrderStore {
	return &OrderStore{
		orders:    make(map[uuid.UUID]*domain.Order),
		Assignees: make(map[uuid.UUID]string),
	}
}

// Create implements store.OrderStore.Create.
func (s *OrderStore) Create(ctx context.Context, order *domain.Order) error {
	if s.CreateErr != nil {
		return s.CreateErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	order.OrderNumber = domain.FormatOrderNumber(order.CreatedAt, s.seq)
	order.StatusHistory = append(order.StatusHistory, domain.StatusChange{
		Status:    order.Status,
		CreatedAt: order.CreatedAt,
	})

	cp := cloneOrder(order)
	s.orders[order.ID] = cp
	return nil
}

// GetByID implements store.OrderStore.GetByID.
func (s *OrderStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, store.ErrOrderNotFound
	}
	cp := cloneOrder(o)
	s.resolveAssignee(cp)
	return cp, nil
}

// List implements store.OrderStore.List.
func (s *OrderStore) List(ctx context.Context, filter catalog.OrderFilter, srt catalog.Sort, page catalog.Page) ([]*domain.Order, int, error) {
	if s.ListErr != nil {
		return nil, 0, s.ListErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]*domain.Order, 0, len(s.orders))
	for _, o := range s.orders {
		if filter.Status != "" && string(o.Status) != filter.Status {
			continue
		}
		if filter.Priority != "" && string(o.Priority) != filter.Priority {
			continue
		}
		cp := cloneOrder(o)
		cp.StatusHistory = nil
		s.resolveAssignee(cp)
		matched = append(matched, cp)
	}
	total := len(matched)

	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		asc := srt == catalog.SortOldest
		if !a.CreatedAt.Equal(b.CreatedAt) {
			if asc {
				return a.CreatedAt.Before(b.CreatedAt)
			}
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID.String() < b.ID.String()
	})

	start := page.Offset()
	if start > total {
		start = total
	}
	end := start + page.Size
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

// UpdateStatus implements store.OrderStore.UpdateStatus.
func (s *OrderStore) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus, note string, updatedBy uuid.UUID) (*domain.Order, error) {
	if s.UpdateErr != nil {
		return nil, s.UpdateErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, store.ErrOrderNotFound
	}
	now := time.Now().UTC()
	by := updatedBy
	o.Status = status
	o.UpdatedAt = now
	o.StatusHistory = append(o.StatusHistory, domain.StatusChange{
		Status:    status,
		Note:      note,
		UpdatedBy: &by,
		CreatedAt: now,
	})
	cp := cloneOrder(o)
	s.resolveAssignee(cp)
	return cp, nil
}

// Assign implements store.OrderStore.Assign. A nil assignee UUID clears the
// assignment.
func (s *OrderStore) Assign(ctx context.Context, id uuid.UUID, assigneeID uuid.UUID) (*domain.Order, error) {
	if s.UpdateErr != nil {
		return nil, s.UpdateErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, store.ErrOrderNotFound
	}
	if assigneeID == uuid.Nil {
		o.AssignedTo = nil
	} else {
		a := assigneeID
		o.AssignedTo = &a
	}
	o.UpdatedAt = time.Now().UTC()
	cp := cloneOrder(o)
	s.resolveAssignee(cp)
	return cp, nil
}

// Delete implements store.OrderStore.Delete.
func (s *OrderStore) Delete(ctx context.Context, id uuid.UUID) error {
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[id]; !ok {
		return store.ErrOrderNotFound
	}
	delete(s.orders, id)
	return nil
}

// Stats implements store.OrderStore.Stats.
func (s *OrderStore) Stats(ctx context.Context) (*store.OrderStats, error) {
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := &store.OrderStats{Total: len(s.orders)}
	for _, o := range s.orders {
		switch o.Status {
		case domain.OrderStatusPending:
			stats.Pending++
		case domain.OrderStatusProcessing:
			stats.Processing++
		case domain.OrderStatusCompleted:
			stats.Completed++
		case domain.OrderStatusCancelled:
			stats.Cancelled++
		}
	}
	return stats, nil
}

// Seed inserts an order directly, without minting an order number.
func (s *OrderStore) Seed(order *domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[order.ID] = cloneOrder(order)
}

// resolveAssignee fills AssigneeName from the Assignees map. A reference to
// an unknown user resolves to unassigned.
func (s *OrderStore) resolveAssignee(o *domain.Order) {
	if o.AssignedTo == nil {
		return
	}
	name, ok := s.Assignees[*o.AssignedTo]
	if !ok {
		o.AssignedTo = nil
		return
	}
	o.AssigneeName = name
}

func cloneOrder(o *domain.Order) *domain.Order {
	cp := *o
	cp.Products = append([]domain.OrderProduct(nil), o.Products...)
	cp.Services = append([]domain.OrderService(nil), o.Services...)
	cp.StatusHistory = append([]domain.StatusChange(nil), o.StatusHistory...)
	if o.AssignedTo != nil {
		a := *o.AssignedTo
		cp.AssignedTo = &a
	}
	return &cp
}
