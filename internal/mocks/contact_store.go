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

// ContactStore is an in-memory implementation of store.ContactStore.
type ContactStore struct {
	mu       sync.Mutex
	messages map[uuid.UUID]*domain.ContactMessage

	CreateErr error
	GetErr    error
	ListErr   error
	UpdateErr error
	DeleteErr error
}

var _ store.ContactStore = (*ContactStore)(nil)

// NewContactStore creates an empty in-memory contact store.
func NewContactStore() *ContactStore {
	return &ContactStore{messages: make(map[uuid.UUID]*domain.ContactMessage)}
}

// Create implements store.ContactStore.Create.
func (s *ContactStore) Create(ctx context.Context, msg *domain.ContactMessage) error {
	if s.CreateErr != nil {
		return s.CreateErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *msg
	s.messages[msg.ID] = &cp
	return nil
}

// GetByID implements store.ContactStore.GetByID, including the automatic
// new -> read transition on view.
func (s *ContactStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.ContactMessage, error) {
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.messages[id]
	if !ok {
		return nil, store.ErrContactNotFound
	}
	if m.Status == domain.ContactStatusNew {
		m.Status = domain.ContactStatusRead
		m.UpdatedAt = time.Now().UTC()
	}
	cp := *m
	return &cp, nil
}

// List implements store.ContactStore.List.
func (s *ContactStore) List(ctx context.Context, filter catalog.ContactFilter, page catalog.Page) ([]*domain.ContactMessage, int, error) {
	if s.ListErr != nil {
		return nil, 0, s.ListErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]*domain.ContactMessage, 0, len(s.messages))
	for _, m := range s.messages {
		if filter.Status != "" && string(m.Status) != filter.Status {
			continue
		}
		cp := *m
		matched = append(matched, &cp)
	}
	total := len(matched)

	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
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

// UpdateStatus implements store.ContactStore.UpdateStatus.
func (s *ContactStore) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ContactStatus, notes string, updatedBy uuid.UUID) (*domain.ContactMessage, error) {
	if s.UpdateErr != nil {
		return nil, s.UpdateErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.messages[id]
	if !ok {
		return nil, store.ErrContactNotFound
	}
	now := time.Now().UTC()
	if status == domain.ContactStatusReplied {
		m.MarkReplied(updatedBy, now)
	} else {
		m.Status = status
		m.UpdatedAt = now
	}
	if notes != "" {
		m.Notes = notes
	}
	cp := *m
	return &cp, nil
}

// Delete implements store.ContactStore.Delete.
func (s *ContactStore) Delete(ctx context.Context, id uuid.UUID) error {
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.messages[id]; !ok {
		return store.ErrContactNotFound
	}
	delete(s.messages, id)
	return nil
}

// Seed inserts a message directly.
func (s *ContactStore) Seed(msg *domain.ContactMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *msg
	s.messages[msg.ID] = &cp
}
