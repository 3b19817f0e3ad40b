package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gulftrading/gtg-api/internal/domain"
	"github.com/gulftrading/gtg-api/internal/store"
)

// ServiceStore is an in-memory implementation of store.ServiceStore.
type ServiceStore struct {
	mu       sync.Mutex
	services map[uuid.UUID]*domain.Service

	CreateErr error
	GetErr    error
	ListErr   error
	UpdateErr error
	DeleteErr error
}

var _ store.ServiceStore = (*ServiceStore)(nil)

// NewServiceStore creates an empty in-memory service store.
func NewServiceStore() *ServiceStore {
	return &ServiceStore{services: make(map[uuid.UUID]*domain.Service)}
}

// Create implements store.ServiceStore.Create.
func (s *ServiceStore) Create(ctx context.Context, service *domain.Service) error {
	if s.CreateErr != nil {
		return s.CreateErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.services {
		if existing.Slug == service.Slug {
			return store.ErrSlugExists
		}
	}

	cp := *service
	s.services[service.ID] = &cp
	return nil
}

// GetByID implements store.ServiceStore.GetByID.
func (s *ServiceStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	svc, ok := s.services[id]
	if !ok {
		return nil, store.ErrServiceNotFound
	}
	cp := *svc
	return &cp, nil
}

// ListActive implements store.ServiceStore.ListActive.
func (s *ServiceStore) ListActive(ctx context.Context) ([]*domain.Service, error) {
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	active := make([]*domain.Service, 0)
	for _, svc := range s.services {
		if svc.Active {
			cp := *svc
			active = append(active, &cp)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		a, b := active[i], active[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID.String() < b.ID.String()
	})
	return active, nil
}

// Update implements store.ServiceStore.Update.
func (s *ServiceStore) Update(ctx context.Context, service *domain.Service) error {
	if s.UpdateErr != nil {
		return s.UpdateErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.services[service.ID]; !ok {
		return store.ErrServiceNotFound
	}
	for _, existing := range s.services {
		if existing.ID != service.ID && existing.Slug == service.Slug {
			return store.ErrSlugExists
		}
	}
	cp := *service
	cp.UpdatedAt = time.Now().UTC()
	s.services[service.ID] = &cp
	return nil
}

// Delete implements store.ServiceStore.Delete.
func (s *ServiceStore) Delete(ctx context.Context, id uuid.UUID) error {
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.services[id]; !ok {
		return store.ErrServiceNotFound
	}
	delete(s.services, id)
	return nil
}

// Seed inserts a service directly, bypassing duplicate checks.
func (s *ServiceStore) Seed(service *domain.Service) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *service
	s.services[service.ID] = &cp
}
