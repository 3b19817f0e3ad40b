package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gulftrading/gtg-api/internal/catalog"
	"github.com/gulftrading/gtg-api/internal/domain"
	"github.com/gulftrading/gtg-api/internal/store"
)

// ProductStore is an in-memory implementation of store.ProductStore. List
// applies the same filter, sort, and pagination semantics as the database
// implementation so handlers can be tested against realistic result sets.
type ProductStore struct {
	mu       sync.Mutex
	products map[uuid.UUID]*domain.Product

	CreateErr error
	GetErr    error
	ListErr   error
	UpdateErr error
	DeleteErr error
}

var _ store.ProductStore = (*ProductStore)(nil)

// NewProductStore creates an empty in-memory product store.
func NewProductStore() *ProductStore {
	return &ProductStore{products: make(map[uuid.UUID]*domain.Product)}
}

// Create implements store.ProductStore.Create.
func (s *ProductStore) Create(ctx context.Context, product *domain.Product) error {
	if s.CreateErr != nil {
		return s.CreateErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.products {
		if p.Slug == product.Slug {
			return store.ErrSlugExists
		}
	}

	cp := *product
	s.products[product.ID] = &cp
	return nil
}

// GetByID implements store.ProductStore.GetByID.
func (s *ProductStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return nil, store.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

// List implements store.ProductStore.List.
func (s *ProductStore) List(ctx context.Context, filter catalog.ProductFilter, srt catalog.Sort, page catalog.Page) ([]*domain.Product, int, error) {
	if s.ListErr != nil {
		return nil, 0, s.ListErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]*domain.Product, 0, len(s.products))
	for _, p := range s.products {
		if !matchProduct(p, filter) {
			continue
		}
		cp := *p
		matched = append(matched, &cp)
	}
	total := len(matched)

	sortProducts(matched, srt)

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

// ListFeatured implements store.ProductStore.ListFeatured.
func (s *ProductStore) ListFeatured(ctx context.Context, limit int) ([]*domain.Product, error) {
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	featured := make([]*domain.Product, 0)
	for _, p := range s.products {
		if p.Featured {
			cp := *p
			featured = append(featured, &cp)
		}
	}
	sortProducts(featured, catalog.SortNewest)
	if limit > 0 && len(featured) > limit {
		featured = featured[:limit]
	}
	return featured, nil
}

// Categories implements store.ProductStore.Categories.
func (s *ProductStore) Categories(ctx context.Context) ([]string, error) {
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool)
	var categories []string
	for _, p := range s.products {
		c := string(p.Category)
		if !seen[c] {
			seen[c] = true
			categories = append(categories, c)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

// Update implements store.ProductStore.Update.
func (s *ProductStore) Update(ctx context.Context, product *domain.Product) error {
	if s.UpdateErr != nil {
		return s.UpdateErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[product.ID]; !ok {
		return store.ErrProductNotFound
	}
	for _, p := range s.products {
		if p.ID != product.ID && p.Slug == product.Slug {
			return store.ErrSlugExists
		}
	}
	cp := *product
	cp.UpdatedAt = time.Now().UTC()
	s.products[product.ID] = &cp
	return nil
}

// Delete implements store.ProductStore.Delete.
func (s *ProductStore) Delete(ctx context.Context, id uuid.UUID) error {
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return store.ErrProductNotFound
	}
	delete(s.products, id)
	return nil
}

// Seed inserts a product directly, bypassing duplicate checks.
func (s *ProductStore) Seed(product *domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *product
	s.products[product.ID] = &cp
}

func matchProduct(p *domain.Product, filter catalog.ProductFilter) bool {
	if filter.Category != "" && string(p.Category) != filter.Category {
		return false
	}
	if filter.Featured != nil && p.Featured != *filter.Featured {
		return false
	}
	if filter.Search != "" {
		term := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) &&
			!strings.Contains(strings.ToLower(p.Brand), term) {
			return false
		}
	}
	return true
}

func sortProducts(products []*domain.Product, srt catalog.Sort) {
	sort.SliceStable(products, func(i, j int) bool {
		a, b := products[i], products[j]
		switch srt {
		case catalog.SortName:
			if a.Name != b.Name {
				return a.Name < b.Name
			}
		case catalog.SortNameDesc:
			if a.Name != b.Name {
				return a.Name > b.Name
			}
		case catalog.SortOldest:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
		default:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
		}
		// ID tie-break keeps ordering deterministic for a fixed dataset.
		return a.ID.String() < b.ID.String()
	})
}
