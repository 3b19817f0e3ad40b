package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/gulftrading/gtg-api/internal/domain"
	"github.com/gulftrading/gtg-api/internal/store"
)

// PostgresServiceStore implements the store.ServiceStore interface
// using a PostgreSQL database as the storage backend.
type PostgresServiceStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresServiceStore creates a new PostgreSQL implementation of the
// ServiceStore interface. If logger is nil, a default logger will be used.
func NewPostgresServiceStore(db store.DBTX, logger *slog.Logger) *PostgresServiceStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresServiceStore{
		db:     db,
		logger: logger.With(slog.String("component", "service_store")),
	}
}

// Ensure PostgresServiceStore implements store.ServiceStore interface
var _ store.ServiceStore = (*PostgresServiceStore)(nil)

const serviceColumns = `id, title, slug, category, description, long_description, icon, features, benefits, active, featured, created_at, updated_at`

// Create implements store.ServiceStore.Create
func (s *PostgresServiceStore) Create(ctx context.Context, service *domain.Service) error {
	if err := service.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	features, benefits, err := marshalServiceLists(service)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO services (` + serviceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err = s.db.ExecContext(ctx, query,
		service.ID, service.Title, service.Slug, service.Category, service.Description,
		service.LongDescription, service.Icon, features, benefits,
		service.Active, service.Featured, service.CreatedAt, service.UpdatedAt)
	if err != nil {
		return MapError(err)
	}
	return nil
}

// GetByID implements store.ServiceStore.GetByID
func (s *PostgresServiceStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE id = $1`
	service, err := scanService(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if store.IsNotFoundError(MapError(err)) {
			return nil, store.ErrServiceNotFound
		}
		return nil, MapError(err)
	}
	return service, nil
}

// ListActive implements store.ServiceStore.ListActive
func (s *PostgresServiceStore) ListActive(ctx context.Context) ([]*domain.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services
		WHERE active = TRUE
		ORDER BY created_at DESC, id ASC`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var services []*domain.Service
	for rows.Next() {
		service, err := scanService(rows)
		if err != nil {
			return nil, MapError(err)
		}
		services = append(services, service)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return services, nil
}

// Update implements store.ServiceStore.Update
func (s *PostgresServiceStore) Update(ctx context.Context, service *domain.Service) error {
	if err := service.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	features, benefits, err := marshalServiceLists(service)
	if err != nil {
		return err
	}

	query := `
		UPDATE services
		SET title = $2, slug = $3, category = $4, description = $5, long_description = $6,
		    icon = $7, features = $8, benefits = $9, active = $10, featured = $11,
		    updated_at = NOW()
		WHERE id = $1`
	result, err := s.db.ExecContext(ctx, query,
		service.ID, service.Title, service.Slug, service.Category, service.Description,
		service.LongDescription, service.Icon, features, benefits,
		service.Active, service.Featured)
	if err != nil {
		return MapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rows == 0 {
		return store.ErrServiceNotFound
	}
	return nil
}

// Delete implements store.ServiceStore.Delete
func (s *PostgresServiceStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return MapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rows == 0 {
		return store.ErrServiceNotFound
	}
	return nil
}

func marshalServiceLists(service *domain.Service) ([]byte, []byte, error) {
	features, err := json.Marshal(service.Features)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal features: %w", err)
	}
	benefits, err := json.Marshal(service.Benefits)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal benefits: %w", err)
	}
	return features, benefits, nil
}

func scanService(row rowScanner) (*domain.Service, error) {
	var service domain.Service
	var features, benefits []byte
	err := row.Scan(
		&service.ID, &service.Title, &service.Slug, &service.Category, &service.Description,
		&service.LongDescription, &service.Icon, &features, &benefits,
		&service.Active, &service.Featured, &service.CreatedAt, &service.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(features, &service.Features); err != nil {
		return nil, fmt.Errorf("failed to unmarshal features: %w", err)
	}
	if err := json.Unmarshal(benefits, &service.Benefits); err != nil {
		return nil, fmt.Errorf("failed to unmarshal benefits: %w", err)
	}
	return &service, nil
}
