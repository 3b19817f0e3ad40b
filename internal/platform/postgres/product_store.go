package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/gulftrading/gtg-api/internal/catalog"
	"github.com/gulftrading/gtg-api/internal/domain"
	"github.com/gulftrading/gtg-api/internal/store"
)

// PostgresProductStore implements the store.ProductStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProductStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProductStore creates a new PostgreSQL implementation of the
// ProductStore interface. If logger is nil, a default logger will be used.
func NewPostgresProductStore(db store.DBTX, logger *slog.Logger) *PostgresProductStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresProductStore{
		db:     db,
		logger: logger.With(slog.String("component", "product_store")),
	}
}

// Ensure PostgresProductStore implements store.ProductStore interface
var _ store.ProductStore = (*PostgresProductStore)(nil)

const productColumns = `id, name, slug, category, description, specifications, image, brand, model, warranty, in_stock, featured, tags, created_at, updated_at`

// Create implements store.ProductStore.Create
func (s *PostgresProductStore) Create(ctx context.Context, product *domain.Product) error {
	if err := product.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	specs, tags, err := marshalProductLists(product)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err = s.db.ExecContext(ctx, query,
		product.ID, product.Name, product.Slug, product.Category, product.Description,
		specs, product.Image, product.Brand, product.Model, product.Warranty,
		product.InStock, product.Featured, tags, product.CreatedAt, product.UpdatedAt)
	if err != nil {
		return MapError(err)
	}
	return nil
}

// GetByID implements store.ProductStore.GetByID
func (s *PostgresProductStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	product, err := scanProduct(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if store.IsNotFoundError(MapError(err)) {
			return nil, store.ErrProductNotFound
		}
		return nil, MapError(err)
	}
	return product, nil
}

// List implements store.ProductStore.List. The filter predicates are
// allow-listed upstream; the search term matches name, description, or brand
// as a case-insensitive substring. The total count is taken on the filtered
// set before LIMIT/OFFSET.
func (s *PostgresProductStore) List(ctx context.Context, filter catalog.ProductFilter, sort catalog.Sort, page catalog.Page) ([]*domain.Product, int, error) {
	where, args := buildProductWhere(filter)

	var total int
	countQuery := `SELECT COUNT(*) FROM products` + where
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, MapError(err)
	}

	field, desc := sort.OrderBy()
	direction := "ASC"
	if desc {
		direction = "DESC"
	}
	// id tie-break keeps page boundaries stable between requests.
	orderBy := fmt.Sprintf(" ORDER BY %s %s, id ASC", field, direction)

	query := `SELECT ` + productColumns + ` FROM products` + where + orderBy +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, page.Size, page.Offset())

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	products := make([]*domain.Product, 0, page.Size)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, 0, MapError(err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, MapError(err)
	}
	return products, total, nil
}

// ListFeatured implements store.ProductStore.ListFeatured
func (s *PostgresProductStore) ListFeatured(ctx context.Context, limit int) ([]*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE featured = TRUE
		ORDER BY created_at DESC, id ASC
		LIMIT $1`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	products := make([]*domain.Product, 0, limit)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, MapError(err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return products, nil
}

// Categories implements store.ProductStore.Categories
func (s *PostgresProductStore) Categories(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT category FROM products ORDER BY category`)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, MapError(err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return categories, nil
}

// Update implements store.ProductStore.Update
func (s *PostgresProductStore) Update(ctx context.Context, product *domain.Product) error {
	if err := product.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	specs, tags, err := marshalProductLists(product)
	if err != nil {
		return err
	}

	query := `
		UPDATE products
		SET name = $2, slug = $3, category = $4, description = $5, specifications = $6,
		    image = $7, brand = $8, model = $9, warranty = $10, in_stock = $11,
		    featured = $12, tags = $13, updated_at = NOW()
		WHERE id = $1`
	result, err := s.db.ExecContext(ctx, query,
		product.ID, product.Name, product.Slug, product.Category, product.Description,
		specs, product.Image, product.Brand, product.Model, product.Warranty,
		product.InStock, product.Featured, tags)
	if err != nil {
		return MapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rows == 0 {
		return store.ErrProductNotFound
	}
	return nil
}

// Delete implements store.ProductStore.Delete
func (s *PostgresProductStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return MapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rows == 0 {
		return store.ErrProductNotFound
	}
	return nil
}

// buildProductWhere renders the WHERE clause and its positional args for the
// given filter. An empty filter yields an empty clause.
func buildProductWhere(filter catalog.ProductFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Featured != nil {
		args = append(args, *filter.Featured)
		conditions = append(conditions, fmt.Sprintf("featured = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d OR brand ILIKE $%d)", n, n, n))
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func marshalProductLists(product *domain.Product) ([]byte, []byte, error) {
	specs, err := json.Marshal(product.Specifications)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal specifications: %w", err)
	}
	tags, err := json.Marshal(product.Tags)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal tags: %w", err)
	}
	return specs, tags, nil
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var product domain.Product
	var specs, tags []byte
	err := row.Scan(
		&product.ID, &product.Name, &product.Slug, &product.Category, &product.Description,
		&specs, &product.Image, &product.Brand, &product.Model, &product.Warranty,
		&product.InStock, &product.Featured, &tags, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(specs, &product.Specifications); err != nil {
		return nil, fmt.Errorf("failed to unmarshal specifications: %w", err)
	}
	if err := json.Unmarshal(tags, &product.Tags); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
	}
	return &product, nil
}
