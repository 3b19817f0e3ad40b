package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/gulftrading/gtg-api/internal/catalog"
	"github.com/gulftrading/gtg-api/internal/domain"
	"github.com/gulftrading/gtg-api/internal/store"
)

// PostgresOrderStore implements the store.OrderStore interface using a
// PostgreSQL database as the storage backend. Unlike the simpler stores it
// requires a *sql.DB rather than a DBTX: order creation and status updates
// span multiple tables and run in their own transactions.
type PostgresOrderStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresOrderStore creates a new PostgreSQL implementation of the
// OrderStore interface. If logger is nil, a default logger will be used.
func NewPostgresOrderStore(db *sql.DB, logger *slog.Logger) *PostgresOrderStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresOrderStore{
		db:     db,
		logger: logger.With(slog.String("component", "order_store")),
	}
}

// Ensure PostgresOrderStore implements store.OrderStore interface
var _ store.OrderStore = (*PostgresOrderStore)(nil)

// Create implements store.OrderStore.Create. The order number is minted from
// the order_number_seq sequence inside the same transaction as the insert,
// so concurrent submissions can never mint the same number.
func (s *PostgresOrderStore) Create(ctx context.Context, order *domain.Order) error {
	if err := order.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return MapError(err)
	}
	defer func() { _ = tx.Rollback() }()

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT nextval('order_number_seq')`).Scan(&seq); err != nil {
		return MapError(err)
	}
	order.OrderNumber = domain.FormatOrderNumber(order.CreatedAt, seq)

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, order_number, customer_name, customer_email, customer_phone,
			customer_company, customer_address, notes, status, priority, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		order.ID, order.OrderNumber, order.Customer.Name, order.Customer.Email,
		order.Customer.Phone, order.Customer.Company, order.Customer.Address,
		order.Notes, order.Status, order.Priority, order.CreatedAt, order.UpdatedAt)
	if err != nil {
		return MapError(err)
	}

	for _, p := range order.Products {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_products (order_id, product_id, quantity, specifications)
			VALUES ($1, $2, $3, $4)`,
			order.ID, p.ProductID, p.Quantity, p.Specifications)
		if err != nil {
			return MapError(err)
		}
	}
	for _, sv := range order.Services {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_services (order_id, service_id, details)
			VALUES ($1, $2, $3)`,
			order.ID, sv.ServiceID, sv.Details)
		if err != nil {
			return MapError(err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO order_status_history (order_id, status, created_at)
		VALUES ($1, $2, $3)`,
		order.ID, order.Status, order.CreatedAt)
	if err != nil {
		return MapError(err)
	}

	if err := tx.Commit(); err != nil {
		return MapError(err)
	}

	order.StatusHistory = append(order.StatusHistory, domain.StatusChange{
		Status:    order.Status,
		CreatedAt: order.CreatedAt,
	})
	return nil
}

// GetByID implements store.OrderStore.GetByID. Line-item names and the
// assignee name are resolved on read via LEFT JOINs; a reference to a user
// or catalog row that no longer exists resolves to an empty name rather
// than an error.
func (s *PostgresOrderStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	order, err := s.scanOrderRow(s.db.QueryRowContext(ctx, `
		SELECT o.id, o.order_number, o.customer_name, o.customer_email, o.customer_phone,
			o.customer_company, o.customer_address, o.notes, o.status, o.priority,
			o.assigned_to, u.name, o.created_at, o.updated_at
		FROM orders o
		LEFT JOIN users u ON u.id = o.assigned_to
		WHERE o.id = $1`, id))
	if err != nil {
		if store.IsNotFoundError(MapError(err)) {
			return nil, store.ErrOrderNotFound
		}
		return nil, MapError(err)
	}

	if err := s.loadLineItems(ctx, order); err != nil {
		return nil, err
	}
	if err := s.loadStatusHistory(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// List implements store.OrderStore.List. Listed orders carry their line
// items but not their status history.
func (s *PostgresOrderStore) List(ctx context.Context, filter catalog.OrderFilter, sort catalog.Sort, page catalog.Page) ([]*domain.Order, int, error) {
	where, args := buildOrderWhere(filter)

	var total int
	countQuery := `SELECT COUNT(*) FROM orders o` + where
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, MapError(err)
	}

	direction := "DESC"
	if sort == catalog.SortOldest {
		direction = "ASC"
	}

	query := `
		SELECT o.id, o.order_number, o.customer_name, o.customer_email, o.customer_phone,
			o.customer_company, o.customer_address, o.notes, o.status, o.priority,
			o.assigned_to, u.name, o.created_at, o.updated_at
		FROM orders o
		LEFT JOIN users u ON u.id = o.assigned_to` + where +
		fmt.Sprintf(" ORDER BY o.created_at %s, o.id ASC LIMIT $%d OFFSET $%d",
			direction, len(args)+1, len(args)+2)
	args = append(args, page.Size, page.Offset())

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	orders := make([]*domain.Order, 0, page.Size)
	for rows.Next() {
		order, err := s.scanOrderRow(rows)
		if err != nil {
			return nil, 0, MapError(err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, MapError(err)
	}

	for _, order := range orders {
		if err := s.loadLineItems(ctx, order); err != nil {
			return nil, 0, err
		}
	}
	return orders, total, nil
}

// UpdateStatus implements store.OrderStore.UpdateStatus
func (s *PostgresOrderStore) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus, note string, updatedBy uuid.UUID) (*domain.Order, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, `
		UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return nil, MapError(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return nil, MapError(err)
	}
	if rows == 0 {
		return nil, store.ErrOrderNotFound
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO order_status_history (order_id, status, note, updated_by, created_at)
		VALUES ($1, $2, $3, $4, NOW())`, id, status, note, updatedBy)
	if err != nil {
		return nil, MapError(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, MapError(err)
	}
	return s.GetByID(ctx, id)
}

// Assign implements store.OrderStore.Assign. A nil assignee UUID clears the
// assignment.
func (s *PostgresOrderStore) Assign(ctx context.Context, id uuid.UUID, assigneeID uuid.UUID) (*domain.Order, error) {
	var assignee interface{}
	if assigneeID != uuid.Nil {
		assignee = assigneeID
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE orders SET assigned_to = $2, updated_at = NOW() WHERE id = $1`, id, assignee)
	if err != nil {
		return nil, MapError(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return nil, MapError(err)
	}
	if rows == 0 {
		return nil, store.ErrOrderNotFound
	}
	return s.GetByID(ctx, id)
}

// Delete implements store.OrderStore.Delete. Line items and history rows
// cascade with the order.
func (s *PostgresOrderStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return MapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rows == 0 {
		return store.ErrOrderNotFound
	}
	return nil
}

// Stats implements store.OrderStore.Stats
func (s *PostgresOrderStore) Stats(ctx context.Context) (*store.OrderStats, error) {
	var stats store.OrderStats
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'processing'),
			COUNT(*) FILTER (WHERE status = 'completed'),
			COUNT(*) FILTER (WHERE status = 'cancelled')
		FROM orders`).Scan(&stats.Total, &stats.Pending, &stats.Processing, &stats.Completed, &stats.Cancelled)
	if err != nil {
		return nil, MapError(err)
	}
	return &stats, nil
}

func buildOrderWhere(filter catalog.OrderFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("o.status = $%d", len(args)))
	}
	if filter.Priority != "" {
		args = append(args, filter.Priority)
		conditions = append(conditions, fmt.Sprintf("o.priority = $%d", len(args)))
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func (s *PostgresOrderStore) scanOrderRow(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	var assignedTo uuid.NullUUID
	var assigneeName sql.NullString
	err := row.Scan(
		&order.ID, &order.OrderNumber, &order.Customer.Name, &order.Customer.Email,
		&order.Customer.Phone, &order.Customer.Company, &order.Customer.Address,
		&order.Notes, &order.Status, &order.Priority,
		&assignedTo, &assigneeName, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}
	// A stale assignee reference with no matching user resolves to
	// unassigned.
	if assignedTo.Valid && assigneeName.Valid {
		order.AssignedTo = &assignedTo.UUID
		order.AssigneeName = assigneeName.String
	}
	return &order, nil
}

func (s *PostgresOrderStore) loadLineItems(ctx context.Context, order *domain.Order) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT op.product_id, COALESCE(p.name, ''), op.quantity, op.specifications
		FROM order_products op
		LEFT JOIN products p ON p.id = op.product_id
		WHERE op.order_id = $1
		ORDER BY op.id`, order.ID)
	if err != nil {
		return MapError(err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var item domain.OrderProduct
		if err := rows.Scan(&item.ProductID, &item.ProductName, &item.Quantity, &item.Specifications); err != nil {
			return MapError(err)
		}
		order.Products = append(order.Products, item)
	}
	if err := rows.Err(); err != nil {
		return MapError(err)
	}

	svcRows, err := s.db.QueryContext(ctx, `
		SELECT os.service_id, COALESCE(sv.title, ''), os.details
		FROM order_services os
		LEFT JOIN services sv ON sv.id = os.service_id
		WHERE os.order_id = $1
		ORDER BY os.id`, order.ID)
	if err != nil {
		return MapError(err)
	}
	defer func() { _ = svcRows.Close() }()

	for svcRows.Next() {
		var item domain.OrderService
		if err := svcRows.Scan(&item.ServiceID, &item.ServiceTitle, &item.Details); err != nil {
			return MapError(err)
		}
		order.Services = append(order.Services, item)
	}
	return svcRows.Err()
}

func (s *PostgresOrderStore) loadStatusHistory(ctx context.Context, order *domain.Order) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT status, note, updated_by, created_at
		FROM order_status_history
		WHERE order_id = $1
		ORDER BY created_at, id`, order.ID)
	if err != nil {
		return MapError(err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var change domain.StatusChange
		var updatedBy uuid.NullUUID
		if err := rows.Scan(&change.Status, &change.Note, &updatedBy, &change.CreatedAt); err != nil {
			return MapError(err)
		}
		if updatedBy.Valid {
			change.UpdatedBy = &updatedBy.UUID
		}
		order.StatusHistory = append(order.StatusHistory, change)
	}
	return rows.Err()
}
