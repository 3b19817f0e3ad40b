package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/gulftrading/gtg-api/internal/catalog"
	"github.com/gulftrading/gtg-api/internal/domain"
	"github.com/gulftrading/gtg-api/internal/store"
)

// PostgresContactStore implements the store.ContactStore interface
// using a PostgreSQL database as the storage backend.
type PostgresContactStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresContactStore creates a new PostgreSQL implementation of the
// ContactStore interface. If logger is nil, a default logger will be used.
func NewPostgresContactStore(db store.DBTX, logger *slog.Logger) *PostgresContactStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresContactStore{
		db:     db,
		logger: logger.With(slog.String("component", "contact_store")),
	}
}

// Ensure PostgresContactStore implements store.ContactStore interface
var _ store.ContactStore = (*PostgresContactStore)(nil)

const contactColumns = `id, name, email, phone, company, message, status, notes, assigned_to, replied_by, replied_at, created_at, updated_at`

// Create implements store.ContactStore.Create
func (s *PostgresContactStore) Create(ctx context.Context, msg *domain.ContactMessage) error {
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO contact_messages (id, name, email, phone, company, message, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := s.db.ExecContext(ctx, query,
		msg.ID, msg.Name, msg.Email, msg.Phone, msg.Company, msg.Message,
		msg.Status, msg.Notes, msg.CreatedAt, msg.UpdatedAt)
	if err != nil {
		return MapError(err)
	}
	return nil
}

// GetByID implements store.ContactStore.GetByID. A message still in the
// "new" state transitions to "read" before it is returned.
func (s *PostgresContactStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.ContactMessage, error) {
	_, err := s.db.ExecContext(ctx, `
		UPDATE contact_messages SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = $3`,
		id, domain.ContactStatusRead, domain.ContactStatusNew)
	if err != nil {
		return nil, MapError(err)
	}

	query := `SELECT ` + contactColumns + ` FROM contact_messages WHERE id = $1`
	msg, err := scanContactMessage(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if store.IsNotFoundError(MapError(err)) {
			return nil, store.ErrContactNotFound
		}
		return nil, MapError(err)
	}
	return msg, nil
}

// List implements store.ContactStore.List. Messages are always returned
// newest first.
func (s *PostgresContactStore) List(ctx context.Context, filter catalog.ContactFilter, page catalog.Page) ([]*domain.ContactMessage, int, error) {
	where := ""
	var args []interface{}
	if filter.Status != "" {
		where = " WHERE status = $1"
		args = append(args, filter.Status)
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contact_messages`+where, args...).Scan(&total); err != nil {
		return nil, 0, MapError(err)
	}

	query := `SELECT ` + contactColumns + ` FROM contact_messages` + where +
		fmt.Sprintf(" ORDER BY created_at DESC, id ASC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, page.Size, page.Offset())

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	messages := make([]*domain.ContactMessage, 0, page.Size)
	for rows.Next() {
		msg, err := scanContactMessage(rows)
		if err != nil {
			return nil, 0, MapError(err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, MapError(err)
	}
	return messages, total, nil
}

// UpdateStatus implements store.ContactStore.UpdateStatus. A transition to
// "replied" stamps the replier identity and timestamp.
func (s *PostgresContactStore) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ContactStatus, notes string, updatedBy uuid.UUID) (*domain.ContactMessage, error) {
	var repliedBy interface{}
	var repliedAt interface{}
	if status == domain.ContactStatusReplied {
		repliedBy = updatedBy
		repliedAt = time.Now().UTC()
	}

	query := `
		UPDATE contact_messages
		SET status = $2,
		    notes = CASE WHEN $3::text <> '' THEN $3::text ELSE notes END,
		    replied_by = COALESCE($4::uuid, replied_by),
		    replied_at = COALESCE($5::timestamptz, replied_at),
		    updated_at = NOW()
		WHERE id = $1`
	result, err := s.db.ExecContext(ctx, query, id, status, notes, repliedBy, repliedAt)
	if err != nil {
		return nil, MapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, MapError(err)
	}
	if rows == 0 {
		return nil, store.ErrContactNotFound
	}

	msg, err := scanContactMessage(s.db.QueryRowContext(ctx,
		`SELECT `+contactColumns+` FROM contact_messages WHERE id = $1`, id))
	if err != nil {
		return nil, MapError(err)
	}
	return msg, nil
}

// Delete implements store.ContactStore.Delete
func (s *PostgresContactStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM contact_messages WHERE id = $1`, id)
	if err != nil {
		return MapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rows == 0 {
		return store.ErrContactNotFound
	}
	return nil
}

func scanContactMessage(row rowScanner) (*domain.ContactMessage, error) {
	var msg domain.ContactMessage
	var assignedTo, repliedBy uuid.NullUUID
	var repliedAt sql.NullTime
	err := row.Scan(
		&msg.ID, &msg.Name, &msg.Email, &msg.Phone, &msg.Company, &msg.Message,
		&msg.Status, &msg.Notes, &assignedTo, &repliedBy, &repliedAt,
		&msg.CreatedAt, &msg.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if assignedTo.Valid {
		msg.AssignedTo = &assignedTo.UUID
	}
	if repliedBy.Valid {
		msg.RepliedBy = &repliedBy.UUID
	}
	if repliedAt.Valid {
		t := repliedAt.Time
		msg.RepliedAt = &t
	}
	return &msg, nil
}
