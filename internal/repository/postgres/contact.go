package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/Pavlo-fo95/ls-resort-backend/internal/domain"
	"github.com/Pavlo-fo95/ls-resort-backend/pkg/database"
	apperrors "github.com/Pavlo-fo95/ls-resort-backend/pkg/errors"
)

const contactColumns = `id, name, phone, email, topic, message, preferred_contact, status, is_read, created_at`

// ContactRepository implements repository.ContactRepository.
type ContactRepository struct {
	db database.DBTX
}

func NewContactRepository(db database.DBTX) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(ctx context.Context, m *domain.ContactMessage) (err error) {
	query := `
		INSERT INTO contact_messages (name, phone, email, topic, message, preferred_contact, status, is_read)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	ctx, end := database.TraceQuery(ctx, "contact_messages.Create", query)
	defer func() { end(err) }()

	err = r.db.QueryRow(ctx, query,
		m.Name, m.Phone, m.Email, m.Topic, m.Message, m.PreferredContact, m.Status, m.IsRead,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert contact message: %w", err)
	}
	return nil
}

func (r *ContactRepository) GetByID(ctx context.Context, id int64) (_ *domain.ContactMessage, err error) {
	query := `SELECT ` + contactColumns + ` FROM contact_messages WHERE id = $1`

	ctx, end := database.TraceQuery(ctx, "contact_messages.GetByID", query)
	defer func() { end(err) }()

	var m domain.ContactMessage
	if err = scanContact(r.db.QueryRow(ctx, query, id), &m); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("contact message", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("scan contact message: %w", err)
	}
	return &m, nil
}

// List returns messages newest first, narrowed by the filter.
func (r *ContactRepository) List(ctx context.Context, f domain.ContactFilter) (_ []domain.ContactMessage, err error) {
	var (
		where []string
		args  []any
	)
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.UnreadOnly {
		where = append(where, "is_read = FALSE")
	}

	query := `SELECT ` + contactColumns + ` FROM contact_messages`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	args = append(args, f.Limit)
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d`, len(args))

	ctx, end := database.TraceQuery(ctx, "contact_messages.List", query)
	defer func() { end(err) }()

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	defer rows.Close()

	out := []domain.ContactMessage{}
	for rows.Next() {
		var m domain.ContactMessage
		if err = scanContact(rows, &m); err != nil {
			return nil, fmt.Errorf("scan contact message: %w", err)
		}
		out = append(out, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contact messages: %w", err)
	}
	return out, nil
}

// Update writes the mutable fields of m.
func (r *ContactRepository) Update(ctx context.Context, m *domain.ContactMessage) (err error) {
	query := `UPDATE contact_messages SET status = $1, is_read = $2 WHERE id = $3`

	ctx, end := database.TraceQuery(ctx, "contact_messages.Update", query)
	defer func() { end(err) }()

	ct, err := r.db.Exec(ctx, query, m.Status, m.IsRead, m.ID)
	if err != nil {
		return fmt.Errorf("update contact message: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("contact message", strconv.FormatInt(m.ID, 10))
	}
	return nil
}

func (r *ContactRepository) Delete(ctx context.Context, id int64) (err error) {
	query := `DELETE FROM contact_messages WHERE id = $1`

	ctx, end := database.TraceQuery(ctx, "contact_messages.Delete", query)
	defer func() { end(err) }()

	ct, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete contact message: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("contact message", strconv.FormatInt(id, 10))
	}
	return nil
}

func scanContact(row pgx.Row, m *domain.ContactMessage) error {
	return row.Scan(&m.ID, &m.Name, &m.Phone, &m.Email, &m.Topic, &m.Message,
		&m.PreferredContact, &m.Status, &m.IsRead, &m.CreatedAt)
}
