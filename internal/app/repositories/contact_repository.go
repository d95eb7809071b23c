package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mailam-cse/achievers-portal/internal/app/models"
)

// ContactRepository handles database operations for contact messages
type ContactRepository struct {
	db *pgxpool.Pool
}

// NewContactRepository creates a new contact message repository
func NewContactRepository(db *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{db: db}
}

// Create stores an inbound contact message
func (r *ContactRepository) Create(ctx context.Context, m *models.ContactMessage) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO contact_messages (name, email, subject, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, is_read, created_at`,
		m.Name, m.Email, m.Subject, m.Message,
	).Scan(&m.ID, &m.IsRead, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating contact message: %w", err)
	}
	return nil
}

// List retrieves all contact messages, newest first
func (r *ContactRepository) List(ctx context.Context) ([]*models.ContactMessage, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, email, subject, message, is_read, created_at
		FROM contact_messages
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*models.ContactMessage
	for rows.Next() {
		m := &models.ContactMessage{}
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.IsRead, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return messages, nil
}

// SetRead updates the read flag on every matched message in one statement
// and returns the matched count. Content fields never change.
func (r *ContactRepository) SetRead(ctx context.Context, ids []int64, read bool) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	cmdTag, err := r.db.Exec(ctx, `UPDATE contact_messages SET is_read = $1 WHERE id = ANY($2)`, read, ids)
	if err != nil {
		return 0, fmt.Errorf("error updating read flag: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}

// CountUnread counts messages not yet read
func (r *ContactRepository) CountUnread(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM contact_messages WHERE is_read = false`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting unread messages: %w", err)
	}
	return count, nil
}
