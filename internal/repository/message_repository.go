package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/alumni-connect-api/internal/models"
)

// MessageRepository provides database access for direct messages.
type MessageRepository struct {
	db *sqlx.DB
}

// NewMessageRepository creates a new instance of MessageRepository.
func NewMessageRepository(db *sqlx.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create inserts a new message.
func (r *MessageRepository) Create(ctx context.Context, m *models.Message) error {
	const query = `INSERT INTO messages (sender_id, receiver_id, subject, content)
		VALUES ($1, $2, $3, $4)
		RETURNING id, is_read, created_at`
	row := r.db.QueryRowxContext(ctx, query, m.SenderID, m.ReceiverID, m.Subject, m.Content)
	if err := row.Scan(&m.ID, &m.IsRead, &m.CreatedAt); err != nil {
		if IsForeignKeyViolation(err) {
			return err
		}
		return fmt.Errorf("create message: %w", err)
	}
	return nil
}

// ListMailbox returns every message the user sent or received, newest
// first, joined with both participant names.
func (r *MessageRepository) ListMailbox(ctx context.Context, userID int64) ([]models.MessageRow, error) {
	const query = `SELECT m.id, m.sender_id, m.receiver_id, m.subject, m.content, m.is_read, m.created_at,
			s.name AS sender_name, rcv.name AS receiver_name
		FROM messages m
		JOIN users s ON m.sender_id = s.id
		JOIN users rcv ON m.receiver_id = rcv.id
		WHERE m.sender_id = $1 OR m.receiver_id = $1
		ORDER BY m.created_at DESC`
	var rows []models.MessageRow
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("list mailbox: %w", err)
	}
	return rows, nil
}

// FindByID returns a single message.
func (r *MessageRepository) FindByID(ctx context.Context, id int64) (*models.Message, error) {
	const query = `SELECT id, sender_id, receiver_id, subject, content, is_read, created_at
		FROM messages WHERE id = $1`
	var m models.Message
	if err := r.db.GetContext(ctx, &m, query, id); err != nil {
		return nil, err
	}
	return &m, nil
}

// MarkRead flags one message as read.
func (r *MessageRepository) MarkRead(ctx context.Context, id int64) error {
	const query = `UPDATE messages SET is_read = TRUE WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("mark message read: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
