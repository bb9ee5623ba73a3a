package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/alumni-connect-api/internal/models"
)

func TestMessageCreateReturnsGeneratedColumns(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewMessageRepository(db)

	now := time.Now()
	mock.ExpectQuery("INSERT INTO messages").
		WithArgs(int64(4), int64(2), "Hello", "Quick question about your team").
		WillReturnRows(sqlmock.NewRows([]string{"id", "is_read", "created_at"}).AddRow(11, false, now))

	subject := "Hello"
	msg := &models.Message{SenderID: 4, ReceiverID: 2, Subject: &subject, Content: "Quick question about your team"}
	require.NoError(t, repo.Create(context.Background(), msg))
	assert.Equal(t, int64(11), msg.ID)
	assert.False(t, msg.IsRead)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageListMailboxCoversBothDirections(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewMessageRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "sender_id", "receiver_id", "subject", "content", "is_read", "created_at",
		"sender_name", "receiver_name",
	}).
		AddRow(11, 4, 2, "Hello", "Quick question", false, now, "Ada", "Grace").
		AddRow(9, 2, 4, "Re: Hello", "Sure, ask away", true, now, "Grace", "Ada")
	mock.ExpectQuery(`WHERE m\.sender_id = \$1 OR m\.receiver_id = \$1`).
		WithArgs(int64(4)).
		WillReturnRows(rows)

	mailbox, err := repo.ListMailbox(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, mailbox, 2)
	assert.Equal(t, "Grace", *mailbox[0].ReceiverName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageMarkReadMissingRow(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewMessageRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE messages SET is_read = TRUE WHERE id = $1")).
		WithArgs(int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.MarkRead(context.Background(), 404)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageFindByIDMissing(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewMessageRepository(db)

	mock.ExpectQuery(`FROM messages WHERE id = \$1`).
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), 404)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
