package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/alumni-connect-api/internal/models"
)

type mockMessageRepo struct {
	messages map[int64]*models.Message
	read     []int64
}

func (m *mockMessageRepo) Create(ctx context.Context, msg *models.Message) error {
	msg.ID = int64(len(m.messages) + 1)
	if m.messages == nil {
		m.messages = map[int64]*models.Message{}
	}
	copied := *msg
	m.messages[msg.ID] = &copied
	return nil
}

func (m *mockMessageRepo) ListMailbox(ctx context.Context, userID int64) ([]models.MessageRow, error) {
	var rows []models.MessageRow
	for _, msg := range m.messages {
		if msg.SenderID == userID || msg.ReceiverID == userID {
			rows = append(rows, models.MessageRow{
				ID:         msg.ID,
				SenderID:   msg.SenderID,
				ReceiverID: msg.ReceiverID,
				Subject:    msg.Subject,
				Content:    msg.Content,
				IsRead:     msg.IsRead,
			})
		}
	}
	return rows, nil
}

func (m *mockMessageRepo) FindByID(ctx context.Context, id int64) (*models.Message, error) {
	if msg, ok := m.messages[id]; ok {
		copied := *msg
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockMessageRepo) MarkRead(ctx context.Context, id int64) error {
	if _, ok := m.messages[id]; !ok {
		return sql.ErrNoRows
	}
	m.messages[id].IsRead = true
	m.read = append(m.read, id)
	return nil
}

func TestMessageSendToSelfRejected(t *testing.T) {
	svc := NewMessageService(&mockMessageRepo{}, &mockUserLookup{users: testUsers()}, nil, nil)

	_, err := svc.Send(context.Background(), student(4), models.SendMessageRequest{
		ReceiverID: 4, Content: "hi",
	})
	assert.Equal(t, 400, statusOf(t, err))
}

func TestMessageSendUnknownRecipient(t *testing.T) {
	svc := NewMessageService(&mockMessageRepo{}, &mockUserLookup{}, nil, nil)

	_, err := svc.Send(context.Background(), student(4), models.SendMessageRequest{
		ReceiverID: 99, Content: "hi",
	})
	assert.Equal(t, 404, statusOf(t, err))
}

func TestMessageMarkReadRecipientOnly(t *testing.T) {
	repo := &mockMessageRepo{messages: map[int64]*models.Message{
		8: {ID: 8, SenderID: 2, ReceiverID: 4},
	}}
	svc := NewMessageService(repo, &mockUserLookup{}, nil, nil)

	err := svc.MarkRead(context.Background(), student(2), 8)
	assert.Equal(t, 403, statusOf(t, err))

	require.NoError(t, svc.MarkRead(context.Background(), student(4), 8))
	assert.True(t, repo.messages[8].IsRead)
}

func TestMessageMarkReadMissing(t *testing.T) {
	svc := NewMessageService(&mockMessageRepo{}, &mockUserLookup{}, nil, nil)

	err := svc.MarkRead(context.Background(), student(4), 123)
	assert.Equal(t, 404, statusOf(t, err))
}

func TestMessageMailboxFlagsDirection(t *testing.T) {
	repo := &mockMessageRepo{messages: map[int64]*models.Message{
		1: {ID: 1, SenderID: 4, ReceiverID: 2},
		2: {ID: 2, SenderID: 2, ReceiverID: 4},
	}}
	svc := NewMessageService(repo, &mockUserLookup{}, nil, nil)

	rows, err := svc.Mailbox(context.Background(), student(4))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, row.SenderID == 4, row.IsFromMe)
	}
}
