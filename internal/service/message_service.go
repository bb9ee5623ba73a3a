package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/alumni-connect-api/internal/authz"
	"github.com/noah-isme/alumni-connect-api/internal/models"
	"github.com/noah-isme/alumni-connect-api/internal/repository"
	appErrors "github.com/noah-isme/alumni-connect-api/pkg/errors"
)

type messageRepository interface {
	Create(ctx context.Context, m *models.Message) error
	ListMailbox(ctx context.Context, userID int64) ([]models.MessageRow, error)
	FindByID(ctx context.Context, id int64) (*models.Message, error)
	MarkRead(ctx context.Context, id int64) error
}

type messageUserLookup interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

// MessageService handles direct messaging between members.
type MessageService struct {
	repo      messageRepository
	users     messageUserLookup
	validator *validator.Validate
	logger    *zap.Logger
}

// NewMessageService constructs a MessageService instance.
func NewMessageService(repo messageRepository, users messageUserLookup, validate *validator.Validate, logger *zap.Logger) *MessageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &MessageService{repo: repo, users: users, validator: validate, logger: logger}
}

// Send delivers a message to another member.
func (s *MessageService) Send(ctx context.Context, actor *authz.Identity, req models.SendMessageRequest) (*models.Message, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid message payload")
	}
	if req.ReceiverID == actor.ID {
		return nil, appErrors.Clone(appErrors.ErrValidation, "you cannot message yourself")
	}

	if _, err := s.users.FindByID(ctx, req.ReceiverID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "recipient not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load recipient")
	}

	msg := &models.Message{
		SenderID:   actor.ID,
		ReceiverID: req.ReceiverID,
		Subject:    req.Subject,
		Content:    req.Content,
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "recipient not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to send message")
	}

	return msg, nil
}

// Mailbox returns every message the caller sent or received, newest
// first, flagging which side of the exchange they were on.
func (s *MessageService) Mailbox(ctx context.Context, actor *authz.Identity) ([]models.MessageRow, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	rows, err := s.repo.ListMailbox(ctx, actor.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load mailbox")
	}
	for i := range rows {
		rows[i].IsFromMe = rows[i].SenderID == actor.ID
	}
	return rows, nil
}

// MarkRead flags a message as read. Only its recipient may do so.
func (s *MessageService) MarkRead(ctx context.Context, actor *authz.Identity, messageID int64) error {
	if actor == nil {
		return appErrors.ErrUnauthorized
	}
	msg, err := s.repo.FindByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "message not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load message")
	}
	if msg.ReceiverID != actor.ID {
		return appErrors.Clone(appErrors.ErrForbidden, "only the recipient can mark a message as read")
	}
	if err := s.repo.MarkRead(ctx, messageID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to mark message read")
	}
	return nil
}
