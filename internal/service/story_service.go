package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/alumni-connect-api/internal/authz"
	"github.com/noah-isme/alumni-connect-api/internal/models"
	appErrors "github.com/noah-isme/alumni-connect-api/pkg/errors"
)

type storyRepository interface {
	List(ctx context.Context, filter models.StoryFilter) ([]models.Story, error)
	FindByID(ctx context.Context, id int64) (*models.Story, error)
	Create(ctx context.Context, s *models.Story) error
	UpdatePatch(ctx context.Context, id int64, patch models.StoryPatch) error
	Delete(ctx context.Context, id int64) error
}

// StoryService manages success stories.
type StoryService struct {
	repo      storyRepository
	validator *validator.Validate
	logger    *zap.Logger
	audit     *AuditService
}

// NewStoryService constructs a StoryService instance.
func NewStoryService(repo storyRepository, validate *validator.Validate, logger *zap.Logger, audit *AuditService) *StoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &StoryService{repo: repo, validator: validate, logger: logger, audit: audit}
}

// List returns stories matching the filter.
func (s *StoryService) List(ctx context.Context, filter models.StoryFilter) ([]models.Story, error) {
	stories, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list stories")
	}
	return stories, nil
}

// Get returns a single story.
func (s *StoryService) Get(ctx context.Context, id int64) (*models.Story, error) {
	story, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "story not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load story")
	}
	return story, nil
}

// Create publishes a story by the calling member.
func (s *StoryService) Create(ctx context.Context, actor *authz.Identity, req models.CreateStoryRequest) (*models.Story, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid story payload")
	}

	story := &models.Story{
		AuthorID: actor.ID,
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
	}
	if err := s.repo.Create(ctx, story); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create story")
	}

	s.audit.Record(models.AuditLog{
		UserID:     &actor.ID,
		Action:     models.AuditActionCreate,
		Resource:   "story",
		ResourceID: &story.ID,
	})

	return story, nil
}

// Update patches a story. The author or an admin may edit; featuring a
// story is admin-only.
func (s *StoryService) Update(ctx context.Context, actor *authz.Identity, id int64, patch models.StoryPatch) (*models.Story, error) {
	story, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.CanMutate(actor, story.AuthorID); err != nil {
		return nil, err
	}
	if !actor.IsAdmin() {
		patch.IsFeatured = nil
	}
	if patch == (models.StoryPatch{}) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no fields to update")
	}

	if err := s.repo.UpdatePatch(ctx, id, patch); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "story not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update story")
	}

	s.audit.Record(models.AuditLog{
		UserID:     &actor.ID,
		Action:     models.AuditActionUpdate,
		Resource:   "story",
		ResourceID: &id,
	})

	return s.Get(ctx, id)
}

// Delete removes a story. The author or an admin may delete.
func (s *StoryService) Delete(ctx context.Context, actor *authz.Identity, id int64) error {
	story, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := authz.CanMutate(actor, story.AuthorID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "story not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete story")
	}

	s.audit.Record(models.AuditLog{
		UserID:     &actor.ID,
		Action:     models.AuditActionDelete,
		Resource:   "story",
		ResourceID: &id,
	})

	return nil
}
