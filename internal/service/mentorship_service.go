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

type mentorshipRepository interface {
	ListMentors(ctx context.Context) ([]models.Mentor, error)
	Create(ctx context.Context, req *models.MentorshipRequest) error
	ListForUser(ctx context.Context, userID int64) ([]models.MentorshipRequest, error)
	ListAll(ctx context.Context) ([]models.MentorshipRequest, error)
	FindByID(ctx context.Context, id int64) (*models.MentorshipRequest, error)
	UpdateStatus(ctx context.Context, id int64, status models.MentorshipStatus) error
}

type mentorshipUserLookup interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

// MentorshipService manages the mentor directory and request lifecycle.
type MentorshipService struct {
	repo      mentorshipRepository
	users     mentorshipUserLookup
	validator *validator.Validate
	logger    *zap.Logger
	audit     *AuditService
}

// NewMentorshipService constructs a MentorshipService instance.
func NewMentorshipService(repo mentorshipRepository, users mentorshipUserLookup, validate *validator.Validate, logger *zap.Logger, audit *AuditService) *MentorshipService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &MentorshipService{repo: repo, users: users, validator: validate, logger: logger, audit: audit}
}

// Mentors returns the public directory of alumni available for
// mentorship.
func (s *MentorshipService) Mentors(ctx context.Context) ([]models.Mentor, error) {
	mentors, err := s.repo.ListMentors(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list mentors")
	}
	return mentors, nil
}

// Request creates a pending mentorship request from a student to an
// alumni mentor. A mentor id that does not resolve to an alumni account
// is treated as not found.
func (s *MentorshipService) Request(ctx context.Context, actor *authz.Identity, req models.CreateMentorshipRequest) (*models.MentorshipRequest, error) {
	if err := authz.RequireRole(actor, models.RoleStudent, models.RoleAdmin); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid mentorship payload")
	}
	if req.MentorID == actor.ID {
		return nil, appErrors.Clone(appErrors.ErrValidation, "you cannot request mentorship from yourself")
	}

	mentor, err := s.users.FindByID(ctx, req.MentorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "mentor not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load mentor")
	}
	if mentor.Role != models.RoleAlumni {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "mentor not found")
	}

	request := &models.MentorshipRequest{
		StudentID: actor.ID,
		MentorID:  req.MentorID,
		Subject:   req.Subject,
		Message:   req.Message,
		Status:    models.MentorshipPending,
	}
	if err := s.repo.Create(ctx, request); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create mentorship request")
	}

	s.audit.Record(models.AuditLog{
		UserID:     &actor.ID,
		Action:     models.AuditActionCreate,
		Resource:   "mentorship_request",
		ResourceID: &request.ID,
	})

	return request, nil
}

// List returns requests the caller participates in, on either side.
// Admins see every request.
func (s *MentorshipService) List(ctx context.Context, actor *authz.Identity) ([]models.MentorshipRequest, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	var (
		requests []models.MentorshipRequest
		err      error
	)
	if actor.IsAdmin() {
		requests, err = s.repo.ListAll(ctx)
	} else {
		requests, err = s.repo.ListForUser(ctx, actor.ID)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list mentorship requests")
	}
	return requests, nil
}

// UpdateStatus moves a request through its state machine. Only the
// designated mentor or an admin may act, and only along legal
// transitions.
func (s *MentorshipService) UpdateStatus(ctx context.Context, actor *authz.Identity, id int64, to models.MentorshipStatus) (*models.MentorshipRequest, error) {
	request, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "mentorship request not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load mentorship request")
	}

	if err := authz.MentorshipTransition(actor, request.MentorID, request.Status, to); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, id, to); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "mentorship request not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update mentorship request")
	}

	s.audit.Record(models.AuditLog{
		UserID:     &actor.ID,
		Action:     models.AuditActionUpdate,
		Resource:   "mentorship_request",
		ResourceID: &id,
	})

	request.Status = to
	return request, nil
}
