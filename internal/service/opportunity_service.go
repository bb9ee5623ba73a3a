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

type opportunityRepository interface {
	ListActive(ctx context.Context, filter models.OpportunityFilter) ([]models.Opportunity, error)
	FindByID(ctx context.Context, id int64) (*models.Opportunity, error)
	Create(ctx context.Context, opp *models.Opportunity) error
	UpdatePatch(ctx context.Context, id int64, patch models.OpportunityPatch) error
	SoftDelete(ctx context.Context, id int64) error
}

// OpportunityService manages job and internship postings.
type OpportunityService struct {
	repo      opportunityRepository
	validator *validator.Validate
	logger    *zap.Logger
	audit     *AuditService
}

// NewOpportunityService constructs an OpportunityService instance.
func NewOpportunityService(repo opportunityRepository, validate *validator.Validate, logger *zap.Logger, audit *AuditService) *OpportunityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &OpportunityService{repo: repo, validator: validate, logger: logger, audit: audit}
}

// List returns active postings matching the filter.
func (s *OpportunityService) List(ctx context.Context, filter models.OpportunityFilter) ([]models.Opportunity, error) {
	opportunities, err := s.repo.ListActive(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list opportunities")
	}
	return opportunities, nil
}

// Get returns a single posting, inactive ones included.
func (s *OpportunityService) Get(ctx context.Context, id int64) (*models.Opportunity, error) {
	opp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "opportunity not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load opportunity")
	}
	return opp, nil
}

// Create publishes a posting. Only alumni and admins may post.
func (s *OpportunityService) Create(ctx context.Context, actor *authz.Identity, req models.CreateOpportunityRequest) (*models.Opportunity, error) {
	if err := authz.RequireRole(actor, models.RoleAlumni, models.RoleAdmin); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid opportunity payload")
	}

	opp := &models.Opportunity{
		Title:        req.Title,
		Company:      req.Company,
		Description:  req.Description,
		Requirements: req.Requirements,
		Location:     req.Location,
		SalaryRange:  req.SalaryRange,
		Type:         req.Type,
		PostedBy:     actor.ID,
	}
	if err := s.repo.Create(ctx, opp); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create opportunity")
	}

	s.audit.Record(models.AuditLog{
		UserID:     &actor.ID,
		Action:     models.AuditActionCreate,
		Resource:   "opportunity",
		ResourceID: &opp.ID,
	})

	return opp, nil
}

// Update patches a posting. Only the poster or an admin may edit.
func (s *OpportunityService) Update(ctx context.Context, actor *authz.Identity, id int64, patch models.OpportunityPatch) (*models.Opportunity, error) {
	opp, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.CanMutate(actor, opp.PostedBy); err != nil {
		return nil, err
	}
	if patch == (models.OpportunityPatch{}) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no fields to update")
	}

	if err := s.repo.UpdatePatch(ctx, id, patch); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "opportunity not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update opportunity")
	}

	s.audit.Record(models.AuditLog{
		UserID:     &actor.ID,
		Action:     models.AuditActionUpdate,
		Resource:   "opportunity",
		ResourceID: &id,
	})

	return s.Get(ctx, id)
}

// Delete deactivates a posting. The row stays behind existing
// applications.
func (s *OpportunityService) Delete(ctx context.Context, actor *authz.Identity, id int64) error {
	opp, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := authz.CanMutate(actor, opp.PostedBy); err != nil {
		return err
	}

	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "opportunity not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete opportunity")
	}

	s.audit.Record(models.AuditLog{
		UserID:     &actor.ID,
		Action:     models.AuditActionDelete,
		Resource:   "opportunity",
		ResourceID: &id,
	})

	return nil
}
