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

type applicationRepository interface {
	Create(ctx context.Context, a *models.Application) error
	ListByApplicant(ctx context.Context, applicantID int64) ([]models.ApplicationRow, error)
	FindByID(ctx context.Context, id int64) (*models.Application, error)
	UpdateStatus(ctx context.Context, id int64, status models.ApplicationStatus) error
	AdminList(ctx context.Context) ([]models.AdminApplicationRow, error)
}

type applicationOpportunityLookup interface {
	FindByID(ctx context.Context, id int64) (*models.Opportunity, error)
}

type applicationScholarshipLookup interface {
	FindByID(ctx context.Context, id int64) (*models.Scholarship, error)
}

// ApplicationService manages generic job and scholarship applications.
type ApplicationService struct {
	repo          applicationRepository
	opportunities applicationOpportunityLookup
	scholarships  applicationScholarshipLookup
	validator     *validator.Validate
	logger        *zap.Logger
	audit         *AuditService
}

// NewApplicationService constructs an ApplicationService instance.
func NewApplicationService(repo applicationRepository, opportunities applicationOpportunityLookup, scholarships applicationScholarshipLookup, validate *validator.Validate, logger *zap.Logger, audit *AuditService) *ApplicationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ApplicationService{
		repo:          repo,
		opportunities: opportunities,
		scholarships:  scholarships,
		validator:     validate,
		logger:        logger,
		audit:         audit,
	}
}

// Create submits an application to an active opportunity or scholarship.
// The target reference must match the application type.
func (s *ApplicationService) Create(ctx context.Context, actor *authz.Identity, req models.CreateApplicationRequest) (*models.Application, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid application payload")
	}

	appType := models.ApplicationType(req.Type)
	switch appType {
	case models.ApplicationTypeJob:
		if req.OpportunityID == nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "opportunity_id is required for job applications")
		}
		opp, err := s.opportunities.FindByID(ctx, *req.OpportunityID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "opportunity not found")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load opportunity")
		}
		if !opp.IsActive {
			return nil, appErrors.Clone(appErrors.ErrValidation, "opportunity is no longer active")
		}
		req.ScholarshipID = nil
	case models.ApplicationTypeScholarship:
		if req.ScholarshipID == nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "scholarship_id is required for scholarship applications")
		}
		scholarship, err := s.scholarships.FindByID(ctx, *req.ScholarshipID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "scholarship not found")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load scholarship")
		}
		if scholarship.Status != models.ScholarshipActive {
			return nil, appErrors.Clone(appErrors.ErrValidation, "scholarship is not accepting applications")
		}
		req.OpportunityID = nil
	}

	app := &models.Application{
		ApplicantID:   actor.ID,
		OpportunityID: req.OpportunityID,
		ScholarshipID: req.ScholarshipID,
		Type:          appType,
		CoverLetter:   req.CoverLetter,
		Status:        models.ApplicationSubmitted,
	}
	if err := s.repo.Create(ctx, app); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "you have already applied")
		}
		if repository.IsForeignKeyViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "application target does not exist")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create application")
	}

	s.audit.Record(models.AuditLog{
		UserID:     &actor.ID,
		Action:     models.AuditActionCreate,
		Resource:   "application",
		ResourceID: &app.ID,
	})

	return app, nil
}

// ListMine returns the calling user's applications.
func (s *ApplicationService) ListMine(ctx context.Context, actor *authz.Identity) ([]models.ApplicationRow, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	rows, err := s.repo.ListByApplicant(ctx, actor.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list applications")
	}
	return rows, nil
}

// Get returns a single application. Non-owners get a 404 rather than a
// 403 so the endpoint does not leak which ids exist. Admins may read any.
func (s *ApplicationService) Get(ctx context.Context, actor *authz.Identity, id int64) (*models.Application, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	app, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "application not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load application")
	}
	if app.ApplicantID != actor.ID && !actor.IsAdmin() {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "application not found")
	}
	return app, nil
}

// Review moves an application through the review state machine. Only the
// owner of the target posting or an admin may review.
func (s *ApplicationService) Review(ctx context.Context, actor *authz.Identity, id int64, to models.ApplicationStatus) error {
	app, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "application not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load application")
	}

	ownerID, err := s.targetOwner(ctx, app)
	if err != nil {
		return err
	}

	if err := authz.ApplicationTransition(actor, ownerID, app.Status, to); err != nil {
		return err
	}

	if err := s.repo.UpdateStatus(ctx, id, to); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "application not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update application")
	}

	s.audit.Record(models.AuditLog{
		UserID:     &actor.ID,
		Action:     models.AuditActionUpdate,
		Resource:   "application",
		ResourceID: &id,
	})

	return nil
}

// AdminList returns every application for moderation.
func (s *ApplicationService) AdminList(ctx context.Context, actor *authz.Identity) ([]models.AdminApplicationRow, error) {
	if err := authz.RequireRole(actor, models.RoleAdmin); err != nil {
		return nil, err
	}
	rows, err := s.repo.AdminList(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list applications")
	}
	return rows, nil
}

func (s *ApplicationService) targetOwner(ctx context.Context, app *models.Application) (int64, error) {
	switch {
	case app.Type == models.ApplicationTypeJob && app.OpportunityID != nil:
		opp, err := s.opportunities.FindByID(ctx, *app.OpportunityID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return 0, appErrors.Clone(appErrors.ErrNotFound, "opportunity not found")
			}
			return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load opportunity")
		}
		return opp.PostedBy, nil
	case app.Type == models.ApplicationTypeScholarship && app.ScholarshipID != nil:
		scholarship, err := s.scholarships.FindByID(ctx, *app.ScholarshipID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return 0, appErrors.Clone(appErrors.ErrNotFound, "scholarship not found")
			}
			return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load scholarship")
		}
		return scholarship.CreatedBy, nil
	}
	return 0, appErrors.Clone(appErrors.ErrInternal, "application has no target")
}
