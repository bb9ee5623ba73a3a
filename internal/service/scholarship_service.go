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

type scholarshipRepository interface {
	ListActive(ctx context.Context) ([]models.Scholarship, error)
	ListEligible(ctx context.Context, cgpa float64, category *string) ([]models.Scholarship, error)
	FindByID(ctx context.Context, id int64) (*models.Scholarship, error)
	Create(ctx context.Context, s *models.Scholarship) error
	UpdatePatch(ctx context.Context, id int64, patch models.ScholarshipPatch) error
	SoftDelete(ctx context.Context, id int64) error
	HasApplication(ctx context.Context, studentID, scholarshipID int64) (bool, error)
	CreateApplication(ctx context.Context, app *models.ScholarshipApplication) error
	ListApplicants(ctx context.Context, scholarshipID int64) ([]models.ScholarshipApplicantRow, error)
	ListMyApplications(ctx context.Context, studentID int64) ([]models.MyScholarshipApplicationRow, error)
	FindApplicationForReview(ctx context.Context, applicationID int64) (models.ApplicationStatus, int64, error)
	UpdateApplicationStatus(ctx context.Context, applicationID int64, status models.ApplicationStatus) error
}

type scholarshipUserLookup interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

// ScholarshipService manages scholarships and their applications.
type ScholarshipService struct {
	repo      scholarshipRepository
	users     scholarshipUserLookup
	validator *validator.Validate
	logger    *zap.Logger
	audit     *AuditService
}

// NewScholarshipService constructs a ScholarshipService instance.
func NewScholarshipService(repo scholarshipRepository, users scholarshipUserLookup, validate *validator.Validate, logger *zap.Logger, audit *AuditService) *ScholarshipService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ScholarshipService{repo: repo, users: users, validator: validate, logger: logger, audit: audit}
}

// List returns active scholarships, soonest deadline first.
func (s *ScholarshipService) List(ctx context.Context) ([]models.Scholarship, error) {
	scholarships, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list scholarships")
	}
	return scholarships, nil
}

// ListEligible returns the active scholarships the calling student
// qualifies for, based on their stored CGPA and category. A profile
// without a CGPA matches only scholarships without a CGPA requirement.
func (s *ScholarshipService) ListEligible(ctx context.Context, actor *authz.Identity) ([]models.Scholarship, error) {
	if err := authz.RequireRole(actor, models.RoleStudent, models.RoleAdmin); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "account no longer exists")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load profile")
	}

	var cgpa float64
	if user.CGPA != nil {
		cgpa = *user.CGPA
	}
	scholarships, err := s.repo.ListEligible(ctx, cgpa, user.Category)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list eligible scholarships")
	}
	return scholarships, nil
}

// Get returns a single scholarship, inactive ones included.
func (s *ScholarshipService) Get(ctx context.Context, id int64) (*models.Scholarship, error) {
	scholarship, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "scholarship not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load scholarship")
	}
	return scholarship, nil
}

// Create publishes a scholarship. Only alumni and admins may create one.
func (s *ScholarshipService) Create(ctx context.Context, actor *authz.Identity, req models.CreateScholarshipRequest) (*models.Scholarship, error) {
	if err := authz.RequireRole(actor, models.RoleAlumni, models.RoleAdmin); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid scholarship payload")
	}

	status := models.ScholarshipActive
	if req.Status != nil {
		status = models.ScholarshipStatus(*req.Status)
	}
	scholarship := &models.Scholarship{
		Title:               req.Title,
		Description:         req.Description,
		EligibilityCriteria: req.EligibilityCriteria,
		CGPARequirement:     req.CGPARequirement,
		CategoryRequirement: req.CategoryRequirement,
		Amount:              *req.Amount,
		Deadline:            req.Deadline,
		Status:              status,
		CreatedBy:           actor.ID,
	}
	if err := s.repo.Create(ctx, scholarship); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create scholarship")
	}

	s.audit.Record(models.AuditLog{
		UserID:     &actor.ID,
		Action:     models.AuditActionCreate,
		Resource:   "scholarship",
		ResourceID: &scholarship.ID,
	})

	return scholarship, nil
}

// Update patches a scholarship. Only the creator or an admin may edit.
func (s *ScholarshipService) Update(ctx context.Context, actor *authz.Identity, id int64, patch models.ScholarshipPatch) (*models.Scholarship, error) {
	scholarship, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.CanMutate(actor, scholarship.CreatedBy); err != nil {
		return nil, err
	}
	if patch.Status != nil {
		switch models.ScholarshipStatus(*patch.Status) {
		case models.ScholarshipActive, models.ScholarshipInactive:
		default:
			return nil, appErrors.Clone(appErrors.ErrValidation, "invalid status")
		}
	}
	if patch == (models.ScholarshipPatch{}) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no fields to update")
	}

	if err := s.repo.UpdatePatch(ctx, id, patch); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "scholarship not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update scholarship")
	}

	s.audit.Record(models.AuditLog{
		UserID:     &actor.ID,
		Action:     models.AuditActionUpdate,
		Resource:   "scholarship",
		ResourceID: &id,
	})

	return s.Get(ctx, id)
}

// Delete deactivates a scholarship. Applications stay behind for
// auditability.
func (s *ScholarshipService) Delete(ctx context.Context, actor *authz.Identity, id int64) error {
	scholarship, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := authz.CanMutate(actor, scholarship.CreatedBy); err != nil {
		return err
	}

	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "scholarship not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete scholarship")
	}

	s.audit.Record(models.AuditLog{
		UserID:     &actor.ID,
		Action:     models.AuditActionDelete,
		Resource:   "scholarship",
		ResourceID: &id,
	})

	return nil
}

// Apply submits an application to an active scholarship. Applying twice
// to the same scholarship is a conflict.
func (s *ScholarshipService) Apply(ctx context.Context, actor *authz.Identity, scholarshipID int64, req models.ApplyScholarshipRequest) (*models.ScholarshipApplication, error) {
	if err := authz.RequireRole(actor, models.RoleStudent, models.RoleAdmin); err != nil {
		return nil, err
	}

	scholarship, err := s.Get(ctx, scholarshipID)
	if err != nil {
		return nil, err
	}
	if scholarship.Status != models.ScholarshipActive {
		// Soft-deleted scholarships look like they never existed.
		return nil, appErrors.Clone(appErrors.ErrNotFound, "scholarship not found")
	}

	// Read-side check for a friendly message; the unique constraint
	// still guards the race.
	exists, err := s.repo.HasApplication(ctx, actor.ID, scholarshipID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check existing application")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "you have already applied to this scholarship")
	}

	app := &models.ScholarshipApplication{
		StudentID:      actor.ID,
		ScholarshipID:  scholarshipID,
		CoverLetter:    req.CoverLetter,
		AdditionalInfo: req.AdditionalInfo,
	}
	if err := s.repo.CreateApplication(ctx, app); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "you have already applied to this scholarship")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create application")
	}

	s.audit.Record(models.AuditLog{
		UserID:     &actor.ID,
		Action:     models.AuditActionCreate,
		Resource:   "scholarship_application",
		ResourceID: &app.ID,
	})

	return app, nil
}

// Applicants lists applications for a scholarship. Restricted to the
// scholarship creator and admins.
func (s *ScholarshipService) Applicants(ctx context.Context, actor *authz.Identity, scholarshipID int64) ([]models.ScholarshipApplicantRow, error) {
	scholarship, err := s.Get(ctx, scholarshipID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanMutate(actor, scholarship.CreatedBy); err != nil {
		return nil, err
	}

	rows, err := s.repo.ListApplicants(ctx, scholarshipID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list applicants")
	}
	return rows, nil
}

// MyApplications lists the calling student's scholarship applications.
func (s *ScholarshipService) MyApplications(ctx context.Context, actor *authz.Identity) ([]models.MyScholarshipApplicationRow, error) {
	if err := authz.RequireRole(actor, models.RoleStudent, models.RoleAdmin); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListMyApplications(ctx, actor.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list applications")
	}
	return rows, nil
}

// ReviewApplication moves an application through the review state
// machine. Only the scholarship creator or an admin may review, and only
// along legal transitions.
func (s *ScholarshipService) ReviewApplication(ctx context.Context, actor *authz.Identity, applicationID int64, to models.ApplicationStatus) error {
	from, ownerID, err := s.repo.FindApplicationForReview(ctx, applicationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "application not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load application")
	}

	if err := authz.ApplicationTransition(actor, ownerID, from, to); err != nil {
		return err
	}

	if err := s.repo.UpdateApplicationStatus(ctx, applicationID, to); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "application not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update application")
	}

	s.audit.Record(models.AuditLog{
		UserID:     &actor.ID,
		Action:     models.AuditActionUpdate,
		Resource:   "scholarship_application",
		ResourceID: &applicationID,
	})

	return nil
}
