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

type userRepository interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context, filter models.UserFilter) ([]models.User, error)
	UpdatePatch(ctx context.Context, id int64, patch models.UserPatch) error
	Delete(ctx context.Context, id int64) error
}

// UserService provides the member directory and profile management.
type UserService struct {
	repo      userRepository
	validator *validator.Validate
	logger    *zap.Logger
	audit     *AuditService
}

// NewUserService constructs a UserService instance.
func NewUserService(repo userRepository, validate *validator.Validate, logger *zap.Logger, audit *AuditService) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &UserService{repo: repo, validator: validate, logger: logger, audit: audit}
}

// List returns the member directory. Contact details are stripped unless
// the caller is an admin.
func (s *UserService) List(ctx context.Context, actor *authz.Identity, filter models.UserFilter) ([]models.User, error) {
	users, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list users")
	}
	if actor.IsAdmin() {
		return users, nil
	}
	for i := range users {
		users[i] = users[i].PublicProfile()
	}
	return users, nil
}

// Get returns one profile. The owner and admins see contact details,
// everyone else gets the public view.
func (s *UserService) Get(ctx context.Context, actor *authz.Identity, id int64) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}
	if actor != nil && (actor.ID == id || actor.IsAdmin()) {
		return user, nil
	}
	public := user.PublicProfile()
	return &public, nil
}

// Update applies a partial update to a profile. Owners may edit their own
// profile, admins anyone's. Role and email changes are admin-only and
// silently dropped for other callers.
func (s *UserService) Update(ctx context.Context, actor *authz.Identity, id int64, patch models.UserPatch) (*models.User, error) {
	if err := authz.CanMutate(actor, id); err != nil {
		return nil, err
	}
	if !actor.IsAdmin() {
		patch.Role = nil
		patch.Email = nil
	}
	if patch.Role != nil && !models.UserRole(*patch.Role).Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid role")
	}
	if patch == (models.UserPatch{}) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no fields to update")
	}

	if err := s.repo.UpdatePatch(ctx, id, patch); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		if repository.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "email already in use")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update user")
	}

	s.audit.Record(models.AuditLog{
		UserID:     &actor.ID,
		Action:     models.AuditActionUpdate,
		Resource:   "user",
		ResourceID: &id,
	})

	return s.Get(ctx, actor, id)
}

// Delete removes an account. Admin-only, and admins cannot delete their
// own account.
func (s *UserService) Delete(ctx context.Context, actor *authz.Identity, id int64) error {
	if err := authz.CanDeleteUser(actor, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete user")
	}

	s.audit.Record(models.AuditLog{
		UserID:     &actor.ID,
		Action:     models.AuditActionDelete,
		Resource:   "user",
		ResourceID: &id,
	})

	return nil
}
