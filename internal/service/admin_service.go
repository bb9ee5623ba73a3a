package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/alumni-connect-api/internal/authz"
	"github.com/noah-isme/alumni-connect-api/internal/models"
	"github.com/noah-isme/alumni-connect-api/internal/repository"
	appErrors "github.com/noah-isme/alumni-connect-api/pkg/errors"
	"github.com/noah-isme/alumni-connect-api/pkg/export"
)

type adminRepository interface {
	DashboardStats(ctx context.Context) (*models.DashboardStats, error)
}

type adminUserRepository interface {
	List(ctx context.Context, filter models.UserFilter) ([]models.User, error)
	Create(ctx context.Context, user *models.User) error
}

type adminOpportunityRepository interface {
	AdminList(ctx context.Context) ([]models.AdminOpportunityRow, error)
}

type adminScholarshipRepository interface {
	AdminList(ctx context.Context) ([]models.AdminScholarshipRow, error)
}

type adminApplicationRepository interface {
	AdminList(ctx context.Context) ([]models.AdminApplicationRow, error)
}

// ExportFormat selects the rendering for admin data exports.
type ExportFormat string

const (
	ExportCSV ExportFormat = "csv"
	ExportPDF ExportFormat = "pdf"
)

// AdminService aggregates platform-wide views for administrators.
type AdminService struct {
	repo          adminRepository
	users         adminUserRepository
	opportunities adminOpportunityRepository
	scholarships  adminScholarshipRepository
	applications  adminApplicationRepository
	cache         *CacheService
	metrics       *MetricsService
	dashboardTTL  time.Duration
	csv           *export.CSVExporter
	pdf           *export.PDFExporter
	validator     *validator.Validate
	logger        *zap.Logger
	audit         *AuditService
}

// NewAdminService constructs an AdminService instance.
func NewAdminService(
	repo adminRepository,
	users adminUserRepository,
	opportunities adminOpportunityRepository,
	scholarships adminScholarshipRepository,
	applications adminApplicationRepository,
	cache *CacheService,
	metrics *MetricsService,
	dashboardTTL time.Duration,
	validate *validator.Validate,
	logger *zap.Logger,
	audit *AuditService,
) *AdminService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AdminService{
		repo:          repo,
		users:         users,
		opportunities: opportunities,
		scholarships:  scholarships,
		applications:  applications,
		cache:         cache,
		metrics:       metrics,
		dashboardTTL:  dashboardTTL,
		csv:           export.NewCSVExporter(),
		pdf:           export.NewPDFExporter(),
		validator:     validate,
		logger:        logger,
		audit:         audit,
	}
}

// Dashboard returns the grouped platform counters, served from cache
// when fresh.
func (s *AdminService) Dashboard(ctx context.Context, actor *authz.Identity) (*models.DashboardResponse, error) {
	if err := authz.RequireRole(actor, models.RoleAdmin); err != nil {
		return nil, err
	}

	var cached models.DashboardResponse
	if s.cache.Get(ctx, cacheKeyDashboard, &cached) {
		return &cached, nil
	}

	start := time.Now()
	stats, err := s.repo.DashboardStats(ctx)
	s.metrics.ObserveDBQuery("dashboard_stats", time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to compute dashboard")
	}

	resp := stats.Grouped()
	s.cache.Set(ctx, cacheKeyDashboard, resp, s.dashboardTTL)
	return &resp, nil
}

// CreateUser provisions an account with any role, including admin. This
// is the only path that creates admin accounts.
func (s *AdminService) CreateUser(ctx context.Context, actor *authz.Identity, req models.CreateUserRequest) (*models.User, error) {
	if err := authz.RequireRole(actor, models.RoleAdmin); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid user payload")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	user := &models.User{
		Email:          req.Email,
		PasswordHash:   string(hash),
		Name:           req.Name,
		Role:           models.UserRole(req.Role),
		GraduationYear: req.GraduationYear,
		Major:          req.Major,
		Company:        req.Company,
		Position:       req.Position,
		Bio:            req.Bio,
		Skills:         req.Skills,
		CGPA:           req.CGPA,
		Category:       req.Category,
		Phone:          req.Phone,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "email already registered")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create user")
	}

	s.audit.Record(models.AuditLog{
		UserID:     &actor.ID,
		Action:     models.AuditActionCreate,
		Resource:   "user",
		ResourceID: &user.ID,
		NewValues:  []byte(fmt.Sprintf(`{"role":%q}`, req.Role)),
	})

	s.cache.Invalidate(ctx, cacheKeyDashboard)
	return user, nil
}

// ListUsers returns the full member list with contact details.
func (s *AdminService) ListUsers(ctx context.Context, actor *authz.Identity, filter models.UserFilter) ([]models.User, error) {
	if err := authz.RequireRole(actor, models.RoleAdmin); err != nil {
		return nil, err
	}
	users, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list users")
	}
	return users, nil
}

// ListOpportunities returns every posting, inactive included.
func (s *AdminService) ListOpportunities(ctx context.Context, actor *authz.Identity) ([]models.AdminOpportunityRow, error) {
	if err := authz.RequireRole(actor, models.RoleAdmin); err != nil {
		return nil, err
	}
	rows, err := s.opportunities.AdminList(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list opportunities")
	}
	return rows, nil
}

// ListScholarships returns every scholarship with application counts.
func (s *AdminService) ListScholarships(ctx context.Context, actor *authz.Identity) ([]models.AdminScholarshipRow, error) {
	if err := authz.RequireRole(actor, models.RoleAdmin); err != nil {
		return nil, err
	}
	rows, err := s.scholarships.AdminList(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list scholarships")
	}
	return rows, nil
}

// ExportUsers renders the member list as CSV or PDF for download.
func (s *AdminService) ExportUsers(ctx context.Context, actor *authz.Identity, format ExportFormat) ([]byte, string, error) {
	if err := authz.RequireRole(actor, models.RoleAdmin); err != nil {
		return nil, "", err
	}

	users, err := s.users.List(ctx, models.UserFilter{})
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load users")
	}

	dataset := export.Dataset{
		Headers: []string{"ID", "Name", "Email", "Role", "Graduation Year", "Created At"},
	}
	for _, u := range users {
		gradYear := ""
		if u.GraduationYear != nil {
			gradYear = strconv.Itoa(*u.GraduationYear)
		}
		dataset.Rows = append(dataset.Rows, map[string]string{
			"ID":              strconv.FormatInt(u.ID, 10),
			"Name":            u.Name,
			"Email":           u.Email,
			"Role":            string(u.Role),
			"Graduation Year": gradYear,
			"Created At":      u.CreatedAt.Format(time.RFC3339),
		})
	}

	return s.render(dataset, "Members", format)
}

// ExportApplications renders the moderation application list as CSV or
// PDF for download.
func (s *AdminService) ExportApplications(ctx context.Context, actor *authz.Identity, format ExportFormat) ([]byte, string, error) {
	if err := authz.RequireRole(actor, models.RoleAdmin); err != nil {
		return nil, "", err
	}

	rows, err := s.applications.AdminList(ctx)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load applications")
	}

	dataset := export.Dataset{
		Headers: []string{"ID", "Type", "Status", "Applicant", "Email", "Target", "Created At"},
	}
	for _, row := range rows {
		target := ""
		if row.OpportunityTitle != nil {
			target = *row.OpportunityTitle
		} else if row.ScholarshipTitle != nil {
			target = *row.ScholarshipTitle
		}
		dataset.Rows = append(dataset.Rows, map[string]string{
			"ID":         strconv.FormatInt(row.ID, 10),
			"Type":       string(row.Type),
			"Status":     string(row.Status),
			"Applicant":  row.ApplicantName,
			"Email":      row.ApplicantEmail,
			"Target":     target,
			"Created At": row.CreatedAt.Format(time.RFC3339),
		})
	}

	return s.render(dataset, "Applications", format)
}

func (s *AdminService) render(dataset export.Dataset, title string, format ExportFormat) ([]byte, string, error) {
	switch format {
	case ExportCSV:
		payload, err := s.csv.Render(dataset)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return payload, "text/csv", nil
	case ExportPDF:
		payload, err := s.pdf.Render(dataset, title)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return payload, "application/pdf", nil
	default:
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
}

// AuditLogs returns the most recent audit entries.
func (s *AdminService) AuditLogs(ctx context.Context, actor *authz.Identity, limit int) ([]models.AuditLog, error) {
	if err := authz.RequireRole(actor, models.RoleAdmin); err != nil {
		return nil, err
	}
	entries, err := s.audit.ListRecent(ctx, limit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list audit logs")
	}
	return entries, nil
}
