package service

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/alumni-connect-api/internal/models"
)

type mockAdminDashRepo struct {
	stats models.DashboardStats
	calls int
}

func (m *mockAdminDashRepo) DashboardStats(_ context.Context) (*models.DashboardStats, error) {
	m.calls++
	stats := m.stats
	return &stats, nil
}

type mockAdminUserRepo struct {
	users   []models.User
	created []*models.User
}

func (m *mockAdminUserRepo) List(_ context.Context, _ models.UserFilter) ([]models.User, error) {
	return m.users, nil
}

func (m *mockAdminUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = int64(len(m.created) + 100)
	m.created = append(m.created, user)
	return nil
}

type mockAdminOpportunityRepo struct{ rows []models.AdminOpportunityRow }

func (m *mockAdminOpportunityRepo) AdminList(_ context.Context) ([]models.AdminOpportunityRow, error) {
	return m.rows, nil
}

type mockAdminScholarshipRepo struct{ rows []models.AdminScholarshipRow }

func (m *mockAdminScholarshipRepo) AdminList(_ context.Context) ([]models.AdminScholarshipRow, error) {
	return m.rows, nil
}

type mockAdminApplicationRepo struct{ rows []models.AdminApplicationRow }

func (m *mockAdminApplicationRepo) AdminList(_ context.Context) ([]models.AdminApplicationRow, error) {
	return m.rows, nil
}

func newAdminServiceForTest(dash *mockAdminDashRepo, users *mockAdminUserRepo, apps *mockAdminApplicationRepo) *AdminService {
	if dash == nil {
		dash = &mockAdminDashRepo{}
	}
	if users == nil {
		users = &mockAdminUserRepo{}
	}
	if apps == nil {
		apps = &mockAdminApplicationRepo{}
	}
	return NewAdminService(
		dash,
		users,
		&mockAdminOpportunityRepo{},
		&mockAdminScholarshipRepo{},
		apps,
		nil,
		nil,
		time.Minute,
		nil,
		nil,
		nil,
	)
}

func TestAdminDashboardRequiresAdmin(t *testing.T) {
	svc := newAdminServiceForTest(nil, nil, nil)

	_, err := svc.Dashboard(context.Background(), alumni(9))
	require.Equal(t, http.StatusForbidden, statusOf(t, err))

	_, err = svc.Dashboard(context.Background(), nil)
	require.Equal(t, http.StatusUnauthorized, statusOf(t, err))
}

func TestAdminDashboardGroupsCounters(t *testing.T) {
	dash := &mockAdminDashRepo{stats: models.DashboardStats{
		TotalStudents:       120,
		TotalAlumni:         80,
		TotalAdmins:         2,
		ActiveOpportunities: 14,
		PendingMentorships:  5,
	}}
	svc := newAdminServiceForTest(dash, nil, nil)

	resp, err := svc.Dashboard(context.Background(), admin(1))
	require.NoError(t, err)
	require.Equal(t, 202, resp.Users.Total)
	require.Equal(t, 14, resp.Opportunities.Active)
	require.Equal(t, 5, resp.Mentorships.Pending)
	require.Equal(t, 1, dash.calls)
}

func TestAdminCreateUserCanMintAdmins(t *testing.T) {
	users := &mockAdminUserRepo{}
	svc := newAdminServiceForTest(nil, users, nil)

	created, err := svc.CreateUser(context.Background(), admin(1), models.CreateUserRequest{
		Email:    "ops@example.com",
		Password: "secret123",
		Name:     "Ops Admin",
		Role:     "admin",
	})
	require.NoError(t, err)
	require.Equal(t, models.RoleAdmin, created.Role)
	require.NotEqual(t, "secret123", created.PasswordHash)
	require.Len(t, users.created, 1)
}

func TestAdminCreateUserRejectsUnknownRole(t *testing.T) {
	svc := newAdminServiceForTest(nil, nil, nil)

	_, err := svc.CreateUser(context.Background(), admin(1), models.CreateUserRequest{
		Email:    "x@example.com",
		Password: "secret123",
		Name:     "X",
		Role:     "superuser",
	})
	require.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

func TestAdminExportUsersCSV(t *testing.T) {
	users := &mockAdminUserRepo{users: []models.User{
		{ID: 4, Name: "Ada Lovelace", Email: "ada@example.com", Role: models.RoleStudent},
	}}
	svc := newAdminServiceForTest(nil, users, nil)

	payload, contentType, err := svc.ExportUsers(context.Background(), admin(1), ExportCSV)
	require.NoError(t, err)
	require.Equal(t, "text/csv", contentType)

	body := string(payload)
	require.True(t, strings.HasPrefix(body, "ID,Name,Email,Role"))
	require.Contains(t, body, "ada@example.com")
}

func TestAdminExportApplicationsResolvesTarget(t *testing.T) {
	title := "Backend Intern"
	apps := &mockAdminApplicationRepo{rows: []models.AdminApplicationRow{
		{
			ID:               3,
			Type:             models.ApplicationTypeJob,
			Status:           models.ApplicationSubmitted,
			ApplicantName:    "Ada Lovelace",
			ApplicantEmail:   "ada@example.com",
			OpportunityTitle: &title,
		},
	}}
	svc := newAdminServiceForTest(nil, nil, apps)

	payload, _, err := svc.ExportApplications(context.Background(), admin(1), ExportCSV)
	require.NoError(t, err)
	require.Contains(t, string(payload), "Backend Intern")
}

func TestAdminExportUnsupportedFormat(t *testing.T) {
	svc := newAdminServiceForTest(nil, nil, nil)

	_, _, err := svc.ExportUsers(context.Background(), admin(1), ExportFormat("xlsx"))
	require.Equal(t, http.StatusBadRequest, statusOf(t, err))
}
