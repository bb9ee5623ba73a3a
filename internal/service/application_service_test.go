package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/alumni-connect-api/internal/models"
)

type mockApplicationRepo struct {
	apps      map[int64]*models.Application
	created   *models.Application
	updatedTo models.ApplicationStatus
}

func (m *mockApplicationRepo) Create(ctx context.Context, a *models.Application) error {
	a.ID = 21
	m.created = a
	return nil
}

func (m *mockApplicationRepo) ListByApplicant(ctx context.Context, applicantID int64) ([]models.ApplicationRow, error) {
	return nil, nil
}

func (m *mockApplicationRepo) FindByID(ctx context.Context, id int64) (*models.Application, error) {
	a, ok := m.apps[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return a, nil
}

func (m *mockApplicationRepo) UpdateStatus(ctx context.Context, id int64, status models.ApplicationStatus) error {
	m.updatedTo = status
	return nil
}

func (m *mockApplicationRepo) AdminList(ctx context.Context) ([]models.AdminApplicationRow, error) {
	return nil, nil
}

type mockOpportunityLookup struct {
	opportunities map[int64]*models.Opportunity
}

func (m *mockOpportunityLookup) FindByID(ctx context.Context, id int64) (*models.Opportunity, error) {
	o, ok := m.opportunities[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return o, nil
}

type mockScholarshipLookup struct {
	scholarships map[int64]*models.Scholarship
}

func (m *mockScholarshipLookup) FindByID(ctx context.Context, id int64) (*models.Scholarship, error) {
	s, ok := m.scholarships[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return s, nil
}

func newApplicationService(repo *mockApplicationRepo, opps map[int64]*models.Opportunity, schols map[int64]*models.Scholarship) *ApplicationService {
	return NewApplicationService(
		repo,
		&mockOpportunityLookup{opportunities: opps},
		&mockScholarshipLookup{scholarships: schols},
		nil, nil, nil,
	)
}

func TestApplicationCreateOpenToAnyAuthenticated(t *testing.T) {
	repo := &mockApplicationRepo{}
	oppID := int64(1)
	svc := newApplicationService(repo, map[int64]*models.Opportunity{
		1: {ID: 1, PostedBy: 2, IsActive: true},
	}, nil)

	_, err := svc.Create(context.Background(), nil, models.CreateApplicationRequest{
		Type: "job", OpportunityID: &oppID, CoverLetter: "Hi",
	})
	assert.Equal(t, 401, statusOf(t, err))

	app, err := svc.Create(context.Background(), alumni(2), models.CreateApplicationRequest{
		Type: "job", OpportunityID: &oppID, CoverLetter: "Hi",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), app.ApplicantID)
}

func TestApplicationCreateJobRequiresOpportunityID(t *testing.T) {
	svc := newApplicationService(&mockApplicationRepo{}, nil, nil)

	_, err := svc.Create(context.Background(), student(4), models.CreateApplicationRequest{
		Type: "job", CoverLetter: "Hi",
	})
	assert.Equal(t, 400, statusOf(t, err))
}

func TestApplicationCreateJobHappyPath(t *testing.T) {
	repo := &mockApplicationRepo{}
	oppID := int64(1)
	svc := newApplicationService(repo, map[int64]*models.Opportunity{
		1: {ID: 1, PostedBy: 2, IsActive: true},
	}, nil)

	app, err := svc.Create(context.Background(), student(4), models.CreateApplicationRequest{
		Type: "job", OpportunityID: &oppID, CoverLetter: "Hi",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationSubmitted, app.Status)
	assert.Nil(t, app.ScholarshipID)
}

func TestApplicationCreateInactiveOpportunityRejected(t *testing.T) {
	oppID := int64(1)
	svc := newApplicationService(&mockApplicationRepo{}, map[int64]*models.Opportunity{
		1: {ID: 1, PostedBy: 2, IsActive: false},
	}, nil)

	_, err := svc.Create(context.Background(), student(4), models.CreateApplicationRequest{
		Type: "job", OpportunityID: &oppID, CoverLetter: "Hi",
	})
	assert.Equal(t, 400, statusOf(t, err))
}

func TestApplicationCreateMissingScholarshipIsNotFound(t *testing.T) {
	scholID := int64(9)
	svc := newApplicationService(&mockApplicationRepo{}, nil, nil)

	_, err := svc.Create(context.Background(), student(4), models.CreateApplicationRequest{
		Type: "scholarship", ScholarshipID: &scholID, CoverLetter: "Hi",
	})
	assert.Equal(t, 404, statusOf(t, err))
}

func TestApplicationReviewByPostingOwner(t *testing.T) {
	oppID := int64(1)
	repo := &mockApplicationRepo{apps: map[int64]*models.Application{
		21: {ID: 21, ApplicantID: 4, OpportunityID: &oppID, Type: models.ApplicationTypeJob, Status: models.ApplicationSubmitted},
	}}
	svc := newApplicationService(repo, map[int64]*models.Opportunity{
		1: {ID: 1, PostedBy: 2, IsActive: true},
	}, nil)

	err := svc.Review(context.Background(), alumni(2), 21, models.ApplicationUnderReview)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationUnderReview, repo.updatedTo)

	err = svc.Review(context.Background(), alumni(3), 21, models.ApplicationUnderReview)
	assert.Equal(t, 403, statusOf(t, err))
}

func TestApplicationAdminListRestricted(t *testing.T) {
	svc := newApplicationService(&mockApplicationRepo{}, nil, nil)

	_, err := svc.AdminList(context.Background(), alumni(2))
	assert.Equal(t, 403, statusOf(t, err))

	_, err = svc.AdminList(context.Background(), admin(1))
	assert.NoError(t, err)
}
