package service

import (
	"context"
	"database/sql"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/alumni-connect-api/internal/models"
)

type mockOpportunityRepo struct {
	opportunities map[int64]*models.Opportunity
	nextID        int64
}

func (m *mockOpportunityRepo) ListActive(_ context.Context, filter models.OpportunityFilter) ([]models.Opportunity, error) {
	var out []models.Opportunity
	for _, opp := range m.opportunities {
		if !opp.IsActive {
			continue
		}
		if filter.Type != nil && (opp.Type == nil || *opp.Type != *filter.Type) {
			continue
		}
		out = append(out, *opp)
	}
	return out, nil
}

func (m *mockOpportunityRepo) FindByID(_ context.Context, id int64) (*models.Opportunity, error) {
	opp, ok := m.opportunities[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *opp
	return &clone, nil
}

func (m *mockOpportunityRepo) Create(_ context.Context, opp *models.Opportunity) error {
	m.nextID++
	opp.ID = m.nextID
	opp.IsActive = true
	if m.opportunities == nil {
		m.opportunities = map[int64]*models.Opportunity{}
	}
	clone := *opp
	m.opportunities[opp.ID] = &clone
	return nil
}

func (m *mockOpportunityRepo) UpdatePatch(_ context.Context, id int64, patch models.OpportunityPatch) error {
	opp, ok := m.opportunities[id]
	if !ok {
		return sql.ErrNoRows
	}
	if patch.Title != nil {
		opp.Title = *patch.Title
	}
	if patch.Company != nil {
		opp.Company = *patch.Company
	}
	return nil
}

func (m *mockOpportunityRepo) SoftDelete(_ context.Context, id int64) error {
	opp, ok := m.opportunities[id]
	if !ok {
		return sql.ErrNoRows
	}
	opp.IsActive = false
	return nil
}

func seededOpportunityRepo(postedBy int64) *mockOpportunityRepo {
	return &mockOpportunityRepo{
		opportunities: map[int64]*models.Opportunity{
			1: {ID: 1, Title: "Backend Intern", Company: "Acme", Description: "Go services", PostedBy: postedBy, IsActive: true},
		},
		nextID: 1,
	}
}

func TestOpportunityCreateStudentForbidden(t *testing.T) {
	svc := NewOpportunityService(&mockOpportunityRepo{}, nil, nil, nil)

	_, err := svc.Create(context.Background(), student(4), models.CreateOpportunityRequest{
		Title:       "Backend Intern",
		Company:     "Acme",
		Description: "Go services",
	})
	require.Equal(t, http.StatusForbidden, statusOf(t, err))
}

func TestOpportunityCreateSetsPoster(t *testing.T) {
	repo := &mockOpportunityRepo{}
	svc := NewOpportunityService(repo, nil, nil, nil)

	opp, err := svc.Create(context.Background(), alumni(2), models.CreateOpportunityRequest{
		Title:       "Backend Intern",
		Company:     "Acme",
		Description: "Go services",
	})
	require.NoError(t, err)
	require.Equal(t, int64(2), opp.PostedBy)
	require.NotZero(t, opp.ID)
}

func TestOpportunityCreateMissingCompany(t *testing.T) {
	svc := NewOpportunityService(&mockOpportunityRepo{}, nil, nil, nil)

	_, err := svc.Create(context.Background(), alumni(2), models.CreateOpportunityRequest{
		Title:       "Backend Intern",
		Description: "Go services",
	})
	require.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

func TestOpportunityUpdateNonOwnerForbidden(t *testing.T) {
	repo := seededOpportunityRepo(2)
	svc := NewOpportunityService(repo, nil, nil, nil)

	title := "Frontend Intern"
	_, err := svc.Update(context.Background(), alumni(3), 1, models.OpportunityPatch{Title: &title})
	require.Equal(t, http.StatusForbidden, statusOf(t, err))

	updated, err := svc.Update(context.Background(), admin(1), 1, models.OpportunityPatch{Title: &title})
	require.NoError(t, err)
	require.Equal(t, "Frontend Intern", updated.Title)
}

func TestOpportunityDeleteDeactivates(t *testing.T) {
	repo := seededOpportunityRepo(2)
	svc := NewOpportunityService(repo, nil, nil, nil)

	require.NoError(t, svc.Delete(context.Background(), alumni(2), 1))
	require.False(t, repo.opportunities[1].IsActive)

	// Direct lookups still resolve the deactivated row.
	opp, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	require.False(t, opp.IsActive)

	active, err := svc.List(context.Background(), models.OpportunityFilter{})
	require.NoError(t, err)
	require.Empty(t, active)
}
