package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/alumni-connect-api/internal/models"
)

func opportunityRows(now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "title", "company", "description", "requirements", "location",
		"salary_range", "type", "posted_by", "is_active", "created_at", "posted_by_name",
	}).AddRow(1, "Backend Engineer", "Acme", "Build APIs", nil, "Remote", nil, "job", 3, true, now, "Grace")
}

func TestOpportunityListActiveFiltersByType(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewOpportunityRepository(db)

	mock.ExpectQuery(`WHERE o\.is_active = TRUE AND o\.type = \$1`).
		WithArgs("internship").
		WillReturnRows(opportunityRows(time.Now()))

	typ := "internship"
	opportunities, err := repo.ListActive(context.Background(), models.OpportunityFilter{Type: &typ})
	require.NoError(t, err)
	assert.Len(t, opportunities, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpportunityCreateReturnsID(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewOpportunityRepository(db)

	mock.ExpectQuery("INSERT INTO opportunities").
		WillReturnRows(sqlmock.NewRows([]string{"id", "is_active", "created_at"}).AddRow(5, true, time.Now()))

	opp := &models.Opportunity{Title: "Backend Engineer", Company: "Acme", Description: "Build APIs", PostedBy: 3}
	require.NoError(t, repo.Create(context.Background(), opp))
	assert.Equal(t, int64(5), opp.ID)
	assert.True(t, opp.IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpportunitySoftDelete(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewOpportunityRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE opportunities SET is_active = FALSE WHERE id = $1")).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SoftDelete(context.Background(), 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpportunityUpdatePatchMissingRow(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewOpportunityRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE opportunities SET title = $1 WHERE id = $2")).
		WithArgs("Renamed", int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	title := "Renamed"
	err := repo.UpdatePatch(context.Background(), 404, models.OpportunityPatch{Title: &title})
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
