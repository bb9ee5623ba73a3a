package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/alumni-connect-api/internal/models"
)

func scholarshipRows(now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "title", "description", "eligibility_criteria", "cgpa_requirement",
		"category_requirement", "amount", "deadline", "status", "created_by",
		"created_at", "created_by_name",
	}).AddRow(1, "Merit Grant", "For top students", nil, 8.0, nil, 50000.0, now.Add(72*time.Hour), "active", 2, now, "Admin")
}

func TestScholarshipListActiveOrdersByDeadline(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewScholarshipRepository(db)

	mock.ExpectQuery(`WHERE s\.status = 'active'\s+ORDER BY s\.deadline ASC`).
		WillReturnRows(scholarshipRows(time.Now()))

	scholarships, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	assert.Len(t, scholarships, 1)
	assert.Equal(t, models.ScholarshipActive, scholarships[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScholarshipListEligiblePassesCriteria(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewScholarshipRepository(db)

	mock.ExpectQuery(`cgpa_requirement IS NULL OR s\.cgpa_requirement <= \$1`).
		WithArgs(8.5, "general").
		WillReturnRows(scholarshipRows(time.Now()))

	category := "general"
	scholarships, err := repo.ListEligible(context.Background(), 8.5, &category)
	require.NoError(t, err)
	assert.Len(t, scholarships, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScholarshipHasApplication(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewScholarshipRepository(db)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(int64(4), int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.HasApplication(context.Background(), 4, 1)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScholarshipCreateApplicationSurfacesDuplicate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewScholarshipRepository(db)

	mock.ExpectQuery("INSERT INTO scholarship_applications").
		WillReturnError(&pq.Error{Code: "23505"})

	app := &models.ScholarshipApplication{StudentID: 4, ScholarshipID: 1}
	err := repo.CreateApplication(context.Background(), app)
	assert.True(t, IsUniqueViolation(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScholarshipFindApplicationForReview(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewScholarshipRepository(db)

	mock.ExpectQuery(`JOIN scholarships s ON sa\.scholarship_id = s\.id`).
		WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "created_by"}).AddRow(11, "submitted", 2))

	status, ownerID, err := repo.FindApplicationForReview(context.Background(), 11)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationSubmitted, status)
	assert.Equal(t, int64(2), ownerID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScholarshipUpdateApplicationStatusMissing(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewScholarshipRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE scholarship_applications SET status = $2 WHERE id = $1")).
		WithArgs(int64(99), string(models.ApplicationApproved)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateApplicationStatus(context.Background(), 99, models.ApplicationApproved)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
