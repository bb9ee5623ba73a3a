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

func TestMentorshipListMentorsIsAlumniOnly(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewMentorshipRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "company", "position", "bio", "skills"}).
		AddRow(2, "Grace", "Acme", "Staff Engineer", nil, "go,sql")
	mock.ExpectQuery(`WHERE role = 'alumni'\s+ORDER BY name ASC`).WillReturnRows(rows)

	mentors, err := repo.ListMentors(context.Background())
	require.NoError(t, err)
	assert.Len(t, mentors, 1)
	assert.Equal(t, "Grace", mentors[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMentorshipCreateStartsPending(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewMentorshipRepository(db)

	mock.ExpectQuery("INSERT INTO mentorship_requests").
		WithArgs(int64(4), int64(2), "Career advice", "Hi!", string(models.MentorshipPending)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(3, time.Now()))

	req := &models.MentorshipRequest{StudentID: 4, MentorID: 2, Subject: "Career advice", Message: "Hi!", Status: models.MentorshipPending}
	require.NoError(t, repo.Create(context.Background(), req))
	assert.Equal(t, int64(3), req.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMentorshipListForUserCoversBothSides(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewMentorshipRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "student_id", "mentor_id", "subject", "message", "status", "created_at",
		"student_name", "mentor_name",
	}).AddRow(3, 4, 2, "Career advice", "Hi!", "pending", now, "Ada", "Grace")
	mock.ExpectQuery(`WHERE mr\.student_id = \$1 OR mr\.mentor_id = \$1`).
		WithArgs(int64(2)).
		WillReturnRows(rows)

	requests, err := repo.ListForUser(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, models.MentorshipPending, requests[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMentorshipUpdateStatusMissingRow(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewMentorshipRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE mentorship_requests SET status = $2 WHERE id = $1")).
		WithArgs(int64(404), string(models.MentorshipAccepted)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), 404, models.MentorshipAccepted)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
