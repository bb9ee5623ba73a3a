package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/alumni-connect-api/internal/models"
)

// MentorshipRepository provides database access for mentorship requests
// and the mentor directory.
type MentorshipRepository struct {
	db *sqlx.DB
}

// NewMentorshipRepository creates a new instance of MentorshipRepository.
func NewMentorshipRepository(db *sqlx.DB) *MentorshipRepository {
	return &MentorshipRepository{db: db}
}

// ListMentors returns the public directory of alumni mentors.
func (r *MentorshipRepository) ListMentors(ctx context.Context) ([]models.Mentor, error) {
	const query = `SELECT id, name, company, position, bio, skills
		FROM users
		WHERE role = 'alumni'
		ORDER BY name ASC`
	var mentors []models.Mentor
	if err := r.db.SelectContext(ctx, &mentors, query); err != nil {
		return nil, fmt.Errorf("list mentors: %w", err)
	}
	return mentors, nil
}

// Create inserts a pending mentorship request.
func (r *MentorshipRepository) Create(ctx context.Context, req *models.MentorshipRequest) error {
	const query = `INSERT INTO mentorship_requests (student_id, mentor_id, subject, message, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`
	row := r.db.QueryRowxContext(ctx, query, req.StudentID, req.MentorID, req.Subject, req.Message, req.Status)
	if err := row.Scan(&req.ID, &req.CreatedAt); err != nil {
		return fmt.Errorf("create mentorship request: %w", err)
	}
	return nil
}

// ListForUser returns requests the user participates in, as student or
// mentor, newest first.
func (r *MentorshipRepository) ListForUser(ctx context.Context, userID int64) ([]models.MentorshipRequest, error) {
	const query = `SELECT mr.id, mr.student_id, mr.mentor_id, mr.subject, mr.message, mr.status, mr.created_at,
			s.name AS student_name, m.name AS mentor_name
		FROM mentorship_requests mr
		JOIN users s ON mr.student_id = s.id
		JOIN users m ON mr.mentor_id = m.id
		WHERE mr.student_id = $1 OR mr.mentor_id = $1
		ORDER BY mr.created_at DESC`
	var requests []models.MentorshipRequest
	if err := r.db.SelectContext(ctx, &requests, query, userID); err != nil {
		return nil, fmt.Errorf("list mentorship requests: %w", err)
	}
	return requests, nil
}

// ListAll returns every mentorship request, for admin moderation.
func (r *MentorshipRepository) ListAll(ctx context.Context) ([]models.MentorshipRequest, error) {
	const query = `SELECT mr.id, mr.student_id, mr.mentor_id, mr.subject, mr.message, mr.status, mr.created_at,
			s.name AS student_name, m.name AS mentor_name
		FROM mentorship_requests mr
		JOIN users s ON mr.student_id = s.id
		JOIN users m ON mr.mentor_id = m.id
		ORDER BY mr.created_at DESC`
	var requests []models.MentorshipRequest
	if err := r.db.SelectContext(ctx, &requests, query); err != nil {
		return nil, fmt.Errorf("list mentorship requests: %w", err)
	}
	return requests, nil
}

// FindByID returns a single mentorship request.
func (r *MentorshipRepository) FindByID(ctx context.Context, id int64) (*models.MentorshipRequest, error) {
	const query = `SELECT id, student_id, mentor_id, subject, message, status, created_at
		FROM mentorship_requests
		WHERE id = $1 LIMIT 1`
	var req models.MentorshipRequest
	if err := r.db.GetContext(ctx, &req, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find mentorship request by id: %w", err)
	}
	return &req, nil
}

// UpdateStatus sets the status of a mentorship request.
func (r *MentorshipRepository) UpdateStatus(ctx context.Context, id int64, status models.MentorshipStatus) error {
	const query = `UPDATE mentorship_requests SET status = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("update mentorship status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
