package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/alumni-connect-api/internal/models"
)

// ApplicationRepository provides database access for generic job and
// scholarship applications.
type ApplicationRepository struct {
	db *sqlx.DB
}

// NewApplicationRepository creates a new instance of ApplicationRepository.
func NewApplicationRepository(db *sqlx.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// Create inserts a new application.
func (r *ApplicationRepository) Create(ctx context.Context, a *models.Application) error {
	const query = `INSERT INTO applications (applicant_id, opportunity_id, scholarship_id, type, cover_letter, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`
	row := r.db.QueryRowxContext(ctx, query, a.ApplicantID, a.OpportunityID, a.ScholarshipID, a.Type, a.CoverLetter, a.Status)
	if err := row.Scan(&a.ID, &a.CreatedAt); err != nil {
		if IsForeignKeyViolation(err) || IsUniqueViolation(err) {
			return err
		}
		return fmt.Errorf("create application: %w", err)
	}
	return nil
}

// ListByApplicant returns the user's applications joined with their
// targets, newest first.
func (r *ApplicationRepository) ListByApplicant(ctx context.Context, applicantID int64) ([]models.ApplicationRow, error) {
	const query = `SELECT a.id, a.type, a.status, a.cover_letter, a.created_at,
			o.title AS opportunity_title, o.company AS opportunity_company,
			s.title AS scholarship_title, s.amount AS scholarship_amount
		FROM applications a
		LEFT JOIN opportunities o ON a.opportunity_id = o.id
		LEFT JOIN scholarships s ON a.scholarship_id = s.id
		WHERE a.applicant_id = $1
		ORDER BY a.created_at DESC`
	var rows []models.ApplicationRow
	if err := r.db.SelectContext(ctx, &rows, query, applicantID); err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return rows, nil
}

// FindByID returns a single application.
func (r *ApplicationRepository) FindByID(ctx context.Context, id int64) (*models.Application, error) {
	const query = `SELECT id, applicant_id, opportunity_id, scholarship_id, type, cover_letter, status, created_at
		FROM applications
		WHERE id = $1 LIMIT 1`
	var app models.Application
	if err := r.db.GetContext(ctx, &app, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find application by id: %w", err)
	}
	return &app, nil
}

// UpdateStatus sets the review status of an application.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id int64, status models.ApplicationStatus) error {
	const query = `UPDATE applications SET status = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("update application status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// AdminList returns every application joined with its applicant, newest
// first.
func (r *ApplicationRepository) AdminList(ctx context.Context) ([]models.AdminApplicationRow, error) {
	const query = `SELECT a.id, a.type, a.status, a.created_at,
			u.name AS applicant_name, u.email AS applicant_email,
			o.title AS opportunity_title, s.title AS scholarship_title
		FROM applications a
		JOIN users u ON a.applicant_id = u.id
		LEFT JOIN opportunities o ON a.opportunity_id = o.id
		LEFT JOIN scholarships s ON a.scholarship_id = s.id
		ORDER BY a.created_at DESC`
	var rows []models.AdminApplicationRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("admin list applications: %w", err)
	}
	return rows, nil
}
