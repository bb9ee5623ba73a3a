package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/alumni-connect-api/internal/models"
)

const scholarshipColumns = `s.id, s.title, s.description, s.eligibility_criteria, s.cgpa_requirement, s.category_requirement, s.amount, s.deadline, s.status, s.created_by, s.created_at`

// ScholarshipRepository provides database access for scholarships and
// their applications.
type ScholarshipRepository struct {
	db *sqlx.DB
}

// NewScholarshipRepository creates a new instance of ScholarshipRepository.
func NewScholarshipRepository(db *sqlx.DB) *ScholarshipRepository {
	return &ScholarshipRepository{db: db}
}

// ListActive returns active scholarships ordered by soonest deadline.
func (r *ScholarshipRepository) ListActive(ctx context.Context) ([]models.Scholarship, error) {
	query := fmt.Sprintf(`SELECT %s, u.name AS created_by_name
		FROM scholarships s
		LEFT JOIN users u ON s.created_by = u.id
		WHERE s.status = 'active'
		ORDER BY s.deadline ASC NULLS LAST`, scholarshipColumns)
	var scholarships []models.Scholarship
	if err := r.db.SelectContext(ctx, &scholarships, query); err != nil {
		return nil, fmt.Errorf("list scholarships: %w", err)
	}
	return scholarships, nil
}

// ListEligible returns active scholarships the given cgpa/category
// qualifies for, soonest deadline first.
func (r *ScholarshipRepository) ListEligible(ctx context.Context, cgpa float64, category *string) ([]models.Scholarship, error) {
	query := fmt.Sprintf(`SELECT %s, u.name AS created_by_name
		FROM scholarships s
		LEFT JOIN users u ON s.created_by = u.id
		WHERE s.status = 'active'
		  AND (s.cgpa_requirement IS NULL OR s.cgpa_requirement <= $1)
		  AND (s.category_requirement IS NULL OR s.category_requirement = $2)
		ORDER BY s.deadline ASC NULLS LAST`, scholarshipColumns)
	var scholarships []models.Scholarship
	if err := r.db.SelectContext(ctx, &scholarships, query, cgpa, category); err != nil {
		return nil, fmt.Errorf("list eligible scholarships: %w", err)
	}
	return scholarships, nil
}

// FindByID returns a scholarship regardless of status.
func (r *ScholarshipRepository) FindByID(ctx context.Context, id int64) (*models.Scholarship, error) {
	query := fmt.Sprintf(`SELECT %s, u.name AS created_by_name, u.email AS created_by_email
		FROM scholarships s
		LEFT JOIN users u ON s.created_by = u.id
		WHERE s.id = $1 LIMIT 1`, scholarshipColumns)
	var scholarship models.Scholarship
	if err := r.db.GetContext(ctx, &scholarship, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find scholarship by id: %w", err)
	}
	return &scholarship, nil
}

// Create inserts a new scholarship and returns the assigned id.
func (r *ScholarshipRepository) Create(ctx context.Context, s *models.Scholarship) error {
	const query = `INSERT INTO scholarships (title, description, eligibility_criteria, cgpa_requirement, category_requirement, amount, deadline, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`
	row := r.db.QueryRowxContext(ctx, query,
		s.Title, s.Description, s.EligibilityCriteria, s.CGPARequirement,
		s.CategoryRequirement, s.Amount, s.Deadline, s.Status, s.CreatedBy,
	)
	if err := row.Scan(&s.ID, &s.CreatedAt); err != nil {
		return fmt.Errorf("create scholarship: %w", err)
	}
	return nil
}

// UpdatePatch applies the non-nil fields of the patch. Returns
// sql.ErrNoRows for an empty patch or a missing row.
func (r *ScholarshipRepository) UpdatePatch(ctx context.Context, id int64, patch models.ScholarshipPatch) error {
	var pb patchBuilder
	if patch.Title != nil {
		pb.set("title", *patch.Title)
	}
	if patch.Description != nil {
		pb.set("description", *patch.Description)
	}
	if patch.EligibilityCriteria != nil {
		pb.set("eligibility_criteria", *patch.EligibilityCriteria)
	}
	if patch.CGPARequirement != nil {
		pb.set("cgpa_requirement", *patch.CGPARequirement)
	}
	if patch.CategoryRequirement != nil {
		pb.set("category_requirement", *patch.CategoryRequirement)
	}
	if patch.Amount != nil {
		pb.set("amount", *patch.Amount)
	}
	if patch.Deadline != nil {
		pb.set("deadline", *patch.Deadline)
	}
	if patch.Status != nil {
		pb.set("status", *patch.Status)
	}

	if pb.empty() {
		return sql.ErrNoRows
	}

	pb.args = append(pb.args, id)
	query := fmt.Sprintf("UPDATE scholarships SET %s WHERE id = $%d", strings.Join(pb.assignments, ", "), len(pb.args))
	res, err := r.db.ExecContext(ctx, query, pb.args...)
	if err != nil {
		return fmt.Errorf("update scholarship: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SoftDelete marks a scholarship inactive, preserving applications.
func (r *ScholarshipRepository) SoftDelete(ctx context.Context, id int64) error {
	const query = `UPDATE scholarships SET status = 'inactive' WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("soft delete scholarship: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// HasApplication reports whether the student already applied to the
// scholarship.
func (r *ScholarshipRepository) HasApplication(ctx context.Context, studentID, scholarshipID int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM scholarship_applications WHERE student_id = $1 AND scholarship_id = $2)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, studentID, scholarshipID); err != nil {
		return false, fmt.Errorf("check scholarship application: %w", err)
	}
	return exists, nil
}

// CreateApplication inserts a scholarship application. The unique
// (student_id, scholarship_id) constraint backs the duplicate check.
func (r *ScholarshipRepository) CreateApplication(ctx context.Context, app *models.ScholarshipApplication) error {
	const query = `INSERT INTO scholarship_applications (student_id, scholarship_id, cover_letter, additional_info)
		VALUES ($1, $2, $3, $4)
		RETURNING id, status, application_date`
	row := r.db.QueryRowxContext(ctx, query, app.StudentID, app.ScholarshipID, app.CoverLetter, app.AdditionalInfo)
	if err := row.Scan(&app.ID, &app.Status, &app.ApplicationDate); err != nil {
		if IsUniqueViolation(err) {
			return err
		}
		return fmt.Errorf("create scholarship application: %w", err)
	}
	return nil
}

// ListApplicants returns all applications for a scholarship joined with
// the applying student, newest first.
func (r *ScholarshipRepository) ListApplicants(ctx context.Context, scholarshipID int64) ([]models.ScholarshipApplicantRow, error) {
	const query = `SELECT sa.id, sa.student_id, u.name AS student_name, u.email AS student_email,
			u.cgpa AS student_cgpa, u.category AS student_category, u.major AS student_major,
			sa.status, sa.cover_letter, sa.additional_info, sa.application_date
		FROM scholarship_applications sa
		JOIN users u ON sa.student_id = u.id
		WHERE sa.scholarship_id = $1
		ORDER BY sa.application_date DESC`
	var rows []models.ScholarshipApplicantRow
	if err := r.db.SelectContext(ctx, &rows, query, scholarshipID); err != nil {
		return nil, fmt.Errorf("list scholarship applicants: %w", err)
	}
	return rows, nil
}

// ListMyApplications returns a student's applications joined with the
// scholarship, newest first.
func (r *ScholarshipRepository) ListMyApplications(ctx context.Context, studentID int64) ([]models.MyScholarshipApplicationRow, error) {
	const query = `SELECT sa.id, sa.scholarship_id, s.title AS scholarship_title, s.amount AS scholarship_amount,
			s.deadline AS scholarship_deadline, s.status AS scholarship_status,
			sa.status, sa.application_date
		FROM scholarship_applications sa
		JOIN scholarships s ON sa.scholarship_id = s.id
		WHERE sa.student_id = $1
		ORDER BY sa.application_date DESC`
	var rows []models.MyScholarshipApplicationRow
	if err := r.db.SelectContext(ctx, &rows, query, studentID); err != nil {
		return nil, fmt.Errorf("list my scholarship applications: %w", err)
	}
	return rows, nil
}

// applicationReview pairs an application's current status with the id of
// the scholarship owner for authorization.
type applicationReview struct {
	ID        int64                    `db:"id"`
	Status    models.ApplicationStatus `db:"status"`
	CreatedBy int64                    `db:"created_by"`
}

// FindApplicationForReview loads an application with its scholarship
// owner so the caller can authorize a status transition.
func (r *ScholarshipRepository) FindApplicationForReview(ctx context.Context, applicationID int64) (status models.ApplicationStatus, ownerID int64, err error) {
	const query = `SELECT sa.id, sa.status, s.created_by
		FROM scholarship_applications sa
		JOIN scholarships s ON sa.scholarship_id = s.id
		WHERE sa.id = $1 LIMIT 1`
	var review applicationReview
	if err := r.db.GetContext(ctx, &review, query, applicationID); err != nil {
		if err == sql.ErrNoRows {
			return "", 0, err
		}
		return "", 0, fmt.Errorf("find application for review: %w", err)
	}
	return review.Status, review.CreatedBy, nil
}

// UpdateApplicationStatus sets the review status of an application.
func (r *ScholarshipRepository) UpdateApplicationStatus(ctx context.Context, applicationID int64, status models.ApplicationStatus) error {
	const query = `UPDATE scholarship_applications SET status = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, applicationID, status)
	if err != nil {
		return fmt.Errorf("update application status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// AdminList returns all scholarships joined with their creator and
// application counts, newest first.
func (r *ScholarshipRepository) AdminList(ctx context.Context) ([]models.AdminScholarshipRow, error) {
	const query = `SELECT s.id, s.title, s.amount, s.deadline, s.status, s.cgpa_requirement, s.category_requirement,
			u.name AS created_by_name, u.email AS created_by_email,
			(SELECT COUNT(*) FROM scholarship_applications WHERE scholarship_id = s.id) AS application_count,
			s.created_at
		FROM scholarships s
		LEFT JOIN users u ON s.created_by = u.id
		ORDER BY s.created_at DESC`
	var rows []models.AdminScholarshipRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("admin list scholarships: %w", err)
	}
	return rows, nil
}
