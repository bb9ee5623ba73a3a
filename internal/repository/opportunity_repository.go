package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/alumni-connect-api/internal/models"
)

// OpportunityRepository provides database access for job postings.
type OpportunityRepository struct {
	db *sqlx.DB
}

// NewOpportunityRepository creates a new instance of OpportunityRepository.
func NewOpportunityRepository(db *sqlx.DB) *OpportunityRepository {
	return &OpportunityRepository{db: db}
}

// ListActive returns active opportunities, newest first.
func (r *OpportunityRepository) ListActive(ctx context.Context, filter models.OpportunityFilter) ([]models.Opportunity, error) {
	where := []string{"o.is_active = TRUE"}
	var args []interface{}

	if filter.Type != nil {
		args = append(args, *filter.Type)
		where = append(where, fmt.Sprintf("o.type = $%d", len(args)))
	}
	if filter.PostedBy != nil {
		args = append(args, *filter.PostedBy)
		where = append(where, fmt.Sprintf("o.posted_by = $%d", len(args)))
	}

	query := fmt.Sprintf(`SELECT o.id, o.title, o.company, o.description, o.requirements, o.location, o.salary_range, o.type, o.posted_by, o.is_active, o.created_at, u.name AS posted_by_name
		FROM opportunities o
		LEFT JOIN users u ON o.posted_by = u.id
		WHERE %s
		ORDER BY o.created_at DESC`, strings.Join(where, " AND "))

	var opportunities []models.Opportunity
	if err := r.db.SelectContext(ctx, &opportunities, query, args...); err != nil {
		return nil, fmt.Errorf("list opportunities: %w", err)
	}
	return opportunities, nil
}

// FindByID returns a single opportunity regardless of active state.
func (r *OpportunityRepository) FindByID(ctx context.Context, id int64) (*models.Opportunity, error) {
	const query = `SELECT o.id, o.title, o.company, o.description, o.requirements, o.location, o.salary_range, o.type, o.posted_by, o.is_active, o.created_at, u.name AS posted_by_name
		FROM opportunities o
		LEFT JOIN users u ON o.posted_by = u.id
		WHERE o.id = $1 LIMIT 1`
	var opp models.Opportunity
	if err := r.db.GetContext(ctx, &opp, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find opportunity by id: %w", err)
	}
	return &opp, nil
}

// Create inserts a new opportunity and returns the assigned id.
func (r *OpportunityRepository) Create(ctx context.Context, opp *models.Opportunity) error {
	const query = `INSERT INTO opportunities (title, company, description, requirements, location, salary_range, type, posted_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, is_active, created_at`
	row := r.db.QueryRowxContext(ctx, query,
		opp.Title, opp.Company, opp.Description, opp.Requirements,
		opp.Location, opp.SalaryRange, opp.Type, opp.PostedBy,
	)
	if err := row.Scan(&opp.ID, &opp.IsActive, &opp.CreatedAt); err != nil {
		return fmt.Errorf("create opportunity: %w", err)
	}
	return nil
}

// UpdatePatch applies the non-nil fields of the patch. Returns
// sql.ErrNoRows for an empty patch or a missing row.
func (r *OpportunityRepository) UpdatePatch(ctx context.Context, id int64, patch models.OpportunityPatch) error {
	var pb patchBuilder
	if patch.Title != nil {
		pb.set("title", *patch.Title)
	}
	if patch.Company != nil {
		pb.set("company", *patch.Company)
	}
	if patch.Description != nil {
		pb.set("description", *patch.Description)
	}
	if patch.Requirements != nil {
		pb.set("requirements", *patch.Requirements)
	}
	if patch.Location != nil {
		pb.set("location", *patch.Location)
	}
	if patch.SalaryRange != nil {
		pb.set("salary_range", *patch.SalaryRange)
	}
	if patch.Type != nil {
		pb.set("type", *patch.Type)
	}

	if pb.empty() {
		return sql.ErrNoRows
	}

	pb.args = append(pb.args, id)
	query := fmt.Sprintf("UPDATE opportunities SET %s WHERE id = $%d", strings.Join(pb.assignments, ", "), len(pb.args))
	res, err := r.db.ExecContext(ctx, query, pb.args...)
	if err != nil {
		return fmt.Errorf("update opportunity: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SoftDelete marks an opportunity inactive instead of removing the row.
func (r *OpportunityRepository) SoftDelete(ctx context.Context, id int64) error {
	const query = `UPDATE opportunities SET is_active = FALSE WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("soft delete opportunity: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// AdminList returns all opportunities joined with their poster, newest
// first, including inactive ones.
func (r *OpportunityRepository) AdminList(ctx context.Context) ([]models.AdminOpportunityRow, error) {
	const query = `SELECT o.id, o.title, o.company, o.type, o.is_active, o.created_at, u.name AS posted_by_name, u.email AS posted_by_email
		FROM opportunities o
		LEFT JOIN users u ON o.posted_by = u.id
		ORDER BY o.created_at DESC`
	var rows []models.AdminOpportunityRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("admin list opportunities: %w", err)
	}
	return rows, nil
}
