package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/alumni-connect-api/internal/models"
)

// searchResultCap bounds the federated result set across all entity
// types.
const searchResultCap = 50

// SearchRepository runs the federated ILIKE search across users,
// opportunities, mentorship requests and scholarships.
type SearchRepository struct {
	db *sqlx.DB
}

// NewSearchRepository creates a new instance of SearchRepository.
func NewSearchRepository(db *sqlx.DB) *SearchRepository {
	return &SearchRepository{db: db}
}

// Search matches the pattern against every searchable entity type and
// returns up to searchResultCap rows. The pattern must already carry its
// ILIKE wildcards.
func (r *SearchRepository) Search(ctx context.Context, pattern string) ([]models.SearchResult, error) {
	query := fmt.Sprintf(`
		SELECT 'student' AS type, id, name AS title, bio AS description, major, cgpa,
			NULL::text AS company, NULL::numeric AS cgpa_requirement
		FROM users
		WHERE role = 'student' AND (name ILIKE $1 OR major ILIKE $1 OR bio ILIKE $1)
	UNION ALL
		SELECT 'alumni' AS type, id, name AS title, bio AS description, major, NULL::numeric AS cgpa,
			company, NULL::numeric AS cgpa_requirement
		FROM users
		WHERE role = 'alumni' AND (name ILIKE $1 OR company ILIKE $1 OR position ILIKE $1 OR bio ILIKE $1)
	UNION ALL
		SELECT 'opportunity' AS type, id, title, description, NULL::text AS major, NULL::numeric AS cgpa,
			company, NULL::numeric AS cgpa_requirement
		FROM opportunities
		WHERE is_active = TRUE AND (title ILIKE $1 OR company ILIKE $1 OR description ILIKE $1 OR requirements ILIKE $1)
	UNION ALL
		SELECT 'scholarship' AS type, id, title, description, NULL::text AS major, NULL::numeric AS cgpa,
			NULL::text AS company, cgpa_requirement
		FROM scholarships
		WHERE status = 'active' AND (title ILIKE $1 OR description ILIKE $1 OR eligibility_criteria ILIKE $1)
	UNION ALL
		SELECT 'mentorship' AS type, id, subject AS title, message AS description, NULL::text AS major, NULL::numeric AS cgpa,
			NULL::text AS company, NULL::numeric AS cgpa_requirement
		FROM mentorship_requests
		WHERE subject ILIKE $1 OR message ILIKE $1
	LIMIT %d`, searchResultCap)

	var results []models.SearchResult
	if err := r.db.SelectContext(ctx, &results, query, pattern); err != nil {
		return nil, fmt.Errorf("federated search: %w", err)
	}
	return results, nil
}
