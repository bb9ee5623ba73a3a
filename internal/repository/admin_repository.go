package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/alumni-connect-api/internal/models"
)

// AdminRepository serves the aggregate queries behind the admin
// dashboard.
type AdminRepository struct {
	db *sqlx.DB
}

// NewAdminRepository creates a new instance of AdminRepository.
func NewAdminRepository(db *sqlx.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// DashboardStats computes all dashboard counters in a single round trip.
func (r *AdminRepository) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	const query = `SELECT
		(SELECT COUNT(*) FROM users WHERE role = 'student') AS total_students,
		(SELECT COUNT(*) FROM users WHERE role = 'alumni') AS total_alumni,
		(SELECT COUNT(*) FROM users WHERE role = 'admin') AS total_admins,
		(SELECT COUNT(*) FROM opportunities WHERE is_active = TRUE) AS active_opportunities,
		(SELECT COUNT(*) FROM scholarships WHERE status = 'active') AS active_scholarships,
		(SELECT COUNT(*) FROM mentorship_requests WHERE status = 'pending') AS pending_mentorships,
		(SELECT COUNT(*) FROM applications) AS total_applications,
		(SELECT COUNT(*) FROM scholarship_applications) AS total_scholarship_applications,
		(SELECT COUNT(*) FROM messages WHERE is_read = FALSE) AS unread_messages,
		(SELECT COUNT(*) FROM stories) AS total_stories`
	var stats models.DashboardStats
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	return &stats, nil
}
