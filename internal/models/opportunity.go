package models

import "time"

// Opportunity represents a job or internship posting.
type Opportunity struct {
	ID           int64     `db:"id" json:"id"`
	Title        string    `db:"title" json:"title"`
	Company      string    `db:"company" json:"company"`
	Description  string    `db:"description" json:"description"`
	Requirements *string   `db:"requirements" json:"requirements"`
	Location     *string   `db:"location" json:"location"`
	SalaryRange  *string   `db:"salary_range" json:"salary_range"`
	Type         *string   `db:"type" json:"type"`
	PostedBy     int64     `db:"posted_by" json:"posted_by"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`

	PostedByName *string `db:"posted_by_name" json:"posted_by_name,omitempty"`
}

// CreateOpportunityRequest is the payload for posting an opportunity.
type CreateOpportunityRequest struct {
	Title        string  `json:"title" validate:"required"`
	Company      string  `json:"company" validate:"required"`
	Description  string  `json:"description" validate:"required"`
	Requirements *string `json:"requirements"`
	Location     *string `json:"location"`
	SalaryRange  *string `json:"salary_range"`
	Type         *string `json:"type" validate:"omitempty,oneof=job internship"`
}

// OpportunityPatch carries optional updates for an existing posting.
type OpportunityPatch struct {
	Title        *string `json:"title"`
	Company      *string `json:"company"`
	Description  *string `json:"description"`
	Requirements *string `json:"requirements"`
	Location     *string `json:"location"`
	SalaryRange  *string `json:"salary_range"`
	Type         *string `json:"type"`
}

// OpportunityFilter narrows opportunity listings.
type OpportunityFilter struct {
	Type     *string
	PostedBy *int64
}

// AdminOpportunityRow is the moderation view joined with the poster.
type AdminOpportunityRow struct {
	ID            int64     `db:"id" json:"id"`
	Title         string    `db:"title" json:"title"`
	Company       string    `db:"company" json:"company"`
	Type          *string   `db:"type" json:"type"`
	IsActive      bool      `db:"is_active" json:"is_active"`
	PostedByName  *string   `db:"posted_by_name" json:"posted_by_name"`
	PostedByEmail *string   `db:"posted_by_email" json:"posted_by_email"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}
