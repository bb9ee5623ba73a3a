package models

import "time"

// ApplicationType distinguishes job from scholarship applications.
type ApplicationType string

const (
	ApplicationTypeJob         ApplicationType = "job"
	ApplicationTypeScholarship ApplicationType = "scholarship"
)

// Application is a generic application referencing an opportunity XOR a
// scholarship depending on its type.
type Application struct {
	ID            int64             `db:"id" json:"id"`
	ApplicantID   int64             `db:"applicant_id" json:"applicant_id"`
	OpportunityID *int64            `db:"opportunity_id" json:"opportunity_id"`
	ScholarshipID *int64            `db:"scholarship_id" json:"scholarship_id"`
	Type          ApplicationType   `db:"type" json:"type"`
	CoverLetter   string            `db:"cover_letter" json:"cover_letter"`
	Status        ApplicationStatus `db:"status" json:"status"`
	CreatedAt     time.Time         `db:"created_at" json:"created_at"`
}

// CreateApplicationRequest is the payload for submitting an application.
// OpportunityID is required for type=job, ScholarshipID for
// type=scholarship.
type CreateApplicationRequest struct {
	Type          string  `json:"type" validate:"required,oneof=job scholarship"`
	OpportunityID *int64  `json:"opportunity_id"`
	ScholarshipID *int64  `json:"scholarship_id"`
	CoverLetter   string  `json:"cover_letter" validate:"required"`
}

// ApplicationRow is the applicant-facing view joined with the target
// opportunity or scholarship.
type ApplicationRow struct {
	ID                 int64             `db:"id" json:"id"`
	Type               ApplicationType   `db:"type" json:"type"`
	Status             ApplicationStatus `db:"status" json:"status"`
	CoverLetter        string            `db:"cover_letter" json:"cover_letter"`
	OpportunityTitle   *string           `db:"opportunity_title" json:"opportunity_title"`
	OpportunityCompany *string           `db:"opportunity_company" json:"opportunity_company"`
	ScholarshipTitle   *string           `db:"scholarship_title" json:"scholarship_title"`
	ScholarshipAmount  *float64          `db:"scholarship_amount" json:"scholarship_amount"`
	CreatedAt          time.Time         `db:"created_at" json:"created_at"`
}

// AdminApplicationRow is the moderation view joined with the applicant.
type AdminApplicationRow struct {
	ID               int64             `db:"id" json:"id"`
	Type             ApplicationType   `db:"type" json:"type"`
	Status           ApplicationStatus `db:"status" json:"status"`
	ApplicantName    string            `db:"applicant_name" json:"applicant_name"`
	ApplicantEmail   string            `db:"applicant_email" json:"applicant_email"`
	OpportunityTitle *string           `db:"opportunity_title" json:"opportunity_title"`
	ScholarshipTitle *string           `db:"scholarship_title" json:"scholarship_title"`
	CreatedAt        time.Time         `db:"created_at" json:"created_at"`
}
