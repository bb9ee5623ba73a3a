package models

import "time"

// ScholarshipStatus enumerates the lifecycle of a scholarship.
type ScholarshipStatus string

const (
	ScholarshipActive   ScholarshipStatus = "active"
	ScholarshipInactive ScholarshipStatus = "inactive"
)

// Scholarship represents a scholarship offering.
type Scholarship struct {
	ID                  int64             `db:"id" json:"id"`
	Title               string            `db:"title" json:"title"`
	Description         *string           `db:"description" json:"description"`
	EligibilityCriteria *string           `db:"eligibility_criteria" json:"eligibility_criteria"`
	CGPARequirement     *float64          `db:"cgpa_requirement" json:"cgpa_requirement"`
	CategoryRequirement *string           `db:"category_requirement" json:"category_requirement"`
	Amount              float64           `db:"amount" json:"amount"`
	Deadline            *time.Time        `db:"deadline" json:"deadline"`
	Status              ScholarshipStatus `db:"status" json:"status"`
	CreatedBy           int64             `db:"created_by" json:"created_by"`
	CreatedAt           time.Time         `db:"created_at" json:"created_at"`

	CreatedByName  *string `db:"created_by_name" json:"created_by_name,omitempty"`
	CreatedByEmail *string `db:"created_by_email" json:"created_by_email,omitempty"`
}

// CreateScholarshipRequest is the payload for publishing a scholarship.
type CreateScholarshipRequest struct {
	Title               string     `json:"title" validate:"required"`
	Description         *string    `json:"description"`
	EligibilityCriteria *string    `json:"eligibility_criteria"`
	CGPARequirement     *float64   `json:"cgpa_requirement" validate:"omitempty,gte=0,lte=10"`
	CategoryRequirement *string    `json:"category_requirement"`
	Amount              *float64   `json:"amount" validate:"required,gt=0"`
	Deadline            *time.Time `json:"deadline"`
	Status              *string    `json:"status" validate:"omitempty,oneof=active inactive"`
}

// ScholarshipPatch carries optional updates for an existing scholarship.
type ScholarshipPatch struct {
	Title               *string    `json:"title"`
	Description         *string    `json:"description"`
	EligibilityCriteria *string    `json:"eligibility_criteria"`
	CGPARequirement     *float64   `json:"cgpa_requirement"`
	CategoryRequirement *string    `json:"category_requirement"`
	Amount              *float64   `json:"amount"`
	Deadline            *time.Time `json:"deadline"`
	Status              *string    `json:"status"`
}

// ApplicationStatus enumerates review states shared by scholarship and job
// applications.
type ApplicationStatus string

const (
	ApplicationSubmitted   ApplicationStatus = "submitted"
	ApplicationUnderReview ApplicationStatus = "under_review"
	ApplicationApproved    ApplicationStatus = "approved"
	ApplicationRejected    ApplicationStatus = "rejected"
)

// Valid reports whether the status is one of the known values.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationSubmitted, ApplicationUnderReview, ApplicationApproved, ApplicationRejected:
		return true
	}
	return false
}

// ScholarshipApplication ties a student to a scholarship. At most one
// application may exist per (student, scholarship) pair.
type ScholarshipApplication struct {
	ID              int64             `db:"id" json:"id"`
	StudentID       int64             `db:"student_id" json:"student_id"`
	ScholarshipID   int64             `db:"scholarship_id" json:"scholarship_id"`
	CoverLetter     *string           `db:"cover_letter" json:"cover_letter"`
	AdditionalInfo  *string           `db:"additional_info" json:"additional_info"`
	Status          ApplicationStatus `db:"status" json:"status"`
	ApplicationDate time.Time         `db:"application_date" json:"application_date"`
}

// ApplyScholarshipRequest is the student-facing application payload.
type ApplyScholarshipRequest struct {
	CoverLetter    *string `json:"cover_letter"`
	AdditionalInfo *string `json:"additional_info"`
}

// ScholarshipApplicantRow is the owner-facing review listing joined with
// the applying student.
type ScholarshipApplicantRow struct {
	ID              int64             `db:"id" json:"id"`
	StudentID       int64             `db:"student_id" json:"student_id"`
	StudentName     string            `db:"student_name" json:"student_name"`
	StudentEmail    string            `db:"student_email" json:"student_email"`
	StudentCGPA     *float64          `db:"student_cgpa" json:"student_cgpa"`
	StudentCategory *string           `db:"student_category" json:"student_category"`
	StudentMajor    *string           `db:"student_major" json:"student_major"`
	Status          ApplicationStatus `db:"status" json:"status"`
	CoverLetter     *string           `db:"cover_letter" json:"cover_letter"`
	AdditionalInfo  *string           `db:"additional_info" json:"additional_info"`
	ApplicationDate time.Time         `db:"application_date" json:"application_date"`
}

// MyScholarshipApplicationRow is the student-facing view of their own
// applications joined with the scholarship.
type MyScholarshipApplicationRow struct {
	ID                  int64             `db:"id" json:"id"`
	ScholarshipID       int64             `db:"scholarship_id" json:"scholarship_id"`
	ScholarshipTitle    string            `db:"scholarship_title" json:"scholarship_title"`
	ScholarshipAmount   *float64          `db:"scholarship_amount" json:"scholarship_amount"`
	ScholarshipDeadline *time.Time        `db:"scholarship_deadline" json:"scholarship_deadline"`
	ScholarshipStatus   ScholarshipStatus `db:"scholarship_status" json:"scholarship_status"`
	Status              ApplicationStatus `db:"status" json:"status"`
	ApplicationDate     time.Time         `db:"application_date" json:"application_date"`
}

// AdminScholarshipRow is the moderation view joined with the creator and
// application volume.
type AdminScholarshipRow struct {
	ID                  int64             `db:"id" json:"id"`
	Title               string            `db:"title" json:"title"`
	Amount              float64           `db:"amount" json:"amount"`
	Deadline            *time.Time        `db:"deadline" json:"deadline"`
	Status              ScholarshipStatus `db:"status" json:"status"`
	CGPARequirement     *float64          `db:"cgpa_requirement" json:"cgpa_requirement"`
	CategoryRequirement *string           `db:"category_requirement" json:"category_requirement"`
	CreatedByName       *string           `db:"created_by_name" json:"created_by_name"`
	CreatedByEmail      *string           `db:"created_by_email" json:"created_by_email"`
	ApplicationCount    int               `db:"application_count" json:"application_count"`
	CreatedAt           time.Time         `db:"created_at" json:"created_at"`
}
