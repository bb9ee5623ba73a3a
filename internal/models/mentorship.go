package models

import "time"

// MentorshipStatus enumerates the mentorship request lifecycle.
type MentorshipStatus string

const (
	MentorshipPending   MentorshipStatus = "pending"
	MentorshipAccepted  MentorshipStatus = "accepted"
	MentorshipRejected  MentorshipStatus = "rejected"
	MentorshipCompleted MentorshipStatus = "completed"
)

// Valid reports whether the status is one of the known values.
func (s MentorshipStatus) Valid() bool {
	switch s {
	case MentorshipPending, MentorshipAccepted, MentorshipRejected, MentorshipCompleted:
		return true
	}
	return false
}

// MentorshipRequest connects a student to an alumni mentor.
type MentorshipRequest struct {
	ID        int64            `db:"id" json:"id"`
	StudentID int64            `db:"student_id" json:"student_id"`
	MentorID  int64            `db:"mentor_id" json:"mentor_id"`
	Subject   string           `db:"subject" json:"subject"`
	Message   string           `db:"message" json:"message"`
	Status    MentorshipStatus `db:"status" json:"status"`
	CreatedAt time.Time        `db:"created_at" json:"created_at"`

	StudentName *string `db:"student_name" json:"student_name,omitempty"`
	MentorName  *string `db:"mentor_name" json:"mentor_name,omitempty"`
}

// CreateMentorshipRequest is the student-facing request payload.
type CreateMentorshipRequest struct {
	MentorID int64  `json:"mentor_id" validate:"required"`
	Subject  string `json:"subject" validate:"required"`
	Message  string `json:"message" validate:"required"`
}

// UpdateMentorshipStatusRequest transitions a request through its state
// machine.
type UpdateMentorshipStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected completed"`
}

// Mentor is the public directory entry for available alumni mentors.
type Mentor struct {
	ID       int64   `db:"id" json:"id"`
	Name     string  `db:"name" json:"name"`
	Company  *string `db:"company" json:"company"`
	Position *string `db:"position" json:"position"`
	Bio      *string `db:"bio" json:"bio"`
	Skills   *string `db:"skills" json:"skills"`
}
