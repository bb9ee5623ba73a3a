package models

// DashboardStats is the single-row aggregate backing the admin dashboard.
type DashboardStats struct {
	TotalStudents                int `db:"total_students"`
	TotalAlumni                  int `db:"total_alumni"`
	TotalAdmins                  int `db:"total_admins"`
	ActiveOpportunities          int `db:"active_opportunities"`
	ActiveScholarships           int `db:"active_scholarships"`
	PendingMentorships           int `db:"pending_mentorships"`
	TotalApplications            int `db:"total_applications"`
	TotalScholarshipApplications int `db:"total_scholarship_applications"`
	UnreadMessages               int `db:"unread_messages"`
	TotalStories                 int `db:"total_stories"`
}

// DashboardResponse groups the counters by area for API consumption.
type DashboardResponse struct {
	Users struct {
		TotalStudents int `json:"total_students"`
		TotalAlumni   int `json:"total_alumni"`
		TotalAdmins   int `json:"total_admins"`
		Total         int `json:"total"`
	} `json:"users"`
	Opportunities struct {
		Active int `json:"active"`
	} `json:"opportunities"`
	Scholarships struct {
		Active            int `json:"active"`
		TotalApplications int `json:"total_applications"`
	} `json:"scholarships"`
	Mentorships struct {
		Pending int `json:"pending"`
	} `json:"mentorships"`
	Applications struct {
		Total int `json:"total"`
	} `json:"applications"`
	Messages struct {
		Unread int `json:"unread"`
	} `json:"messages"`
	Stories struct {
		Total int `json:"total"`
	} `json:"stories"`
}

// Grouped converts the flat aggregate row into the response shape.
func (s DashboardStats) Grouped() DashboardResponse {
	var out DashboardResponse
	out.Users.TotalStudents = s.TotalStudents
	out.Users.TotalAlumni = s.TotalAlumni
	out.Users.TotalAdmins = s.TotalAdmins
	out.Users.Total = s.TotalStudents + s.TotalAlumni + s.TotalAdmins
	out.Opportunities.Active = s.ActiveOpportunities
	out.Scholarships.Active = s.ActiveScholarships
	out.Scholarships.TotalApplications = s.TotalScholarshipApplications
	out.Mentorships.Pending = s.PendingMentorships
	out.Applications.Total = s.TotalApplications
	out.Messages.Unread = s.UnreadMessages
	out.Stories.Total = s.TotalStories
	return out
}

// CreateUserRequest is the admin payload for provisioning users directly.
type CreateUserRequest struct {
	Email          string   `json:"email" validate:"required,email"`
	Password       string   `json:"password" validate:"required,min=6"`
	Name           string   `json:"name" validate:"required"`
	Role           string   `json:"role" validate:"required,oneof=student alumni admin"`
	GraduationYear *int     `json:"graduation_year"`
	Major          *string  `json:"major"`
	Company        *string  `json:"company"`
	Position       *string  `json:"position"`
	Bio            *string  `json:"bio"`
	Skills         *string  `json:"skills"`
	CGPA           *float64 `json:"cgpa"`
	Category       *string  `json:"category"`
	Phone          *string  `json:"phone"`
}
