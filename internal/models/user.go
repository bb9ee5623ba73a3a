package models

import "time"

// UserRole represents the available roles for the RBAC system.
type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleAlumni  UserRole = "alumni"
	RoleAdmin   UserRole = "admin"
)

// Valid reports whether the role is one of the known values.
func (r UserRole) Valid() bool {
	switch r {
	case RoleStudent, RoleAlumni, RoleAdmin:
		return true
	}
	return false
}

// User represents an application user stored in the users table.
type User struct {
	ID             int64     `db:"id" json:"id"`
	Email          string    `db:"email" json:"email"`
	PasswordHash   string    `db:"password_hash" json:"-"`
	Name           string    `db:"name" json:"name"`
	Role           UserRole  `db:"role" json:"role"`
	GraduationYear *int      `db:"graduation_year" json:"graduation_year"`
	Major          *string   `db:"major" json:"major"`
	Company        *string   `db:"company" json:"company"`
	Position       *string   `db:"position" json:"position"`
	Bio            *string   `db:"bio" json:"bio"`
	Skills         *string   `db:"skills" json:"skills"`
	CGPA           *float64  `db:"cgpa" json:"cgpa"`
	Category       *string   `db:"category" json:"category"`
	Phone          *string   `db:"phone" json:"phone"`
	EmailVerified  bool      `db:"email_verified" json:"email_verified"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// PublicProfile strips contact details for the open directory. Email and
// phone stay visible only to the profile owner and admins.
func (u User) PublicProfile() User {
	u.Email = ""
	u.Phone = nil
	return u
}

// UserFilter captures filtering criteria for listing users.
type UserFilter struct {
	Role   *UserRole
	Search string
}

// UserPatch is an explicit partial-update representation. Nil fields are
// left untouched; each field maps to exactly one allow-listed column.
type UserPatch struct {
	Name           *string  `json:"name"`
	Email          *string  `json:"email"`
	Role           *string  `json:"role"`
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

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
