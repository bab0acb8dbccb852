package model

import "strings"

// UserRole mirrors the role enum on the users table.
type UserRole string

const (
	UserRoleAdmin         UserRole = "admin"
	UserRoleRecruiter     UserRole = "recruiter"
	UserRoleHiringManager UserRole = "hiring_manager"
)

// Valid reports whether the user role is supported.
func (r UserRole) Valid() bool {
	switch r {
	case UserRoleAdmin, UserRoleRecruiter, UserRoleHiringManager:
		return true
	default:
		return false
	}
}

// User represents an account referenced by jobs and stage transitions.
// Accounts are managed by the identity collaborator; the analytics service
// only reads them to resolve display names and ownership.
type User struct {
	ID        string   `json:"id"         db:"id"`
	FirstName string   `json:"first_name" db:"first_name"`
	LastName  string   `json:"last_name"  db:"last_name"`
	Email     string   `json:"email"      db:"email"`
	Role      UserRole `json:"role"       db:"role"`
}

// DisplayName returns the user's full name, falling back to email when the
// name fields are empty.
func (u User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}
