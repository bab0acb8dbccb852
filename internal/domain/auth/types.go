package auth

// Package auth contains domain-level types for caller identity and sessions.
// Authentication itself happens in the gateway; this service only consumes
// the session records the gateway persists.

import "time"

// Role represents an application's authorization role.
// Keep string form for easy persistence and cookies.
type Role string

const (
	RoleAdmin         Role = "admin"
	RoleRecruiter     Role = "recruiter"
	RoleHiringManager Role = "hiring_manager"
	RoleGuest         Role = "guest"
)

// Session is the server-side record the auth gateway persists for an
// authenticated user. ID is an opaque session identifier.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsGuest returns true if the session role is guest.
func (s Session) IsGuest() bool { return s.Role == RoleGuest }

// SeesAllJobs reports whether the caller's analytics scope covers every job
// rather than only jobs they own.
func (s Session) SeesAllJobs() bool { return s.Role == RoleAdmin }
