package model

import "time"

// Job represents a job posting owned by a recruiter.
// Analytics treats jobs as immutable: lifecycle fields (published, archived)
// live with the CRUD collaborator and are not read here.
type Job struct {
	ID              string    `json:"id"                          db:"id"`
	Title           string    `json:"title"                       db:"title"`
	PostedBy        string    `json:"posted_by"                   db:"posted_by"`
	HiringManagerID *string   `json:"hiring_manager_id,omitempty" db:"hiring_manager_id"`
	CreatedAt       time.Time `json:"created_at"                  db:"created_at"`
}

// CreateJobRequest carries the fields needed to create a job posting.
type CreateJobRequest struct {
	Title           string  `json:"title"`
	PostedBy        string  `json:"posted_by"`
	HiringManagerID *string `json:"hiring_manager_id,omitempty"`
}

// JobListOptions filters job listings. Nil fields apply no filter, so an
// admin caller uses the zero value.
type JobListOptions struct {
	PostedBy        *string
	HiringManagerID *string
	JobID           *string
}
