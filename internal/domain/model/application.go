package model

import (
	"strings"
	"time"
)

// ApplicationStatus mirrors the status enum on the applications table.
type ApplicationStatus string

const (
	ApplicationStatusActive       ApplicationStatus = "active"
	ApplicationStatusShortlisted  ApplicationStatus = "shortlisted"
	ApplicationStatusInterviewing ApplicationStatus = "interviewing"
	ApplicationStatusHired        ApplicationStatus = "hired"
	ApplicationStatusRejected     ApplicationStatus = "rejected"
	ApplicationStatusWithdrawn    ApplicationStatus = "withdrawn"
)

// SourceUnknown is the bucket for applications without an acquisition source.
const SourceUnknown = "unknown"

// Application is one candidate's application to a job. CurrentStageID is
// nullable: legacy rows may predate pipeline assignment. StageChangedAt and
// StageChangedBy cache the last transition and are only consulted when the
// transition log has no rows for the application.
type Application struct {
	ID             string            `json:"id"                         db:"id"`
	JobID          string            `json:"job_id"                     db:"job_id"`
	CandidateName  string            `json:"candidate_name"             db:"candidate_name"`
	Source         string            `json:"source"                     db:"source"`
	Status         ApplicationStatus `json:"status"                     db:"status"`
	CurrentStageID *string           `json:"current_stage_id,omitempty" db:"current_stage_id"`
	StageChangedAt *time.Time        `json:"stage_changed_at,omitempty" db:"stage_changed_at"`
	StageChangedBy *string           `json:"stage_changed_by,omitempty" db:"stage_changed_by"`
	AppliedAt      time.Time         `json:"applied_at"                 db:"applied_at"`
}

// CreateApplicationRequest carries the fields needed to record a new
// application. Stage placement happens separately via AdvanceStage.
type CreateApplicationRequest struct {
	JobID         string `json:"job_id"`
	CandidateName string `json:"candidate_name"`
	Source        string `json:"source"`
}

// AdvanceStageParams groups parameters for ApplicationRepository.AdvanceStage
// to keep param count low.
type AdvanceStageParams struct {
	ApplicationID string
	ToStageID     string
	ChangedBy     string
	ChangedAt     time.Time
}

// SourceLabel returns the acquisition source, normalizing unlabeled
// applications to the literal "unknown" group.
func (a Application) SourceLabel() string {
	source := strings.TrimSpace(a.Source)
	if source == "" {
		return SourceUnknown
	}
	return source
}

// Shortlisted reports whether the application currently sits in a
// shortlist/interview status.
func (a Application) Shortlisted() bool {
	return a.Status == ApplicationStatusShortlisted || a.Status == ApplicationStatusInterviewing
}

// Hired reports whether the candidate was hired.
func (a Application) Hired() bool {
	return a.Status == ApplicationStatusHired
}
