package model

import "time"

// StageTransition is one immutable record of a pipeline-stage change for an
// application. The log is append-only; rows are only removed by the cascade
// when an application is deleted. FromStageID is nil when the application
// entered the pipeline from no prior stage.
type StageTransition struct {
	ID            string    `json:"id"                      db:"id"`
	ApplicationID string    `json:"application_id"          db:"application_id"`
	FromStageID   *string   `json:"from_stage_id,omitempty" db:"from_stage_id"`
	ToStageID     string    `json:"to_stage_id"             db:"to_stage_id"`
	ChangedAt     time.Time `json:"changed_at"              db:"changed_at"`
	ChangedBy     string    `json:"changed_by"              db:"changed_by"`
}

// StageHistoryListOptions groups filters for the raw transition listing
// endpoint. Limit is capped by the repository regardless of the value here.
type StageHistoryListOptions struct {
	ApplicationID *string
	// JobIDs restricts rows to applications belonging to these jobs; the
	// service fills it in for non-admin callers. Empty means unrestricted.
	JobIDs    []string
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
}
