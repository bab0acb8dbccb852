package core

import (
	"context"

	"github.com/hirewire/hirewire-api/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// These interfaces define the contracts between the service layer and data layer.
// Service implementations should depend on these interfaces, not concrete implementations.

// JobRepository defines the interface for job posting data operations.
type JobRepository interface {
	Create(ctx context.Context, req *model.CreateJobRequest) (*model.Job, error)
	GetByID(ctx context.Context, id string) (*model.Job, error)
	// List returns jobs visible to the caller. Nil filter fields mean "no filter":
	// a recruiter passes PostedBy, a hiring manager passes HiringManagerID, an
	// admin passes neither.
	List(ctx context.Context, opts model.JobListOptions) ([]*model.Job, error)
	// IDs returns just the job IDs matching opts, for scope resolution before
	// the heavier analytics queries run.
	IDs(ctx context.Context, opts model.JobListOptions) ([]string, error)
}

// ApplicationRepository defines the interface for application data operations.
type ApplicationRepository interface {
	Create(ctx context.Context, req *model.CreateApplicationRequest) (*model.Application, error)
	GetByID(ctx context.Context, id string) (*model.Application, error)
	// ListByJobIDs returns all applications for the given jobs applied on or
	// before the query window end. The window's lower bound is applied by the
	// caller per engine, since time-to-fill windows hire events rather than
	// application dates.
	ListByJobIDs(ctx context.Context, jobIDs []string, q model.AnalyticsQuery) ([]*model.Application, error)
	// AdvanceStage moves an application to a new stage and records the
	// transition atomically. It returns the created transition row.
	AdvanceStage(ctx context.Context, params model.AdvanceStageParams) (*model.StageTransition, error)
	UpdateStatus(ctx context.Context, id string, status model.ApplicationStatus) error
}

// StageRepository defines the interface for pipeline stage data operations.
type StageRepository interface {
	Create(ctx context.Context, req *model.CreateStageRequest) (*model.PipelineStage, error)
	GetByID(ctx context.Context, id string) (*model.PipelineStage, error)
	// ListAll returns every pipeline stage ordered by stage_order asc, id asc.
	ListAll(ctx context.Context) ([]*model.PipelineStage, error)
}

// TransitionRepository defines the interface for the append-only stage
// transition log.
type TransitionRepository interface {
	// ListByApplicationIDs returns transitions for the given applications
	// ordered by changed_at asc, id asc so interval reconstruction is
	// deterministic under duplicate timestamps.
	ListByApplicationIDs(ctx context.Context, applicationIDs []string) ([]*model.StageTransition, error)
	// ListHistory returns transitions matching opts, newest first, capped at
	// opts.Limit rows.
	ListHistory(ctx context.Context, opts model.StageHistoryListOptions) ([]*model.StageTransition, error)
}

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
	// GetByIDs batch-loads users so report builders avoid per-row lookups.
	// Unknown IDs are simply absent from the result map.
	GetByIDs(ctx context.Context, ids []string) (map[string]*model.User, error)
}
