package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hirewire/hirewire-api/internal/core"
	"github.com/hirewire/hirewire-api/internal/domain/auth"
	"github.com/hirewire/hirewire-api/internal/domain/model"
)

// ErrForbidden is returned when the caller's role cannot see any analytics.
var ErrForbidden = errors.New("caller is not allowed to view analytics")

// DebugLogger is a minimal logger interface for optional debug logging.
type DebugLogger interface {
	Debug(msg string, keyvals ...any)
}

// AnalyticsRepos groups the repositories the analytics service reads from.
type AnalyticsRepos struct {
	Jobs         core.JobRepository
	Applications core.ApplicationRepository
	Stages       core.StageRepository
	Transitions  core.TransitionRepository
	Users        core.UserRepository
}

// AnalyticsServiceOptions groups dependencies for AnalyticsService.
type AnalyticsServiceOptions struct {
	Repos  AnalyticsRepos
	Logger DebugLogger // optional
}

// AnalyticsService computes read-only funnel reports from the stage
// transition log. Every request loads its own dataset snapshot; nothing is
// cached across requests, so stage edits are visible on the next query.
type AnalyticsService struct {
	repos AnalyticsRepos
	log   DebugLogger
}

// NewAnalyticsService constructs a new AnalyticsService.
func NewAnalyticsService(opts AnalyticsServiceOptions) (*AnalyticsService, error) {
	r := opts.Repos
	if r.Jobs == nil || r.Applications == nil || r.Stages == nil || r.Transitions == nil || r.Users == nil {
		return nil, errors.New("analytics service requires all repositories")
	}
	return &AnalyticsService{repos: r, log: opts.Logger}, nil
}

// analyticsDataset is the request-scoped snapshot every engine runs against.
type analyticsDataset struct {
	query    model.AnalyticsQuery
	jobs     []*model.Job
	jobsByID map[string]*model.Job
	// stages sorted by stage_order asc, id asc
	stages     []model.PipelineStage
	stagesByID map[string]model.PipelineStage
	// apps applied inside the query window; the default engine scope
	apps []*model.Application
	// appsAll additionally holds applications that predate the window start.
	// Time-to-fill scans these because its window selects hire events, and a
	// candidate hired this quarter may well have applied last quarter.
	appsAll []*model.Application
	// transitions per application, sorted by changed_at asc, id asc
	transitions map[string][]*model.StageTransition
}

// scopeFor translates the caller's session into a job filter. Admins see
// everything, recruiters their own postings, hiring managers the jobs they
// own. Guests get nothing.
func scopeFor(session *auth.Session, q model.AnalyticsQuery) (model.JobListOptions, error) {
	if session == nil {
		return model.JobListOptions{}, ErrForbidden
	}
	opts := model.JobListOptions{JobID: q.JobID}
	switch session.Role {
	case auth.RoleAdmin:
	case auth.RoleRecruiter:
		id := session.UserID
		opts.PostedBy = &id
	case auth.RoleHiringManager:
		id := session.UserID
		opts.HiringManagerID = &id
	default:
		return model.JobListOptions{}, ErrForbidden
	}
	return opts, nil
}

// loadDataset fetches everything a report needs. Stages and jobs load in
// parallel; applications and their transitions follow once job IDs are known.
func (s *AnalyticsService) loadDataset(
	ctx context.Context,
	session *auth.Session,
	q model.AnalyticsQuery,
) (*analyticsDataset, error) {
	scope, err := scopeFor(session, q)
	if err != nil {
		return nil, err
	}

	ds := &analyticsDataset{
		query:       q,
		jobsByID:    map[string]*model.Job{},
		stagesByID:  map[string]model.PipelineStage{},
		transitions: map[string][]*model.StageTransition{},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stages, err := s.repos.Stages.ListAll(gctx)
		if err != nil {
			return fmt.Errorf("load stages: %w", err)
		}
		flat := make([]model.PipelineStage, len(stages))
		for i := range stages {
			flat[i] = *stages[i]
		}
		ds.stages = model.SortStagesByOrder(flat)
		return nil
	})
	g.Go(func() error {
		jobs, err := s.repos.Jobs.List(gctx, scope)
		if err != nil {
			return fmt.Errorf("load jobs: %w", err)
		}
		ds.jobs = jobs
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := range ds.stages {
		ds.stagesByID[ds.stages[i].ID] = ds.stages[i]
	}
	jobIDs := make([]string, 0, len(ds.jobs))
	for _, j := range ds.jobs {
		ds.jobsByID[j.ID] = j
		jobIDs = append(jobIDs, j.ID)
	}
	if len(jobIDs) == 0 {
		return ds, nil
	}

	apps, err := s.repos.Applications.ListByJobIDs(ctx, jobIDs, q)
	if err != nil {
		return nil, fmt.Errorf("load applications: %w", err)
	}
	ds.appsAll = apps
	for _, a := range apps {
		if q.InRange(a.AppliedAt) {
			ds.apps = append(ds.apps, a)
		}
	}
	if len(apps) == 0 {
		return ds, nil
	}

	appIDs := make([]string, len(apps))
	for i, a := range apps {
		appIDs[i] = a.ID
	}
	transitions, err := s.repos.Transitions.ListByApplicationIDs(ctx, appIDs)
	if err != nil {
		return nil, fmt.Errorf("load transitions: %w", err)
	}
	ds.transitions = groupTransitions(transitions)

	if s.log != nil {
		s.log.Debug("analytics dataset loaded",
			"jobs", len(ds.jobs), "applications", len(ds.apps), "transitions", len(transitions))
	}
	return ds, nil
}

// HiringMetrics computes the combined time-to-fill and time-in-stage report.
func (s *AnalyticsService) HiringMetrics(
	ctx context.Context,
	session *auth.Session,
	q model.AnalyticsQuery,
) (*model.HiringMetricsReport, error) {
	ds, err := s.loadDataset(ctx, session, q)
	if err != nil {
		return nil, err
	}

	totalHires := 0
	for _, a := range ds.apps {
		if a.Hired() {
			totalHires++
		}
	}
	report := &model.HiringMetricsReport{
		TimeToFill:        computeTimeToFill(ds),
		TimeInStage:       computeTimeInStage(ds),
		TotalApplications: len(ds.apps),
		TotalHires:        totalHires,
		ConversionRate:    ratioPercent(totalHires, len(ds.apps)),
	}
	return report, nil
}

// Dropoff computes the funnel occupancy snapshot with conversion rates.
func (s *AnalyticsService) Dropoff(
	ctx context.Context,
	session *auth.Session,
	q model.AnalyticsQuery,
) (*model.DropoffReport, error) {
	ds, err := s.loadDataset(ctx, session, q)
	if err != nil {
		return nil, err
	}
	return computeDropoff(ds), nil
}

// SourcePerformance computes per-source application, shortlist and hire
// counts with conversion rates.
func (s *AnalyticsService) SourcePerformance(
	ctx context.Context,
	session *auth.Session,
	q model.AnalyticsQuery,
) ([]model.SourcePerformanceRow, error) {
	ds, err := s.loadDataset(ctx, session, q)
	if err != nil {
		return nil, err
	}
	return computeSourcePerformance(ds), nil
}

// ReviewLatency computes how long candidates wait in review stages.
func (s *AnalyticsService) ReviewLatency(
	ctx context.Context,
	session *auth.Session,
	params ReviewLatencyParams,
) (*model.ReviewLatencyReport, error) {
	ds, err := s.loadDataset(ctx, session, params.Query)
	if err != nil {
		return nil, err
	}
	return computeReviewLatency(ds, params.Options), nil
}

// ReviewLatencyParams groups the query and tuning knobs for ReviewLatency.
type ReviewLatencyParams struct {
	Query   model.AnalyticsQuery
	Options model.ReviewLatencyOptions
}

// TeamPerformance computes recruiter and hiring-manager rollups.
func (s *AnalyticsService) TeamPerformance(
	ctx context.Context,
	session *auth.Session,
	q model.AnalyticsQuery,
) (*model.TeamPerformanceReport, error) {
	ds, err := s.loadDataset(ctx, session, q)
	if err != nil {
		return nil, err
	}
	return s.computeTeamPerformance(ctx, ds)
}

// StageHistory returns raw transition rows for audit views. The repository
// caps the row count regardless of the requested limit. Non-admin callers
// only see transitions belonging to their own jobs.
func (s *AnalyticsService) StageHistory(
	ctx context.Context,
	session *auth.Session,
	opts model.StageHistoryListOptions,
) ([]*model.StageTransition, error) {
	scope, err := scopeFor(session, model.AnalyticsQuery{})
	if err != nil {
		return nil, err
	}
	if scope.PostedBy != nil || scope.HiringManagerID != nil {
		jobIDs, err := s.repos.Jobs.IDs(ctx, scope)
		if err != nil {
			return nil, fmt.Errorf("resolve job scope: %w", err)
		}
		if len(jobIDs) == 0 {
			return []*model.StageTransition{}, nil
		}
		opts.JobIDs = jobIDs
	}
	rows, err := s.repos.Transitions.ListHistory(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list stage history: %w", err)
	}
	return rows, nil
}

// ratioPercent returns num/den as a percentage with one decimal, 0 when den
// is 0.
func ratioPercent(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return math.Round(float64(num)/float64(den)*1000) / 10
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// wholeDays converts a duration expressed as fractional days to the nearest
// whole day count.
func wholeDays(days float64) int {
	return int(math.Round(days))
}

// daysBetween returns the elapsed time from a to b in fractional days.
func daysBetween(a, b time.Time) float64 {
	return b.Sub(a).Hours() / 24
}
