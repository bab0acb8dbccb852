// Package devseed populates a development database with a small but coherent
// hiring funnel: users, jobs, a six-stage pipeline, and applications with
// realistic transition histories, so every analytics endpoint returns real
// numbers out of the box.
package devseed

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/hirewire/hirewire-api/internal/data"
	"github.com/hirewire/hirewire-api/internal/domain/model"
	"github.com/hirewire/hirewire-api/internal/service"
)

// Services bundles the dependencies needed for development seeding.
type Services struct {
	DB           *sql.DB
	jobs         *data.JobRepo
	applications *data.ApplicationRepo
	stages       *data.StageRepo
	auth         *service.AuthService
}

// NewServices constructs all required repositories for seeding using the
// provided DB. Auth is optional; without it no dev session is minted.
func NewServices(db *sql.DB, auth *service.AuthService) Services {
	return Services{
		DB:           db,
		jobs:         data.NewJobRepo(db),
		applications: data.NewApplicationRepo(db),
		stages:       data.NewStageRepo(db),
		auth:         auth,
	}
}

type seededUser struct {
	key       string
	firstName string
	lastName  string
	email     string
	role      model.UserRole
	groups    []string
}

var seedUsers = []seededUser{
	{key: "admin", firstName: "Avery", lastName: "Ops", email: "avery@hirewire.dev", role: model.UserRoleAdmin, groups: []string{"hirewire-admins"}},
	{key: "recruiter", firstName: "Rita", lastName: "Reyes", email: "rita@hirewire.dev", role: model.UserRoleRecruiter, groups: []string{"hirewire-recruiters"}},
	{key: "recruiter2", firstName: "Sam", lastName: "Osei", email: "sam@hirewire.dev", role: model.UserRoleRecruiter, groups: []string{"hirewire-recruiters"}},
	{key: "hm", firstName: "Mia", lastName: "Huang", email: "mia@hirewire.dev", role: model.UserRoleHiringManager, groups: []string{"hirewire-managers"}},
}

type seededStage struct {
	key  string
	name string
	req  model.CreateStageRequest
}

var seedStages = []seededStage{
	{key: "applied", name: "Applied", req: model.CreateStageRequest{Name: "Applied", Order: 1, Role: model.StageRoleApplied}},
	{key: "screen", name: "Phone Screen", req: model.CreateStageRequest{Name: "Phone Screen", Order: 2, Role: model.StageRoleCustom}},
	{key: "review", name: "HM Review", req: model.CreateStageRequest{Name: "HM Review", Order: 3, Role: model.StageRoleReview}},
	{key: "onsite", name: "Onsite", req: model.CreateStageRequest{Name: "Onsite", Order: 4, Role: model.StageRoleCustom}},
	{key: "offer", name: "Offer", req: model.CreateStageRequest{Name: "Offer", Order: 5, Role: model.StageRoleOffer}},
	{key: "hired", name: "Hired", req: model.CreateStageRequest{Name: "Hired", Order: 6, Role: model.StageRoleHired, IsTerminal: true}},
}

// Run executes the full development seeding workflow against the provided DB.
// Seeding is idempotent: existing users and stages are reused, and new
// applications are only added when the database has none.
func Run(ctx context.Context, svcs Services, logger *slog.Logger) error {
	users, err := seedUserRows(ctx, svcs.DB, logger)
	if err != nil {
		return fmt.Errorf("seed users: %w", err)
	}

	stages, err := seedStageRows(ctx, svcs, logger)
	if err != nil {
		return fmt.Errorf("seed stages: %w", err)
	}

	if err := seedFunnel(ctx, svcs, users, stages, logger); err != nil {
		return fmt.Errorf("seed funnel: %w", err)
	}

	if svcs.auth != nil {
		if err := mintDevSessions(ctx, svcs.auth, users, logger); err != nil {
			if logger != nil {
				logger.WarnContext(ctx, "failed to mint dev sessions", "error", err)
			}
		}
	}

	return nil
}

// seedUserRows inserts the demo accounts. Account writes normally belong to
// the identity gateway, so this goes straight to SQL rather than growing a
// write method on the read-only user repository.
func seedUserRows(ctx context.Context, db *sql.DB, logger *slog.Logger) (map[string]string, error) {
	ids := make(map[string]string, len(seedUsers))
	for _, u := range seedUsers {
		var id string
		err := db.QueryRowContext(ctx, `
			INSERT INTO users (first_name, last_name, email, role)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (email) DO UPDATE SET role = EXCLUDED.role
			RETURNING id`,
			u.firstName, u.lastName, u.email, u.role,
		).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("insert user %s: %w", u.email, err)
		}
		ids[u.key] = id
		if logger != nil {
			logger.InfoContext(ctx, "seeded user", "email", u.email, "role", u.role)
		}
	}
	return ids, nil
}

func seedStageRows(ctx context.Context, svcs Services, logger *slog.Logger) (map[string]string, error) {
	existing, err := svcs.stages.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]string, len(existing))
	for _, s := range existing {
		byName[s.Name] = s.ID
	}

	ids := make(map[string]string, len(seedStages))
	for _, s := range seedStages {
		if id, ok := byName[s.name]; ok {
			ids[s.key] = id
			continue
		}
		req := s.req
		created, createErr := svcs.stages.Create(ctx, &req)
		if createErr != nil {
			return nil, fmt.Errorf("create stage %s: %w", s.name, createErr)
		}
		ids[s.key] = created.ID
		if logger != nil {
			logger.InfoContext(ctx, "seeded pipeline stage", "name", s.name, "order", req.Order)
		}
	}
	return ids, nil
}

// journey describes one seeded candidate: which job, where they came from,
// how far through the pipeline they got (stage keys, in order), with a day
// between hops, and their final status.
type journey struct {
	job       string
	candidate string
	source    string
	path      []string
	status    model.ApplicationStatus
}

var seedJourneys = []journey{
	{job: "backend", candidate: "Dana Fox", source: "referral", path: []string{"applied", "screen", "review", "onsite", "offer", "hired"}, status: model.ApplicationStatusHired},
	{job: "backend", candidate: "Eli Novak", source: "job_board", path: []string{"applied", "screen", "review"}, status: model.ApplicationStatusInterviewing},
	{job: "backend", candidate: "Faye Lin", source: "job_board", path: []string{"applied", "screen"}, status: model.ApplicationStatusRejected},
	{job: "backend", candidate: "Gus Adler", source: "", path: []string{"applied"}, status: model.ApplicationStatusActive},
	{job: "design", candidate: "Hana Sato", source: "referral", path: []string{"applied", "review", "offer", "hired"}, status: model.ApplicationStatusHired},
	{job: "design", candidate: "Ivan Petrov", source: "agency", path: []string{"applied", "review"}, status: model.ApplicationStatusShortlisted},
	{job: "design", candidate: "Jo Keller", source: "agency", path: []string{"applied"}, status: model.ApplicationStatusWithdrawn},
}

func seedFunnel(
	ctx context.Context,
	svcs Services,
	users map[string]string,
	stages map[string]string,
	logger *slog.Logger,
) error {
	var count int
	if err := svcs.DB.QueryRowContext(ctx, "SELECT count(*) FROM applications").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		if logger != nil {
			logger.InfoContext(ctx, "applications already present; skipping funnel seed", "count", count)
		}
		return nil
	}

	hm := users["hm"]
	jobs := map[string]*model.CreateJobRequest{
		"backend": {Title: "Senior Backend Engineer", PostedBy: users["recruiter"], HiringManagerID: &hm},
		"design":  {Title: "Product Designer", PostedBy: users["recruiter2"], HiringManagerID: &hm},
	}

	jobIDs := make(map[string]string, len(jobs))
	for key, req := range jobs {
		created, err := svcs.jobs.Create(ctx, req)
		if err != nil {
			return fmt.Errorf("create job %s: %w", key, err)
		}
		jobIDs[key] = created.ID
	}

	// Spread applications over the last month so date filters have
	// something to bite on.
	base := time.Now().UTC().AddDate(0, -1, 0)
	for i, j := range seedJourneys {
		appliedAt := base.AddDate(0, 0, 2*i)
		app, err := svcs.applications.Create(ctx, &model.CreateApplicationRequest{
			JobID:         jobIDs[j.job],
			CandidateName: j.candidate,
			Source:        j.source,
		})
		if err != nil {
			return fmt.Errorf("create application for %s: %w", j.candidate, err)
		}

		for hop, stageKey := range j.path {
			_, err = svcs.applications.AdvanceStage(ctx, model.AdvanceStageParams{
				ApplicationID: app.ID,
				ToStageID:     stages[stageKey],
				ChangedBy:     users["recruiter"],
				ChangedAt:     appliedAt.AddDate(0, 0, hop),
			})
			if err != nil {
				return fmt.Errorf("advance %s to %s: %w", j.candidate, stageKey, err)
			}
		}

		if j.status != model.ApplicationStatusActive {
			if err := svcs.applications.UpdateStatus(ctx, app.ID, j.status); err != nil {
				return fmt.Errorf("set status for %s: %w", j.candidate, err)
			}
		}
	}

	if logger != nil {
		logger.InfoContext(ctx, "seeded hiring funnel",
			"jobs", len(jobIDs), "applications", len(seedJourneys))
	}
	return nil
}

// mintDevSessions writes a ready-to-use session per seeded account so the API
// can be exercised with a plain cookie, no gateway round-trip needed.
func mintDevSessions(
	ctx context.Context,
	auth *service.AuthService,
	users map[string]string,
	logger *slog.Logger,
) error {
	for _, u := range seedUsers {
		session, err := auth.MintDevSession(ctx, service.MintDevSessionInput{
			UserID:    users[u.key],
			FirstName: u.firstName,
			LastName:  u.lastName,
			Email:     u.email,
			Groups:    u.groups,
		})
		if err != nil {
			return fmt.Errorf("mint session for %s: %w", u.email, err)
		}
		if logger != nil {
			logger.InfoContext(ctx, "minted dev session",
				"email", u.email, "role", session.Role, "session_id", session.ID)
		}
	}
	return nil
}
