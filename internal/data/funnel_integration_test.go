package data

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirewire/hirewire-api/internal/domain/model"
	apperrors "github.com/hirewire/hirewire-api/internal/errors"
	"github.com/hirewire/hirewire-api/internal/testutil"
)

func insertUser(t *testing.T, db *sql.DB, email string, role model.UserRole) string {
	t.Helper()
	var id string
	err := db.QueryRow(`
		INSERT INTO users (first_name, last_name, email, role)
		VALUES ('Test', 'User', $1, $2)
		RETURNING id`, email, role).Scan(&id)
	require.NoError(t, err)
	return id
}

func TestFunnelRepositories_Integration(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()

		recruiterID := insertUser(t, db, "recruiter@hirewire.dev", model.UserRoleRecruiter)
		hmID := insertUser(t, db, "hm@hirewire.dev", model.UserRoleHiringManager)

		stages := NewStageRepo(db)
		applied, err := stages.Create(ctx, &model.CreateStageRequest{Name: "Applied", Order: 1, Role: model.StageRoleApplied})
		require.NoError(t, err)
		review, err := stages.Create(ctx, &model.CreateStageRequest{Name: "Review", Order: 2, Role: model.StageRoleReview})
		require.NoError(t, err)
		_, err = stages.Create(ctx, &model.CreateStageRequest{Name: "Hired", Order: 3, Role: model.StageRoleHired, IsTerminal: true})
		require.NoError(t, err)

		all, err := stages.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, applied.ID, all[0].ID, "stages should come back in funnel order")
		assert.True(t, all[2].IsTerminal)

		jobs := NewJobRepo(db)
		job, err := jobs.Create(ctx, &model.CreateJobRequest{
			Title:           "Backend Engineer",
			PostedBy:        recruiterID,
			HiringManagerID: &hmID,
		})
		require.NoError(t, err)

		mine, err := jobs.List(ctx, model.JobListOptions{PostedBy: &recruiterID})
		require.NoError(t, err)
		require.Len(t, mine, 1)
		assert.Equal(t, job.ID, mine[0].ID)

		ids, err := jobs.IDs(ctx, model.JobListOptions{HiringManagerID: &hmID})
		require.NoError(t, err)
		assert.Equal(t, []string{job.ID}, ids)

		apps := NewApplicationRepo(db)
		app, err := apps.Create(ctx, &model.CreateApplicationRequest{
			JobID:         job.ID,
			CandidateName: "Dana Fox",
			Source:        "referral",
		})
		require.NoError(t, err)
		assert.Nil(t, app.CurrentStageID)

		// Only the window's upper bound filters here; the start date is the
		// service's job, since hire events may postdate old applications.
		futureStart := time.Now().Add(time.Hour)
		got, err := apps.ListByJobIDs(ctx, []string{job.ID}, model.AnalyticsQuery{StartDate: &futureStart})
		require.NoError(t, err)
		require.Len(t, got, 1)

		pastEnd := time.Now().Add(-time.Hour)
		none, err := apps.ListByJobIDs(ctx, []string{job.ID}, model.AnalyticsQuery{EndDate: &pastEnd})
		require.NoError(t, err)
		assert.Empty(t, none)

		day0 := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
		first, err := apps.AdvanceStage(ctx, model.AdvanceStageParams{
			ApplicationID: app.ID,
			ToStageID:     applied.ID,
			ChangedBy:     recruiterID,
			ChangedAt:     day0,
		})
		require.NoError(t, err)
		assert.Nil(t, first.FromStageID, "entry into the pipeline has no origin stage")

		second, err := apps.AdvanceStage(ctx, model.AdvanceStageParams{
			ApplicationID: app.ID,
			ToStageID:     review.ID,
			ChangedBy:     hmID,
			ChangedAt:     day0.AddDate(0, 0, 2),
		})
		require.NoError(t, err)
		require.NotNil(t, second.FromStageID)
		assert.Equal(t, applied.ID, *second.FromStageID)

		refreshed, err := apps.GetByID(ctx, app.ID)
		require.NoError(t, err)
		require.NotNil(t, refreshed.CurrentStageID)
		assert.Equal(t, review.ID, *refreshed.CurrentStageID)

		transitions := NewTransitionRepo(db)
		log, err := transitions.ListByApplicationIDs(ctx, []string{app.ID})
		require.NoError(t, err)
		require.Len(t, log, 2)
		assert.Equal(t, applied.ID, log[0].ToStageID, "log should be oldest first")

		history, err := transitions.ListHistory(ctx, model.StageHistoryListOptions{
			ApplicationID: &app.ID,
			Limit:         1,
		})
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, review.ID, history[0].ToStageID, "history should be newest first")

		scoped, err := transitions.ListHistory(ctx, model.StageHistoryListOptions{JobIDs: []string{job.ID}})
		require.NoError(t, err)
		assert.Len(t, scoped, 2)

		otherJob, err := transitions.ListHistory(ctx, model.StageHistoryListOptions{JobIDs: []string{uuid.New().String()}})
		require.NoError(t, err)
		assert.Empty(t, otherJob)

		users := NewUserRepo(db)
		byID, err := users.GetByIDs(ctx, []string{recruiterID, hmID})
		require.NoError(t, err)
		require.Len(t, byID, 2)
		assert.Equal(t, model.UserRoleHiringManager, byID[hmID].Role)
	})
}

func TestApplicationRepo_CreateUnknownJob(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		apps := NewApplicationRepo(db)

		_, err := apps.Create(ctx, &model.CreateApplicationRequest{
			JobID:         uuid.New().String(),
			CandidateName: "Ghost Candidate",
		})
		require.Error(t, err)

		var appErr *apperrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperrors.ErrCodeForeignKey, appErr.Code)
	})
}

func TestJobDeletionCascades(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()

		recruiterID := insertUser(t, db, "recruiter2@hirewire.dev", model.UserRoleRecruiter)
		jobs := NewJobRepo(db)
		stages := NewStageRepo(db)
		apps := NewApplicationRepo(db)

		job, err := jobs.Create(ctx, &model.CreateJobRequest{Title: "Designer", PostedBy: recruiterID})
		require.NoError(t, err)
		stage, err := stages.Create(ctx, &model.CreateStageRequest{Name: "Applied", Order: 1})
		require.NoError(t, err)
		app, err := apps.Create(ctx, &model.CreateApplicationRequest{JobID: job.ID, CandidateName: "Jo Keller"})
		require.NoError(t, err)
		_, err = apps.AdvanceStage(ctx, model.AdvanceStageParams{
			ApplicationID: app.ID,
			ToStageID:     stage.ID,
			ChangedBy:     recruiterID,
		})
		require.NoError(t, err)

		// Job removal is an administrative act outside this service's API,
		// but the schema must take the applications and their log with it.
		res, err := db.ExecContext(ctx, "DELETE FROM jobs WHERE id = $1", job.ID)
		require.NoError(t, err)
		affected, err := res.RowsAffected()
		require.NoError(t, err)
		assert.EqualValues(t, 1, affected)

		_, err = apps.GetByID(ctx, app.ID)
		assert.ErrorIs(t, err, ErrApplicationNotFound)

		transitions := NewTransitionRepo(db)
		log, err := transitions.ListByApplicationIDs(ctx, []string{app.ID})
		require.NoError(t, err)
		assert.Empty(t, log)
	})
}
