package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/hirewire/hirewire-api/internal/domain/auth"
	"github.com/hirewire/hirewire-api/internal/domain/model"
	"github.com/hirewire/hirewire-api/internal/mocks"
)

type analyticsMocks struct {
	jobs        *mocks.MockJobRepository
	apps        *mocks.MockApplicationRepository
	stages      *mocks.MockStageRepository
	transitions *mocks.MockTransitionRepository
	users       *mocks.MockUserRepository
}

func newAnalyticsService(t *testing.T) (analyticsMocks, *AnalyticsService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := analyticsMocks{
		jobs:        mocks.NewMockJobRepository(ctrl),
		apps:        mocks.NewMockApplicationRepository(ctrl),
		stages:      mocks.NewMockStageRepository(ctrl),
		transitions: mocks.NewMockTransitionRepository(ctrl),
		users:       mocks.NewMockUserRepository(ctrl),
	}
	svc, err := NewAnalyticsService(AnalyticsServiceOptions{Repos: AnalyticsRepos{
		Jobs:         m.jobs,
		Applications: m.apps,
		Stages:       m.stages,
		Transitions:  m.transitions,
		Users:        m.users,
	}})
	require.NoError(t, err)
	return m, svc
}

func adminSession() *auth.Session {
	return &auth.Session{
		ID: "sess-admin", UserID: "user-admin", Role: auth.RoleAdmin,
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func recruiterSession(userID string) *auth.Session {
	return &auth.Session{
		ID: "sess-" + userID, UserID: userID, Role: auth.RoleRecruiter,
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func stagePtrs(stages []model.PipelineStage) []*model.PipelineStage {
	out := make([]*model.PipelineStage, len(stages))
	for i := range stages {
		out[i] = &stages[i]
	}
	return out
}

func TestNewAnalyticsService_RequiresRepos(t *testing.T) {
	t.Parallel()
	_, err := NewAnalyticsService(AnalyticsServiceOptions{})
	require.Error(t, err)
}

func TestScopeFor(t *testing.T) {
	t.Parallel()

	t.Run("admin sees everything", func(t *testing.T) {
		opts, err := scopeFor(adminSession(), model.AnalyticsQuery{})
		require.NoError(t, err)
		assert.Nil(t, opts.PostedBy)
		assert.Nil(t, opts.HiringManagerID)
	})

	t.Run("recruiter scoped to own postings", func(t *testing.T) {
		opts, err := scopeFor(recruiterSession("user-1"), model.AnalyticsQuery{})
		require.NoError(t, err)
		require.NotNil(t, opts.PostedBy)
		assert.Equal(t, "user-1", *opts.PostedBy)
	})

	t.Run("hiring manager scoped to owned jobs", func(t *testing.T) {
		session := &auth.Session{UserID: "user-hm", Role: auth.RoleHiringManager}
		opts, err := scopeFor(session, model.AnalyticsQuery{})
		require.NoError(t, err)
		require.NotNil(t, opts.HiringManagerID)
		assert.Equal(t, "user-hm", *opts.HiringManagerID)
	})

	t.Run("job filter carried through", func(t *testing.T) {
		jobID := "job-1"
		opts, err := scopeFor(adminSession(), model.AnalyticsQuery{JobID: &jobID})
		require.NoError(t, err)
		require.NotNil(t, opts.JobID)
		assert.Equal(t, "job-1", *opts.JobID)
	})

	t.Run("guest forbidden", func(t *testing.T) {
		_, err := scopeFor(&auth.Session{Role: auth.RoleGuest}, model.AnalyticsQuery{})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("nil session forbidden", func(t *testing.T) {
		_, err := scopeFor(nil, model.AnalyticsQuery{})
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestHiringMetrics_EndToEnd(t *testing.T) {
	t.Parallel()
	m, svc := newAnalyticsService(t)
	ctx := context.Background()

	job := testJob("job-1", "Backend Engineer", "user-recruiter")
	apps := []*model.Application{
		testApp(appParams{id: "app-1", jobID: "job-1", status: model.ApplicationStatusHired, appliedAt: day(0)}),
		testApp(appParams{id: "app-2", jobID: "job-1", appliedAt: day(0)}),
	}

	m.stages.EXPECT().ListAll(gomock.Any()).Return(stagePtrs(testStages()), nil)
	m.jobs.EXPECT().List(gomock.Any(), gomock.Any()).Return([]*model.Job{job}, nil)
	m.apps.EXPECT().ListByJobIDs(gomock.Any(), []string{"job-1"}, gomock.Any()).Return(apps, nil)
	m.transitions.EXPECT().ListByApplicationIDs(gomock.Any(), []string{"app-1", "app-2"}).
		Return(hiredJourney("app-1", day(0), 2, 7), nil)

	report, err := svc.HiringMetrics(ctx, adminSession(), model.AnalyticsQuery{})
	require.NoError(t, err)

	assert.Equal(t, 2, report.TotalApplications)
	assert.Equal(t, 1, report.TotalHires)
	assert.InDelta(t, 50.0, report.ConversionRate, 0.001)

	require.NotNil(t, report.TimeToFill.Overall)
	assert.Equal(t, 7, *report.TimeToFill.Overall)
	require.Len(t, report.TimeInStage, 3)
	assert.InDelta(t, 2.0, report.TimeInStage[0].AverageDays, 0.001)
	assert.InDelta(t, 5.0, report.TimeInStage[1].AverageDays, 0.001)
}

func TestHiringMetrics_WindowAppliesToHireEvents(t *testing.T) {
	t.Parallel()
	m, svc := newAnalyticsService(t)

	// app-early applied before the window but was hired inside it; app-late
	// applied inside the window but was hired after it closed. Time-to-fill
	// must count exactly the in-window hire, while the application totals
	// stay scoped to the application date.
	job := testJob("job-1", "Backend Engineer", "user-recruiter")
	apps := []*model.Application{
		testApp(appParams{id: "app-early", jobID: "job-1", status: model.ApplicationStatusHired, appliedAt: day(-10)}),
		testApp(appParams{id: "app-late", jobID: "job-1", status: model.ApplicationStatusHired, appliedAt: day(0)}),
	}

	m.stages.EXPECT().ListAll(gomock.Any()).Return(stagePtrs(testStages()), nil)
	m.jobs.EXPECT().List(gomock.Any(), gomock.Any()).Return([]*model.Job{job}, nil)
	m.apps.EXPECT().ListByJobIDs(gomock.Any(), []string{"job-1"}, gomock.Any()).Return(apps, nil)
	m.transitions.EXPECT().ListByApplicationIDs(gomock.Any(), []string{"app-early", "app-late"}).
		Return(append(
			hiredJourney("app-early", day(-10), 2, 12),
			hiredJourney("app-late", day(0), 2, 7)...), nil)

	report, err := svc.HiringMetrics(context.Background(), adminSession(), model.AnalyticsQuery{
		StartDate: timePtr(day(0)),
		EndDate:   timePtr(day(3)),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, report.TotalApplications)
	require.Len(t, report.TimeToFill.ByJob, 1)
	assert.Equal(t, 1, report.TimeToFill.ByJob[0].HiredCount)
	assert.Equal(t, 12, report.TimeToFill.ByJob[0].AverageDays)
	require.NotNil(t, report.TimeToFill.Overall)
	assert.Equal(t, 12, *report.TimeToFill.Overall)
}

func TestHiringMetrics_RecruiterScopePassedToRepo(t *testing.T) {
	t.Parallel()
	m, svc := newAnalyticsService(t)

	m.stages.EXPECT().ListAll(gomock.Any()).Return(stagePtrs(testStages()), nil)
	m.jobs.EXPECT().
		List(gomock.Any(), model.JobListOptions{PostedBy: strPtr("user-1")}).
		Return(nil, nil)

	report, err := svc.HiringMetrics(context.Background(), recruiterSession("user-1"), model.AnalyticsQuery{})
	require.NoError(t, err)
	assert.Zero(t, report.TotalApplications)
	assert.Nil(t, report.TimeToFill.Overall)
}

func TestHiringMetrics_GuestForbidden(t *testing.T) {
	t.Parallel()
	_, svc := newAnalyticsService(t)

	_, err := svc.HiringMetrics(context.Background(),
		&auth.Session{Role: auth.RoleGuest}, model.AnalyticsQuery{})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestHiringMetrics_RepoErrorPropagates(t *testing.T) {
	t.Parallel()
	m, svc := newAnalyticsService(t)

	dbErr := errors.New("connection refused")
	m.stages.EXPECT().ListAll(gomock.Any()).Return(nil, dbErr).MaxTimes(1)
	m.jobs.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, dbErr).MaxTimes(1)

	_, err := svc.HiringMetrics(context.Background(), adminSession(), model.AnalyticsQuery{})
	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)
}

func TestDropoff_EndToEnd(t *testing.T) {
	t.Parallel()
	m, svc := newAnalyticsService(t)

	job := testJob("job-1", "Backend Engineer", "user-recruiter")
	apps := []*model.Application{
		testApp(appParams{id: "app-1", jobID: "job-1", stageID: strPtr("stage-applied"), appliedAt: day(0)}),
		testApp(appParams{id: "app-2", jobID: "job-1", appliedAt: day(0)}),
	}

	m.stages.EXPECT().ListAll(gomock.Any()).Return(stagePtrs(testStages()), nil)
	m.jobs.EXPECT().List(gomock.Any(), gomock.Any()).Return([]*model.Job{job}, nil)
	m.apps.EXPECT().ListByJobIDs(gomock.Any(), []string{"job-1"}, gomock.Any()).Return(apps, nil)
	m.transitions.EXPECT().ListByApplicationIDs(gomock.Any(), gomock.Any()).Return(nil, nil)

	report, err := svc.Dropoff(context.Background(), adminSession(), model.AnalyticsQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Stages[0].Count)
	assert.Equal(t, 1, report.Unassigned)
}

func TestStageHistory_RequiresSession(t *testing.T) {
	t.Parallel()
	_, svc := newAnalyticsService(t)

	_, err := svc.StageHistory(context.Background(), nil, model.StageHistoryListOptions{})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.StageHistory(context.Background(),
		&auth.Session{Role: auth.RoleGuest}, model.StageHistoryListOptions{})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestStageHistory_PassesOptionsThrough(t *testing.T) {
	t.Parallel()
	m, svc := newAnalyticsService(t)

	opts := model.StageHistoryListOptions{ApplicationID: strPtr("app-1"), Limit: 10}
	rows := []*model.StageTransition{testTransition("t1", "app-1", "stage-applied", day(0))}
	m.transitions.EXPECT().ListHistory(gomock.Any(), opts).Return(rows, nil)

	got, err := svc.StageHistory(context.Background(), adminSession(), opts)
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestStageHistory_RecruiterScopedToOwnJobs(t *testing.T) {
	t.Parallel()
	m, svc := newAnalyticsService(t)

	m.jobs.EXPECT().
		IDs(gomock.Any(), model.JobListOptions{PostedBy: strPtr("user-1")}).
		Return([]string{"job-1", "job-2"}, nil)
	m.transitions.EXPECT().
		ListHistory(gomock.Any(), model.StageHistoryListOptions{JobIDs: []string{"job-1", "job-2"}, Limit: 10}).
		Return(nil, nil)

	_, err := svc.StageHistory(context.Background(), recruiterSession("user-1"),
		model.StageHistoryListOptions{Limit: 10})
	require.NoError(t, err)
}

func TestStageHistory_RecruiterWithoutJobsSeesNothing(t *testing.T) {
	t.Parallel()
	m, svc := newAnalyticsService(t)

	m.jobs.EXPECT().IDs(gomock.Any(), gomock.Any()).Return(nil, nil)

	rows, err := svc.StageHistory(context.Background(), recruiterSession("user-1"),
		model.StageHistoryListOptions{})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReviewLatency_EndToEnd(t *testing.T) {
	t.Parallel()
	m, svc := newAnalyticsService(t)

	job := testJob("job-1", "Backend Engineer", "user-recruiter")
	apps := []*model.Application{
		testApp(appParams{id: "app-1", jobID: "job-1", appliedAt: day(0)}),
	}

	m.stages.EXPECT().ListAll(gomock.Any()).Return(stagePtrs(testStages()), nil)
	m.jobs.EXPECT().List(gomock.Any(), gomock.Any()).Return([]*model.Job{job}, nil)
	m.apps.EXPECT().ListByJobIDs(gomock.Any(), gomock.Any(), gomock.Any()).Return(apps, nil)
	m.transitions.EXPECT().ListByApplicationIDs(gomock.Any(), gomock.Any()).
		Return(hiredJourney("app-1", day(0), 2, 7), nil)

	report, err := svc.ReviewLatency(context.Background(), adminSession(), ReviewLatencyParams{
		Options: model.ReviewLatencyOptions{WaitBuckets: []int{2, 7}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, report.SampleSize)
	require.Len(t, report.Buckets, 3)
	assert.Equal(t, 1, report.Buckets[1].Count)
}
