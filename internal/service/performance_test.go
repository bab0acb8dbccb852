package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/hirewire/hirewire-api/internal/domain/model"
	"github.com/hirewire/hirewire-api/internal/mocks"
)

func newPerformanceService(t *testing.T) (*mocks.MockUserRepository, *AnalyticsService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	users := mocks.NewMockUserRepository(ctrl)
	svc, err := NewAnalyticsService(AnalyticsServiceOptions{Repos: AnalyticsRepos{
		Jobs:         mocks.NewMockJobRepository(ctrl),
		Applications: mocks.NewMockApplicationRepository(ctrl),
		Stages:       mocks.NewMockStageRepository(ctrl),
		Transitions:  mocks.NewMockTransitionRepository(ctrl),
		Users:        users,
	}})
	require.NoError(t, err)
	return users, svc
}

func TestComputeTeamPerformance_RecruiterRollup(t *testing.T) {
	t.Parallel()
	users, svc := newPerformanceService(t)

	job := testJob("job-1", "Backend Engineer", "user-recruiter")
	ds := newTestDataset(datasetParams{
		stages: testStages(),
		jobs:   []*model.Job{job},
		apps: []*model.Application{
			// screened: first action 2 days after applying, then gaps 5
			testApp(appParams{id: "app-1", jobID: "job-1", appliedAt: day(0)}),
			// never touched
			testApp(appParams{id: "app-2", jobID: "job-1", appliedAt: day(0)}),
		},
		transitions: []*model.StageTransition{
			testTransition("t1", "app-1", "stage-applied", day(2)),
			testTransition("t2", "app-1", "stage-screening", day(7)),
		},
	})

	users.EXPECT().
		GetByIDs(gomock.Any(), gomock.Any()).
		Return(map[string]*model.User{
			"user-recruiter": {ID: "user-recruiter", FirstName: "Dana", LastName: "Ruiz"},
		}, nil)

	report, err := svc.computeTeamPerformance(context.Background(), ds)
	require.NoError(t, err)
	require.Len(t, report.Recruiters, 1)
	assert.Empty(t, report.HiringManagers)

	row := report.Recruiters[0]
	assert.Equal(t, "user-recruiter", row.RecruiterID)
	assert.Equal(t, "Dana Ruiz", row.Name)
	assert.Equal(t, 1, row.JobsHandled)
	assert.Equal(t, 1, row.CandidatesScreened)
	require.NotNil(t, row.AvgDaysToFirstAction)
	assert.InDelta(t, 2.0, *row.AvgDaysToFirstAction, 0.001)
	require.NotNil(t, row.AvgDaysBetweenStages)
	assert.InDelta(t, 5.0, *row.AvgDaysBetweenStages, 0.001)
}

func TestComputeTeamPerformance_MissingUserFallbackName(t *testing.T) {
	t.Parallel()
	users, svc := newPerformanceService(t)

	hmID := "user-hm"
	job := testJob("job-1", "Backend Engineer", "ghost-recruiter")
	job.HiringManagerID = &hmID
	ds := newTestDataset(datasetParams{
		stages: testStages(),
		jobs:   []*model.Job{job},
	})

	users.EXPECT().
		GetByIDs(gomock.Any(), gomock.Any()).
		Return(map[string]*model.User{}, nil)

	report, err := svc.computeTeamPerformance(context.Background(), ds)
	require.NoError(t, err)
	require.Len(t, report.Recruiters, 1)
	require.Len(t, report.HiringManagers, 1)
	assert.Equal(t, "Recruiter #ghost-recruiter", report.Recruiters[0].Name)
	assert.Equal(t, "HM #user-hm", report.HiringManagers[0].Name)
	assert.Equal(t, 1, report.HiringManagers[0].JobsOwned)
}

func TestComputeTeamPerformance_FirstActionFallsBackToCachedStage(t *testing.T) {
	t.Parallel()
	users, svc := newPerformanceService(t)

	app := testApp(appParams{id: "app-1", jobID: "job-1", appliedAt: day(0)})
	app.StageChangedAt = timePtr(day(3))
	ds := newTestDataset(datasetParams{
		stages: testStages(),
		jobs:   []*model.Job{testJob("job-1", "Backend Engineer", "user-recruiter")},
		apps:   []*model.Application{app},
	})

	users.EXPECT().
		GetByIDs(gomock.Any(), gomock.Any()).
		Return(map[string]*model.User{}, nil)

	report, err := svc.computeTeamPerformance(context.Background(), ds)
	require.NoError(t, err)
	require.Len(t, report.Recruiters, 1)

	row := report.Recruiters[0]
	// the cached stage change counts as an action signal but not a screen
	assert.Zero(t, row.CandidatesScreened)
	require.NotNil(t, row.AvgDaysToFirstAction)
	assert.InDelta(t, 3.0, *row.AvgDaysToFirstAction, 0.001)
	assert.Nil(t, row.AvgDaysBetweenStages)
}

func TestComputeTeamPerformance_HMReviewLatencyScopedToTheirJobs(t *testing.T) {
	t.Parallel()
	users, svc := newPerformanceService(t)

	hmID := "user-hm"
	job1 := testJob("job-1", "Backend Engineer", "user-recruiter")
	job1.HiringManagerID = &hmID
	job2 := testJob("job-2", "Data Analyst", "user-recruiter")

	ds := newTestDataset(datasetParams{
		stages: testStages(),
		jobs:   []*model.Job{job1, job2},
		apps: []*model.Application{
			testApp(appParams{id: "app-1", jobID: "job-1", appliedAt: day(0)}),
			testApp(appParams{id: "app-2", jobID: "job-2", appliedAt: day(0)}),
		},
		transitions: append(
			// job-1 review resolved in 5 days
			hiredJourney("app-1", day(0), 2, 7),
			// job-2 review resolved in 20 days, must not leak into the HM row
			hiredJourney("app-2", day(0), 1, 21)...),
	})

	users.EXPECT().
		GetByIDs(gomock.Any(), gomock.Any()).
		Return(map[string]*model.User{}, nil)

	report, err := svc.computeTeamPerformance(context.Background(), ds)
	require.NoError(t, err)
	require.Len(t, report.HiringManagers, 1)

	latency := report.HiringManagers[0].ReviewLatency
	assert.Equal(t, 1, latency.SampleSize)
	require.NotNil(t, latency.AverageDays)
	assert.InDelta(t, 5.0, *latency.AverageDays, 0.001)
}
