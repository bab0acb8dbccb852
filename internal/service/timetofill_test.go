package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirewire/hirewire-api/internal/domain/model"
)

func TestComputeTimeToFill_SingleHire(t *testing.T) {
	t.Parallel()

	// Applied day 0, Screening day 2, Hired day 7.
	app := testApp(appParams{
		id: "app-1", jobID: "job-1",
		status: model.ApplicationStatusHired, stageID: strPtr("stage-hired"),
		appliedAt: day(0),
	})
	ds := newTestDataset(datasetParams{
		stages:      testStages(),
		jobs:        []*model.Job{testJob("job-1", "Backend Engineer", "user-recruiter")},
		apps:        []*model.Application{app},
		transitions: hiredJourney("app-1", day(0), 2, 7),
	})

	report := computeTimeToFill(ds)
	require.Len(t, report.ByJob, 1)

	row := report.ByJob[0]
	assert.Equal(t, "Backend Engineer", row.JobTitle)
	assert.Equal(t, 7, row.AverageDays)
	assert.Equal(t, 1, row.HiredCount)
	assert.Equal(t, day(7), row.OldestHireDate)
	assert.Equal(t, day(7), row.NewestHireDate)

	require.NotNil(t, report.Overall)
	assert.Equal(t, 7, *report.Overall)
}

func TestComputeTimeToFill_NoHiresNullOverall(t *testing.T) {
	t.Parallel()

	app := testApp(appParams{
		id: "app-1", jobID: "job-1",
		stageID: strPtr("stage-screening"), appliedAt: day(0),
	})
	ds := newTestDataset(datasetParams{
		stages: testStages(),
		jobs:   []*model.Job{testJob("job-1", "Backend Engineer", "user-recruiter")},
		apps:   []*model.Application{app},
		transitions: []*model.StageTransition{
			testTransition("t1", "app-1", "stage-applied", day(0)),
			testTransition("t2", "app-1", "stage-screening", day(2)),
		},
	})

	report := computeTimeToFill(ds)
	assert.Nil(t, report.Overall)
	assert.Empty(t, report.ByJob)
}

func TestComputeTimeToFill_WeightedOverall(t *testing.T) {
	t.Parallel()

	// job-1: two hires at 10 days avg; job-2: one hire at 4 days.
	// Overall = round((10*2 + 4*1) / 3) = round(8) = 8.
	ds := newTestDataset(datasetParams{
		stages: testStages(),
		jobs: []*model.Job{
			testJob("job-1", "Backend Engineer", "user-recruiter"),
			testJob("job-2", "Data Analyst", "user-recruiter"),
		},
		apps: []*model.Application{
			testApp(appParams{id: "app-1", jobID: "job-1", status: model.ApplicationStatusHired, appliedAt: day(0)}),
			testApp(appParams{id: "app-2", jobID: "job-1", status: model.ApplicationStatusHired, appliedAt: day(0)}),
			testApp(appParams{id: "app-3", jobID: "job-2", status: model.ApplicationStatusHired, appliedAt: day(0)}),
		},
		transitions: append(append(
			hiredJourney("app-1", day(0), 2, 8),
			hiredJourney("app-2", day(0), 3, 12)...),
			hiredJourney("app-3", day(0), 1, 4)...),
	})

	report := computeTimeToFill(ds)
	require.Len(t, report.ByJob, 2)
	require.NotNil(t, report.Overall)
	assert.Equal(t, 8, *report.Overall)

	// sorted by title
	assert.Equal(t, "Backend Engineer", report.ByJob[0].JobTitle)
	assert.Equal(t, 10, report.ByJob[0].AverageDays)
	assert.Equal(t, 2, report.ByJob[0].HiredCount)
	assert.Equal(t, day(8), report.ByJob[0].OldestHireDate)
	assert.Equal(t, day(12), report.ByJob[0].NewestHireDate)

	assert.Equal(t, "Data Analyst", report.ByJob[1].JobTitle)
	assert.Equal(t, 4, report.ByJob[1].AverageDays)
}

func TestComputeTimeToFill_WindowSelectsHireEvents(t *testing.T) {
	t.Parallel()

	// The window applies to when the candidate was hired, not when they
	// applied: a hire after the window end is excluded even though the
	// application itself falls inside, and a hire inside the window counts
	// even though the candidate applied long before it opened.
	ds := newTestDataset(datasetParams{
		query:  model.AnalyticsQuery{StartDate: timePtr(day(0)), EndDate: timePtr(day(3))},
		stages: testStages(),
		jobs:   []*model.Job{testJob("job-1", "Backend Engineer", "user-recruiter")},
		apps: []*model.Application{
			testApp(appParams{id: "app-late", jobID: "job-1", status: model.ApplicationStatusHired, appliedAt: day(0)}),
			testApp(appParams{id: "app-early", jobID: "job-1", status: model.ApplicationStatusHired, appliedAt: day(-10)}),
		},
		transitions: append(
			hiredJourney("app-late", day(0), 2, 7),
			hiredJourney("app-early", day(-10), 2, 12)...),
	})

	report := computeTimeToFill(ds)
	require.Len(t, report.ByJob, 1)

	row := report.ByJob[0]
	assert.Equal(t, 1, row.HiredCount)
	assert.Equal(t, 12, row.AverageDays)
	assert.Equal(t, day(2), row.OldestHireDate)
	assert.Equal(t, day(2), row.NewestHireDate)

	require.NotNil(t, report.Overall)
	assert.Equal(t, 12, *report.Overall)
}

func TestComputeTimeToFill_NoHiresInWindowNullOverall(t *testing.T) {
	t.Parallel()

	// Hired on day 7, window closes on day 3.
	ds := newTestDataset(datasetParams{
		query:  model.AnalyticsQuery{EndDate: timePtr(day(3))},
		stages: testStages(),
		jobs:   []*model.Job{testJob("job-1", "Backend Engineer", "user-recruiter")},
		apps: []*model.Application{
			testApp(appParams{id: "app-1", jobID: "job-1", status: model.ApplicationStatusHired, appliedAt: day(0)}),
		},
		transitions: hiredJourney("app-1", day(0), 2, 7),
	})

	report := computeTimeToFill(ds)
	assert.Nil(t, report.Overall)
	assert.Empty(t, report.ByJob)
}

func TestComputeTimeToFill_RoundsPerHire(t *testing.T) {
	t.Parallel()

	// 38h rounds to 2 days and 62h to 3 before averaging, so the job
	// average is round((2+3)/2) = 3, not round((1.58+2.58)/2) = 2.
	ds := newTestDataset(datasetParams{
		stages: testStages(),
		jobs:   []*model.Job{testJob("job-1", "Backend Engineer", "user-recruiter")},
		apps: []*model.Application{
			testApp(appParams{id: "app-1", jobID: "job-1", status: model.ApplicationStatusHired, appliedAt: day(0)}),
			testApp(appParams{id: "app-2", jobID: "job-1", status: model.ApplicationStatusHired, appliedAt: day(0)}),
		},
		transitions: []*model.StageTransition{
			testTransition("t1", "app-1", "stage-applied", day(0)),
			testTransition("t2", "app-1", "stage-hired", day(0).Add(38*time.Hour)),
			testTransition("t3", "app-2", "stage-applied", day(0)),
			testTransition("t4", "app-2", "stage-hired", day(0).Add(62*time.Hour)),
		},
	})

	report := computeTimeToFill(ds)
	require.Len(t, report.ByJob, 1)
	assert.Equal(t, 3, report.ByJob[0].AverageDays)
	require.NotNil(t, report.Overall)
	assert.Equal(t, 3, *report.Overall)
}

func TestComputeTimeToFill_LegacyMaxOrderTerminal(t *testing.T) {
	t.Parallel()

	// No stage flagged terminal: the highest stage_order stands in.
	stages := []model.PipelineStage{
		{ID: "stage-applied", Name: "Applied", Order: 1, Role: model.StageRoleCustom},
		{ID: "stage-final", Name: "Final Offer", Order: 9, Role: model.StageRoleCustom},
	}
	ds := newTestDataset(datasetParams{
		stages: stages,
		jobs:   []*model.Job{testJob("job-1", "Backend Engineer", "user-recruiter")},
		apps: []*model.Application{
			testApp(appParams{id: "app-1", jobID: "job-1", status: model.ApplicationStatusHired, appliedAt: day(0)}),
		},
		transitions: []*model.StageTransition{
			testTransition("t1", "app-1", "stage-applied", day(0)),
			testTransition("t2", "app-1", "stage-final", day(5)),
		},
	})

	report := computeTimeToFill(ds)
	require.Len(t, report.ByJob, 1)
	assert.Equal(t, 5, report.ByJob[0].AverageDays)
}

func TestComputeTimeToFill_NoStages(t *testing.T) {
	t.Parallel()

	ds := newTestDataset(datasetParams{
		jobs: []*model.Job{testJob("job-1", "Backend Engineer", "user-recruiter")},
	})
	report := computeTimeToFill(ds)
	assert.Nil(t, report.Overall)
	assert.Empty(t, report.ByJob)
}
