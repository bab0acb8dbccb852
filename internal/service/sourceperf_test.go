package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirewire/hirewire-api/internal/domain/model"
)

func TestComputeSourcePerformance_GroupsAndConverts(t *testing.T) {
	t.Parallel()

	// referral: 2 apps, 1 hire -> 50.0% conversion.
	ds := newTestDataset(datasetParams{
		stages: testStages(),
		jobs:   []*model.Job{testJob("job-1", "Backend Engineer", "user-recruiter")},
		apps: []*model.Application{
			testApp(appParams{id: "app-1", jobID: "job-1", source: "referral", status: model.ApplicationStatusHired, appliedAt: day(0)}),
			testApp(appParams{id: "app-2", jobID: "job-1", source: "referral", status: model.ApplicationStatusRejected, appliedAt: day(0)}),
			testApp(appParams{id: "app-3", jobID: "job-1", source: "job-board", status: model.ApplicationStatusShortlisted, appliedAt: day(0)}),
		},
	})

	rows := computeSourcePerformance(ds)
	require.Len(t, rows, 2)

	// sorted by app count desc
	assert.Equal(t, "referral", rows[0].Source)
	assert.Equal(t, 2, rows[0].Apps)
	assert.Equal(t, 1, rows[0].Hires)
	assert.InDelta(t, 50.0, rows[0].Conversion, 0.001)

	assert.Equal(t, "job-board", rows[1].Source)
	assert.Equal(t, 1, rows[1].Shortlist)
	assert.Zero(t, rows[1].Hires)
	assert.Zero(t, rows[1].Conversion)
}

func TestComputeSourcePerformance_UnknownBucket(t *testing.T) {
	t.Parallel()

	ds := newTestDataset(datasetParams{
		stages: testStages(),
		jobs:   []*model.Job{testJob("job-1", "Backend Engineer", "user-recruiter")},
		apps: []*model.Application{
			testApp(appParams{id: "app-1", jobID: "job-1", source: "", appliedAt: day(0)}),
			testApp(appParams{id: "app-2", jobID: "job-1", source: "   ", appliedAt: day(0)}),
		},
	})

	rows := computeSourcePerformance(ds)
	require.Len(t, rows, 1)
	assert.Equal(t, model.SourceUnknown, rows[0].Source)
	assert.Equal(t, 2, rows[0].Apps)
}

func TestComputeSourcePerformance_ShortlistIncludesInterviewing(t *testing.T) {
	t.Parallel()

	ds := newTestDataset(datasetParams{
		stages: testStages(),
		jobs:   []*model.Job{testJob("job-1", "Backend Engineer", "user-recruiter")},
		apps: []*model.Application{
			testApp(appParams{id: "app-1", jobID: "job-1", source: "linkedin", status: model.ApplicationStatusShortlisted, appliedAt: day(0)}),
			testApp(appParams{id: "app-2", jobID: "job-1", source: "linkedin", status: model.ApplicationStatusInterviewing, appliedAt: day(0)}),
			testApp(appParams{id: "app-3", jobID: "job-1", source: "linkedin", status: model.ApplicationStatusActive, appliedAt: day(0)}),
		},
	})

	rows := computeSourcePerformance(ds)
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].Shortlist)
}

func TestComputeSourcePerformance_OneDecimalRounding(t *testing.T) {
	t.Parallel()

	// 1 hire out of 3 apps = 33.333... -> 33.3
	apps := []*model.Application{
		testApp(appParams{id: "app-1", jobID: "job-1", source: "referral", status: model.ApplicationStatusHired, appliedAt: day(0)}),
		testApp(appParams{id: "app-2", jobID: "job-1", source: "referral", appliedAt: day(0)}),
		testApp(appParams{id: "app-3", jobID: "job-1", source: "referral", appliedAt: day(0)}),
	}
	ds := newTestDataset(datasetParams{
		stages: testStages(),
		jobs:   []*model.Job{testJob("job-1", "Backend Engineer", "user-recruiter")},
		apps:   apps,
	})

	rows := computeSourcePerformance(ds)
	require.Len(t, rows, 1)
	assert.InDelta(t, 33.3, rows[0].Conversion, 0.001)
}

func TestComputeSourcePerformance_Empty(t *testing.T) {
	t.Parallel()
	assert.Empty(t, computeSourcePerformance(newTestDataset(datasetParams{stages: testStages()})))
}
