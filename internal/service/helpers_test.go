package service

import (
	"time"

	"github.com/hirewire/hirewire-api/internal/domain/model"
)

// Shared fixtures for the analytics engine tests. The canonical funnel is a
// three-stage pipeline: Applied -> Screening -> Hired.

var testBase = time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)

func day(n int) time.Time {
	return testBase.AddDate(0, 0, n)
}

func timePtr(t time.Time) *time.Time { return &t }

func strPtr(s string) *string { return &s }

func testStages() []model.PipelineStage {
	return []model.PipelineStage{
		{ID: "stage-applied", Name: "Applied", Order: 1, Role: model.StageRoleApplied},
		{ID: "stage-screening", Name: "Screening", Order: 2, Role: model.StageRoleReview},
		{ID: "stage-hired", Name: "Hired", Order: 3, Role: model.StageRoleHired, IsTerminal: true},
	}
}

type datasetParams struct {
	query       model.AnalyticsQuery
	stages      []model.PipelineStage
	jobs        []*model.Job
	apps        []*model.Application
	transitions []*model.StageTransition
}

// newTestDataset builds the request-scoped snapshot the engines consume,
// doing the same grouping, ordering, and window partitioning the service
// does after loading.
func newTestDataset(p datasetParams) *analyticsDataset {
	ds := &analyticsDataset{
		query:       p.query,
		jobs:        p.jobs,
		jobsByID:    map[string]*model.Job{},
		stages:      model.SortStagesByOrder(p.stages),
		stagesByID:  map[string]model.PipelineStage{},
		appsAll:     p.apps,
		transitions: groupTransitions(p.transitions),
	}
	for _, a := range p.apps {
		if p.query.InRange(a.AppliedAt) {
			ds.apps = append(ds.apps, a)
		}
	}
	for _, j := range p.jobs {
		ds.jobsByID[j.ID] = j
	}
	for i := range ds.stages {
		ds.stagesByID[ds.stages[i].ID] = ds.stages[i]
	}
	return ds
}

func testJob(id, title, postedBy string) *model.Job {
	return &model.Job{ID: id, Title: title, PostedBy: postedBy, CreatedAt: day(-30)}
}

type appParams struct {
	id        string
	jobID     string
	source    string
	status    model.ApplicationStatus
	stageID   *string
	appliedAt time.Time
}

func testApp(p appParams) *model.Application {
	status := p.status
	if status == "" {
		status = model.ApplicationStatusActive
	}
	return &model.Application{
		ID:             p.id,
		JobID:          p.jobID,
		CandidateName:  "Candidate " + p.id,
		Source:         p.source,
		Status:         status,
		CurrentStageID: p.stageID,
		AppliedAt:      p.appliedAt,
	}
}

func testTransition(id, appID, toStage string, at time.Time) *model.StageTransition {
	return &model.StageTransition{
		ID:            id,
		ApplicationID: appID,
		ToStageID:     toStage,
		ChangedAt:     at,
		ChangedBy:     "user-recruiter",
	}
}

// hiredJourney appends the canonical Applied(d0) -> Screening(d0+screenAfter)
// -> Hired(d0+hiredAfter) log for one application.
func hiredJourney(appID string, start time.Time, screenAfter, hiredAfter int) []*model.StageTransition {
	return []*model.StageTransition{
		testTransition(appID+"-t1", appID, "stage-applied", start),
		testTransition(appID+"-t2", appID, "stage-screening", start.AddDate(0, 0, screenAfter)),
		testTransition(appID+"-t3", appID, "stage-hired", start.AddDate(0, 0, hiredAfter)),
	}
}
