package service

import (
	"math"
	"sort"
	"time"

	"github.com/hirewire/hirewire-api/internal/domain/model"
)

// computeTimeToFill builds the per-job and overall hire latency report.
// A hire event is a transition into the terminal stage; the terminal stage is
// resolved fresh from the current stage set on every call, so editing the
// pipeline immediately changes what counts as a hire. The query window
// applies to the hire instant, not the application date, so the scan covers
// applications that predate the window start.
func computeTimeToFill(ds *analyticsDataset) model.TimeToFillReport {
	report := model.TimeToFillReport{ByJob: []model.TimeToFillJob{}}

	terminal := model.TerminalStage(ds.stages)
	if terminal == nil {
		return report
	}

	type jobAccum struct {
		totalDays int
		hires     int
		oldest    time.Time
		newest    time.Time
	}
	perJob := map[string]*jobAccum{}

	for _, app := range ds.appsAll {
		hiredAt := hireTime(ds.transitions[app.ID], terminal.ID, ds.query)
		if hiredAt == nil {
			continue
		}
		days := daysBetween(app.AppliedAt, *hiredAt)
		if days < 0 {
			continue
		}
		acc := perJob[app.JobID]
		if acc == nil {
			acc = &jobAccum{oldest: *hiredAt, newest: *hiredAt}
			perJob[app.JobID] = acc
		}
		// each hire contributes a whole-day sample before averaging
		acc.totalDays += wholeDays(days)
		acc.hires++
		if hiredAt.Before(acc.oldest) {
			acc.oldest = *hiredAt
		}
		if hiredAt.After(acc.newest) {
			acc.newest = *hiredAt
		}
	}

	var weighted float64
	var totalHires int
	for jobID, acc := range perJob {
		job := ds.jobsByID[jobID]
		if job == nil {
			continue
		}
		avg := wholeDays(float64(acc.totalDays) / float64(acc.hires))
		report.ByJob = append(report.ByJob, model.TimeToFillJob{
			JobID:          jobID,
			JobTitle:       job.Title,
			AverageDays:    avg,
			HiredCount:     acc.hires,
			OldestHireDate: acc.oldest,
			NewestHireDate: acc.newest,
		})
		weighted += float64(avg) * float64(acc.hires)
		totalHires += acc.hires
	}

	sort.Slice(report.ByJob, func(i, j int) bool {
		return report.ByJob[i].JobTitle < report.ByJob[j].JobTitle
	})

	if totalHires > 0 {
		overall := int(math.Round(weighted / float64(totalHires)))
		report.Overall = &overall
	}
	return report
}

// hireTime returns when the application first entered the terminal stage
// inside the query window, or nil if it never did.
func hireTime(
	transitions []*model.StageTransition,
	terminalStageID string,
	q model.AnalyticsQuery,
) *time.Time {
	for _, t := range transitions {
		if t.ToStageID == terminalStageID && q.InRange(t.ChangedAt) {
			at := t.ChangedAt
			return &at
		}
	}
	return nil
}
