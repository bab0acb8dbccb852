package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/hirewire/hirewire-api/internal/domain/model"
)

// computeTeamPerformance rolls the dataset up per recruiter and per hiring
// manager. Display names resolve through one batched user lookup; rows for
// users the identity store no longer knows fall back to an ID placeholder.
func (s *AnalyticsService) computeTeamPerformance(
	ctx context.Context,
	ds *analyticsDataset,
) (*model.TeamPerformanceReport, error) {
	report := &model.TeamPerformanceReport{
		Recruiters:     []model.RecruiterPerformance{},
		HiringManagers: []model.HiringManagerPerformance{},
	}

	recruiterJobs := map[string][]string{}
	managerJobs := map[string][]string{}
	for _, job := range ds.jobs {
		recruiterJobs[job.PostedBy] = append(recruiterJobs[job.PostedBy], job.ID)
		if job.HiringManagerID != nil {
			managerJobs[*job.HiringManagerID] = append(managerJobs[*job.HiringManagerID], job.ID)
		}
	}

	userIDs := make([]string, 0, len(recruiterJobs)+len(managerJobs))
	for id := range recruiterJobs {
		userIDs = append(userIDs, id)
	}
	for id := range managerJobs {
		userIDs = append(userIDs, id)
	}
	users, err := s.repos.Users.GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve user names: %w", err)
	}

	appsByJob := map[string][]*model.Application{}
	for _, app := range ds.apps {
		appsByJob[app.JobID] = append(appsByJob[app.JobID], app)
	}

	for recruiterID, jobIDs := range recruiterJobs {
		row := s.recruiterRow(ds, recruiterID, jobIDs, appsByJob)
		if u := users[recruiterID]; u != nil {
			row.Name = u.DisplayName()
		} else {
			row.Name = fmt.Sprintf("Recruiter #%s", recruiterID)
		}
		report.Recruiters = append(report.Recruiters, row)
	}

	for managerID, jobIDs := range managerJobs {
		row := model.HiringManagerPerformance{
			HiringManagerID: managerID,
			JobsOwned:       len(jobIDs),
			ReviewLatency:   *computeReviewLatency(subsetByJobs(ds, jobIDs), model.ReviewLatencyOptions{}),
		}
		if u := users[managerID]; u != nil {
			row.Name = u.DisplayName()
		} else {
			row.Name = fmt.Sprintf("HM #%s", managerID)
		}
		report.HiringManagers = append(report.HiringManagers, row)
	}

	sort.Slice(report.Recruiters, func(i, j int) bool {
		return report.Recruiters[i].Name < report.Recruiters[j].Name
	})
	sort.Slice(report.HiringManagers, func(i, j int) bool {
		return report.HiringManagers[i].Name < report.HiringManagers[j].Name
	})
	return report, nil
}

// recruiterRow computes the activity metrics for one recruiter's jobs.
func (s *AnalyticsService) recruiterRow(
	ds *analyticsDataset,
	recruiterID string,
	jobIDs []string,
	appsByJob map[string][]*model.Application,
) model.RecruiterPerformance {
	row := model.RecruiterPerformance{
		RecruiterID: recruiterID,
		JobsHandled: len(jobIDs),
	}

	var firstActionTotal float64
	var firstActionCount int
	var gapTotal float64
	var gapCount int

	for _, jobID := range jobIDs {
		for _, app := range appsByJob[jobID] {
			transitions := ds.transitions[app.ID]
			if len(transitions) > 0 {
				row.CandidatesScreened++
				if d := daysBetween(app.AppliedAt, transitions[0].ChangedAt); d >= 0 {
					firstActionTotal += d
					firstActionCount++
				}
				for i := 1; i < len(transitions); i++ {
					if d := daysBetween(transitions[i-1].ChangedAt, transitions[i].ChangedAt); d >= 0 {
						gapTotal += d
						gapCount++
					}
				}
				continue
			}
			// no log rows: the cached stage change is the only action signal
			if app.StageChangedAt != nil {
				if d := daysBetween(app.AppliedAt, *app.StageChangedAt); d >= 0 {
					firstActionTotal += d
					firstActionCount++
				}
			}
		}
	}

	if firstActionCount > 0 {
		avg := round1(firstActionTotal / float64(firstActionCount))
		row.AvgDaysToFirstAction = &avg
	}
	if gapCount > 0 {
		avg := round1(gapTotal / float64(gapCount))
		row.AvgDaysBetweenStages = &avg
	}
	return row
}

// subsetByJobs narrows a dataset to the given jobs. Stages stay global; jobs,
// applications and transitions filter down.
func subsetByJobs(ds *analyticsDataset, jobIDs []string) *analyticsDataset {
	keep := make(map[string]bool, len(jobIDs))
	for _, id := range jobIDs {
		keep[id] = true
	}

	sub := &analyticsDataset{
		jobsByID:    map[string]*model.Job{},
		stages:      ds.stages,
		stagesByID:  ds.stagesByID,
		transitions: map[string][]*model.StageTransition{},
	}
	for _, job := range ds.jobs {
		if keep[job.ID] {
			sub.jobs = append(sub.jobs, job)
			sub.jobsByID[job.ID] = job
		}
	}
	for _, app := range ds.apps {
		if keep[app.JobID] {
			sub.apps = append(sub.apps, app)
			if rows, ok := ds.transitions[app.ID]; ok {
				sub.transitions[app.ID] = rows
			}
		}
	}
	return sub
}
