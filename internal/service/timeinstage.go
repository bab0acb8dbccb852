package service

import (
	"math"

	"github.com/hirewire/hirewire-api/internal/domain/model"
)

// computeTimeInStage averages how long candidates spend in each pipeline
// stage. Only closed intervals contribute; an application still sitting in a
// stage has no defined duration there yet. Every stage appears in the output
// so sparse funnels render complete tables.
func computeTimeInStage(ds *analyticsDataset) []model.StageDurationStats {
	type accum struct {
		total float64
		count int
		min   float64
		max   float64
	}
	perStage := make(map[string]*accum, len(ds.stages))
	for i := range ds.stages {
		perStage[ds.stages[i].ID] = &accum{min: math.Inf(1), max: math.Inf(-1)}
	}

	for _, app := range ds.apps {
		for _, iv := range reconstructIntervals(ds.transitions[app.ID]) {
			if iv.End == nil {
				continue
			}
			acc := perStage[iv.StageID]
			if acc == nil {
				// transition into a since-deleted stage
				continue
			}
			days := daysBetween(iv.Start, *iv.End)
			if days < 0 {
				continue
			}
			acc.total += days
			acc.count++
			acc.min = math.Min(acc.min, days)
			acc.max = math.Max(acc.max, days)
		}
	}

	stats := make([]model.StageDurationStats, 0, len(ds.stages))
	for i := range ds.stages {
		stage := ds.stages[i]
		acc := perStage[stage.ID]
		out := model.StageDurationStats{
			StageName:  stage.Name,
			StageOrder: stage.Order,
		}
		if acc.count > 0 {
			out.AverageDays = round1(acc.total / float64(acc.count))
			out.TransitionCount = acc.count
			out.MinDays = wholeDays(acc.min)
			out.MaxDays = wholeDays(acc.max)
		}
		stats = append(stats, out)
	}
	return stats
}
