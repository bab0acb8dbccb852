package service

import (
	"math"

	"github.com/hirewire/hirewire-api/internal/domain/model"
)

// computeDropoff snapshots funnel occupancy from the applications' current
// stage and derives stage-to-stage conversion rates. Occupancy is "where is
// everyone right now", not a flow count, so later stages can outnumber
// earlier ones.
func computeDropoff(ds *analyticsDataset) *model.DropoffReport {
	counts := make(map[string]int, len(ds.stages))
	unassigned := 0
	for _, app := range ds.apps {
		if app.CurrentStageID == nil {
			unassigned++
			continue
		}
		if _, known := ds.stagesByID[*app.CurrentStageID]; !known {
			unassigned++
			continue
		}
		counts[*app.CurrentStageID]++
	}

	report := &model.DropoffReport{
		Stages:      make([]model.FunnelStageCount, 0, len(ds.stages)),
		Unassigned:  unassigned,
		Conversions: make([]model.FunnelConversion, 0, len(ds.stages)),
	}

	prev := 0
	for i := range ds.stages {
		stage := ds.stages[i]
		count := counts[stage.ID]
		report.Stages = append(report.Stages, model.FunnelStageCount{
			Name:  stage.Name,
			Order: stage.Order,
			Count: count,
		})

		rate := 0
		switch {
		case i == 0:
			rate = 100
		case prev > 0:
			rate = int(math.Round(float64(count) / float64(prev) * 100))
		}
		report.Conversions = append(report.Conversions, model.FunnelConversion{
			Name:  stage.Name,
			Count: count,
			Rate:  rate,
		})
		prev = count
	}
	return report
}
