package service

import (
	"sort"

	"github.com/hirewire/hirewire-api/internal/domain/model"
)

// computeSourcePerformance groups applications by acquisition source and
// derives hire conversion per source. Unlabeled sources collapse into the
// "unknown" group. Output is sorted by application count descending so the
// strongest channels lead.
func computeSourcePerformance(ds *analyticsDataset) []model.SourcePerformanceRow {
	bySource := map[string]*model.SourcePerformanceRow{}
	for _, app := range ds.apps {
		label := app.SourceLabel()
		row := bySource[label]
		if row == nil {
			row = &model.SourcePerformanceRow{Source: label}
			bySource[label] = row
		}
		row.Apps++
		if app.Shortlisted() {
			row.Shortlist++
		}
		if app.Hired() {
			row.Hires++
		}
	}

	rows := make([]model.SourcePerformanceRow, 0, len(bySource))
	for _, row := range bySource {
		row.Conversion = ratioPercent(row.Hires, row.Apps)
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Apps != rows[j].Apps {
			return rows[i].Apps > rows[j].Apps
		}
		return rows[i].Source < rows[j].Source
	})
	return rows
}
