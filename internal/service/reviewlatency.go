package service

import (
	"fmt"

	"github.com/hirewire/hirewire-api/internal/domain/model"
)

// computeReviewLatency measures how long candidates wait in review stages.
// A sample is the gap between entering a review stage and the next transition
// out of it; applications still waiting only increment waitingCount.
func computeReviewLatency(
	ds *analyticsDataset,
	opts model.ReviewLatencyOptions,
) *model.ReviewLatencyReport {
	report := &model.ReviewLatencyReport{Buckets: []model.WaitBucket{}}

	reviewIDs := resolveReviewStages(ds, opts.ReviewStageIDs)
	if len(reviewIDs) == 0 {
		// nothing classifies as review, skip the log entirely
		return report
	}

	nextIDs := make(map[string]bool, len(opts.NextStageIDs))
	for _, id := range opts.NextStageIDs {
		nextIDs[id] = true
	}

	var samples []float64
	for _, app := range ds.apps {
		transitions := ds.transitions[app.ID]
		entry, idx := firstEntryInto(transitions, reviewIDs)
		if entry == nil {
			continue
		}

		resolved := false
		for _, next := range transitions[idx+1:] {
			if len(nextIDs) > 0 && !nextIDs[next.ToStageID] {
				continue
			}
			elapsed := daysBetween(entry.ChangedAt, next.ChangedAt)
			if elapsed >= 0 {
				samples = append(samples, elapsed)
			}
			resolved = true
			break
		}
		if !resolved {
			report.WaitingCount++
		}
	}

	report.SampleSize = len(samples)
	if len(samples) > 0 {
		total := 0.0
		for _, s := range samples {
			total += s
		}
		avg := round1(total / float64(len(samples)))
		report.AverageDays = &avg
	}
	report.Buckets = bucketizeWaits(samples, opts.WaitBuckets)
	return report
}

// resolveReviewStages picks the stage set that counts as "review":
// explicit IDs win, then the review role tag, then the legacy name heuristic
// built into IsReviewStage.
func resolveReviewStages(ds *analyticsDataset, explicit []string) map[string]bool {
	ids := make(map[string]bool)
	if len(explicit) > 0 {
		for _, id := range explicit {
			if _, ok := ds.stagesByID[id]; ok {
				ids[id] = true
			}
		}
		return ids
	}
	for i := range ds.stages {
		if ds.stages[i].IsReviewStage() {
			ids[ds.stages[i].ID] = true
		}
	}
	return ids
}

// bucketizeWaits distributes samples over ascending day thresholds. Each
// sample lands in the first bucket whose upper bound it does not exceed, so
// the counts always sum to the sample size.
func bucketizeWaits(samples []float64, thresholds []int) []model.WaitBucket {
	if len(thresholds) == 0 {
		return []model.WaitBucket{}
	}

	buckets := make([]model.WaitBucket, len(thresholds)+1)
	for i, t := range thresholds {
		if i == 0 {
			buckets[i].Label = fmt.Sprintf("<= %d d", t)
		} else {
			buckets[i].Label = fmt.Sprintf("%d-%d d", thresholds[i-1], t)
		}
	}
	buckets[len(thresholds)].Label = fmt.Sprintf("> %d d", thresholds[len(thresholds)-1])

	for _, s := range samples {
		placed := false
		for i, t := range thresholds {
			if s <= float64(t) {
				buckets[i].Count++
				placed = true
				break
			}
		}
		if !placed {
			buckets[len(thresholds)].Count++
		}
	}
	return buckets
}
