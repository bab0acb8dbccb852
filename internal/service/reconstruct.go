package service

import (
	"sort"
	"time"

	"github.com/hirewire/hirewire-api/internal/domain/model"
)

// stageInterval is one reconstructed stay in a stage. End is nil while the
// application still sits in the stage (open interval).
type stageInterval struct {
	StageID string
	Start   time.Time
	End     *time.Time
}

// groupTransitions buckets a flat transition list per application and sorts
// each bucket by changed_at asc, id asc. Rows with a zero changed_at are
// dropped: they cannot anchor an interval and would poison every duration
// derived from them.
func groupTransitions(transitions []*model.StageTransition) map[string][]*model.StageTransition {
	grouped := make(map[string][]*model.StageTransition)
	for _, t := range transitions {
		if t.ChangedAt.IsZero() {
			continue
		}
		grouped[t.ApplicationID] = append(grouped[t.ApplicationID], t)
	}
	for _, rows := range grouped {
		sort.Slice(rows, func(i, j int) bool {
			if !rows[i].ChangedAt.Equal(rows[j].ChangedAt) {
				return rows[i].ChangedAt.Before(rows[j].ChangedAt)
			}
			return rows[i].ID < rows[j].ID
		})
	}
	return grouped
}

// reconstructIntervals turns an application's ordered transition log into
// stage intervals. Each transition opens a stay in its target stage; the next
// transition closes it. The last stay remains open.
func reconstructIntervals(transitions []*model.StageTransition) []stageInterval {
	if len(transitions) == 0 {
		return nil
	}
	intervals := make([]stageInterval, 0, len(transitions))
	for i, t := range transitions {
		iv := stageInterval{StageID: t.ToStageID, Start: t.ChangedAt}
		if i+1 < len(transitions) {
			end := transitions[i+1].ChangedAt
			iv.End = &end
		}
		intervals = append(intervals, iv)
	}
	return intervals
}

// firstEntryInto returns the earliest transition into any of the given
// stages, or nil when the application never entered one.
func firstEntryInto(transitions []*model.StageTransition, stageIDs map[string]bool) (*model.StageTransition, int) {
	for i, t := range transitions {
		if stageIDs[t.ToStageID] {
			return t, i
		}
	}
	return nil, -1
}
