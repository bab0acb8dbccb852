package model

import (
	"sort"
	"strings"
)

// StageRole tags a pipeline stage with its semantic position in the funnel.
// Legacy stages created before the role column default to custom, in which
// case classification falls back to name heuristics.
type StageRole string

const (
	StageRoleApplied  StageRole = "applied"
	StageRoleReview   StageRole = "review"
	StageRoleOffer    StageRole = "offer"
	StageRoleHired    StageRole = "hired"
	StageRoleRejected StageRole = "rejected"
	StageRoleCustom   StageRole = "custom"
)

// ParseStageRole normalizes a stage role string and reports whether it is
// supported.
func ParseStageRole(value string) (StageRole, bool) {
	role := StageRole(strings.ToLower(strings.TrimSpace(value)))
	switch role {
	case StageRoleApplied, StageRoleReview, StageRoleOffer, StageRoleHired, StageRoleRejected, StageRoleCustom:
		return role, true
	default:
		return "", false
	}
}

// PipelineStage is one step of the hiring funnel. Order defines the funnel
// sequence; the terminal ("hired") stage is marked explicitly via IsTerminal,
// with the highest-order stage as the legacy fallback.
type PipelineStage struct {
	ID         string    `json:"id"          db:"id"`
	Name       string    `json:"name"        db:"name"`
	Order      int       `json:"order"       db:"stage_order"`
	Role       StageRole `json:"role"        db:"role"`
	IsTerminal bool      `json:"is_terminal" db:"is_terminal"`
}

// CreateStageRequest carries the fields needed to add a pipeline stage.
type CreateStageRequest struct {
	Name       string    `json:"name"`
	Order      int       `json:"order"`
	Role       StageRole `json:"role"`
	IsTerminal bool      `json:"is_terminal"`
}

// IsReviewStage reports whether the stage counts as a review stage.
// The explicit role tag wins; untagged (custom/empty) stages fall back to the
// legacy case-insensitive "review" name match.
func (s PipelineStage) IsReviewStage() bool {
	switch s.Role {
	case StageRoleCustom, "":
		return strings.Contains(strings.ToLower(s.Name), "review")
	default:
		return s.Role == StageRoleReview
	}
}

// TerminalStage picks the funnel's terminal ("hired") stage from a stage set.
// An explicitly flagged stage wins; otherwise the stage with the maximum
// order is used. Returns nil for an empty set.
func TerminalStage(stages []PipelineStage) *PipelineStage {
	var terminal *PipelineStage
	for i := range stages {
		if stages[i].IsTerminal {
			return &stages[i]
		}
		if terminal == nil || stages[i].Order > terminal.Order {
			terminal = &stages[i]
		}
	}
	return terminal
}

// SortStagesByOrder returns a copy of stages ordered by funnel position.
// Ties fall back to id order so output is deterministic.
func SortStagesByOrder(stages []PipelineStage) []PipelineStage {
	sorted := make([]PipelineStage, len(stages))
	copy(sorted, stages)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Order != sorted[j].Order {
			return sorted[i].Order < sorted[j].Order
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}
