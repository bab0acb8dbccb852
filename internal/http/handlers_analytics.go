// Package httpx provides the JSON HTTP surface of the hirewire analytics API.
package httpx

import (
	"context"
	"errors"
	"net/http"

	domainauth "github.com/hirewire/hirewire-api/internal/domain/auth"
	"github.com/hirewire/hirewire-api/internal/domain/model"
	"github.com/hirewire/hirewire-api/internal/service"
)

// AnalyticsServiceInterface defines the report operations the handlers need.
type AnalyticsServiceInterface interface {
	HiringMetrics(ctx context.Context, session *domainauth.Session, q model.AnalyticsQuery) (*model.HiringMetricsReport, error)
	Dropoff(ctx context.Context, session *domainauth.Session, q model.AnalyticsQuery) (*model.DropoffReport, error)
	SourcePerformance(ctx context.Context, session *domainauth.Session, q model.AnalyticsQuery) ([]model.SourcePerformanceRow, error)
	ReviewLatency(ctx context.Context, session *domainauth.Session, params service.ReviewLatencyParams) (*model.ReviewLatencyReport, error)
	TeamPerformance(ctx context.Context, session *domainauth.Session, q model.AnalyticsQuery) (*model.TeamPerformanceReport, error)
	StageHistory(ctx context.Context, session *domainauth.Session, opts model.StageHistoryListOptions) ([]*model.StageTransition, error)
}

// AnalyticsHandlers provides HTTP handlers for the analytics reports.
type AnalyticsHandlers struct {
	Svc AnalyticsServiceInterface
	// DefaultWaitBuckets fills in hm-feedback requests without waitBuckets.
	DefaultWaitBuckets []int
	// HistoryPageSize replaces the built-in stage-history page size when set.
	HistoryPageSize int
}

// HiringMetrics handles GET /api/analytics/hiring-metrics.
func (h *AnalyticsHandlers) HiringMetrics(w http.ResponseWriter, r *http.Request) {
	q, ok := parseQueryOrFail(w, r)
	if !ok {
		return
	}

	report, err := h.Svc.HiringMetrics(r.Context(), SessionFromContext(r.Context()), q)
	if err != nil {
		writeReportError(w, "hiring_metrics_failed", err)
		return
	}
	WriteJSON(w, http.StatusOK, report)
}

// Dropoff handles GET /api/analytics/dropoff.
func (h *AnalyticsHandlers) Dropoff(w http.ResponseWriter, r *http.Request) {
	q, ok := parseQueryOrFail(w, r)
	if !ok {
		return
	}

	report, err := h.Svc.Dropoff(r.Context(), SessionFromContext(r.Context()), q)
	if err != nil {
		writeReportError(w, "dropoff_failed", err)
		return
	}
	WriteJSON(w, http.StatusOK, report)
}

// SourcePerformance handles GET /api/analytics/source-performance.
func (h *AnalyticsHandlers) SourcePerformance(w http.ResponseWriter, r *http.Request) {
	q, ok := parseQueryOrFail(w, r)
	if !ok {
		return
	}

	rows, err := h.Svc.SourcePerformance(r.Context(), SessionFromContext(r.Context()), q)
	if err != nil {
		writeReportError(w, "source_performance_failed", err)
		return
	}
	if rows == nil {
		rows = []model.SourcePerformanceRow{}
	}
	WriteJSON(w, http.StatusOK, rows)
}

// ReviewLatency handles GET /api/analytics/hm-feedback.
func (h *AnalyticsHandlers) ReviewLatency(w http.ResponseWriter, r *http.Request) {
	q, ok := parseQueryOrFail(w, r)
	if !ok {
		return
	}

	values := r.URL.Query()
	buckets, err := ParseWaitBucketsParam(values, "waitBuckets")
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_query", Err: err})
		return
	}
	if len(buckets) == 0 {
		buckets = h.DefaultWaitBuckets
	}

	report, err := h.Svc.ReviewLatency(r.Context(), SessionFromContext(r.Context()), service.ReviewLatencyParams{
		Query: q,
		Options: model.ReviewLatencyOptions{
			ReviewStageIDs: ParseIDListParam(values, "reviewStageIds"),
			NextStageIDs:   ParseIDListParam(values, "nextStageIds"),
			WaitBuckets:    buckets,
		},
	})
	if err != nil {
		writeReportError(w, "hm_feedback_failed", err)
		return
	}
	WriteJSON(w, http.StatusOK, report)
}

// TeamPerformance handles GET /api/analytics/performance.
func (h *AnalyticsHandlers) TeamPerformance(w http.ResponseWriter, r *http.Request) {
	q, ok := parseQueryOrFail(w, r)
	if !ok {
		return
	}

	report, err := h.Svc.TeamPerformance(r.Context(), SessionFromContext(r.Context()), q)
	if err != nil {
		writeReportError(w, "performance_failed", err)
		return
	}
	WriteJSON(w, http.StatusOK, report)
}

// parseQueryOrFail parses the shared analytics query params, writing a 400 on
// malformed input so the engines only ever see parsed values.
func parseQueryOrFail(w http.ResponseWriter, r *http.Request) (model.AnalyticsQuery, bool) {
	q, err := ParseAnalyticsQuery(r.URL.Query())
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_query", Err: err})
		return model.AnalyticsQuery{}, false
	}
	return q, true
}

// writeReportError maps service errors onto the wire: scope rejections are
// 403, anything else is a store failure.
func writeReportError(w http.ResponseWriter, errCode string, err error) {
	if errors.Is(err, service.ErrForbidden) {
		WriteError(w, ErrorParams{Code: http.StatusForbidden, ErrCode: "forbidden", Err: err})
		return
	}
	WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: errCode, Err: err})
}
