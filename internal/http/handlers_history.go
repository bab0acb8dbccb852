package httpx

import (
	"net/http"
	"strings"

	"github.com/hirewire/hirewire-api/internal/data"
	"github.com/hirewire/hirewire-api/internal/domain/model"
)

const defaultHistoryPageSize = 100

// StageHistory handles GET /api/stage-history. The repository hard-caps the
// row count regardless of the requested limit.
func (h *AnalyticsHandlers) StageHistory(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()

	startDate, err := ParseDateParam(values, "startDate")
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_query", Err: err})
		return
	}
	endDate, err := ParseDateParam(values, "endDate")
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_query", Err: err})
		return
	}

	pageSize := h.HistoryPageSize
	if pageSize < 1 {
		pageSize = defaultHistoryPageSize
	}
	opts := model.StageHistoryListOptions{
		StartDate: startDate,
		EndDate:   endDate,
		Limit:     parseIntQuery(values, "limit", pageSize),
	}
	if appID := strings.TrimSpace(values.Get("applicationId")); appID != "" {
		opts.ApplicationID = &appID
	}
	if opts.Limit < 1 {
		opts.Limit = pageSize
	}
	if opts.Limit > data.DefaultHistoryLimit {
		opts.Limit = data.DefaultHistoryLimit
	}

	rows, err := h.Svc.StageHistory(r.Context(), SessionFromContext(r.Context()), opts)
	if err != nil {
		writeReportError(w, "stage_history_failed", err)
		return
	}
	if rows == nil {
		rows = []*model.StageTransition{}
	}
	WriteJSON(w, http.StatusOK, rows)
}
