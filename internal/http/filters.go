package httpx

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hirewire/hirewire-api/internal/domain/model"
)

const dateOnlyLayout = "2006-01-02"

// ParseDateParam parses an optional date query parameter. Accepted layouts are
// a bare date (2006-01-02) or full RFC3339. A missing/blank parameter returns
// nil with no error.
func ParseDateParam(q url.Values, key string) (*time.Time, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(dateOnlyLayout, raw); err == nil {
		t = t.UTC()
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		t = t.UTC()
		return &t, nil
	}
	return nil, fmt.Errorf("%s must be an ISO-8601 date (2006-01-02) or RFC3339 timestamp", key)
}

// ParseIDListParam parses an optional comma-separated id list. Blank entries
// are dropped; a missing parameter returns nil.
func ParseIDListParam(q url.Values, key string) []string {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			ids = append(ids, p)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	return ids
}

// ParseWaitBucketsParam parses the comma-separated day thresholds for the
// review-latency histogram. Thresholds must be positive integers in strictly
// ascending order.
func ParseWaitBucketsParam(q url.Values, key string) ([]int, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	thresholds := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("%s must contain whole day counts", key)
		}
		if n <= 0 {
			return nil, fmt.Errorf("%s thresholds must be positive", key)
		}
		if len(thresholds) > 0 && n <= thresholds[len(thresholds)-1] {
			return nil, fmt.Errorf("%s thresholds must be strictly ascending", key)
		}
		thresholds = append(thresholds, n)
	}
	return thresholds, nil
}

// ParseAnalyticsQuery parses the common startDate/endDate/jobId triple shared
// by all analytics endpoints. A bare end date is widened to the end of that
// day so the bound stays inclusive.
func ParseAnalyticsQuery(q url.Values) (model.AnalyticsQuery, error) {
	var out model.AnalyticsQuery

	start, err := ParseDateParam(q, "startDate")
	if err != nil {
		return out, err
	}
	end, err := ParseDateParam(q, "endDate")
	if err != nil {
		return out, err
	}
	if end != nil && isBareDate(q.Get("endDate")) {
		e := end.Add(24*time.Hour - time.Nanosecond)
		end = &e
	}
	if start != nil && end != nil && end.Before(*start) {
		return out, fmt.Errorf("endDate must not be before startDate")
	}

	out.StartDate = start
	out.EndDate = end
	if jobID := strings.TrimSpace(q.Get("jobId")); jobID != "" {
		out.JobID = &jobID
	}
	return out, nil
}

func isBareDate(raw string) bool {
	_, err := time.Parse(dateOnlyLayout, strings.TrimSpace(raw))
	return err == nil
}

// parseIntQuery returns the integer value of a query param or a default.
// It is tolerant of missing/invalid values.
func parseIntQuery(q url.Values, key string, def int) int {
	if v := q.Get(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}
