package config

// AnalyticsConfig contains defaults for the analytics reports.
type AnalyticsConfig struct {
	// DefaultWaitBuckets are the review-latency histogram thresholds used
	// when a request supplies none. Must be strictly ascending positive day
	// counts; invalid values are dropped by Sanitize.
	DefaultWaitBuckets []int `env:"ANALYTICS_DEFAULT_WAIT_BUCKETS" envDefault:"2,7,14" envSeparator:","`

	// HistoryPageSize is the default page size for the stage-history listing.
	// The repository hard-caps rows at 500 regardless.
	HistoryPageSize int `env:"ANALYTICS_HISTORY_PAGE_SIZE" envDefault:"100"`
}

// Sanitize applies guardrails to analytics configuration values.
func (a *AnalyticsConfig) Sanitize() {
	if !ascendingPositive(a.DefaultWaitBuckets) {
		a.DefaultWaitBuckets = nil
	}
	if a.HistoryPageSize < 1 {
		a.HistoryPageSize = 100
	}
	if a.HistoryPageSize > 500 {
		a.HistoryPageSize = 500
	}
}

func ascendingPositive(thresholds []int) bool {
	for i, t := range thresholds {
		if t <= 0 {
			return false
		}
		if i > 0 && t <= thresholds[i-1] {
			return false
		}
	}
	return true
}
