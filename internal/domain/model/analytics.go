package model

import "time"

// AnalyticsQuery is the ephemeral filter object every analytics call carries.
// Dates arrive pre-validated from the HTTP boundary: fields are either nil or
// valid instants. The caller scope (which jobs are visible) is resolved
// separately by the service from the session role.
type AnalyticsQuery struct {
	StartDate *time.Time
	EndDate   *time.Time
	JobID     *string
}

// InRange reports whether t falls inside the query's date window. Both
// bounds are inclusive; a nil bound is open.
func (q AnalyticsQuery) InRange(t time.Time) bool {
	if q.StartDate != nil && t.Before(*q.StartDate) {
		return false
	}
	if q.EndDate != nil && t.After(*q.EndDate) {
		return false
	}
	return true
}

// ReviewLatencyOptions carries the optional knobs of the hm-feedback
// endpoint. Empty ReviewStageIDs means "classify by stage role/name";
// empty NextStageIDs means "any next transition resolves the review";
// empty WaitBuckets disables the histogram.
type ReviewLatencyOptions struct {
	ReviewStageIDs []string
	NextStageIDs   []string
	// WaitBuckets holds ascending day thresholds for the wait-time histogram.
	WaitBuckets []int
}

// TimeToFillJob is the per-job slice of the time-to-fill report.
type TimeToFillJob struct {
	JobID          string    `json:"jobId"`
	JobTitle       string    `json:"jobTitle"`
	AverageDays    int       `json:"averageDays"`
	HiredCount     int       `json:"hiredCount"`
	OldestHireDate time.Time `json:"oldestHireDate"`
	NewestHireDate time.Time `json:"newestHireDate"`
}

// TimeToFillReport aggregates hire latency. Overall is nil when no hires are
// in scope (never zero, never NaN).
type TimeToFillReport struct {
	Overall *int            `json:"overall"`
	ByJob   []TimeToFillJob `json:"byJob"`
}

// StageDurationStats is the per-stage row of the time-in-stage report.
// Stages with zero closed intervals report explicit zeros.
type StageDurationStats struct {
	StageName       string  `json:"stageName"`
	StageOrder      int     `json:"stageOrder"`
	AverageDays     float64 `json:"averageDays"`
	TransitionCount int     `json:"transitionCount"`
	MinDays         int     `json:"minDays"`
	MaxDays         int     `json:"maxDays"`
}

// HiringMetricsReport is the hiring-metrics endpoint payload.
type HiringMetricsReport struct {
	TimeToFill        TimeToFillReport     `json:"timeToFill"`
	TimeInStage       []StageDurationStats `json:"timeInStage"`
	TotalApplications int                  `json:"totalApplications"`
	TotalHires        int                  `json:"totalHires"`
	ConversionRate    float64              `json:"conversionRate"`
}

// FunnelStageCount is the current occupancy of one stage.
type FunnelStageCount struct {
	Name  string `json:"name"`
	Order int    `json:"order"`
	Count int    `json:"count"`
}

// FunnelConversion is one stage's conversion from its predecessor, as an
// integer percentage. The first stage is always 100.
type FunnelConversion struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
	Rate  int    `json:"rate"`
}

// DropoffReport is the dropoff endpoint payload: a point-in-time snapshot of
// currentStage occupancy, independent of the transition log.
type DropoffReport struct {
	Stages      []FunnelStageCount `json:"stages"`
	Unassigned  int                `json:"unassigned"`
	Conversions []FunnelConversion `json:"conversions"`
}

// SourcePerformanceRow aggregates one acquisition source.
type SourcePerformanceRow struct {
	Source     string  `json:"source"`
	Apps       int     `json:"apps"`
	Shortlist  int     `json:"shortlist"`
	Hires      int     `json:"hires"`
	Conversion float64 `json:"conversion"`
}

// WaitBucket is one labeled range of the review wait-time histogram.
type WaitBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// ReviewLatencyReport is the hm-feedback endpoint payload. AverageDays is nil
// when no review stages resolve or no samples exist.
type ReviewLatencyReport struct {
	AverageDays  *float64     `json:"averageDays"`
	WaitingCount int          `json:"waitingCount"`
	SampleSize   int          `json:"sampleSize"`
	Buckets      []WaitBucket `json:"buckets"`
}

// RecruiterPerformance is the per-recruiter rollup row.
type RecruiterPerformance struct {
	RecruiterID          string   `json:"recruiterId"`
	Name                 string   `json:"name"`
	JobsHandled          int      `json:"jobsHandled"`
	CandidatesScreened   int      `json:"candidatesScreened"`
	AvgDaysToFirstAction *float64 `json:"avgDaysToFirstAction"`
	AvgDaysBetweenStages *float64 `json:"avgDaysBetweenStages"`
}

// HiringManagerPerformance is the per-hiring-manager rollup row.
type HiringManagerPerformance struct {
	HiringManagerID string              `json:"hiringManagerId"`
	Name            string              `json:"name"`
	JobsOwned       int                 `json:"jobsOwned"`
	ReviewLatency   ReviewLatencyReport `json:"reviewLatency"`
}

// TeamPerformanceReport is the performance endpoint payload.
type TeamPerformanceReport struct {
	Recruiters     []RecruiterPerformance     `json:"recruiters"`
	HiringManagers []HiringManagerPerformance `json:"hiringManagers"`
}
