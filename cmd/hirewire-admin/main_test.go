package main

import "testing"

func TestIsLikelyRemoteHost(t *testing.T) {
	cases := []struct {
		host string
		want bool
	}{
		{"localhost", false},
		{"127.0.0.1", false},
		{"::1", false},
		{"", false},
		{"db.local", false},
		{"pg.internal", false},
		{"db.prod.example.com", true},
		{"10.1.2.3", true},
	}
	for _, tc := range cases {
		if got := isLikelyRemoteHost(tc.host); got != tc.want {
			t.Errorf("isLikelyRemoteHost(%q) = %v, want %v", tc.host, got, tc.want)
		}
	}
}

func TestQuoteIdentifier(t *testing.T) {
	if got := quoteIdentifier(`hire"wire`); got != `"hire""wire"` {
		t.Errorf("quoteIdentifier returned %s", got)
	}
}

func TestParseMetricsFlags(t *testing.T) {
	opts, err := parseMetricsFlags([]string{"-start", "2026-01-01", "-end", "2026-02-01", "-job", "job-1"})
	if err != nil {
		t.Fatal(err)
	}
	q, err := opts.query()
	if err != nil {
		t.Fatal(err)
	}
	if q.StartDate == nil || q.EndDate == nil || q.JobID == nil {
		t.Fatal("expected all query filters to be set")
	}
	if q.EndDate.Before(*q.StartDate) {
		t.Error("end date should not precede start date")
	}
	if *q.JobID != "job-1" {
		t.Errorf("job ID = %s", *q.JobID)
	}
}
