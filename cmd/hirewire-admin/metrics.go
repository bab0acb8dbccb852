package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/hirewire/hirewire-api/internal/bootstrap"
	domainauth "github.com/hirewire/hirewire-api/internal/domain/auth"
	"github.com/hirewire/hirewire-api/internal/domain/model"
)

type metricsOptions struct {
	Start   string
	End     string
	JobID   string
	Timeout time.Duration
}

func parseMetricsFlags(args []string) (metricsOptions, error) {
	fs := flag.NewFlagSet("metrics", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := metricsOptions{Timeout: 2 * time.Minute}
	fs.StringVar(&opts.Start, "start", "", "Only count transitions on or after this date (YYYY-MM-DD)")
	fs.StringVar(&opts.End, "end", "", "Only count transitions on or before this date (YYYY-MM-DD)")
	fs.StringVar(&opts.JobID, "job", "", "Restrict the snapshot to a single job ID")
	fs.DurationVar(&opts.Timeout, "timeout", 2*time.Minute, "Maximum duration to wait for the snapshot")

	if err := fs.Parse(args); err != nil {
		return metricsOptions{}, err
	}
	if opts.Timeout <= 0 {
		return metricsOptions{}, errors.New("--timeout must be greater than zero")
	}
	return opts, nil
}

func (o metricsOptions) query() (model.AnalyticsQuery, error) {
	var q model.AnalyticsQuery
	if o.Start != "" {
		start, err := time.Parse("2006-01-02", o.Start)
		if err != nil {
			return q, fmt.Errorf("parse --start: %w", err)
		}
		start = start.UTC()
		q.StartDate = &start
	}
	if o.End != "" {
		end, err := time.Parse("2006-01-02", o.End)
		if err != nil {
			return q, fmt.Errorf("parse --end: %w", err)
		}
		end = end.UTC().Add(24*time.Hour - time.Nanosecond)
		q.EndDate = &end
	}
	if o.JobID != "" {
		jobID := o.JobID
		q.JobID = &jobID
	}
	return q, nil
}

// runMetrics prints the hiring-metrics and dropoff snapshots the API would
// serve, using an ephemeral in-process admin identity. Redis is not needed.
func runMetrics(cmdCtx *commandContext, args []string) error {
	opts, err := parseMetricsFlags(args)
	if err != nil {
		return err
	}
	query, err := opts.query()
	if err != nil {
		return err
	}

	return withDatabase(cmdCtx, opts.Timeout, func(ctx context.Context, db *sql.DB) error {
		container, buildErr := bootstrap.BuildServices(bootstrap.ServiceDeps{
			Config: &cmdCtx.Config,
			DB:     db,
			Logger: cmdCtx.Logger,
		})
		if buildErr != nil {
			return buildErr
		}

		session := &domainauth.Session{
			ID:        "admin-cli",
			UserID:    "admin-cli",
			Role:      domainauth.RoleAdmin,
			ExpiresAt: time.Now().Add(time.Minute),
		}

		metrics, metricsErr := container.Analytics.HiringMetrics(ctx, session, query)
		if metricsErr != nil {
			return fmt.Errorf("hiring metrics: %w", metricsErr)
		}
		dropoff, dropoffErr := container.Analytics.Dropoff(ctx, session, query)
		if dropoffErr != nil {
			return fmt.Errorf("dropoff: %w", dropoffErr)
		}

		return printMetricsSnapshot(metrics, dropoff)
	})
}

func printMetricsSnapshot(metrics *model.HiringMetricsReport, dropoff *model.DropoffReport) error {
	overall := "n/a"
	if metrics.TimeToFill.Overall != nil {
		overall = fmt.Sprintf("%d days", *metrics.TimeToFill.Overall)
	}

	if err := writef(os.Stdout,
		"\nHiring Metrics\n  applications: %d\n  hires:        %d\n  conversion:   %.1f%%\n  time to fill: %s\n",
		metrics.TotalApplications, metrics.TotalHires, metrics.ConversionRate, overall,
	); err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if err := writef(w, "\nSTAGE\tORDER\tAVG DAYS\tTRANSITIONS\tOCCUPANCY\n"); err != nil {
		return err
	}

	occupancy := make(map[string]int, len(dropoff.Stages))
	for _, s := range dropoff.Stages {
		occupancy[s.Name] = s.Count
	}
	for _, s := range metrics.TimeInStage {
		if err := writef(w, "%s\t%d\t%.1f\t%d\t%d\n",
			s.StageName, s.StageOrder, s.AverageDays, s.TransitionCount, occupancy[s.StageName],
		); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if dropoff.Unassigned > 0 {
		if err := writeln(os.Stdout, "\nUnassigned applications:", dropoff.Unassigned); err != nil {
			return err
		}
	}
	return writeln(os.Stdout)
}
