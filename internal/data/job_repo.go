package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/hirewire/hirewire-api/internal/data/database"
	"github.com/hirewire/hirewire-api/internal/data/pgxutil"
	"github.com/hirewire/hirewire-api/internal/domain/model"
	apperrors "github.com/hirewire/hirewire-api/internal/errors"
)

const jobColumns = "id, title, posted_by, hiring_manager_id, created_at"

// JobRepo provides database operations for job postings.
type JobRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewJobRepo creates a new JobRepo with real time provider.
func NewJobRepo(db *sql.DB) *JobRepo {
	return &JobRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewJobRepoWithTimeProvider creates a new JobRepo with a custom time provider (useful for tests).
func NewJobRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *JobRepo {
	return &JobRepo{DB: db, timeProvider: tp}
}

// Create inserts a new job posting.
func (r *JobRepo) Create(ctx context.Context, req *model.CreateJobRequest) (*model.Job, error) {
	if req == nil {
		return nil, errors.New("create job request is required")
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, errors.New("job title is required")
	}
	if req.PostedBy == "" {
		return nil, errors.New("posted_by is required")
	}

	var out model.Job
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO jobs (title, posted_by, hiring_manager_id, created_at)
			VALUES ($1, $2, $3, $4)
			RETURNING `+jobColumns,
			title,
			req.PostedBy,
			req.HiringManagerID,
			r.timeProvider.Now().UTC(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Job])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", apperrors.MapDBError(err))
	}
	return &out, nil
}

// GetByID retrieves a job by ID.
func (r *JobRepo) GetByID(ctx context.Context, id string) (*model.Job, error) {
	var job model.Job
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, "SELECT "+jobColumns+" FROM jobs WHERE id = $1", id)
		if err != nil {
			return err
		}
		defer rows.Close()
		job, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Job])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to get job by ID: %w", err)
	}
	return &job, nil
}

// List retrieves jobs matching the filter, newest first.
func (r *JobRepo) List(ctx context.Context, opts model.JobListOptions) ([]*model.Job, error) {
	query, args := r.buildListQuery(opts, strings.Split(jobColumns, ", "))

	var rowsOut []model.Job
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Job])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	res := make([]*model.Job, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// IDs retrieves just the job IDs matching the filter, for scope resolution.
func (r *JobRepo) IDs(ctx context.Context, opts model.JobListOptions) ([]string, error) {
	query, args := r.buildListQuery(opts, []string{"id"})

	var ids []string
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		ids, err = pgx.CollectRows(rows, pgx.RowTo[string])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list job ids: %w", err)
	}
	return ids, nil
}

func (r *JobRepo) buildListQuery(opts model.JobListOptions, columns []string) (string, []any) {
	queryOpts := []database.ListQueryOption{
		database.WithColumns(columns...),
		database.WithOrderBy("created_at", "DESC"),
	}
	if opts.PostedBy != nil {
		queryOpts = append(queryOpts,
			database.WithCondition(database.WhereCond("posted_by", database.Equal, *opts.PostedBy)))
	}
	if opts.HiringManagerID != nil {
		queryOpts = append(queryOpts,
			database.WithCondition(database.WhereCond("hiring_manager_id", database.Equal, *opts.HiringManagerID)))
	}
	if opts.JobID != nil {
		queryOpts = append(queryOpts,
			database.WithCondition(database.WhereCond("id", database.Equal, *opts.JobID)))
	}
	return database.BuildListQuery(database.NewListQueryOptions("jobs", queryOpts...))
}
