package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/hirewire/hirewire-api/internal/data/pgxutil"
	"github.com/hirewire/hirewire-api/internal/domain/model"
	apperrors "github.com/hirewire/hirewire-api/internal/errors"
)

const applicationColumns = "id, job_id, candidate_name, source, status, " +
	"current_stage_id, stage_changed_at, stage_changed_by, applied_at"

// ApplicationRepo provides database operations for candidate applications.
type ApplicationRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewApplicationRepo creates a new ApplicationRepo with real time provider.
func NewApplicationRepo(db *sql.DB) *ApplicationRepo {
	return &ApplicationRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewApplicationRepoWithTimeProvider creates a new ApplicationRepo with a custom time provider.
func NewApplicationRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *ApplicationRepo {
	return &ApplicationRepo{DB: db, timeProvider: tp}
}

// Create inserts a new application in the active status with no stage assigned.
func (r *ApplicationRepo) Create(
	ctx context.Context,
	req *model.CreateApplicationRequest,
) (*model.Application, error) {
	if req == nil {
		return nil, errors.New("create application request is required")
	}
	if req.JobID == "" {
		return nil, errors.New("job_id is required")
	}
	name := strings.TrimSpace(req.CandidateName)
	if name == "" {
		return nil, errors.New("candidate_name is required")
	}

	var out model.Application
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO applications (job_id, candidate_name, source, status, applied_at)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING `+applicationColumns,
			req.JobID,
			name,
			strings.TrimSpace(req.Source),
			model.ApplicationStatusActive,
			r.timeProvider.Now().UTC(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Application])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to create application: %w", apperrors.MapDBError(err))
	}
	return &out, nil
}

// GetByID retrieves an application by ID.
func (r *ApplicationRepo) GetByID(ctx context.Context, id string) (*model.Application, error) {
	var app model.Application
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			"SELECT "+applicationColumns+" FROM applications WHERE id = $1", id)
		if err != nil {
			return err
		}
		defer rows.Close()
		app, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Application])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to get application by ID: %w", err)
	}
	return &app, nil
}

// ListByJobIDs retrieves applications for the given jobs. Only the window's
// upper bound applies here: a transition never precedes its application, so
// anything applied after the window end is invisible to every report, while
// applications older than the window start may still carry in-window hire
// events. The service applies the per-engine lower bound in memory.
func (r *ApplicationRepo) ListByJobIDs(
	ctx context.Context,
	jobIDs []string,
	q model.AnalyticsQuery,
) ([]*model.Application, error) {
	if len(jobIDs) == 0 {
		return nil, nil
	}

	query := "SELECT " + applicationColumns + " FROM applications WHERE job_id = ANY($1)"
	args := []any{jobIDs}
	if q.EndDate != nil {
		args = append(args, *q.EndDate)
		query += fmt.Sprintf(" AND applied_at <= $%d", len(args))
	}
	query += " ORDER BY applied_at ASC, id ASC"

	var rowsOut []model.Application
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Application])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list applications by jobs: %w", err)
	}

	res := make([]*model.Application, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// AdvanceStage moves an application to a new stage and appends the transition
// in a single transaction, so the log and the cached stage never diverge.
func (r *ApplicationRepo) AdvanceStage(
	ctx context.Context,
	params model.AdvanceStageParams,
) (*model.StageTransition, error) {
	if params.ApplicationID == "" {
		return nil, ErrApplicationIDRequired
	}
	if params.ToStageID == "" {
		return nil, ErrStageIDRequired
	}
	changedAt := params.ChangedAt
	if changedAt.IsZero() {
		changedAt = r.timeProvider.Now().UTC()
	}

	var out model.StageTransition
	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{
		Fn: func(tx pgx.Tx) error {
			var fromStageID *string
			row := tx.QueryRow(ctx,
				"SELECT current_stage_id FROM applications WHERE id = $1 FOR UPDATE",
				params.ApplicationID)
			if err := row.Scan(&fromStageID); err != nil {
				return err
			}

			rows, err := tx.Query(ctx, `
				INSERT INTO stage_transitions (application_id, from_stage_id, to_stage_id, changed_at, changed_by)
				VALUES ($1, $2, $3, $4, $5)
				RETURNING id, application_id, from_stage_id, to_stage_id, changed_at, changed_by`,
				params.ApplicationID,
				fromStageID,
				params.ToStageID,
				changedAt,
				params.ChangedBy,
			)
			if err != nil {
				return err
			}
			defer rows.Close()
			out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.StageTransition])
			if err != nil {
				return err
			}

			_, err = tx.Exec(ctx, `
				UPDATE applications
				SET current_stage_id = $2, stage_changed_at = $3, stage_changed_by = $4
				WHERE id = $1`,
				params.ApplicationID,
				params.ToStageID,
				changedAt,
				params.ChangedBy,
			)
			return err
		},
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to advance application stage: %w", apperrors.MapDBError(err))
	}
	return &out, nil
}

// UpdateStatus sets the application status.
func (r *ApplicationRepo) UpdateStatus(
	ctx context.Context,
	id string,
	status model.ApplicationStatus,
) error {
	var affected int64
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx,
			"UPDATE applications SET status = $2 WHERE id = $1", id, status)
		if err != nil {
			return err
		}
		affected = ct.RowsAffected()
		return nil
	}); err != nil {
		return fmt.Errorf("failed to update application status: %w", apperrors.MapDBError(err))
	}
	if affected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}
