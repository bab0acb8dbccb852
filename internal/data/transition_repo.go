package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hirewire/hirewire-api/internal/data/database"
	"github.com/hirewire/hirewire-api/internal/data/pgxutil"
	"github.com/hirewire/hirewire-api/internal/domain/model"
)

const transitionColumns = "id, application_id, from_stage_id, to_stage_id, changed_at, changed_by"

// DefaultHistoryLimit caps stage-history listings when the caller does not
// set an explicit limit.
const DefaultHistoryLimit = 500

// TransitionRepo provides read access to the append-only stage transition log.
// Writes happen through ApplicationRepo.AdvanceStage so the log and the cached
// stage on the application row stay consistent.
type TransitionRepo struct {
	DB *sql.DB
}

// NewTransitionRepo creates a new TransitionRepo.
func NewTransitionRepo(db *sql.DB) *TransitionRepo {
	return &TransitionRepo{DB: db}
}

// ListByApplicationIDs retrieves transitions for the given applications
// ordered by changed_at asc, id asc. The secondary id ordering keeps interval
// reconstruction deterministic when two transitions share a timestamp.
func (r *TransitionRepo) ListByApplicationIDs(
	ctx context.Context,
	applicationIDs []string,
) ([]*model.StageTransition, error) {
	if len(applicationIDs) == 0 {
		return nil, nil
	}

	var rowsOut []model.StageTransition
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			"SELECT "+transitionColumns+` FROM stage_transitions
			WHERE application_id = ANY($1)
			ORDER BY changed_at ASC, id ASC`,
			applicationIDs)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.StageTransition])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list stage transitions: %w", err)
	}

	res := make([]*model.StageTransition, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// ListHistory retrieves transitions matching opts, newest first, capped at
// opts.Limit rows (DefaultHistoryLimit when unset).
func (r *TransitionRepo) ListHistory(
	ctx context.Context,
	opts model.StageHistoryListOptions,
) ([]*model.StageTransition, error) {
	limit := opts.Limit
	if limit <= 0 || limit > DefaultHistoryLimit {
		limit = DefaultHistoryLimit
	}

	queryOpts := []database.ListQueryOption{
		database.WithColumns("id", "application_id", "from_stage_id", "to_stage_id", "changed_at", "changed_by"),
		database.WithOrderBy("changed_at", "DESC"),
		database.WithLimit(limit),
	}
	if opts.ApplicationID != nil {
		queryOpts = append(queryOpts,
			database.WithCondition(database.WhereCond("application_id", database.Equal, *opts.ApplicationID)))
	}
	if len(opts.JobIDs) > 0 {
		queryOpts = append(queryOpts, database.WithCondition(database.WhereRawCond(
			"application_id IN (SELECT id FROM applications WHERE job_id = ANY($1))", opts.JobIDs)))
	}
	if opts.StartDate != nil {
		queryOpts = append(queryOpts,
			database.WithCondition(database.WhereCond("changed_at", database.GreaterThanOrEqual, *opts.StartDate)))
	}
	if opts.EndDate != nil {
		queryOpts = append(queryOpts,
			database.WithCondition(database.WhereCond("changed_at", database.LessThanOrEqual, *opts.EndDate)))
	}
	query, args := database.BuildListQuery(database.NewListQueryOptions("stage_transitions", queryOpts...))

	var rowsOut []model.StageTransition
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.StageTransition])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list stage history: %w", err)
	}

	res := make([]*model.StageTransition, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}
