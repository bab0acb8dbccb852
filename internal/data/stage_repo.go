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

const stageColumns = "id, name, stage_order, role, is_terminal"

// StageRepo provides database operations for pipeline stages.
type StageRepo struct {
	DB *sql.DB
}

// NewStageRepo creates a new StageRepo.
func NewStageRepo(db *sql.DB) *StageRepo {
	return &StageRepo{DB: db}
}

// Create inserts a new pipeline stage.
func (r *StageRepo) Create(
	ctx context.Context,
	req *model.CreateStageRequest,
) (*model.PipelineStage, error) {
	if req == nil {
		return nil, errors.New("create stage request is required")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errors.New("stage name is required")
	}
	role := req.Role
	if role == "" {
		role = model.StageRoleCustom
	}

	var out model.PipelineStage
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO pipeline_stages (name, stage_order, role, is_terminal)
			VALUES ($1, $2, $3, $4)
			RETURNING `+stageColumns,
			name,
			req.Order,
			role,
			req.IsTerminal,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.PipelineStage])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to create pipeline stage: %w", apperrors.MapDBError(err))
	}
	return &out, nil
}

// GetByID retrieves a pipeline stage by ID.
func (r *StageRepo) GetByID(ctx context.Context, id string) (*model.PipelineStage, error) {
	var stage model.PipelineStage
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			"SELECT "+stageColumns+" FROM pipeline_stages WHERE id = $1", id)
		if err != nil {
			return err
		}
		defer rows.Close()
		stage, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.PipelineStage])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStageNotFound
		}
		return nil, fmt.Errorf("failed to get stage by ID: %w", err)
	}
	return &stage, nil
}

// ListAll retrieves every pipeline stage ordered by funnel position.
// Ties on stage_order fall back to id so callers see a stable sequence.
func (r *StageRepo) ListAll(ctx context.Context) ([]*model.PipelineStage, error) {
	var rowsOut []model.PipelineStage
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			"SELECT "+stageColumns+" FROM pipeline_stages ORDER BY stage_order ASC, id ASC")
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.PipelineStage])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list pipeline stages: %w", err)
	}

	res := make([]*model.PipelineStage, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}
