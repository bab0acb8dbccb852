package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hirewire/hirewire-api/internal/data/pgxutil"
	"github.com/hirewire/hirewire-api/internal/domain/model"
)

const userColumns = "id, first_name, last_name, email, role"

// UserRepo provides read access to user records. User lifecycle (signup,
// password, deactivation) belongs to the auth gateway; this service only
// resolves names and roles for reports and scoping.
type UserRepo struct {
	DB *sql.DB
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

// GetByID retrieves a user by ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
		if err != nil {
			return err
		}
		defer rows.Close()
		user, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return &user, nil
}

// GetByIDs batch-loads users keyed by ID. IDs without a matching row are
// simply absent from the result.
func (r *UserRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*model.User, error) {
	if len(ids) == 0 {
		return map[string]*model.User{}, nil
	}

	var rowsOut []model.User
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			"SELECT "+userColumns+" FROM users WHERE id = ANY($1)", ids)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.User])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to get users by IDs: %w", err)
	}

	res := make(map[string]*model.User, len(rowsOut))
	for i := range rowsOut {
		res[rowsOut[i].ID] = &rowsOut[i]
	}
	return res, nil
}
