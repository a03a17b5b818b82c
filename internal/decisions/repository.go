package decisions

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lanternhq/lantern/internal/platform/httpx"
)

// Repository defines data access for decisions.
type Repository interface {
	Get(ctx context.Context, id int64) (*Decision, error)
	List(ctx context.Context, ownerID *uuid.UUID, skip, limit int) ([]Decision, error)
	Create(ctx context.Context, decision Decision) (*Decision, error)
	Update(ctx context.Context, id int64, req UpdateDecisionRequest) (*Decision, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs the pgx-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func scanDecision(row pgx.Row) (*Decision, error) {
	var d Decision
	if err := row.Scan(&d.ID, &d.Name, &d.DueDate, &d.UserID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Decision, error) {
	return scanDecision(r.pool.QueryRow(ctx,
		"SELECT id, name, due_date, user_id FROM decisions WHERE id = $1", id))
}

func (r *repository) List(ctx context.Context, ownerID *uuid.UUID, skip, limit int) ([]Decision, error) {
	query := "SELECT id, name, due_date, user_id FROM decisions"
	args := []any{}
	if ownerID != nil {
		query += " WHERE user_id = $1"
		args = append(args, *ownerID)
	}
	query += fmt.Sprintf(" ORDER BY id LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, skip)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var decisions []Decision
	for rows.Next() {
		d, err := scanDecision(rows)
		if err != nil {
			return nil, err
		}
		decisions = append(decisions, *d)
	}
	return decisions, rows.Err()
}

func (r *repository) Create(ctx context.Context, decision Decision) (*Decision, error) {
	return scanDecision(r.pool.QueryRow(ctx,
		`INSERT INTO decisions (name, due_date, user_id) VALUES ($1, $2, $3)
RETURNING id, name, due_date, user_id`,
		decision.Name, decision.DueDate, decision.UserID))
}

func (r *repository) Update(ctx context.Context, id int64, req UpdateDecisionRequest) (*Decision, error) {
	query := "UPDATE decisions SET id = id"
	var args []any
	set := func(column string, value any) {
		args = append(args, value)
		query += fmt.Sprintf(", %s = $%d", column, len(args))
	}
	if req.Name != nil {
		set("name", *req.Name)
	}
	if req.DueDate != nil {
		set("due_date", *req.DueDate)
	}
	if req.UserID != nil {
		set("user_id", *req.UserID)
	}
	args = append(args, id)
	query += fmt.Sprintf(" WHERE id = $%d RETURNING id, name, due_date, user_id", len(args))
	return scanDecision(r.pool.QueryRow(ctx, query, args...))
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM decisions WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("decisions: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}
