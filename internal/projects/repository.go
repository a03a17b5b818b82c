package projects

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lanternhq/lantern/internal/platform/db"
	"github.com/lanternhq/lantern/internal/platform/httpx"
)

// Repository defines data access for projects.
type Repository interface {
	Get(ctx context.Context, id int64) (*Project, error)
	List(ctx context.Context, ownerID *uuid.UUID, skip, limit int) ([]Project, error)
	Create(ctx context.Context, project Project) (*Project, error)
	Update(ctx context.Context, id int64, req UpdateProjectRequest) (*Project, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs the pgx-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const projectColumns = `id, name, key, description, status, priority, tags, owner_id, client_id,
start_date, end_date, budget, spent, currency, billing_type, is_archived, created_at, updated_at`

func scanProject(row pgx.Row) (*Project, error) {
	var p Project
	err := row.Scan(
		&p.ID, &p.Name, &p.Key, &p.Description, &p.Status, &p.Priority, &p.Tags,
		&p.OwnerID, &p.ClientID, &p.StartDate, &p.EndDate, &p.Budget, &p.Spent,
		&p.Currency, &p.BillingType, &p.IsArchived, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Project, error) {
	query := fmt.Sprintf("SELECT %s FROM projects WHERE id = $1", projectColumns)
	return scanProject(r.pool.QueryRow(ctx, query, id))
}

func (r *repository) List(ctx context.Context, ownerID *uuid.UUID, skip, limit int) ([]Project, error) {
	query := fmt.Sprintf("SELECT %s FROM projects", projectColumns)
	args := []any{}
	if ownerID != nil {
		query += " WHERE owner_id = $1"
		args = append(args, *ownerID)
	}
	query += fmt.Sprintf(" ORDER BY id LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, skip)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

func (r *repository) Create(ctx context.Context, project Project) (*Project, error) {
	query := fmt.Sprintf(`INSERT INTO projects
(name, key, description, status, priority, tags, owner_id, client_id,
 start_date, end_date, budget, spent, currency, billing_type, is_archived)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
RETURNING %s`, projectColumns)
	created, err := scanProject(r.pool.QueryRow(ctx, query,
		project.Name, project.Key, project.Description, project.Status, project.Priority,
		project.Tags, project.OwnerID, project.ClientID, project.StartDate, project.EndDate,
		project.Budget, project.Spent, project.Currency, project.BillingType, project.IsArchived,
	))
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, httpx.ErrConflict
		}
		return nil, fmt.Errorf("projects: create: %w", err)
	}
	return created, nil
}

func (r *repository) Update(ctx context.Context, id int64, req UpdateProjectRequest) (*Project, error) {
	query := "UPDATE projects SET updated_at = NOW()"
	var args []any
	set := func(column string, value any) {
		args = append(args, value)
		query += fmt.Sprintf(", %s = $%d", column, len(args))
	}
	if req.Name != nil {
		set("name", *req.Name)
	}
	if req.Key != nil {
		set("key", *req.Key)
	}
	if req.Description != nil {
		set("description", *req.Description)
	}
	if req.Status != nil {
		set("status", *req.Status)
	}
	if req.Priority != nil {
		set("priority", *req.Priority)
	}
	if req.Tags != nil {
		set("tags", *req.Tags)
	}
	if req.OwnerID != nil {
		set("owner_id", *req.OwnerID)
	}
	if req.ClientID != nil {
		set("client_id", *req.ClientID)
	}
	if req.StartDate != nil {
		set("start_date", *req.StartDate)
	}
	if req.EndDate != nil {
		set("end_date", *req.EndDate)
	}
	if req.Budget != nil {
		set("budget", *req.Budget)
	}
	if req.Spent != nil {
		set("spent", *req.Spent)
	}
	if req.Currency != nil {
		set("currency", *req.Currency)
	}
	if req.BillingType != nil {
		set("billing_type", *req.BillingType)
	}
	if req.IsArchived != nil {
		set("is_archived", *req.IsArchived)
	}
	args = append(args, id)
	query += fmt.Sprintf(" WHERE id = $%d RETURNING %s", len(args), projectColumns)

	updated, err := scanProject(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, httpx.ErrConflict
		}
		return nil, err
	}
	return updated, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM projects WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("projects: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}
