package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lanternhq/lantern/internal/platform/db"
	"github.com/lanternhq/lantern/internal/platform/httpx"
	"github.com/lanternhq/lantern/internal/shared"
)

// ListFilter scopes task listing. Viewer nil means unscoped (privileged).
type ListFilter struct {
	Viewer    *uuid.UUID
	ProjectID *int64
	Skip      int
	Limit     int
}

// Repository defines data access for tasks and their assignee junction rows.
type Repository interface {
	Get(ctx context.Context, id int64) (*Task, error)
	List(ctx context.Context, filter ListFilter) ([]Task, error)
	Create(ctx context.Context, task Task, assignees []uuid.UUID) (*Task, error)
	Update(ctx context.Context, id int64, req UpdateTaskRequest, assignees *[]uuid.UUID) (*Task, error)
	Delete(ctx context.Context, id int64) error
	ProjectOwner(ctx context.Context, projectID int64) (*uuid.UUID, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs the pgx-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const taskColumns = `id, name, description, due_date, priority, status, project_id, created_at, updated_at`

func scanTask(row pgx.Row) (*Task, error) {
	var t Task
	err := row.Scan(
		&t.ID, &t.Name, &t.Description, &t.DueDate, &t.Priority, &t.Status,
		&t.ProjectID, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Task, error) {
	query := fmt.Sprintf("SELECT %s FROM tasks WHERE id = $1", taskColumns)
	task, err := scanTask(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	task.Assignees, err = shared.ListMembers(ctx, r.pool, shared.TaskAssignees, task.ID)
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]Task, error) {
	query := fmt.Sprintf("SELECT %s FROM tasks", taskColumns)
	var (
		clauses []string
		args    []any
	)
	if filter.Viewer != nil {
		args = append(args, *filter.Viewer)
		clauses = append(clauses, fmt.Sprintf(
			`(project_id IN (SELECT id FROM projects WHERE owner_id = $%d)
 OR id IN (SELECT task_id FROM task_assignees WHERE user_id = $%d))`, len(args), len(args)))
	}
	if filter.ProjectID != nil {
		args = append(args, *filter.ProjectID)
		clauses = append(clauses, fmt.Sprintf("project_id = $%d", len(args)))
	}
	for i, clause := range clauses {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	query += fmt.Sprintf(" ORDER BY id LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Skip)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range tasks {
		tasks[i].Assignees, err = shared.ListMembers(ctx, r.pool, shared.TaskAssignees, tasks[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return tasks, nil
}

func (r *repository) Create(ctx context.Context, task Task, assignees []uuid.UUID) (*Task, error) {
	var created *Task
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		query := fmt.Sprintf(`INSERT INTO tasks (name, description, due_date, priority, status, project_id)
VALUES ($1, $2, $3, $4, $5, $6) RETURNING %s`, taskColumns)
		var err error
		created, err = scanTask(tx.QueryRow(ctx, query,
			task.Name, task.Description, task.DueDate, task.Priority, task.Status, task.ProjectID))
		if err != nil {
			return err
		}
		if len(assignees) > 0 {
			if err := shared.ReplaceMembers(ctx, tx, shared.TaskAssignees, created.ID, assignees); err != nil {
				return err
			}
		}
		created.Assignees, err = shared.ListMembers(ctx, tx, shared.TaskAssignees, created.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *repository) Update(ctx context.Context, id int64, req UpdateTaskRequest, assignees *[]uuid.UUID) (*Task, error) {
	var updated *Task
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		query := "UPDATE tasks SET updated_at = NOW()"
		var args []any
		set := func(column string, value any) {
			args = append(args, value)
			query += fmt.Sprintf(", %s = $%d", column, len(args))
		}
		if req.Name != nil {
			set("name", *req.Name)
		}
		if req.Description != nil {
			set("description", *req.Description)
		}
		if req.DueDate != nil {
			set("due_date", *req.DueDate)
		}
		if req.Priority != nil {
			set("priority", *req.Priority)
		}
		if req.Status != nil {
			set("status", *req.Status)
		}
		if req.ProjectID != nil {
			set("project_id", *req.ProjectID)
		}
		args = append(args, id)
		query += fmt.Sprintf(" WHERE id = $%d RETURNING %s", len(args), taskColumns)

		var err error
		updated, err = scanTask(tx.QueryRow(ctx, query, args...))
		if err != nil {
			return err
		}
		if assignees != nil {
			if err := shared.ReplaceMembers(ctx, tx, shared.TaskAssignees, id, *assignees); err != nil {
				return err
			}
		}
		updated.Assignees, err = shared.ListMembers(ctx, tx, shared.TaskAssignees, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the junction rows first, then the task row. The order is
// load-bearing: the assignment table holds a foreign key into tasks.
func (r *repository) Delete(ctx context.Context, id int64) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := shared.ClearMembers(ctx, tx, shared.TaskAssignees, id); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, "DELETE FROM tasks WHERE id = $1", id)
		if err != nil {
			return fmt.Errorf("tasks: delete: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return httpx.ErrNotFound
		}
		return nil
	})
}

func (r *repository) ProjectOwner(ctx context.Context, projectID int64) (*uuid.UUID, error) {
	var owner *uuid.UUID
	err := r.pool.QueryRow(ctx, "SELECT owner_id FROM projects WHERE id = $1", projectID).Scan(&owner)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return owner, nil
}
