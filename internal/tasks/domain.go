package tasks

import (
	"time"

	"github.com/google/uuid"
)

// Task is a unit of work inside a project. Tasks carry no owner column:
// access derives either from owning the parent project or from appearing in
// the task_assignees junction table. A task with a null project_id is
// reachable only through assignment.
type Task struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Description *string     `json:"description"`
	DueDate     *string     `json:"due_date"`
	Priority    string      `json:"priority"`
	Status      string      `json:"status"`
	ProjectID   *int64      `json:"project_id"`
	Assignees   []uuid.UUID `json:"assignees"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// CreateTaskRequest carries the fields accepted at creation. Assignees are
// supplied explicitly; there is no ownership default to fall back on.
type CreateTaskRequest struct {
	Name        string      `json:"name" validate:"required"`
	Description *string     `json:"description"`
	DueDate     *string     `json:"due_date"`
	Priority    *string     `json:"priority"`
	Status      *string     `json:"status"`
	ProjectID   *int64      `json:"project_id"`
	Assignees   []uuid.UUID `json:"assignees"`
}

// UpdateTaskRequest lists the mutable fields. A nil Assignees pointer means
// the caller did not touch membership; an explicit empty slice clears it.
type UpdateTaskRequest struct {
	Name        *string      `json:"name"`
	Description *string      `json:"description"`
	DueDate     *string      `json:"due_date"`
	Priority    *string      `json:"priority"`
	Status      *string      `json:"status"`
	ProjectID   *int64       `json:"project_id"`
	Assignees   *[]uuid.UUID `json:"assignees"`
}
