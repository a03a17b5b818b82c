package tasks

import (
	"context"

	"github.com/google/uuid"

	"github.com/lanternhq/lantern/internal/platform/httpx"
	"github.com/lanternhq/lantern/internal/shared"
)

// Service applies the dual-path task access policy around the repository.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns the tasks the principal may see, optionally filtered to one
// project.
func (s *Service) List(ctx context.Context, principal shared.Principal, projectID *int64, skip, limit int) ([]Task, error) {
	filter := ListFilter{ProjectID: projectID, Skip: skip, Limit: limit}
	if !principal.IsPrivileged() {
		id := principal.ID
		filter.Viewer = &id
	}
	return s.repo.List(ctx, filter)
}

// Get loads one task; existence is checked before permission.
func (s *Service) Get(ctx context.Context, principal shared.Principal, id int64) (*Task, error) {
	task, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, principal, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Create inserts a task with its explicit assignee set.
func (s *Service) Create(ctx context.Context, _ shared.Principal, req CreateTaskRequest) (*Task, error) {
	task := Task{
		Name:        req.Name,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    "medium",
		Status:      "task",
		ProjectID:   req.ProjectID,
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	return s.repo.Create(ctx, task, req.Assignees)
}

// Update mutates fields and, when the payload names it, replaces the
// assignee set in the same transaction.
func (s *Service) Update(ctx context.Context, principal shared.Principal, id int64, req UpdateTaskRequest) (*Task, error) {
	task, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, principal, task); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, req, req.Assignees)
}

// Delete removes a task and every assignment row referencing it.
func (s *Service) Delete(ctx context.Context, principal shared.Principal, id int64) error {
	task, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorize(ctx, principal, task); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) authorize(ctx context.Context, principal shared.Principal, task *Task) error {
	var projectOwner *uuid.UUID
	if !principal.IsPrivileged() && task.ProjectID != nil {
		var err error
		projectOwner, err = s.repo.ProjectOwner(ctx, *task.ProjectID)
		if err != nil {
			return err
		}
	}
	if !CanAccess(principal, projectOwner, *task) {
		return httpx.ErrForbidden
	}
	return nil
}
