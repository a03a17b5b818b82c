package notes

import (
	"context"

	"github.com/lanternhq/lantern/internal/platform/httpx"
	"github.com/lanternhq/lantern/internal/shared"
)

// Service applies the note access policy around the repository.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns the notes the principal may see, optionally filtered by task.
func (s *Service) List(ctx context.Context, principal shared.Principal, taskID *int64, skip, limit int) ([]Note, error) {
	return s.repo.List(ctx, ListFilter{
		Owner:  ListScope(principal),
		TaskID: taskID,
		Skip:   skip,
		Limit:  limit,
	})
}

// Get loads one note. The existence check runs before the permission check:
// probing a nonexistent id yields NotFound, never Forbidden.
func (s *Service) Get(ctx context.Context, principal shared.Principal, id int64) (*Note, error) {
	note, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanAccess(principal, *note) {
		return nil, httpx.ErrForbidden
	}
	return note, nil
}

// Create inserts a new note owned by the caller.
func (s *Service) Create(ctx context.Context, principal shared.Principal, req CreateNoteRequest) (*Note, error) {
	note := Note{
		Title:      req.Title,
		Content:    req.Content,
		Type:       req.Type,
		Tags:       req.Tags,
		CoverImage: req.CoverImage,
		UserID:     principal.ID,
		TaskID:     req.TaskID,
	}
	if req.IsPinned != nil {
		note.IsPinned = *req.IsPinned
	}
	if req.IsArchived != nil {
		note.IsArchived = *req.IsArchived
	}
	if req.IsFavorite != nil {
		note.IsFavorite = *req.IsFavorite
	}
	return s.repo.Create(ctx, note, req.SharedWith)
}

// Update mutates whitelisted fields after the policy check passes.
func (s *Service) Update(ctx context.Context, principal shared.Principal, id int64, req UpdateNoteRequest) (*Note, error) {
	note, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanAccess(principal, *note) {
		return nil, httpx.ErrForbidden
	}
	return s.repo.Update(ctx, id, req, req.SharedWith)
}

// Delete removes a note after the policy check passes.
func (s *Service) Delete(ctx context.Context, principal shared.Principal, id int64) error {
	note, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if !CanAccess(principal, *note) {
		return httpx.ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}
