package decisions

import (
	"context"

	"github.com/lanternhq/lantern/internal/platform/httpx"
	"github.com/lanternhq/lantern/internal/shared"
)

// Service applies the decision access policy around the repository.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns the decisions the principal may see.
func (s *Service) List(ctx context.Context, principal shared.Principal, skip, limit int) ([]Decision, error) {
	return s.repo.List(ctx, ListScope(principal), skip, limit)
}

// Get loads one decision; existence is checked before permission.
func (s *Service) Get(ctx context.Context, principal shared.Principal, id int64) (*Decision, error) {
	decision, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanAccess(principal, *decision) {
		return nil, httpx.ErrForbidden
	}
	return decision, nil
}

// Create inserts a decision, defaulting the owner to the caller.
func (s *Service) Create(ctx context.Context, principal shared.Principal, req CreateDecisionRequest) (*Decision, error) {
	decision := Decision{Name: req.Name, DueDate: req.DueDate, UserID: req.UserID}
	if decision.UserID == nil {
		id := principal.ID
		decision.UserID = &id
	}
	return s.repo.Create(ctx, decision)
}

// Update mutates whitelisted fields after the policy check passes.
func (s *Service) Update(ctx context.Context, principal shared.Principal, id int64, req UpdateDecisionRequest) (*Decision, error) {
	decision, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanAccess(principal, *decision) {
		return nil, httpx.ErrForbidden
	}
	return s.repo.Update(ctx, id, req)
}

// Delete removes a decision after the policy check passes.
func (s *Service) Delete(ctx context.Context, principal shared.Principal, id int64) error {
	decision, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if !CanAccess(principal, *decision) {
		return httpx.ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}
