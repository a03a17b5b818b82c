package projects

import (
	"context"

	"github.com/lanternhq/lantern/internal/platform/httpx"
	"github.com/lanternhq/lantern/internal/shared"
)

// Service applies the project access policy around the repository.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns the projects the principal may see.
func (s *Service) List(ctx context.Context, principal shared.Principal, skip, limit int) ([]Project, error) {
	return s.repo.List(ctx, ListScope(principal), skip, limit)
}

// Get loads one project. The existence check runs before the permission
// check: probing a nonexistent id yields NotFound, never Forbidden.
func (s *Service) Get(ctx context.Context, principal shared.Principal, id int64) (*Project, error) {
	project, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanAccess(principal, *project) {
		return nil, httpx.ErrForbidden
	}
	return project, nil
}

// Create inserts a new project, defaulting the owner to the caller when the
// payload leaves it unset.
func (s *Service) Create(ctx context.Context, principal shared.Principal, req CreateProjectRequest) (*Project, error) {
	project := Project{
		Name:        req.Name,
		Key:         req.Key,
		Description: req.Description,
		Status:      "planning",
		Priority:    "medium",
		Tags:        req.Tags,
		OwnerID:     req.OwnerID,
		ClientID:    req.ClientID,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Budget:      req.Budget,
		Currency:    "USD",
		BillingType: "non_billable",
	}
	if req.Status != "" {
		project.Status = req.Status
	}
	if req.Priority != "" {
		project.Priority = req.Priority
	}
	if req.Currency != nil {
		project.Currency = *req.Currency
	}
	if req.BillingType != nil {
		project.BillingType = *req.BillingType
	}
	if project.OwnerID == nil {
		id := principal.ID
		project.OwnerID = &id
	}
	return s.repo.Create(ctx, project)
}

// Update mutates whitelisted fields after the policy check passes.
func (s *Service) Update(ctx context.Context, principal shared.Principal, id int64, req UpdateProjectRequest) (*Project, error) {
	project, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanAccess(principal, *project) {
		return nil, httpx.ErrForbidden
	}
	return s.repo.Update(ctx, id, req)
}

// Delete removes a project after the policy check passes.
func (s *Service) Delete(ctx context.Context, principal shared.Principal, id int64) error {
	project, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if !CanAccess(principal, *project) {
		return httpx.ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}
