package clients

import (
	"context"

	"github.com/google/uuid"

	"github.com/lanternhq/lantern/internal/platform/httpx"
	"github.com/lanternhq/lantern/internal/shared"
)

// Service applies the directory policy around the repository: reads are open
// to any authenticated principal, writes require privilege.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns a page of the directory.
func (s *Service) List(ctx context.Context, skip, limit int) ([]Client, error) {
	return s.repo.List(ctx, skip, limit)
}

// Get loads one client.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Client, error) {
	return s.repo.Get(ctx, id)
}

// Create inserts a client. Privileged callers only.
func (s *Service) Create(ctx context.Context, principal shared.Principal, req CreateClientRequest) (*Client, error) {
	if !principal.IsPrivileged() {
		return nil, httpx.ErrForbidden
	}
	client := Client{
		ID:                uuid.New(),
		CompanyName:       req.CompanyName,
		ContactPersonName: req.ContactPersonName,
		ContactEmail:      req.ContactEmail,
		WebsiteURL:        req.WebsiteURL,
	}
	return s.repo.Create(ctx, client)
}

// Update mutates whitelisted fields. The existence check still precedes the
// permission check, matching every other resource.
func (s *Service) Update(ctx context.Context, principal shared.Principal, id uuid.UUID, req UpdateClientRequest) (*Client, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return nil, err
	}
	if !principal.IsPrivileged() {
		return nil, httpx.ErrForbidden
	}
	return s.repo.Update(ctx, id, req)
}

// Delete removes a client. Privileged callers only.
func (s *Service) Delete(ctx context.Context, principal shared.Principal, id uuid.UUID) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}
	if !principal.IsPrivileged() {
		return httpx.ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}
