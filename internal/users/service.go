package users

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/lanternhq/lantern/internal/auth"
	"github.com/lanternhq/lantern/internal/platform/httpx"
	"github.com/lanternhq/lantern/internal/shared"
)

// ErrSelfDelete is returned when an administrator tries to delete the
// account they are logged in as. It maps to 400, not 403.
var ErrSelfDelete = fmt.Errorf("%w: users cannot delete their own account", httpx.ErrValidation)

// Service applies the account access policy around the repository.
type Service struct {
	repo   Repository
	hasher auth.PasswordHasher
}

// NewService constructs a Service.
func NewService(repo Repository, hasher auth.PasswordHasher) *Service {
	return &Service{repo: repo, hasher: hasher}
}

// List returns all accounts. Privileged callers only.
func (s *Service) List(ctx context.Context, principal shared.Principal, skip, limit int) ([]User, error) {
	if !CanAdminister(principal) {
		return nil, httpx.ErrForbidden
	}
	return s.repo.List(ctx, skip, limit)
}

// Get loads one account: your own, or anyone's when privileged.
func (s *Service) Get(ctx context.Context, principal shared.Principal, id uuid.UUID) (*User, error) {
	if !CanRead(principal, id) {
		return nil, httpx.ErrForbidden
	}
	return s.repo.Get(ctx, id)
}

// Profile loads the calling principal's own account.
func (s *Service) Profile(ctx context.Context, principal shared.Principal) (*User, error) {
	return s.repo.Get(ctx, principal.ID)
}

// Create inserts an account on behalf of an administrator. Omitted roles
// default to [user]; the role names themselves must be from the fixed
// vocabulary.
func (s *Service) Create(ctx context.Context, principal shared.Principal, req CreateUserRequest) (*User, error) {
	if !CanAdminister(principal) {
		return nil, httpx.ErrForbidden
	}
	roles := req.Roles
	if len(roles) == 0 {
		roles = []shared.Role{shared.RoleUser}
	}
	for _, role := range roles {
		if !shared.ValidRole(role) {
			return nil, fmt.Errorf("%w: unknown role %q", httpx.ErrValidation, role)
		}
	}
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("users: hash password: %w", err)
	}
	user := User{
		ID:        uuid.New(),
		Email:     req.Email,
		FullName:  req.FullName,
		AvatarURL: req.AvatarURL,
		Image:     req.Image,
		Roles:     roles,
	}
	return s.repo.Create(ctx, user, hash)
}

// Update rewrites an account, roles included. Privileged callers only.
func (s *Service) Update(ctx context.Context, principal shared.Principal, id uuid.UUID, req UpdateUserRequest) (*User, error) {
	if !CanAdminister(principal) {
		return nil, httpx.ErrForbidden
	}
	if _, err := s.repo.Get(ctx, id); err != nil {
		return nil, err
	}
	u := update{
		Email:     req.Email,
		FullName:  req.FullName,
		AvatarURL: req.AvatarURL,
		Image:     req.Image,
	}
	if req.Password != nil {
		hash, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("users: hash password: %w", err)
		}
		u.PasswordHash = &hash
	}
	if req.Roles != nil {
		for _, role := range *req.Roles {
			if !shared.ValidRole(role) {
				return nil, fmt.Errorf("%w: unknown role %q", httpx.ErrValidation, role)
			}
		}
		raw, err := json.Marshal(*req.Roles)
		if err != nil {
			return nil, fmt.Errorf("users: encode roles: %w", err)
		}
		u.RawRoles = raw
	}
	return s.repo.Update(ctx, id, u)
}

// UpdateProfile rewrites the caller's own account. The payload type carries
// no roles field; there is nothing to strip.
func (s *Service) UpdateProfile(ctx context.Context, principal shared.Principal, req UpdateProfileRequest) (*User, error) {
	u := update{
		Email:     req.Email,
		FullName:  req.FullName,
		AvatarURL: req.AvatarURL,
		Image:     req.Image,
	}
	if req.Password != nil {
		hash, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("users: hash password: %w", err)
		}
		u.PasswordHash = &hash
	}
	return s.repo.Update(ctx, principal.ID, u)
}

// Delete removes an account. An administrator deleting themselves is
// rejected before the repository is consulted.
func (s *Service) Delete(ctx context.Context, principal shared.Principal, id uuid.UUID) error {
	if !CanAdminister(principal) {
		return httpx.ErrForbidden
	}
	if principal.ID == id {
		return ErrSelfDelete
	}
	return s.repo.Delete(ctx, id)
}
