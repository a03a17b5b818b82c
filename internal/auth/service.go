package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/lanternhq/lantern/internal/platform/httpx"
	"github.com/lanternhq/lantern/internal/shared"
)

// Service wraps authentication business rules.
type Service struct {
	repo    Repository
	hasher  PasswordHasher
	codec   *Codec
	revoked *RevocationList
}

// NewService constructs a new Service.
func NewService(repo Repository, hasher PasswordHasher, codec *Codec, revoked *RevocationList) *Service {
	return &Service{repo: repo, hasher: hasher, codec: codec, revoked: revoked}
}

// Register creates a new account with the default user role.
func (s *Service) Register(ctx context.Context, email, password string, fullName *string) (*User, error) {
	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: digest,
		FullName:     fullName,
		Roles:        []shared.Role{shared.RoleUser},
	})
}

// Login validates credentials and issues a signed access token.
func (s *Service) Login(ctx context.Context, email, password string) (string, Claims, *User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		// An unknown email and a wrong password look identical to the caller.
		return "", Claims{}, nil, fmt.Errorf("%w: incorrect email or password", httpx.ErrUnauthenticated)
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", Claims{}, nil, fmt.Errorf("%w: incorrect email or password", httpx.ErrUnauthenticated)
	}
	token, claims, err := s.codec.Issue(user.Email)
	if err != nil {
		return "", Claims{}, nil, err
	}
	return token, claims, user, nil
}

// Logout revokes the presented token until its natural expiry. An absent or
// unparsable credential is not an error: the cookie gets cleared either way.
func (s *Service) Logout(ctx context.Context, credential string) error {
	if credential == "" {
		return nil
	}
	claims, err := s.codec.Parse(credential)
	if err != nil {
		return nil
	}
	return s.revoked.Revoke(ctx, claims.TokenID, claims.ExpiresAt)
}
