package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lanternhq/lantern/internal/platform/httpx"
	"github.com/lanternhq/lantern/internal/shared"
)

type stubRepository struct {
	byEmail map[string]*User
}

func (s *stubRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	user, ok := s.byEmail[email]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	return user, nil
}

func (s *stubRepository) Create(_ context.Context, user User) (*User, error) {
	if _, exists := s.byEmail[user.Email]; exists {
		return nil, httpx.ErrConflict
	}
	stored := user
	s.byEmail[user.Email] = &stored
	return &stored, nil
}

// plainHasher keeps digests human-readable in tests.
type plainHasher struct{}

func (plainHasher) Hash(plaintext string) (string, error) { return "digest:" + plaintext, nil }
func (plainHasher) Verify(plaintext, digest string) bool  { return "digest:"+plaintext == digest }

func newTestService(t *testing.T) (*Service, *stubRepository) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := &stubRepository{byEmail: map[string]*User{}}
	svc := NewService(repo, plainHasher{}, NewCodec("test-secret", time.Hour), NewRevocationList(client))
	return svc, repo
}

func TestRegisterDefaultsToUserRole(t *testing.T) {
	svc, _ := newTestService(t)

	user, err := svc.Register(context.Background(), "bob@example.com", "hunter22", nil)
	require.NoError(t, err)
	assert.Equal(t, []shared.Role{shared.RoleUser}, user.Roles)
	assert.False(t, user.Principal().IsPrivileged())
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register(context.Background(), "bob@example.com", "hunter22", nil)
	require.NoError(t, err)
	_, err = svc.Register(context.Background(), "bob@example.com", "hunter22", nil)
	assert.ErrorIs(t, err, httpx.ErrConflict)
}

func TestLoginIssuesToken(t *testing.T) {
	svc, repo := newTestService(t)
	repo.byEmail["alice@example.com"] = &User{
		ID:           uuid.New(),
		Email:        "alice@example.com",
		PasswordHash: "digest:correct",
		Roles:        []shared.Role{shared.RoleAdmin},
	}

	token, claims, user, err := svc.Login(context.Background(), "alice@example.com", "correct")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "alice@example.com", claims.Subject)
	assert.True(t, user.Principal().IsPrivileged())
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, repo := newTestService(t)
	repo.byEmail["alice@example.com"] = &User{
		ID:           uuid.New(),
		Email:        "alice@example.com",
		PasswordHash: "digest:correct",
	}

	_, _, _, unknownEmail := svc.Login(context.Background(), "ghost@example.com", "whatever")
	_, _, _, wrongPassword := svc.Login(context.Background(), "alice@example.com", "wrong")

	require.Error(t, unknownEmail)
	require.Error(t, wrongPassword)
	assert.ErrorIs(t, unknownEmail, httpx.ErrUnauthenticated)
	assert.ErrorIs(t, wrongPassword, httpx.ErrUnauthenticated)
	assert.Equal(t, unknownEmail.Error(), wrongPassword.Error())
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, repo := newTestService(t)
	repo.byEmail["alice@example.com"] = &User{
		ID:           uuid.New(),
		Email:        "alice@example.com",
		PasswordHash: "digest:correct",
	}

	token, claims, _, err := svc.Login(context.Background(), "alice@example.com", "correct")
	require.NoError(t, err)
	require.NoError(t, svc.Logout(context.Background(), token))

	revoked, err := svc.revoked.IsRevoked(context.Background(), claims.TokenID)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestLogoutToleratesBadCredential(t *testing.T) {
	svc, _ := newTestService(t)
	assert.NoError(t, svc.Logout(context.Background(), ""))
	assert.NoError(t, svc.Logout(context.Background(), "garbage"))
}
