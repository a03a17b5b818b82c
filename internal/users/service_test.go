package users

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lanternhq/lantern/internal/platform/httpx"
	"github.com/lanternhq/lantern/internal/shared"
)

type mockRepository struct {
	users map[uuid.UUID]*User

	hashes     map[uuid.UUID]string
	lastUpdate update
	deleted    []uuid.UUID
}

func newMockRepository() *mockRepository {
	return &mockRepository{users: map[uuid.UUID]*User{}, hashes: map[uuid.UUID]string{}}
}

func (m *mockRepository) Get(_ context.Context, id uuid.UUID) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *mockRepository) List(_ context.Context, _, _ int) ([]User, error) {
	var out []User
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *mockRepository) Create(_ context.Context, user User, passwordHash string) (*User, error) {
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return nil, httpx.ErrConflict
		}
	}
	stored := user
	m.users[user.ID] = &stored
	m.hashes[user.ID] = passwordHash
	return &stored, nil
}

func (m *mockRepository) Update(_ context.Context, id uuid.UUID, u update) (*User, error) {
	existing, ok := m.users[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	m.lastUpdate = u
	if u.Email != nil {
		existing.Email = *u.Email
	}
	if u.FullName != nil {
		existing.FullName = u.FullName
	}
	if u.PasswordHash != nil {
		m.hashes[id] = *u.PasswordHash
	}
	if u.RawRoles != nil {
		var roles []shared.Role
		if err := json.Unmarshal(u.RawRoles, &roles); err != nil {
			return nil, err
		}
		existing.Roles = roles
	}
	copied := *existing
	return &copied, nil
}

func (m *mockRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.users[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(m.users, id)
	m.deleted = append(m.deleted, id)
	return nil
}

type plainHasher struct{}

func (plainHasher) Hash(plaintext string) (string, error) { return "digest:" + plaintext, nil }
func (plainHasher) Verify(plaintext, digest string) bool  { return "digest:"+plaintext == digest }

func principalWith(roles ...shared.Role) shared.Principal {
	return shared.Principal{ID: uuid.New(), Email: "p@example.com", Roles: roles}
}

func seedUser(repo *mockRepository, roles ...shared.Role) *User {
	u := &User{ID: uuid.New(), Email: uuid.NewString() + "@example.com", Roles: roles}
	repo.users[u.ID] = u
	return u
}

func TestListRequiresPrivilege(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, plainHasher{})

	_, err := svc.List(context.Background(), principalWith(shared.RoleUser), 0, 100)
	assert.ErrorIs(t, err, httpx.ErrForbidden)

	_, err = svc.List(context.Background(), principalWith(shared.RoleAdmin), 0, 100)
	assert.NoError(t, err)
}

func TestGetSelfOrPrivileged(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, plainHasher{})
	target := seedUser(repo, shared.RoleUser)

	self := shared.Principal{ID: target.ID, Email: target.Email, Roles: target.Roles}
	_, err := svc.Get(context.Background(), self, target.ID)
	assert.NoError(t, err)

	_, err = svc.Get(context.Background(), principalWith(shared.RoleUser), target.ID)
	assert.ErrorIs(t, err, httpx.ErrForbidden)

	_, err = svc.Get(context.Background(), principalWith(shared.RoleSuperAdmin), target.ID)
	assert.NoError(t, err)
}

func TestCreateDefaultsRoles(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, plainHasher{})
	admin := principalWith(shared.RoleAdmin)

	created, err := svc.Create(context.Background(), admin, CreateUserRequest{
		Email:    "new@example.com",
		Password: "hunter2222",
	})
	require.NoError(t, err)
	assert.Equal(t, []shared.Role{shared.RoleUser}, created.Roles)
	assert.Equal(t, "digest:hunter2222", repo.hashes[created.ID])
}

func TestCreateRejectsUnknownRole(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, plainHasher{})
	admin := principalWith(shared.RoleAdmin)

	_, err := svc.Create(context.Background(), admin, CreateUserRequest{
		Email:    "new@example.com",
		Password: "hunter2222",
		Roles:    []shared.Role{"root"},
	})
	assert.ErrorIs(t, err, httpx.ErrValidation)
}

func TestCreateRequiresPrivilege(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, plainHasher{})

	_, err := svc.Create(context.Background(), principalWith(shared.RoleUser), CreateUserRequest{
		Email:    "new@example.com",
		Password: "hunter2222",
	})
	assert.ErrorIs(t, err, httpx.ErrForbidden)
}

func TestUpdateRewritesRoles(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, plainHasher{})
	admin := principalWith(shared.RoleAdmin)
	target := seedUser(repo, shared.RoleUser)

	roles := []shared.Role{shared.RoleManager, shared.RoleStaff}
	updated, err := svc.Update(context.Background(), admin, target.ID, UpdateUserRequest{Roles: &roles})
	require.NoError(t, err)
	assert.Equal(t, roles, updated.Roles)
}

func TestUpdateProfileCannotEscalate(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, plainHasher{})
	target := seedUser(repo, shared.RoleUser)
	self := shared.Principal{ID: target.ID, Email: target.Email, Roles: target.Roles}

	name := "New Name"
	password := "rotated-pass"
	updated, err := svc.UpdateProfile(context.Background(), self, UpdateProfileRequest{
		FullName: &name,
		Password: &password,
	})
	require.NoError(t, err)
	assert.Equal(t, []shared.Role{shared.RoleUser}, updated.Roles)
	assert.Nil(t, repo.lastUpdate.RawRoles)
	assert.Equal(t, "digest:rotated-pass", repo.hashes[target.ID])
}

func TestDeleteSelfDenied(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, plainHasher{})
	admin := seedUser(repo, shared.RoleAdmin)
	self := shared.Principal{ID: admin.ID, Email: admin.Email, Roles: admin.Roles}

	err := svc.Delete(context.Background(), self, admin.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, httpx.ErrValidation)
	assert.NotErrorIs(t, err, httpx.ErrForbidden)
	assert.Empty(t, repo.deleted)
}

func TestDeleteOtherAccount(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, plainHasher{})
	target := seedUser(repo, shared.RoleUser)

	err := svc.Delete(context.Background(), principalWith(shared.RoleSuperAdmin), target.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{target.ID}, repo.deleted)

	err = svc.Delete(context.Background(), principalWith(shared.RoleUser), uuid.New())
	assert.ErrorIs(t, err, httpx.ErrForbidden)
}
