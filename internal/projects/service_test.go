package projects

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lanternhq/lantern/internal/platform/httpx"
	"github.com/lanternhq/lantern/internal/shared"
)

type mockRepository struct {
	projects map[int64]*Project
	nextID   int64

	lastListScope *uuid.UUID
	deleted       []int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{projects: map[int64]*Project{}, nextID: 1}
}

func (m *mockRepository) Get(_ context.Context, id int64) (*Project, error) {
	p, ok := m.projects[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (m *mockRepository) List(_ context.Context, ownerID *uuid.UUID, _, _ int) ([]Project, error) {
	m.lastListScope = ownerID
	var out []Project
	for _, p := range m.projects {
		if ownerID == nil || (p.OwnerID != nil && *p.OwnerID == *ownerID) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockRepository) Create(_ context.Context, project Project) (*Project, error) {
	project.ID = m.nextID
	m.nextID++
	stored := project
	m.projects[project.ID] = &stored
	return &stored, nil
}

func (m *mockRepository) Update(_ context.Context, id int64, req UpdateProjectRequest) (*Project, error) {
	p, ok := m.projects[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	copied := *p
	return &copied, nil
}

func (m *mockRepository) Delete(_ context.Context, id int64) error {
	if _, ok := m.projects[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(m.projects, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func principalWith(roles ...shared.Role) shared.Principal {
	return shared.Principal{ID: uuid.New(), Email: "p@example.com", Roles: roles}
}

func seedProject(repo *mockRepository, owner *uuid.UUID) *Project {
	p, _ := repo.Create(context.Background(), Project{Name: "Apollo", OwnerID: owner})
	return p
}

func TestGetDeniesNonOwner(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	ownerID := uuid.New()
	project := seedProject(repo, &ownerID)

	_, err := svc.Get(context.Background(), principalWith(shared.RoleUser), project.ID)
	assert.ErrorIs(t, err, httpx.ErrForbidden)
}

func TestGetAllowsOwner(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	owner := principalWith(shared.RoleUser)
	project := seedProject(repo, &owner.ID)

	got, err := svc.Get(context.Background(), owner, project.ID)
	require.NoError(t, err)
	assert.Equal(t, project.ID, got.ID)
}

func TestGetAllowsPrivilegedNonOwner(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	ownerID := uuid.New()
	project := seedProject(repo, &ownerID)

	_, err := svc.Get(context.Background(), principalWith(shared.RoleAdmin), project.ID)
	assert.NoError(t, err)
}

func TestGetMissingProjectIsNotFoundEvenForStrangers(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	// The existence check runs first: a stranger probing a dead id learns
	// only that it does not exist.
	_, err := svc.Get(context.Background(), principalWith(shared.RoleUser), 404)
	assert.ErrorIs(t, err, httpx.ErrNotFound)
	assert.NotErrorIs(t, err, httpx.ErrForbidden)
}

func TestListScopesToOwnerUnlessPrivileged(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	owner := principalWith(shared.RoleUser)

	_, err := svc.List(context.Background(), owner, 0, 100)
	require.NoError(t, err)
	require.NotNil(t, repo.lastListScope)
	assert.Equal(t, owner.ID, *repo.lastListScope)

	_, err = svc.List(context.Background(), principalWith(shared.RoleSuperAdmin), 0, 100)
	require.NoError(t, err)
	assert.Nil(t, repo.lastListScope)
}

func TestCreateDefaultsOwnerToCaller(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	caller := principalWith(shared.RoleUser)

	created, err := svc.Create(context.Background(), caller, CreateProjectRequest{Name: "Apollo"})
	require.NoError(t, err)
	require.NotNil(t, created.OwnerID)
	assert.Equal(t, caller.ID, *created.OwnerID)
	assert.Equal(t, "planning", created.Status)
	assert.Equal(t, "medium", created.Priority)
	assert.Equal(t, "USD", created.Currency)
}

func TestUpdateDeniesNonOwner(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	ownerID := uuid.New()
	project := seedProject(repo, &ownerID)

	name := "Renamed"
	_, err := svc.Update(context.Background(), principalWith(shared.RoleUser), project.ID, UpdateProjectRequest{Name: &name})
	assert.ErrorIs(t, err, httpx.ErrForbidden)
}

func TestDeleteAllowsOwner(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	owner := principalWith(shared.RoleUser)
	project := seedProject(repo, &owner.ID)

	require.NoError(t, svc.Delete(context.Background(), owner, project.ID))
	assert.Equal(t, []int64{project.ID}, repo.deleted)
}
