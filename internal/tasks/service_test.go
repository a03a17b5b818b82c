package tasks

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
	tasks         map[int64]*Task
	projectOwners map[int64]*uuid.UUID
	nextID        int64

	lastFilter          ListFilter
	lastUpdateAssignees *[]uuid.UUID
	deleted             []int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		tasks:         map[int64]*Task{},
		projectOwners: map[int64]*uuid.UUID{},
		nextID:        1,
	}
}

func (m *mockRepository) Get(_ context.Context, id int64) (*Task, error) {
	t, ok := m.tasks[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	copied := *t
	return &copied, nil
}

func (m *mockRepository) List(_ context.Context, filter ListFilter) ([]Task, error) {
	m.lastFilter = filter
	return nil, nil
}

func (m *mockRepository) Create(_ context.Context, task Task, assignees []uuid.UUID) (*Task, error) {
	task.ID = m.nextID
	m.nextID++
	task.Assignees = append([]uuid.UUID(nil), assignees...)
	stored := task
	m.tasks[task.ID] = &stored
	return &stored, nil
}

func (m *mockRepository) Update(_ context.Context, id int64, req UpdateTaskRequest, assignees *[]uuid.UUID) (*Task, error) {
	t, ok := m.tasks[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	m.lastUpdateAssignees = assignees
	if req.Name != nil {
		t.Name = *req.Name
	}
	if assignees != nil {
		t.Assignees = append([]uuid.UUID(nil), *assignees...)
	}
	copied := *t
	return &copied, nil
}

func (m *mockRepository) Delete(_ context.Context, id int64) error {
	if _, ok := m.tasks[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(m.tasks, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockRepository) ProjectOwner(_ context.Context, projectID int64) (*uuid.UUID, error) {
	return m.projectOwners[projectID], nil
}

func principalWith(roles ...shared.Role) shared.Principal {
	return shared.Principal{ID: uuid.New(), Email: "p@example.com", Roles: roles}
}

func TestGetAllowsProjectOwner(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	owner := principalWith(shared.RoleUser)
	projectID := int64(1)
	repo.projectOwners[projectID] = &owner.ID
	task, _ := repo.Create(context.Background(), Task{Name: "ship it", ProjectID: &projectID}, nil)

	_, err := svc.Get(context.Background(), owner, task.ID)
	assert.NoError(t, err)
}

func TestGetAllowsAssigneeOnForeignProject(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	assignee := principalWith(shared.RoleUser)
	strangerID := uuid.New()
	projectID := int64(1)
	repo.projectOwners[projectID] = &strangerID
	task, _ := repo.Create(context.Background(), Task{Name: "review", ProjectID: &projectID}, []uuid.UUID{assignee.ID})

	_, err := svc.Get(context.Background(), assignee, task.ID)
	assert.NoError(t, err)
}

func TestGetDeniesUnrelatedUser(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	strangerID := uuid.New()
	projectID := int64(1)
	repo.projectOwners[projectID] = &strangerID
	task, _ := repo.Create(context.Background(), Task{Name: "secret", ProjectID: &projectID}, nil)

	_, err := svc.Get(context.Background(), principalWith(shared.RoleUser), task.ID)
	assert.ErrorIs(t, err, httpx.ErrForbidden)
}

func TestGetOrphanTaskReachableOnlyByAssignment(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	assignee := principalWith(shared.RoleUser)
	task, _ := repo.Create(context.Background(), Task{Name: "floating"}, []uuid.UUID{assignee.ID})

	_, err := svc.Get(context.Background(), assignee, task.ID)
	assert.NoError(t, err)

	_, err = svc.Get(context.Background(), principalWith(shared.RoleUser), task.ID)
	assert.ErrorIs(t, err, httpx.ErrForbidden)
}

func TestGetPrivilegedBypassesBothPaths(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	task, _ := repo.Create(context.Background(), Task{Name: "any"}, nil)

	_, err := svc.Get(context.Background(), principalWith(shared.RoleAdmin), task.ID)
	assert.NoError(t, err)
}

func TestGetMissingTaskIsNotFound(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	_, err := svc.Get(context.Background(), principalWith(shared.RoleUser), 404)
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestUpdateAppliesSamePredicateAsRead(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	assignee := principalWith(shared.RoleUser)
	strangerID := uuid.New()
	projectID := int64(1)
	repo.projectOwners[projectID] = &strangerID
	task, _ := repo.Create(context.Background(), Task{Name: "draft", ProjectID: &projectID}, []uuid.UUID{assignee.ID})

	name := "final"
	_, err := svc.Update(context.Background(), assignee, task.ID, UpdateTaskRequest{Name: &name})
	assert.NoError(t, err)

	_, err = svc.Update(context.Background(), principalWith(shared.RoleUser), task.ID, UpdateTaskRequest{Name: &name})
	assert.ErrorIs(t, err, httpx.ErrForbidden)
}

func TestUpdateOmittedAssigneesUntouched(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	admin := principalWith(shared.RoleAdmin)
	a := uuid.New()
	task, _ := repo.Create(context.Background(), Task{Name: "keep"}, []uuid.UUID{a})

	name := "keep!"
	updated, err := svc.Update(context.Background(), admin, task.ID, UpdateTaskRequest{Name: &name})
	require.NoError(t, err)
	assert.Nil(t, repo.lastUpdateAssignees)
	assert.Equal(t, []uuid.UUID{a}, updated.Assignees)
}

func TestUpdateEmptyAssigneesClears(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	admin := principalWith(shared.RoleAdmin)
	task, _ := repo.Create(context.Background(), Task{Name: "clear"}, []uuid.UUID{uuid.New()})

	empty := []uuid.UUID{}
	updated, err := svc.Update(context.Background(), admin, task.ID, UpdateTaskRequest{Assignees: &empty})
	require.NoError(t, err)
	require.NotNil(t, repo.lastUpdateAssignees)
	assert.Empty(t, updated.Assignees)
}

func TestDeleteDeniedForUnrelatedUser(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	task, _ := repo.Create(context.Background(), Task{Name: "gone"}, nil)

	err := svc.Delete(context.Background(), principalWith(shared.RoleUser), task.ID)
	assert.ErrorIs(t, err, httpx.ErrForbidden)

	err = svc.Delete(context.Background(), principalWith(shared.RoleSuperAdmin), task.ID)
	assert.NoError(t, err)
	assert.Equal(t, []int64{task.ID}, repo.deleted)
}

func TestListScopesViewerUnlessPrivileged(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	viewer := principalWith(shared.RoleUser)

	_, err := svc.List(context.Background(), viewer, nil, 0, 100)
	require.NoError(t, err)
	require.NotNil(t, repo.lastFilter.Viewer)
	assert.Equal(t, viewer.ID, *repo.lastFilter.Viewer)

	projectID := int64(5)
	_, err = svc.List(context.Background(), principalWith(shared.RoleAdmin), &projectID, 0, 100)
	require.NoError(t, err)
	assert.Nil(t, repo.lastFilter.Viewer)
	require.NotNil(t, repo.lastFilter.ProjectID)
	assert.Equal(t, projectID, *repo.lastFilter.ProjectID)
}
