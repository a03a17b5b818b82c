package notes

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
	notes  map[int64]*Note
	nextID int64

	lastFilter       ListFilter
	lastUpdateShares *[]uuid.UUID
	deleted          []int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{notes: map[int64]*Note{}, nextID: 1}
}

func (m *mockRepository) Get(_ context.Context, id int64) (*Note, error) {
	n, ok := m.notes[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	copied := *n
	return &copied, nil
}

func (m *mockRepository) List(_ context.Context, filter ListFilter) ([]Note, error) {
	m.lastFilter = filter
	return nil, nil
}

func (m *mockRepository) Create(_ context.Context, note Note, sharedWith []uuid.UUID) (*Note, error) {
	note.ID = m.nextID
	m.nextID++
	note.SharedWith = append([]uuid.UUID(nil), sharedWith...)
	stored := note
	m.notes[note.ID] = &stored
	return &stored, nil
}

func (m *mockRepository) Update(_ context.Context, id int64, req UpdateNoteRequest, sharedWith *[]uuid.UUID) (*Note, error) {
	n, ok := m.notes[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	m.lastUpdateShares = sharedWith
	if req.Title != nil {
		n.Title = *req.Title
	}
	if sharedWith != nil {
		n.SharedWith = append([]uuid.UUID(nil), *sharedWith...)
	}
	copied := *n
	return &copied, nil
}

func (m *mockRepository) Delete(_ context.Context, id int64) error {
	if _, ok := m.notes[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(m.notes, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func principalWith(roles ...shared.Role) shared.Principal {
	return shared.Principal{ID: uuid.New(), Email: "p@example.com", Roles: roles}
}

func TestGetAllowsOwnerOnly(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	owner := principalWith(shared.RoleUser)
	note, _ := repo.Create(context.Background(), Note{Title: "journal", UserID: owner.ID}, nil)

	_, err := svc.Get(context.Background(), owner, note.ID)
	assert.NoError(t, err)

	_, err = svc.Get(context.Background(), principalWith(shared.RoleUser), note.ID)
	assert.ErrorIs(t, err, httpx.ErrForbidden)

	_, err = svc.Get(context.Background(), principalWith(shared.RoleAdmin), note.ID)
	assert.NoError(t, err)
}

func TestSharedWithGrantsNoReadAccess(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	recipient := principalWith(shared.RoleUser)
	note, _ := repo.Create(context.Background(), Note{Title: "secret", UserID: uuid.New()}, []uuid.UUID{recipient.ID})

	// The share list is a distribution list, not an access grant.
	_, err := svc.Get(context.Background(), recipient, note.ID)
	assert.ErrorIs(t, err, httpx.ErrForbidden)
}

func TestGetMissingNoteIsNotFound(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	_, err := svc.Get(context.Background(), principalWith(shared.RoleUser), 404)
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestCreateOwnerIsCaller(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	caller := principalWith(shared.RoleUser)
	other := uuid.New()

	note, err := svc.Create(context.Background(), caller, CreateNoteRequest{
		Title:      "shared",
		SharedWith: []uuid.UUID{other},
	})
	require.NoError(t, err)
	assert.Equal(t, caller.ID, note.UserID)
	assert.Equal(t, []uuid.UUID{other}, note.SharedWith)
}

func TestUpdateOmittedSharesUntouched(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	owner := principalWith(shared.RoleUser)
	recipient := uuid.New()
	note, _ := repo.Create(context.Background(), Note{Title: "memo", UserID: owner.ID}, []uuid.UUID{recipient})

	title := "memo v2"
	updated, err := svc.Update(context.Background(), owner, note.ID, UpdateNoteRequest{Title: &title})
	require.NoError(t, err)
	assert.Nil(t, repo.lastUpdateShares)
	assert.Equal(t, []uuid.UUID{recipient}, updated.SharedWith)
}

func TestUpdateEmptySharesClears(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	owner := principalWith(shared.RoleUser)
	note, _ := repo.Create(context.Background(), Note{Title: "memo", UserID: owner.ID}, []uuid.UUID{uuid.New()})

	empty := []uuid.UUID{}
	updated, err := svc.Update(context.Background(), owner, note.ID, UpdateNoteRequest{SharedWith: &empty})
	require.NoError(t, err)
	require.NotNil(t, repo.lastUpdateShares)
	assert.Empty(t, updated.SharedWith)
}

func TestDeleteDeniedForNonOwner(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	owner := principalWith(shared.RoleUser)
	note, _ := repo.Create(context.Background(), Note{Title: "mine", UserID: owner.ID}, nil)

	err := svc.Delete(context.Background(), principalWith(shared.RoleUser), note.ID)
	assert.ErrorIs(t, err, httpx.ErrForbidden)

	require.NoError(t, svc.Delete(context.Background(), owner, note.ID))
	assert.Equal(t, []int64{note.ID}, repo.deleted)
}

func TestListScopesToOwnerAndTaskFilter(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	owner := principalWith(shared.RoleUser)
	taskID := int64(9)

	_, err := svc.List(context.Background(), owner, &taskID, 0, 100)
	require.NoError(t, err)
	require.NotNil(t, repo.lastFilter.Owner)
	assert.Equal(t, owner.ID, *repo.lastFilter.Owner)
	require.NotNil(t, repo.lastFilter.TaskID)
	assert.Equal(t, taskID, *repo.lastFilter.TaskID)

	_, err = svc.List(context.Background(), principalWith(shared.RoleAdmin), nil, 0, 100)
	require.NoError(t, err)
	assert.Nil(t, repo.lastFilter.Owner)
}
