package clients

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
	clients map[uuid.UUID]*Client
}

func newMockRepository() *mockRepository {
	return &mockRepository{clients: map[uuid.UUID]*Client{}}
}

func (m *mockRepository) Get(_ context.Context, id uuid.UUID) (*Client, error) {
	c, ok := m.clients[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (m *mockRepository) List(_ context.Context, _, _ int) ([]Client, error) {
	var out []Client
	for _, c := range m.clients {
		out = append(out, *c)
	}
	return out, nil
}

func (m *mockRepository) Create(_ context.Context, client Client) (*Client, error) {
	stored := client
	m.clients[client.ID] = &stored
	return &stored, nil
}

func (m *mockRepository) Update(_ context.Context, id uuid.UUID, req UpdateClientRequest) (*Client, error) {
	c, ok := m.clients[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	if req.CompanyName != nil {
		c.CompanyName = *req.CompanyName
	}
	copied := *c
	return &copied, nil
}

func (m *mockRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.clients[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(m.clients, id)
	return nil
}

func principalWith(roles ...shared.Role) shared.Principal {
	return shared.Principal{ID: uuid.New(), Email: "p@example.com", Roles: roles}
}

func TestReadsOpenToAnyAuthenticated(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	created, err := svc.Create(context.Background(), principalWith(shared.RoleAdmin), CreateClientRequest{CompanyName: "Acme"})
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), created.ID)
	assert.NoError(t, err)

	list, err := svc.List(context.Background(), 0, 100)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestMutationsRequirePrivilege(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	plain := principalWith(shared.RoleUser)
	admin := principalWith(shared.RoleSuperAdmin)

	_, err := svc.Create(context.Background(), plain, CreateClientRequest{CompanyName: "Acme"})
	assert.ErrorIs(t, err, httpx.ErrForbidden)

	created, err := svc.Create(context.Background(), admin, CreateClientRequest{CompanyName: "Acme"})
	require.NoError(t, err)

	name := "Acme Corp"
	_, err = svc.Update(context.Background(), plain, created.ID, UpdateClientRequest{CompanyName: &name})
	assert.ErrorIs(t, err, httpx.ErrForbidden)

	err = svc.Delete(context.Background(), plain, created.ID)
	assert.ErrorIs(t, err, httpx.ErrForbidden)

	err = svc.Delete(context.Background(), admin, created.ID)
	assert.NoError(t, err)
}

func TestMutateMissingClientIsNotFound(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	name := "x"
	_, err := svc.Update(context.Background(), principalWith(shared.RoleUser), uuid.New(), UpdateClientRequest{CompanyName: &name})
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}
