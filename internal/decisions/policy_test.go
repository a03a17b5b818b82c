package decisions

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/lanternhq/lantern/internal/shared"
)

func TestCanAccess(t *testing.T) {
	ownerID := uuid.New()
	decision := Decision{UserID: &ownerID}

	owner := shared.Principal{ID: ownerID, Roles: []shared.Role{shared.RoleUser}}
	stranger := shared.Principal{ID: uuid.New(), Roles: []shared.Role{shared.RoleStaff}}
	admin := shared.Principal{ID: uuid.New(), Roles: []shared.Role{shared.RoleSuperAdmin}}

	assert.True(t, CanAccess(owner, decision))
	assert.False(t, CanAccess(stranger, decision))
	assert.True(t, CanAccess(admin, decision))
}

func TestListScope(t *testing.T) {
	plain := shared.Principal{ID: uuid.New(), Roles: []shared.Role{shared.RoleUser}}
	admin := shared.Principal{ID: uuid.New(), Roles: []shared.Role{shared.RoleAdmin}}

	scope := ListScope(plain)
	if assert.NotNil(t, scope) {
		assert.Equal(t, plain.ID, *scope)
	}
	assert.Nil(t, ListScope(admin))
}
