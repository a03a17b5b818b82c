package events

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/lanternhq/lantern/internal/shared"
)

func TestCanModify(t *testing.T) {
	creatorID := uuid.New()
	event := Event{UserID: &creatorID}

	creator := shared.Principal{ID: creatorID, Roles: []shared.Role{shared.RoleUser}}
	stranger := shared.Principal{ID: uuid.New(), Roles: []shared.Role{shared.RoleUser}}
	admin := shared.Principal{ID: uuid.New(), Roles: []shared.Role{shared.RoleAdmin}}

	assert.True(t, CanModify(creator, event))
	assert.False(t, CanModify(stranger, event))
	assert.True(t, CanModify(admin, event))

	// An event without a creator is mutable only by privileged principals.
	orphan := Event{}
	assert.False(t, CanModify(creator, orphan))
	assert.True(t, CanModify(admin, orphan))
}
