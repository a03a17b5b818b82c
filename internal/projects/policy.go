package projects

import (
	"github.com/google/uuid"

	"github.com/lanternhq/lantern/internal/shared"
)

// CanAccess decides read, update and delete for a project: the privilege
// check short-circuits first, ownership is only consulted after.
func CanAccess(p shared.Principal, project Project) bool {
	if p.IsPrivileged() {
		return true
	}
	return project.OwnerID != nil && *project.OwnerID == p.ID
}

// ListScope returns the owner filter for list queries. A nil result means
// unscoped: privileged principals see every project.
func ListScope(p shared.Principal) *uuid.UUID {
	if p.IsPrivileged() {
		return nil
	}
	id := p.ID
	return &id
}
