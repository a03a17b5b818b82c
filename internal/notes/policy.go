package notes

import (
	"github.com/google/uuid"

	"github.com/lanternhq/lantern/internal/shared"
)

// CanAccess decides read, update and delete for a note: privileged
// principals pass immediately, everyone else must own it. The share list is
// deliberately not consulted; sharing distributes a note without granting
// API access to it.
func CanAccess(p shared.Principal, note Note) bool {
	if p.IsPrivileged() {
		return true
	}
	return note.UserID == p.ID
}

// ListScope returns the owner filter for list queries. A nil result means
// unscoped: privileged principals see every note.
func ListScope(p shared.Principal) *uuid.UUID {
	if p.IsPrivileged() {
		return nil
	}
	id := p.ID
	return &id
}
