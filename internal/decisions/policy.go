package decisions

import (
	"github.com/google/uuid"

	"github.com/lanternhq/lantern/internal/shared"
)

// CanAccess decides read, update and delete for a decision.
func CanAccess(p shared.Principal, decision Decision) bool {
	if p.IsPrivileged() {
		return true
	}
	return decision.UserID != nil && *decision.UserID == p.ID
}

// ListScope returns the owner filter for list queries; nil means unscoped.
func ListScope(p shared.Principal) *uuid.UUID {
	if p.IsPrivileged() {
		return nil
	}
	id := p.ID
	return &id
}
