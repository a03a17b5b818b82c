package users

import (
	"github.com/google/uuid"

	"github.com/lanternhq/lantern/internal/shared"
)

// CanRead reports whether the principal may read the account with the given
// id: their own, or any account when privileged.
func CanRead(p shared.Principal, id uuid.UUID) bool {
	if p.IsPrivileged() {
		return true
	}
	return p.ID == id
}

// CanAdminister reports whether the principal may list, create, rewrite or
// delete accounts other than through the self-service profile.
func CanAdminister(p shared.Principal) bool {
	return p.IsPrivileged()
}
