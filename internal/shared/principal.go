package shared

import "github.com/google/uuid"

// Role is one of the fixed role vocabulary values carried by a user account.
type Role string

const (
	RoleUser       Role = "user"
	RoleClient     Role = "client"
	RoleStaff      Role = "staff"
	RoleManager    Role = "manager"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// ValidRole reports whether r belongs to the role vocabulary.
func ValidRole(r Role) bool {
	switch r {
	case RoleUser, RoleClient, RoleStaff, RoleManager, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// Principal is the authenticated actor attached to a request.
type Principal struct {
	ID    uuid.UUID
	Email string
	Roles []Role
}

// IsPrivileged reports whether the principal holds an administrator-level
// role. This is the only derived predicate the policies use: manager, staff
// and client carry no extra authorization weight anywhere.
func (p Principal) IsPrivileged() bool {
	for _, r := range p.Roles {
		if r == RoleAdmin || r == RoleSuperAdmin {
			return true
		}
	}
	return false
}

// HasRole reports whether the principal carries the given role.
func (p Principal) HasRole(role Role) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}
