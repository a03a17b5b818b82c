package auth

import (
	"time"

	"github.com/google/uuid"

	"github.com/lanternhq/lantern/internal/shared"
)

// User is the slice of the account row that authentication needs.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	FullName     *string
	Roles        []shared.Role
	CreatedAt    time.Time
}

// Principal converts the stored account into the request-scoped principal.
func (u *User) Principal() shared.Principal {
	roles := make([]shared.Role, len(u.Roles))
	copy(roles, u.Roles)
	return shared.Principal{ID: u.ID, Email: u.Email, Roles: roles}
}

// Claims is the validated content of an access token.
type Claims struct {
	Subject   string
	TokenID   string
	ExpiresAt time.Time
}
