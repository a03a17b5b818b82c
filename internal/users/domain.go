package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/lanternhq/lantern/internal/shared"
)

// User is the full account record as exposed over the API. The password
// digest never leaves the package.
type User struct {
	ID            uuid.UUID     `json:"id"`
	Email         string        `json:"email"`
	FullName      *string       `json:"full_name"`
	AvatarURL     *string       `json:"avatar_url"`
	Image         *string       `json:"image"`
	EmailVerified bool          `json:"email_verified"`
	Roles         []shared.Role `json:"roles"`
	CreatedAt     time.Time     `json:"created_at"`
}

// CreateUserRequest is the admin creation payload. Roles default to [user]
// when omitted.
type CreateUserRequest struct {
	Email     string        `json:"email" validate:"required,email"`
	Password  string        `json:"password" validate:"required,min=8"`
	FullName  *string       `json:"full_name"`
	AvatarURL *string       `json:"avatar_url"`
	Image     *string       `json:"image"`
	Roles     []shared.Role `json:"roles"`
}

// UpdateUserRequest is the admin mutation payload; only privileged callers
// reach it, so it may rewrite roles.
type UpdateUserRequest struct {
	Email     *string        `json:"email" validate:"omitempty,email"`
	Password  *string        `json:"password" validate:"omitempty,min=8"`
	FullName  *string        `json:"full_name"`
	AvatarURL *string        `json:"avatar_url"`
	Image     *string        `json:"image"`
	Roles     *[]shared.Role `json:"roles"`
}

// UpdateProfileRequest is the self-service payload. It deliberately has no
// roles field: a principal can never escalate through their own profile.
type UpdateProfileRequest struct {
	Email     *string `json:"email" validate:"omitempty,email"`
	Password  *string `json:"password" validate:"omitempty,min=8"`
	FullName  *string `json:"full_name"`
	AvatarURL *string `json:"avatar_url"`
	Image     *string `json:"image"`
}
