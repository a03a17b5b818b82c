package auth

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/lanternhq/lantern/internal/platform/httpx"
	"github.com/lanternhq/lantern/internal/shared"
)

// CookieName is the cookie carrying the browser-side copy of the token.
const CookieName = "access_token"

// cookieMarker prefixes the cookie value; it must be stripped before
// decoding. Kept for compatibility with existing browser sessions.
const cookieMarker = "Bearer "

// UserFinder looks up accounts by their natural key.
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
}

// Resolver turns a request credential into an authenticated principal.
type Resolver struct {
	codec   *Codec
	users   UserFinder
	revoked *RevocationList
	group   singleflight.Group
}

// NewResolver constructs a Resolver.
func NewResolver(codec *Codec, users UserFinder, revoked *RevocationList) *Resolver {
	return &Resolver{codec: codec, users: users, revoked: revoked}
}

// CredentialFromRequest extracts the raw token, trying the Authorization
// header first and the cookie as a fallback. Returns "" when neither is set.
func CredentialFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		return strings.TrimPrefix(header, "Bearer ")
	}
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(cookie.Value, cookieMarker)
}

// Resolve validates the credential and loads the matching account.
//
// Outcomes, in order: no credential at all is Unauthenticated; a credential
// that fails signature, expiry or revocation checks is Forbidden; well-formed
// claims whose subject no longer exists (account deleted after issuance) is
// NotFound.
func (rs *Resolver) Resolve(ctx context.Context, credential string) (*shared.Principal, error) {
	if credential == "" {
		return nil, httpx.ErrUnauthenticated
	}
	claims, err := rs.codec.Parse(credential)
	if err != nil {
		return nil, httpx.ErrForbidden
	}
	revoked, err := rs.revoked.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, httpx.ErrForbidden
	}

	// Concurrent requests bearing tokens for the same subject share one
	// account lookup.
	v, err, _ := rs.group.Do(claims.Subject, func() (any, error) {
		return rs.users.FindByEmail(ctx, claims.Subject)
	})
	if err != nil {
		return nil, err
	}
	user, ok := v.(*User)
	if !ok || user == nil {
		return nil, httpx.ErrNotFound
	}
	principal := user.Principal()
	return &principal, nil
}
