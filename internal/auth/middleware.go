package auth

import (
	"log/slog"
	"net/http"

	"github.com/lanternhq/lantern/internal/platform/httpx"
	"github.com/lanternhq/lantern/internal/shared"
)

// Middleware wires principal resolution into the HTTP stack.
type Middleware struct {
	Resolver *Resolver
	Logger   *slog.Logger
}

// RequirePrincipal authenticates the request and stores the principal in
// context. Handlers behind it can assume PrincipalFromContext is non-nil.
func (m Middleware) RequirePrincipal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, err := m.Resolver.Resolve(r.Context(), CredentialFromRequest(r))
		if err != nil {
			if httpx.StatusFor(err) == http.StatusInternalServerError && m.Logger != nil {
				m.Logger.Error("resolve principal", slog.Any("error", err))
			}
			httpx.RespondError(w, err)
			return
		}
		ctx := shared.ContextWithPrincipal(r.Context(), principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequirePrivileged additionally demands an admin or super_admin role.
func (m Middleware) RequirePrivileged(next http.Handler) http.Handler {
	return m.RequirePrincipal(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal := shared.PrincipalFromContext(r.Context())
		if principal == nil || !principal.IsPrivileged() {
			httpx.RespondError(w, httpx.ErrForbidden)
			return
		}
		next.ServeHTTP(w, r)
	}))
}
