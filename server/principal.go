package server

import (
	"context"
	"net/http"

	"github.com/leagueforge/leagueforge/users"
)

type contextKey string

const contextKeyPrincipal contextKey = "principal"

// Principal is the authenticated identity for a single request. It is
// threaded through the request context only; no state is shared across
// requests.
type Principal struct {
	User        *users.User
	Authorities []string
}

func withPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, contextKeyPrincipal, p)
}

// PrincipalFrom returns the request's authenticated principal, or nil
// when the request is anonymous.
func PrincipalFrom(ctx context.Context) *Principal {
	p, _ := ctx.Value(contextKeyPrincipal).(*Principal)
	return p
}

// RequireAuth rejects anonymous requests. The authenticator runs first
// on every request, so reaching a guarded handler without a principal
// means the token was missing, revoked or expired.
func (s *Server) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if PrincipalFrom(r.Context()) == nil {
			s.writeError(w, r, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole rejects requests whose principal lacks the role. Chain
// after RequireAuth.
func (s *Server) RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := PrincipalFrom(r.Context())
			if p == nil {
				s.writeError(w, r, http.StatusUnauthorized, "authentication required")
				return
			}
			if !p.User.HasRole(role) {
				s.writeError(w, r, http.StatusForbidden, "insufficient privileges")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
