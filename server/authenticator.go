package server

import (
	"net/http"
	"strings"
)

const bearerPrefix = "Bearer "

// bearerToken extracts the raw token from the Authorization header, or
// "" when the header is absent or not a bearer scheme.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return header[len(bearerPrefix):]
}

// Authenticate runs once per request, before any handler. A request
// without a bearer token passes through anonymous; a token that fails
// signature or subject extraction is rejected immediately; a token that
// is merely revoked or expired also passes through anonymous, and the
// guards on protected routes reject it there.
//
// The ledger check always reads current state. A concurrent login may
// revoke the token between this check and the handler running; the
// in-flight request completes on the old token and the next request
// sees the revocation.
func (s *Server) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}

		subject, err := s.codec.SubjectOf(raw)
		if err != nil {
			s.writeError(w, r, http.StatusUnauthorized, "invalid access token")
			return
		}

		user, err := s.repos.Users.GetByEmailWithRoles(r.Context(), subject)
		if err != nil {
			s.logger.Error().Err(err).Msg("user lookup failed during authentication")
			s.writeError(w, r, http.StatusInternalServerError, "an unexpected error occurred")
			return
		}
		if user == nil {
			s.writeError(w, r, http.StatusUnauthorized, "unknown token subject")
			return
		}

		usable, err := s.repos.Ledger.IsUsable(r.Context(), raw)
		if err != nil {
			s.logger.Error().Err(err).Msg("ledger lookup failed during authentication")
			s.writeError(w, r, http.StatusInternalServerError, "an unexpected error occurred")
			return
		}

		if usable && s.codec.IsValidFor(raw, subject) {
			principal := &Principal{User: user, Authorities: user.Authorities()}
			r = r.WithContext(withPrincipal(r.Context(), principal))
		}

		next.ServeHTTP(w, r)
	})
}
