package server

import (
	"net/http"

	"github.com/google/uuid"
)

const oidcStateCookie = "oidcState"

// OIDCLoginHandler starts the federated login flow by redirecting to
// the identity provider. The state nonce rides in a short-lived cookie
// and is checked again on callback.
func (s *Server) OIDCLoginHandler(w http.ResponseWriter, r *http.Request) {
	if s.oidc == nil {
		s.writeError(w, r, http.StatusNotFound, "federated login is not configured")
		return
	}

	state := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     oidcStateCookie,
		Value:    state,
		HttpOnly: true,
		Secure:   s.config.IsProduction(),
		Path:     "/",
		MaxAge:   300,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, s.oidc.AuthURL(state), http.StatusFound)
}

// OIDCCallbackHandler completes the flow: state check, code exchange,
// local session issuance.
func (s *Server) OIDCCallbackHandler(w http.ResponseWriter, r *http.Request) {
	if s.oidc == nil {
		s.writeError(w, r, http.StatusNotFound, "federated login is not configured")
		return
	}

	stateCookie, err := r.Cookie(oidcStateCookie)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		s.writeError(w, r, http.StatusBadRequest, "state mismatch")
		return
	}
	http.SetCookie(w, &http.Cookie{Name: oidcStateCookie, Value: "", Path: "/", MaxAge: -1})

	code := r.URL.Query().Get("code")
	if code == "" {
		s.writeError(w, r, http.StatusBadRequest, "missing authorization code")
		return
	}

	identity, err := s.oidc.Exchange(r.Context(), code)
	if err != nil {
		s.logger.Error().Err(err).Msg("identity provider exchange failed")
		s.writeError(w, r, http.StatusUnauthorized, "federated login failed")
		return
	}

	pair, err := s.auth.FederatedLogin(r.Context(), identity)
	if err != nil {
		s.translateError(w, r, err)
		return
	}

	http.SetCookie(w, s.auth.RefreshCookie(pair.RefreshToken))
	s.writeJSON(w, http.StatusOK, accessTokenResponse{AccessToken: pair.AccessToken})
}
