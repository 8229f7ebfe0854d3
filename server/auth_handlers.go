package server

import (
	"encoding/json"
	"net/http"

	"github.com/leagueforge/leagueforge/auth"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type accessTokenResponse struct {
	AccessToken string `json:"accessToken"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// RegisterHandler creates an account and opens its first session. The
// access token goes in the body; the refresh token travels only as the
// HttpOnly cookie.
func (s *Server) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		s.writeError(w, r, http.StatusBadRequest, "email and password are required")
		return
	}

	pair, err := s.auth.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		s.translateError(w, r, err)
		return
	}

	http.SetCookie(w, s.auth.RefreshCookie(pair.RefreshToken))
	s.writeJSON(w, http.StatusCreated, accessTokenResponse{AccessToken: pair.AccessToken})
}

// LoginHandler verifies credentials and replaces any existing session.
func (s *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		s.writeError(w, r, http.StatusBadRequest, "email and password are required")
		return
	}

	pair, err := s.auth.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		s.translateError(w, r, err)
		return
	}

	http.SetCookie(w, s.auth.RefreshCookie(pair.RefreshToken))
	s.writeJSON(w, http.StatusOK, accessTokenResponse{AccessToken: pair.AccessToken})
}

// RefreshHandler mints a new access token from the refresh cookie. A
// request without the cookie gets an empty 204, not an error.
func (s *Server) RefreshHandler(w http.ResponseWriter, r *http.Request) {
	var refreshToken string
	if cookie, err := r.Cookie(auth.RefreshCookieName); err == nil {
		refreshToken = cookie.Value
	}

	accessToken, err := s.auth.Refresh(r.Context(), refreshToken)
	if err != nil {
		s.translateError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, accessTokenResponse{AccessToken: accessToken})
}

// LogoutHandler clears the refresh cookie and best-effort revokes the
// presented access token. It never fails the caller.
func (s *Server) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	s.auth.Logout(r.Context(), bearerToken(r))

	http.SetCookie(w, s.auth.ClearRefreshCookie())
	s.writeJSON(w, http.StatusOK, messageResponse{Message: "logged out"})
}

// AccountHandler returns the connected user's profile.
func (s *Server) AccountHandler(w http.ResponseWriter, r *http.Request) {
	principal := PrincipalFrom(r.Context())
	s.writeJSON(w, http.StatusOK, principal.User)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	Confirmation    string `json:"confirmation"`
}

// ChangePasswordHandler rotates the password and kills every session,
// including the caller's own.
func (s *Server) ChangePasswordHandler(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	principal := PrincipalFrom(r.Context())
	err := s.auth.ChangePassword(r.Context(), principal.User.ID, req.CurrentPassword, req.NewPassword, req.Confirmation)
	if err != nil {
		s.translateError(w, r, err)
		return
	}

	http.SetCookie(w, s.auth.ClearRefreshCookie())
	s.writeJSON(w, http.StatusOK, messageResponse{Message: "password changed, please login again"})
}
