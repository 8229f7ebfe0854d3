package server

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"

	"github.com/leagueforge/leagueforge/auth"
	"github.com/leagueforge/leagueforge/leagues"
	"github.com/leagueforge/leagueforge/teams"
)

// errorResponse is the body shape of every failure the API returns.
type errorResponse struct {
	Status  int    `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
	Path    string `json:"path"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Status:  status,
		Error:   http.StatusText(status),
		Message: message,
		Path:    r.URL.Path,
	})
}

// translateError is the single boundary between domain failures and HTTP
// statuses. Endpoints never map errors themselves. ErrNoRefreshToken is
// the one bodiless case: the client simply has no session to refresh.
func (s *Server) translateError(w http.ResponseWriter, r *http.Request, err error) {
	cause := errors.Cause(err)

	switch {
	case errors.Is(cause, auth.ErrNoRefreshToken):
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(cause, auth.ErrAlreadyExists):
		s.writeError(w, r, http.StatusConflict, cause.Error())
	case errors.Is(cause, auth.ErrNotFound),
		errors.Is(cause, leagues.ErrNotFound),
		errors.Is(cause, teams.ErrNotFound):
		s.writeError(w, r, http.StatusNotFound, cause.Error())
	case errors.Is(cause, auth.ErrAuthenticationFailed),
		errors.Is(cause, auth.ErrAccountDisabled),
		errors.Is(cause, auth.ErrTokenInvalid):
		s.writeError(w, r, http.StatusUnauthorized, cause.Error())
	case errors.Is(cause, auth.ErrWeakPassword),
		errors.Is(cause, auth.ErrPasswordMismatch),
		errors.Is(cause, leagues.ErrInvalidName),
		errors.Is(cause, teams.ErrInvalidName):
		s.writeError(w, r, http.StatusBadRequest, cause.Error())
	default:
		s.logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		s.writeError(w, r, http.StatusInternalServerError, "an unexpected error occurred")
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}
