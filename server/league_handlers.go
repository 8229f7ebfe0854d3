package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type createLeagueRequest struct {
	Name  string `json:"name"`
	Sport string `json:"sport"`
}

func (s *Server) CreateLeagueHandler(w http.ResponseWriter, r *http.Request) {
	var req createLeagueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	principal := PrincipalFrom(r.Context())
	league, err := s.leagues.Create(r.Context(), principal.User.ID, req.Name, req.Sport)
	if err != nil {
		s.translateError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, league)
}

func (s *Server) ListLeaguesHandler(w http.ResponseWriter, r *http.Request) {
	principal := PrincipalFrom(r.Context())
	list, err := s.leagues.ListByOwner(r.Context(), principal.User.ID)
	if err != nil {
		s.translateError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, list)
}

func (s *Server) GetLeagueHandler(w http.ResponseWriter, r *http.Request) {
	league, err := s.leagues.Get(r.Context(), chi.URLParam(r, "leagueID"))
	if err != nil {
		s.translateError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, league)
}

type renameLeagueRequest struct {
	Name string `json:"name"`
}

func (s *Server) RenameLeagueHandler(w http.ResponseWriter, r *http.Request) {
	var req renameLeagueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	principal := PrincipalFrom(r.Context())
	league, err := s.leagues.Rename(r.Context(), chi.URLParam(r, "leagueID"), principal.User.ID, req.Name)
	if err != nil {
		s.translateError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, league)
}

func (s *Server) DeleteLeagueHandler(w http.ResponseWriter, r *http.Request) {
	principal := PrincipalFrom(r.Context())
	if err := s.leagues.Delete(r.Context(), chi.URLParam(r, "leagueID"), principal.User.ID); err != nil {
		s.translateError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type createTeamRequest struct {
	Name string `json:"name"`
}

func (s *Server) CreateTeamHandler(w http.ResponseWriter, r *http.Request) {
	var req createTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	principal := PrincipalFrom(r.Context())
	team, err := s.teams.Create(r.Context(), chi.URLParam(r, "leagueID"), principal.User.ID, req.Name)
	if err != nil {
		s.translateError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, team)
}

func (s *Server) ListTeamsHandler(w http.ResponseWriter, r *http.Request) {
	list, err := s.teams.ListByLeague(r.Context(), chi.URLParam(r, "leagueID"))
	if err != nil {
		s.translateError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, list)
}

func (s *Server) DeleteTeamHandler(w http.ResponseWriter, r *http.Request) {
	principal := PrincipalFrom(r.Context())
	if err := s.teams.Delete(r.Context(), chi.URLParam(r, "teamID"), principal.User.ID); err != nil {
		s.translateError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
