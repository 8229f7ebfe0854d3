package server

import (
	"net/http"
)

type purgeResponse struct {
	Purged int64 `json:"purged"`
}

// PurgeTokensHandler runs a ledger sweep on demand, ahead of the
// janitor's schedule. ADMIN only.
func (s *Server) PurgeTokensHandler(w http.ResponseWriter, r *http.Request) {
	purged, err := s.repos.Ledger.PurgeExpiredOrRevoked(r.Context())
	if err != nil {
		s.translateError(w, r, err)
		return
	}
	s.logger.Info().Int64("purged", purged).Msg("manual token purge")
	s.writeJSON(w, http.StatusOK, purgeResponse{Purged: purged})
}
