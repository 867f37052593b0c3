package handler

import (
	"errors"
	"net/http"

	"github.com/pkordes/travel-planner/backend/internal/remote"
)

// PostSync handles POST /sync. It runs a sync to completion and returns the
// result. Returns 409 while another sync is running and 503 when no remote
// catalogue is configured.
func (s *Server) PostSync(w http.ResponseWriter, r *http.Request) {
	if s.sync == nil {
		writeError(w, http.StatusServiceUnavailable, codeUnavailable, "remote sync is not configured")
		return
	}
	res, err := s.sync.Run(r.Context())
	switch {
	case errors.Is(err, remote.ErrSyncInFlight):
		writeError(w, http.StatusConflict, codeConflict, err.Error())
	case err != nil:
		writeError(w, http.StatusBadGateway, codeSyncFailed, err.Error())
	default:
		writeJSON(w, http.StatusOK, res)
	}
}

// GetSyncStatus handles GET /sync.
func (s *Server) GetSyncStatus(w http.ResponseWriter, _ *http.Request) {
	if s.sync == nil {
		writeError(w, http.StatusServiceUnavailable, codeUnavailable, "remote sync is not configured")
		return
	}
	writeJSON(w, http.StatusOK, s.sync.Status())
}
