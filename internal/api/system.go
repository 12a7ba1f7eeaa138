package api

import (
	"net/http"
)

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Direct  bool   `json:"direct_fallback"`
	Audit   bool   `json:"audit"`
}

// handleHealth reports liveness and which optional subsystems are wired.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Version: s.version,
		Direct:  s.config.NetBox.BaseURL != "" && s.config.NetBox.Token != "",
		Audit:   s.audit != nil,
	})
}
