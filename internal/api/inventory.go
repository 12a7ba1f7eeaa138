package api

import (
	"net/http"
	"strconv"

	"netbridge/internal/inventory"
)

// listOptionsFromQuery builds list options from common query parameters.
func listOptionsFromQuery(r *http.Request) inventory.ListOptions {
	q := r.URL.Query()
	opts := inventory.ListOptions{
		NameContains:  q.Get("q"),
		Manufacturer:  q.Get("manufacturer"),
		ModelContains: q.Get("model"),
		Site:          q.Get("site"),
	}
	if raw := q.Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			opts.Limit = n
		}
	}
	return opts
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request, kind inventory.Kind) {
	result, err := s.inventory.List(r.Context(), kind, listOptionsFromQuery(r))
	if err != nil {
		s.logger.Warn("list failed", "kind", string(kind), "error", err, "request_id", requestID(r.Context()))
		writeInventoryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleListSites(w http.ResponseWriter, r *http.Request) {
	s.handleList(w, r, inventory.KindSite)
}

func (s *Server) handleListRoles(w http.ResponseWriter, r *http.Request) {
	s.handleList(w, r, inventory.KindRole)
}

func (s *Server) handleListManufacturers(w http.ResponseWriter, r *http.Request) {
	s.handleList(w, r, inventory.KindManufacturer)
}

func (s *Server) handleListDeviceTypes(w http.ResponseWriter, r *http.Request) {
	s.handleList(w, r, inventory.KindDeviceType)
}

func (s *Server) handleListDevices(w http.ResponseWriter, r *http.Request) {
	s.handleList(w, r, inventory.KindDevice)
}

// handleChoices returns the merged choice catalogue. Choices never fails:
// when every source is unavailable a built-in default catalogue is served.
func (s *Server) handleChoices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.inventory.Choices(r.Context()))
}

func (s *Server) handleDeviceWithPorts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ref := q.Get("device")
	site := q.Get("site")

	detail, err := s.inventory.DeviceWithPorts(r.Context(), ref, site)
	if err != nil {
		s.logger.Warn("device lookup failed", "device", ref, "error", err, "request_id", requestID(r.Context()))
		writeInventoryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}
