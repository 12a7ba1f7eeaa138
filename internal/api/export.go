package api

import (
	"encoding/json"
	"net/http"
	"time"

	"netbridge/internal/audit"
	"netbridge/internal/inventory"
)

// handlePrepareDevice resolves the referenced site, role, manufacturer
// and device type into a validated creation payload without creating
// anything.
func (s *Server) handlePrepareDevice(w http.ResponseWriter, r *http.Request) {
	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	result, err := s.inventory.PrepareDevice(r.Context(), fields)
	if err != nil {
		s.logger.Warn("prepare device failed", "error", err, "request_id", requestID(r.Context()))
		writeInventoryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCreateDevice(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	result, err := s.inventory.CreateDevice(r.Context(), body)
	if err != nil {
		s.logger.Warn("create device failed", "error", err, "request_id", requestID(r.Context()))
		writeInventoryError(w, err)
		return
	}

	s.recordAudit(r, &audit.Entry{
		Action:     audit.ActionCreateDevice,
		EntityType: "device",
		EntityName: deviceName(body),
		Channel:    result.Channel,
	})

	writeJSON(w, http.StatusCreated, result.Result)
}

func (s *Server) handleCreateInterfaces(w http.ResponseWriter, r *http.Request) {
	s.handleCreatePorts(w, r, inventory.PortInterfaces, "interfaces")
}

func (s *Server) handleCreateRearPorts(w http.ResponseWriter, r *http.Request) {
	s.handleCreatePorts(w, r, inventory.PortRearPorts, "rear_ports")
}

func (s *Server) handleCreateFrontPorts(w http.ResponseWriter, r *http.Request) {
	s.handleCreatePorts(w, r, inventory.PortFrontPorts, "front_ports")
}

type createPortsRequest struct {
	DeviceID   int              `json:"device_id"`
	Interfaces []map[string]any `json:"interfaces"`
	RearPorts  []map[string]any `json:"rear_ports"`
	FrontPorts []map[string]any `json:"front_ports"`
}

func (req *createPortsRequest) items(kind inventory.PortKind) []map[string]any {
	switch kind {
	case inventory.PortInterfaces:
		return req.Interfaces
	case inventory.PortRearPorts:
		return req.RearPorts
	case inventory.PortFrontPorts:
		return req.FrontPorts
	}
	return nil
}

// handleCreatePorts runs a batch creation. A bulk channel success is
// returned as the channel delivered it; otherwise the per-item result
// lists created objects alongside any item failures.
func (s *Server) handleCreatePorts(w http.ResponseWriter, r *http.Request, kind inventory.PortKind, entityType string) {
	var req createPortsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	result, err := s.inventory.CreatePorts(r.Context(), kind, req.DeviceID, req.items(kind))
	if err != nil {
		s.logger.Warn("create ports failed",
			"kind", string(kind),
			"error", err,
			"request_id", requestID(r.Context()),
		)
		writeInventoryError(w, err)
		return
	}

	s.recordAudit(r, &audit.Entry{
		Action:     audit.ActionCreatePorts,
		EntityType: entityType,
		Channel:    result.Channel,
		Details:    map[string]any{"requested": len(req.items(kind)), "failed": len(result.Errors)},
	})

	if result.Bulk != nil {
		writeJSON(w, http.StatusCreated, result.Bulk)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// recordAudit persists an audit entry when a repository is configured.
// Audit failures are logged, never surfaced to the caller.
func (s *Server) recordAudit(r *http.Request, entry *audit.Entry) {
	if s.audit == nil {
		return
	}

	entry.CreatedAt = time.Now().UTC()
	if username, ok := r.Context().Value(ctxKeyUsername).(string); ok && username != "" {
		if entry.Details == nil {
			entry.Details = map[string]any{}
		}
		entry.Details["user"] = username
	}

	if err := s.audit.Create(r.Context(), entry); err != nil {
		s.logger.Warn("recording audit entry failed", "action", entry.Action, "error", err)
	}
}

// deviceName extracts the device name from a creation request for the
// audit trail, looking inside a wrapped payload when present.
func deviceName(body map[string]any) string {
	if name, ok := body["name"].(string); ok {
		return name
	}
	if payload, ok := body["payload"].(map[string]any); ok {
		if name, ok := payload["name"].(string); ok {
			return name
		}
	}
	return ""
}
