package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"netbridge/internal/inventory"
)

// Error represents a structured error response.
type Error struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  any    `json:"detail,omitempty"`
}

// Common error codes.
const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeNotFound     = "not_found"
	ErrCodeUnauthorized = "unauthorised"
	ErrCodeBadGateway   = "bad_gateway"
	ErrCodeInternal     = "internal_error"
	ErrCodeValidation   = "validation_error"
)

// writeJSON writes a JSON response with the given status code and payload.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		//nolint:errcheck // Best-effort write to response; connection may be closed
		json.NewEncoder(w).Encode(v)
	}
}

// writeError writes a structured error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, Error{
		Status:  status,
		Code:    code,
		Message: message,
	})
}

// writeBadRequest writes a 400 error response.
func writeBadRequest(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, ErrCodeBadRequest, message)
}

// writeUnauthorized writes a 401 error response.
func writeUnauthorized(w http.ResponseWriter, message string) {
	writeError(w, http.StatusUnauthorized, ErrCodeUnauthorized, message)
}

// writeInternalError writes a 500 error response.
func writeInternalError(w http.ResponseWriter, message string) {
	writeError(w, http.StatusInternalServerError, ErrCodeInternal, message)
}

// writeInventoryError translates an inventory service error into the
// appropriate HTTP response. Upstream failure bodies are passed through
// so operators can diagnose the channel that actually failed.
func writeInventoryError(w http.ResponseWriter, err error) {
	var validationErr *inventory.ValidationError
	if errors.As(err, &validationErr) {
		writeJSON(w, http.StatusBadRequest, Error{
			Status:  http.StatusBadRequest,
			Code:    ErrCodeValidation,
			Message: validationErr.Error(),
			Detail:  map[string]any{"missing": validationErr.Missing},
		})
		return
	}

	var notFoundErr *inventory.NotFoundError
	if errors.As(err, &notFoundErr) {
		writeError(w, http.StatusNotFound, ErrCodeNotFound, notFoundErr.Error())
		return
	}

	var aggregateErr *inventory.AggregateError
	if errors.As(err, &aggregateErr) {
		writeJSON(w, http.StatusBadGateway, Error{
			Status:  http.StatusBadGateway,
			Code:    ErrCodeBadGateway,
			Message: aggregateErr.Error(),
			Detail:  map[string]any{"errors": aggregateErr.Errors},
		})
		return
	}

	var bridgeErr *inventory.BridgeError
	if errors.As(err, &bridgeErr) {
		writeJSON(w, http.StatusBadGateway, Error{
			Status:  http.StatusBadGateway,
			Code:    ErrCodeBadGateway,
			Message: bridgeErr.Error(),
			Detail:  map[string]any{"upstream": bridgeErr.Body},
		})
		return
	}

	var directErr *inventory.DirectError
	if errors.As(err, &directErr) {
		writeJSON(w, http.StatusBadGateway, Error{
			Status:  http.StatusBadGateway,
			Code:    ErrCodeBadGateway,
			Message: directErr.Error(),
			Detail:  map[string]any{"upstream": directErr.Body},
		})
		return
	}

	if errors.Is(err, inventory.ErrDirectNotConfigured) {
		writeError(w, http.StatusBadGateway, ErrCodeBadGateway, err.Error())
		return
	}

	writeInternalError(w, err.Error())
}
