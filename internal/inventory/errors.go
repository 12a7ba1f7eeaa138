package inventory

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDirectNotConfigured is returned by DirectClient calls when the REST
// fallback is invoked without a base URL and token. Callers must not retry
// the direct channel on this error; it is a configuration verdict, not a
// network failure.
var ErrDirectNotConfigured = errors.New("inventory: direct NetBox fallback not configured (set netbox.base_url and netbox.token)")

// BridgeError reports a bridge channel call that reached the endpoint but
// returned a failure. Body carries the remote response verbatim so
// operators can diagnose the upstream tool.
type BridgeError struct {
	Tool   string
	Status int
	Body   string
}

func (e *BridgeError) Error() string {
	return fmt.Sprintf("inventory: bridge tool %s failed (status %d): %s", e.Tool, e.Status, e.Body)
}

// DirectError reports a direct REST call that reached NetBox but returned
// a non-2xx status. Body carries NetBox's response verbatim.
type DirectError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *DirectError) Error() string {
	return fmt.Sprintf("inventory: netbox %s %s failed (status %d): %s", e.Method, e.Path, e.Status, e.Body)
}

// NotFoundError is returned when every configured channel and filter has
// been exhausted without a match. It names the attempted bridge tool and
// REST path, and wraps the first channel failure (if any) so the original,
// usually most informative, error survives the fallback chain.
type NotFoundError struct {
	Tool string
	Path string
	Ref  string
	err  error
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("inventory: not found via %s / %s", e.Tool, e.Path)
	if e.Ref != "" {
		msg = fmt.Sprintf("inventory: %s not found via %s / %s", e.Ref, e.Tool, e.Path)
	}
	if e.err != nil {
		msg += ": " + e.err.Error()
	}
	return msg
}

func (e *NotFoundError) Unwrap() error { return e.err }

// ValidationError reports caller input that failed validation before any
// network call was made. Missing lists every absent required field at once.
type ValidationError struct {
	Missing []string
	Reason  string
}

func (e *ValidationError) Error() string {
	if len(e.Missing) > 0 {
		return "inventory: missing required fields: " + strings.Join(e.Missing, ", ")
	}
	return "inventory: " + e.Reason
}

// AggregateError is returned when every item of a batch creation failed.
// Errors carries the full per-item failure list so callers can distinguish
// "all failed" from a partial result.
type AggregateError struct {
	Kind   PortKind
	Errors []ItemError
}

func (e *AggregateError) Error() string {
	return fmt.Sprintf("inventory: all %s creates failed (%d errors)", e.Kind, len(e.Errors))
}
