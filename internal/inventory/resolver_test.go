package inventory

import (
	"context"
	"errors"
	"testing"
)

func TestResolveOneFirstFilterWins(t *testing.T) {
	bridge := &fakeBridge{handler: func(tool string, args map[string]any) (any, error) {
		return results(map[string]any{"id": 5.0, "name": "Lab", "slug": "lab"}), nil
	}}
	svc := newTestService(t, bridge, &fakeDirect{})

	handle, err := svc.ResolveOne(context.Background(), "netbox_get_sites", "/api/dcim/sites/",
		[]Filter{{"name": "Lab"}, {"slug": "lab"}})
	if err != nil {
		t.Fatalf("ResolveOne() error = %v", err)
	}
	if handle.ID != 5 {
		t.Errorf("ID = %d, want 5", handle.ID)
	}
	if len(bridge.calls) != 1 {
		t.Errorf("bridge calls = %d, want 1 (first filter matched)", len(bridge.calls))
	}
	if got := bridge.calls[0].args["limit"]; got != 1 {
		t.Errorf("limit = %v, want 1", got)
	}
}

func TestResolveOneAdvancesOnZeroResults(t *testing.T) {
	bridge := &fakeBridge{handler: func(tool string, args map[string]any) (any, error) {
		if args["slug"] == "lab" {
			return results(map[string]any{"id": 5.0, "slug": "lab"}), nil
		}
		return results(), nil
	}}
	svc := newTestService(t, bridge, &fakeDirect{})

	handle, err := svc.ResolveOne(context.Background(), "netbox_get_sites", "/api/dcim/sites/",
		[]Filter{{"name": "Lab"}, {"slug": "lab"}})
	if err != nil {
		t.Fatalf("ResolveOne() error = %v", err)
	}
	if handle.ID != 5 {
		t.Errorf("ID = %d, want 5", handle.ID)
	}
	if len(bridge.calls) != 2 {
		t.Errorf("bridge calls = %d, want 2 (zero results advances the filter)", len(bridge.calls))
	}
}

// A bridge call failure is a channel verdict: remaining filters must not be
// retried against the bridge.
func TestResolveOneBridgeErrorShortCircuitsChannel(t *testing.T) {
	bridge := &fakeBridge{handler: func(tool string, args map[string]any) (any, error) {
		return nil, &BridgeError{Tool: tool, Status: 500, Body: "tool exploded"}
	}}
	direct := &fakeDirect{configured: true, handler: func(method, path string, params map[string]any, _ any) (any, error) {
		if params["slug"] == "lab" {
			return results(map[string]any{"id": 9.0, "slug": "lab"}), nil
		}
		return results(), nil
	}}
	svc := newTestService(t, bridge, direct)

	handle, err := svc.ResolveOne(context.Background(), "netbox_get_sites", "/api/dcim/sites/",
		[]Filter{{"name": "Lab"}, {"slug": "lab"}})
	if err != nil {
		t.Fatalf("ResolveOne() error = %v", err)
	}
	if handle.ID != 9 {
		t.Errorf("ID = %d, want 9 (resolved via direct channel)", handle.ID)
	}
	if len(bridge.calls) != 1 {
		t.Errorf("bridge calls = %d, want 1 (error short-circuits remaining filters)", len(bridge.calls))
	}
	if len(direct.calls) != 2 {
		t.Errorf("direct calls = %d, want 2", len(direct.calls))
	}
}

// Direct call failures are per-path, not channel-wide: the next filter is
// still attempted.
func TestResolveOneDirectErrorsAdvance(t *testing.T) {
	bridge := &fakeBridge{handler: func(tool string, args map[string]any) (any, error) {
		return results(), nil
	}}
	attempt := 0
	direct := &fakeDirect{configured: true, handler: func(method, path string, params map[string]any, _ any) (any, error) {
		attempt++
		if attempt == 1 {
			return nil, &DirectError{Method: method, Path: path, Status: 503, Body: "down"}
		}
		return results(map[string]any{"id": 4.0}), nil
	}}
	svc := newTestService(t, bridge, direct)

	handle, err := svc.ResolveOne(context.Background(), "netbox_get_sites", "/api/dcim/sites/",
		[]Filter{{"name": "Lab"}, {"slug": "lab"}})
	if err != nil {
		t.Fatalf("ResolveOne() error = %v", err)
	}
	if handle.ID != 4 {
		t.Errorf("ID = %d, want 4", handle.ID)
	}
}

func TestResolveOneNotFoundWrapsFirstChannelError(t *testing.T) {
	bridgeFailure := &BridgeError{Tool: "netbox_get_sites", Status: 500, Body: "tool exploded"}
	bridge := &fakeBridge{handler: func(tool string, args map[string]any) (any, error) {
		return nil, bridgeFailure
	}}
	direct := &fakeDirect{configured: true, handler: func(method, path string, params map[string]any, _ any) (any, error) {
		return results(), nil
	}}
	svc := newTestService(t, bridge, direct)

	_, err := svc.ResolveOne(context.Background(), "netbox_get_sites", "/api/dcim/sites/",
		[]Filter{{"name": "Nowhere"}})

	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("error = %T, want *NotFoundError", err)
	}
	if !errors.Is(err, bridgeFailure) {
		t.Error("NotFoundError should wrap the first channel failure")
	}
	if nf.Tool != "netbox_get_sites" || nf.Path != "/api/dcim/sites/" {
		t.Errorf("NotFoundError names %q / %q, want tool and path", nf.Tool, nf.Path)
	}
}

// An empty inventory with healthy channels must read as "not found", not as
// a configuration or channel problem.
func TestResolveOneEmptyHealthyChannelsIsNotFound(t *testing.T) {
	bridge := &fakeBridge{handler: func(tool string, args map[string]any) (any, error) {
		return results(), nil
	}}
	svc := newTestService(t, bridge, &fakeDirect{})

	_, err := svc.ResolveOne(context.Background(), "netbox_get_sites", "/api/dcim/sites/",
		[]Filter{{"name": "Nowhere"}})

	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("error = %T, want *NotFoundError", err)
	}
	if errors.Is(err, ErrDirectNotConfigured) {
		t.Error("unconfigured fallback must not surface as the failure cause")
	}
	if nf.Unwrap() != nil {
		t.Errorf("wrapped error = %v, want nil (no channel failed)", nf.Unwrap())
	}
}

func TestResolveOneSkipsDirectWhenUnconfigured(t *testing.T) {
	bridge := &fakeBridge{handler: func(tool string, args map[string]any) (any, error) {
		return results(), nil
	}}
	direct := &fakeDirect{configured: false}
	svc := newTestService(t, bridge, direct)

	_, err := svc.ResolveOne(context.Background(), "netbox_get_sites", "/api/dcim/sites/",
		[]Filter{{"name": "Lab"}})
	if err == nil {
		t.Fatal("expected error")
	}
	if len(direct.calls) != 0 {
		t.Errorf("direct calls = %d, want 0 (channel not configured)", len(direct.calls))
	}
}
