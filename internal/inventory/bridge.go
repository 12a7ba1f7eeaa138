package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"netbridge/internal/infrastructure/config"
)

// Recorder receives one observation per channel call. Implementations must
// be safe for concurrent use. A nil Recorder disables recording.
type Recorder interface {
	// RecordCall records a call on channel ("bridge" or "direct") for the
	// given operation (tool name or REST path) with its duration and outcome.
	RecordCall(channel, operation string, duration time.Duration, err error)
}

// maxErrorBodyBytes caps how much of an upstream error body is retained.
const maxErrorBodyBytes = 8 << 10

// BridgeClient invokes named tools on the MCP bridge endpoint, the primary
// channel to the inventory system.
//
// The client performs no retries; fallback decisions belong to the caller.
type BridgeClient struct {
	url      string
	client   *http.Client
	recorder Recorder
}

// NewBridgeClient creates a bridge client from configuration.
// The recorder is optional and may be nil.
func NewBridgeClient(cfg config.BridgeConfig, recorder Recorder) *BridgeClient {
	return &BridgeClient{
		url:      strings.TrimRight(cfg.URL, "/"),
		client:   &http.Client{Timeout: cfg.GetTimeout()},
		recorder: recorder,
	}
}

// invokeRequest is the wire format for a tool invocation.
type invokeRequest struct {
	Tool string         `json:"tool"`
	Args map[string]any `json:"args"`
}

// Invoke sends a named tool invocation with an argument map and returns the
// decoded result. A {"result": ...} envelope is unwrapped; any other shape
// is returned as decoded.
//
// A non-2xx response yields a *BridgeError carrying the upstream body
// verbatim. Network and timeout failures are wrapped and returned as-is;
// both count as bridge channel failures to callers.
func (c *BridgeClient) Invoke(ctx context.Context, tool string, args map[string]any) (any, error) {
	start := time.Now()
	result, err := c.invoke(ctx, tool, args)
	if c.recorder != nil {
		c.recorder.RecordCall(ChannelBridge, tool, time.Since(start), err)
	}
	return result, err
}

func (c *BridgeClient) invoke(ctx context.Context, tool string, args map[string]any) (any, error) {
	if args == nil {
		args = map[string]any{}
	}

	body, err := json.Marshal(invokeRequest{Tool: tool, Args: args})
	if err != nil {
		return nil, fmt.Errorf("encoding bridge request for %s: %w", tool, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/invoke", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building bridge request for %s: %w", tool, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("invoking bridge tool %s: %w", tool, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &BridgeError{
			Tool:   tool,
			Status: resp.StatusCode,
			Body:   readErrorBody(resp.Body),
		}
	}

	var payload any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding bridge response for %s: %w", tool, err)
	}

	return unwrapResult(payload), nil
}

// unwrapResult peels the {"result": ...} envelope when present.
func unwrapResult(payload any) any {
	if m, ok := payload.(map[string]any); ok {
		if result, ok := m["result"]; ok {
			return result
		}
	}
	return payload
}

// readErrorBody reads an upstream error body, capped at maxErrorBodyBytes.
func readErrorBody(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, maxErrorBodyBytes))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}
