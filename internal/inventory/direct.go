package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"netbridge/internal/infrastructure/config"
)

// DirectClient talks to NetBox's native REST API, the optional secondary
// channel. Every call requires both a base URL and an API token; without
// them calls fail immediately with ErrDirectNotConfigured so callers know
// not to retry this channel.
type DirectClient struct {
	base     string
	token    string
	client   *http.Client
	recorder Recorder
}

// NewDirectClient creates a direct REST client from configuration.
// The recorder is optional and may be nil.
func NewDirectClient(cfg config.NetBoxConfig, recorder Recorder) *DirectClient {
	return &DirectClient{
		base:     strings.TrimRight(cfg.BaseURL, "/"),
		token:    cfg.Token,
		client:   &http.Client{Timeout: cfg.GetTimeout()},
		recorder: recorder,
	}
}

// Configured reports whether the direct channel is usable.
func (c *DirectClient) Configured() bool {
	return c.base != "" && c.token != ""
}

// Get performs a GET against the given API path with query parameters.
func (c *DirectClient) Get(ctx context.Context, path string, params map[string]any) (any, error) {
	return c.call(ctx, http.MethodGet, path, params, nil)
}

// Post performs a POST against the given API path with a JSON body.
func (c *DirectClient) Post(ctx context.Context, path string, body any) (any, error) {
	return c.call(ctx, http.MethodPost, path, nil, body)
}

// Options performs an OPTIONS request against the given API path. NetBox
// answers with DRF schema metadata, used for choice discovery.
func (c *DirectClient) Options(ctx context.Context, path string) (any, error) {
	return c.call(ctx, http.MethodOptions, path, nil, nil)
}

func (c *DirectClient) call(ctx context.Context, method, path string, params map[string]any, body any) (any, error) {
	if !c.Configured() {
		return nil, ErrDirectNotConfigured
	}

	start := time.Now()
	result, err := c.do(ctx, method, path, params, body)
	if c.recorder != nil {
		c.recorder.RecordCall(ChannelDirect, path, time.Since(start), err)
	}
	return result, err
}

func (c *DirectClient) do(ctx context.Context, method, path string, params map[string]any, body any) (any, error) {
	target := c.base + path
	if len(params) > 0 {
		q := url.Values{}
		for k, v := range params {
			if v == nil {
				continue
			}
			q.Set(k, fmt.Sprint(v))
		}
		target += "?" + q.Encode()
	}

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding netbox request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("building netbox request: %w", err)
	}
	// NetBox uses its own "Token" authorization scheme, not "Bearer".
	req.Header.Set("Authorization", "Token "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling netbox %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &DirectError{
			Method: method,
			Path:   path,
			Status: resp.StatusCode,
			Body:   readErrorBody(resp.Body),
		}
	}

	var payload any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding netbox response for %s: %w", path, err)
	}

	return payload, nil
}
