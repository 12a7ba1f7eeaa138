package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"netbridge/internal/infrastructure/logging"
)

// defaultListLimit is the result-count limit when neither the caller nor
// the configuration specifies one.
const defaultListLimit = 200

// Bridge is the primary channel: named tool invocation against the MCP
// bridge. Satisfied by *BridgeClient; kept as an interface for tests.
type Bridge interface {
	Invoke(ctx context.Context, tool string, args map[string]any) (any, error)
}

// Direct is the secondary channel: NetBox's native REST API. Satisfied by
// *DirectClient; kept as an interface for tests.
type Direct interface {
	Configured() bool
	Get(ctx context.Context, path string, params map[string]any) (any, error)
	Post(ctx context.Context, path string, body any) (any, error)
	Options(ctx context.Context, path string) (any, error)
}

// Deps holds the dependencies required by the inventory service.
type Deps struct {
	Bridge       Bridge
	Direct       Direct
	Logger       *logging.Logger
	DefaultLimit int
}

// Service orchestrates resolution, choice aggregation, device assembly,
// payload preparation, and batch creation across the two channels.
//
// The service holds no per-request state; all methods are safe for
// concurrent use.
type Service struct {
	bridge Bridge
	direct Direct
	logger *logging.Logger
	limit  int
}

// New creates an inventory service with the given dependencies.
func New(deps Deps) (*Service, error) {
	if deps.Bridge == nil {
		return nil, fmt.Errorf("bridge channel is required")
	}
	if deps.Direct == nil {
		return nil, fmt.Errorf("direct channel is required")
	}
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	limit := deps.DefaultLimit
	if limit <= 0 {
		limit = defaultListLimit
	}

	return &Service{
		bridge: deps.Bridge,
		direct: deps.Direct,
		logger: deps.Logger.With("component", "inventory"),
		limit:  limit,
	}, nil
}

// resultRows extracts the result objects from a channel response. Both the
// paginated {"results": [...]} envelope and a bare list are accepted.
func resultRows(v any) []map[string]any {
	switch t := v.(type) {
	case map[string]any:
		list, _ := t["results"].([]any)
		return toRowList(list)
	case []any:
		return toRowList(t)
	default:
		return nil
	}
}

func toRowList(list []any) []map[string]any {
	rows := make([]map[string]any, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			rows = append(rows, m)
		}
	}
	return rows
}

// handleFrom builds an EntityHandle from a raw result object.
func handleFrom(raw map[string]any) EntityHandle {
	return EntityHandle{
		ID:   toInt(raw["id"]),
		Name: stringField(raw, "name"),
		Slug: stringField(raw, "slug"),
		Raw:  raw,
	}
}

// toInt converts the numeric shapes JSON decoding produces to an int.
func toInt(v any) int {
	switch t := v.(type) {
	case int:
		return t
	case int64:
		return int(t)
	case float64:
		return int(t)
	case json.Number:
		n, _ := t.Int64()
		return int(n)
	case string:
		n, _ := strconv.Atoi(t)
		return n
	default:
		return 0
	}
}

// stringField returns m[key] as a trimmed string, or "" when absent.
func stringField(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return strings.TrimSpace(fmt.Sprint(v))
	}
	return strings.TrimSpace(s)
}

// slugOrName returns the nested object's slug when present, its name
// otherwise. Slugs are the stable identifier; names are the display
// fallback.
func slugOrName(v any) string {
	m, ok := v.(map[string]any)
	if !ok {
		return ""
	}
	if slug := stringField(m, "slug"); slug != "" {
		return slug
	}
	return stringField(m, "name")
}

// isDigits reports whether s is a non-empty decimal string.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
