// Package inventory implements the multi-channel resolution layer between
// NetBridge and a NetBox network-inventory system.
//
// Two channels exist. The bridge channel invokes named tools on an MCP-style
// endpoint and is always configured. The direct channel talks to NetBox's
// native REST API and is optional; it participates only when both a base URL
// and an API token are configured.
//
// This package provides:
//   - Channel clients (BridgeClient, DirectClient) with bounded timeouts
//   - Ordered-filter entity resolution with bridge-then-REST fallback
//   - Choice catalog aggregation across up to three discovery sources
//   - Device summaries with their interface / front-port / rear-port collections
//   - Creation payload preparation with reference resolution
//   - Batched port creation with per-item partial-failure reporting
//
// # Fallback Rules
//
// A bridge channel failure (unreachable, missing tool, non-2xx) is treated
// as a single verdict for the duration of the call: remaining filters are
// not retried against the bridge, only against REST. Zero results from a
// healthy channel advances to the next filter. Retries never happen inside
// the channel clients themselves.
//
// # State
//
// Everything here is request-scoped. Entities are built from channel
// responses and discarded when the request ends; there is no cache and no
// cross-request mutable state, so all methods are safe for concurrent use.
package inventory
