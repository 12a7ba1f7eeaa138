// Package api implements the HTTP REST API for NetBridge.
//
// This package provides:
//   - REST endpoints for inventory lookups, choice discovery, device
//     summaries, payload preparation, and creation operations
//   - JWT authentication (optional, enabled by configuring a secret)
//   - Middleware stack (request ID, logging, recovery, CORS, body limit)
//
// # Architecture
//
// The API server sits between user interfaces and the inventory service.
// Every inventory operation flows through the bridge channel first with an
// optional direct NetBox REST fallback; the server itself holds no
// inventory state and simply translates HTTP requests into service calls
// and service errors into structured HTTP responses.
//
// # Graceful Degradation
//
// The server operates without the audit repository (creation operations
// are simply not recorded) and without authentication when no JWT secret
// is configured (development mode).
package api
