// Package metrics records per-call channel telemetry to InfluxDB.
//
// Every bridge invocation and direct REST call produces one "channel_call"
// point tagged with the channel, operation, and outcome, carrying the call
// duration. Writes are batched and asynchronous; a request is never blocked
// or failed by metrics recording.
//
// The integration is optional. When disabled in configuration, Connect
// returns ErrDisabled and the service runs with recording switched off.
package metrics
