// Package telemetry groups the observability components of dirgate.
//
// # Components
//
//   - logging: structured slog logging to stderr with secret redaction
//   - metrics: Prometheus counters and histograms for directory queries
//   - health: liveness and readiness probes on the diagnostics listener
//
// Everything here is optional at runtime: the gateway serves its stdio tool
// catalog with or without the diagnostics listener enabled, and a nil
// metrics collector disables recording without conditional call sites.
package telemetry
