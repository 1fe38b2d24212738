// Package health provides liveness and readiness checks for the diagnostics
// listener.
//
// A Checker aggregates named component checks (configuration load, Graph
// connectivity) and runs them concurrently with a per-check timeout.
// Liveness always reports ok while the process is running; readiness degrades
// when any registered check fails.
//
// HTTP handlers for /health, /ready, and /version are mounted on the
// diagnostics mux alongside /metrics.
package health
