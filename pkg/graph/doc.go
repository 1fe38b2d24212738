// Package graph implements the resilient execution core for Microsoft Graph
// queries: a pooled HTTP client with client-credentials token acquisition, a
// closed error taxonomy with a classifier, and a retry engine with
// exponential backoff, jitter, and Retry-After support.
//
// # Architecture
//
// The package is organized into three layers:
//
//  1. Client - pooled HTTP transport, bearer-token lifecycle, envelope
//     parsing (page envelopes and vendor error envelopes)
//  2. Classifier - maps raw failures (vendor code, HTTP status, network
//     error) into the closed Kind taxonomy
//  3. Retry engine - Do wraps any operation, retrying transient failures
//     under a per-call Policy
//
// # Basic Usage
//
//	client, err := graph.NewClient(graph.ClientConfig{
//	    TenantID:     os.Getenv("DIRGATE_TENANT_ID"),
//	    ClientID:     os.Getenv("DIRGATE_CLIENT_ID"),
//	    ClientSecret: os.Getenv("DIRGATE_CLIENT_SECRET"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	items, err := graph.Do(ctx, graph.DefaultPolicy(), func(ctx context.Context) ([]json.RawMessage, error) {
//	    return client.List(ctx, graph.Request{Path: "/users", Top: 50})
//	})
//
// # Error Handling
//
// Callers of Do only ever observe a *Error carrying one Kind from the closed
// taxonomy, never a raw transport error. Validation failures produced by
// pkg/odata use the same taxonomy, so the whole request path shares one
// failure contract.
//
// # Retry Semantics
//
// Attempts are numbered 0..MaxRetries (MaxRetries+1 total tries). Retryable
// failures are rate limiting, timeouts, retryable status codes (default 429,
// 500, 502, 503, 504), and recognized network failures. The sleep between
// attempts prefers the server's Retry-After hint; otherwise it is
// BaseDelay*2^attempt with optional ±25% jitter, capped at MaxDelay. No two
// attempts for the same call ever overlap in time.
package graph
