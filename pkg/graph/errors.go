package graph

import (
	"fmt"
	"time"
)

// Kind identifies a failure class in the closed error taxonomy.
// Every error surfaced by this package carries exactly one Kind.
type Kind string

const (
	// KindInternal indicates a failure inside this process (bad state,
	// cancelled context, programming error).
	KindInternal Kind = "internal_error"

	// KindUnknown indicates a failure that matched no other classification.
	KindUnknown Kind = "unknown_error"

	// KindGraphAPI indicates a Graph API failure with no more specific
	// classification (unrecognized vendor code, 5xx status).
	KindGraphAPI Kind = "graph_api_error"

	// KindInvalidParameter indicates a request parameter that failed
	// validation, either locally or as rejected by the API.
	KindInvalidParameter Kind = "invalid_parameter"

	// KindMissingParameter indicates a required parameter that was absent.
	KindMissingParameter Kind = "missing_parameter"

	// KindUnauthorized indicates failed authentication (HTTP 401).
	KindUnauthorized Kind = "unauthorized"

	// KindForbidden indicates insufficient permissions (HTTP 403).
	KindForbidden Kind = "forbidden"

	// KindNotFound indicates a missing resource (HTTP 404).
	KindNotFound Kind = "not_found"

	// KindInvalidResponse indicates a response the client could not interpret.
	KindInvalidResponse Kind = "invalid_response"

	// KindRateLimited indicates request throttling (HTTP 429).
	KindRateLimited Kind = "rate_limited"

	// KindNetwork indicates a transport-level failure (connection refused,
	// reset, DNS resolution).
	KindNetwork Kind = "network_error"

	// KindTimeout indicates the request exceeded its time budget.
	KindTimeout Kind = "timeout"
)

// Error is a classified failure. It is created once, at the boundary where a
// raw failure first meets the classifier, and never mutated afterwards.
type Error struct {
	// Kind is the taxonomy classification
	Kind Kind

	// Message is the human-readable failure description
	Message string

	// StatusCode is the HTTP status code (0 if not applicable)
	StatusCode int

	// Code is the vendor error code from the Graph error envelope (if any)
	Code string

	// RetryAfter is the server-provided retry hint (0 if none)
	RetryAfter time.Duration

	// Details carries optional structured context (inner error payload, etc.)
	Details map[string]any

	// Cause is the underlying error (if any)
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (%s): %s", e.Kind, e.Code, e.Message)
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error for error chain support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a classified error with the given kind and message.
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Errorf creates a classified error with a formatted message.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
