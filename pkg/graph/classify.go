package graph

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"
	"time"
)

// apiFailure captures a raw Graph API failure (HTTP status plus the vendor
// error envelope, when present) before classification. It exists only inside
// the client/retry boundary; callers observe *Error instead.
type apiFailure struct {
	status     int
	code       string
	message    string
	inner      map[string]any
	retryAfter time.Duration
}

// Error implements the error interface.
func (f *apiFailure) Error() string {
	if f.code != "" {
		return fmt.Sprintf("graph api failure (status %d, code %s): %s", f.status, f.code, f.message)
	}
	return fmt.Sprintf("graph api failure (status %d): %s", f.status, f.message)
}

// vendorKinds maps Graph error envelope codes to taxonomy kinds.
// Codes are matched case-insensitively. Codes ending in "NotFound" map to
// KindNotFound even when not listed here.
var vendorKinds = map[string]Kind{
	"unauthorized":           KindUnauthorized,
	"authenticationfailed":   KindUnauthorized,
	"authenticationcanceled": KindUnauthorized,
	"forbidden":              KindForbidden,
	"authorizationfailed":    KindForbidden,
	"toomanyrequests":        KindRateLimited,
	"ratelimitexceeded":      KindRateLimited,
	"throttledrequest":       KindRateLimited,
	"badrequest":             KindInvalidParameter,
	"invalidrequest":         KindInvalidParameter,
	"invalidfilter":          KindInvalidParameter,
	"invalidqueryparameter":  KindInvalidParameter,
	"timeout":                KindTimeout,
	"requesttimeout":         KindTimeout,
}

// Classify maps a raw failure into the closed taxonomy. An already-classified
// error passes through unchanged. Classification priority: vendor error code,
// then HTTP status, then network error shape, then unknown.
func Classify(err error) *Error {
	var classified *Error
	if errors.As(err, &classified) {
		return classified
	}

	var failure *apiFailure
	if errors.As(err, &failure) {
		return classifyAPIFailure(failure)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, Message: "request deadline exceeded", Cause: err}
	}
	if errors.Is(err, context.Canceled) {
		return &Error{Kind: KindInternal, Message: "operation canceled", Cause: err}
	}

	if id, ok := networkErrorID(err); ok {
		return &Error{
			Kind:    KindNetwork,
			Message: err.Error(),
			Details: map[string]any{"network_error": id},
			Cause:   err,
		}
	}

	return &Error{
		Kind:    KindUnknown,
		Message: fmt.Sprintf("unclassified failure: %v", err),
		Cause:   err,
	}
}

func classifyAPIFailure(f *apiFailure) *Error {
	e := &Error{
		Message:    f.message,
		StatusCode: f.status,
		Code:       f.code,
		RetryAfter: f.retryAfter,
	}
	if len(f.inner) > 0 {
		e.Details = map[string]any{"innerError": f.inner}
	}

	if f.code != "" {
		if kind, ok := vendorKinds[strings.ToLower(f.code)]; ok {
			e.Kind = kind
			return e
		}
		if strings.HasSuffix(strings.ToLower(f.code), "notfound") {
			e.Kind = KindNotFound
			return e
		}
		e.Kind = KindGraphAPI
		return e
	}

	switch {
	case f.status == 401:
		e.Kind = KindUnauthorized
	case f.status == 403:
		e.Kind = KindForbidden
	case f.status == 404:
		e.Kind = KindNotFound
	case f.status == 429:
		e.Kind = KindRateLimited
	case f.status >= 500:
		e.Kind = KindGraphAPI
	default:
		e.Kind = KindGraphAPI
	}
	return e
}

// networkErrorID reports whether err is a recognized low-level network
// failure and returns a stable identifier for it.
func networkErrorID(err error) (string, bool) {
	switch {
	case errors.Is(err, syscall.ECONNREFUSED):
		return "connection_refused", true
	case errors.Is(err, syscall.ECONNRESET):
		return "connection_reset", true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return "dns_failure", true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "timeout", true
	}

	return "", false
}
