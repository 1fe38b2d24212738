package graph

import (
	"context"
	"errors"
	"net"
	"syscall"
	"testing"
)

func TestClassify_VendorCodes(t *testing.T) {
	tests := []struct {
		code string
		want Kind
	}{
		{code: "Unauthorized", want: KindUnauthorized},
		{code: "AuthenticationFailed", want: KindUnauthorized},
		{code: "AuthenticationCanceled", want: KindUnauthorized},
		{code: "Forbidden", want: KindForbidden},
		{code: "AuthorizationFailed", want: KindForbidden},
		{code: "TooManyRequests", want: KindRateLimited},
		{code: "RateLimitExceeded", want: KindRateLimited},
		{code: "ThrottledRequest", want: KindRateLimited},
		{code: "BadRequest", want: KindInvalidParameter},
		{code: "InvalidRequest", want: KindInvalidParameter},
		{code: "InvalidFilter", want: KindInvalidParameter},
		{code: "InvalidQueryParameter", want: KindInvalidParameter},
		{code: "Timeout", want: KindTimeout},
		{code: "RequestTimeout", want: KindTimeout},
		{code: "Request_ResourceNotFound", want: KindNotFound},
		{code: "itemNotFound", want: KindNotFound},
		{code: "SomethingElseEntirely", want: KindGraphAPI},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := Classify(&apiFailure{status: 400, code: tt.code, message: "boom"})
			if err.Kind != tt.want {
				t.Errorf("code %s: expected %s, got %s", tt.code, tt.want, err.Kind)
			}
			if err.Code != tt.code {
				t.Errorf("expected vendor code preserved, got %q", err.Code)
			}
		})
	}
}

func TestClassify_VendorCodeWinsOverStatus(t *testing.T) {
	// A 500 with a vendor Timeout code classifies by the code, not the status.
	err := Classify(&apiFailure{status: 500, code: "Timeout", message: "slow"})
	if err.Kind != KindTimeout {
		t.Errorf("expected %s, got %s", KindTimeout, err.Kind)
	}
}

func TestClassify_HTTPStatus(t *testing.T) {
	tests := []struct {
		status int
		want   Kind
	}{
		{status: 401, want: KindUnauthorized},
		{status: 403, want: KindForbidden},
		{status: 404, want: KindNotFound},
		{status: 429, want: KindRateLimited},
		{status: 500, want: KindGraphAPI},
		{status: 503, want: KindGraphAPI},
	}

	for _, tt := range tests {
		err := Classify(&apiFailure{status: tt.status, message: "x"})
		if err.Kind != tt.want {
			t.Errorf("status %d: expected %s, got %s", tt.status, tt.want, err.Kind)
		}
		if err.StatusCode != tt.status {
			t.Errorf("expected status %d preserved, got %d", tt.status, err.StatusCode)
		}
	}
}

func TestClassify_InnerErrorAttached(t *testing.T) {
	err := Classify(&apiFailure{
		status:  400,
		code:    "InvalidFilter",
		message: "bad",
		inner:   map[string]any{"request-id": "abc"},
	})
	if err.Details == nil {
		t.Fatal("expected inner error details")
	}
	if _, ok := err.Details["innerError"]; !ok {
		t.Error("expected innerError key in details")
	}
}

func TestClassify_NetworkErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		id   string
	}{
		{name: "connection refused", err: &net.OpError{Op: "dial", Err: syscall.ECONNREFUSED}, id: "connection_refused"},
		{name: "connection reset", err: &net.OpError{Op: "read", Err: syscall.ECONNRESET}, id: "connection_reset"},
		{name: "dns failure", err: &net.DNSError{Err: "no such host", Name: "graph.example"}, id: "dns_failure"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Classify(tt.err)
			if err.Kind != KindNetwork {
				t.Fatalf("expected %s, got %s", KindNetwork, err.Kind)
			}
			if err.Details["network_error"] != tt.id {
				t.Errorf("expected identifier %q, got %v", tt.id, err.Details["network_error"])
			}
		})
	}
}

func TestClassify_ContextErrors(t *testing.T) {
	if err := Classify(context.DeadlineExceeded); err.Kind != KindTimeout {
		t.Errorf("expected %s for deadline exceeded, got %s", KindTimeout, err.Kind)
	}
	if err := Classify(context.Canceled); err.Kind != KindInternal {
		t.Errorf("expected %s for canceled context, got %s", KindInternal, err.Kind)
	}
}

func TestClassify_Unknown(t *testing.T) {
	err := Classify(errors.New("what even is this"))
	if err.Kind != KindUnknown {
		t.Errorf("expected %s, got %s", KindUnknown, err.Kind)
	}
	if err.Cause == nil {
		t.Error("expected cause preserved")
	}
}

func TestClassify_Passthrough(t *testing.T) {
	original := NewError(KindForbidden, "no access")
	if got := Classify(original); got != original {
		t.Error("expected already-classified error returned unchanged")
	}
}
