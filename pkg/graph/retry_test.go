package graph

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fastPolicy keeps test retry loops quick.
func fastPolicy() Policy {
	return Policy{
		MaxRetries: DefaultMaxRetries,
		BaseDelay:  time.Millisecond,
		MaxDelay:   10 * time.Millisecond,
	}
}

func TestDo_ExhaustsRetriesOnPersistent5xx(t *testing.T) {
	attempts := 0
	_, err := Do(context.Background(), fastPolicy(), func(ctx context.Context) (string, error) {
		attempts++
		return "", &apiFailure{status: 503, message: "service unavailable"}
	})

	if attempts != 4 {
		t.Errorf("expected 4 attempts (1 initial + 3 retries), got %d", attempts)
	}
	var classified *Error
	if !errors.As(err, &classified) {
		t.Fatalf("expected classified error, got %T: %v", err, err)
	}
	if classified.Kind != KindGraphAPI {
		t.Errorf("expected kind %s, got %s", KindGraphAPI, classified.Kind)
	}
	if classified.StatusCode != 503 {
		t.Errorf("expected status 503, got %d", classified.StatusCode)
	}
}

func TestDo_SucceedsAfterTransientFailure(t *testing.T) {
	attempts := 0
	result, err := Do(context.Background(), fastPolicy(), func(ctx context.Context) (string, error) {
		attempts++
		if attempts == 1 {
			return "", &apiFailure{status: 500, message: "internal"}
		}
		return "ok", nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "ok" {
		t.Errorf("expected success value, got %q", result)
	}
	if attempts != 2 {
		t.Errorf("expected exactly 2 attempts, got %d", attempts)
	}
}

func TestDo_NonRetryableFailsImmediately(t *testing.T) {
	attempts := 0
	start := time.Now()
	_, err := Do(context.Background(), DefaultPolicy(), func(ctx context.Context) (int, error) {
		attempts++
		return 0, &apiFailure{status: 400, code: "InvalidRequest", message: "bad filter"}
	})

	if attempts != 1 {
		t.Errorf("expected exactly 1 attempt, got %d", attempts)
	}
	// No sleep should have occurred (the default base delay is 1s).
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("expected immediate failure, took %s", elapsed)
	}
	var classified *Error
	if !errors.As(err, &classified) {
		t.Fatalf("expected classified error, got %T", err)
	}
	if classified.Kind != KindInvalidParameter {
		t.Errorf("expected kind %s, got %s", KindInvalidParameter, classified.Kind)
	}
}

func TestDo_SuccessReturnsImmediately(t *testing.T) {
	attempts := 0
	result, err := Do(context.Background(), DefaultPolicy(), func(ctx context.Context) (int, error) {
		attempts++
		return 7, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != 7 || attempts != 1 {
		t.Errorf("expected single successful attempt, got result=%d attempts=%d", result, attempts)
	}
}

func TestDo_AlreadyClassifiedRateLimitedIsRetried(t *testing.T) {
	attempts := 0
	_, err := Do(context.Background(), fastPolicy(), func(ctx context.Context) (string, error) {
		attempts++
		return "", NewError(KindRateLimited, "throttled")
	})
	if attempts != 4 {
		t.Errorf("expected 4 attempts for rate-limited failure, got %d", attempts)
	}
	var classified *Error
	if !errors.As(err, &classified) || classified.Kind != KindRateLimited {
		t.Errorf("expected rate-limited classification, got %v", err)
	}
}

func TestDo_CustomPredicate(t *testing.T) {
	attempts := 0
	policy := fastPolicy()
	policy.RetryIf = func(err error) bool { return true }

	_, err := Do(context.Background(), policy, func(ctx context.Context) (string, error) {
		attempts++
		return "", errors.New("opaque failure")
	})
	if attempts != 4 {
		t.Errorf("expected custom predicate to force retries, got %d attempts", attempts)
	}
	var classified *Error
	if !errors.As(err, &classified) || classified.Kind != KindUnknown {
		t.Errorf("expected unknown classification after exhaustion, got %v", err)
	}
}

func TestDo_ContextCancelDuringSleep(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	policy := Policy{MaxRetries: 3, BaseDelay: time.Hour, MaxDelay: time.Hour}

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	attempts := 0
	_, err := Do(ctx, policy, func(ctx context.Context) (string, error) {
		attempts++
		return "", &apiFailure{status: 503, message: "unavailable"}
	})

	if attempts != 1 {
		t.Errorf("expected 1 attempt before cancellation, got %d", attempts)
	}
	var classified *Error
	if !errors.As(err, &classified) {
		t.Fatalf("expected classified error, got %T", err)
	}
}

func TestDo_OnRetryHook(t *testing.T) {
	var hookCalls int
	policy := fastPolicy()
	policy.OnRetry = func(attempt int, delay time.Duration, err error) {
		hookCalls++
	}

	_, _ = Do(context.Background(), policy, func(ctx context.Context) (string, error) {
		return "", &apiFailure{status: 502, message: "bad gateway"}
	})
	if hookCalls != 3 {
		t.Errorf("expected 3 retry hook calls, got %d", hookCalls)
	}
}

func TestPolicy_DelayPrefersRetryAfterHint(t *testing.T) {
	policy := DefaultPolicy().withDefaults()
	failure := &apiFailure{status: 429, retryAfter: 2 * time.Second}

	delay := policy.delay(0, failure)
	if delay != 2*time.Second {
		t.Errorf("expected retry-after hint of 2s to win, got %s", delay)
	}

	// The hint overrides the formula at any attempt number.
	delay = policy.delay(3, failure)
	if delay != 2*time.Second {
		t.Errorf("expected retry-after hint of 2s at attempt 3, got %s", delay)
	}
}

func TestPolicy_DelayExponentialBackoff(t *testing.T) {
	policy := Policy{
		MaxRetries: 3,
		BaseDelay:  100 * time.Millisecond,
		MaxDelay:   30 * time.Second,
		Jitter:     false,
	}.withDefaults()

	expected := []time.Duration{
		100 * time.Millisecond,
		200 * time.Millisecond,
		400 * time.Millisecond,
		800 * time.Millisecond,
	}
	for attempt, want := range expected {
		got := policy.delay(attempt, errors.New("x"))
		if got != want {
			t.Errorf("attempt %d: expected %s, got %s", attempt, want, got)
		}
	}
}

func TestPolicy_DelayCappedAtMax(t *testing.T) {
	policy := Policy{
		MaxRetries: 10,
		BaseDelay:  1 * time.Second,
		MaxDelay:   5 * time.Second,
		Jitter:     false,
	}.withDefaults()

	if got := policy.delay(9, errors.New("x")); got != 5*time.Second {
		t.Errorf("expected delay capped at 5s, got %s", got)
	}
}

func TestPolicy_DelayJitterWithinBounds(t *testing.T) {
	policy := Policy{
		MaxRetries: 3,
		BaseDelay:  100 * time.Millisecond,
		MaxDelay:   time.Minute,
		Jitter:     true,
	}.withDefaults()

	for i := 0; i < 100; i++ {
		got := policy.delay(0, errors.New("x"))
		if got < 75*time.Millisecond || got > 125*time.Millisecond {
			t.Fatalf("jittered delay %s outside ±25%% of 100ms", got)
		}
	}
}
