package graph

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"math/rand"
	"time"
)

// Default retry policy values.
const (
	DefaultMaxRetries = 3
	DefaultBaseDelay  = 1 * time.Second
	DefaultMaxDelay   = 30 * time.Second
)

// DefaultRetryableStatus is the set of HTTP status codes retried by default.
var DefaultRetryableStatus = []int{429, 500, 502, 503, 504}

// Policy controls retry behavior for a single operation. A Policy is
// constructed per call-site (or defaulted) and is immutable for the duration
// of one retry loop.
type Policy struct {
	// MaxRetries is the number of retries after the initial attempt
	// (MaxRetries+1 total tries)
	MaxRetries int

	// BaseDelay is the backoff for the first retry
	BaseDelay time.Duration

	// MaxDelay caps the computed backoff
	MaxDelay time.Duration

	// Jitter randomizes the backoff by up to ±25%
	Jitter bool

	// RetryableStatus is the set of HTTP status codes considered retryable.
	// Empty means DefaultRetryableStatus.
	RetryableStatus []int

	// RetryIf, when set, can mark additional failures retryable
	RetryIf func(error) bool

	// OnRetry, when set, is invoked before each retry sleep
	OnRetry func(attempt int, delay time.Duration, err error)
}

// DefaultPolicy returns the standard retry policy: 3 retries, 1s base delay
// doubling per attempt, 30s cap, jitter enabled.
func DefaultPolicy() Policy {
	return Policy{
		MaxRetries: DefaultMaxRetries,
		BaseDelay:  DefaultBaseDelay,
		MaxDelay:   DefaultMaxDelay,
		Jitter:     true,
	}
}

// withDefaults fills zero-valued fields from the default policy.
func (p Policy) withDefaults() Policy {
	if p.BaseDelay <= 0 {
		p.BaseDelay = DefaultBaseDelay
	}
	if p.MaxDelay < p.BaseDelay {
		p.MaxDelay = DefaultMaxDelay
	}
	if len(p.RetryableStatus) == 0 {
		p.RetryableStatus = DefaultRetryableStatus
	}
	return p
}

// Do invokes op until it succeeds or the retry budget is exhausted. Attempts
// run strictly sequentially; the loop sleeps between attempts, preferring the
// server-provided Retry-After hint over computed backoff. Errors surfaced by
// Do are always classified: callers observe either a result or an *Error.
func Do[T any](ctx context.Context, policy Policy, op func(context.Context) (T, error)) (T, error) {
	p := policy.withDefaults()

	var zero T
	var lastErr error

	for attempt := 0; attempt <= p.MaxRetries; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt == p.MaxRetries {
			break
		}
		if !p.retryable(err) {
			return zero, Classify(err)
		}

		delay := p.delay(attempt, err)
		slog.Debug("retrying request",
			"attempt", attempt+1,
			"max_retries", p.MaxRetries,
			"delay", delay,
			"error", err,
		)
		if p.OnRetry != nil {
			p.OnRetry(attempt, delay, err)
		}

		select {
		case <-ctx.Done():
			return zero, Classify(ctx.Err())
		case <-time.After(delay):
		}
	}

	return zero, Classify(lastErr)
}

// retryable decides whether a failure is worth another attempt.
func (p Policy) retryable(err error) bool {
	if p.RetryIf != nil && p.RetryIf(err) {
		return true
	}

	var classified *Error
	if errors.As(err, &classified) {
		if classified.Kind == KindRateLimited || classified.Kind == KindTimeout {
			return true
		}
		return p.statusRetryable(classified.StatusCode)
	}

	var failure *apiFailure
	if errors.As(err, &failure) {
		return p.statusRetryable(failure.status)
	}

	_, ok := networkErrorID(err)
	return ok
}

func (p Policy) statusRetryable(status int) bool {
	for _, code := range p.RetryableStatus {
		if status == code {
			return true
		}
	}
	return false
}

// delay computes the sleep before the next attempt. A server-provided
// Retry-After hint wins over the exponential backoff formula.
func (p Policy) delay(attempt int, err error) time.Duration {
	if hint := retryAfterHint(err); hint > 0 {
		return hint
	}

	backoff := time.Duration(math.Pow(2, float64(attempt)) * float64(p.BaseDelay))
	if p.Jitter {
		// ±25% of the computed backoff
		jitter := time.Duration((rand.Float64() - 0.5) * 0.5 * float64(backoff))
		backoff += jitter
	}
	if backoff > p.MaxDelay {
		backoff = p.MaxDelay
	}
	if backoff < 0 {
		backoff = 0
	}
	return backoff
}

// retryAfterHint extracts the server-provided retry hint from a failure.
func retryAfterHint(err error) time.Duration {
	var classified *Error
	if errors.As(err, &classified) && classified.RetryAfter > 0 {
		return classified.RetryAfter
	}
	var failure *apiFailure
	if errors.As(err, &failure) && failure.retryAfter > 0 {
		return failure.retryAfter
	}
	return 0
}
