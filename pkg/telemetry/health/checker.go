package health

import (
	"context"
	"sync"
	"time"
)

// CheckFunc probes one component. A nil return means the component is
// healthy.
type CheckFunc func(ctx context.Context) error

// CheckResult is the outcome of a single component check.
type CheckResult struct {
	// Status is "ok" or "unhealthy"
	Status string `json:"status"`

	// Message carries the failure reason for unhealthy components
	Message string `json:"message,omitempty"`

	// Duration is how long the check took
	Duration time.Duration `json:"duration_ms,omitempty"`
}

// Status is the aggregated health of the gateway.
type Status struct {
	// Status is "ok", "ready", or "degraded"
	Status string `json:"status"`

	// Checks contains per-component results (readiness only)
	Checks map[string]CheckResult `json:"checks,omitempty"`

	// Timestamp is when the checks ran
	Timestamp time.Time `json:"timestamp"`
}

// Checker runs registered component checks for the diagnostics listener.
type Checker struct {
	mu      sync.RWMutex
	checks  map[string]CheckFunc
	timeout time.Duration
}

// New creates a health checker. If timeout is 0, each check gets 5 seconds.
func New(timeout time.Duration) *Checker {
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return &Checker{checks: make(map[string]CheckFunc), timeout: timeout}
}

// RegisterCheck registers a check under a component name, replacing any
// existing check with the same name.
func (c *Checker) RegisterCheck(name string, check CheckFunc) {
	c.mu.Lock()
	c.checks[name] = check
	c.mu.Unlock()
}

// CheckLiveness reports that the process is running. It never runs component
// checks; liveness must stay fast.
func (c *Checker) CheckLiveness(ctx context.Context) Status {
	return Status{Status: "ok", Timestamp: time.Now()}
}

// CheckReadiness runs every registered check concurrently and aggregates the
// results. A failing component degrades the overall status without hiding
// the other results.
func (c *Checker) CheckReadiness(ctx context.Context) Status {
	c.mu.RLock()
	snapshot := make(map[string]CheckFunc, len(c.checks))
	for name, fn := range c.checks {
		snapshot[name] = fn
	}
	c.mu.RUnlock()

	type outcome struct {
		name   string
		result CheckResult
	}
	outcomes := make(chan outcome, len(snapshot))

	var wg sync.WaitGroup
	for name, fn := range snapshot {
		wg.Add(1)
		go func(name string, fn CheckFunc) {
			defer wg.Done()
			outcomes <- outcome{name: name, result: c.runCheck(ctx, fn)}
		}(name, fn)
	}
	wg.Wait()
	close(outcomes)

	overall := "ready"
	results := make(map[string]CheckResult, len(snapshot))
	for o := range outcomes {
		results[o.name] = o.result
		if o.result.Status == "unhealthy" {
			overall = "degraded"
		}
	}

	return Status{Status: overall, Checks: results, Timestamp: time.Now()}
}

// runCheck executes one check under the per-check timeout. A check that
// ignores its context still cannot stall readiness past the timeout.
func (c *Checker) runCheck(ctx context.Context, fn CheckFunc) CheckResult {
	checkCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	done := make(chan error, 1)
	go func() { done <- fn(checkCtx) }()

	select {
	case err := <-done:
		if err != nil {
			return CheckResult{Status: "unhealthy", Message: err.Error(), Duration: time.Since(start)}
		}
		return CheckResult{Status: "ok", Duration: time.Since(start)}
	case <-checkCtx.Done():
		return CheckResult{Status: "unhealthy", Message: "health check timeout", Duration: time.Since(start)}
	}
}
