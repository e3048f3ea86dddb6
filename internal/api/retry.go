package api

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Backoff schedule for retrying rate-limited (503) responses. The service
// does not publish its rate-limit window, so the schedule is a standard
// exponential curve with jitter: 1s initial interval, doubling per attempt,
// +/-50% randomization, capped at 30s per wait. The caller's retry budget
// becomes MaxElapsedTime: once elapsed time plus the next planned wait would
// exceed it, the policy stops and the last 503 error surfaces.
const (
	retryInitialInterval     = 1 * time.Second
	retryRandomizationFactor = 0.5
	retryMultiplier          = 2.0
	retryMaxInterval         = 30 * time.Second
)

// newBackOff builds the per-call backoff schedule. A zero or negative budget
// disables retries: the request gets exactly one attempt. This is the default.
func newBackOff(budget, initial time.Duration) backoff.BackOff {
	if budget <= 0 {
		return &backoff.StopBackOff{}
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = initial
	b.RandomizationFactor = retryRandomizationFactor
	b.Multiplier = retryMultiplier
	b.MaxInterval = retryMaxInterval
	b.MaxElapsedTime = budget
	b.Reset()
	return b
}

// sleep blocks the calling goroutine for d, honoring context cancellation.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
