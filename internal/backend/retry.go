package backend

import (
	"context"
	"time"
)

// RetryPolicy describes how many times an operation may run and how long to
// wait between attempts.  All automatic retrying in the gateway goes
// through this one type instead of per-call-site loops, so the schedule is
// stated in exactly one place.
type RetryPolicy struct {
	// MaxAttempts counts the first try as well, so 3 means "one call plus
	// two retries".
	MaxAttempts int
	// Backoff holds the wait before each retry.  Backoff[0] runs before the
	// second attempt.  When there are more retries than entries the last
	// entry repeats.
	Backoff []time.Duration
}

// AvailabilityRetry is the policy for single-date availability queries:
// two retries with linear backoff.  Creates and cancels never retry.
var AvailabilityRetry = RetryPolicy{
	MaxAttempts: 3,
	Backoff:     []time.Duration{1 * time.Second, 2 * time.Second},
}

// NoRetry runs the operation exactly once.
var NoRetry = RetryPolicy{MaxAttempts: 1}

// Do runs fn under the policy, sleeping the scheduled backoff between
// attempts.  It returns nil on the first success and the last error once
// attempts are exhausted.  Context cancellation interrupts the wait and is
// returned immediately.
func (p RetryPolicy) Do(ctx context.Context, fn func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			wait := p.delay(i - 1)
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if err = fn(); err == nil {
			return nil
		}
	}
	return err
}

func (p RetryPolicy) delay(retry int) time.Duration {
	if len(p.Backoff) == 0 {
		return time.Second
	}
	if retry >= len(p.Backoff) {
		return p.Backoff[len(p.Backoff)-1]
	}
	return p.Backoff[retry]
}
