// Package retry provides backoff policies for transient startup failures.
package retry

import (
	"context"
	"math"
	"math/rand"
	"time"
)

// Policy defines a retry strategy.
type Policy struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Backoff      BackoffType
	JitterFactor float64 // 0.0-1.0
}

// BackoffType identifies the backoff strategy.
type BackoffType string

const (
	BackoffFixed       BackoffType = "fixed"
	BackoffLinear      BackoffType = "linear"
	BackoffExponential BackoffType = "exponential"
)

// ConnectPolicy returns the policy used for establishing outbound
// connections at startup, where the dependency may come up after us.
func ConnectPolicy() Policy {
	return Policy{
		MaxAttempts:  5,
		InitialDelay: 1 * time.Second,
		MaxDelay:     15 * time.Second,
		Backoff:      BackoffExponential,
		JitterFactor: 0.25,
	}
}

// Delay calculates the delay before the given attempt. Attempt numbering
// starts at 1; attempt 0 returns 0.
func (p Policy) Delay(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}

	var delay time.Duration
	switch p.Backoff {
	case BackoffLinear:
		delay = p.InitialDelay * time.Duration(attempt)
	case BackoffExponential:
		delay = p.InitialDelay * time.Duration(math.Pow(2, float64(attempt-1)))
	default:
		delay = p.InitialDelay
	}

	if delay > p.MaxDelay {
		delay = p.MaxDelay
	}

	if p.JitterFactor > 0 {
		jitter := float64(delay) * p.JitterFactor * (rand.Float64()*2 - 1)
		delay = time.Duration(float64(delay) + jitter)
		if delay < 0 {
			delay = 0
		}
	}

	return delay
}

// Do runs fn until it succeeds, the attempts are exhausted or the context
// is cancelled. The last error is returned.
func Do[T any](ctx context.Context, policy Policy, fn func(ctx context.Context, attempt int) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		default:
		}

		result, err := fn(ctx, attempt)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt == policy.MaxAttempts {
			break
		}

		delay := policy.Delay(attempt)
		if delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return zero, ctx.Err()
			case <-timer.C:
			}
		}
	}

	return zero, lastErr
}
