package services

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// maxBackoff caps the delay between two attempts, including the first one.
const maxBackoff = 5 * time.Second

// RetryPolicy retries a call with capped exponential backoff. The zero value
// makes exactly one attempt.
type RetryPolicy struct {
	MaxRetries int
	Backoff    time.Duration
}

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// Do runs fn until it succeeds, returns a Permanent error, retries run out or
// ctx is done. A Permanent error is returned unwrapped.
func (p RetryPolicy) Do(ctx context.Context, fn func() error) error {
	return backoff.Retry(fn, p.backOff(ctx))
}

func (p RetryPolicy) backOff(ctx context.Context) backoff.BackOff {
	initial := p.Backoff
	if initial <= 0 {
		initial = backoff.DefaultInitialInterval
	}
	if initial > maxBackoff {
		initial = maxBackoff
	}

	exp := backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(initial),
		backoff.WithMultiplier(2),
		backoff.WithRandomizationFactor(0),
		backoff.WithMaxInterval(maxBackoff),
		backoff.WithMaxElapsedTime(0),
	)

	retries := p.MaxRetries
	if retries < 0 {
		retries = 0
	}
	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(retries)), ctx)
}
