package common

import (
	"context"
	"errors"
	"io/fs"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryPolicy is a constant-delay retry schedule.
type RetryPolicy struct {
	Attempts int           // total attempts, at least one is always made
	Delay    time.Duration // pause between attempts
}

// DefaultRetryPolicy makes five attempts 200ms apart.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Attempts: 5, Delay: 200 * time.Millisecond}
}

// Retry runs op until it succeeds, the attempts are exhausted or ctx is
// done. Errors wrapping fs.ErrNotExist are not retried.
func Retry(ctx context.Context, policy RetryPolicy, op func() error) error {
	attempts := max(policy.Attempts, 1)

	var b backoff.BackOff = backoff.NewConstantBackOff(policy.Delay)
	b = backoff.WithMaxRetries(b, uint64(attempts-1))
	b = backoff.WithContext(b, ctx)

	return backoff.Retry(func() error {
		err := op()
		if err != nil && errors.Is(err, fs.ErrNotExist) {
			return backoff.Permanent(err)
		}

		return err
	}, b)
}
