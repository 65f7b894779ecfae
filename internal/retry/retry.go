// Package retry wraps fallible operations in an exponential-backoff policy.
// The wrapper is deliberately ignorant of what it retries: every failure is
// retried until the budget runs out, and the final error is the operation's
// own last error, unwrapped.
package retry

import (
	"context"
	"time"

	retrygo "github.com/avast/retry-go/v4"
)

// Do invokes op, retrying on failure up to maxRetries additional times.
// The delay before the first retry is initialDelay and doubles on each
// subsequent retry. maxRetries == 0 means exactly one attempt with no
// waiting. Success is returned immediately; exhaustion propagates the last
// failure unchanged.
func Do[T any](ctx context.Context, op func(context.Context) (T, error), maxRetries int, initialDelay time.Duration) (T, error) {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return retrygo.DoWithData(
		func() (T, error) { return op(ctx) },
		retrygo.Context(ctx),
		retrygo.Attempts(uint(maxRetries)+1),
		retrygo.Delay(initialDelay),
		retrygo.DelayType(retrygo.BackOffDelay),
		retrygo.LastErrorOnly(true),
	)
}
