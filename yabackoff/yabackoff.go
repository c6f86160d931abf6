// Package yabackoff provides the retry delays used by the long-polling loop
// and by callers that retry rate limited Bot API requests.
//
// # Quick start
//
//	backoff := yabackoff.NewExponential(500*time.Millisecond, 1.5, 60*time.Second)
//	for {
//		updates, err := client.GetUpdates(ctx, req)
//		if err == nil {
//			backoff.Reset()
//			handle(updates)
//
//			continue
//		}
//
//		if waitErr := backoff.WaitAtLeast(ctx, yatgclient.RetryAfter(err)); waitErr != nil {
//			return waitErr
//		}
//	}
package yabackoff

import (
	"context"
	"time"
)

// Defaults for a zero Exponential or zero NewExponential arguments.
const (
	DefaultInitialInterval = 500 * time.Millisecond
	DefaultMultiplier      = 1.5
	DefaultMaxInterval     = 60 * time.Second
)

// Backoff paces retries of failed Bot API requests. Implementations are
// not safe for concurrent use.
type Backoff interface {
	// Next advances the strategy and returns the delay for this attempt.
	Next() time.Duration

	// Current returns the delay produced by the most recent call to Next.
	Current() time.Duration

	Wait()

	// WaitContext sleeps for Next() or until ctx is done. It returns
	// ctx.Err() when the wait was interrupted.
	WaitContext(ctx context.Context) error

	// WaitAtLeast is WaitContext with a lower bound on the delay.
	WaitAtLeast(ctx context.Context, floor time.Duration) error

	// Reset is called after a request succeeds.
	Reset()
}
