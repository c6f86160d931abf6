package yabackoff

import (
	"context"
	"time"
)

// Exponential grows the delay by a fixed factor on every failed request
// until it reaches maxInterval. Reset it after the first request that
// succeeds.
//
// Example:
//
//	backoff := yabackoff.NewExponential(time.Second, 2, time.Minute)
//	backoff.Next() // 2s
//	backoff.Next() // 4s
//
// A zero Exponential uses DefaultInitialInterval, DefaultMultiplier and
// DefaultMaxInterval.
type Exponential struct {
	initialInterval time.Duration
	multiplier      float64
	maxInterval     time.Duration
	currentInterval time.Duration
}

// NewExponential returns a back-off starting at initialInterval. Zero
// arguments take the package defaults.
func NewExponential(
	initialInterval time.Duration,
	multiplier float64,
	maxInterval time.Duration,
) Exponential {
	return Exponential{
		initialInterval: initialInterval,
		multiplier:      multiplier,
		maxInterval:     maxInterval,
		currentInterval: initialInterval,
	}
}

func (e *Exponential) Reset() {
	e.currentInterval = e.initialInterval
}

func (e *Exponential) Next() time.Duration {
	e.applyDefaults()

	if e.currentInterval < e.maxInterval {
		e.currentInterval = time.Duration(float64(e.currentInterval) * e.multiplier)
	}

	e.currentInterval = min(e.currentInterval, e.maxInterval)

	return e.currentInterval
}

// Current never advances the back-off.
func (e *Exponential) Current() time.Duration {
	return e.currentInterval
}

func (e *Exponential) Wait() {
	time.Sleep(e.Next())
}

func (e *Exponential) WaitContext(ctx context.Context) error {
	return e.WaitAtLeast(ctx, 0)
}

// WaitAtLeast advances the back-off and sleeps for the longer of Next and
// floor. Pass the retry_after of a flood-wait error as floor.
//
// Example:
//
//	if err := backoff.WaitAtLeast(ctx, yatgclient.RetryAfter(err)); err != nil {
//		return err
//	}
func (e *Exponential) WaitAtLeast(ctx context.Context, floor time.Duration) error {
	timer := time.NewTimer(max(e.Next(), floor))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (e *Exponential) applyDefaults() {
	if e.initialInterval == 0 {
		e.initialInterval = DefaultInitialInterval
		e.currentInterval = DefaultInitialInterval
	}

	if e.maxInterval == 0 {
		e.maxInterval = DefaultMaxInterval
	}

	if e.multiplier == 0 {
		e.multiplier = DefaultMultiplier
	}
}
