package uploader

import (
	"context"
	"math"
	"math/rand/v2"
	"time"

	"github.com/sethvargo/go-retry"
)

const (
	DefaultMaxRetries = 5
	DefaultBaseDelay  = 1500 * time.Millisecond
	DefaultMaxDelay   = 30 * time.Second
	DefaultJitter     = 0.3
)

// Policy is bounded exponential backoff with additive jitter. After the
// failed attempt with 0-based index a, the pause is
//
//	min(BaseDelay*2^a + U[0, Jitter*BaseDelay*2^a), MaxDelay)
type Policy struct {
	MaxRetries uint64
	BaseDelay  time.Duration
	MaxDelay   time.Duration
	Jitter     float64
}

// DefaultPolicy allows 6 attempts starting at 1.5s.
func DefaultPolicy() Policy {
	return Policy{
		MaxRetries: DefaultMaxRetries,
		BaseDelay:  DefaultBaseDelay,
		MaxDelay:   DefaultMaxDelay,
		Jitter:     DefaultJitter,
	}
}

func (p Policy) withDefaults() Policy {
	if p.BaseDelay <= 0 {
		p.BaseDelay = DefaultBaseDelay
	}
	if p.MaxDelay <= 0 {
		p.MaxDelay = DefaultMaxDelay
	}
	if p.Jitter < 0 {
		p.Jitter = 0
	}
	return p
}

// Delay is the pause after failed attempt a, for a uniform draw u in [0, 1).
func (p Policy) Delay(a uint64, u float64) time.Duration {
	exp := float64(p.BaseDelay) * math.Pow(2, float64(a))
	d := exp + exp*p.Jitter*u
	if p.MaxDelay > 0 && d > float64(p.MaxDelay) {
		d = float64(p.MaxDelay)
	}
	return time.Duration(d)
}

// jitterDraw is a test seam for the uniform jitter source.
var jitterDraw = rand.Float64

func (p Policy) backoff() retry.Backoff {
	var attempt uint64
	next := retry.BackoffFunc(func() (time.Duration, bool) {
		d := p.Delay(attempt, jitterDraw())
		attempt++
		return d, false
	})
	return retry.WithMaxRetries(p.MaxRetries, next)
}

// ExecuteWithRetry calls op until it succeeds or MaxRetries+1 calls failed,
// sleeping per the policy in between. The last error is returned as is.
// Cancelling ctx stops immediately with the context error.
func ExecuteWithRetry[T any](ctx context.Context, p Policy, op func(context.Context) (T, error)) (T, error) {
	var result T
	err := retry.Do(ctx, p.backoff(), func(ctx context.Context) error {
		v, err := op(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			return retry.RetryableError(err)
		}
		result = v
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

// sleepCtx waits for d or until ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
