// Package retry runs operations with capped exponential backoff.
package retry

import (
	"context"
	"math/rand/v2"
	"time"
)

// Policy describes how an operation is retried. The zero value runs the
// operation once.
type Policy struct {
	// Attempts is the total number of tries, including the first.
	Attempts   int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
	Multiplier float64
	// Jitter is the upper bound of random time added to every wait.
	Jitter time.Duration
	// AttemptTimeout bounds each try separately. Zero leaves only ctx.
	AttemptTimeout time.Duration

	// Retryable decides whether an error is worth another attempt.
	// Nil retries every error.
	Retryable func(err error) bool
	// OnRetry runs before the wait that precedes retry number n (1-based).
	OnRetry func(n int, err error)
}

// NewPolicy is the policy used at external service boundaries: doubling from
// base, capped at eight times base, with up to a quarter of base as jitter.
func NewPolicy(attempts int, base time.Duration, retryable func(error) bool) Policy {
	return Policy{
		Attempts:   max(attempts, 1),
		BaseDelay:  base,
		MaxDelay:   base * 8,
		Multiplier: 2,
		Jitter:     base / 4,
		Retryable:  retryable,
	}
}

// Backoff returns the wait before retry n (1-based), without jitter.
func (p Policy) Backoff(n int) time.Duration {
	delay := float64(p.BaseDelay)
	mult := p.Multiplier
	if mult < 1 {
		mult = 1
	}
	for i := 1; i < n; i++ {
		delay *= mult
		if p.MaxDelay > 0 && delay >= float64(p.MaxDelay) {
			return p.MaxDelay
		}
	}
	if p.MaxDelay > 0 && time.Duration(delay) > p.MaxDelay {
		return p.MaxDelay
	}
	return time.Duration(delay)
}

func (p Policy) wait(n int) time.Duration {
	d := p.Backoff(n)
	if p.Jitter > 0 {
		d += rand.N(p.Jitter)
	}
	return d
}

// Do runs op until it succeeds, returns a non-retryable error, attempts run
// out, or ctx is done. The last operation error is returned, except when ctx
// ends during a wait.
func Do(ctx context.Context, p Policy, op func(ctx context.Context) error) error {
	attempts := max(p.Attempts, 1)

	var err error
	for n := 1; ; n++ {
		err = p.try(ctx, op)
		if err == nil {
			return nil
		}
		if n >= attempts || ctx.Err() != nil {
			return err
		}
		if p.Retryable != nil && !p.Retryable(err) {
			return err
		}
		if p.OnRetry != nil {
			p.OnRetry(n, err)
		}

		timer := time.NewTimer(p.wait(n))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

func (p Policy) try(ctx context.Context, op func(ctx context.Context) error) error {
	if p.AttemptTimeout <= 0 {
		return op(ctx)
	}
	attemptCtx, cancel := context.WithTimeout(ctx, p.AttemptTimeout)
	defer cancel()
	return op(attemptCtx)
}

// Value is Do for operations that produce a result.
func Value[T any](ctx context.Context, p Policy, op func(ctx context.Context) (T, error)) (T, error) {
	var out T
	err := Do(ctx, p, func(ctx context.Context) error {
		v, err := op(ctx)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	return out, err
}
