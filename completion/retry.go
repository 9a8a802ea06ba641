package completion

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/randalmurphal/readmegen/ratelimit"
)

// DefaultMaxAttempts is the total number of tries per request.
const DefaultMaxAttempts = 3

// DefaultBaseDelay is the backoff before the first retry.
const DefaultBaseDelay = 1 * time.Second

// DefaultMaxDelay caps the computed backoff.
const DefaultMaxDelay = 30 * time.Second

// Retrying wraps a Client with request throttling and bounded retries.
type Retrying struct {
	base    Client
	limiter ratelimit.Limiter

	maxAttempts int
	baseDelay   time.Duration
	maxDelay    time.Duration

	logger *slog.Logger
}

// RetryOption customizes a Retrying client.
type RetryOption func(*Retrying)

// WithMaxAttempts sets the total number of tries (first call included).
// Values below 1 are coerced to 1.
func WithMaxAttempts(n int) RetryOption {
	return func(r *Retrying) {
		if n < 1 {
			n = 1
		}
		r.maxAttempts = n
	}
}

// WithBackoff sets the base and maximum backoff delays.
func WithBackoff(base, max time.Duration) RetryOption {
	return func(r *Retrying) {
		if base > 0 {
			r.baseDelay = base
		}
		if max > 0 {
			r.maxDelay = max
		}
	}
}

// WithLogger sets the logger for retry and giving-up events.
func WithLogger(logger *slog.Logger) RetryOption {
	return func(r *Retrying) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRetrying wraps client with the given limiter and retry policy.
// The limiter is acquired before every attempt, so retries are throttled
// the same as first tries. A nil limiter disables throttling.
func NewRetrying(client Client, limiter ratelimit.Limiter, opts ...RetryOption) *Retrying {
	r := &Retrying{
		base:        client,
		limiter:     limiter,
		maxAttempts: DefaultMaxAttempts,
		baseDelay:   DefaultBaseDelay,
		maxDelay:    DefaultMaxDelay,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Complete implements Client.
func (r *Retrying) Complete(ctx context.Context, req Request) (*Response, error) {
	var lastErr error

	for attempt := 0; attempt < r.maxAttempts; attempt++ {
		if attempt > 0 {
			delay := r.backoff(attempt, lastErr)
			r.logger.Warn("completion failed, retrying",
				slog.Int("attempt", attempt),
				slog.Duration("backoff", delay),
				slog.Any("error", lastErr))
			if err := sleepCtx(ctx, delay); err != nil {
				return nil, err
			}
		}

		if r.limiter != nil {
			if err := r.limiter.Acquire(ctx); err != nil {
				return nil, err
			}
		}

		resp, err := r.base.Complete(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !IsRetryable(err) {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}

	r.logger.Error("completion failed after retries",
		slog.Int("attempts", r.maxAttempts),
		slog.Any("error", lastErr))
	return nil, lastErr
}

// backoff computes the delay before the given retry attempt (1-based).
// Exponential doubling from the base delay with up to 25% jitter, capped at
// the max delay. A server-provided Retry-After hint takes precedence when
// it is longer.
func (r *Retrying) backoff(attempt int, lastErr error) time.Duration {
	// Cap the exponent: past ~30 doublings the shift overflows int64 long
	// before the max-delay clamp can catch it.
	shift := attempt - 1
	if shift > 30 {
		shift = 30
	}
	delay := r.baseDelay << shift
	if delay <= 0 || delay > r.maxDelay {
		delay = r.maxDelay
	}
	delay += time.Duration(rand.Int63n(int64(delay)/4 + 1))

	if hint := retryAfterHint(lastErr); hint > delay {
		delay = hint
	}
	if delay > r.maxDelay {
		delay = r.maxDelay
	}
	return delay
}

// sleepCtx waits for d or until the context is done.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
