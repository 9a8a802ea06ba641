package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// DefaultWindow is the rate window used when none is configured.
const DefaultWindow = time.Second

// Limiter gates outbound requests.
// Implementations must be safe for concurrent use.
type Limiter interface {
	// Acquire blocks until a request may start without exceeding the
	// configured rate. It returns early with the context's error if the
	// context is cancelled while waiting.
	Acquire(ctx context.Context) error
}

// WindowLimiter admits at most limit request starts within any window-length
// interval by spacing starts window/limit apart.
type WindowLimiter struct {
	limit  int
	window time.Duration
	rl     *rate.Limiter
}

// New creates a limiter admitting limit requests per window.
// A limit <= 0 creates an unlimited limiter. A window <= 0 uses
// DefaultWindow.
func New(limit int, window time.Duration) *WindowLimiter {
	if window <= 0 {
		window = DefaultWindow
	}
	if limit <= 0 {
		return &WindowLimiter{limit: 0, window: window, rl: rate.NewLimiter(rate.Inf, 1)}
	}
	return &WindowLimiter{
		limit:  limit,
		window: window,
		rl:     rate.NewLimiter(rate.Every(window / time.Duration(limit)), 1),
	}
}

// Acquire implements Limiter.
func (l *WindowLimiter) Acquire(ctx context.Context) error {
	return l.rl.Wait(ctx)
}

// Limit returns the configured requests-per-window ceiling.
// Zero means unlimited.
func (l *WindowLimiter) Limit() int {
	return l.limit
}

// Window returns the configured window length.
func (l *WindowLimiter) Window() time.Duration {
	return l.window
}

// Unlimited returns a limiter that never blocks.
// Useful in tests and for endpoints without quotas.
func Unlimited() *WindowLimiter {
	return New(0, DefaultWindow)
}
