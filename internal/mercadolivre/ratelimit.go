package mercadolivre

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ErrDailyLimitReached is returned when the outbound call budget for the
// current window has been spent.
var ErrDailyLimitReached = errors.New("daily marketplace call limit reached")

// RateLimiter throttles outbound catalog calls with a token bucket and caps
// the number of calls per rolling window. A zero budget disables the cap.
type RateLimiter struct {
	limiter *rate.Limiter
	budget  int64
	window  time.Duration

	mu      sync.Mutex
	used    int64
	resetAt time.Time
	nowFunc func() time.Time
}

// RateLimiterOption configures the RateLimiter.
type RateLimiterOption func(*RateLimiter)

// WithRateLimiterNowFunc overrides the time function for testing.
func WithRateLimiterNowFunc(f func() time.Time) RateLimiterOption {
	return func(r *RateLimiter) {
		r.nowFunc = f
	}
}

// WithWindow overrides the 24-hour budget window.
func WithWindow(d time.Duration) RateLimiterOption {
	return func(r *RateLimiter) {
		r.window = d
	}
}

// NewRateLimiter creates a limiter allowing perSecond calls with the given
// burst and at most budget calls per window.
func NewRateLimiter(perSecond float64, burst int, budget int64, opts ...RateLimiterOption) *RateLimiter {
	r := &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
		budget:  budget,
		window:  24 * time.Hour,
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.resetAt = r.nowFunc().Add(r.window)
	return r
}

// Wait blocks until a call is allowed or ctx is done. It returns
// ErrDailyLimitReached without waiting once the budget is spent.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.reserve(); err != nil {
		return err
	}
	if err := r.limiter.Wait(ctx); err != nil {
		r.release()
		return fmt.Errorf("rate limiter wait: %w", err)
	}
	return nil
}

// Used returns the number of calls counted in the current window.
func (r *RateLimiter) Used() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rollLocked()
	return r.used
}

// Budget returns the configured calls per window; 0 means unlimited.
func (r *RateLimiter) Budget() int64 {
	return r.budget
}

// ResetAt returns when the current window ends.
func (r *RateLimiter) ResetAt() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rollLocked()
	return r.resetAt
}

// Remaining returns the calls left in the current window, or -1 when the
// budget is unlimited.
func (r *RateLimiter) Remaining() int64 {
	if r.budget <= 0 {
		return -1
	}
	return max(r.budget-r.Used(), 0)
}

func (r *RateLimiter) reserve() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rollLocked()

	if r.budget > 0 && r.used >= r.budget {
		return fmt.Errorf("%w (%d/%d)", ErrDailyLimitReached, r.used, r.budget)
	}
	r.used++
	return nil
}

func (r *RateLimiter) release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.used > 0 {
		r.used--
	}
}

func (r *RateLimiter) rollLocked() {
	now := r.nowFunc()
	if now.After(r.resetAt) {
		r.used = 0
		r.resetAt = now.Add(r.window)
	}
}
