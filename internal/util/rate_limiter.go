package util

import (
	"context"
	"sync"
	"time"

	"github.com/drallgood/bookstore-storefront/internal/logger"
)

var (
	// DefaultBurst is the burst size used when none is given
	DefaultBurst = 10
	// MaxInterval caps the backoff after repeated 429 responses
	MaxInterval = 5 * time.Second
)

// RateLimiter is a token bucket that paces requests to the backend.
// A 429 widens the interval; a quiet minute of successes restores it.
type RateLimiter struct {
	mu        sync.Mutex
	last      time.Time
	interval  time.Duration
	base      time.Duration
	tokens    int
	maxTokens int
	lastDrop  time.Time
	now       func() time.Time
	log       *logger.Logger
}

// NewRateLimiter creates a limiter issuing one token per interval, up to
// burst tokens at once. An interval of zero or less returns nil, which is
// a valid limiter that never waits.
func NewRateLimiter(interval time.Duration, burst int, log *logger.Logger) *RateLimiter {
	if interval <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = DefaultBurst
	}
	if log == nil {
		log = logger.Get()
	}
	now := time.Now()
	return &RateLimiter{
		last:      now,
		interval:  interval,
		base:      interval,
		tokens:    burst,
		maxTokens: burst,
		now:       time.Now,
		log:       log.WithComponent("rate_limiter"),
	}
}

// refill adds the tokens earned since last. Callers hold mu.
func (r *RateLimiter) refill(now time.Time) {
	earned := int(now.Sub(r.last) / r.interval)
	if earned <= 0 {
		return
	}
	r.tokens += earned
	if r.tokens > r.maxTokens {
		r.tokens = r.maxTokens
	}
	r.last = r.last.Add(time.Duration(earned) * r.interval)
}

// Wait blocks until a token is available or ctx is done
func (r *RateLimiter) Wait(ctx context.Context) error {
	if r == nil {
		return nil
	}
	for {
		r.mu.Lock()
		now := r.now()
		r.refill(now)
		if r.tokens > 0 {
			r.tokens--
			r.mu.Unlock()
			return nil
		}
		wait := r.last.Add(r.interval).Sub(now)
		r.mu.Unlock()

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// OnRateLimit slows the limiter after a 429 and returns the delay the
// caller should observe. retryAfter wins when it is longer.
func (r *RateLimiter) OnRateLimit(retryAfter time.Duration) time.Duration {
	if r == nil {
		return retryAfter
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	factor := 1.2
	if now.Sub(r.lastDrop) < 5*time.Minute {
		factor = 1.5
	}
	r.interval = time.Duration(factor * float64(r.interval))
	if r.interval > MaxInterval {
		r.interval = MaxInterval
	}
	r.lastDrop = now

	r.log.Warn("Backend rate limited, slowing down", map[string]interface{}{
		"interval":    r.interval.String(),
		"retry_after": retryAfter.String(),
	})

	if retryAfter > r.interval {
		return retryAfter
	}
	return r.interval
}

// recoverAfter is how long without a 429 before the interval is restored
const recoverAfter = time.Minute

// OnSuccess restores the configured interval once recoverAfter has passed
// since the last 429
func (r *RateLimiter) OnSuccess() {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.interval != r.base && r.now().Sub(r.lastDrop) >= recoverAfter {
		r.interval = r.base
	}
}

// Interval returns the current interval between tokens
func (r *RateLimiter) Interval() time.Duration {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.interval
}
