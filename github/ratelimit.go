package github

import (
	"context"
	"sync"
	"time"

	"github.com/fwojciec/repodoc"
	gh "github.com/google/go-github/v80/github"
	"golang.org/x/time/rate"
)

const (
	// DefaultRate is the proactive request rate per second.
	DefaultRate = 10

	// DefaultBurst is the number of requests allowed at once.
	DefaultBurst = 5

	// MaxResetWait is the longest Wait sleeps for an exhausted quota to
	// reset before giving up with ERATELIMIT.
	MaxResetWait = time.Minute
)

// RateLimiter throttles requests with a token bucket and refuses to send
// requests while the quota reported by the API is exhausted.
type RateLimiter struct {
	bucket *rate.Limiter

	mu        sync.Mutex
	known     bool
	remaining int
	reset     time.Time
}

// NewRateLimiter returns a limiter allowing r requests per second with the
// given burst.
func NewRateLimiter(r rate.Limit, burst int) *RateLimiter {
	return &RateLimiter{bucket: rate.NewLimiter(r, burst)}
}

// Wait blocks until a request may be sent.
func (l *RateLimiter) Wait(ctx context.Context) error {
	l.mu.Lock()
	exhausted := l.known && l.remaining <= 0
	reset := l.reset
	l.mu.Unlock()

	if exhausted {
		wait := time.Until(reset)
		if wait > MaxResetWait {
			return repodoc.Errorf(repodoc.ERATELIMIT, "rate limit exhausted until %s", reset.UTC().Format(time.RFC3339))
		}
		if wait > 0 {
			t := time.NewTimer(wait)
			defer t.Stop()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-t.C:
			}
		}
		l.mu.Lock()
		l.known = false
		l.mu.Unlock()
	}

	return l.bucket.Wait(ctx)
}

// Update records the quota reported with a response.
func (l *RateLimiter) Update(resp *gh.Response) {
	if resp == nil || resp.Rate.Limit == 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.known = true
	l.remaining = resp.Rate.Remaining
	l.reset = resp.Rate.Reset.Time
}

// Remaining returns the last reported quota and whether one is known.
func (l *RateLimiter) Remaining() (int, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.remaining, l.known
}
