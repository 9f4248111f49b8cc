package github

import (
	"context"
	"time"

	"github.com/fwojciec/repodoc"
)

// DefaultRetryDelays returns the backoff delays for rate-limited requests: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// withRetry calls fn until it succeeds, fails with anything other than
// ERATELIMIT, or runs out of delays.
func withRetry(ctx context.Context, delays []time.Duration, fn func() error) error {
	var err error
	for attempt := 0; ; attempt++ {
		err = fn()
		if err == nil || repodoc.ErrorCode(err) != repodoc.ERATELIMIT || attempt >= len(delays) {
			return err
		}

		t := time.NewTimer(delays[attempt])
		select {
		case <-ctx.Done():
			t.Stop()
			return err
		case <-t.C:
		}
	}
}
