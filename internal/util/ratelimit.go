package util

import (
	"context"
	"sync"
	"time"
)

// RateLimiter spaces operations out to a fixed per-minute budget. The
// external query service applies per-minute quotas, so callers Wait before
// every request.
type RateLimiter struct {
	interval time.Duration // minimum gap between operations
	next     time.Time     // earliest time the next operation may run
	mu       sync.Mutex
}

// NewRateLimiter creates a RateLimiter that allows perMinute operations per
// minute. A perMinute of zero or less disables limiting.
func NewRateLimiter(perMinute int) *RateLimiter {
	var interval time.Duration
	if perMinute > 0 {
		interval = time.Minute / time.Duration(perMinute)
	}
	return &RateLimiter{interval: interval}
}

// Wait blocks until the limiter permits the next operation or the context is
// cancelled. The first call never blocks.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	if rl.interval <= 0 {
		return nil
	}

	rl.mu.Lock()
	now := time.Now()
	wait := rl.next.Sub(now)
	if wait < 0 {
		wait = 0
	}
	rl.next = now.Add(wait + rl.interval)
	rl.mu.Unlock()

	if wait == 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(wait):
		return nil
	}
}
