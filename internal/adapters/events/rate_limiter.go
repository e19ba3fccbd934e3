package events

import (
	"sync"
	"time"
)

// frameRateLimiter caps inbound frames per connection over a sliding window.
type frameRateLimiter struct {
	mu       sync.Mutex
	history  []time.Time
	limit    int
	interval time.Duration
}

func newFrameRateLimiter(limit int, interval time.Duration) *frameRateLimiter {
	return &frameRateLimiter{limit: limit, interval: interval}
}

func (rl *frameRateLimiter) Allow() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	windowStart := now.Add(-rl.interval)

	fresh := make([]time.Time, 0, len(rl.history))
	for _, t := range rl.history {
		if t.After(windowStart) {
			fresh = append(fresh, t)
		}
	}

	if len(fresh) >= rl.limit {
		rl.history = fresh
		return false
	}

	rl.history = append(fresh, now)
	return true
}
