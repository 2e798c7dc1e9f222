package k8swatch

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

// ReconnectBackoff paces how long a caller waits before reopening a watch
// session after an Error item. The core step/sequence never calls this
// itself — it exists for callers to use between reconnect attempts;
// cmd/k8s-watch applies it between Error items, cmd/k8s-watch-tui does not.
//
// Next takes a full-jitter approach rather than randomizing symmetrically
// around the nominal exponential value: the returned delay is always
// sampled from [nominal*(1-jitterFraction), nominal], so jitter can only
// shorten the wait, never push it past the schedule's own cap. It also
// records the cause of the most recent backoff, so a caller logging
// reconnect activity doesn't need to thread the triggering error through
// separately.
type ReconnectBackoff struct {
	base           time.Duration
	maxDelay       time.Duration
	factor         float64
	jitterFraction float64

	mu        sync.Mutex
	attempt   int
	lastCause error
}

// NewReconnectBackoff returns a backoff with sensible defaults: 1s base
// delay, 30s cap, doubling each attempt, up to 10% shaved off by jitter.
func NewReconnectBackoff() *ReconnectBackoff {
	return &ReconnectBackoff{
		base:           1 * time.Second,
		maxDelay:       30 * time.Second,
		factor:         2.0,
		jitterFraction: 0.1,
	}
}

// NewReconnectBackoffWithConfig returns a backoff with custom parameters.
func NewReconnectBackoffWithConfig(base, maxDelay time.Duration, factor, jitterFraction float64) *ReconnectBackoff {
	return &ReconnectBackoff{
		base:           base,
		maxDelay:       maxDelay,
		factor:         factor,
		jitterFraction: jitterFraction,
	}
}

// Next calculates the next reconnect delay, records cause as the reason for
// it, and increments the attempt counter. cause may be nil.
func (b *ReconnectBackoff) Next(cause error) time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.attempt++
	b.lastCause = cause

	nominal := float64(b.base) * math.Pow(b.factor, float64(b.attempt-1))
	if nominal > float64(b.maxDelay) {
		nominal = float64(b.maxDelay)
	}

	if b.jitterFraction <= 0 {
		return time.Duration(nominal)
	}

	floor := nominal * (1 - b.jitterFraction)
	return time.Duration(floor + rand.Float64()*(nominal-floor))
}

// Reset returns the backoff to its initial state and clears the recorded
// cause. Call after a successful WatchResponse.
func (b *ReconnectBackoff) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.attempt = 0
	b.lastCause = nil
}

// Attempts returns the number of attempts recorded since the last Reset.
func (b *ReconnectBackoff) Attempts() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.attempt
}

// LastCause reports the error passed to the most recent Next call, or nil
// if Next hasn't been called since construction or the last Reset.
func (b *ReconnectBackoff) LastCause() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastCause
}
