package ratelimit

import (
	"sync"
	"time"
)

type bucketSpec struct {
	capacity   int
	refillStep int
	interval   time.Duration
}

// Per-action budgets. The default covers anything without an explicit entry.
var actionSpecs = map[string]bucketSpec{
	"send_message":     {capacity: 10, refillStep: 1, interval: 6 * time.Second},    // 10/min
	"create_chat":      {capacity: 5, refillStep: 1, interval: 12 * time.Minute},    // 5/hr
	"purchase_request": {capacity: 6, refillStep: 1, interval: 10 * time.Minute},    // 6/hr
}

var defaultSpec = bucketSpec{capacity: 20, refillStep: 1, interval: 3 * time.Second} // 20/min

// TokenBucket refills a fixed number of tokens every interval, up to a cap.
type TokenBucket struct {
	mu         sync.Mutex
	tokens     int
	capacity   int
	refillStep int
	interval   time.Duration
	lastRefill time.Time
}

func NewTokenBucket(capacity, refillStep int, interval time.Duration) *TokenBucket {
	return &TokenBucket{
		tokens:     capacity,
		capacity:   capacity,
		refillStep: refillStep,
		interval:   interval,
		lastRefill: time.Now(),
	}
}

// Allow consumes a token when one is available. When the bucket is empty it
// returns how long to wait for the next refill.
func (tb *TokenBucket) Allow() (bool, time.Duration) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	if earned := int(now.Sub(tb.lastRefill)/tb.interval) * tb.refillStep; earned > 0 {
		tb.tokens += earned
		if tb.tokens > tb.capacity {
			tb.tokens = tb.capacity
		}
		tb.lastRefill = now
	}

	if tb.tokens > 0 {
		tb.tokens--
		return true, 0
	}

	return false, time.Until(tb.lastRefill.Add(tb.interval))
}

// RateLimiter keeps one bucket per user and action.
type RateLimiter struct {
	mu      sync.RWMutex
	buckets map[string]*TokenBucket
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		buckets: make(map[string]*TokenBucket),
	}
}

func (rl *RateLimiter) Allow(userID, action string) (bool, time.Duration) {
	key := userID + ":" + action

	rl.mu.RLock()
	bucket, ok := rl.buckets[key]
	rl.mu.RUnlock()

	if !ok {
		rl.mu.Lock()
		if bucket, ok = rl.buckets[key]; !ok {
			spec, found := actionSpecs[action]
			if !found {
				spec = defaultSpec
			}
			bucket = NewTokenBucket(spec.capacity, spec.refillStep, spec.interval)
			rl.buckets[key] = bucket
		}
		rl.mu.Unlock()
	}

	return bucket.Allow()
}

// Cleanup drops buckets idle for over an hour.
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-time.Hour)
	for key, bucket := range rl.buckets {
		if bucket.lastRefill.Before(cutoff) {
			delete(rl.buckets, key)
		}
	}
}

func (rl *RateLimiter) StartCleanupRoutine() {
	go func() {
		ticker := time.NewTicker(30 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			rl.Cleanup()
		}
	}()
}
