// Package ratelimit provides a per-client token bucket limiter.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultIdleTTL       = 10 * time.Minute
	defaultSweepInterval = time.Minute
)

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyedLimiter gives every key its own token bucket. Buckets idle for longer
// than the TTL are evicted by a background sweep until Stop is called.
type KeyedLimiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	limit   rate.Limit
	burst   int
	ttl     time.Duration
	now     func() time.Time

	done     chan struct{}
	stopOnce sync.Once
}

// New creates a limiter allowing rps requests per second with the given burst.
// A non-positive rps disables limiting.
func New(rps float64, burst int) *KeyedLimiter {
	kl := &KeyedLimiter{
		entries: make(map[string]*entry),
		limit:   rate.Inf,
		ttl:     defaultIdleTTL,
		now:     time.Now,
		done:    make(chan struct{}),
	}
	if rps <= 0 {
		return kl
	}
	kl.limit = rate.Limit(rps)
	kl.burst = max(burst, 1)

	go kl.sweep(defaultSweepInterval)
	return kl
}

// Allow reports whether a request for key may proceed now.
func (kl *KeyedLimiter) Allow(key string) bool {
	if kl.limit == rate.Inf {
		return true
	}
	return kl.getLimiter(key).Allow()
}

// Len returns the number of tracked keys.
func (kl *KeyedLimiter) Len() int {
	kl.mu.Lock()
	defer kl.mu.Unlock()
	return len(kl.entries)
}

// Stop shuts down the sweep goroutine.
func (kl *KeyedLimiter) Stop() {
	kl.stopOnce.Do(func() {
		close(kl.done)
	})
}

func (kl *KeyedLimiter) getLimiter(key string) *rate.Limiter {
	kl.mu.Lock()
	defer kl.mu.Unlock()

	e, ok := kl.entries[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(kl.limit, kl.burst)}
		kl.entries[key] = e
	}
	e.lastSeen = kl.now()
	return e.limiter
}

func (kl *KeyedLimiter) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-kl.done:
			return
		case <-ticker.C:
			kl.evictIdle()
		}
	}
}

// evictIdle drops buckets not used within the TTL.
func (kl *KeyedLimiter) evictIdle() {
	kl.mu.Lock()
	defer kl.mu.Unlock()
	cutoff := kl.now().Add(-kl.ttl)
	for key, e := range kl.entries {
		if e.lastSeen.Before(cutoff) {
			delete(kl.entries, key)
		}
	}
}
