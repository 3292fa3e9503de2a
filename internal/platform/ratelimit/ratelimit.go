// Package ratelimit provides a keyed token bucket limiter
// each key gets its own bucket, idle buckets are swept periodically
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const defaultIdleTTL = 15 * time.Minute

type entry struct {
	lim  *rate.Limiter
	seen time.Time
}

// Keyed manages one limiter per key
type Keyed struct {
	mu       sync.RWMutex
	limiters map[string]*entry
	limit    rate.Limit
	burst    int
	idle     time.Duration
	now      func() time.Time

	done     chan struct{}
	stopOnce sync.Once
}

// New creates a keyed limiter allowing rps per key with the given burst
// rps <= 0 disables limiting
func New(rps float64, burst int) *Keyed {
	if burst <= 0 {
		burst = 1
	}
	lim := rate.Limit(rps)
	if rps <= 0 {
		lim = rate.Inf
	}
	k := &Keyed{
		limiters: make(map[string]*entry),
		limit:    lim,
		burst:    burst,
		idle:     defaultIdleTTL,
		now:      time.Now,
		done:     make(chan struct{}),
	}
	go k.sweepLoop()
	return k
}

// Allow reports whether a call for key may proceed now without blocking
func (k *Keyed) Allow(key string) bool {
	return k.get(key).Allow()
}

// Wait blocks until key has a token or ctx ends
func (k *Keyed) Wait(ctx context.Context, key string) error {
	return k.get(key).Wait(ctx)
}

// Len returns the number of tracked keys
func (k *Keyed) Len() int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.limiters)
}

// Stop ends the sweeper, safe to call more than once
func (k *Keyed) Stop() {
	k.stopOnce.Do(func() { close(k.done) })
}

func (k *Keyed) get(key string) *rate.Limiter {
	now := k.now()

	k.mu.RLock()
	e, ok := k.limiters[key]
	k.mu.RUnlock()
	if ok {
		k.mu.Lock()
		e.seen = now
		k.mu.Unlock()
		return e.lim
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	// double check after taking the write lock
	if e, ok = k.limiters[key]; ok {
		e.seen = now
		return e.lim
	}
	e = &entry{lim: rate.NewLimiter(k.limit, k.burst), seen: now}
	k.limiters[key] = e
	return e.lim
}

// sweep drops limiters not used within the idle window
func (k *Keyed) sweep() {
	cutoff := k.now().Add(-k.idle)
	k.mu.Lock()
	defer k.mu.Unlock()
	for key, e := range k.limiters {
		if e.seen.Before(cutoff) {
			delete(k.limiters, key)
		}
	}
}

func (k *Keyed) sweepLoop() {
	t := time.NewTicker(k.idle)
	defer t.Stop()
	for {
		select {
		case <-k.done:
			return
		case <-t.C:
			k.sweep()
		}
	}
}
