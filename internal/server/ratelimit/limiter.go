// Package ratelimit provides per-caller admission control.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter keeps one token bucket per key. Buckets idle for longer than ttl
// are dropped.
type Limiter struct {
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	ttl       time.Duration
	lastSweep time.Time
	entries   map[string]*bucket
	now       func() time.Time
}

type bucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// New returns a Limiter admitting permits requests per window for each key,
// all of them available at once. permits below 1 disables limiting.
func New(permits int, window time.Duration) *Limiter {
	l := &Limiter{
		ttl:     2 * window,
		entries: make(map[string]*bucket),
		now:     time.Now,
	}
	if permits < 1 || window <= 0 {
		l.limit = rate.Inf
		return l
	}
	l.limit = rate.Every(window / time.Duration(permits))
	l.burst = permits
	return l
}

// Allow reports whether a request for key may proceed now.
func (l *Limiter) Allow(key string) bool {
	ok, _ := l.Admit(key)
	return ok
}

// Admit is Allow that also returns, for a rejected request, how long key
// has to wait for its next permit.
func (l *Limiter) Admit(key string) (bool, time.Duration) {
	if l.limit == rate.Inf {
		return true, 0
	}

	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	b := l.entries[key]
	if b == nil {
		b = &bucket{lim: rate.NewLimiter(l.limit, l.burst)}
		l.entries[key] = b
	}
	b.lastSeen = now

	if now.Sub(l.lastSweep) > l.ttl {
		for k, v := range l.entries {
			if now.Sub(v.lastSeen) > l.ttl {
				delete(l.entries, k)
			}
		}
		l.lastSweep = now
	}

	r := b.lim.ReserveN(now, 1)
	if !r.OK() {
		return false, 0
	}
	if wait := r.DelayFrom(now); wait > 0 {
		r.CancelAt(now)
		return false, wait
	}
	return true, 0
}

// Len returns the number of tracked keys.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
