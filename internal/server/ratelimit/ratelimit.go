// Package ratelimit provides per-client token bucket rate limiting for the HTTP server.
package ratelimit

import (
	"sync"
	"time"
)

// Info describes the outcome of a rate limit check.
type Info struct {
	Allowed    bool
	Limit      int // 0 when the request was not subject to a limit
	Remaining  int
	ResetTime  time.Time // When the bucket is full again
	RetryAfter time.Duration
}

type bucket struct {
	capacity float64
	rate     float64 // tokens per second
	tokens   float64
	updated  time.Time
}

func (b *bucket) refill(now time.Time) {
	if elapsed := now.Sub(b.updated).Seconds(); elapsed > 0 {
		b.tokens = min(b.capacity, b.tokens+elapsed*b.rate)
	}
	b.updated = now
}

// take consumes one token if available.
func (b *bucket) take(now time.Time) bool {
	b.refill(now)
	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

func (b *bucket) untilFull() time.Duration {
	return time.Duration((b.capacity - b.tokens) / b.rate * float64(time.Second))
}

func (b *bucket) untilNext() time.Duration {
	if b.tokens >= 1 {
		return 0
	}
	return time.Duration((1 - b.tokens) / b.rate * float64(time.Second))
}

// Limiter tracks one bucket per client, method and path. It is safe for concurrent use.
type Limiter struct {
	config *Config
	now    func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket

	stop     chan struct{}
	stopOnce sync.Once
}

// NewLimiter creates a limiter. A nil config means the environment defaults.
// A background sweeper drops idle buckets when CleanupInterval is positive.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = LoadConfig()
	}
	l := &Limiter{
		config:  config,
		now:     time.Now,
		buckets: make(map[string]*bucket),
		stop:    make(chan struct{}),
	}
	if config.Enabled && config.CleanupInterval > 0 {
		go l.sweepLoop(config.CleanupInterval)
	}
	return l
}

// Allow records a request from clientID and reports whether it may proceed.
func (l *Limiter) Allow(clientID, method, path string) (bool, Info) {
	cfg := l.config
	switch {
	case !cfg.Enabled, cfg.Allowlist[clientID]:
		return true, Info{Allowed: true}
	case cfg.Denylist[clientID]:
		return false, Info{}
	}

	rule := cfg.rule(method, path)
	if rule.Limit <= 0 || rule.Window <= 0 {
		return true, Info{Allowed: true}
	}

	now := l.now()
	key := clientID + " " + method + " " + path

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		capacity := rule.Burst
		if capacity <= 0 {
			capacity = rule.Limit
		}
		b = &bucket{
			capacity: float64(capacity),
			rate:     float64(rule.Limit) / rule.Window.Seconds(),
			tokens:   float64(capacity),
			updated:  now,
		}
		l.buckets[key] = b
	}

	allowed := b.take(now)
	info := Info{
		Allowed:   allowed,
		Limit:     rule.Limit,
		Remaining: int(b.tokens),
		ResetTime: now.Add(b.untilFull()),
	}
	if !allowed {
		info.RetryAfter = b.untilNext()
	}
	return allowed, info
}

// Len returns the number of live buckets.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// Sweep drops buckets idle for longer than the configured IdleTTL and returns how many were removed.
func (l *Limiter) Sweep() int {
	ttl := l.config.IdleTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	cutoff := l.now().Add(-ttl)

	l.mu.Lock()
	defer l.mu.Unlock()
	removed := 0
	for key, b := range l.buckets {
		if b.updated.Before(cutoff) {
			delete(l.buckets, key)
			removed++
		}
	}
	return removed
}

func (l *Limiter) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.Sweep()
		case <-l.stop:
			return
		}
	}
}

// Stop ends the background sweeper. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}
