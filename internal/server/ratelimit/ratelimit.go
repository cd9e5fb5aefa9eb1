// Package ratelimit throttles the parse API with per-client token
// buckets. The parse endpoints are the expensive surface here: every
// allowed request fans out six upstream LLM calls, so their budgets sit
// far below the read-path default.
package ratelimit

import (
	"sync"
	"time"
)

// staleAfter is how long an idle client bucket survives before the
// janitor reclaims it.
const staleAfter = time.Hour

// bucket throttles one client+endpoint pair. Tokens refill continuously
// at perSecond; capacity caps the burst.
type bucket struct {
	mu         sync.Mutex
	capacity   float64
	perSecond  float64
	tokens     float64
	refilledAt time.Time
	lastSeen   time.Time
}

func newBucket(capacity int, perSecond float64) *bucket {
	now := time.Now()
	return &bucket{
		capacity:   float64(capacity),
		perSecond:  perSecond,
		tokens:     float64(capacity),
		refilledAt: now,
		lastSeen:   now,
	}
}

// refillLocked advances the token count for the time elapsed since the
// last refill. Callers hold mu.
func (b *bucket) refillLocked(now time.Time) {
	b.tokens = min(b.capacity, b.tokens+now.Sub(b.refilledAt).Seconds()*b.perSecond)
	b.refilledAt = now
}

// take consumes one token if one is available.
func (b *bucket) take() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.refillLocked(now)
	b.lastSeen = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// status reports the whole tokens remaining and when the bucket will be
// full again, without consuming anything.
func (b *bucket) status() (remaining int, resetAt time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.refillLocked(now)

	remaining = int(b.tokens)
	if b.tokens >= b.capacity {
		return remaining, now
	}
	deficit := b.capacity - b.tokens
	return remaining, now.Add(time.Duration(deficit / b.perSecond * float64(time.Second)))
}

func (b *bucket) idleSince(cutoff time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastSeen.Before(cutoff)
}

// Info describes the outcome of a rate limit check; the server translates
// it into X-RateLimit-* response headers.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Limiter tracks one bucket per client+endpoint+method. A background
// janitor drops buckets for clients that stopped sending resumes.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	config  *Config

	janitor *time.Ticker
	done    chan struct{}
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// NewLimiter creates a limiter for the given configuration. A nil config
// gets a permissive default suitable for local development.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    1000,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
			Whitelist:       make(map[string]bool),
			Blacklist:       make(map[string]bool),
		}
	}

	l := &Limiter{
		buckets: make(map[string]*bucket),
		config:  config,
	}

	if config.Enabled && config.CleanupInterval > 0 {
		l.janitor = time.NewTicker(config.CleanupInterval)
		l.done = make(chan struct{})
		go l.run()
	}

	return l
}

// Allow checks whether a request from clientID against path+method fits
// its budget, consuming one token when it does.
func (l *Limiter) Allow(clientID string, path string, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{}
	}

	budget := matchEndpoint(path, method, l.config.EndpointConfigs)
	if budget == nil {
		budget = &EndpointConfig{
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
			Burst:  l.config.DefaultLimit,
		}
	}

	// A non-positive limit marks the endpoint unlimited (health checks).
	if budget.Limit <= 0 {
		return true, Info{Allowed: true}
	}

	b := l.bucketFor(method+" "+path+" "+clientID, budget)
	allowed := b.take()
	remaining, resetAt := b.status()

	var retryAfter time.Duration
	if !allowed {
		if retryAfter = time.Until(resetAt); retryAfter < 0 {
			retryAfter = 0
		}
	}

	return allowed, Info{
		Allowed:    allowed,
		Limit:      budget.Limit,
		Remaining:  remaining,
		ResetTime:  resetAt,
		RetryAfter: retryAfter,
	}
}

// bucketFor returns the bucket for a key, creating it from the budget on
// first sight of the client.
func (l *Limiter) bucketFor(key string, budget *EndpointConfig) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	if b, ok := l.buckets[key]; ok {
		return b
	}

	capacity := budget.Burst
	if capacity <= 0 {
		capacity = budget.Limit
	}
	b := newBucket(capacity, float64(budget.Limit)/budget.Window.Seconds())
	l.buckets[key] = b
	return b
}

func (l *Limiter) run() {
	for {
		select {
		case <-l.janitor.C:
			l.reap()
		case <-l.done:
			return
		}
	}
}

// reap drops buckets that have not been touched within staleAfter.
func (l *Limiter) reap() {
	cutoff := time.Now().Add(-staleAfter)

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		if b.idleSince(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// Stop shuts down the janitor goroutine.
func (l *Limiter) Stop() {
	if l.janitor != nil {
		l.janitor.Stop()
	}
	if l.done != nil {
		close(l.done)
	}
}
