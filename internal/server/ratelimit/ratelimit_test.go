package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketBurstThenDeny(t *testing.T) {
	b := newBucket(10, 1.0)

	for i := 0; i < 10; i++ {
		assert.True(t, b.take(), "request %d should fit the burst", i+1)
	}
	assert.False(t, b.take(), "burst exhausted, no refill yet")
}

func TestBucketRefill(t *testing.T) {
	b := newBucket(10, 1.0)
	for i := 0; i < 10; i++ {
		b.take()
	}

	time.Sleep(1100 * time.Millisecond)

	assert.True(t, b.take(), "one token should have refilled")
	assert.False(t, b.take())
}

func TestBucketStatus(t *testing.T) {
	b := newBucket(10, 1.0)
	for i := 0; i < 5; i++ {
		b.take()
	}

	remaining, resetAt := b.status()
	assert.Equal(t, 5, remaining)
	assert.False(t, resetAt.Before(time.Now()), "reset time lies in the future while tokens are missing")
}

func TestLimiterDefaultBudget(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/runs", "GET")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 10, info.Limit)
		assert.Equal(t, 9-i, info.Remaining)
	}

	allowed, info := limiter.Allow("127.0.0.1", "/runs", "GET")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Positive(t, info.RetryAfter)
}

func TestLimiterWhitelist(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"127.0.0.1": true},
	})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/parse", "POST")
		require.True(t, allowed)
		assert.Equal(t, 0, info.Limit, "whitelisted clients carry no budget")
	}
}

func TestLimiterBlacklist(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		Blacklist:     map[string]bool{"192.168.1.1": true},
	})
	defer limiter.Stop()

	allowed, _ := limiter.Allow("192.168.1.1", "/parse", "POST")
	assert.False(t, allowed)
}

func TestLimiterDisabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := limiter.Allow("127.0.0.1", "/parse", "POST")
		require.True(t, allowed)
	}
}

func TestLimiterParseBudgetSeparateFromDefault(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/parse", Method: "POST", Limit: 5, Window: time.Hour, Burst: 5},
		},
	})
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/parse", "POST")
		require.True(t, allowed, "parse request %d", i+1)
		assert.Equal(t, 5, info.Limit)
	}

	allowed, info := limiter.Allow("127.0.0.1", "/parse", "POST")
	assert.False(t, allowed, "parse budget exhausted")
	assert.Equal(t, 5, info.Limit)

	// Other endpoints keep the default budget
	allowed, info = limiter.Allow("127.0.0.1", "/runs", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 1000, info.Limit)
}

func TestLimiterBurstBelowLimit(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/parse/stream", Method: "POST", Limit: 10, Window: time.Minute, Burst: 5},
		},
	})
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		allowed, _ := limiter.Allow("127.0.0.1", "/parse/stream", "POST")
		require.True(t, allowed, "burst request %d", i+1)
	}

	allowed, _ := limiter.Allow("127.0.0.1", "/parse/stream", "POST")
	assert.False(t, allowed, "burst capacity caps instantaneous requests below the window limit")
}

func TestLimiterConcurrent(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0

	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if allowed, _ := limiter.Allow("127.0.0.1", "/runs", "GET"); allowed {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, allowedCount)
}

func TestLimiterReap(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		allowed, _ := limiter.Allow(fmt.Sprintf("127.0.0.%d", i+1), "/runs", "GET")
		require.True(t, allowed)
	}

	// Age half the buckets past the stale cutoff, then reap.
	limiter.mu.Lock()
	var aged int
	for _, b := range limiter.buckets {
		if aged == 5 {
			break
		}
		b.lastSeen = time.Now().Add(-staleAfter - time.Minute)
		aged++
	}
	limiter.mu.Unlock()

	limiter.reap()

	limiter.mu.Lock()
	remaining := len(limiter.buckets)
	limiter.mu.Unlock()
	assert.Equal(t, 5, remaining)
}

func TestNewLimiterNilConfig(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()

	allowed, info := limiter.Allow("127.0.0.1", "/runs", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 1000, info.Limit)
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/parse", Method: "POST", Limit: 30, Window: time.Hour},
		{Path: "/runs/", Method: "DELETE", Limit: 100, Window: time.Minute},
	}

	t.Run("exact match", func(t *testing.T) {
		got := matchEndpoint("/parse", "POST", configs)
		require.NotNil(t, got)
		assert.Equal(t, 30, got.Limit)
	})

	t.Run("prefix match covers run subpaths", func(t *testing.T) {
		got := matchEndpoint("/runs/0c3b7bb8-0000-0000-0000-000000000000", "DELETE", configs)
		require.NotNil(t, got)
		assert.Equal(t, 100, got.Limit)
	})

	t.Run("method must match", func(t *testing.T) {
		assert.Nil(t, matchEndpoint("/parse", "GET", configs))
	})

	t.Run("health is unlimited", func(t *testing.T) {
		got := matchEndpoint("/health", "GET", configs)
		require.NotNil(t, got)
		assert.Equal(t, 0, got.Limit)
	})
}
