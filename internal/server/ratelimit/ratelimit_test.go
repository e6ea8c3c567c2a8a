package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestLimiter returns a limiter with no cleanup goroutine and a controllable clock.
func newTestLimiter(cfg *Config) (*Limiter, *time.Time) {
	cfg.CleanupInterval = 0
	l := NewLimiter(cfg)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestLimiter_AllowsUpToLimit(t *testing.T) {
	l, _ := newTestLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})
	defer l.Stop()

	for i := 0; i < 10; i++ {
		allowed, info := l.Allow("127.0.0.1", "/api/resume/context/abc", "GET")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 10, info.Limit)
		assert.Equal(t, 9-i, info.Remaining)
	}

	allowed, info := l.Allow("127.0.0.1", "/api/resume/context/abc", "GET")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.InDelta(t, 6*time.Second, info.RetryAfter, float64(10*time.Millisecond))
}

func TestLimiter_Refill(t *testing.T) {
	l, now := newTestLimiter(&Config{Enabled: true, DefaultLimit: 60, DefaultWindow: time.Minute})
	defer l.Stop()

	for i := 0; i < 60; i++ {
		l.Allow("c", "/x", "GET")
	}
	allowed, _ := l.Allow("c", "/x", "GET")
	require.False(t, allowed)

	*now = now.Add(time.Second)
	allowed, _ = l.Allow("c", "/x", "GET")
	assert.True(t, allowed, "one token refills per second")

	allowed, _ = l.Allow("c", "/x", "GET")
	assert.False(t, allowed)
}

func TestLimiter_ResetTime(t *testing.T) {
	l, now := newTestLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: 10 * time.Second})
	defer l.Stop()

	for i := 0; i < 5; i++ {
		l.Allow("c", "/x", "GET")
	}
	_, info := l.Allow("c", "/x", "GET")
	assert.Equal(t, 4, info.Remaining)
	assert.WithinDuration(t, now.Add(6*time.Second), info.ResetTime, 10*time.Millisecond)
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Minute})
	defer l.Stop()

	allowed, _ := l.Allow("a", "/x", "GET")
	assert.True(t, allowed)
	allowed, _ = l.Allow("a", "/x", "GET")
	assert.False(t, allowed)

	allowed, _ = l.Allow("b", "/x", "GET")
	assert.True(t, allowed)
	allowed, _ = l.Allow("a", "/x", "POST")
	assert.True(t, allowed, "method is part of the bucket key")
}

func TestLimiter_WhitelistBlacklist(t *testing.T) {
	l, _ := newTestLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"10.0.0.1": true},
		Blacklist:     map[string]bool{"10.0.0.2": true},
	})
	defer l.Stop()

	for i := 0; i < 5; i++ {
		allowed, _ := l.Allow("10.0.0.1", "/x", "GET")
		assert.True(t, allowed)
	}
	allowed, info := l.Allow("10.0.0.2", "/x", "GET")
	assert.False(t, allowed)
	assert.False(t, info.Allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false})
	defer l.Stop()

	for i := 0; i < 100; i++ {
		allowed, info := l.Allow("127.0.0.1", "/api/answer/generate", "POST")
		require.True(t, allowed)
		assert.Equal(t, 0, info.Limit)
	}
}

func TestLimiter_EndpointSpecific(t *testing.T) {
	l, _ := newTestLimiter(&Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		EndpointConfigs: DefaultEndpointConfigs(),
	})
	defer l.Stop()

	// answer generation bursts to 5
	for i := 0; i < 5; i++ {
		allowed, info := l.Allow("c", "/api/answer/generate", "POST")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 30, info.Limit)
	}
	allowed, _ := l.Allow("c", "/api/answer/generate", "POST")
	assert.False(t, allowed)

	allowed, info := l.Allow("c", "/api/job/context/abc", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 1000, info.Limit)
}

func TestLimiter_UnlimitedPaths(t *testing.T) {
	l, _ := newTestLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Hour})
	defer l.Stop()

	for _, path := range []string{"/health", "/metrics"} {
		for i := 0; i < 20; i++ {
			allowed, _ := l.Allow("c", path, "GET")
			require.True(t, allowed, path)
		}
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	l, _ := newTestLimiter(&Config{Enabled: true, DefaultLimit: 100, DefaultWindow: time.Minute})
	defer l.Stop()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := l.Allow("c", "/x", "GET"); ok {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, allowed)
}

func TestLimiter_CleanupBuckets(t *testing.T) {
	l, now := newTestLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})
	defer l.Stop()

	for i := 0; i < 10; i++ {
		l.Allow(fmt.Sprintf("127.0.0.%d", i+1), "/x", "GET")
	}
	*now = now.Add(30 * time.Minute)
	for i := 0; i < 5; i++ {
		l.Allow(fmt.Sprintf("127.0.0.%d", i+1), "/x", "GET")
	}
	*now = now.Add(45 * time.Minute)

	l.cleanupBuckets()

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Len(t, l.buckets, 5)
}

func TestNewLimiter_NilConfig(t *testing.T) {
	l := NewLimiter(nil)
	defer l.Stop()

	allowed, info := l.Allow("127.0.0.1", "/x", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 1000, info.Limit)
}

func TestLimiter_StopTwice(t *testing.T) {
	l := NewLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Minute, CleanupInterval: time.Millisecond})
	l.Stop()
	assert.NotPanics(t, l.Stop)
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/api/resume/upload", Method: "POST", Limit: 1},
		{Path: "/api/resume/context/", Method: "GET", Limit: 2},
	}

	assert.Equal(t, 1, MatchEndpoint("/api/resume/upload", "POST", configs).Limit)
	assert.Nil(t, MatchEndpoint("/api/resume/upload", "GET", configs))
	assert.Equal(t, 2, MatchEndpoint("/api/resume/context/abc", "GET", configs).Limit)
	assert.Nil(t, MatchEndpoint("/api/job/add", "POST", configs))
	assert.Equal(t, 0, MatchEndpoint("/health", "GET", configs).Limit)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "42")
	t.Setenv("RATE_LIMIT_DEFAULT_WINDOW", "30s")
	t.Setenv("RATE_LIMIT_WHITELIST", "1.1.1.1, 2.2.2.2")

	cfg := LoadConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 42, cfg.DefaultLimit)
	assert.Equal(t, 30*time.Second, cfg.DefaultWindow)
	assert.True(t, cfg.Whitelist["1.1.1.1"])
	assert.True(t, cfg.Whitelist["2.2.2.2"])
	assert.NotEmpty(t, cfg.EndpointConfigs)

	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "lots")
	assert.Equal(t, 1000, LoadConfig().DefaultLimit)

	t.Setenv("RATE_LIMIT_ENABLED", "false")
	assert.False(t, LoadConfig().Enabled)
}
