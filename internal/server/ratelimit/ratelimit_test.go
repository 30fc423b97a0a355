package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(cfg *Config) *Limiter {
	cfg.Enabled = true
	if cfg.DefaultLimit == 0 {
		cfg.DefaultLimit = 10
	}
	if cfg.DefaultWindow == 0 {
		cfg.DefaultWindow = time.Minute
	}
	return NewLimiter(cfg)
}

func TestLimiter_AllowUpToBurst(t *testing.T) {
	l := newTestLimiter(&Config{DefaultLimit: 5})
	defer l.Stop()

	for i := 0; i < 5; i++ {
		allowed, info := l.Allow("127.0.0.1", "/schema", "GET")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 5, info.Limit)
		assert.Equal(t, 4-i, info.Remaining)
	}

	allowed, info := l.Allow("127.0.0.1", "/schema", "GET")
	assert.False(t, allowed)
	assert.Zero(t, info.Remaining)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
	assert.True(t, info.ResetTime.After(time.Now()))
}

func TestLimiter_SeparateClientsAndEndpoints(t *testing.T) {
	l := newTestLimiter(&Config{DefaultLimit: 1})
	defer l.Stop()

	allowed, _ := l.Allow("a", "/schema", "GET")
	assert.True(t, allowed)
	allowed, _ = l.Allow("a", "/schema", "GET")
	assert.False(t, allowed)

	allowed, _ = l.Allow("b", "/schema", "GET")
	assert.True(t, allowed, "other client has its own bucket")
	allowed, _ = l.Allow("a", "/health", "GET")
	assert.True(t, allowed, "health is unlimited")
	allowed, _ = l.Allow("a", "/schema", "HEAD")
	assert.True(t, allowed, "method is part of the key")
}

func TestLimiter_EndpointConfig(t *testing.T) {
	l := newTestLimiter(&Config{EndpointConfigs: []EndpointConfig{
		{Path: "/convert-portfolio", Method: "POST", Limit: 30, Window: time.Hour, Burst: 2},
		{Path: "/preview/", Method: "GET", Limit: 2, Window: time.Hour},
	}})
	defer l.Stop()

	for i := 0; i < 2; i++ {
		allowed, info := l.Allow("c", "/convert-portfolio", "POST")
		require.True(t, allowed)
		assert.Equal(t, 30, info.Limit)
	}
	allowed, _ := l.Allow("c", "/convert-portfolio", "POST")
	assert.False(t, allowed, "burst is 2")

	// Prefix configs share one bucket across ids.
	allowed, _ = l.Allow("c", "/preview/1", "GET")
	assert.True(t, allowed)
	allowed, _ = l.Allow("c", "/preview/2", "GET")
	assert.True(t, allowed)
	allowed, _ = l.Allow("c", "/preview/3", "GET")
	assert.False(t, allowed)
}

func TestLimiter_Refill(t *testing.T) {
	l := newTestLimiter(&Config{DefaultLimit: 1, DefaultWindow: 100 * time.Millisecond})
	defer l.Stop()

	allowed, _ := l.Allow("c", "/x", "GET")
	require.True(t, allowed)
	allowed, _ = l.Allow("c", "/x", "GET")
	require.False(t, allowed)

	time.Sleep(150 * time.Millisecond)
	allowed, _ = l.Allow("c", "/x", "GET")
	assert.True(t, allowed)
}

func TestLimiter_WhitelistBlacklistDisabled(t *testing.T) {
	l := newTestLimiter(&Config{
		DefaultLimit: 1,
		Whitelist:    map[string]bool{"10.0.0.1": true},
		Blacklist:    map[string]bool{"10.0.0.2": true},
	})
	defer l.Stop()

	for i := 0; i < 3; i++ {
		allowed, _ := l.Allow("10.0.0.1", "/x", "GET")
		assert.True(t, allowed)
	}
	allowed, _ := l.Allow("10.0.0.2", "/x", "GET")
	assert.False(t, allowed)

	off := NewLimiter(&Config{Enabled: false})
	defer off.Stop()
	for i := 0; i < 3; i++ {
		allowed, _ := off.Allow("c", "/x", "GET")
		assert.True(t, allowed)
	}
}

func TestLimiter_Cleanup(t *testing.T) {
	l := newTestLimiter(&Config{})
	defer l.Stop()

	l.Allow("c", "/x", "GET")
	l.cleanup(time.Now().Add(-time.Minute))
	assert.Len(t, l.buckets, 1)

	l.cleanup(time.Now().Add(time.Minute))
	assert.Empty(t, l.buckets)
}

func TestLimiter_Concurrent(t *testing.T) {
	l := newTestLimiter(&Config{DefaultLimit: 50})
	defer l.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := l.Allow("c", "/x", "GET"); ok {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, allowedCount)
}

func TestLimiter_StopTwice(t *testing.T) {
	l := NewLimiter(nil)
	l.Stop()
	assert.NotPanics(t, l.Stop)
}

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs()

	tests := []struct {
		path, method string
		wantPath     string
	}{
		{"/convert-portfolio", "POST", "/convert-portfolio"},
		{"/convert-portfolio/stream", "POST", "/convert-portfolio/stream"},
		{"/", "POST", "/"},
		{"/download/abc", "GET", "/download/"},
		{"/schema", "GET", ""},
		{"/generate-website", "GET", ""},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s %s", tt.method, tt.path), func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.wantPath == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantPath, got.Path)
		})
	}

	health := MatchEndpoint("/health", "GET", configs)
	require.NotNil(t, health)
	assert.Zero(t, health.Limit)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "42")
	t.Setenv("RATE_LIMIT_DEFAULT_WINDOW", "30s")
	t.Setenv("RATE_LIMIT_WHITELIST", "1.1.1.1, 2.2.2.2")

	cfg := LoadConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 42, cfg.DefaultLimit)
	assert.Equal(t, 30*time.Second, cfg.DefaultWindow)
	assert.True(t, cfg.Whitelist["2.2.2.2"])
	assert.NotEmpty(t, cfg.EndpointConfigs)

	t.Setenv("RATE_LIMIT_ENABLED", "false")
	assert.False(t, LoadConfig().Enabled)
}
