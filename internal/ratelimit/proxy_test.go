package ratelimit_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omnifolio/influence-indexer/internal/config"
	"github.com/omnifolio/influence-indexer/internal/logger"
	"github.com/omnifolio/influence-indexer/internal/ratelimit"
)

func testProxyConfig(rps float64) config.RateLimiterConfig {
	return config.RateLimiterConfig{
		Providers: map[string]config.RateLimitConfig{
			"lda": {
				RequestsPerSecond: rps,
				Burst:             1,
				MaxQueueTime:      5 * time.Second,
			},
		},
		MaxWorkers:   4,
		MaxQueueSize: 16,
	}
}

func newTestProxy(t *testing.T, rps float64) ratelimit.Proxy {
	require.NoError(t, logger.Initialize(logger.Config{Debug: true}))

	p, err := ratelimit.NewProxy(testProxyConfig(rps))
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func TestNewProxyRequiresProviders(t *testing.T) {
	require.NoError(t, logger.Initialize(logger.Config{Debug: true}))

	_, err := ratelimit.NewProxy(config.RateLimiterConfig{})
	assert.Error(t, err)
}

func TestNewProxyRejectsNonPositiveRate(t *testing.T) {
	require.NoError(t, logger.Initialize(logger.Config{Debug: true}))

	cfg := testProxyConfig(0)
	_, err := ratelimit.NewProxy(cfg)
	assert.Error(t, err)
}

func TestRequestExecutesFunction(t *testing.T) {
	p := newTestProxy(t, 100)

	value, err := ratelimit.Request(context.Background(), p, "lda", func(ctx context.Context) ([]byte, error) {
		return []byte("payload"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), value)
}

func TestRequestPropagatesError(t *testing.T) {
	p := newTestProxy(t, 100)

	boom := errors.New("boom")
	_, err := ratelimit.Request(context.Background(), p, "lda", func(ctx context.Context) ([]byte, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestRequestUnknownProvider(t *testing.T) {
	p := newTestProxy(t, 100)

	_, err := ratelimit.Request(context.Background(), p, "unknown", func(ctx context.Context) ([]byte, error) {
		return nil, nil
	})
	assert.Error(t, err)
}

func TestRequestPacesCalls(t *testing.T) {
	// 20 rps with burst 1: three sequential calls need at least ~100ms
	p := newTestProxy(t, 20)

	start := time.Now()
	for range 3 {
		_, err := ratelimit.Request(context.Background(), p, "lda", func(ctx context.Context) (struct{}, error) {
			return struct{}{}, nil
		})
		require.NoError(t, err)
	}

	assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
}

func TestRequestAfterClose(t *testing.T) {
	require.NoError(t, logger.Initialize(logger.Config{Debug: true}))

	p, err := ratelimit.NewProxy(testProxyConfig(100))
	require.NoError(t, err)
	require.NoError(t, p.Close())

	_, err = ratelimit.Request(context.Background(), p, "lda", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, nil
	})
	assert.Error(t, err)
}

func TestNilProxyExecutesDirectly(t *testing.T) {
	value, err := ratelimit.Request(context.Background(), nil, "lda", func(ctx context.Context) (string, error) {
		return "direct", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "direct", value)
}
