package cache_test

import (
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/omnifolio/influence-indexer/internal/cache"
	"github.com/omnifolio/influence-indexer/internal/domain"
	"github.com/omnifolio/influence-indexer/internal/mocks"
)

func TestResultCacheHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2025, 5, 14, 9, 0, 0, 0, time.UTC)
	mockClock := mocks.NewMockClock(ctrl)
	mockClock.EXPECT().Now().Return(now).AnyTimes()

	c := cache.NewResultCache(10, 72*time.Hour, mockClock)

	result := domain.ScoreResult{
		Key:          "ACME",
		CurrentScore: 46.15,
		ExpiresAt:    now.Add(12 * time.Hour),
	}
	c.Set(cache.CacheKey("ACME", 3), result)

	got, ok := c.Get(cache.CacheKey("ACME", 3))
	assert.True(t, ok)
	assert.Equal(t, result, got)

	// A different history window is a different entry
	_, ok = c.Get(cache.CacheKey("ACME", 2))
	assert.False(t, ok)
}

func TestResultCacheDropsExpiredEntry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	expiry := time.Date(2025, 5, 14, 9, 0, 0, 0, time.UTC)
	mockClock := mocks.NewMockClock(ctrl)
	// The clock sits exactly at the entry's expiry, which already counts as expired
	mockClock.EXPECT().Now().Return(expiry).AnyTimes()

	c := cache.NewResultCache(10, 72*time.Hour, mockClock)
	c.Set(cache.CacheKey("ACME", 3), domain.ScoreResult{Key: "ACME", ExpiresAt: expiry})

	_, ok := c.Get(cache.CacheKey("ACME", 3))
	assert.False(t, ok)
	assert.Zero(t, c.Len())
}

func TestResultCacheEvictsLeastRecentlyUsed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2025, 5, 14, 9, 0, 0, 0, time.UTC)
	mockClock := mocks.NewMockClock(ctrl)
	mockClock.EXPECT().Now().Return(now).AnyTimes()

	c := cache.NewResultCache(2, 72*time.Hour, mockClock)
	expires := now.Add(time.Hour)

	c.Set(cache.CacheKey("AAA", 3), domain.ScoreResult{Key: "AAA", ExpiresAt: expires})
	c.Set(cache.CacheKey("BBB", 3), domain.ScoreResult{Key: "BBB", ExpiresAt: expires})
	c.Set(cache.CacheKey("CCC", 3), domain.ScoreResult{Key: "CCC", ExpiresAt: expires})

	_, ok := c.Get(cache.CacheKey("AAA", 3))
	assert.False(t, ok, "oldest entry should have been evicted")
	_, ok = c.Get(cache.CacheKey("CCC", 3))
	assert.True(t, ok)
	assert.Equal(t, 2, c.Len())
}
