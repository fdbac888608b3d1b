package cache

import (
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/omnifolio/influence-indexer/internal/adapter"
	"github.com/omnifolio/influence-indexer/internal/domain"
)

// ResultCache is the process-local score cache: bounded entry count with LRU
// eviction, per-entry expiry from the result's own ExpiresAt stamp. The LRU's
// own TTL is only a backstop at the absolute TTL cap.
type ResultCache struct {
	lru   *expirable.LRU[string, domain.ScoreResult]
	clock adapter.Clock
}

// NewResultCache creates a bounded result cache
func NewResultCache(maxEntries int, maxTTL time.Duration, clock adapter.Clock) *ResultCache {
	if maxEntries <= 0 {
		maxEntries = 512
	}
	return &ResultCache{
		lru:   expirable.NewLRU[string, domain.ScoreResult](maxEntries, nil, maxTTL),
		clock: clock,
	}
}

// CacheKey builds the memory cache key for a resolution. ForceRefresh and
// IncludeActivities deliberately do not participate: a forced refresh
// repopulates the same slot, and activity filtering happens on the way out.
func CacheKey(key string, yearsOfHistory int) string {
	return fmt.Sprintf("%s|%d", key, yearsOfHistory)
}

// Get returns the cached snapshot if present and not past its expiry
func (c *ResultCache) Get(cacheKey string) (domain.ScoreResult, bool) {
	result, ok := c.lru.Get(cacheKey)
	if !ok {
		return domain.ScoreResult{}, false
	}
	if !c.clock.Now().Before(result.ExpiresAt) {
		c.lru.Remove(cacheKey)
		return domain.ScoreResult{}, false
	}
	return result, true
}

// Set stores a snapshot, evicting the least recently used entry when full
func (c *ResultCache) Set(cacheKey string, result domain.ScoreResult) {
	c.lru.Add(cacheKey, result)
}

// Len returns the number of live entries
func (c *ResultCache) Len() int {
	return c.lru.Len()
}
