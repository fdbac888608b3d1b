package cache

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/omnifolio/influence-indexer/internal/adapter"
	"github.com/omnifolio/influence-indexer/internal/domain"
	"github.com/omnifolio/influence-indexer/internal/logger"
	"github.com/omnifolio/influence-indexer/internal/store"
)

// staleFraction is the share of the TTL after which data is servable but
// should be refreshed in the background
const staleFraction = 0.75

// Classifier decides how usable the durable cache is for a key
type Classifier struct {
	store store.Store
	clock adapter.Clock
}

// NewClassifier creates a freshness classifier
func NewClassifier(s store.Store, clock adapter.Clock) *Classifier {
	return &Classifier{store: s, clock: clock}
}

// Classify buckets the age of the last successful refresh against a TTL.
// Age exactly at 0.75xTTL is stale; age exactly at the TTL is expired. A nil
// refresh time is expired.
func (c *Classifier) Classify(lastSuccess *time.Time, ttl time.Duration) domain.Freshness {
	if lastSuccess == nil {
		return domain.FreshnessExpired
	}

	age := c.clock.Since(*lastSuccess)
	staleAfter := time.Duration(float64(ttl) * staleFraction)

	switch {
	case age < staleAfter:
		return domain.FreshnessFresh
	case age < ttl:
		return domain.FreshnessStale
	default:
		return domain.FreshnessExpired
	}
}

// ClassifyKey classifies the durable data for a key. The audit log is the
// sole source of truth: a key with persisted records but no successful audit
// entry is expired, and whether its records are still servable is the
// resolver's call. Store errors degrade to expired, never propagate.
func (c *Classifier) ClassifyKey(ctx context.Context, key string, ttl time.Duration) (domain.Freshness, *time.Time) {
	lastRefresh, err := c.store.GetLastSuccessfulRefresh(ctx, key)
	if err != nil {
		logger.WarnCtx(ctx, "failed to read refresh audit log, treating as expired",
			zap.String("key", key), zap.Error(err))
		return domain.FreshnessExpired, nil
	}
	if lastRefresh == nil || lastRefresh.CompletedAt == nil {
		return domain.FreshnessExpired, nil
	}

	// A stored TTL reflects the policy in force when the data was refreshed
	effectiveTTL := ttl
	if lastRefresh.TTLSeconds != nil && *lastRefresh.TTLSeconds > 0 {
		effectiveTTL = time.Duration(*lastRefresh.TTLSeconds) * time.Second
	}
	return c.Classify(lastRefresh.CompletedAt, effectiveTTL), lastRefresh.CompletedAt
}
