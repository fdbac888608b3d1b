package cache

import (
	"time"

	"github.com/omnifolio/influence-indexer/internal/config"
)

// TTLPolicy maps a point in time to a durable-cache TTL. The disclosure
// database updates slowly and never on weekends, so weekend resolutions get a
// longer TTL, bounded by an absolute cap.
type TTLPolicy struct {
	weekday time.Duration
	weekend time.Duration
	max     time.Duration
}

// NewTTLPolicy creates a TTL policy from configuration, applying defaults for
// zero values
func NewTTLPolicy(cfg config.CacheConfig) TTLPolicy {
	policy := TTLPolicy{
		weekday: cfg.WeekdayTTL,
		weekend: cfg.WeekendTTL,
		max:     cfg.MaxTTL,
	}
	if policy.weekday <= 0 {
		policy.weekday = 12 * time.Hour
	}
	if policy.weekend <= 0 {
		policy.weekend = 48 * time.Hour
	}
	if policy.max <= 0 {
		policy.max = 72 * time.Hour
	}
	return policy
}

// TTLFor resolves the TTL for data refreshed at the given time
func (p TTLPolicy) TTLFor(now time.Time) time.Duration {
	ttl := p.weekday
	switch now.Weekday() {
	case time.Saturday, time.Sunday:
		ttl = p.weekend
	}
	if ttl > p.max {
		ttl = p.max
	}
	return ttl
}
