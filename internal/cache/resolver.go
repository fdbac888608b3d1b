package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/omnifolio/influence-indexer/internal/adapter"
	"github.com/omnifolio/influence-indexer/internal/domain"
	"github.com/omnifolio/influence-indexer/internal/logger"
	"github.com/omnifolio/influence-indexer/internal/providers/lda"
	"github.com/omnifolio/influence-indexer/internal/registry"
	"github.com/omnifolio/influence-indexer/internal/scoring"
	"github.com/omnifolio/influence-indexer/internal/store"
	"github.com/omnifolio/influence-indexer/internal/store/schema"
	"github.com/omnifolio/influence-indexer/internal/types"
)

const (
	defaultYearsOfHistory = 3
	bulkYearsOfHistory    = 2
)

// Resolver composes the cache tiers: process memory, durable store, upstream.
// It owns the two pieces of process-wide mutable state the design calls for:
// the bounded memory cache and the in-flight singleflight registry.
type Resolver struct {
	store     store.Store
	upstream  lda.Client
	issuers   registry.IssuerRegistry
	clock     adapter.Clock
	ttlPolicy TTLPolicy

	classifier *Classifier
	memory     *ResultCache
	group      singleflight.Group

	fetchTimeout time.Duration
	maxResults   int
}

// NewResolver creates a resolver over the given collaborators
func NewResolver(s store.Store, upstream lda.Client, issuers registry.IssuerRegistry, clock adapter.Clock, ttlPolicy TTLPolicy, memory *ResultCache, fetchTimeout time.Duration, maxResults int) *Resolver {
	if fetchTimeout <= 0 {
		fetchTimeout = 2 * time.Minute
	}
	return &Resolver{
		store:        s,
		upstream:     upstream,
		issuers:      issuers,
		clock:        clock,
		ttlPolicy:    ttlPolicy,
		classifier:   NewClassifier(s, clock),
		memory:       memory,
		fetchTimeout: fetchTimeout,
		maxResults:   maxResults,
	}
}

// GetScore resolves the influence score for a key.
// Memory cache first, then singleflight-collapsed resolution against the
// durable store and, only when no usable durable data exists, the upstream
// source.
func (r *Resolver) GetScore(ctx context.Context, key string, opts domain.ResolveOptions) (*domain.ScoreResult, error) {
	key = strings.ToUpper(strings.TrimSpace(key))
	if key == "" {
		return nil, fmt.Errorf("key is required")
	}
	if opts.YearsOfHistory <= 0 {
		opts.YearsOfHistory = defaultYearsOfHistory
	}

	cacheKey := CacheKey(key, opts.YearsOfHistory)
	if !opts.ForceRefresh {
		if snapshot, ok := r.memory.Get(cacheKey); ok {
			return r.withActivityFilter(&snapshot, opts), nil
		}
	}

	// One in-flight resolution per exact (key, years, force) tuple; latecomers
	// share the winner's result instead of issuing duplicate upstream calls
	lockKey := fmt.Sprintf("%s|%d|%t", key, opts.YearsOfHistory, opts.ForceRefresh)
	v, err, _ := r.group.Do(lockKey, func() (interface{}, error) {
		return r.resolve(ctx, key, opts)
	})
	if err != nil {
		return nil, err
	}

	result := v.(*domain.ScoreResult)
	return r.withActivityFilter(result, opts), nil
}

// GetScoresBulk resolves several keys sequentially to respect the upstream
// rate limit. A failing key is logged and skipped, it never aborts the batch.
func (r *Resolver) GetScoresBulk(ctx context.Context, keys []string, opts domain.ResolveOptions) []*domain.ScoreResult {
	if opts.YearsOfHistory <= 0 {
		opts.YearsOfHistory = bulkYearsOfHistory
	}

	results := make([]*domain.ScoreResult, 0, len(keys))
	for _, key := range keys {
		result, err := r.GetScore(ctx, key, opts)
		if err != nil {
			logger.WarnCtx(ctx, "bulk score resolution failed for key, skipping",
				zap.String("key", key), zap.Error(err))
			continue
		}
		results = append(results, result)
	}
	return results
}

// resolve runs the durable-store freshness decision for one lock key
func (r *Resolver) resolve(ctx context.Context, key string, opts domain.ResolveOptions) (*domain.ScoreResult, error) {
	now := r.clock.Now().UTC()
	ttl := r.ttlPolicy.TTLFor(now)

	if !opts.ForceRefresh {
		freshness, refreshedAt := r.classifier.ClassifyKey(ctx, key, ttl)

		switch freshness {
		case domain.FreshnessFresh:
			if result, ok := r.buildFromStore(ctx, key, opts, refreshedAt, ttl); ok {
				return result, nil
			}
			// Audit log says fresh but the data table disagrees; fall through
			// to the full pipeline
		case domain.FreshnessStale:
			if result, ok := r.buildFromStore(ctx, key, opts, refreshedAt, ttl); ok {
				r.scheduleBackgroundRefresh(key, opts.YearsOfHistory)
				return result, nil
			}
		case domain.FreshnessExpired:
			// Prefer any usable durable data over an upstream call: expiry is
			// often just a missing audit log, and upstream is the most
			// expensive resource in the system
			if result, ok := r.buildFromStore(ctx, key, opts, refreshedAt, ttl); ok {
				r.scheduleBackgroundRefresh(key, opts.YearsOfHistory)
				return result, nil
			}
		}
	}

	result, err := r.refreshFromUpstream(ctx, key, opts.YearsOfHistory)
	if err != nil {
		// Last resort before surfacing the error: serve whatever the durable
		// store still has
		if fallback, ok := r.buildFromStore(ctx, key, opts, nil, ttl); ok {
			logger.WarnCtx(ctx, "upstream refresh failed, serving durable fallback",
				zap.String("key", key), zap.Error(err))
			return fallback, nil
		}
		return nil, err
	}

	return result, nil
}

// buildFromStore composes a result from persisted records. Returns false when
// the store has no usable record for the key, or errors; both are normal cache
// misses, not failures.
func (r *Resolver) buildFromStore(ctx context.Context, key string, opts domain.ResolveOptions, refreshedAt *time.Time, ttl time.Duration) (*domain.ScoreResult, bool) {
	minYear := r.clock.Now().UTC().Year() - opts.YearsOfHistory + 1
	rows, err := r.store.GetActivityRecords(ctx, key, minYear)
	if err != nil {
		logger.WarnCtx(ctx, "failed to read durable store",
			zap.String("key", key), zap.Error(err))
		return nil, false
	}
	if len(rows) == 0 {
		return nil, false
	}

	records, err := types.ActivitiesToDomain(rows)
	if err != nil {
		logger.WarnCtx(ctx, "failed to decode persisted records",
			zap.String("key", key), zap.Error(err))
		return nil, false
	}

	cachedAt := r.clock.Now().UTC()
	if refreshedAt != nil {
		cachedAt = refreshedAt.UTC()
	} else if latest, err := r.store.GetLatestRecordTime(ctx, key); err == nil && latest != nil {
		// No audit trail; the persistence time of the newest row is the best
		// available refresh stamp
		cachedAt = latest.UTC()
	}

	result := r.composeResult(key, records, opts.YearsOfHistory, domain.ProvenanceCache, cachedAt, ttl)
	return result, true
}

// refreshFromUpstream runs the full synchronous pipeline: audit running,
// bounded fetch, transform, persist, aggregate, audit completion.
func (r *Resolver) refreshFromUpstream(ctx context.Context, key string, yearsOfHistory int) (*domain.ScoreResult, error) {
	auditID, err := r.store.BeginRefreshAudit(ctx, key)
	if err != nil {
		// The audit trail is advisory; a failed insert must not block the fetch
		logger.WarnCtx(ctx, "failed to record refresh audit entry",
			zap.String("key", key), zap.Error(err))
		auditID = uuid.Nil
	}

	now := r.clock.Now().UTC()
	ttl := r.ttlPolicy.TTLFor(now)
	ttlSeconds := int(ttl.Seconds())

	fetchCtx, cancel := context.WithTimeout(ctx, r.fetchTimeout)
	defer cancel()

	filings, err := r.fetchFilings(fetchCtx, key, yearsOfHistory)
	if err != nil {
		r.completeAudit(ctx, auditID, false, 0, ttlSeconds, err.Error())
		return nil, fmt.Errorf("%w: %s", domain.ErrUpstreamUnavailable, err.Error())
	}

	records := lda.ToActivityRecords(key, filings)

	rows, err := types.ActivitiesToSchema(records)
	if err == nil {
		err = r.store.ReplaceActivityRecords(ctx, key, rows)
	}
	if err != nil {
		// Persistence failure does not abort the in-memory result, but the
		// audit entry must not claim a durable success
		logger.ErrorCtx(ctx, err, zap.String("key", key), zap.String("stage", "persist"))
		r.completeAudit(ctx, auditID, false, len(records), ttlSeconds, err.Error())
	} else {
		r.completeAudit(ctx, auditID, true, len(records), ttlSeconds, "")
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: upstream returned no parsable filings for %s", domain.ErrNoDataAvailable, key)
	}

	return r.composeResult(key, records, yearsOfHistory, domain.ProvenanceFresh, now, ttl), nil
}

// fetchFilings queries upstream once per registered client name and merges the
// results, deduplicating by filing identifier
func (r *Resolver) fetchFilings(ctx context.Context, key string, yearsOfHistory int) ([]lda.Filing, error) {
	seen := make(map[string]struct{})
	var filings []lda.Filing

	for _, clientName := range r.issuers.ClientNames(key) {
		batch, err := r.upstream.FetchFilings(ctx, clientName, lda.FetchOptions{
			YearsOfHistory: yearsOfHistory,
			MaxResults:     r.maxResults,
		})
		if err != nil {
			return nil, err
		}
		for _, filing := range batch {
			if _, ok := seen[filing.FilingUUID]; ok {
				continue
			}
			seen[filing.FilingUUID] = struct{}{}
			filings = append(filings, filing)
		}
	}

	return filings, nil
}

// composeResult aggregates, scores and stamps a result, then populates the
// memory cache with the full snapshot
func (r *Resolver) composeResult(key string, records []domain.ActivityRecord, yearsOfHistory int, provenance domain.Provenance, cachedAt time.Time, ttl time.Duration) *domain.ScoreResult {
	now := r.clock.Now().UTC()
	metrics := scoring.BuildQuarterlyMetrics(records, now, yearsOfHistory)
	currentScore, currentLabel := scoring.CurrentScore(metrics)

	result := &domain.ScoreResult{
		Key:          key,
		DisplayName:  r.issuers.DisplayName(key),
		Quarters:     metrics,
		Activities:   records,
		Summary:      scoring.BuildSummary(records),
		CurrentScore: currentScore,
		CurrentLabel: currentLabel,
		Trend:        scoring.ClassifyTrend(metrics),
		Provenance:   provenance,
		CachedAt:     cachedAt,
		ExpiresAt:    cachedAt.Add(ttl),
	}

	r.memory.Set(CacheKey(key, yearsOfHistory), *result)

	return result
}

// scheduleBackgroundRefresh fires a detached refresh whose failure only ever
// reaches the logger, never the caller that triggered it
func (r *Resolver) scheduleBackgroundRefresh(key string, yearsOfHistory int) {
	lockKey := fmt.Sprintf("refresh|%s|%d", key, yearsOfHistory)
	go func() {
		_, err, _ := r.group.Do(lockKey, func() (interface{}, error) {
			ctx, cancel := context.WithTimeout(context.Background(), r.fetchTimeout)
			defer cancel()
			return r.refreshFromUpstream(ctx, key, yearsOfHistory)
		})
		if err != nil {
			logger.Warn("background refresh failed",
				zap.String("key", key), zap.Error(err))
		} else {
			logger.Debug("background refresh completed", zap.String("key", key))
		}
	}()
}

// completeAudit closes an audit entry, tolerating both a missing entry and a
// failing store
func (r *Resolver) completeAudit(ctx context.Context, auditID uuid.UUID, success bool, recordCount int, ttlSeconds int, errMsg string) {
	if auditID == uuid.Nil {
		return
	}

	status := schema.RefreshStatusFailed
	if success {
		status = schema.RefreshStatusSuccess
	}
	if err := r.store.CompleteRefreshAudit(ctx, auditID, status, recordCount, ttlSeconds, errMsg); err != nil {
		logger.WarnCtx(ctx, "failed to complete refresh audit entry",
			zap.String("audit_id", auditID.String()), zap.Error(err))
	}
}

// withActivityFilter returns a caller-facing copy, stripping raw activities
// unless they were requested
func (r *Resolver) withActivityFilter(result *domain.ScoreResult, opts domain.ResolveOptions) *domain.ScoreResult {
	out := *result
	if !opts.IncludeActivities {
		out.Activities = nil
	}
	return &out
}
