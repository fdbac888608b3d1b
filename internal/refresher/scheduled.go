package refresher

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/omnifolio/influence-indexer/internal/adapter"
	"github.com/omnifolio/influence-indexer/internal/cache"
	"github.com/omnifolio/influence-indexer/internal/domain"
	"github.com/omnifolio/influence-indexer/internal/logger"
	"github.com/omnifolio/influence-indexer/internal/store"
)

// ScoreResolver is the slice of the resolver the refresher needs
//
//go:generate mockgen -source=scheduled.go -destination=../mocks/score_resolver.go -package=mocks -mock_names=ScoreResolver=MockScoreResolver
type ScoreResolver interface {
	// GetScore resolves the influence score for a key
	GetScore(ctx context.Context, key string, opts domain.ResolveOptions) (*domain.ScoreResult, error)
}

// ScheduledRefresherConfig holds configuration for the scheduled refresher
type ScheduledRefresherConfig struct {
	Interval       time.Duration // Time between refresh cycles
	YearsOfHistory int           // History window to refresh per key
}

// scheduledRefresher implements the Refresher interface. Each cycle it lists
// every persisted key and synchronously re-fetches the ones whose durable
// data is no longer fresh. Keys are processed sequentially: the upstream rate
// limit makes parallel refreshes pointless.
type scheduledRefresher struct {
	config     *ScheduledRefresherConfig
	store      store.Store
	resolver   ScoreResolver
	classifier *cache.Classifier
	ttlPolicy  cache.TTLPolicy
	clock      adapter.Clock
	running    atomic.Bool
	stopChan   chan struct{}
	stoppedCh  chan struct{}
}

// NewScheduledRefresher creates a new scheduled refresher
func NewScheduledRefresher(
	config *ScheduledRefresherConfig,
	st store.Store,
	resolver ScoreResolver,
	clock adapter.Clock,
	ttlPolicy cache.TTLPolicy,
) Refresher {
	if config.Interval <= 0 {
		config.Interval = time.Hour
	}
	if config.YearsOfHistory <= 0 {
		config.YearsOfHistory = 3
	}
	return &scheduledRefresher{
		config:     config,
		store:      st,
		resolver:   resolver,
		classifier: cache.NewClassifier(st, clock),
		ttlPolicy:  ttlPolicy,
		clock:      clock,
		stopChan:   make(chan struct{}),
		stoppedCh:  make(chan struct{}),
	}
}

// Name returns the refresher's name
func (r *scheduledRefresher) Name() string {
	return "scheduled-refresher"
}

// Start begins the refresher's main loop. Runs one cycle immediately, then
// once per interval until the context is canceled or stop is requested.
func (r *scheduledRefresher) Start(ctx context.Context) error {
	if !r.running.CompareAndSwap(false, true) {
		return fmt.Errorf("refresher already running")
	}
	defer func() {
		r.running.Store(false)
		close(r.stoppedCh) // Signal that we've stopped
	}()

	logger.InfoCtx(ctx, "Starting scheduled refresher",
		zap.Duration("interval", r.config.Interval),
		zap.Int("years_of_history", r.config.YearsOfHistory),
	)

	ticker := r.clock.NewTicker(r.config.Interval)
	defer ticker.Stop()

	if err := r.runCycle(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			logger.ErrorCtx(ctx, err)
		}
	}

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Scheduled refresher stopping due to context cancellation", zap.Error(ctx.Err()))
			return nil
		case <-r.stopChan:
			logger.InfoCtx(ctx, "Scheduled refresher stop requested")
			return nil
		case <-ticker.C:
			if err := r.runCycle(ctx); err != nil {
				if !errors.Is(err, context.Canceled) {
					logger.ErrorCtx(ctx, err)
				}
			}
		}
	}
}

// Stop gracefully stops the refresher with timeout support
func (r *scheduledRefresher) Stop(ctx context.Context) error {
	if !r.running.CompareAndSwap(true, false) {
		return nil // Already stopped
	}

	logger.InfoCtx(ctx, "Stopping scheduled refresher")

	close(r.stopChan)

	select {
	case <-r.stoppedCh:
		logger.InfoCtx(ctx, "Scheduled refresher stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Scheduled refresher stop interrupted by context timeout")
		return ctx.Err()
	}
}

// runCycle refreshes every key whose durable data is stale or expired
func (r *scheduledRefresher) runCycle(ctx context.Context) error {
	keys, err := r.store.ListKeys(ctx)
	if err != nil {
		return fmt.Errorf("failed to list keys for refresh cycle: %w", err)
	}

	ttl := r.ttlPolicy.TTLFor(r.clock.Now().UTC())

	refreshed := 0
	skipped := 0
	failed := 0
	for _, key := range keys {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.stopChan:
			return nil
		default:
		}

		freshness, _ := r.classifier.ClassifyKey(ctx, key, ttl)
		if freshness == domain.FreshnessFresh {
			skipped++
			continue
		}

		_, err := r.resolver.GetScore(ctx, key, domain.ResolveOptions{
			YearsOfHistory: r.config.YearsOfHistory,
			ForceRefresh:   true,
		})
		if err != nil {
			failed++
			logger.WarnCtx(ctx, "scheduled refresh failed for key",
				zap.String("key", key), zap.Error(err))
			continue
		}
		refreshed++
	}

	logger.InfoCtx(ctx, "Refresh cycle completed",
		zap.Int("total_keys", len(keys)),
		zap.Int("refreshed", refreshed),
		zap.Int("skipped_fresh", skipped),
		zap.Int("failed", failed),
	)
	return nil
}
