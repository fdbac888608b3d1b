package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/omnifolio/influence-indexer/internal/adapter"
	"github.com/omnifolio/influence-indexer/internal/cache"
	"github.com/omnifolio/influence-indexer/internal/config"
	"github.com/omnifolio/influence-indexer/internal/logger"
	"github.com/omnifolio/influence-indexer/internal/providers/lda"
	"github.com/omnifolio/influence-indexer/internal/ratelimit"
	"github.com/omnifolio/influence-indexer/internal/refresher"
	"github.com/omnifolio/influence-indexer/internal/registry"
	"github.com/omnifolio/influence-indexer/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadRefresherConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:     cfg.Debug,
		SentryDSN: cfg.SentryDSN,
		Tags: map[string]string{
			"service": "refresher",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Refresher")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	// Initialize store
	dataStore := store.NewPGStore(db)

	// Initialize adapters
	httpClient := adapter.NewHTTPClient(cfg.Upstream.HTTPTimeout)
	jsonAdapter := adapter.NewJSON()
	fsAdapter := adapter.NewFileSystem()
	clock := adapter.NewClock()

	// Initialize rate-limiting proxy
	rateLimitProxy, err := ratelimit.NewProxy(cfg.RateLimiter)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to initialize rate limiter", zap.Error(err))
	}
	defer rateLimitProxy.Close()

	// Initialize upstream client
	ldaClient := lda.NewClient(httpClient, rateLimitProxy, clock, jsonAdapter, cfg.Upstream.BaseURL, cfg.Upstream.APIKey, cfg.Upstream.PageSize)

	// Load issuer registry
	issuers, err := registry.LoadIssuers(fsAdapter, jsonAdapter, cfg.IssuerRegistryPath)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to load issuer registry, using key fallback",
			zap.String("path", cfg.IssuerRegistryPath), zap.Error(err))
		issuers = registry.NewStaticRegistry(nil)
	}

	// Initialize resolver
	ttlPolicy := cache.NewTTLPolicy(cfg.Cache)
	memory := cache.NewResultCache(cfg.Cache.MaxEntries, cfg.Cache.MaxTTL, clock)
	resolver := cache.NewResolver(dataStore, ldaClient, issuers, clock, ttlPolicy, memory, cfg.Upstream.FetchTimeout, cfg.Upstream.MaxResults)

	// Initialize scheduled refresher
	refresherConfig := &refresher.ScheduledRefresherConfig{
		Interval:       cfg.Refresher.Interval,
		YearsOfHistory: cfg.Refresher.YearsOfHistory,
	}
	scheduled := refresher.NewScheduledRefresher(refresherConfig, dataStore, resolver, clock, ttlPolicy)

	logger.InfoCtx(ctx, "Initialized scheduled refresher",
		zap.Duration("interval", cfg.Refresher.Interval),
		zap.Int("years_of_history", cfg.Refresher.YearsOfHistory),
	)

	// Start the refresher in a goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := scheduled.Start(ctx); err != nil {
			errChan <- err
		}
	}()

	// Wait for interrupt signal or error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errChan:
		logger.ErrorCtx(ctx, err)
	}

	// Cancel context to stop the refresher
	cancel()

	// Give the refresher time to shut down gracefully
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer shutdownCancel()

	if err := scheduled.Stop(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err)
	}

	logger.InfoCtx(shutdownCtx, "Refresher stopped")
}
