package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/omnifolio/influence-indexer/internal/adapter"
	"github.com/omnifolio/influence-indexer/internal/cache"
	"github.com/omnifolio/influence-indexer/internal/config"
	"github.com/omnifolio/influence-indexer/internal/domain"
	"github.com/omnifolio/influence-indexer/internal/logger"
	"github.com/omnifolio/influence-indexer/internal/providers/lda"
	"github.com/omnifolio/influence-indexer/internal/ratelimit"
	"github.com/omnifolio/influence-indexer/internal/registry"
	"github.com/omnifolio/influence-indexer/internal/store"
)

var (
	configFile        = flag.String("config", "", "Path to configuration file")
	envPath           = flag.String("env", "config/", "Path to environment files")
	yearsOfHistory    = flag.Int("years", 3, "Years of filing history to consider")
	forceRefresh      = flag.Bool("force", false, "Bypass caches and fetch from upstream")
	includeActivities = flag.Bool("activities", false, "Include flattened activity records in the output")
)

func main() {
	flag.Parse()

	keys := flag.Args()
	if len(keys) == 0 {
		fmt.Fprintln(os.Stderr, "usage: influence [flags] KEY [KEY...]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadResolverConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:     cfg.Debug,
		SentryDSN: cfg.SentryDSN,
		Tags: map[string]string{
			"service": "influence",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}

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

	// Load issuer registry; fall back to an empty registry so unregistered
	// tickers still resolve by their own name
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

	opts := domain.ResolveOptions{
		YearsOfHistory:    *yearsOfHistory,
		ForceRefresh:      *forceRefresh,
		IncludeActivities: *includeActivities,
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	if len(keys) == 1 {
		result, err := resolver.GetScore(ctx, keys[0], opts)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to resolve score", zap.String("key", keys[0]), zap.Error(err))
		}
		if err := encoder.Encode(result); err != nil {
			logger.FatalCtx(ctx, "Failed to encode result", zap.Error(err))
		}
		return
	}

	results := resolver.GetScoresBulk(ctx, keys, opts)
	if err := encoder.Encode(results); err != nil {
		logger.FatalCtx(ctx, "Failed to encode results", zap.Error(err))
	}
}
