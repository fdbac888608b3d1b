package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omnifolio/influence-indexer/internal/config"
)

func TestLoadResolverConfigFromEnv(t *testing.T) {
	t.Setenv("OMNIFOLIO_DATABASE_HOST", "localhost")
	t.Setenv("OMNIFOLIO_DATABASE_DBNAME", "influence")
	t.Setenv("OMNIFOLIO_UPSTREAM_API_KEY", "secret-key")

	cfg, err := config.LoadResolverConfig("", "")
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "influence", cfg.Database.DBName)
	assert.Equal(t, "secret-key", cfg.Upstream.APIKey)

	// Defaults
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "https://lda.senate.gov/api/v1", cfg.Upstream.BaseURL)
	assert.Equal(t, 2*time.Minute, cfg.Upstream.FetchTimeout)
	assert.Equal(t, 25, cfg.Upstream.PageSize)
	assert.Equal(t, 500, cfg.Upstream.MaxResults)
	assert.Equal(t, 512, cfg.Cache.MaxEntries)
	assert.Equal(t, 12*time.Hour, cfg.Cache.WeekdayTTL)
	assert.Equal(t, 48*time.Hour, cfg.Cache.WeekendTTL)
	assert.Equal(t, 72*time.Hour, cfg.Cache.MaxTTL)
	assert.Equal(t, "config/issuers.json", cfg.IssuerRegistryPath)

	lda, ok := cfg.RateLimiter.Providers["lda"]
	require.True(t, ok)
	assert.Equal(t, 0.25, lda.RequestsPerSecond)
	assert.Equal(t, 1, lda.Burst)
}

func TestLoadResolverConfigRequiresDatabase(t *testing.T) {
	t.Setenv("OMNIFOLIO_DATABASE_HOST", "")
	t.Setenv("OMNIFOLIO_DATABASE_DBNAME", "")

	_, err := config.LoadResolverConfig("", "")
	assert.Error(t, err)
}

func TestLoadRefresherConfigDefaults(t *testing.T) {
	t.Setenv("OMNIFOLIO_DATABASE_HOST", "localhost")
	t.Setenv("OMNIFOLIO_DATABASE_DBNAME", "influence")

	cfg, err := config.LoadRefresherConfig("", "")
	require.NoError(t, err)

	assert.Equal(t, time.Hour, cfg.Refresher.Interval)
	assert.Equal(t, 3, cfg.Refresher.YearsOfHistory)
}

func TestRefresherConfigOverrides(t *testing.T) {
	t.Setenv("OMNIFOLIO_DATABASE_HOST", "localhost")
	t.Setenv("OMNIFOLIO_DATABASE_DBNAME", "influence")
	t.Setenv("OMNIFOLIO_REFRESHER_INTERVAL", "30m")
	t.Setenv("OMNIFOLIO_REFRESHER_YEARS_OF_HISTORY", "5")

	cfg, err := config.LoadRefresherConfig("", "")
	require.NoError(t, err)

	assert.Equal(t, 30*time.Minute, cfg.Refresher.Interval)
	assert.Equal(t, 5, cfg.Refresher.YearsOfHistory)
}

func TestDatabaseDSN(t *testing.T) {
	db := config.DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "secret",
		DBName:   "influence",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=secret dbname=influence sslmode=disable",
		db.DSN(),
	)
}
