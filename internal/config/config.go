package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`     // Maximum number of open connections to the database
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`     // Maximum number of idle connections in the pool
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // Maximum amount of time a connection may be reused
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // Maximum amount of time a connection may be idle
}

// UpstreamConfig holds Senate LDA API configuration
type UpstreamConfig struct {
	BaseURL string `mapstructure:"base_url"`
	// APIKey is optional; anonymous access is allowed at a lower rate limit
	APIKey string `mapstructure:"api_key"`
	// FetchTimeout bounds one full fetch (all pages) for a key
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
	// HTTPTimeout bounds a single HTTP request
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
	// PageSize is the page size requested from the filings endpoint
	PageSize int `mapstructure:"page_size"`
	// MaxResults caps the number of filings fetched per key
	MaxResults int `mapstructure:"max_results"`
}

// CacheConfig holds memory cache and TTL policy configuration
type CacheConfig struct {
	// MaxEntries bounds the process-local result cache
	MaxEntries int `mapstructure:"max_entries"`
	// WeekdayTTL is the durable-cache TTL resolved on weekdays
	WeekdayTTL time.Duration `mapstructure:"weekday_ttl"`
	// WeekendTTL is the durable-cache TTL resolved on weekends
	WeekendTTL time.Duration `mapstructure:"weekend_ttl"`
	// MaxTTL is the absolute TTL cap
	MaxTTL time.Duration `mapstructure:"max_ttl"`
}

// RateLimitConfig holds rate limiting configuration for a single provider
type RateLimitConfig struct {
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
	MaxQueueTime      time.Duration `mapstructure:"max_queue_time"`
}

// RateLimiterConfig holds configuration for the rate-limiting proxy
type RateLimiterConfig struct {
	Providers    map[string]RateLimitConfig `mapstructure:"providers"`
	MaxWorkers   int                        `mapstructure:"max_workers"`
	MaxQueueSize int                        `mapstructure:"max_queue_size"`
}

// ResolverServiceConfig holds configuration for the influence resolver binary
type ResolverServiceConfig struct {
	BaseConfig  `mapstructure:",squash"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Upstream    UpstreamConfig    `mapstructure:"upstream"`
	Cache       CacheConfig       `mapstructure:"cache"`
	RateLimiter RateLimiterConfig `mapstructure:"rate_limiter"`
	// IssuerRegistryPath points at the ticker -> client name registry file
	IssuerRegistryPath string `mapstructure:"issuer_registry_path"`
}

// RefresherSettings holds the sweep settings for the background refresher
type RefresherSettings struct {
	// Interval is how often the refresher sweeps known keys
	Interval time.Duration `mapstructure:"interval"`
	// YearsOfHistory is the history window refreshed per key
	YearsOfHistory int `mapstructure:"years_of_history"`
}

// RefresherConfig holds configuration for the background refresher binary
type RefresherConfig struct {
	ResolverServiceConfig `mapstructure:",squash"`
	Refresher             RefresherSettings `mapstructure:"refresher"`
}

// LoadResolverConfig loads configuration for the influence binary
func LoadResolverConfig(configFile string, envPath string) (*ResolverServiceConfig, error) {
	v := configureViper("influence", configFile, envPath)
	setResolverDefaults(v)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg ResolverServiceConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateResolverConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadRefresherConfig loads configuration for the refresher binary
func LoadRefresherConfig(configFile string, envPath string) (*RefresherConfig, error) {
	v := configureViper("refresher", configFile, envPath)
	setResolverDefaults(v)
	v.SetDefault("refresher.interval", "1h")
	v.SetDefault("refresher.years_of_history", 3)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg RefresherConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateResolverConfig(&cfg.ResolverServiceConfig); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setResolverDefaults sets the defaults shared by every binary
func setResolverDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "5m")
	v.SetDefault("database.conn_max_idle_time", "10m")
	v.SetDefault("upstream.base_url", "https://lda.senate.gov/api/v1")
	v.SetDefault("upstream.fetch_timeout", "2m")
	v.SetDefault("upstream.http_timeout", "30s")
	v.SetDefault("upstream.page_size", 25)
	v.SetDefault("upstream.max_results", 500)
	v.SetDefault("cache.max_entries", 512)
	v.SetDefault("cache.weekday_ttl", "12h")
	v.SetDefault("cache.weekend_ttl", "48h")
	v.SetDefault("cache.max_ttl", "72h")
	// Anonymous LDA access allows 15 requests/minute
	v.SetDefault("rate_limiter.providers.lda.requests_per_second", 0.25)
	v.SetDefault("rate_limiter.providers.lda.burst", 1)
	v.SetDefault("rate_limiter.providers.lda.max_queue_time", "5m")
	v.SetDefault("rate_limiter.max_workers", 10)
	v.SetDefault("rate_limiter.max_queue_size", 1000)
	v.SetDefault("issuer_registry_path", "config/issuers.json")
}

// readConfig reads the config file, tolerating a missing file so that
// environment-only deployments work
func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found, use environment variables
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// validateResolverConfig validates required fields
func validateResolverConfig(cfg *ResolverServiceConfig) error {
	if cfg.Database.Host == "" {
		return errors.New("database.host is required")
	}
	if cfg.Database.DBName == "" {
		return errors.New("database.dbname is required")
	}
	if cfg.Upstream.BaseURL == "" {
		return errors.New("upstream.base_url is required")
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search for config.yaml in multiple locations:
		// 1. Current directory
		v.AddConfigPath(".")
		// 2. Service-specific directory (e.g., cmd/influence/)
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		// 3. Config directory
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("OMNIFOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// Upstream
		"upstream.base_url",
		"upstream.api_key",
		"upstream.fetch_timeout",
		"upstream.http_timeout",
		"upstream.page_size",
		"upstream.max_results",
		// Cache
		"cache.max_entries",
		"cache.weekday_ttl",
		"cache.weekend_ttl",
		"cache.max_ttl",
		// Rate limiter
		"rate_limiter.providers.lda.requests_per_second",
		"rate_limiter.providers.lda.burst",
		"rate_limiter.providers.lda.max_queue_time",
		"rate_limiter.max_workers",
		"rate_limiter.max_queue_size",
		// Registry
		"issuer_registry_path",
		// Refresher
		"refresher.interval",
		"refresher.years_of_history",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	// Default to config directory
	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
