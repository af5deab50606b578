// Package config loads builder configuration from a YAML file with
// environment overrides. A .env file in the working directory is loaded
// first (never overriding real environment), then ${VAR} references in the
// YAML are expanded before parsing.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitebuilder/internal/quota"
	"git.home.luguber.info/inful/sitebuilder/internal/retry"
)

// Config is the root application configuration. Durations are YAML strings
// in time.ParseDuration syntax ("30s", "1h").
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Cache   CacheConfig   `yaml:"cache"`
	Events  EventsConfig  `yaml:"events"`
	Retry   RetryConfig   `yaml:"retry"`
	Quota   QuotaConfig   `yaml:"quota"`
	Daemon  DaemonConfig  `yaml:"daemon"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig controls the HTTP surface.
type ServerConfig struct {
	ListenAddr string `yaml:"listen_addr,omitempty"`
	// BaseDomain is the suffix published subdomain sites are served
	// under, e.g. "sitebuilder.app".
	BaseDomain string `yaml:"base_domain,omitempty"`
}

// StorageConfig locates the persistent stores.
type StorageConfig struct {
	DatabasePath  string `yaml:"database_path,omitempty"`
	AssetsDir     string `yaml:"assets_dir,omitempty"`
	AssetsBaseURL string `yaml:"assets_base_url,omitempty"`
	SnapshotDir   string `yaml:"snapshot_dir,omitempty"`
}

// CacheConfig controls the public render cache. An empty RedisAddr
// disables caching.
type CacheConfig struct {
	RedisAddr string `yaml:"redis_addr,omitempty"`
	TTL       string `yaml:"ttl,omitempty"`
}

// EventsConfig controls change notifications. An empty NATSURL disables
// publishing.
type EventsConfig struct {
	NATSURL string `yaml:"nats_url,omitempty"`
}

// RetryConfig feeds the save-retry policy.
type RetryConfig struct {
	Mode       retry.BackoffMode `yaml:"mode,omitempty"` // fixed|linear|exponential
	Initial    string            `yaml:"initial,omitempty"`
	Max        string            `yaml:"max,omitempty"`
	MaxRetries int               `yaml:"max_retries,omitempty"`
}

// QuotaConfig selects the plan limits applied to structural operations and
// uploads. An empty plan is unlimited.
type QuotaConfig struct {
	Plan string `yaml:"plan,omitempty"` // free|pro|enterprise
}

// DaemonConfig controls background jobs.
type DaemonConfig struct {
	// DomainCheckInterval is how often provisioned custom domains are
	// re-verified against the provisioner.
	DomainCheckInterval string `yaml:"domain_check_interval,omitempty"`
	// WatchAssets enables the filesystem watcher that invalidates the
	// render cache when asset files change.
	WatchAssets bool `yaml:"watch_assets,omitempty"`
}

// LoggingConfig controls slog output.
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty"`  // debug|info|warn|error
	Format string `yaml:"format,omitempty"` // text|json
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads the config file at path, expands environment references and
// fills in defaults. Pass an empty path for pure defaults.
func Load(path string) (*Config, error) {
	// .env never overrides the real environment
	_ = godotenv.Load()

	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path) // #nosec G304 - path comes from the operator
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = ":8080"
	}
	if c.Server.BaseDomain == "" {
		c.Server.BaseDomain = "sitebuilder.app"
	}
	if c.Storage.DatabasePath == "" {
		c.Storage.DatabasePath = "sitebuilder.db"
	}
	if c.Storage.AssetsDir == "" {
		c.Storage.AssetsDir = "assets"
	}
	if c.Storage.AssetsBaseURL == "" {
		c.Storage.AssetsBaseURL = "/assets"
	}
	if c.Storage.SnapshotDir == "" {
		c.Storage.SnapshotDir = "snapshots"
	}
	if c.Cache.TTL == "" {
		c.Cache.TTL = "24h"
	}
	if c.Daemon.DomainCheckInterval == "" {
		c.Daemon.DomainCheckInterval = "1h"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}

// Validate rejects configurations that cannot be run.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid logging format %q", c.Logging.Format)
	}

	ttl, err := c.CacheTTL()
	if err != nil {
		return err
	}
	if ttl < 0 {
		return fmt.Errorf("cache ttl cannot be negative")
	}

	interval, err := c.DomainCheckInterval()
	if err != nil {
		return err
	}
	if interval < time.Minute {
		return fmt.Errorf("domain check interval must be at least one minute")
	}

	switch c.Quota.Plan {
	case "", "free", "pro", "enterprise":
	default:
		return fmt.Errorf("unknown quota plan %q", c.Quota.Plan)
	}

	policy, err := c.RetryPolicy()
	if err != nil {
		return err
	}
	return policy.Validate()
}

// PlanLimits returns the quota limits of the configured plan.
func (c *Config) PlanLimits() quota.Limits {
	return quota.ForPlan(c.Quota.Plan)
}

// CacheTTL returns the parsed render-cache TTL.
func (c *Config) CacheTTL() (time.Duration, error) {
	return parseDuration("cache.ttl", c.Cache.TTL)
}

// DomainCheckInterval returns the parsed re-verification interval.
func (c *Config) DomainCheckInterval() (time.Duration, error) {
	return parseDuration("daemon.domain_check_interval", c.Daemon.DomainCheckInterval)
}

// RetryPolicy builds the save-retry policy from the config, falling back to
// policy defaults for unset fields.
func (c *Config) RetryPolicy() (retry.Policy, error) {
	var initial, max time.Duration
	var err error
	if c.Retry.Initial != "" {
		if initial, err = parseDuration("retry.initial", c.Retry.Initial); err != nil {
			return retry.Policy{}, err
		}
	}
	if c.Retry.Max != "" {
		if max, err = parseDuration("retry.max", c.Retry.Max); err != nil {
			return retry.Policy{}, err
		}
	}
	maxRetries := c.Retry.MaxRetries
	if maxRetries == 0 {
		maxRetries = -1 // unset, use policy default
	}
	return retry.NewPolicy(c.Retry.Mode, initial, max, maxRetries), nil
}

func parseDuration(field, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %q", field, value)
	}
	return d, nil
}
