package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitebuilder/internal/quota"
	"git.home.luguber.info/inful/sitebuilder/internal/retry"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, ":8080", cfg.Server.ListenAddr)
	assert.Equal(t, "sitebuilder.app", cfg.Server.BaseDomain)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NoError(t, cfg.Validate())

	ttl, err := cfg.CacheTTL()
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, ttl)

	interval, err := cfg.DomainCheckInterval()
	require.NoError(t, err)
	assert.Equal(t, time.Hour, interval)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
server:
  listen_addr: ":9000"
  base_domain: example.app
cache:
  redis_addr: localhost:6379
  ttl: 1h
events:
  nats_url: nats://localhost:4222
logging:
  level: debug
  format: json
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.ListenAddr)
	assert.Equal(t, "example.app", cfg.Server.BaseDomain)
	assert.Equal(t, "localhost:6379", cfg.Cache.RedisAddr)
	assert.Equal(t, "nats://localhost:4222", cfg.Events.NATSURL)
	assert.Equal(t, "sitebuilder.db", cfg.Storage.DatabasePath, "unset fields keep defaults")

	ttl, err := cfg.CacheTTL()
	require.NoError(t, err)
	assert.Equal(t, time.Hour, ttl)
}

func TestLoadExpandsEnvironment(t *testing.T) {
	t.Setenv("SB_TEST_REDIS", "redis.internal:6379")
	path := writeConfig(t, "cache:\n  redis_addr: ${SB_TEST_REDIS}\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "redis.internal:6379", cfg.Cache.RedisAddr)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	path := writeConfig(t, "cache:\n  ttl: soon\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }},
		{"negative ttl", func(c *Config) { c.Cache.TTL = "-5m" }},
		{"tight domain check", func(c *Config) { c.Daemon.DomainCheckInterval = "1s" }},
		{"bad retry duration", func(c *Config) { c.Retry.Initial = "fast" }},
		{"unknown quota plan", func(c *Config) { c.Quota.Plan = "platinum" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestRetryPolicy(t *testing.T) {
	cfg := Default()
	p, err := cfg.RetryPolicy()
	require.NoError(t, err)
	assert.Equal(t, retry.DefaultPolicy(), p)

	cfg.Retry = RetryConfig{Mode: retry.BackoffExponential, Initial: "2s", Max: "1m", MaxRetries: 5}
	p, err = cfg.RetryPolicy()
	require.NoError(t, err)
	assert.Equal(t, retry.BackoffExponential, p.Mode)
	assert.Equal(t, 2*time.Second, p.Initial)
	assert.Equal(t, 5, p.MaxRetries)
}

func TestNewLogger(t *testing.T) {
	cfg := Default()
	cfg.Logging.Format = "json"
	var buf bytes.Buffer
	logger := cfg.NewLogger(&buf)
	logger.Info("hello")
	assert.Contains(t, buf.String(), `"msg":"hello"`)

	cfg.Logging.Level = "warn"
	buf.Reset()
	cfg.NewLogger(&buf).Info("quiet")
	assert.Empty(t, buf.String())
}

func TestPlanLimits(t *testing.T) {
	cfg := Default()
	assert.Equal(t, quota.Limits{}, cfg.PlanLimits(), "no plan means unlimited")

	cfg.Quota.Plan = "free"
	require.NoError(t, cfg.Validate())
	assert.Equal(t, quota.PlanLimits["free"], cfg.PlanLimits())
}
