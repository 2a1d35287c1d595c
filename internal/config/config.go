// Package config is the viper-backed implementation of topic.Config,
// reading from environment variables prefixed TOPICSUB_ and an optional
// config file, layering env vars over a file over defaults.
package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const envPrefix = "TOPICSUB"

// Config is the concrete, viper-backed topic.Config.
type Config struct {
	v *viper.Viper
}

// Load builds a Config from configFile (optional; "" skips file loading)
// layered under environment variables and defaults.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("check_topic_exists", true)
	v.SetDefault("max_page_size", 1000)
	v.SetDefault("listener_buffer_size", 256)
	v.SetDefault("metrics_enabled", true)
	v.SetDefault("storage_retry_attempts", 5)
	v.SetDefault("historical_pages_per_second", 50)
	v.SetDefault("status_report_schedule", "@every 1m")
	v.SetDefault("database_url", "postgres://localhost:5432/mirror_node?sslmode=disable")
	v.SetDefault("grpc_listen_address", ":5600")
	v.SetDefault("metrics_listen_address", ":9090")

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(err, "read config file")
		}
	}

	return &Config{v: v}, nil
}

func (c *Config) CheckTopicExists() bool    { return c.v.GetBool("check_topic_exists") }
func (c *Config) MaxPageSize() int          { return c.v.GetInt("max_page_size") }
func (c *Config) ListenerBufferSize() int   { return c.v.GetInt("listener_buffer_size") }
func (c *Config) MetricsEnabled() bool      { return c.v.GetBool("metrics_enabled") }
func (c *Config) StorageRetryAttempts() int { return c.v.GetInt("storage_retry_attempts") }

// StatusReportSchedule is the cron spec the periodic status reporter runs
// on; not part of topic.Config since it's a metrics-package-only concern.
func (c *Config) StatusReportSchedule() string { return c.v.GetString("status_report_schedule") }

// DatabaseURL is the Postgres DSN shared by gorm, sqlx, and the live bus's
// lib/pq listener.
func (c *Config) DatabaseURL() string { return c.v.GetString("database_url") }

// HistoricalPagesPerSecond rate-limits the throttled primary historical
// drain; gap backfills bypass this via the sqlx fast path.
func (c *Config) HistoricalPagesPerSecond() int64 {
	return c.v.GetInt64("historical_pages_per_second")
}

// GRPCListenAddress is the address the ConsensusService listens on.
func (c *Config) GRPCListenAddress() string { return c.v.GetString("grpc_listen_address") }

// MetricsListenAddress is the address the Prometheus /metrics handler
// listens on.
func (c *Config) MetricsListenAddress() string { return c.v.GetString("metrics_listen_address") }
