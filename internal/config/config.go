// Package config provides configuration management for the Prop Edge application.
package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App        AppConfig        `mapstructure:"app" validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database" validate:"required"`
	Weather    WeatherConfig    `mapstructure:"weather" validate:"required"`
	Odds       OddsConfig       `mapstructure:"odds" validate:"required"`
	Prediction PredictionConfig `mapstructure:"prediction" validate:"required"`
	Betting    BettingConfig    `mapstructure:"betting" validate:"required"`
	Scheduler  SchedulerConfig  `mapstructure:"scheduler" validate:"required"`
	Metrics    MetricsConfig    `mapstructure:"metrics" validate:"required"`
	Health     HealthConfig     `mapstructure:"health" validate:"required"`
	Features   FeaturesConfig   `mapstructure:"features" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host               string `mapstructure:"host" validate:"required"`
	Port               int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name               string `mapstructure:"name" validate:"required"`
	User               string `mapstructure:"user" validate:"required"`
	Password           string `mapstructure:"password" validate:"required"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"required,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"required,gt=0"`
}

// WeatherConfig represents the weather provider configuration
type WeatherConfig struct {
	APIURL            string `mapstructure:"api_url" validate:"required,url"`
	APIKey            string `mapstructure:"api_key" validate:"required"`
	TimeoutSeconds    int    `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	RetryAttempts     int    `mapstructure:"retry_attempts" validate:"required,gte=0"`
	CacheTTLSeconds   int    `mapstructure:"cache_ttl_seconds" validate:"required,gt=0"`
	RequestsPerSecond int    `mapstructure:"requests_per_second" validate:"required,gt=0"`
	MaxParallelFetch  int    `mapstructure:"max_parallel_fetch" validate:"required,gt=0"`
}

// OddsConfig represents the games/odds provider configuration
type OddsConfig struct {
	APIURL            string `mapstructure:"api_url" validate:"required,url"`
	APIKey            string `mapstructure:"api_key" validate:"required"`
	StreamURL         string `mapstructure:"stream_url"`
	TimeoutSeconds    int    `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	RetryAttempts     int    `mapstructure:"retry_attempts" validate:"required,gte=0"`
	RequestsPerSecond int    `mapstructure:"requests_per_second" validate:"required,gt=0"`
}

// PredictionConfig represents prediction pipeline configuration
type PredictionConfig struct {
	Season                  string `mapstructure:"season" validate:"required"`
	CacheTTLSeconds         int    `mapstructure:"cache_ttl_seconds" validate:"required,gt=0"`
	BaselineCacheTTLSeconds int    `mapstructure:"baseline_cache_ttl_seconds" validate:"required,gt=0"`
	RefereeSeed             int64  `mapstructure:"referee_seed"`
}

// BettingConfig represents slate evaluation and stake sizing configuration
type BettingConfig struct {
	Bankroll         float64 `mapstructure:"bankroll" validate:"required,gt=0"`
	TopPlays         int     `mapstructure:"top_plays" validate:"required,gt=0"`
	MinEdge          float64 `mapstructure:"min_edge" validate:"required,gte=0,lte=1"`
	MinConfidence    float64 `mapstructure:"min_confidence" validate:"required,gte=0,lte=1"`
	MaxParlays       int     `mapstructure:"max_parlays" validate:"required,gt=0"`
	MaxParlayLegs    int     `mapstructure:"max_parlay_legs" validate:"required,min=2,max=3"`
}

// SchedulerConfig represents the cron schedules for background jobs
type SchedulerConfig struct {
	BaselineRefresh string `mapstructure:"baseline_refresh" validate:"required,cron"`
	SlateRun        string `mapstructure:"slate_run" validate:"required,cron"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// HealthConfig represents the health endpoint configuration
type HealthConfig struct {
	Port int `mapstructure:"port" validate:"required,min=1,max=65535"`
}

// FeaturesConfig represents feature flags
type FeaturesConfig struct {
	WeatherEnabled  bool `mapstructure:"weather_enabled"`
	OddsFeedEnabled bool `mapstructure:"odds_feed_enabled"`
	ParlaysEnabled  bool `mapstructure:"parlays_enabled"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// PredictionCacheTTL returns the prediction cache TTL as a duration
func (c *Config) PredictionCacheTTL() time.Duration {
	return time.Duration(c.Prediction.CacheTTLSeconds) * time.Second
}

// BaselineCacheTTL returns the baseline cache TTL as a duration
func (c *Config) BaselineCacheTTL() time.Duration {
	return time.Duration(c.Prediction.BaselineCacheTTLSeconds) * time.Second
}

// WeatherCacheTTL returns the weather cache TTL as a duration
func (c *Config) WeatherCacheTTL() time.Duration {
	return time.Duration(c.Weather.CacheTTLSeconds) * time.Second
}
