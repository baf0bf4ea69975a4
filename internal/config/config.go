// Package config provides configuration management for the Propline service.
package config

import (
	"fmt"
)

// Config represents the complete application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database" validate:"required"`
	Analysis  AnalysisConfig  `mapstructure:"analysis" validate:"required"`
	WinProb   WinProbConfig   `mapstructure:"win_probability" validate:"required"`
	StatsFeed StatsFeedConfig `mapstructure:"stats_feed" validate:"required"`
	API       APIConfig       `mapstructure:"api" validate:"required"`
	Metrics   MetricsConfig   `mapstructure:"metrics" validate:"required"`
	Learning  LearningConfig  `mapstructure:"learning" validate:"required"`
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

// WeightingConfig holds the weight vector of the projection methodology.
// The full-season baseline is the primary anchor; the weights must sum to
// 1.0 and are loaded once, never mutated per-request.
type WeightingConfig struct {
	SeasonBaseline    float64 `mapstructure:"season_baseline" validate:"required,gt=0,lt=1"`
	HistoricalMatchup float64 `mapstructure:"historical_matchup" validate:"gte=0,lt=1"`
	DefensiveTier     float64 `mapstructure:"defensive_tier" validate:"gte=0,lt=1"`
	RecentForm        float64 `mapstructure:"recent_form" validate:"gte=0,lt=1"`
	TrendValidation   float64 `mapstructure:"trend_validation" validate:"gte=0,lt=1"`
}

// Sum returns the total configured weight
func (w WeightingConfig) Sum() float64 {
	return w.SeasonBaseline + w.HistoricalMatchup + w.DefensiveTier + w.RecentForm + w.TrendValidation
}

// AnalysisConfig represents the projection engine parameters
type AnalysisConfig struct {
	Weights           WeightingConfig `mapstructure:"weights" validate:"required"`
	RecentFormGames   int             `mapstructure:"recent_form_games" validate:"required,gt=0"`
	TrendGames        int             `mapstructure:"trend_validation_games" validate:"required,gt=0"`
	MinSampleSize     int             `mapstructure:"min_sample_size" validate:"required,gt=0"`
	StdDevThreshold   float64         `mapstructure:"std_dev_threshold" validate:"required,gt=0"`
	MinEdgeThreshold  float64         `mapstructure:"min_edge_threshold" validate:"gte=0"`
	HighEdgeThreshold float64         `mapstructure:"high_edge_threshold" validate:"gte=0"`
	HighSampleSize    int             `mapstructure:"high_sample_size" validate:"required,gt=0"`
	TierStepPercent   float64         `mapstructure:"tier_step_percent" validate:"gte=0,lte=0.25"`
}

// WinProbConfig represents the external win-probability service configuration
type WinProbConfig struct {
	URL                   string `mapstructure:"url" validate:"required,url"`
	RequestTimeoutSeconds int    `mapstructure:"request_timeout_seconds" validate:"required,gt=0"`
	CacheTTLSeconds       int    `mapstructure:"cache_ttl_seconds" validate:"required,gt=0"`
	CacheMaxSize          int    `mapstructure:"cache_max_size" validate:"required,gt=0"`
}

// StatsFeedConfig represents stats feed ingestion configuration
type StatsFeedConfig struct {
	Sources  []DataSourceConfig `mapstructure:"sources" validate:"required,min=1"`
	Schedule ScheduleConfig     `mapstructure:"schedule" validate:"required"`
}

// DataSourceConfig represents a single stats feed source
type DataSourceConfig struct {
	Name      string  `mapstructure:"name" validate:"required"`
	BaseURL   string  `mapstructure:"base_url" validate:"required,url"`
	Enabled   bool    `mapstructure:"enabled"`
	APIKey    string  `mapstructure:"api_key"`
	RateLimit float64 `mapstructure:"rate_limit" validate:"omitempty,gt=0"`
}

// ScheduleConfig represents scheduled job cron expressions
type ScheduleConfig struct {
	FeedSync           string `mapstructure:"feed_sync" validate:"required"`
	AccuracyEvaluation string `mapstructure:"accuracy_evaluation" validate:"required"`
}

// APIConfig represents the HTTP API configuration
type APIConfig struct {
	Port           int      `mapstructure:"port" validate:"required,min=1,max=65535"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	HealthPort     int      `mapstructure:"health_port" validate:"required,min=1,max=65535"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// LearningConfig represents the continuous-learning loop configuration
type LearningConfig struct {
	AccuracyThreshold     float64 `mapstructure:"accuracy_threshold" validate:"required,gt=0,lte=100"`
	MinPredictions        int     `mapstructure:"min_predictions" validate:"required,gt=0"`
	ErrorTolerancePercent float64 `mapstructure:"error_tolerance_percent" validate:"required,gt=0"`
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
