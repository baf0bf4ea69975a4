// Package config provides configuration management for the Propline service.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load reads and parses the configuration from file and environment variables
// It expands environment variable placeholders in the YAML file (${VAR_NAME})
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the configuration (${VAR} syntax)
	expanded := os.ExpandEnv(string(data))

	v := viper.New()
	v.SetConfigType("yaml")

	if err := v.ReadConfig(bytes.NewBuffer([]byte(expanded))); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	v.SetEnvPrefix("PROPLINE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// LoadWithDefaults loads configuration with default values for optional
// fields. The config file may be absent; defaults and environment variables
// then carry the whole configuration.
func LoadWithDefaults(configPath string) (*Config, error) {
	v := viper.New()

	if configPath == "" {
		configPath = "config/config.yaml"
	}

	v.SetConfigType("yaml")
	v.SetEnvPrefix("PROPLINE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("analysis.weights.season_baseline", 0.55)
	v.SetDefault("analysis.weights.historical_matchup", 0.15)
	v.SetDefault("analysis.weights.defensive_tier", 0.12)
	v.SetDefault("analysis.weights.recent_form", 0.13)
	v.SetDefault("analysis.weights.trend_validation", 0.05)
	v.SetDefault("analysis.recent_form_games", 5)
	v.SetDefault("analysis.trend_validation_games", 3)
	v.SetDefault("analysis.min_sample_size", 5)
	v.SetDefault("analysis.std_dev_threshold", 2.0)
	v.SetDefault("analysis.min_edge_threshold", 5.0)
	v.SetDefault("analysis.high_edge_threshold", 8.0)
	v.SetDefault("analysis.high_sample_size", 10)
	v.SetDefault("analysis.tier_step_percent", 0.04)

	if data, err := os.ReadFile(configPath); err == nil {
		expanded := os.ExpandEnv(string(data))
		if err := v.ReadConfig(bytes.NewBuffer([]byte(expanded))); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// ReloadFromEnv reloads the configuration from the path named by
// PROPLINE_CONFIG_PATH. The loaded config replaces the target atomically as
// a whole value, never field by field, so a batch in flight cannot observe
// half-updated weights.
func ReloadFromEnv(cfg *Config) error {
	if envPath := os.Getenv("PROPLINE_CONFIG_PATH"); envPath != "" {
		newCfg, err := Load(envPath)
		if err != nil {
			return err
		}
		if err := Validate(newCfg); err != nil {
			return err
		}
		*cfg = *newCfg
	}

	return nil
}
