package engine

import (
	"fmt"
	"math"

	"github.com/yourusername/propline/internal/config"
)

// Weight component names as they appear in weights_applied
const (
	ComponentSeasonBaseline    = "season_baseline"
	ComponentHistoricalMatchup = "historical_matchup"
	ComponentDefensiveTier     = "defensive_tier"
	ComponentRecentForm        = "recent_form"
	ComponentTrendValidation   = "trend_validation"
)

// weightSumTolerance is the floating tolerance for the sum-to-1.0 invariant
const weightSumTolerance = 1e-9

// Config holds the methodology parameters for the projection engine. It is
// copied into the engine at construction and never mutated afterwards.
type Config struct {
	SeasonBaselineWeight    float64
	HistoricalMatchupWeight float64
	DefensiveTierWeight     float64
	RecentFormWeight        float64
	TrendValidationWeight   float64

	RecentFormGames   int
	TrendGames        int
	MinSampleSize     int
	StdDevThreshold   float64
	MinEdgeThreshold  float64
	HighEdgeThreshold float64
	HighSampleSize    int
	TierStepPercent   float64
}

// DefaultConfig returns the documented methodology defaults
func DefaultConfig() Config {
	return Config{
		SeasonBaselineWeight:    0.55,
		HistoricalMatchupWeight: 0.15,
		DefensiveTierWeight:     0.12,
		RecentFormWeight:        0.13,
		TrendValidationWeight:   0.05,
		RecentFormGames:         5,
		TrendGames:              3,
		MinSampleSize:           5,
		StdDevThreshold:         2.0,
		MinEdgeThreshold:        5.0,
		HighEdgeThreshold:       8.0,
		HighSampleSize:          10,
		TierStepPercent:         0.04,
	}
}

// FromConfig converts app config to engine config
func FromConfig(cfg *config.AnalysisConfig) (Config, error) {
	if cfg == nil {
		return Config{}, fmt.Errorf("analysis config is required")
	}

	ec := Config{
		SeasonBaselineWeight:    cfg.Weights.SeasonBaseline,
		HistoricalMatchupWeight: cfg.Weights.HistoricalMatchup,
		DefensiveTierWeight:     cfg.Weights.DefensiveTier,
		RecentFormWeight:        cfg.Weights.RecentForm,
		TrendValidationWeight:   cfg.Weights.TrendValidation,
		RecentFormGames:         cfg.RecentFormGames,
		TrendGames:              cfg.TrendGames,
		MinSampleSize:           cfg.MinSampleSize,
		StdDevThreshold:         cfg.StdDevThreshold,
		MinEdgeThreshold:        cfg.MinEdgeThreshold,
		HighEdgeThreshold:       cfg.HighEdgeThreshold,
		HighSampleSize:          cfg.HighSampleSize,
		TierStepPercent:         cfg.TierStepPercent,
	}

	return ec, ec.Validate()
}

// Validate checks the config invariants. A weight vector that does not sum
// to 1.0 invalidates every subsequent computation, so this is fatal at
// construction time.
func (c Config) Validate() error {
	sum := c.SeasonBaselineWeight + c.HistoricalMatchupWeight + c.DefensiveTierWeight +
		c.RecentFormWeight + c.TrendValidationWeight
	if math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("%w: got %.10f", ErrInvalidWeights, sum)
	}
	if c.RecentFormGames <= 0 {
		return fmt.Errorf("recent_form_games must be positive, got %d", c.RecentFormGames)
	}
	if c.TrendGames <= 0 {
		return fmt.Errorf("trend_validation_games must be positive, got %d", c.TrendGames)
	}
	if c.MinSampleSize <= 0 {
		return fmt.Errorf("min_sample_size must be positive, got %d", c.MinSampleSize)
	}
	if c.StdDevThreshold <= 0 {
		return fmt.Errorf("std_dev_threshold must be positive, got %f", c.StdDevThreshold)
	}
	if c.MinEdgeThreshold < 0 {
		return fmt.Errorf("min_edge_threshold cannot be negative, got %f", c.MinEdgeThreshold)
	}
	return nil
}

// weights returns the configured weight vector keyed by component name
func (c Config) weights() map[string]float64 {
	return map[string]float64{
		ComponentSeasonBaseline:    c.SeasonBaselineWeight,
		ComponentHistoricalMatchup: c.HistoricalMatchupWeight,
		ComponentDefensiveTier:     c.DefensiveTierWeight,
		ComponentRecentForm:        c.RecentFormWeight,
		ComponentTrendValidation:   c.TrendValidationWeight,
	}
}
