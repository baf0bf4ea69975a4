package engine

import (
	"fmt"

	"github.com/yourusername/propline/internal/models"
)

type component struct {
	name      string
	value     float64
	available bool
}

// Synthesize combines the baseline anchor, historical-matchup average,
// defensive-tier adjustment, outlier-corrected recent form, and trend
// correction into one projection. Weights of unavailable components are
// redistributed proportionally across the remaining ones so the applied
// weight always sums to 1.0; weight is never silently dropped.
func Synthesize(cfg Config, baseline models.BaselineStatistics, form models.RecentForm, trend models.TrendSignal, matchupAvg *float64, opponentTier *int) (float64, map[string]float64, error) {
	tierValue, tierAvailable, err := defensiveTierValue(cfg, baseline, opponentTier)
	if err != nil {
		return 0, nil, err
	}

	matchupValue := 0.0
	matchupAvailable := matchupAvg != nil
	if matchupAvailable {
		matchupValue = *matchupAvg
	}

	// Fixed evaluation order keeps the output byte-identical across runs.
	components := []component{
		{ComponentSeasonBaseline, baseline.Mean, true},
		{ComponentHistoricalMatchup, matchupValue, matchupAvailable},
		{ComponentDefensiveTier, tierValue, tierAvailable},
		{ComponentRecentForm, form.RecentValueUsed, true},
		{ComponentTrendValidation, trend.Value, true},
	}

	configured := cfg.weights()
	availableWeight := 0.0
	for _, c := range components {
		if c.available {
			availableWeight += configured[c.name]
		}
	}

	projection := 0.0
	applied := make(map[string]float64, len(components))
	for _, c := range components {
		if !c.available {
			applied[c.name] = 0
			continue
		}
		w := configured[c.name] / availableWeight
		applied[c.name] = w
		projection += w * c.value
	}

	return projection, applied, nil
}

// defensiveTierValue maps the opponent tier ordinal to a multiplicative
// adjustment of the baseline mean. Tier 1 (toughest defense) depresses the
// projection, tier 5 (softest) inflates it, tier 3 is neutral.
func defensiveTierValue(cfg Config, baseline models.BaselineStatistics, opponentTier *int) (float64, bool, error) {
	if opponentTier == nil {
		return 0, false, nil
	}
	tier := *opponentTier
	if tier < 1 || tier > 5 {
		return 0, false, fmt.Errorf("%w: got %d", ErrInvalidTier, tier)
	}
	multiplier := 1.0 + cfg.TierStepPercent*float64(tier-3)
	return baseline.Mean * multiplier, true, nil
}
