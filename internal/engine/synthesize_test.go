package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/propline/internal/models"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

// TestSynthesizeAllComponents tests the weighted blend with every component
// available
func TestSynthesizeAllComponents(t *testing.T) {
	cfg := DefaultConfig()
	baseline := models.BaselineStatistics{Mean: 20, StdDev: 2, SampleSize: 10}
	form := models.RecentForm{RecentMean: 22, RecentValueUsed: 22}
	trend := models.TrendSignal{Direction: models.TrendIncreasing, Slope: 0.5, Value: 20.5}

	projection, applied, err := Synthesize(cfg, baseline, form, trend, floatPtr(24), intPtr(4))
	require.NoError(t, err)

	// tier 4 against the default step lifts the mean by 4 percent
	expected := 0.55*20 + 0.15*24 + 0.12*20.8 + 0.13*22 + 0.05*20.5
	assert.InDelta(t, expected, projection, 1e-9)

	sum := 0.0
	for _, w := range applied {
		sum += w
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
	assert.InDelta(t, 0.55, applied[ComponentSeasonBaseline], 1e-9)
	assert.InDelta(t, 0.15, applied[ComponentHistoricalMatchup], 1e-9)
}

// TestSynthesizeRedistribution tests proportional redistribution when the
// matchup and tier components are unavailable
func TestSynthesizeRedistribution(t *testing.T) {
	cfg := DefaultConfig()
	baseline := models.BaselineStatistics{Mean: 20, StdDev: 2, SampleSize: 10}
	form := models.RecentForm{RecentMean: 22, RecentValueUsed: 22}
	trend := models.TrendSignal{Value: 20.5}

	projection, applied, err := Synthesize(cfg, baseline, form, trend, nil, nil)
	require.NoError(t, err)

	// remaining weight 0.73 is scaled back up to 1.0
	assert.InDelta(t, 0.55/0.73, applied[ComponentSeasonBaseline], 1e-9)
	assert.InDelta(t, 0.13/0.73, applied[ComponentRecentForm], 1e-9)
	assert.InDelta(t, 0.05/0.73, applied[ComponentTrendValidation], 1e-9)
	assert.Zero(t, applied[ComponentHistoricalMatchup])
	assert.Zero(t, applied[ComponentDefensiveTier])

	sum := 0.0
	for _, w := range applied {
		sum += w
	}
	assert.InDelta(t, 1.0, sum, 1e-9)

	expected := (0.55*20 + 0.13*22 + 0.05*20.5) / 0.73
	assert.InDelta(t, expected, projection, 1e-9)
}

// TestSynthesizeTierMultipliers tests the ordinal tier adjustment
func TestSynthesizeTierMultipliers(t *testing.T) {
	cfg := DefaultConfig()
	baseline := models.BaselineStatistics{Mean: 25, StdDev: 2, SampleSize: 10}

	tests := []struct {
		tier     int
		expected float64
	}{
		{1, 25 * 0.92},
		{2, 25 * 0.96},
		{3, 25.0},
		{4, 25 * 1.04},
		{5, 25 * 1.08},
	}

	for _, tt := range tests {
		value, available, err := defensiveTierValue(cfg, baseline, &tt.tier)
		require.NoError(t, err)
		assert.True(t, available)
		assert.InDelta(t, tt.expected, value, 1e-9)
	}
}

// TestSynthesizeInvalidTier tests rejection of tiers outside the ordinal
// range
func TestSynthesizeInvalidTier(t *testing.T) {
	cfg := DefaultConfig()
	baseline := models.BaselineStatistics{Mean: 25, StdDev: 2, SampleSize: 10}
	form := models.RecentForm{RecentValueUsed: 25}
	trend := models.TrendSignal{Value: 25}

	for _, tier := range []int{0, 6, -1, 100} {
		_, _, err := Synthesize(cfg, baseline, form, trend, nil, intPtr(tier))
		assert.ErrorIs(t, err, ErrInvalidTier, "tier %d", tier)
	}
}

// TestSynthesizeDeterministic tests that repeated synthesis of the same
// inputs is byte-identical
func TestSynthesizeDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	baseline := models.BaselineStatistics{Mean: 20.3, StdDev: 1.7, SampleSize: 12}
	form := models.RecentForm{RecentMean: 21.1, RecentValueUsed: 21.1}
	trend := models.TrendSignal{Value: 20.9}

	first, firstApplied, err := Synthesize(cfg, baseline, form, trend, floatPtr(19.5), intPtr(2))
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		projection, applied, err := Synthesize(cfg, baseline, form, trend, floatPtr(19.5), intPtr(2))
		require.NoError(t, err)
		assert.Equal(t, first, projection)
		assert.Equal(t, firstApplied, applied)
	}
}
