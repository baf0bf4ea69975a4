package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/propline/internal/models"
)

// TestAssessRecentFormWithinThreshold tests a recent window close to the
// baseline
func TestAssessRecentFormWithinThreshold(t *testing.T) {
	values := []float64{24, 26, 25, 27, 23, 24, 25}
	baseline, err := CalculateBaseline(values, 5)
	require.NoError(t, err)

	form := AssessRecentForm(values, 5, baseline, 2.0)

	assert.InDelta(t, 24.8, form.RecentMean, 1e-9)
	assert.InDelta(t, 24.8, form.RecentValueUsed, 1e-9)
	assert.False(t, form.WasOutlier)
}

// TestAssessRecentFormOutlierRegression tests the full regression of an
// outlier window to the baseline mean
func TestAssessRecentFormOutlierRegression(t *testing.T) {
	// long stable history, then an extreme hot streak
	values := make([]float64, 0, 35)
	for i := 0; i < 30; i++ {
		values = append(values, 20)
	}
	values = append(values, 45, 48, 46, 47, 44)
	baseline, err := CalculateBaseline(values, 5)
	require.NoError(t, err)

	form := AssessRecentForm(values, 5, baseline, 2.0)

	assert.True(t, form.WasOutlier)
	assert.InDelta(t, 46.0, form.RecentMean, 1e-9)
	assert.InDelta(t, baseline.Mean, form.RecentValueUsed, 1e-9)
}

// TestAssessRecentFormZeroStdDev tests that any deviation from a constant
// history is an outlier
func TestAssessRecentFormZeroStdDev(t *testing.T) {
	baseline := models.BaselineStatistics{Mean: 20, StdDev: 0, SampleSize: 6}

	form := AssessRecentForm([]float64{20, 20, 20, 20, 20, 20.1}, 5, baseline, 2.0)
	assert.True(t, form.WasOutlier)
	assert.InDelta(t, 20.0, form.RecentValueUsed, 1e-9)

	form = AssessRecentForm([]float64{20, 20, 20, 20, 20, 20}, 5, baseline, 2.0)
	assert.False(t, form.WasOutlier)
	assert.InDelta(t, 20.0, form.RecentValueUsed, 1e-9)
}

// TestAssessRecentFormShortSeries tests window clamping on a series shorter
// than the configured window
func TestAssessRecentFormShortSeries(t *testing.T) {
	values := []float64{10, 14}
	baseline, err := CalculateBaseline(values, 5)
	require.NoError(t, err)

	form := AssessRecentForm(values, 5, baseline, 2.0)

	assert.InDelta(t, 12.0, form.RecentMean, 1e-9)
	assert.False(t, form.WasOutlier)
}

// TestAssessRecentFormBoundaryDeviation tests that a deviation exactly at
// the threshold is not an outlier
func TestAssessRecentFormBoundaryDeviation(t *testing.T) {
	baseline := models.BaselineStatistics{Mean: 20, StdDev: 2, SampleSize: 10}

	// recent mean 24, deviation 4 == 2.0 * 2 std devs, strictly greater required
	form := AssessRecentForm([]float64{24}, 1, baseline, 2.0)
	assert.False(t, form.WasOutlier)
	assert.InDelta(t, 24.0, form.RecentValueUsed, 1e-9)

	form = AssessRecentForm([]float64{24.1}, 1, baseline, 2.0)
	assert.True(t, form.WasOutlier)
	assert.InDelta(t, 20.0, form.RecentValueUsed, 1e-9)
}
