package engine

import (
	"math"

	"github.com/yourusername/propline/internal/models"
)

// flatSlopeEpsilon bounds the slope magnitude considered directionless
const flatSlopeEpsilon = 1e-9

// ValidateTrend inspects the last few games for directional drift. The
// direction comes from the least-squares slope over the trend window; the
// synthesis value is the baseline mean plus the slope clamped to one
// historical standard deviation, keeping the corrective term small relative
// to the anchor.
func ValidateTrend(values []float64, window int, baseline models.BaselineStatistics) models.TrendSignal {
	if window > len(values) {
		window = len(values)
	}
	slope := leastSquaresSlope(values[len(values)-window:])

	direction := models.TrendFlat
	switch {
	case slope > flatSlopeEpsilon:
		direction = models.TrendIncreasing
	case slope < -flatSlopeEpsilon:
		direction = models.TrendDecreasing
	}

	correction := slope
	if correction > baseline.StdDev {
		correction = baseline.StdDev
	}
	if correction < -baseline.StdDev {
		correction = -baseline.StdDev
	}

	return models.TrendSignal{
		Direction: direction,
		Slope:     slope,
		Value:     baseline.Mean + correction,
	}
}

// TrendAgrees reports whether the trend direction matches the direction of
// the (outlier-corrected) recent form relative to the baseline mean.
func TrendAgrees(trend models.TrendSignal, form models.RecentForm, baseline models.BaselineStatistics) bool {
	diff := form.RecentValueUsed - baseline.Mean

	formDirection := models.TrendFlat
	switch {
	case diff > flatSlopeEpsilon:
		formDirection = models.TrendIncreasing
	case diff < -flatSlopeEpsilon:
		formDirection = models.TrendDecreasing
	}

	return trend.Direction == formDirection
}

// leastSquaresSlope fits value = a + b*index over the window and returns b.
// Windows shorter than two points have no drift.
func leastSquaresSlope(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}

	meanX := float64(n-1) / 2.0
	meanY := average(values)

	num := 0.0
	den := 0.0
	for i, v := range values {
		dx := float64(i) - meanX
		num += dx * (v - meanY)
		den += dx * dx
	}
	if den == 0 {
		return 0
	}
	slope := num / den
	if math.IsNaN(slope) {
		return 0
	}
	return slope
}
