package engine

import (
	"math"
	"sort"

	"github.com/yourusername/propline/internal/models"
)

// CalculateBaseline derives the season-long baseline statistics from the
// full historical series. The baseline mean is the primary anchor for the
// weighted projection. An empty series is invalid input; a series shorter
// than minSample still produces a baseline but is flagged low-reliability,
// which later caps confidence.
func CalculateBaseline(values []float64, minSample int) (models.BaselineStatistics, error) {
	if len(values) == 0 {
		return models.BaselineStatistics{}, ErrInsufficientData
	}

	return models.BaselineStatistics{
		Mean:       average(values),
		Median:     median(values),
		StdDev:     sampleStdDev(values),
		Floor:      percentile(values, 0.10),
		Ceiling:    percentile(values, 0.90),
		SampleSize: len(values),
		LowSample:  len(values) < minSample,
	}, nil
}

func average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// sampleStdDev returns the sample standard deviation (n-1 denominator).
// A single-element series has no dispersion and returns 0.
func sampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := average(values)
	variance := 0.0
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(len(values) - 1)
	return math.Sqrt(variance)
}

func median(values []float64) float64 {
	sorted := append([]float64{}, values...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2.0
}

// percentile computes the p-th percentile (0..1) with linear interpolation
// between closest ranks.
func percentile(values []float64, p float64) float64 {
	sorted := append([]float64{}, values...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}

	rank := p * float64(n-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper {
		return sorted[lower]
	}
	frac := rank - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower])
}
