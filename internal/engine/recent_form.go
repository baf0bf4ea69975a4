package engine

import (
	"math"

	"github.com/yourusername/propline/internal/models"
)

// AssessRecentForm evaluates the recent-window average against the season
// baseline. A window mean deviating more than the configured number of
// standard deviations is flagged an outlier and regressed fully to the
// baseline mean, so a short hot or cold streak cannot dominate the weighted
// projection. With a zero-dispersion history any deviation at all is an
// outlier.
func AssessRecentForm(values []float64, window int, baseline models.BaselineStatistics, stdDevThreshold float64) models.RecentForm {
	if window > len(values) {
		window = len(values)
	}
	recentMean := average(values[len(values)-window:])
	deviation := math.Abs(recentMean - baseline.Mean)

	var outlier bool
	if baseline.StdDev == 0 {
		outlier = deviation > 0
	} else {
		outlier = deviation > stdDevThreshold*baseline.StdDev
	}

	used := recentMean
	if outlier {
		used = baseline.Mean
	}

	return models.RecentForm{
		RecentMean:      recentMean,
		RecentValueUsed: used,
		WasOutlier:      outlier,
	}
}
