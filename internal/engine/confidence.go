package engine

import (
	"math"

	"github.com/yourusername/propline/internal/models"
)

// AssessConfidence grades the reliability of a projection from sample
// adequacy, outlier status, trend agreement, and edge magnitude.
//
// The policy is deterministic:
//   - low when the sample is below the minimum, or an outlier was detected
//     without the trend agreeing with the corrected recent form;
//   - high only when the sample reaches HighSampleSize, no outlier was
//     flagged, the trend agrees, and the edge magnitude reaches
//     HighEdgeThreshold;
//   - medium otherwise.
func AssessConfidence(cfg Config, baseline models.BaselineStatistics, form models.RecentForm, trendAgrees bool, edgePercentage float64) models.ConfidenceLevel {
	if baseline.SampleSize < cfg.MinSampleSize {
		return models.ConfidenceLow
	}
	if form.WasOutlier && !trendAgrees {
		return models.ConfidenceLow
	}
	if !form.WasOutlier && trendAgrees &&
		baseline.SampleSize >= cfg.HighSampleSize &&
		math.Abs(edgePercentage) >= cfg.HighEdgeThreshold {
		return models.ConfidenceHigh
	}
	return models.ConfidenceMedium
}
