// Package metrics defines analysis-specific metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Analysis-specific counter vectors
var (
	RecommendationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "propline",
		Name:      "recommendations_total",
		Help:      "Total number of actionable play recommendations by direction",
	}, []string{"direction"})

	ConfidenceLevelsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "propline",
		Name:      "confidence_levels_total",
		Help:      "Total number of projections by confidence level",
	}, []string{"level"})

	WinProbRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "propline",
		Name:      "winprob_requests_total",
		Help:      "Total number of win probability service requests by status",
	}, []string{"status"})

	WinProbCacheHitsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "propline",
		Name:      "winprob_cache_hits_total",
		Help:      "Total number of win probability cache lookups by outcome",
	}, []string{"outcome"})
)

// Analysis-specific histogram vectors
var (
	EdgeMagnitude = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "propline",
		Name:      "edge_magnitude_percent",
		Help:      "Absolute edge percentage of computed projections",
		Buckets:   []float64{1, 2, 3, 5, 8, 12, 20, 35, 50},
	}, []string{"prop_type"})
)

// RecordRecommendation records an actionable play recommendation.
func RecordRecommendation(direction string) {
	RecommendationsTotal.WithLabelValues(direction).Inc()
}

// RecordConfidenceLevel records the confidence grade of a projection.
func RecordConfidenceLevel(level string) {
	ConfidenceLevelsTotal.WithLabelValues(level).Inc()
}

// RecordEdgeMagnitude records the absolute edge of a projection.
func RecordEdgeMagnitude(propType string, absEdgePercent float64) {
	EdgeMagnitude.WithLabelValues(propType).Observe(absEdgePercent)
}

// RecordWinProbRequest records a win probability service request outcome.
func RecordWinProbRequest(status string) {
	WinProbRequestsTotal.WithLabelValues(status).Inc()
}

// RecordWinProbCacheLookup records a win probability cache lookup outcome.
func RecordWinProbCacheLookup(hit bool) {
	if hit {
		WinProbCacheHitsTotal.WithLabelValues("hit").Inc()
	} else {
		WinProbCacheHitsTotal.WithLabelValues("miss").Inc()
	}
}
