// Package metrics provides the centralized Prometheus metrics registry for
// the projection service.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	AnalysesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "propline",
		Name:      "analyses_total",
		Help:      "Total number of prop projections computed",
	})
	AnalysisErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "propline",
		Name:      "analysis_errors_total",
		Help:      "Total number of failed projection requests",
	})
	OutliersDetectedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "propline",
		Name:      "outliers_detected_total",
		Help:      "Total number of recent-form windows regressed to the baseline",
	})
	BatchAnalysesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "propline",
		Name:      "batch_analyses_total",
		Help:      "Total number of batch analysis runs",
	})
	FeedSyncsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "propline",
		Name:      "feed_syncs_total",
		Help:      "Total number of stats feed synchronization runs",
	})
	FeedSyncErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "propline",
		Name:      "feed_sync_errors_total",
		Help:      "Total number of failed stats feed synchronizations",
	})
	RetrainTriggersTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "propline",
		Name:      "retrain_triggers_total",
		Help:      "Total number of model retrain triggers raised",
	})
)

// Gauge metrics
var (
	TrackedPlayers = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "propline",
		Name:      "tracked_players",
		Help:      "Number of players with game logs in the store",
	})
	PredictionAccuracy = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "propline",
		Name:      "prediction_accuracy_percent",
		Help:      "Rolling prediction accuracy percentage per sport",
	}, []string{"sport"})
)

// Histogram metrics
var (
	AnalysisDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "propline",
		Name:      "analysis_duration_seconds",
		Help:      "Duration of single prop projections in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	BatchAnalysisDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "propline",
		Name:      "batch_analysis_duration_seconds",
		Help:      "Duration of batch analysis runs in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	FeedSyncDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "propline",
		Name:      "feed_sync_duration_seconds",
		Help:      "Duration of stats feed synchronization in seconds",
		Buckets:   []float64{1, 5, 10, 30, 60, 300, 600, 1800},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		// Register counter metrics
		registry.MustRegister(AnalysesTotal)
		registry.MustRegister(AnalysisErrorsTotal)
		registry.MustRegister(OutliersDetectedTotal)
		registry.MustRegister(BatchAnalysesTotal)
		registry.MustRegister(FeedSyncsTotal)
		registry.MustRegister(FeedSyncErrorsTotal)
		registry.MustRegister(RetrainTriggersTotal)

		// Register gauge metrics
		registry.MustRegister(TrackedPlayers)
		registry.MustRegister(PredictionAccuracy)

		// Register histogram metrics
		registry.MustRegister(AnalysisDuration)
		registry.MustRegister(BatchAnalysisDuration)
		registry.MustRegister(FeedSyncDuration)

		// Register analysis metrics
		registry.MustRegister(RecommendationsTotal)
		registry.MustRegister(ConfidenceLevelsTotal)
		registry.MustRegister(EdgeMagnitude)
		registry.MustRegister(WinProbRequestsTotal)
		registry.MustRegister(WinProbCacheHitsTotal)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordAnalysis records a completed projection with its duration.
func RecordAnalysis(durationSeconds float64) {
	AnalysesTotal.Inc()
	AnalysisDuration.Observe(durationSeconds)
}

// RecordAnalysisError records a failed projection request.
func RecordAnalysisError() {
	AnalysisErrorsTotal.Inc()
}

// RecordOutlierDetected records an outlier regression event.
func RecordOutlierDetected() {
	OutliersDetectedTotal.Inc()
}

// RecordBatchAnalysis records a batch run with its duration.
func RecordBatchAnalysis(durationSeconds float64) {
	BatchAnalysesTotal.Inc()
	BatchAnalysisDuration.Observe(durationSeconds)
}

// RecordFeedSync records a completed feed synchronization.
func RecordFeedSync(durationSeconds float64) {
	FeedSyncsTotal.Inc()
	FeedSyncDuration.Observe(durationSeconds)
}

// RecordFeedSyncError records a failed feed synchronization.
func RecordFeedSyncError() {
	FeedSyncErrorsTotal.Inc()
}

// RecordRetrainTrigger records a raised retrain trigger.
func RecordRetrainTrigger() {
	RetrainTriggersTotal.Inc()
}

// UpdateTrackedPlayers updates the tracked players gauge.
func UpdateTrackedPlayers(count float64) {
	TrackedPlayers.Set(count)
}

// UpdatePredictionAccuracy updates the rolling accuracy gauge for a sport.
func UpdatePredictionAccuracy(sport string, percent float64) {
	PredictionAccuracy.WithLabelValues(sport).Set(percent)
}
