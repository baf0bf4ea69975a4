// Package logger provides analysis-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// AnalysisLogger provides dedicated logging for projection analysis.
type AnalysisLogger struct {
	*logrus.Entry
}

// NewAnalysisLogger creates a new analysis logger.
func NewAnalysisLogger(baseLogger *logrus.Logger) *AnalysisLogger {
	return &AnalysisLogger{
		Entry: baseLogger.WithField("component", "analysis"),
	}
}

// LogProjection logs a completed prop projection.
func (al *AnalysisLogger) LogProjection(playerID int64, propType string, propLine, projection, edgePercentage float64, direction, confidence string, wasOutlier bool, durationMs float64) {
	al.WithFields(logrus.Fields{
		"player_id":       playerID,
		"prop_type":       propType,
		"prop_line":       propLine,
		"projection":      projection,
		"edge_percentage": edgePercentage,
		"edge_direction":  direction,
		"confidence":      confidence,
		"was_outlier":     wasOutlier,
		"duration_ms":     durationMs,
	}).Info("Prop projection completed")
}

// LogOutlierRegression logs a recent-form window regressed to the baseline.
func (al *AnalysisLogger) LogOutlierRegression(playerID int64, propType string, recentMean, baselineMean, stdDev float64) {
	al.WithFields(logrus.Fields{
		"player_id":     playerID,
		"prop_type":     propType,
		"recent_mean":   recentMean,
		"baseline_mean": baselineMean,
		"std_dev":       stdDev,
	}).Info("Recent form outlier regressed to baseline")
}

// LogRecommendation logs an actionable play recommendation.
func (al *AnalysisLogger) LogRecommendation(playerID int64, propType, play string, edgePercentage float64, confidence string) {
	al.WithFields(logrus.Fields{
		"player_id":       playerID,
		"prop_type":       propType,
		"recommended_play": play,
		"edge_percentage": edgePercentage,
		"confidence":      confidence,
	}).Info("Play recommendation issued")
}

// LogBatchAnalysis logs a batch analysis summary.
func (al *AnalysisLogger) LogBatchAnalysis(batchSize, succeeded, failed int, durationMs float64) {
	al.WithFields(logrus.Fields{
		"batch_size":  batchSize,
		"succeeded":   succeeded,
		"failed":      failed,
		"duration_ms": durationMs,
	}).Info("Batch analysis completed")
}

// LogAnalysisError logs a failed projection request.
func (al *AnalysisLogger) LogAnalysisError(playerID int64, propType, reason string) {
	al.WithFields(logrus.Fields{
		"player_id": playerID,
		"prop_type": propType,
		"reason":    reason,
	}).Error("Prop projection failed")
}
