// Package logger provides ingestion and learning loop logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// IngestionLogger provides dedicated logging for stats feed ingestion and
// the accuracy evaluation loop.
type IngestionLogger struct {
	*logrus.Entry
}

// NewIngestionLogger creates a new ingestion logger.
func NewIngestionLogger(baseLogger *logrus.Logger) *IngestionLogger {
	return &IngestionLogger{
		Entry: baseLogger.WithField("component", "ingestion"),
	}
}

// LogFeedSync logs a completed stats feed synchronization.
func (il *IngestionLogger) LogFeedSync(source string, gamesIngested, playersUpdated int, durationMs float64) {
	il.WithFields(logrus.Fields{
		"source":          source,
		"games_ingested":  gamesIngested,
		"players_updated": playersUpdated,
		"duration_ms":     durationMs,
	}).Info("Stats feed sync completed")
}

// LogFeedError logs a feed synchronization failure.
func (il *IngestionLogger) LogFeedError(source, reason string) {
	il.WithFields(logrus.Fields{
		"source": source,
		"reason": reason,
	}).Error("Stats feed sync failed")
}

// LogAccuracyEvaluation logs an accuracy evaluation run.
func (il *IngestionLogger) LogAccuracyEvaluation(sport string, evaluated int, accuracyPercent, meanAbsoluteError float64) {
	il.WithFields(logrus.Fields{
		"sport":               sport,
		"predictions_scored":  evaluated,
		"accuracy_percent":    accuracyPercent,
		"mean_absolute_error": meanAbsoluteError,
	}).Info("Prediction accuracy evaluated")
}

// LogRetrainTrigger logs a retrain trigger being raised.
func (il *IngestionLogger) LogRetrainTrigger(sport, reason string, accuracyPercent float64, sampleSize int) {
	il.WithFields(logrus.Fields{
		"sport":            sport,
		"reason":           reason,
		"accuracy_percent": accuracyPercent,
		"sample_size":      sampleSize,
	}).Warn("Model retrain trigger raised")
}
