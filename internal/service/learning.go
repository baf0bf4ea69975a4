package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/propline/internal/config"
	"github.com/yourusername/propline/internal/logger"
	"github.com/yourusername/propline/internal/metrics"
	"github.com/yourusername/propline/internal/models"
	"github.com/yourusername/propline/internal/repository"
)

// accuracyWindow is the rolling window accuracy is evaluated over
const accuracyWindow = 30 * 24 * time.Hour

// retrainCooldown suppresses duplicate triggers while accuracy stays low
const retrainCooldown = 24 * time.Hour

// CacheInvalidator drops cached model output after a retrain trigger
type CacheInvalidator interface {
	InvalidateSport(sport string)
}

// ModelTrainer is optionally implemented by the invalidator to kick off
// retraining on the model service
type ModelTrainer interface {
	TriggerTraining(ctx context.Context, sport string) error
}

// EvaluationResult summarizes one accuracy evaluation run
type EvaluationResult struct {
	Sport            string  `json:"sport"`
	Verified         int     `json:"verified"`
	Pending          int     `json:"pending"`
	AccuracyRate     float64 `json:"accuracy_rate"`
	TotalPredictions int     `json:"total_predictions"`
	RetrainTriggered bool    `json:"retrain_triggered"`
}

// LearningService closes the continuous-learning loop: it verifies logged
// predictions against observed game results, tracks rolling accuracy, and
// raises a retrain trigger when accuracy falls below the threshold.
type LearningService struct {
	repos       *repository.Repositories
	invalidator CacheInvalidator
	cfg         config.LearningConfig
	logger      *logger.IngestionLogger
}

// NewLearningService creates a new learning service
func NewLearningService(repos *repository.Repositories, invalidator CacheInvalidator, cfg config.LearningConfig, log *logger.IngestionLogger) *LearningService {
	return &LearningService{
		repos:       repos,
		invalidator: invalidator,
		cfg:         cfg,
		logger:      log,
	}
}

// EvaluateAccuracy verifies unverified predictions for a sport and raises a
// retrain trigger when rolling accuracy drops below the threshold. A
// prediction whose game result has not landed yet stays pending.
func (s *LearningService) EvaluateAccuracy(ctx context.Context, sport string) (*EvaluationResult, error) {
	now := time.Now().UTC()
	result := &EvaluationResult{Sport: sport}

	pending, err := s.repos.Prediction.GetUnverified(ctx, sport, now)
	if err != nil {
		return nil, fmt.Errorf("failed to load unverified predictions: %w", err)
	}

	var absErrors float64
	for _, prediction := range pending {
		actual, err := s.repos.GameLog.GetActualValue(ctx, prediction.PlayerID, prediction.PropType, prediction.GameDate)
		if err != nil {
			return nil, fmt.Errorf("failed to look up actual value: %w", err)
		}
		if actual == nil {
			result.Pending++
			continue
		}

		outcome := s.buildOutcome(prediction, *actual, now)
		if err := s.repos.Prediction.RecordOutcome(ctx, outcome); err != nil {
			return nil, fmt.Errorf("failed to record outcome: %w", err)
		}
		absErrors += math.Abs(outcome.PredictionError)
		result.Verified++
	}

	summary, err := s.repos.Prediction.GetAccuracySummary(ctx, sport, now.Add(-accuracyWindow), now)
	if err != nil {
		return nil, fmt.Errorf("failed to load accuracy summary: %w", err)
	}

	result.AccuracyRate = summary.AccuracyRate
	result.TotalPredictions = summary.TotalPredictions
	metrics.UpdatePredictionAccuracy(sport, summary.AccuracyRate)

	meanAbsError := 0.0
	if result.Verified > 0 {
		meanAbsError = absErrors / float64(result.Verified)
	}
	s.logger.LogAccuracyEvaluation(sport, result.Verified, summary.AccuracyRate, meanAbsError)

	triggered, err := s.maybeTriggerRetrain(ctx, sport, summary, now)
	if err != nil {
		return nil, err
	}
	result.RetrainTriggered = triggered

	return result, nil
}

// buildOutcome scores one prediction against the observed value
func (s *LearningService) buildOutcome(prediction *models.PredictionLog, actual float64, now time.Time) *models.PredictionOutcome {
	predictionError := prediction.PredictedValue - actual

	var errorPct float64
	switch {
	case actual != 0:
		errorPct = math.Abs(predictionError) / math.Abs(actual) * 100
	case predictionError != 0:
		errorPct = 100
	}

	return &models.PredictionOutcome{
		ID:              uuid.New(),
		PredictionID:    prediction.ID,
		ActualValue:     actual,
		PredictionError: predictionError,
		ErrorPercentage: errorPct,
		IsAccurate:      errorPct <= s.cfg.ErrorTolerancePercent,
		DataSource:      "game_logs",
		VerifiedAt:      now,
	}
}

// maybeTriggerRetrain raises a retrain trigger when accuracy is below the
// threshold with a sufficient sample, respecting the cooldown
func (s *LearningService) maybeTriggerRetrain(ctx context.Context, sport string, summary *models.AccuracySummary, now time.Time) (bool, error) {
	if summary.TotalPredictions < s.cfg.MinPredictions {
		return false, nil
	}
	if summary.AccuracyRate >= s.cfg.AccuracyThreshold {
		return false, nil
	}

	recent, err := s.repos.Prediction.GetRecentRetrainTriggers(ctx, sport, 1)
	if err != nil {
		return false, fmt.Errorf("failed to check recent retrain triggers: %w", err)
	}
	if len(recent) > 0 && now.Sub(recent[0].TriggeredAt) < retrainCooldown {
		return false, nil
	}

	reason := fmt.Sprintf("accuracy %.2f%% below threshold %.2f%% over %d predictions",
		summary.AccuracyRate, s.cfg.AccuracyThreshold, summary.TotalPredictions)

	trigger := &models.RetrainTrigger{
		ID:          uuid.New(),
		Sport:       sport,
		Reason:      reason,
		AccuracyAt:  summary.AccuracyRate,
		TriggeredAt: now,
	}
	if err := s.repos.Prediction.InsertRetrainTrigger(ctx, trigger); err != nil {
		return false, fmt.Errorf("failed to insert retrain trigger: %w", err)
	}

	if s.invalidator != nil {
		s.invalidator.InvalidateSport(sport)

		if trainer, ok := s.invalidator.(ModelTrainer); ok {
			if err := trainer.TriggerTraining(ctx, sport); err != nil {
				s.logger.LogFeedError("win_probability", fmt.Sprintf("failed to trigger training: %v", err))
			}
		}
	}

	metrics.RecordRetrainTrigger()
	s.logger.LogRetrainTrigger(sport, reason, summary.AccuracyRate, summary.TotalPredictions)

	return true, nil
}
