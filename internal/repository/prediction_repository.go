package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/yourusername/propline/internal/database"
	"github.com/yourusername/propline/internal/models"
)

// PostgresPredictionRepository implements PredictionRepository for PostgreSQL
type PostgresPredictionRepository struct {
	db *database.DB
}

// NewPostgresPredictionRepository creates a new prediction repository
func NewPostgresPredictionRepository(db *database.DB) PredictionRepository {
	return &PostgresPredictionRepository{db: db}
}

// Insert logs a prediction for later verification
func (p *PostgresPredictionRepository) Insert(ctx context.Context, prediction *models.PredictionLog) error {
	query := `
		INSERT INTO predictions (id, sport, player_id, prop_type, game_date, predicted_value, confidence_score, model_version, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := p.db.GetPool().Exec(ctx, query,
		prediction.ID, prediction.Sport, prediction.PlayerID, prediction.PropType,
		prediction.GameDate, prediction.PredictedValue, prediction.ConfidenceScore,
		prediction.ModelVersion, prediction.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert prediction: %w", err)
	}

	return nil
}

// GetUnverified retrieves predictions with no recorded outcome whose game
// date has passed
func (p *PostgresPredictionRepository) GetUnverified(ctx context.Context, sport string, before time.Time) ([]*models.PredictionLog, error) {
	query := `
		SELECT pr.id, pr.sport, pr.player_id, pr.prop_type, pr.game_date,
			pr.predicted_value, pr.confidence_score, pr.model_version, pr.created_at
		FROM predictions pr
		LEFT JOIN prediction_outcomes po ON po.prediction_id = pr.id
		WHERE pr.sport = $1 AND pr.game_date < $2 AND po.prediction_id IS NULL
		ORDER BY pr.game_date ASC
	`

	rows, err := p.db.GetPool().Query(ctx, query, sport, before)
	if err != nil {
		return nil, fmt.Errorf("failed to query unverified predictions: %w", err)
	}
	defer rows.Close()

	var predictions []*models.PredictionLog
	for rows.Next() {
		prediction := &models.PredictionLog{}
		err := rows.Scan(
			&prediction.ID, &prediction.Sport, &prediction.PlayerID, &prediction.PropType,
			&prediction.GameDate, &prediction.PredictedValue, &prediction.ConfidenceScore,
			&prediction.ModelVersion, &prediction.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prediction: %w", err)
		}
		predictions = append(predictions, prediction)
	}

	return predictions, rows.Err()
}

// RecordOutcome persists the verified actual value for a prediction
func (p *PostgresPredictionRepository) RecordOutcome(ctx context.Context, outcome *models.PredictionOutcome) error {
	query := `
		INSERT INTO prediction_outcomes (id, prediction_id, actual_value, prediction_error, error_percentage, is_accurate, data_source, verified_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (prediction_id) DO NOTHING
	`

	_, err := p.db.GetPool().Exec(ctx, query,
		outcome.ID, outcome.PredictionID, outcome.ActualValue, outcome.PredictionError,
		outcome.ErrorPercentage, outcome.IsAccurate, outcome.DataSource, outcome.VerifiedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record prediction outcome: %w", err)
	}

	return nil
}

// GetAccuracySummary aggregates verified outcomes for a sport over a window
func (p *PostgresPredictionRepository) GetAccuracySummary(ctx context.Context, sport string, start, end time.Time) (*models.AccuracySummary, error) {
	query := `
		SELECT COUNT(*),
			COALESCE(SUM(CASE WHEN po.is_accurate THEN 1 ELSE 0 END), 0),
			COALESCE(AVG(ABS(po.prediction_error)), 0)
		FROM prediction_outcomes po
		JOIN predictions pr ON pr.id = po.prediction_id
		WHERE pr.sport = $1 AND po.verified_at >= $2 AND po.verified_at <= $3
	`

	summary := &models.AccuracySummary{
		Sport:       sport,
		PeriodStart: start,
		PeriodEnd:   end,
	}
	err := p.db.GetPool().QueryRow(ctx, query, sport, start, end).Scan(
		&summary.TotalPredictions, &summary.CorrectPredictions, &summary.AvgError,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query accuracy summary: %w", err)
	}

	if summary.TotalPredictions > 0 {
		summary.AccuracyRate = float64(summary.CorrectPredictions) / float64(summary.TotalPredictions) * 100
	}

	return summary, nil
}

// InsertRetrainTrigger records an automatic retraining request
func (p *PostgresPredictionRepository) InsertRetrainTrigger(ctx context.Context, trigger *models.RetrainTrigger) error {
	query := `
		INSERT INTO retrain_triggers (id, sport, reason, accuracy_at_trigger, triggered_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := p.db.GetPool().Exec(ctx, query,
		trigger.ID, trigger.Sport, trigger.Reason, trigger.AccuracyAt, trigger.TriggeredAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert retrain trigger: %w", err)
	}

	return nil
}

// GetRecentRetrainTriggers retrieves the most recent retrain triggers
func (p *PostgresPredictionRepository) GetRecentRetrainTriggers(ctx context.Context, sport string, limit int) ([]*models.RetrainTrigger, error) {
	query := `
		SELECT id, sport, reason, accuracy_at_trigger, triggered_at
		FROM retrain_triggers
		WHERE sport = $1
		ORDER BY triggered_at DESC
		LIMIT $2
	`

	rows, err := p.db.GetPool().Query(ctx, query, sport, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query retrain triggers: %w", err)
	}
	defer rows.Close()

	var triggers []*models.RetrainTrigger
	for rows.Next() {
		trigger := &models.RetrainTrigger{}
		err := rows.Scan(
			&trigger.ID, &trigger.Sport, &trigger.Reason, &trigger.AccuracyAt, &trigger.TriggeredAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan retrain trigger: %w", err)
		}
		triggers = append(triggers, trigger)
	}

	return triggers, rows.Err()
}
