package models

import (
	"time"

	"github.com/google/uuid"
)

// PredictionLog is a logged prediction awaiting verification against the
// actual outcome. Feeds the continuous-learning accuracy loop.
type PredictionLog struct {
	ID              uuid.UUID `db:"id" json:"id"`
	Sport           string    `db:"sport" json:"sport" validate:"required"`
	PlayerID        int64     `db:"player_id" json:"player_id"`
	PropType        string    `db:"prop_type" json:"prop_type" validate:"required"`
	GameDate        time.Time `db:"game_date" json:"game_date"`
	PredictedValue  float64   `db:"predicted_value" json:"predicted_value"`
	ConfidenceScore *float64  `db:"confidence_score" json:"confidence_score"`
	ModelVersion    string    `db:"model_version" json:"model_version"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// PredictionOutcome records the verified actual value for a prediction
type PredictionOutcome struct {
	ID              uuid.UUID `db:"id" json:"id"`
	PredictionID    uuid.UUID `db:"prediction_id" json:"prediction_id"`
	ActualValue     float64   `db:"actual_value" json:"actual_value"`
	PredictionError float64   `db:"prediction_error" json:"prediction_error"`
	ErrorPercentage float64   `db:"error_percentage" json:"error_percentage"`
	IsAccurate      bool      `db:"is_accurate" json:"is_accurate"`
	DataSource      string    `db:"data_source" json:"data_source"`
	VerifiedAt      time.Time `db:"verified_at" json:"verified_at"`
}

// AccuracySummary aggregates verification outcomes for a sport over a window
type AccuracySummary struct {
	Sport              string    `json:"sport"`
	TotalPredictions   int       `json:"total_predictions"`
	CorrectPredictions int       `json:"correct_predictions"`
	AccuracyRate       float64   `json:"accuracy_rate"`
	AvgError           float64   `json:"avg_error"`
	PeriodStart        time.Time `json:"period_start"`
	PeriodEnd          time.Time `json:"period_end"`
}

// RetrainTrigger records an automatic retraining request raised when
// accuracy drops below the configured threshold.
type RetrainTrigger struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Sport       string    `db:"sport" json:"sport"`
	Reason      string    `db:"reason" json:"reason"`
	AccuracyAt  float64   `db:"accuracy_at_trigger" json:"accuracy_at_trigger"`
	TriggeredAt time.Time `db:"triggered_at" json:"triggered_at"`
}
