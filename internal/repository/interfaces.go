package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/propline/internal/models"
)

// PlayerRepository defines the interface for player data access
type PlayerRepository interface {
	Upsert(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id int64) (*models.Player, error)
	GetBySport(ctx context.Context, sport string) ([]*models.Player, error)
	Count(ctx context.Context) (int, error)
}

// GameLogRepository defines the interface for game log data access
type GameLogRepository interface {
	Insert(ctx context.Context, log *models.GameLog) error
	InsertBatch(ctx context.Context, logs []*models.GameLog) error
	GetSeries(ctx context.Context, playerID int64, propType string) ([]float64, error)
	GetByPlayer(ctx context.Context, playerID int64, propType string, limit int) ([]*models.GameLog, error)
	GetMatchupAverage(ctx context.Context, playerID int64, propType string, opponentID int64) (*float64, error)
	GetActualValue(ctx context.Context, playerID int64, propType string, gameDate time.Time) (*float64, error)
}

// TeamDefenseRepository defines the interface for defensive tier data access
type TeamDefenseRepository interface {
	Upsert(ctx context.Context, defense *models.TeamDefense) error
	GetTier(ctx context.Context, teamID int64, sport, season string) (*int, error)
}

// ProjectionRepository defines the interface for persisted projections
type ProjectionRepository interface {
	Insert(ctx context.Context, record *models.ProjectionRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.ProjectionRecord, error)
	GetRecentByPlayer(ctx context.Context, playerID int64, propType string, limit int) ([]*models.ProjectionRecord, error)
}

// PredictionRepository defines the interface for the learning loop tables
type PredictionRepository interface {
	Insert(ctx context.Context, prediction *models.PredictionLog) error
	GetUnverified(ctx context.Context, sport string, before time.Time) ([]*models.PredictionLog, error)
	RecordOutcome(ctx context.Context, outcome *models.PredictionOutcome) error
	GetAccuracySummary(ctx context.Context, sport string, start, end time.Time) (*models.AccuracySummary, error)
	InsertRetrainTrigger(ctx context.Context, trigger *models.RetrainTrigger) error
	GetRecentRetrainTriggers(ctx context.Context, sport string, limit int) ([]*models.RetrainTrigger, error)
}
