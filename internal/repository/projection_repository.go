package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/propline/internal/database"
	"github.com/yourusername/propline/internal/models"
)

// PostgresProjectionRepository implements ProjectionRepository for PostgreSQL
type PostgresProjectionRepository struct {
	db *database.DB
}

// NewPostgresProjectionRepository creates a new projection repository
func NewPostgresProjectionRepository(db *database.DB) ProjectionRepository {
	return &PostgresProjectionRepository{db: db}
}

// Insert persists a computed projection
func (p *PostgresProjectionRepository) Insert(ctx context.Context, record *models.ProjectionRecord) error {
	query := `
		INSERT INTO projections (
			id, player_id, sport, prop_type, prop_line, season_baseline,
			final_projection, edge_percentage, edge_direction, confidence_level,
			recommended_play, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := p.db.GetPool().Exec(ctx, query,
		record.ID, record.PlayerID, record.Sport, record.PropType, record.PropLine,
		record.SeasonBaseline, record.FinalProjection, record.EdgePercentage,
		record.EdgeDirection, record.ConfidenceLevel, record.RecommendedPlay,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert projection: %w", err)
	}

	return nil
}

// GetByID retrieves a persisted projection
func (p *PostgresProjectionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ProjectionRecord, error) {
	query := `
		SELECT id, player_id, sport, prop_type, prop_line, season_baseline,
			final_projection, edge_percentage, edge_direction, confidence_level,
			recommended_play, created_at
		FROM projections
		WHERE id = $1
	`

	record := &models.ProjectionRecord{}
	err := p.db.GetPool().QueryRow(ctx, query, id).Scan(
		&record.ID, &record.PlayerID, &record.Sport, &record.PropType, &record.PropLine,
		&record.SeasonBaseline, &record.FinalProjection, &record.EdgePercentage,
		&record.EdgeDirection, &record.ConfidenceLevel, &record.RecommendedPlay,
		&record.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get projection: %w", err)
	}

	return record, nil
}

// GetRecentByPlayer retrieves the most recent projections for a player
func (p *PostgresProjectionRepository) GetRecentByPlayer(ctx context.Context, playerID int64, propType string, limit int) ([]*models.ProjectionRecord, error) {
	query := `
		SELECT id, player_id, sport, prop_type, prop_line, season_baseline,
			final_projection, edge_percentage, edge_direction, confidence_level,
			recommended_play, created_at
		FROM projections
		WHERE player_id = $1 AND prop_type = $2
		ORDER BY created_at DESC
		LIMIT $3
	`

	rows, err := p.db.GetPool().Query(ctx, query, playerID, propType, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query projections: %w", err)
	}
	defer rows.Close()

	var records []*models.ProjectionRecord
	for rows.Next() {
		record := &models.ProjectionRecord{}
		err := rows.Scan(
			&record.ID, &record.PlayerID, &record.Sport, &record.PropType, &record.PropLine,
			&record.SeasonBaseline, &record.FinalProjection, &record.EdgePercentage,
			&record.EdgeDirection, &record.ConfidenceLevel, &record.RecommendedPlay,
			&record.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan projection: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}
