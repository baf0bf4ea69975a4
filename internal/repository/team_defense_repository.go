package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/yourusername/propline/internal/database"
	"github.com/yourusername/propline/internal/models"
)

// PostgresTeamDefenseRepository implements TeamDefenseRepository for PostgreSQL
type PostgresTeamDefenseRepository struct {
	db *database.DB
}

// NewPostgresTeamDefenseRepository creates a new team defense repository
func NewPostgresTeamDefenseRepository(db *database.DB) TeamDefenseRepository {
	return &PostgresTeamDefenseRepository{db: db}
}

// Upsert inserts or refreshes a defensive tier rating
func (t *PostgresTeamDefenseRepository) Upsert(ctx context.Context, defense *models.TeamDefense) error {
	query := `
		INSERT INTO team_defense (team_id, sport, season, tier, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (team_id, sport, season) DO UPDATE
		SET tier = EXCLUDED.tier, updated_at = now()
	`

	_, err := t.db.GetPool().Exec(ctx, query,
		defense.TeamID, defense.Sport, defense.Season, defense.Tier,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert team defense: %w", err)
	}

	return nil
}

// GetTier retrieves the defensive tier for an opponent. Returns nil when no
// rating exists so the caller can redistribute the tier weight.
func (t *PostgresTeamDefenseRepository) GetTier(ctx context.Context, teamID int64, sport, season string) (*int, error) {
	query := `
		SELECT tier
		FROM team_defense
		WHERE team_id = $1 AND sport = $2 AND season = $3
	`

	var tier int
	err := t.db.GetPool().QueryRow(ctx, query, teamID, sport, season).Scan(&tier)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query team defense tier: %w", err)
	}

	return &tier, nil
}
