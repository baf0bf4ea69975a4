package database

import (
	"context"
	"fmt"

	"github.com/yourusername/propline/internal/config"
)

// schema holds the DDL for all projection service tables. Statements are
// idempotent so initialization can run on every startup.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS players (
		id BIGINT PRIMARY KEY,
		name TEXT NOT NULL,
		team TEXT NOT NULL,
		sport TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS game_logs (
		id UUID PRIMARY KEY,
		player_id BIGINT NOT NULL REFERENCES players(id),
		sport TEXT NOT NULL,
		prop_type TEXT NOT NULL,
		opponent_id BIGINT NOT NULL,
		game_date DATE NOT NULL,
		value DOUBLE PRECISION NOT NULL,
		scraped_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (player_id, prop_type, game_date)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_game_logs_player_prop
		ON game_logs (player_id, prop_type, game_date)`,
	`CREATE TABLE IF NOT EXISTS team_defense (
		team_id BIGINT NOT NULL,
		sport TEXT NOT NULL,
		season TEXT NOT NULL,
		tier SMALLINT NOT NULL CHECK (tier BETWEEN 1 AND 5),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (team_id, sport, season)
	)`,
	`CREATE TABLE IF NOT EXISTS projections (
		id UUID PRIMARY KEY,
		player_id BIGINT NOT NULL,
		sport TEXT NOT NULL,
		prop_type TEXT NOT NULL,
		prop_line DOUBLE PRECISION NOT NULL,
		season_baseline DOUBLE PRECISION NOT NULL,
		final_projection DOUBLE PRECISION NOT NULL,
		edge_percentage DOUBLE PRECISION NOT NULL,
		edge_direction TEXT NOT NULL,
		confidence_level TEXT NOT NULL,
		recommended_play TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_projections_player
		ON projections (player_id, prop_type, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS predictions (
		id UUID PRIMARY KEY,
		sport TEXT NOT NULL,
		player_id BIGINT NOT NULL,
		prop_type TEXT NOT NULL,
		game_date DATE NOT NULL,
		predicted_value DOUBLE PRECISION NOT NULL,
		confidence_score DOUBLE PRECISION,
		model_version TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_predictions_sport_date
		ON predictions (sport, game_date)`,
	`CREATE TABLE IF NOT EXISTS prediction_outcomes (
		id UUID PRIMARY KEY,
		prediction_id UUID NOT NULL REFERENCES predictions(id),
		actual_value DOUBLE PRECISION NOT NULL,
		prediction_error DOUBLE PRECISION NOT NULL,
		error_percentage DOUBLE PRECISION NOT NULL,
		is_accurate BOOLEAN NOT NULL,
		data_source TEXT NOT NULL,
		verified_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (prediction_id)
	)`,
	`CREATE TABLE IF NOT EXISTS retrain_triggers (
		id UUID PRIMARY KEY,
		sport TEXT NOT NULL,
		reason TEXT NOT NULL,
		accuracy_at_trigger DOUBLE PRECISION NOT NULL,
		triggered_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// Initialize creates a database connection pool and ensures the schema exists
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	for _, stmt := range schema {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize schema: %w", err)
		}
	}

	return db, nil
}
