package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/yourusername/propline/internal/database"
	"github.com/yourusername/propline/internal/models"
)

// PostgresGameLogRepository implements GameLogRepository for PostgreSQL
type PostgresGameLogRepository struct {
	db *database.DB
}

// NewPostgresGameLogRepository creates a new game log repository
func NewPostgresGameLogRepository(db *database.DB) GameLogRepository {
	return &PostgresGameLogRepository{db: db}
}

// Insert inserts a single game log
func (g *PostgresGameLogRepository) Insert(ctx context.Context, log *models.GameLog) error {
	query := `
		INSERT INTO game_logs (id, player_id, sport, prop_type, opponent_id, game_date, value, scraped_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (player_id, prop_type, game_date) DO UPDATE
		SET value = EXCLUDED.value, opponent_id = EXCLUDED.opponent_id, scraped_at = EXCLUDED.scraped_at
	`

	_, err := g.db.GetPool().Exec(ctx, query,
		log.ID, log.PlayerID, log.Sport, log.PropType, log.OpponentID,
		log.GameDate, log.Value, log.ScrapedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert game log: %w", err)
	}

	return nil
}

// InsertBatch inserts multiple game logs using high-performance batch insert
func (g *PostgresGameLogRepository) InsertBatch(ctx context.Context, logs []*models.GameLog) error {
	if len(logs) == 0 {
		return nil
	}

	// Use COPY for high-performance bulk insert
	columns := []string{"id", "player_id", "sport", "prop_type", "opponent_id", "game_date", "value", "scraped_at"}

	copyFromSource := make([][]interface{}, len(logs))
	for i, l := range logs {
		copyFromSource[i] = []interface{}{
			l.ID, l.PlayerID, l.Sport, l.PropType, l.OpponentID,
			l.GameDate, l.Value, l.ScrapedAt,
		}
	}

	count, err := g.db.GetPool().CopyFrom(ctx, pgx.Identifier{"game_logs"}, columns, pgx.CopyFromRows(copyFromSource))
	if err != nil {
		return fmt.Errorf("failed to batch insert game logs: %w", err)
	}

	if count != int64(len(logs)) {
		return fmt.Errorf("inserted %d rows, expected %d", count, len(logs))
	}

	return nil
}

// GetSeries retrieves the full chronological value series for a player and
// prop type, oldest game first
func (g *PostgresGameLogRepository) GetSeries(ctx context.Context, playerID int64, propType string) ([]float64, error) {
	query := `
		SELECT value
		FROM game_logs
		WHERE player_id = $1 AND prop_type = $2
		ORDER BY game_date ASC
	`

	rows, err := g.db.GetPool().Query(ctx, query, playerID, propType)
	if err != nil {
		return nil, fmt.Errorf("failed to query game series: %w", err)
	}
	defer rows.Close()

	var values []float64
	for rows.Next() {
		var v float64
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan game value: %w", err)
		}
		values = append(values, v)
	}

	return values, rows.Err()
}

// GetByPlayer retrieves the most recent game logs for a player, newest first
func (g *PostgresGameLogRepository) GetByPlayer(ctx context.Context, playerID int64, propType string, limit int) ([]*models.GameLog, error) {
	query := `
		SELECT id, player_id, sport, prop_type, opponent_id, game_date, value, scraped_at
		FROM game_logs
		WHERE player_id = $1 AND prop_type = $2
		ORDER BY game_date DESC
		LIMIT $3
	`

	rows, err := g.db.GetPool().Query(ctx, query, playerID, propType, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query game logs: %w", err)
	}
	defer rows.Close()

	var logs []*models.GameLog
	for rows.Next() {
		log := &models.GameLog{}
		err := rows.Scan(
			&log.ID, &log.PlayerID, &log.Sport, &log.PropType, &log.OpponentID,
			&log.GameDate, &log.Value, &log.ScrapedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game log: %w", err)
		}
		logs = append(logs, log)
	}

	return logs, rows.Err()
}

// GetMatchupAverage retrieves the player's average against a specific
// opponent. Returns nil when the player has never faced the opponent.
func (g *PostgresGameLogRepository) GetMatchupAverage(ctx context.Context, playerID int64, propType string, opponentID int64) (*float64, error) {
	query := `
		SELECT AVG(value)
		FROM game_logs
		WHERE player_id = $1 AND prop_type = $2 AND opponent_id = $3
	`

	var avg *float64
	err := g.db.GetPool().QueryRow(ctx, query, playerID, propType, opponentID).Scan(&avg)
	if err != nil {
		return nil, fmt.Errorf("failed to query matchup average: %w", err)
	}

	return avg, nil
}

// GetActualValue retrieves the observed value for a specific game date.
// Returns nil when the game has not been ingested yet.
func (g *PostgresGameLogRepository) GetActualValue(ctx context.Context, playerID int64, propType string, gameDate time.Time) (*float64, error) {
	query := `
		SELECT value
		FROM game_logs
		WHERE player_id = $1 AND prop_type = $2 AND game_date = $3
	`

	var value float64
	err := g.db.GetPool().QueryRow(ctx, query, playerID, propType, gameDate).Scan(&value)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query actual value: %w", err)
	}

	return &value, nil
}
