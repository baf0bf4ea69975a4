package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/yourusername/propline/internal/database"
	"github.com/yourusername/propline/internal/models"
)

// PostgresPlayerRepository implements PlayerRepository for PostgreSQL
type PostgresPlayerRepository struct {
	db *database.DB
}

// NewPostgresPlayerRepository creates a new player repository
func NewPostgresPlayerRepository(db *database.DB) PlayerRepository {
	return &PostgresPlayerRepository{db: db}
}

// Upsert inserts a player or refreshes an existing one
func (p *PostgresPlayerRepository) Upsert(ctx context.Context, player *models.Player) error {
	query := `
		INSERT INTO players (id, name, team, sport, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, team = EXCLUDED.team, sport = EXCLUDED.sport, updated_at = now()
	`

	_, err := p.db.GetPool().Exec(ctx, query, player.ID, player.Name, player.Team, player.Sport)
	if err != nil {
		return fmt.Errorf("failed to upsert player: %w", err)
	}

	return nil
}

// GetByID retrieves a player by ID
func (p *PostgresPlayerRepository) GetByID(ctx context.Context, id int64) (*models.Player, error) {
	query := `
		SELECT id, name, team, sport, created_at, updated_at
		FROM players
		WHERE id = $1
	`

	player := &models.Player{}
	err := p.db.GetPool().QueryRow(ctx, query, id).Scan(
		&player.ID, &player.Name, &player.Team, &player.Sport,
		&player.CreatedAt, &player.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return player, nil
}

// GetBySport retrieves all tracked players for a sport
func (p *PostgresPlayerRepository) GetBySport(ctx context.Context, sport string) ([]*models.Player, error) {
	query := `
		SELECT id, name, team, sport, created_at, updated_at
		FROM players
		WHERE sport = $1
		ORDER BY name ASC
	`

	rows, err := p.db.GetPool().Query(ctx, query, sport)
	if err != nil {
		return nil, fmt.Errorf("failed to query players by sport: %w", err)
	}
	defer rows.Close()

	var players []*models.Player
	for rows.Next() {
		player := &models.Player{}
		err := rows.Scan(
			&player.ID, &player.Name, &player.Team, &player.Sport,
			&player.CreatedAt, &player.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, player)
	}

	return players, rows.Err()
}

// Count returns the number of tracked players
func (p *PostgresPlayerRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := p.db.GetPool().QueryRow(ctx, `SELECT COUNT(*) FROM players`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count players: %w", err)
	}
	return count, nil
}
