package models

import (
	"time"

	"github.com/google/uuid"
)

// GameLog represents one observed statistical outcome for a player in a
// single game, as captured by the stats feed.
type GameLog struct {
	ID         uuid.UUID `db:"id" json:"id"`
	PlayerID   int64     `db:"player_id" json:"player_id" validate:"required"`
	Sport      string    `db:"sport" json:"sport" validate:"required"`
	PropType   string    `db:"prop_type" json:"prop_type" validate:"required"`
	OpponentID int64     `db:"opponent_id" json:"opponent_id"`
	GameDate   time.Time `db:"game_date" json:"game_date" validate:"required"`
	Value      float64   `db:"value" json:"value"`
	ScrapedAt  time.Time `db:"scraped_at" json:"scraped_at"`
}

// Player represents a tracked player
type Player struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name" validate:"required"`
	Team      string    `db:"team" json:"team"`
	Sport     string    `db:"sport" json:"sport" validate:"required"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// TeamDefense holds the defensive-tier ordinal for an opponent. Tier 1 is
// the toughest defense, tier 5 the softest.
type TeamDefense struct {
	TeamID    int64     `db:"team_id" json:"team_id"`
	Sport     string    `db:"sport" json:"sport"`
	Season    string    `db:"season" json:"season"`
	Tier      int       `db:"tier" json:"tier" validate:"required,min=1,max=5"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
