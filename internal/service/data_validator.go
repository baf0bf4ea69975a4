package service

import (
	"fmt"
	"time"

	"github.com/yourusername/propline/internal/logger"
	"github.com/yourusername/propline/internal/models"
	"github.com/yourusername/propline/internal/statsfeed"
)

// DataValidator validates feed payloads and analysis requests before they
// reach the database or the projection engine
type DataValidator struct {
	logger *logger.IngestionLogger
}

// NewDataValidator creates a new data validator
func NewDataValidator(logger *logger.IngestionLogger) *DataValidator {
	return &DataValidator{logger: logger}
}

// ValidateGameLog validates a normalized game log from a feed source
func (v *DataValidator) ValidateGameLog(log *statsfeed.GameLogData) []string {
	var errors []string

	if log.PlayerID <= 0 {
		errors = append(errors, fmt.Sprintf("player_id must be positive, got %d", log.PlayerID))
	}

	if log.Sport == "" {
		errors = append(errors, "sport is required")
	}

	if log.PropType == "" {
		errors = append(errors, "prop_type is required")
	}

	if log.GameDate.IsZero() {
		errors = append(errors, "game_date is required")
	}

	if log.Value < 0 {
		errors = append(errors, fmt.Sprintf("value cannot be negative, got %g", log.Value))
	}

	// Stat lines from the future are feed glitches, not games
	now := time.Now()
	if !log.GameDate.IsZero() && log.GameDate.After(now.Add(24*time.Hour)) {
		errors = append(errors, fmt.Sprintf("game_date is in the future: %s", log.GameDate.Format("2006-01-02")))
	}

	return errors
}

// ValidateDefenseRating validates a defensive tier rating from a feed source
func (v *DataValidator) ValidateDefenseRating(rating *statsfeed.DefenseRatingData) []string {
	var errors []string

	if rating.TeamID <= 0 {
		errors = append(errors, fmt.Sprintf("team_id must be positive, got %d", rating.TeamID))
	}

	if rating.Sport == "" {
		errors = append(errors, "sport is required")
	}

	if rating.Season == "" {
		errors = append(errors, "season is required")
	}

	if rating.Tier < 1 || rating.Tier > 5 {
		errors = append(errors, fmt.Sprintf("tier must be 1-5, got %d", rating.Tier))
	}

	return errors
}

// ValidatePropRequest validates an analysis request before it is handed to
// the projection engine
func (v *DataValidator) ValidatePropRequest(req *models.PropRequest) []string {
	var errors []string

	if req.PlayerID <= 0 {
		errors = append(errors, fmt.Sprintf("player_id must be positive, got %d", req.PlayerID))
	}

	if req.PropType == "" {
		errors = append(errors, "prop_type is required")
	}

	if req.PropLine <= 0 {
		errors = append(errors, fmt.Sprintf("prop_line must be positive, got %g", req.PropLine))
	}

	if len(req.GameValues) == 0 {
		errors = append(errors, "game_values is required")
	}

	for i, value := range req.GameValues {
		if value < 0 {
			errors = append(errors, fmt.Sprintf("game_values[%d] cannot be negative, got %g", i, value))
			break
		}
	}

	if req.OpponentTier != nil && (*req.OpponentTier < 1 || *req.OpponentTier > 5) {
		errors = append(errors, fmt.Sprintf("opponent_tier must be 1-5, got %d", *req.OpponentTier))
	}

	return errors
}

// IsValidSport checks whether the sport identifier is one we track
func (v *DataValidator) IsValidSport(sport string) bool {
	validSports := map[string]bool{
		"nba": true,
		"nfl": true,
		"mlb": true,
		"nhl": true,
	}
	return validSports[sport]
}

// IsValidPropType checks whether the prop type is one we project
func (v *DataValidator) IsValidPropType(propType string) bool {
	validTypes := map[string]bool{
		"points": true, "rebounds": true, "assists": true, "threes": true,
		"steals": true, "blocks": true,
		"passing_yards": true, "rushing_yards": true, "receiving_yards": true, "receptions": true,
		"strikeouts": true, "hits": true, "total_bases": true,
		"shots_on_goal": true, "saves": true,
	}
	return validTypes[propType]
}
