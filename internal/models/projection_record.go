package models

import (
	"time"

	"github.com/google/uuid"
)

// ProjectionRecord is a persisted ProjectionResult. Records are written once
// per analysis and never mutated; verification happens through the
// prediction tables.
type ProjectionRecord struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	PlayerID        int64           `db:"player_id" json:"player_id"`
	Sport           string          `db:"sport" json:"sport"`
	PropType        string          `db:"prop_type" json:"prop_type"`
	PropLine        float64         `db:"prop_line" json:"prop_line"`
	SeasonBaseline  float64         `db:"season_baseline" json:"season_baseline"`
	FinalProjection float64         `db:"final_projection" json:"final_projection"`
	EdgePercentage  float64         `db:"edge_percentage" json:"edge_percentage"`
	EdgeDirection   EdgeDirection   `db:"edge_direction" json:"edge_direction"`
	ConfidenceLevel ConfidenceLevel `db:"confidence_level" json:"confidence_level"`
	RecommendedPlay *EdgeDirection  `db:"recommended_play" json:"recommended_play"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
}

// NewProjectionRecord builds a persisted record from an engine result
func NewProjectionRecord(sport string, result *ProjectionResult) *ProjectionRecord {
	return &ProjectionRecord{
		ID:              uuid.New(),
		PlayerID:        result.PlayerID,
		Sport:           sport,
		PropType:        result.PropType,
		PropLine:        result.PropLine,
		SeasonBaseline:  result.SeasonBaseline,
		FinalProjection: result.FinalProjection,
		EdgePercentage:  result.EdgePercentage,
		EdgeDirection:   result.EdgeDirection,
		ConfidenceLevel: result.ConfidenceLevel,
		RecommendedPlay: result.RecommendedPlay,
		CreatedAt:       time.Now().UTC(),
	}
}
