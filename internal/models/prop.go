package models

// EdgeDirection represents the direction of a projected edge against the line
type EdgeDirection string

const (
	EdgeDirectionOver    EdgeDirection = "OVER"
	EdgeDirectionUnder   EdgeDirection = "UNDER"
	EdgeDirectionNeutral EdgeDirection = "NEUTRAL"
)

// ConfidenceLevel represents the categorical reliability grade of a projection
type ConfidenceLevel string

const (
	ConfidenceLow    ConfidenceLevel = "low"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceHigh   ConfidenceLevel = "high"
)

// TrendDirection represents the directional drift of the most recent games
type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendFlat       TrendDirection = "flat"
)

// PropRequest describes a single prop analysis request. GameValues is the
// full chronological season history for the player/prop-type pair.
type PropRequest struct {
	PlayerID       int64     `json:"player_id" validate:"required"`
	PropType       string    `json:"prop_type" validate:"required"`
	PropLine       float64   `json:"prop_line" validate:"required,gt=0"`
	GameValues     []float64 `json:"game_values" validate:"required,min=1"`
	OpponentTier   *int      `json:"opponent_tier,omitempty"`
	MatchupAverage *float64  `json:"matchup_average,omitempty"`
}

// BaselineStatistics holds the season-long central tendency and dispersion
// derived once per analysis from the full historical series.
type BaselineStatistics struct {
	Mean       float64 `json:"mean"`
	Median     float64 `json:"median"`
	StdDev     float64 `json:"std_dev"`
	Floor      float64 `json:"floor"`
	Ceiling    float64 `json:"ceiling"`
	SampleSize int     `json:"sample_size"`
	LowSample  bool    `json:"low_sample"`
}

// RecentForm is the outlier-checked recent-window assessment
type RecentForm struct {
	RecentMean      float64 `json:"recent_mean"`
	RecentValueUsed float64 `json:"recent_value_used"`
	WasOutlier      bool    `json:"was_outlier"`
}

// TrendSignal is the directional drift over the last few games plus the
// corrective value fed into synthesis.
type TrendSignal struct {
	Direction TrendDirection `json:"direction"`
	Slope     float64        `json:"slope"`
	Value     float64        `json:"value"`
}

// ProjectionResult is the final per-request output of the projection engine.
// The JSON field names are the external contract and must not change.
type ProjectionResult struct {
	PlayerID        int64              `json:"player_id"`
	PropType        string             `json:"prop_type"`
	PropLine        float64            `json:"prop_line"`
	SeasonBaseline  float64            `json:"season_baseline"`
	FinalProjection float64            `json:"final_projection"`
	EdgePercentage  float64            `json:"edge_percentage"`
	EdgeDirection   EdgeDirection      `json:"edge_direction"`
	ConfidenceLevel ConfidenceLevel    `json:"confidence_level"`
	RecommendedPlay *EdgeDirection     `json:"recommended_play"`
	Floor           float64            `json:"floor"`
	Ceiling         float64            `json:"ceiling"`
	WeightsApplied  map[string]float64 `json:"weights_applied"`
	WasOutlier      bool               `json:"was_outlier"`
	TrendDirection  TrendDirection     `json:"trend_direction"`
}

// MethodologySnapshot is a read-only copy of the weighting methodology
// exposed for introspection.
type MethodologySnapshot struct {
	Weights          map[string]float64 `json:"weights"`
	RecentFormGames  int                `json:"recent_form_games"`
	TrendGames       int                `json:"trend_validation_games"`
	MinSampleSize    int                `json:"min_sample_size"`
	StdDevThreshold  float64            `json:"std_dev_threshold"`
	MinEdgeThreshold float64            `json:"min_edge_threshold"`
}
