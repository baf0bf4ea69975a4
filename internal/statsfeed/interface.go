package statsfeed

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// FeedSource defines the interface for fetching player statistics from
// external providers
type FeedSource interface {
	// FetchGameLogs retrieves game logs for a sport within the date range
	FetchGameLogs(ctx context.Context, sport string, startDate, endDate time.Time) ([]GameLogData, error)

	// FetchDefenseRatings retrieves defensive tier ratings for a sport and season
	FetchDefenseRatings(ctx context.Context, sport, season string) ([]DefenseRatingData, error)

	// Name returns the name of the feed source
	Name() string

	// IsEnabled returns whether this feed source is currently enabled
	IsEnabled() bool
}

// GameLogData represents a normalized game log from any feed source
type GameLogData struct {
	SourceID   string           `json:"source_id"`
	PlayerID   int64            `json:"player_id"`
	PlayerName string           `json:"player_name"`
	Team       string           `json:"team"`
	Sport      string           `json:"sport"`
	PropType   string           `json:"prop_type"`
	OpponentID int64            `json:"opponent_id"`
	GameDate   time.Time        `json:"game_date"`
	Value      float64          `json:"value"`
	Minutes    *decimal.Decimal `json:"minutes"`
	FetchedAt  time.Time        `json:"fetched_at"`
}

// DefenseRatingData represents a normalized defensive rating from any feed
// source
type DefenseRatingData struct {
	TeamID int64  `json:"team_id"`
	Sport  string `json:"sport"`
	Season string `json:"season"`
	Tier   int    `json:"tier"`
}

// FeedError represents errors from feed source operations
type FeedError struct {
	Source  string // Feed source name
	Code    string // Error code (e.g., "rate_limit_exceeded")
	Message string // Error message
	Err     error  // Underlying error
}

func (e FeedError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

func (e FeedError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeRateLimitExceeded    = "rate_limit_exceeded"
	ErrCodeAuthenticationFailed = "authentication_failed"
	ErrCodeNotFound             = "not_found"
	ErrCodeInvalidData          = "invalid_data"
	ErrCodeNetworkError         = "network_error"
	ErrCodeServerError          = "server_error"
)

// Sentinel errors
var (
	ErrRateLimitExceeded    = errors.New("rate limit exceeded")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrNotFound             = errors.New("data not found")
	ErrInvalidData          = errors.New("invalid data format")
)

// NewFeedError creates a new feed source error
func NewFeedError(source, code, message string, err error) FeedError {
	return FeedError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
