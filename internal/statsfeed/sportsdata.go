package statsfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const feedDisabledMsg = "feed source is disabled"

// SportsDataClient implements FeedSource for a JSON stats API. The provider
// serializes numeric fields as strings, so values go through decimal parsing
// before normalization.
type SportsDataClient struct {
	httpClient *RateLimitedHTTPClient
	name       string
	baseURL    string
	apiKey     string
	enabled    bool
	logger     *logrus.Entry
}

// sportsDataGameLog represents a game log entry from the provider API
type sportsDataGameLog struct {
	ID         string  `json:"id"`
	PlayerID   int64   `json:"playerId"`
	PlayerName string  `json:"playerName"`
	Team       string  `json:"team"`
	StatType   string  `json:"statType"`
	OpponentID int64   `json:"opponentId"`
	GameDate   string  `json:"gameDate"`
	Value      string  `json:"value"`
	Minutes    *string `json:"minutesPlayed"`
}

// sportsDataDefenseRating represents a defensive rating entry from the
// provider API
type sportsDataDefenseRating struct {
	TeamID int64  `json:"teamId"`
	Season string `json:"season"`
	Tier   int    `json:"defensiveTier"`
}

// NewSportsDataClient creates a new stats feed client
func NewSportsDataClient(httpClient *RateLimitedHTTPClient, name, baseURL, apiKey string, enabled bool, baseLogger *logrus.Logger) *SportsDataClient {
	if baseLogger == nil {
		baseLogger = logrus.New()
		baseLogger.SetOutput(io.Discard)
	}

	return &SportsDataClient{
		httpClient: httpClient,
		name:       name,
		baseURL:    baseURL,
		apiKey:     apiKey,
		enabled:    enabled,
		logger:     baseLogger.WithField("feed_source", name),
	}
}

// FetchGameLogs retrieves game logs for a sport within the date range
func (c *SportsDataClient) FetchGameLogs(ctx context.Context, sport string, startDate, endDate time.Time) ([]GameLogData, error) {
	if !c.enabled {
		return nil, NewFeedError(c.name, ErrCodeNetworkError, feedDisabledMsg, nil)
	}

	url := fmt.Sprintf("%s/gamelogs?sport=%s&from=%s&to=%s",
		c.baseURL, sport, startDate.Format("2006-01-02"), endDate.Format("2006-01-02"))

	resp, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return nil, err
	}

	var entries []sportsDataGameLog
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, NewFeedError(c.name, ErrCodeInvalidData, "failed to parse response", err)
	}

	logs := make([]GameLogData, 0, len(entries))
	for _, entry := range entries {
		log, err := c.convertGameLog(sport, &entry)
		if err != nil {
			c.logger.Warnf("Skipping malformed game log %s: %v", entry.ID, err)
			continue
		}
		logs = append(logs, *log)
	}

	return logs, nil
}

// FetchDefenseRatings retrieves defensive tier ratings for a sport and season
func (c *SportsDataClient) FetchDefenseRatings(ctx context.Context, sport, season string) ([]DefenseRatingData, error) {
	if !c.enabled {
		return nil, NewFeedError(c.name, ErrCodeNetworkError, feedDisabledMsg, nil)
	}

	url := fmt.Sprintf("%s/defense?sport=%s&season=%s", c.baseURL, sport, season)

	resp, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return nil, err
	}

	var entries []sportsDataDefenseRating
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, NewFeedError(c.name, ErrCodeInvalidData, "failed to parse response", err)
	}

	ratings := make([]DefenseRatingData, 0, len(entries))
	for _, entry := range entries {
		if entry.Tier < 1 || entry.Tier > 5 {
			c.logger.Warnf("Skipping defense rating with tier %d for team %d", entry.Tier, entry.TeamID)
			continue
		}
		ratings = append(ratings, DefenseRatingData{
			TeamID: entry.TeamID,
			Sport:  sport,
			Season: entry.Season,
			Tier:   entry.Tier,
		})
	}

	return ratings, nil
}

// Name returns the feed source name
func (c *SportsDataClient) Name() string {
	return c.name
}

// IsEnabled returns whether this feed source is enabled
func (c *SportsDataClient) IsEnabled() bool {
	return c.enabled
}

func (c *SportsDataClient) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, NewFeedError(c.name, ErrCodeNetworkError, "failed to create request", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, NewFeedError(c.name, ErrCodeNetworkError, "request failed", err)
	}

	return resp, nil
}

func (c *SportsDataClient) checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return NewFeedError(c.name, ErrCodeAuthenticationFailed, "invalid API key", ErrAuthenticationFailed)
	case resp.StatusCode == http.StatusTooManyRequests:
		return NewFeedError(c.name, ErrCodeRateLimitExceeded, "rate limit exceeded", ErrRateLimitExceeded)
	case resp.StatusCode == http.StatusNotFound:
		return NewFeedError(c.name, ErrCodeNotFound, "resource not found", ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(resp.Body)
		return NewFeedError(c.name, ErrCodeServerError, fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)), nil)
	}
	return nil
}

// convertGameLog converts a provider entry to normalized GameLogData
func (c *SportsDataClient) convertGameLog(sport string, entry *sportsDataGameLog) (*GameLogData, error) {
	gameDate, err := time.Parse("2006-01-02", entry.GameDate)
	if err != nil {
		return nil, fmt.Errorf("invalid game date %q: %w", entry.GameDate, err)
	}

	value, err := decimal.NewFromString(entry.Value)
	if err != nil {
		return nil, fmt.Errorf("invalid stat value %q: %w", entry.Value, err)
	}

	return &GameLogData{
		SourceID:   entry.ID,
		PlayerID:   entry.PlayerID,
		PlayerName: entry.PlayerName,
		Team:       entry.Team,
		Sport:      sport,
		PropType:   entry.StatType,
		OpponentID: entry.OpponentID,
		GameDate:   gameDate,
		Value:      value.InexactFloat64(),
		Minutes:    parseDecimal(entry.Minutes),
		FetchedAt:  time.Now().UTC(),
	}, nil
}

// parseDecimal parses a string to decimal.Decimal, returning nil if invalid
func parseDecimal(s *string) *decimal.Decimal {
	if s == nil || *s == "" {
		return nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return nil
	}
	return &d
}
