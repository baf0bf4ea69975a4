package winprob

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/propline/internal/config"
	"github.com/yourusername/propline/internal/metrics"
)

// GameContext identifies the game a win probability request is about
type GameContext struct {
	Sport    string    `json:"sport"`
	HomeTeam string    `json:"home_team"`
	AwayTeam string    `json:"away_team"`
	GameDate time.Time `json:"game_date"`
}

// WinProbability is the prediction returned by the service
type WinProbability struct {
	HomeWinProbability float64 `json:"home_win_probability"`
	AwayWinProbability float64 `json:"away_win_probability"`
	ModelVersion       string  `json:"model_version"`
	Confidence         float64 `json:"confidence"`
}

// Client provides HTTP access to the win probability service
type Client struct {
	client  *http.Client
	baseURL string
	logger  *logrus.Logger
}

// NewClient creates a new win probability client
func NewClient(cfg *config.WinProbConfig, logger *logrus.Logger) *Client {
	return &Client{
		client: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeoutSeconds) * time.Second,
		},
		baseURL: cfg.URL,
		logger:  logger,
	}
}

type predictRequest struct {
	Sport    string `json:"sport"`
	HomeTeam string `json:"home_team"`
	AwayTeam string `json:"away_team"`
	GameDate string `json:"game_date"`
}

// GetWinProbability requests a win probability for a game
func (c *Client) GetWinProbability(ctx context.Context, game GameContext) (*WinProbability, error) {
	start := time.Now()

	reqBody := predictRequest{
		Sport:    game.Sport,
		HomeTeam: game.HomeTeam,
		AwayTeam: game.AwayTeam,
		GameDate: game.GameDate.Format("2006-01-02"),
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/predict", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.RecordWinProbRequest("network_error")
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		metrics.RecordWinProbRequest("http_error")
		return nil, fmt.Errorf("%w: status %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var prediction WinProbability
	if err := json.NewDecoder(resp.Body).Decode(&prediction); err != nil {
		metrics.RecordWinProbRequest("decode_error")
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	if err := validateProbability(&prediction); err != nil {
		metrics.RecordWinProbRequest("invalid_probability")
		return nil, err
	}

	metrics.RecordWinProbRequest("success")
	c.logger.WithFields(logrus.Fields{
		"sport":       game.Sport,
		"home_team":   game.HomeTeam,
		"away_team":   game.AwayTeam,
		"duration_ms": float64(time.Since(start).Microseconds()) / 1000.0,
	}).Debug("Win probability fetched")

	return &prediction, nil
}

// TriggerTraining asks the service to retrain its model for a sport. The
// call returns once the service has accepted the request; training itself
// is asynchronous on the service side.
func (c *Client) TriggerTraining(ctx context.Context, sport string) error {
	jsonData, err := json.Marshal(map[string]string{"sport": sport})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/train", bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: train status %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	c.logger.WithField("sport", sport).Info("Model training triggered")
	return nil
}

// HealthCheck verifies the service is responsive
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: health status %d", ErrServiceUnavailable, resp.StatusCode)
	}

	return nil
}

func validateProbability(p *WinProbability) error {
	if p.HomeWinProbability < 0 || p.HomeWinProbability > 1 ||
		p.AwayWinProbability < 0 || p.AwayWinProbability > 1 {
		return ErrInvalidProbability
	}
	if math.Abs(p.HomeWinProbability+p.AwayWinProbability-1.0) > 1e-6 {
		return ErrInvalidProbability
	}
	return nil
}
