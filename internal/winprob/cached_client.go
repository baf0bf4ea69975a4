// Package winprob provides a cached win probability client.
package winprob

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/propline/internal/config"
)

// CachedClient wraps Client with prediction caching
type CachedClient struct {
	client *Client
	cache  *PredictionCache
	logger *logrus.Logger
}

// NewCachedClient creates a new cached win probability client
func NewCachedClient(cfg *config.WinProbConfig, logger *logrus.Logger) *CachedClient {
	return &CachedClient{
		client: NewClient(cfg, logger),
		cache: NewPredictionCache(
			time.Duration(cfg.CacheTTLSeconds)*time.Second,
			cfg.CacheMaxSize,
		),
		logger: logger,
	}
}

// GetWinProbability retrieves a win probability with caching
func (c *CachedClient) GetWinProbability(ctx context.Context, game GameContext) (*WinProbability, error) {
	cacheKey := CacheKey{
		Sport:    game.Sport,
		HomeTeam: game.HomeTeam,
		AwayTeam: game.AwayTeam,
		GameDate: game.GameDate,
	}

	if cached := c.cache.Get(cacheKey); cached != nil {
		c.logger.WithField("cache_key", cacheKey.String()).Debug("Cache hit for win probability")
		return cached, nil
	}

	c.logger.WithField("cache_key", cacheKey.String()).Debug("Cache miss, fetching win probability")
	result, err := c.client.GetWinProbability(ctx, game)
	if err != nil {
		return nil, err
	}

	c.cache.Set(cacheKey, result)
	return result, nil
}

// InvalidateSport drops cached predictions for a sport, used after model
// retraining
func (c *CachedClient) InvalidateSport(sport string) {
	c.cache.InvalidateSport(sport)
}

// TriggerTraining asks the service to retrain and drops the sport's cached
// predictions so the next fetch sees the new model
func (c *CachedClient) TriggerTraining(ctx context.Context, sport string) error {
	if err := c.client.TriggerTraining(ctx, sport); err != nil {
		return err
	}
	c.cache.InvalidateSport(sport)
	return nil
}

// HealthCheck verifies the underlying service is responsive
func (c *CachedClient) HealthCheck(ctx context.Context) error {
	return c.client.HealthCheck(ctx)
}
