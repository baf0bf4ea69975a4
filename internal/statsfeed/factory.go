package statsfeed

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/propline/internal/config"
)

// Factory creates FeedSource implementations based on configuration
type Factory struct {
	logger *logrus.Logger
}

// NewFactory creates a new feed source factory
func NewFactory(logger *logrus.Logger) *Factory {
	return &Factory{logger: logger}
}

// NewFeedSource creates a new FeedSource from a single source configuration
func (f *Factory) NewFeedSource(cfg config.DataSourceConfig, httpClient *RateLimitedHTTPClient) (FeedSource, error) {
	if httpClient == nil {
		return nil, fmt.Errorf("HTTP client is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required for feed source %s", cfg.Name)
	}

	return NewSportsDataClient(httpClient, cfg.Name, cfg.BaseURL, cfg.APIKey, cfg.Enabled, f.logger), nil
}

// NewFeedSources creates all enabled feed sources from configuration
func (f *Factory) NewFeedSources(feedCfg config.StatsFeedConfig, httpClient *RateLimitedHTTPClient) ([]FeedSource, error) {
	var sources []FeedSource

	for _, srcCfg := range feedCfg.Sources {
		if !srcCfg.Enabled {
			if f.logger != nil {
				f.logger.Infof("Skipping disabled feed source: %s", srcCfg.Name)
			}
			continue
		}

		source, err := f.NewFeedSource(srcCfg, httpClient)
		if err != nil {
			return nil, fmt.Errorf("failed to create feed source %s: %w", srcCfg.Name, err)
		}

		sources = append(sources, source)
		if f.logger != nil {
			f.logger.Infof("Created feed source: %s", srcCfg.Name)
		}
	}

	if len(sources) == 0 {
		return nil, fmt.Errorf("no enabled feed sources configured")
	}

	return sources, nil
}
