// Package main provides a one-shot CLI for syncing stats feeds into the
// database, useful for backfills and operational runs outside the scheduler.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/propline/internal/config"
	"github.com/yourusername/propline/internal/database"
	"github.com/yourusername/propline/internal/logger"
	"github.com/yourusername/propline/internal/metrics"
	"github.com/yourusername/propline/internal/repository"
	"github.com/yourusername/propline/internal/service"
	"github.com/yourusername/propline/internal/statsfeed"
)

var (
	configFile string
	sport      string
	season     string
	daysBack   int
	defense    bool
	cfg        *config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.Flags().StringVar(&sport, "sport", "nba", "Sport to synchronize")
	rootCmd.Flags().StringVar(&season, "season", "", "Season label for defense ratings, e.g. 2025-26")
	rootCmd.Flags().IntVar(&daysBack, "days", 7, "Number of days of game logs to backfill")
	rootCmd.Flags().BoolVar(&defense, "defense", false, "Also sync defensive tier ratings")
}

var rootCmd = &cobra.Command{
	Use:   "propline-ingest",
	Short: "Sync stats feeds into the projection database",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadWithDefaults(configFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
			region := os.Getenv("AWS_REGION")
			secretName := os.Getenv("AWS_SECRET_NAME")
			if region == "" || secretName == "" {
				return fmt.Errorf("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
			}
			if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
				return fmt.Errorf("failed to load secrets: %w", err)
			}
		}

		return config.Validate(cfg)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIngestion()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func runIngestion() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Hour)
	defer cancel()

	baseLogger := logger.NewLogger(cfg.App.LogLevel)
	metrics.InitRegistry()

	db, err := database.Initialize(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	repos, err := repository.NewRepositories(db)
	if err != nil {
		return fmt.Errorf("failed to initialize repositories: %w", err)
	}

	httpCfg := statsfeed.DefaultHTTPClientConfig()
	for _, src := range cfg.StatsFeed.Sources {
		if src.Enabled && src.RateLimit > 0 {
			httpCfg.RateLimit = src.RateLimit
			break
		}
	}
	httpClient := statsfeed.NewRateLimitedHTTPClient(httpCfg, baseLogger)

	sources, err := statsfeed.NewFactory(baseLogger).NewFeedSources(cfg.StatsFeed, httpClient)
	if err != nil {
		return fmt.Errorf("failed to create feed sources: %w", err)
	}

	ingestionLog := logger.NewIngestionLogger(baseLogger)
	ingestion := service.NewIngestionService(sources, repos, service.NewDataValidator(ingestionLog), ingestionLog, 500)

	endDate := time.Now().UTC()
	startDate := endDate.AddDate(0, 0, -daysBack)

	stats, err := ingestion.SyncGameLogs(ctx, sport, startDate, endDate)
	if err != nil {
		return fmt.Errorf("feed sync failed: %w", err)
	}

	baseLogger.Infof("Synced %d game logs for %d players from %s",
		stats.GamesIngested, stats.PlayersUpdated, stats.Source)

	if defense {
		if season == "" {
			return fmt.Errorf("--season is required with --defense")
		}
		updated, err := ingestion.SyncDefenseRatings(ctx, sport, season)
		if err != nil {
			return fmt.Errorf("defense ratings sync failed: %w", err)
		}
		baseLogger.Infof("Updated %d defensive tier ratings for %s %s", updated, sport, season)
	}

	return nil
}
