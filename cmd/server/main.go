// Package main provides the entry point for the propline analysis server.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/propline/internal/api"
	"github.com/yourusername/propline/internal/config"
	"github.com/yourusername/propline/internal/database"
	"github.com/yourusername/propline/internal/engine"
	"github.com/yourusername/propline/internal/health"
	"github.com/yourusername/propline/internal/logger"
	"github.com/yourusername/propline/internal/metrics"
	"github.com/yourusername/propline/internal/repository"
	"github.com/yourusername/propline/internal/scheduler"
	"github.com/yourusername/propline/internal/service"
	"github.com/yourusername/propline/internal/statsfeed"
	"github.com/yourusername/propline/internal/winprob"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

// trackedSports are the sports the scheduler synchronizes and evaluates
var trackedSports = []string{"nba", "nfl", "mlb", "nhl"}

var (
	configFile string
	cfg        *config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
}

var rootCmd = &cobra.Command{
	Use:   "propline-server",
	Short: "Player prop projection and analysis server",
	Long:  `Serves the anti-recency prop projection API, ingests stats feeds on a schedule, and runs the continuous-learning accuracy loop.`,
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

		if err := config.Validate(cfg); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		runServer()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func runServer() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	baseLogger := logger.NewLogger(cfg.App.LogLevel)
	baseLogger.WithFields(logrus.Fields{
		"version":     Version,
		"commit":      GitCommit,
		"environment": cfg.App.Environment,
	}).Info("Starting propline server")

	metrics.InitRegistry()

	db, err := database.Initialize(ctx, cfg)
	if err != nil {
		baseLogger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	repos, err := repository.NewRepositories(db)
	if err != nil {
		baseLogger.WithError(err).Fatal("Failed to initialize repositories")
	}

	engineCfg, err := engine.FromConfig(&cfg.Analysis)
	if err != nil {
		baseLogger.WithError(err).Fatal("Invalid analysis configuration")
	}
	eng, err := engine.New(engineCfg)
	if err != nil {
		baseLogger.WithError(err).Fatal("Failed to create projection engine")
	}

	winProbClient := winprob.NewCachedClient(&cfg.WinProb, baseLogger)

	validator := service.NewDataValidator(logger.NewIngestionLogger(baseLogger))
	analysisSvc := service.NewAnalysisService(eng, repos, validator, logger.NewAnalysisLogger(baseLogger))
	learningSvc := service.NewLearningService(repos, winProbClient, cfg.Learning, logger.NewIngestionLogger(baseLogger))

	feedSources, err := buildFeedSources(baseLogger)
	if err != nil {
		baseLogger.WithError(err).Fatal("Failed to create feed sources")
	}
	ingestionSvc := service.NewIngestionService(feedSources, repos, validator, logger.NewIngestionLogger(baseLogger), 500)

	sched := scheduler.NewScheduler(ingestionSvc, learningSvc, trackedSports, baseLogger)
	if err := sched.ScheduleFeedSync(cfg.StatsFeed.Schedule.FeedSync); err != nil {
		baseLogger.WithError(err).Fatal("Failed to schedule feed sync")
	}
	if err := sched.ScheduleAccuracyEvaluation(cfg.StatsFeed.Schedule.AccuracyEvaluation); err != nil {
		baseLogger.WithError(err).Fatal("Failed to schedule accuracy evaluation")
	}
	if err := sched.Start(); err != nil {
		baseLogger.WithError(err).Fatal("Failed to start scheduler")
	}
	defer sched.Stop()

	healthServer := health.NewServer(health.Config{
		ServiceName: cfg.App.Name,
		Version:     Version,
		Port:        cfg.API.HealthPort,
		Logger:      baseLogger,
		DB:          db,
		WinProb:     winProbClient,
	})
	if err := healthServer.Start(ctx); err != nil {
		baseLogger.WithError(err).Fatal("Failed to start health server")
	}

	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		metricsServer = startMetricsServer(baseLogger)
	}

	apiServer := api.NewServer(&cfg.API, cfg.App.Name, Version, analysisSvc, repos.Prediction, winProbClient, trackedSports, baseLogger)
	go func() {
		if err := apiServer.Start(); err != nil {
			baseLogger.WithError(err).Error("API server error")
			cancel()
		}
	}()

	healthServer.SetReady(true)
	baseLogger.Info("Propline server ready")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		baseLogger.WithField("signal", sig.String()).Info("Shutdown signal received")
	case <-ctx.Done():
	}

	healthServer.SetReady(false)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		baseLogger.WithError(err).Error("API server shutdown error")
	}
	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			baseLogger.WithError(err).Error("Metrics server shutdown error")
		}
	}

	baseLogger.Info("Propline server stopped")
}

// buildFeedSources wires the shared rate-limited HTTP client and creates all
// enabled feed sources
func buildFeedSources(baseLogger *logrus.Logger) ([]statsfeed.FeedSource, error) {
	httpCfg := statsfeed.DefaultHTTPClientConfig()
	for _, src := range cfg.StatsFeed.Sources {
		if src.Enabled && src.RateLimit > 0 {
			httpCfg.RateLimit = src.RateLimit
			break
		}
	}

	httpClient := statsfeed.NewRateLimitedHTTPClient(httpCfg, baseLogger)
	return statsfeed.NewFactory(baseLogger).NewFeedSources(cfg.StatsFeed, httpClient)
}

// startMetricsServer serves the Prometheus scrape endpoint in the background
func startMetricsServer(baseLogger *logrus.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(cfg.Metrics.Path, metrics.Handler())

	server := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Metrics.Port),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		baseLogger.WithFields(logrus.Fields{
			"port": cfg.Metrics.Port,
			"path": cfg.Metrics.Path,
		}).Info("Metrics server starting")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			baseLogger.WithError(err).Error("Metrics server error")
		}
	}()

	return server
}
