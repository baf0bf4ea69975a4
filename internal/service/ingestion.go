package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/propline/internal/logger"
	"github.com/yourusername/propline/internal/metrics"
	"github.com/yourusername/propline/internal/models"
	"github.com/yourusername/propline/internal/repository"
	"github.com/yourusername/propline/internal/statsfeed"
)

// IngestionStats summarizes one feed synchronization run
type IngestionStats struct {
	Source           string        `json:"source"`
	TotalFetched     int           `json:"total_fetched"`
	GamesIngested    int           `json:"games_ingested"`
	PlayersUpdated   int           `json:"players_updated"`
	ValidationErrors int           `json:"validation_errors"`
	Errors           int           `json:"errors"`
	Duration         time.Duration `json:"duration"`
}

// IngestionService pulls game logs and defensive ratings from the configured
// feed sources and persists them
type IngestionService struct {
	sources   []statsfeed.FeedSource
	repos     *repository.Repositories
	validator *DataValidator
	logger    *logger.IngestionLogger
	batchSize int
}

// NewIngestionService creates a new ingestion service
func NewIngestionService(sources []statsfeed.FeedSource, repos *repository.Repositories, validator *DataValidator, log *logger.IngestionLogger, batchSize int) *IngestionService {
	if batchSize <= 0 {
		batchSize = 500
	}

	return &IngestionService{
		sources:   sources,
		repos:     repos,
		validator: validator,
		logger:    log,
		batchSize: batchSize,
	}
}

// SyncGameLogs fetches game logs for a sport from every enabled source and
// persists them. Per-source failures are logged and counted but do not stop
// the remaining sources.
func (s *IngestionService) SyncGameLogs(ctx context.Context, sport string, startDate, endDate time.Time) (*IngestionStats, error) {
	start := time.Now()
	stats := &IngestionStats{}

	if !s.validator.IsValidSport(sport) {
		return nil, fmt.Errorf("unknown sport: %s", sport)
	}

	synced := 0
	for _, source := range s.sources {
		if !source.IsEnabled() {
			continue
		}
		stats.Source = source.Name()

		if err := s.syncSource(ctx, source, sport, startDate, endDate, stats); err != nil {
			stats.Errors++
			metrics.RecordFeedSyncError()
			s.logger.LogFeedError(source.Name(), err.Error())
			continue
		}
		synced++
	}

	if synced == 0 && stats.Errors > 0 {
		return stats, fmt.Errorf("all feed sources failed for sport %s", sport)
	}

	stats.Duration = time.Since(start)
	metrics.RecordFeedSync(stats.Duration.Seconds())
	s.logger.LogFeedSync(stats.Source, stats.GamesIngested, stats.PlayersUpdated, float64(stats.Duration.Microseconds())/1000.0)

	if count, err := s.repos.Player.Count(ctx); err == nil {
		metrics.UpdateTrackedPlayers(float64(count))
	}

	return stats, nil
}

// SyncDefenseRatings fetches defensive tier ratings for a sport and season
// from every enabled source
func (s *IngestionService) SyncDefenseRatings(ctx context.Context, sport, season string) (int, error) {
	if !s.validator.IsValidSport(sport) {
		return 0, fmt.Errorf("unknown sport: %s", sport)
	}

	updated := 0
	for _, source := range s.sources {
		if !source.IsEnabled() {
			continue
		}

		ratings, err := source.FetchDefenseRatings(ctx, sport, season)
		if err != nil {
			metrics.RecordFeedSyncError()
			s.logger.LogFeedError(source.Name(), err.Error())
			continue
		}

		for i := range ratings {
			if errs := s.validator.ValidateDefenseRating(&ratings[i]); len(errs) > 0 {
				continue
			}

			defense := &models.TeamDefense{
				TeamID:    ratings[i].TeamID,
				Sport:     ratings[i].Sport,
				Season:    ratings[i].Season,
				Tier:      ratings[i].Tier,
				UpdatedAt: time.Now().UTC(),
			}
			if err := s.repos.TeamDefense.Upsert(ctx, defense); err != nil {
				s.logger.LogFeedError(source.Name(), fmt.Sprintf("failed to upsert tier for team %d: %v", defense.TeamID, err))
				continue
			}
			updated++
		}
	}

	return updated, nil
}

// syncSource fetches, validates and persists one source's game logs
func (s *IngestionService) syncSource(ctx context.Context, source statsfeed.FeedSource, sport string, startDate, endDate time.Time, stats *IngestionStats) error {
	logs, err := source.FetchGameLogs(ctx, sport, startDate, endDate)
	if err != nil {
		return fmt.Errorf("failed to fetch game logs: %w", err)
	}
	stats.TotalFetched += len(logs)

	seen := make(map[int64]bool)
	batch := make([]*models.GameLog, 0, s.batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := s.repos.GameLog.InsertBatch(ctx, batch); err != nil {
			return fmt.Errorf("failed to insert game log batch: %w", err)
		}
		stats.GamesIngested += len(batch)
		batch = batch[:0]
		return nil
	}

	for i := range logs {
		if errs := s.validator.ValidateGameLog(&logs[i]); len(errs) > 0 {
			stats.ValidationErrors++
			continue
		}

		if !seen[logs[i].PlayerID] {
			player := &models.Player{
				ID:    logs[i].PlayerID,
				Name:  logs[i].PlayerName,
				Team:  logs[i].Team,
				Sport: logs[i].Sport,
			}
			if err := s.repos.Player.Upsert(ctx, player); err != nil {
				return fmt.Errorf("failed to upsert player %d: %w", player.ID, err)
			}
			seen[logs[i].PlayerID] = true
			stats.PlayersUpdated++
		}

		batch = append(batch, &models.GameLog{
			ID:         uuid.New(),
			PlayerID:   logs[i].PlayerID,
			Sport:      logs[i].Sport,
			PropType:   logs[i].PropType,
			OpponentID: logs[i].OpponentID,
			GameDate:   logs[i].GameDate,
			Value:      logs[i].Value,
			ScrapedAt:  time.Now().UTC(),
		})

		if len(batch) >= s.batchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}

	return flush()
}
