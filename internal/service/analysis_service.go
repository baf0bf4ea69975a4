package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/propline/internal/engine"
	"github.com/yourusername/propline/internal/logger"
	"github.com/yourusername/propline/internal/metrics"
	"github.com/yourusername/propline/internal/models"
	"github.com/yourusername/propline/internal/repository"
)

// AnalysisRequest identifies a prop to analyze against stored game history.
// The game series, matchup average and opponent tier are loaded from the
// repository, not supplied by the caller.
type AnalysisRequest struct {
	PlayerID   int64     `json:"player_id" validate:"required"`
	Sport      string    `json:"sport" validate:"required"`
	PropType   string    `json:"prop_type" validate:"required"`
	PropLine   float64   `json:"prop_line" validate:"required,gt=0"`
	OpponentID int64     `json:"opponent_id"`
	GameDate   time.Time `json:"game_date"`
	Season     string    `json:"season"`
}

// BatchAnalysisItem is one result-or-error slot of a batch request,
// index-aligned with the input
type BatchAnalysisItem struct {
	Result *models.ProjectionResult `json:"result,omitempty"`
	Error  string                   `json:"error,omitempty"`
}

// AnalysisService orchestrates prop analysis: it assembles engine input from
// the repositories, runs the projection, and persists the result for the
// learning loop.
type AnalysisService struct {
	engine    *engine.Engine
	repos     *repository.Repositories
	validator *DataValidator
	logger    *logger.AnalysisLogger
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(eng *engine.Engine, repos *repository.Repositories, validator *DataValidator, log *logger.AnalysisLogger) *AnalysisService {
	return &AnalysisService{
		engine:    eng,
		repos:     repos,
		validator: validator,
		logger:    log,
	}
}

// AnalyzeProp loads the player history, runs the projection engine and
// persists both the projection record and the prediction log entry
func (s *AnalysisService) AnalyzeProp(ctx context.Context, req AnalysisRequest) (*models.ProjectionResult, error) {
	start := time.Now()

	propReq, err := s.buildPropRequest(ctx, req)
	if err != nil {
		metrics.RecordAnalysisError()
		s.logger.LogAnalysisError(req.PlayerID, req.PropType, err.Error())
		return nil, err
	}

	result, err := s.engine.AnalyzeProp(*propReq)
	if err != nil {
		metrics.RecordAnalysisError()
		s.logger.LogAnalysisError(req.PlayerID, req.PropType, err.Error())
		return nil, err
	}

	if err := s.persistResult(ctx, req, result); err != nil {
		return nil, err
	}

	s.recordResult(req, result, time.Since(start))
	return result, nil
}

// AnalyzeBatch evaluates independent prop requests. Items with missing
// history or engine errors fail individually without aborting the batch.
func (s *AnalysisService) AnalyzeBatch(ctx context.Context, reqs []AnalysisRequest) ([]BatchAnalysisItem, error) {
	start := time.Now()
	items := make([]BatchAnalysisItem, len(reqs))

	propReqs := make([]models.PropRequest, len(reqs))
	buildable := make([]bool, len(reqs))
	for i, req := range reqs {
		propReq, err := s.buildPropRequest(ctx, req)
		if err != nil {
			items[i] = BatchAnalysisItem{Error: err.Error()}
			metrics.RecordAnalysisError()
			continue
		}
		propReqs[i] = *propReq
		buildable[i] = true
	}

	outcomes := s.engine.BatchAnalyze(propReqs)

	succeeded := 0
	for i := range reqs {
		if !buildable[i] {
			continue
		}
		if outcomes[i].Err != nil {
			items[i] = BatchAnalysisItem{Error: outcomes[i].Err.Error()}
			metrics.RecordAnalysisError()
			continue
		}

		result := outcomes[i].Result
		if err := s.persistResult(ctx, reqs[i], result); err != nil {
			items[i] = BatchAnalysisItem{Error: err.Error()}
			continue
		}

		items[i] = BatchAnalysisItem{Result: result}
		s.recordResult(reqs[i], result, 0)
		succeeded++
	}

	duration := time.Since(start)
	metrics.RecordBatchAnalysis(duration.Seconds())
	s.logger.LogBatchAnalysis(len(reqs), succeeded, len(reqs)-succeeded, float64(duration.Microseconds())/1000.0)

	return items, nil
}

// Methodology exposes the engine's weighting methodology
func (s *AnalysisService) Methodology() models.MethodologySnapshot {
	return s.engine.Methodology()
}

// GetRecentProjections returns recently persisted projections for a player
func (s *AnalysisService) GetRecentProjections(ctx context.Context, playerID int64, propType string, limit int) ([]*models.ProjectionRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.repos.Projection.GetRecentByPlayer(ctx, playerID, propType, limit)
}

// buildPropRequest assembles the engine input from stored game history. The
// matchup average and defensive tier are optional; missing context shrinks
// the weight vector rather than failing the request.
func (s *AnalysisService) buildPropRequest(ctx context.Context, req AnalysisRequest) (*models.PropRequest, error) {
	series, err := s.repos.GameLog.GetSeries(ctx, req.PlayerID, req.PropType)
	if err != nil {
		return nil, fmt.Errorf("failed to load game history: %w", err)
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("%w: no game history for player %d prop %s", engine.ErrInsufficientData, req.PlayerID, req.PropType)
	}

	propReq := &models.PropRequest{
		PlayerID:   req.PlayerID,
		PropType:   req.PropType,
		PropLine:   req.PropLine,
		GameValues: series,
	}

	if req.OpponentID > 0 {
		matchupAvg, err := s.repos.GameLog.GetMatchupAverage(ctx, req.PlayerID, req.PropType, req.OpponentID)
		if err != nil {
			return nil, fmt.Errorf("failed to load matchup history: %w", err)
		}
		propReq.MatchupAverage = matchupAvg

		season := req.Season
		if season == "" {
			season = currentSeason(req.GameDate)
		}
		tier, err := s.repos.TeamDefense.GetTier(ctx, req.OpponentID, req.Sport, season)
		if err != nil {
			return nil, fmt.Errorf("failed to load defensive tier: %w", err)
		}
		propReq.OpponentTier = tier
	}

	if errs := s.validator.ValidatePropRequest(propReq); len(errs) > 0 {
		return nil, fmt.Errorf("invalid analysis request: %s", strings.Join(errs, "; "))
	}

	return propReq, nil
}

// persistResult writes the projection record and, when the game date is
// known, a prediction log entry for later verification
func (s *AnalysisService) persistResult(ctx context.Context, req AnalysisRequest, result *models.ProjectionResult) error {
	record := models.NewProjectionRecord(req.Sport, result)
	if err := s.repos.Projection.Insert(ctx, record); err != nil {
		return fmt.Errorf("failed to persist projection: %w", err)
	}

	if req.GameDate.IsZero() {
		return nil
	}

	confidence := confidenceScore(result.ConfidenceLevel)
	prediction := &models.PredictionLog{
		ID:              uuid.New(),
		Sport:           req.Sport,
		PlayerID:        req.PlayerID,
		PropType:        req.PropType,
		GameDate:        req.GameDate,
		PredictedValue:  result.FinalProjection,
		ConfidenceScore: &confidence,
		ModelVersion:    "anti-recency-v1",
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.repos.Prediction.Insert(ctx, prediction); err != nil {
		return fmt.Errorf("failed to log prediction: %w", err)
	}

	return nil
}

func (s *AnalysisService) recordResult(req AnalysisRequest, result *models.ProjectionResult, duration time.Duration) {
	metrics.RecordAnalysis(duration.Seconds())
	metrics.RecordConfidenceLevel(string(result.ConfidenceLevel))
	metrics.RecordEdgeMagnitude(result.PropType, math.Abs(result.EdgePercentage))
	if result.WasOutlier {
		metrics.RecordOutlierDetected()
	}

	s.logger.LogProjection(
		req.PlayerID, req.PropType, req.PropLine,
		result.FinalProjection, result.EdgePercentage,
		string(result.EdgeDirection), string(result.ConfidenceLevel),
		result.WasOutlier, float64(duration.Microseconds())/1000.0,
	)

	if result.RecommendedPlay != nil {
		metrics.RecordRecommendation(string(*result.RecommendedPlay))
		s.logger.LogRecommendation(req.PlayerID, req.PropType, string(*result.RecommendedPlay), result.EdgePercentage, string(result.ConfidenceLevel))
	}
}

// confidenceScore maps the categorical confidence to a numeric score for
// the prediction log
func confidenceScore(level models.ConfidenceLevel) float64 {
	switch level {
	case models.ConfidenceHigh:
		return 0.9
	case models.ConfidenceMedium:
		return 0.6
	default:
		return 0.3
	}
}

// currentSeason derives the season label from a game date. Seasons that
// straddle the new year use the starting year, e.g. "2025-26" for games
// from October 2025 through June 2026.
func currentSeason(gameDate time.Time) string {
	if gameDate.IsZero() {
		gameDate = time.Now().UTC()
	}
	year := gameDate.Year()
	if gameDate.Month() < time.July {
		year--
	}
	return fmt.Sprintf("%d-%02d", year, (year+1)%100)
}
