package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/propline/internal/models"
	"github.com/yourusername/propline/internal/repository"
	"github.com/yourusername/propline/internal/statsfeed"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func seriesKey(playerID int64, propType string) string {
	return fmt.Sprintf("%d:%s", playerID, propType)
}

type fakePlayerRepo struct {
	players map[int64]*models.Player
	err     error
}

func newFakePlayerRepo() *fakePlayerRepo {
	return &fakePlayerRepo{players: make(map[int64]*models.Player)}
}

func (r *fakePlayerRepo) Upsert(_ context.Context, player *models.Player) error {
	if r.err != nil {
		return r.err
	}
	r.players[player.ID] = player
	return nil
}

func (r *fakePlayerRepo) GetByID(_ context.Context, id int64) (*models.Player, error) {
	player, ok := r.players[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return player, nil
}

func (r *fakePlayerRepo) GetBySport(_ context.Context, sport string) ([]*models.Player, error) {
	var out []*models.Player
	for _, p := range r.players {
		if p.Sport == sport {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePlayerRepo) Count(_ context.Context) (int, error) {
	return len(r.players), nil
}

type fakeGameLogRepo struct {
	series   map[string][]float64
	matchups map[string]*float64
	actuals  map[string]float64
	inserted []*models.GameLog
	err      error
}

func newFakeGameLogRepo() *fakeGameLogRepo {
	return &fakeGameLogRepo{
		series:   make(map[string][]float64),
		matchups: make(map[string]*float64),
		actuals:  make(map[string]float64),
	}
}

func (r *fakeGameLogRepo) Insert(_ context.Context, log *models.GameLog) error {
	if r.err != nil {
		return r.err
	}
	r.inserted = append(r.inserted, log)
	return nil
}

func (r *fakeGameLogRepo) InsertBatch(_ context.Context, logs []*models.GameLog) error {
	if r.err != nil {
		return r.err
	}
	r.inserted = append(r.inserted, logs...)
	return nil
}

func (r *fakeGameLogRepo) GetSeries(_ context.Context, playerID int64, propType string) ([]float64, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.series[seriesKey(playerID, propType)], nil
}

func (r *fakeGameLogRepo) GetByPlayer(_ context.Context, playerID int64, propType string, limit int) ([]*models.GameLog, error) {
	return nil, nil
}

func (r *fakeGameLogRepo) GetMatchupAverage(_ context.Context, playerID int64, propType string, opponentID int64) (*float64, error) {
	return r.matchups[fmt.Sprintf("%d:%s:%d", playerID, propType, opponentID)], nil
}

func (r *fakeGameLogRepo) GetActualValue(_ context.Context, playerID int64, propType string, gameDate time.Time) (*float64, error) {
	value, ok := r.actuals[fmt.Sprintf("%d:%s:%s", playerID, propType, gameDate.Format("2006-01-02"))]
	if !ok {
		return nil, nil
	}
	return &value, nil
}

type fakeTeamDefenseRepo struct {
	tiers    map[int64]int
	upserted []*models.TeamDefense
}

func newFakeTeamDefenseRepo() *fakeTeamDefenseRepo {
	return &fakeTeamDefenseRepo{tiers: make(map[int64]int)}
}

func (r *fakeTeamDefenseRepo) Upsert(_ context.Context, defense *models.TeamDefense) error {
	r.upserted = append(r.upserted, defense)
	r.tiers[defense.TeamID] = defense.Tier
	return nil
}

func (r *fakeTeamDefenseRepo) GetTier(_ context.Context, teamID int64, sport, season string) (*int, error) {
	tier, ok := r.tiers[teamID]
	if !ok {
		return nil, nil
	}
	return &tier, nil
}

type fakeProjectionRepo struct {
	records []*models.ProjectionRecord
	err     error
}

func (r *fakeProjectionRepo) Insert(_ context.Context, record *models.ProjectionRecord) error {
	if r.err != nil {
		return r.err
	}
	r.records = append(r.records, record)
	return nil
}

func (r *fakeProjectionRepo) GetByID(_ context.Context, id uuid.UUID) (*models.ProjectionRecord, error) {
	for _, rec := range r.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *fakeProjectionRepo) GetRecentByPlayer(_ context.Context, playerID int64, propType string, limit int) ([]*models.ProjectionRecord, error) {
	var out []*models.ProjectionRecord
	for _, rec := range r.records {
		if rec.PlayerID == playerID && rec.PropType == propType {
			out = append(out, rec)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakePredictionRepo struct {
	predictions []*models.PredictionLog
	outcomes    []*models.PredictionOutcome
	triggers    []*models.RetrainTrigger
	summary     *models.AccuracySummary
}

func (r *fakePredictionRepo) Insert(_ context.Context, prediction *models.PredictionLog) error {
	r.predictions = append(r.predictions, prediction)
	return nil
}

func (r *fakePredictionRepo) GetUnverified(_ context.Context, sport string, before time.Time) ([]*models.PredictionLog, error) {
	verified := make(map[uuid.UUID]bool)
	for _, o := range r.outcomes {
		verified[o.PredictionID] = true
	}

	var out []*models.PredictionLog
	for _, p := range r.predictions {
		if p.Sport == sport && p.GameDate.Before(before) && !verified[p.ID] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePredictionRepo) RecordOutcome(_ context.Context, outcome *models.PredictionOutcome) error {
	r.outcomes = append(r.outcomes, outcome)
	return nil
}

func (r *fakePredictionRepo) GetAccuracySummary(_ context.Context, sport string, start, end time.Time) (*models.AccuracySummary, error) {
	if r.summary != nil {
		return r.summary, nil
	}

	summary := &models.AccuracySummary{Sport: sport, PeriodStart: start, PeriodEnd: end}
	for _, o := range r.outcomes {
		summary.TotalPredictions++
		if o.IsAccurate {
			summary.CorrectPredictions++
		}
	}
	if summary.TotalPredictions > 0 {
		summary.AccuracyRate = float64(summary.CorrectPredictions) / float64(summary.TotalPredictions) * 100
	}
	return summary, nil
}

func (r *fakePredictionRepo) InsertRetrainTrigger(_ context.Context, trigger *models.RetrainTrigger) error {
	r.triggers = append(r.triggers, trigger)
	return nil
}

func (r *fakePredictionRepo) GetRecentRetrainTriggers(_ context.Context, sport string, limit int) ([]*models.RetrainTrigger, error) {
	var out []*models.RetrainTrigger
	for i := len(r.triggers) - 1; i >= 0 && len(out) < limit; i-- {
		if r.triggers[i].Sport == sport {
			out = append(out, r.triggers[i])
		}
	}
	return out, nil
}

func newFakeRepositories() (*repository.Repositories, *fakeGameLogRepo, *fakeProjectionRepo, *fakePredictionRepo) {
	gameLogs := newFakeGameLogRepo()
	projections := &fakeProjectionRepo{}
	predictions := &fakePredictionRepo{}

	repos := &repository.Repositories{
		Player:      newFakePlayerRepo(),
		GameLog:     gameLogs,
		TeamDefense: newFakeTeamDefenseRepo(),
		Projection:  projections,
		Prediction:  predictions,
	}
	return repos, gameLogs, projections, predictions
}

type fakeFeedSource struct {
	name     string
	enabled  bool
	logs     []statsfeed.GameLogData
	ratings  []statsfeed.DefenseRatingData
	fetchErr error
}

func (f *fakeFeedSource) FetchGameLogs(_ context.Context, sport string, _, _ time.Time) ([]statsfeed.GameLogData, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.logs, nil
}

func (f *fakeFeedSource) FetchDefenseRatings(_ context.Context, sport, season string) ([]statsfeed.DefenseRatingData, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.ratings, nil
}

func (f *fakeFeedSource) Name() string    { return f.name }
func (f *fakeFeedSource) IsEnabled() bool { return f.enabled }

type fakeInvalidator struct {
	invalidated []string
}

func (f *fakeInvalidator) InvalidateSport(sport string) {
	f.invalidated = append(f.invalidated, sport)
}
