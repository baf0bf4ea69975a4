package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/propline/internal/logger"
	"github.com/yourusername/propline/internal/repository"
	"github.com/yourusername/propline/internal/statsfeed"
)

func newTestIngestionService(sources []statsfeed.FeedSource) (*IngestionService, *repository.Repositories, *fakeGameLogRepo) {
	repos, gameLogs, _, _ := newFakeRepositories()
	log := logger.NewIngestionLogger(quietLogger())
	svc := NewIngestionService(sources, repos, NewDataValidator(log), log, 2)
	return svc, repos, gameLogs
}

func feedLog(playerID int64, name string, value float64) statsfeed.GameLogData {
	return statsfeed.GameLogData{
		PlayerID:   playerID,
		PlayerName: name,
		Team:       "BOS",
		Sport:      "nba",
		PropType:   "points",
		OpponentID: 7,
		GameDate:   time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Value:      value,
	}
}

func TestSyncGameLogs(t *testing.T) {
	source := &fakeFeedSource{
		name:    "primary_stats",
		enabled: true,
		logs: []statsfeed.GameLogData{
			feedLog(23, "Alice Walker", 27),
			feedLog(23, "Alice Walker", 24),
			feedLog(45, "Dana Reyes", 11),
		},
	}

	svc, repos, gameLogs := newTestIngestionService([]statsfeed.FeedSource{source})

	stats, err := svc.SyncGameLogs(context.Background(), "nba", time.Now().AddDate(0, 0, -7), time.Now())
	require.NoError(t, err)

	assert.Equal(t, "primary_stats", stats.Source)
	assert.Equal(t, 3, stats.TotalFetched)
	assert.Equal(t, 3, stats.GamesIngested)
	assert.Equal(t, 2, stats.PlayersUpdated)
	assert.Equal(t, 0, stats.ValidationErrors)
	assert.Len(t, gameLogs.inserted, 3)

	count, err := repos.Player.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestSyncGameLogsSkipsInvalidEntries(t *testing.T) {
	bad := feedLog(0, "", 27)
	negative := feedLog(23, "Alice Walker", -3)

	source := &fakeFeedSource{
		name:    "primary_stats",
		enabled: true,
		logs:    []statsfeed.GameLogData{feedLog(23, "Alice Walker", 27), bad, negative},
	}

	svc, _, gameLogs := newTestIngestionService([]statsfeed.FeedSource{source})

	stats, err := svc.SyncGameLogs(context.Background(), "nba", time.Now().AddDate(0, 0, -7), time.Now())
	require.NoError(t, err)

	assert.Equal(t, 1, stats.GamesIngested)
	assert.Equal(t, 2, stats.ValidationErrors)
	assert.Len(t, gameLogs.inserted, 1)
}

func TestSyncGameLogsUnknownSport(t *testing.T) {
	svc, _, _ := newTestIngestionService(nil)

	_, err := svc.SyncGameLogs(context.Background(), "cricket", time.Now().AddDate(0, 0, -7), time.Now())
	assert.Error(t, err)
}

func TestSyncGameLogsAllSourcesFailed(t *testing.T) {
	source := &fakeFeedSource{
		name:     "primary_stats",
		enabled:  true,
		fetchErr: errors.New("connection refused"),
	}

	svc, _, _ := newTestIngestionService([]statsfeed.FeedSource{source})

	stats, err := svc.SyncGameLogs(context.Background(), "nba", time.Now().AddDate(0, 0, -7), time.Now())
	assert.Error(t, err)
	require.NotNil(t, stats)
	assert.Equal(t, 1, stats.Errors)
}

func TestSyncGameLogsSkipsDisabledSources(t *testing.T) {
	disabled := &fakeFeedSource{
		name:    "backup_stats",
		enabled: false,
		logs:    []statsfeed.GameLogData{feedLog(23, "Alice Walker", 27)},
	}

	svc, _, gameLogs := newTestIngestionService([]statsfeed.FeedSource{disabled})

	stats, err := svc.SyncGameLogs(context.Background(), "nba", time.Now().AddDate(0, 0, -7), time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalFetched)
	assert.Empty(t, gameLogs.inserted)
}

func TestSyncDefenseRatings(t *testing.T) {
	source := &fakeFeedSource{
		name:    "primary_stats",
		enabled: true,
		ratings: []statsfeed.DefenseRatingData{
			{TeamID: 7, Sport: "nba", Season: "2025-26", Tier: 1},
			{TeamID: 8, Sport: "nba", Season: "2025-26", Tier: 5},
			{TeamID: 9, Sport: "nba", Season: "2025-26", Tier: 9},
		},
	}

	svc, repos, _ := newTestIngestionService([]statsfeed.FeedSource{source})

	updated, err := svc.SyncDefenseRatings(context.Background(), "nba", "2025-26")
	require.NoError(t, err)
	assert.Equal(t, 2, updated)

	tier, err := repos.TeamDefense.GetTier(context.Background(), 7, "nba", "2025-26")
	require.NoError(t, err)
	require.NotNil(t, tier)
	assert.Equal(t, 1, *tier)

	tier, err = repos.TeamDefense.GetTier(context.Background(), 9, "nba", "2025-26")
	require.NoError(t, err)
	assert.Nil(t, tier)
}
