package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/propline/internal/database"
	"github.com/yourusername/propline/internal/models"
)

const skipIntegrationMsg = "Integration test - requires database setup"

// TestNewRepositoriesRequiresDB tests that construction fails without a
// database connection
func TestNewRepositoriesRequiresDB(t *testing.T) {
	repos, err := NewRepositories(nil)
	if err == nil {
		t.Fatal("expected error for nil database")
	}
	if repos != nil {
		t.Fatal("expected nil repositories on error")
	}
}

// TestGameLogRepositoryRoundTrip tests game log insert and series retrieval
func TestGameLogRepositoryRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip(skipIntegrationMsg)
	}

	db := database.SetupTestDB(t)
	defer database.TeardownTestDB(t, db)

	repos, err := NewRepositories(db)
	if err != nil {
		t.Fatalf("failed to create repositories: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	player := &models.Player{ID: 900001, Name: "Test Player", Team: "TST", Sport: "nba"}
	if err := repos.Player.Upsert(ctx, player); err != nil {
		t.Fatalf("failed to upsert player: %v", err)
	}

	logs := []*models.GameLog{
		{ID: uuid.New(), PlayerID: player.ID, Sport: "nba", PropType: "points", OpponentID: 1, GameDate: time.Now().AddDate(0, 0, -3), Value: 24, ScrapedAt: time.Now()},
		{ID: uuid.New(), PlayerID: player.ID, Sport: "nba", PropType: "points", OpponentID: 2, GameDate: time.Now().AddDate(0, 0, -2), Value: 26, ScrapedAt: time.Now()},
		{ID: uuid.New(), PlayerID: player.ID, Sport: "nba", PropType: "points", OpponentID: 1, GameDate: time.Now().AddDate(0, 0, -1), Value: 25, ScrapedAt: time.Now()},
	}
	if err := repos.GameLog.InsertBatch(ctx, logs); err != nil {
		t.Fatalf("failed to batch insert game logs: %v", err)
	}

	series, err := repos.GameLog.GetSeries(ctx, player.ID, "points")
	if err != nil {
		t.Fatalf("failed to get series: %v", err)
	}
	if len(series) < 3 {
		t.Errorf("expected at least 3 values, got %d", len(series))
	}

	avg, err := repos.GameLog.GetMatchupAverage(ctx, player.ID, "points", 1)
	if err != nil {
		t.Fatalf("failed to get matchup average: %v", err)
	}
	if avg == nil {
		t.Error("expected non-nil matchup average")
	}
}
