package winprob

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(sport, home, away string) CacheKey {
	return CacheKey{
		Sport:    sport,
		HomeTeam: home,
		AwayTeam: away,
		GameDate: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
	}
}

func TestCacheSetAndGet(t *testing.T) {
	pc := NewPredictionCache(time.Minute, 100)
	key := testKey("nba", "BOS", "LAL")

	prediction := &WinProbability{
		HomeWinProbability: 0.62,
		AwayWinProbability: 0.38,
		ModelVersion:       "v3",
		Confidence:         0.8,
	}

	pc.Set(key, prediction)

	cached := pc.Get(key)
	require.NotNil(t, cached)
	assert.Equal(t, prediction, cached)

	hits, misses := pc.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(0), misses)
}

func TestCacheMiss(t *testing.T) {
	pc := NewPredictionCache(time.Minute, 100)

	cached := pc.Get(testKey("nba", "BOS", "LAL"))
	assert.Nil(t, cached)

	hits, misses := pc.Stats()
	assert.Equal(t, uint64(0), hits)
	assert.Equal(t, uint64(1), misses)
}

func TestCacheExpiry(t *testing.T) {
	pc := NewPredictionCache(20*time.Millisecond, 100)
	key := testKey("nba", "BOS", "LAL")

	pc.Set(key, &WinProbability{HomeWinProbability: 0.5, AwayWinProbability: 0.5})
	require.NotNil(t, pc.Get(key))

	time.Sleep(50 * time.Millisecond)
	assert.Nil(t, pc.Get(key))
}

func TestCacheKeyString(t *testing.T) {
	key := testKey("nba", "BOS", "LAL")
	assert.Equal(t, "nba:BOS:LAL:2026-03-14", key.String())
}

func TestCacheInvalidateSport(t *testing.T) {
	pc := NewPredictionCache(time.Minute, 100)

	nbaKey := testKey("nba", "BOS", "LAL")
	nflKey := testKey("nfl", "NE", "KC")
	pc.Set(nbaKey, &WinProbability{HomeWinProbability: 0.6, AwayWinProbability: 0.4})
	pc.Set(nflKey, &WinProbability{HomeWinProbability: 0.45, AwayWinProbability: 0.55})

	pc.InvalidateSport("nba")

	assert.Nil(t, pc.Get(nbaKey))
	assert.NotNil(t, pc.Get(nflKey))
}

func TestCacheDistinctGames(t *testing.T) {
	pc := NewPredictionCache(time.Minute, 100)

	first := &WinProbability{HomeWinProbability: 0.6, AwayWinProbability: 0.4}
	second := &WinProbability{HomeWinProbability: 0.3, AwayWinProbability: 0.7}

	pc.Set(testKey("nba", "BOS", "LAL"), first)
	pc.Set(testKey("nba", "BOS", "MIA"), second)

	assert.Equal(t, first, pc.Get(testKey("nba", "BOS", "LAL")))
	assert.Equal(t, second, pc.Get(testKey("nba", "BOS", "MIA")))
	assert.Equal(t, 2, pc.Len())
}
