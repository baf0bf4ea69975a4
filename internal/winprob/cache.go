// Package winprob provides caching for win probability predictions.
package winprob

import (
	"fmt"
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/yourusername/propline/internal/metrics"
)

// CacheKey represents a unique key for caching win probabilities
type CacheKey struct {
	Sport    string
	HomeTeam string
	AwayTeam string
	GameDate time.Time
}

// String returns string representation of cache key
func (k CacheKey) String() string {
	return fmt.Sprintf("%s:%s:%s:%s", k.Sport, k.HomeTeam, k.AwayTeam, k.GameDate.Format("2006-01-02"))
}

// PredictionCache provides in-memory caching for win probabilities
type PredictionCache struct {
	cache     *cache.Cache
	ttl       time.Duration
	maxSize   int
	mu        sync.RWMutex
	hitCount  uint64
	missCount uint64
}

// NewPredictionCache creates a new prediction cache
func NewPredictionCache(ttl time.Duration, maxSize int) *PredictionCache {
	return &PredictionCache{
		cache:   cache.New(ttl, ttl*2),
		ttl:     ttl,
		maxSize: maxSize,
	}
}

// Get retrieves a cached prediction
func (pc *PredictionCache) Get(key CacheKey) *WinProbability {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if result, found := pc.cache.Get(key.String()); found {
		if pred, ok := result.(*WinProbability); ok {
			pc.hitCount++
			metrics.RecordWinProbCacheLookup(true)
			return pred
		}
	}

	pc.missCount++
	metrics.RecordWinProbCacheLookup(false)
	return nil
}

// Set stores a prediction in cache
func (pc *PredictionCache) Set(key CacheKey, prediction *WinProbability) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	// Evict expired items before admitting new entries at capacity
	if pc.cache.ItemCount() >= pc.maxSize {
		pc.cache.DeleteExpired()
	}

	pc.cache.Set(key.String(), prediction, pc.ttl)
}

// InvalidateSport removes all cache entries for a sport
func (pc *PredictionCache) InvalidateSport(sport string) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	prefix := sport + ":"
	for k := range pc.cache.Items() {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			pc.cache.Delete(k)
		}
	}
}

// Stats returns hit and miss counts
func (pc *PredictionCache) Stats() (hits, misses uint64) {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.hitCount, pc.missCount
}

// Len returns the number of cached entries
func (pc *PredictionCache) Len() int {
	return pc.cache.ItemCount()
}
