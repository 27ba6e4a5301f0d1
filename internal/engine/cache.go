package engine

import (
	"fmt"
	"sync/atomic"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/yourusername/prop-edge/internal/metrics"
	"github.com/yourusername/prop-edge/internal/models"
)

// PredictionCache holds produced predictions keyed by (entity, stat, game)
// for the configured TTL. Expired entries are recomputed on the next request.
type PredictionCache struct {
	cache  *cache.Cache
	ttl    time.Duration
	hits   atomic.Int64
	misses atomic.Int64
}

// NewPredictionCache creates a prediction cache with the given TTL.
func NewPredictionCache(ttl time.Duration) *PredictionCache {
	return &PredictionCache{
		cache: cache.New(ttl, ttl*2),
		ttl:   ttl,
	}
}

func predictionKey(entityID, stat, gameID string) string {
	return fmt.Sprintf("%s:%s:%s", entityID, stat, gameID)
}

// Get returns the cached prediction if the TTL has not elapsed, tracking the
// hit ratio gauge.
func (c *PredictionCache) Get(entityID, stat, gameID string) (models.StatisticalPrediction, bool) {
	if v, found := c.cache.Get(predictionKey(entityID, stat, gameID)); found {
		if p, ok := v.(models.StatisticalPrediction); ok {
			c.hits.Add(1)
			c.publishHitRatio()
			return p, true
		}
	}
	c.misses.Add(1)
	c.publishHitRatio()
	return models.StatisticalPrediction{}, false
}

// Set stores a prediction.
func (c *PredictionCache) Set(entityID, stat, gameID string, p models.StatisticalPrediction) {
	c.cache.Set(predictionKey(entityID, stat, gameID), p, c.ttl)
}

// Invalidate removes the entry for (entity, stat, game).
func (c *PredictionCache) Invalidate(entityID, stat, gameID string) {
	c.cache.Delete(predictionKey(entityID, stat, gameID))
}

func (c *PredictionCache) publishHitRatio() {
	hits := float64(c.hits.Load())
	total := hits + float64(c.misses.Load())
	if total == 0 {
		return
	}
	metrics.PredictionCacheHitRatio.Set(hits / total)
}
