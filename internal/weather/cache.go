package weather

import (
	"context"
	"fmt"
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/yourusername/prop-edge/internal/models"
)

// CachedSource wraps a Source with a TTL cache keyed by location and fetch
// kind. Concurrent callers for the same key accept last-writer-wins.
type CachedSource struct {
	inner Source
	cache *cache.Cache
	ttl   time.Duration
}

// NewCachedSource wraps a weather source with caching.
func NewCachedSource(inner Source, ttl time.Duration) *CachedSource {
	return &CachedSource{
		inner: inner,
		cache: cache.New(ttl, ttl*2),
		ttl:   ttl,
	}
}

// Current returns a cached or fresh current observation.
func (c *CachedSource) Current(ctx context.Context, location string) (models.WeatherObservation, error) {
	key := "current:" + location
	if v, found := c.cache.Get(key); found {
		if obs, ok := v.(models.WeatherObservation); ok {
			return obs, nil
		}
	}
	obs, err := c.inner.Current(ctx, location)
	if err != nil {
		return obs, err
	}
	c.cache.Set(key, obs, c.ttl)
	return obs, nil
}

// Historical returns a cached or fresh historical observation.
func (c *CachedSource) Historical(ctx context.Context, location string, at time.Time) (models.WeatherObservation, error) {
	key := fmt.Sprintf("historical:%s:%d", location, at.Unix())
	if v, found := c.cache.Get(key); found {
		if obs, ok := v.(models.WeatherObservation); ok {
			return obs, nil
		}
	}
	obs, err := c.inner.Historical(ctx, location, at)
	if err != nil {
		return obs, err
	}
	c.cache.Set(key, obs, c.ttl)
	return obs, nil
}

// Forecast returns a cached or fresh forecast.
func (c *CachedSource) Forecast(ctx context.Context, location string, days int) ([]models.WeatherObservation, error) {
	key := fmt.Sprintf("forecast:%s:%d", location, days)
	if v, found := c.cache.Get(key); found {
		if observations, ok := v.([]models.WeatherObservation); ok {
			return observations, nil
		}
	}
	observations, err := c.inner.Forecast(ctx, location, days)
	if err != nil {
		return observations, err
	}
	c.cache.Set(key, observations, c.ttl)
	return observations, nil
}

// Invalidate drops the cached current observation for a location.
func (c *CachedSource) Invalidate(location string) {
	c.cache.Delete("current:" + location)
}

// FetchMany retrieves current observations for multiple locations with
// bounded parallelism. Purely an I/O latency optimization: results are
// identical to sequential fetching. Sources that cannot fail (the Fallback
// wrapper) always yield one observation per location.
func FetchMany(ctx context.Context, src Source, locations []string, maxParallel int) map[string]models.WeatherObservation {
	if maxParallel < 1 {
		maxParallel = 1
	}

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make(map[string]models.WeatherObservation, len(locations))
		sem     = make(chan struct{}, maxParallel)
	)
	for _, location := range locations {
		wg.Add(1)
		go func(location string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			obs, err := src.Current(ctx, location)
			if err != nil {
				return
			}
			mu.Lock()
			results[location] = obs
			mu.Unlock()
		}(location)
	}
	wg.Wait()
	return results
}
