package baseline

import (
	"fmt"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/yourusername/prop-edge/internal/models"
)

// Cache holds computed baselines keyed by (entityID, season). Entries
// expire after the configured TTL or on explicit invalidation; there is no
// self-expiring background refresh.
type Cache struct {
	cache *cache.Cache
	ttl   time.Duration
}

// NewCache creates a baseline cache with the given TTL.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		cache: cache.New(ttl, ttl*2),
		ttl:   ttl,
	}
}

func cacheKey(entityID, season string) string {
	return fmt.Sprintf("%s:%s", entityID, season)
}

// Get returns the cached baseline for (entityID, season) if present.
func (c *Cache) Get(entityID, season string) (models.PerformanceBaseline, bool) {
	if v, found := c.cache.Get(cacheKey(entityID, season)); found {
		if b, ok := v.(models.PerformanceBaseline); ok {
			return b, true
		}
	}
	return models.PerformanceBaseline{}, false
}

// Set stores a baseline.
func (c *Cache) Set(entityID, season string, b models.PerformanceBaseline) {
	c.cache.Set(cacheKey(entityID, season), b, c.ttl)
}

// Delete removes the entry for (entityID, season).
func (c *Cache) Delete(entityID, season string) {
	c.cache.Delete(cacheKey(entityID, season))
}

// ItemCount returns the number of cached baselines.
func (c *Cache) ItemCount() int {
	return c.cache.ItemCount()
}
