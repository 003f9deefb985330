package sitecond

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/seismolab/vrancea-gmm/internal/gmm"
	"github.com/seismolab/vrancea-gmm/internal/observability"
)

// CachedProvider wraps a SiteConditionsProvider with a TTL cache. Vs30 refers
// to near-surface geology and changes on geologic timescales, so a generous
// TTL is safe; it exists mainly to bound memory.
type CachedProvider struct {
	inner   gmm.SiteConditionsProvider
	cache   *gocache.Cache
	metrics *observability.Metrics
}

// NewCachedProvider creates a cache decorator around a Vs30 provider.
func NewCachedProvider(inner gmm.SiteConditionsProvider, ttl time.Duration, metrics *observability.Metrics) *CachedProvider {
	return &CachedProvider{
		inner:   inner,
		cache:   gocache.New(ttl, 2*ttl),
		metrics: metrics,
	}
}

func (c *CachedProvider) Vs30(ctx context.Context, lat, lon float64) (gmm.Vs30Result, error) {
	key := cacheKey(lat, lon)
	if v, ok := c.cache.Get(key); ok {
		c.metrics.SiteCondCache.WithLabelValues("hit").Inc()
		return v.(gmm.Vs30Result), nil
	}
	c.metrics.SiteCondCache.WithLabelValues("miss").Inc()

	result, err := c.inner.Vs30(ctx, lat, lon)
	if err != nil {
		// Errors are not cached so transient failures can be retried.
		return result, err
	}
	c.cache.SetDefault(key, result)
	return result, nil
}

// cacheKey rounds to ~11 m so nearby sites share an entry.
func cacheKey(lat, lon float64) string {
	return fmt.Sprintf("%.4f,%.4f", lat, lon)
}
