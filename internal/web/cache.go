package web

import (
	"context"
	"time"

	"github.com/huangsam/ensoview/core"
	"github.com/huangsam/ensoview/internal/contract"
	"github.com/huangsam/ensoview/schema"
	"github.com/patrickmn/go-cache"
)

// SeriesCache keeps built series for a TTL so page loads do not re-read the source.
// A zero TTL disables caching.
type SeriesCache struct {
	cfg   *contract.Config
	src   contract.TabularSource
	ttl   time.Duration
	items *cache.Cache
}

// NewSeriesCache builds a cache in front of src.
func NewSeriesCache(cfg *contract.Config, src contract.TabularSource) *SeriesCache {
	return &SeriesCache{
		cfg:   cfg,
		src:   src,
		ttl:   cfg.CacheTTL,
		items: cache.New(cfg.CacheTTL, 2*cfg.CacheTTL+time.Minute),
	}
}

// Get returns the series of kind, building it on a miss.
// Failures are not cached.
func (sc *SeriesCache) Get(ctx context.Context, kind schema.IndexKind) (*schema.Series, error) {
	key := string(kind)
	if v, found := sc.items.Get(key); found {
		return v.(*schema.Series), nil
	}

	series, err := core.LoadSeries(core.WithSuppressHeader(ctx), sc.cfg, kind, sc.src)
	if err != nil {
		return nil, err
	}
	if sc.ttl > 0 {
		sc.items.Set(key, series, cache.DefaultExpiration)
	}
	return series, nil
}

// Purge drops every cached series and returns how many were held.
func (sc *SeriesCache) Purge() int {
	n := sc.items.ItemCount()
	sc.items.Flush()
	return n
}
