package memory

import (
	"time"

	"eviden-bot/internal/entity"

	"github.com/patrickmn/go-cache"
)

const (
	segmentsKey    = "catalog:segments"
	designatorsKey = "catalog:designators"
)

// CatalogCache keeps the reference catalogs in process memory for a short TTL.
type CatalogCache struct {
	cache *cache.Cache
}

func NewCatalogCache(ttl time.Duration) *CatalogCache {
	return &CatalogCache{
		cache: cache.New(ttl, 2*ttl),
	}
}

func (r *CatalogCache) SaveSegments(segments []*entity.Segment) {
	r.cache.Set(segmentsKey, segments, cache.DefaultExpiration)
}

func (r *CatalogCache) GetSegments() ([]*entity.Segment, bool) {
	if x, found := r.cache.Get(segmentsKey); found {
		return x.([]*entity.Segment), true
	}
	return nil, false
}

func (r *CatalogCache) SaveDesignators(designators []*entity.Designator) {
	r.cache.Set(designatorsKey, designators, cache.DefaultExpiration)
}

func (r *CatalogCache) GetDesignators() ([]*entity.Designator, bool) {
	if x, found := r.cache.Get(designatorsKey); found {
		return x.([]*entity.Designator), true
	}
	return nil, false
}

func (r *CatalogCache) Flush() {
	r.cache.Flush()
}
