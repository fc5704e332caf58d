package memory

import (
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
)

// UpdateRegistry remembers processed Telegram update ids inside one process.
type UpdateRegistry struct {
	cache *cache.Cache
}

func NewUpdateRegistry(ttl time.Duration) *UpdateRegistry {
	return &UpdateRegistry{
		cache: cache.New(ttl, 10*time.Minute),
	}
}

// Claim returns true the first time an update id is seen.
func (r *UpdateRegistry) Claim(updateId int) bool {
	return r.cache.Add(strconv.Itoa(updateId), struct{}{}, cache.DefaultExpiration) == nil
}
