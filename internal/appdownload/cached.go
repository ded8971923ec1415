package appdownload

import (
	"context"

	"acbuy.com/showcase/internal/cache"
)

type cachedRepo struct {
	next  Repository
	cache *cache.Cache
}

// NewCached wraps next with c. With a nil cache it returns next unchanged.
func NewCached(next Repository, c *cache.Cache) Repository {
	if c == nil {
		return next
	}
	return &cachedRepo{next: next, cache: c}
}

// CacheKey is the key NewCached writes.
func CacheKey() string { return cache.Key(Table) }

func (r *cachedRepo) Get(ctx context.Context) (*Links, error) {
	var out Links
	err := r.cache.FetchJSON(ctx, CacheKey(), &out, func(ctx context.Context) (any, error) {
		return r.next.Get(ctx)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
