package product

import (
	"context"

	"acbuy.com/showcase/internal/cache"
)

type cachedRepo struct {
	next  Repository
	cache *cache.Cache
}

// NewCached wraps next so that reads are served from c while fresh.
// With a nil cache it returns next unchanged.
func NewCached(next Repository, c *cache.Cache) Repository {
	if c == nil {
		return next
	}
	return &cachedRepo{next: next, cache: c}
}

// CacheKeys lists the keys NewCached writes.
func CacheKeys() []string {
	return []string{cache.Key(ProductsTable), cache.Key(CampaignTable)}
}

func (r *cachedRepo) GetAll(ctx context.Context) ([]Product, error) {
	var out []Product
	err := r.cache.FetchJSON(ctx, cache.Key(ProductsTable), &out, func(ctx context.Context) (any, error) {
		return r.next.GetAll(ctx)
	})
	return out, err
}

func (r *cachedRepo) GetCampaign(ctx context.Context) ([]Product, error) {
	var out []Product
	err := r.cache.FetchJSON(ctx, cache.Key(CampaignTable), &out, func(ctx context.Context) (any, error) {
		return r.next.GetCampaign(ctx)
	})
	return out, err
}
