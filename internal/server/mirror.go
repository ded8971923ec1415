package server

import (
	"context"
	"fmt"

	"acbuy.com/showcase/internal/appdownload"
	"acbuy.com/showcase/internal/cache"
	"acbuy.com/showcase/internal/config"
	"acbuy.com/showcase/internal/logx"
	"acbuy.com/showcase/internal/mirror"
	"acbuy.com/showcase/internal/product"
)

// SyncMirror copies the configured hosted backend into the SQLite file at
// path. The sqlite backend cannot be its own source. When a Redis cache is
// configured its table entries are dropped so servers sharing it pick up
// the new rows before the TTL runs out.
func SyncMirror(ctx context.Context, cfg *config.Config, path string) (*mirror.Result, error) {
	if cfg.Store.Backend == config.BackendSQLite {
		return nil, fmt.Errorf("mirror sync needs a postgres or rest backend, got %q", cfg.Store.Backend)
	}

	src, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer src.close()

	db, _, err := openMirrorDB(path, "flag")
	if err != nil {
		return nil, err
	}
	defer db.Close()

	res, err := mirror.NewService(db).Sync(ctx, src.products, src.links)
	if err != nil {
		return nil, err
	}

	if cfg.Cache.RedisURL != "" {
		if err := invalidateCache(ctx, cfg.Cache); err != nil {
			logx.Warn().Err(err).Msg("cache not invalidated after mirror sync")
		}
	}
	return res, nil
}

func invalidateCache(ctx context.Context, cfg config.Cache) error {
	client, err := cache.Connect(ctx, cfg.RedisURL)
	if err != nil {
		return err
	}
	defer client.Close()

	keys := append(product.CacheKeys(), appdownload.CacheKey())
	return cache.New(client, cfg.TTL).Invalidate(ctx, keys...)
}
