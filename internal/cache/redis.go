// Package cache keeps short-lived copies of store reads in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"acbuy.com/showcase/internal/logx"
)

const keyPrefix = "showcase"

// Connect parses a redis:// URL and pings the server.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("cache: parse url: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cache: ping: %w", err)
	}

	return client, nil
}

// Cache stores JSON documents with a fixed TTL. A nil *Cache is valid and
// always calls through to the loader.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New returns a Cache, or nil when client is nil or ttl is not positive.
func New(client *redis.Client, ttl time.Duration) *Cache {
	if client == nil || ttl <= 0 {
		return nil
	}
	return &Cache{client: client, ttl: ttl}
}

// Key joins parts under the package prefix.
func Key(parts ...string) string {
	return strings.Join(append([]string{keyPrefix}, parts...), ":")
}

// FetchJSON decodes the cached value for key into dest, or runs loader and
// caches its result. Redis failures are logged and the loader result is
// used as is; loader errors are returned and never cached.
func (c *Cache) FetchJSON(ctx context.Context, key string, dest any, loader func(context.Context) (any, error)) error {
	if loader == nil {
		return errors.New("cache: loader required")
	}

	if c != nil {
		payload, err := c.client.Get(ctx, key).Bytes()
		switch {
		case err == nil:
			if err := json.Unmarshal(payload, dest); err == nil {
				return nil
			}
			logx.Warn().Str("key", key).Msg("discarding undecodable cache entry")
		case !errors.Is(err, redis.Nil):
			logx.Warn().Err(err).Str("key", key).Msg("cache read failed")
		}
	}

	value, err := loader(ctx)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: encode %s: %w", key, err)
	}

	if c != nil {
		if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			logx.Warn().Err(err).Str("key", key).Msg("cache write failed")
		}
	}

	return json.Unmarshal(raw, dest)
}

// Invalidate drops the given keys.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) error {
	if c == nil || len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// Ping reports whether Redis is reachable. A nil cache is always healthy.
func (c *Cache) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}
