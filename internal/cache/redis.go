package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"hatemates/internal/config"
)

type RedisCache struct {
	Client *redis.Client
	sf     singleflight.Group
}

// NewRedisCache initializes Redis client from config.
// Only Addr is mandatory, Password/DB are optional.
func NewRedisCache(cfg *config.Config) *RedisCache {
	opts := &redis.Options{
		Addr: cfg.Redis.Addr,
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	if cfg.Redis.DB != 0 {
		opts.DB = cfg.Redis.DB
	}
	return &RedisCache{Client: redis.NewClient(opts)}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}

func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return c.Client.Set(ctx, key, value, ttl).Err()
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	return c.Client.Get(ctx, key).Result()
}

func (c *RedisCache) Del(ctx context.Context, key string) error {
	return c.Client.Del(ctx, key).Err()
}

// KeyForMatchCount generates the Redis key for a user's accepted-match count.
func (c *RedisCache) KeyForMatchCount(userID uint64) string {
	return fmt.Sprintf("matches:count:%d", userID)
}

// GetOrLoadCount reads a cached counter, falling back to load on a miss.
// Concurrent misses for the same key are collapsed into one load via
// singleflight; the loaded value is written back with the given TTL.
func (c *RedisCache) GetOrLoadCount(ctx context.Context, key string, ttl time.Duration, load func(context.Context) (int64, error)) (int64, error) {
	val, err := c.Client.Get(ctx, key).Result()
	if err == nil {
		if n, perr := strconv.ParseInt(val, 10, 64); perr == nil {
			// refresh TTL since this user is active
			_ = c.Client.Expire(ctx, key, ttl).Err()
			return n, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		return 0, err
	}

	v, err, _ := c.sf.Do(key, func() (any, error) {
		n, e := load(ctx)
		if e != nil {
			return nil, e
		}
		_ = c.Client.Set(ctx, key, strconv.FormatInt(n, 10), ttl).Err()
		return n, nil
	})
	if err != nil {
		return 0, err
	}
	return v.(int64), nil
}

// InvalidateMatchCount drops a user's cached accepted-match count. Called
// after every reconciliation or status change touching that user's pairs.
func (c *RedisCache) InvalidateMatchCount(ctx context.Context, userID uint64) {
	_ = c.Client.Del(ctx, c.KeyForMatchCount(userID)).Err()
}
