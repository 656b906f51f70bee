package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Catalog snapshot: catalog:discounted -> JSON rows
	KeyCatalog = "catalog:discounted"

	TTLCatalog = 60 * time.Second
)

type (
	Cache interface {
		Get(ctx context.Context, key string) (string, bool, error)
		Set(ctx context.Context, key string, value string, ttl time.Duration) error
		Delete(ctx context.Context, key string) error
	}

	redisCache struct {
		client *redis.Client
	}
)

func NewRedisCache(addr, password string) Cache {
	return &redisCache{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
	}
}

func (c *redisCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (c *redisCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}
