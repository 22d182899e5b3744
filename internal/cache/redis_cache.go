package cache

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"catalogadmin/backend/internal/domain"
)

const categoryListKey = "catalog:categories"

type RedisCategoryCache struct {
	client *redis.Client
}

func NewRedisCategoryCache(addr string, password string, db int) *RedisCategoryCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &RedisCategoryCache{client: client}
}

func (c *RedisCategoryCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCategoryCache) Close() error {
	return c.client.Close()
}

func (c *RedisCategoryCache) Get(ctx context.Context) ([]domain.Category, bool, error) {
	val, err := c.client.Get(ctx, categoryListKey).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var categories []domain.Category
	if err := json.Unmarshal([]byte(val), &categories); err != nil {
		return nil, false, err
	}
	return categories, true, nil
}

func (c *RedisCategoryCache) Set(ctx context.Context, categories []domain.Category, ttl time.Duration) error {
	payload, err := json.Marshal(categories)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, categoryListKey, payload, ttl).Err()
}

func (c *RedisCategoryCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, categoryListKey).Err()
}
