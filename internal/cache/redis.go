package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dukerupert/verdant/internal/repository"
)

// DefaultPlantTTL is used when NewRedisCache gets a zero TTL.
const DefaultPlantTTL = 10 * time.Minute

func NewRedisCache(client *redis.Client, baseTTL time.Duration) *RedisCache {
	if baseTTL <= 0 {
		baseTTL = DefaultPlantTTL
	}
	return &RedisCache{
		client:  client,
		baseTTL: baseTTL,
	}
}

type RedisCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

func (r *RedisCache) Get(ctx context.Context, id uuid.UUID) (*repository.Plant, error) {
	data, err := r.client.Get(ctx, cacheKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var plant repository.Plant
	if err := json.Unmarshal(data, &plant); err != nil {
		return nil, fmt.Errorf("unmarshal plant failed: %w", err)
	}

	return &plant, nil
}

// Set stores the plant with the base TTL plus up to a minute of jitter,
// so entries written together do not expire together.
func (r *RedisCache) Set(ctx context.Context, plant *repository.Plant) error {
	data, err := json.Marshal(plant)
	if err != nil {
		return fmt.Errorf("marshal plant failed: %w", err)
	}

	jitter := time.Duration(rand.IntN(60)) * time.Second
	if err := r.client.Set(ctx, cacheKey(plant.ID), data, r.baseTTL+jitter).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisCache) Delete(ctx context.Context, ids ...uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = cacheKey(id)
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

// Ping reports whether Redis is reachable. Used by the health check.
func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("plant:%s", id)
}
