package cache

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/dukerupert/verdant/internal/repository"
)

// ErrCacheMiss is returned when the key is not cached.
var ErrCacheMiss = errors.New("cache miss")

// PlantCache stores catalog lookups. Entries are advisory: stock shown from
// the cache may lag, and only the database decrement is authoritative.
type PlantCache interface {
	Get(ctx context.Context, id uuid.UUID) (*repository.Plant, error)
	Set(ctx context.Context, plant *repository.Plant) error
	Delete(ctx context.Context, ids ...uuid.UUID) error
}

// NopCache never stores anything. Used when Redis is not configured.
type NopCache struct{}

func (NopCache) Get(context.Context, uuid.UUID) (*repository.Plant, error) { return nil, ErrCacheMiss }
func (NopCache) Set(context.Context, *repository.Plant) error              { return nil }
func (NopCache) Delete(context.Context, ...uuid.UUID) error                { return nil }
