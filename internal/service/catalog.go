package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/dukerupert/verdant/internal/cache"
	"github.com/dukerupert/verdant/internal/domain"
	"github.com/dukerupert/verdant/internal/repository"
)

// CatalogService provides plant lookups for the storefront
type CatalogService interface {
	// GetPlant returns a plant, reading through the cache.
	GetPlant(ctx context.Context, id uuid.UUID) (*repository.Plant, error)

	// Invalidate drops cached plants after their stock changed. Failures are logged.
	Invalidate(ctx context.Context, ids ...uuid.UUID)
}

type catalogService struct {
	repo   repository.Querier
	cache  cache.PlantCache
	group  singleflight.Group
	logger *slog.Logger
}

// NewCatalogService creates a CatalogService. A nil cache disables caching.
func NewCatalogService(repo repository.Querier, plantCache cache.PlantCache, logger *slog.Logger) CatalogService {
	if plantCache == nil {
		plantCache = cache.NopCache{}
	}
	return &catalogService{
		repo:   repo,
		cache:  plantCache,
		logger: logger,
	}
}

func (s *catalogService) GetPlant(ctx context.Context, id uuid.UUID) (*repository.Plant, error) {
	const op = "catalog.get_plant"

	plant, err := s.cache.Get(ctx, id)
	if err == nil {
		return plant, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.WarnContext(ctx, "plant cache read failed", "plant_id", id, "error", err)
	}

	// Concurrent misses for one plant share a single database read.
	v, err, _ := s.group.Do(id.String(), func() (any, error) {
		p, err := s.repo.GetPlant(ctx, id)
		if err != nil {
			return nil, notFoundOr(err, domain.ErrPlantNotFound, op)
		}
		if err := s.cache.Set(ctx, &p); err != nil {
			s.logger.WarnContext(ctx, "plant cache write failed", "plant_id", id, "error", err)
		}
		return p, nil
	})
	if err != nil {
		return nil, err
	}

	p := v.(repository.Plant)
	return &p, nil
}

func (s *catalogService) Invalidate(ctx context.Context, ids ...uuid.UUID) {
	if len(ids) == 0 {
		return
	}
	if err := s.cache.Delete(ctx, ids...); err != nil {
		s.logger.WarnContext(ctx, "plant cache invalidation failed", "plants", len(ids), "error", err)
	}
}
