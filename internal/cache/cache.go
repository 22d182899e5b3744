package cache

import (
	"context"
	"time"

	"catalogadmin/backend/internal/domain"
)

// CategoryCache holds the category list, the hottest read in the admin UI.
// Entries are invalidated whenever a category mutates.
type CategoryCache interface {
	Get(ctx context.Context) ([]domain.Category, bool, error)
	Set(ctx context.Context, categories []domain.Category, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

type NoopCategoryCache struct{}

func (NoopCategoryCache) Get(_ context.Context) ([]domain.Category, bool, error) {
	return nil, false, nil
}

func (NoopCategoryCache) Set(_ context.Context, _ []domain.Category, _ time.Duration) error {
	return nil
}

func (NoopCategoryCache) Invalidate(_ context.Context) error {
	return nil
}
