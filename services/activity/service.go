// Package activity serves the event feed: one row per program
// transaction, recorded at submission time and replayed safely by the
// indexer thanks to the unique signature key.
package activity

import (
	"context"
	"encoding/json"
	"fmt"

	activityRepo "receivault/database/repository/activity"
	"receivault/models"
	"receivault/services/datasource"
	"receivault/utils"

	"github.com/go-redis/redis/v8"
)

// ActivityService exposes the activity feed.
type ActivityService interface {
	// List returns a page of events, newest first, optionally filtered
	// by vault PDA and/or wallet.
	List(ctx context.Context, vaultPDA, wallet, cursor string, limit int) (*models.Page[models.ActivityEvent], error)
}

// DefaultActivityService implements ActivityService.
type DefaultActivityService struct {
	Repo  activityRepo.ActivityRepository
	Cache *redis.Client
}

func listCacheKey(vaultPDA, wallet, cursor string, limit int) string {
	return fmt.Sprintf("%s%s:%s:%s:%d", utils.ActivityCachePrefix, vaultPDA, wallet, cursor, limit)
}

// List returns a page of events, read through the Redis cache.
func (s *DefaultActivityService) List(ctx context.Context, vaultPDA, wallet, cursor string, limit int) (*models.Page[models.ActivityEvent], error) {
	key := listCacheKey(vaultPDA, wallet, cursor, limit)
	if s.Cache != nil {
		if raw, err := s.Cache.Get(ctx, key).Result(); err == nil {
			var page models.Page[models.ActivityEvent]
			if err := json.Unmarshal([]byte(raw), &page); err == nil {
				return &page, nil
			}
		}
	}

	events, next, total, err := s.Repo.List(vaultPDA, wallet, cursor, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	page := &models.Page[models.ActivityEvent]{
		Items:      events,
		NextCursor: next,
		Total:      total,
		Source:     datasource.Label(),
	}
	if s.Cache != nil {
		if raw, err := json.Marshal(page); err == nil {
			s.Cache.Set(ctx, key, raw, utils.ReadCacheTTL)
		}
	}
	return page, nil
}
