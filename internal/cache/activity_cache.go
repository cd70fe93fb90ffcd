// Package cache keeps catalog query results in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"literasi-backend/internal/models"
)

const (
	PrefixActivities = "activities:"

	DefaultActivityTTL = 10 * time.Minute
	scanBatch          = 100
)

var ErrCacheKeyEmpty = errors.New("cache: key cannot be empty")

// ActivityCache stores activity lists as JSON under PrefixActivities.
type ActivityCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewActivityCache(client *redis.Client, ttl time.Duration) *ActivityCache {
	if ttl <= 0 {
		ttl = DefaultActivityTTL
	}
	return &ActivityCache{client: client, ttl: ttl}
}

// Get reports ok=false on a miss.
func (c *ActivityCache) Get(ctx context.Context, key string) ([]models.Activity, bool, error) {
	if key == "" {
		return nil, false, ErrCacheKeyEmpty
	}
	data, err := c.client.Get(ctx, PrefixActivities+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get %s: %w", key, err)
	}

	var activities []models.Activity
	if err := json.Unmarshal(data, &activities); err != nil {
		return nil, false, fmt.Errorf("cache decode %s: %w", key, err)
	}
	return activities, true, nil
}

func (c *ActivityCache) Set(ctx context.Context, key string, activities []models.Activity) error {
	if key == "" {
		return ErrCacheKeyEmpty
	}
	data, err := json.Marshal(activities)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	return c.client.Set(ctx, PrefixActivities+key, data, c.ttl).Err()
}

// Invalidate drops every cached activity query.
func (c *ActivityCache) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, PrefixActivities+"*", scanBatch).Iterator()
	keys := make([]string, 0, scanBatch)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) >= scanBatch {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
			keys = keys[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) > 0 {
		return c.client.Del(ctx, keys...).Err()
	}
	return nil
}
