package repository

import (
	"context"
	"fmt"
	"strings"

	"literasi-backend/internal/docstore"
	"literasi-backend/internal/logger"
	"literasi-backend/internal/models"
)

// ActivityCache is an optional read-through cache for catalog queries.
type ActivityCache interface {
	Get(ctx context.Context, key string) ([]models.Activity, bool, error)
	Set(ctx context.Context, key string, activities []models.Activity) error
	Invalidate(ctx context.Context) error
}

// ActivityQuery selects catalog entries. Empty fields do not filter;
// Limit <= 0 means no limit.
type ActivityQuery struct {
	Topics     []models.Topic
	Difficulty models.Difficulty
	Limit      int
}

func (q ActivityQuery) cacheKey() string {
	topics := make([]string, len(q.Topics))
	for i, t := range q.Topics {
		topics[i] = string(t)
	}
	return fmt.Sprintf("topics=%s:difficulty=%s:limit=%d", strings.Join(topics, ","), q.Difficulty, q.Limit)
}

func (q ActivityQuery) filter() docstore.Filter {
	filter := docstore.Filter{}
	switch len(q.Topics) {
	case 0:
	case 1:
		filter["topic"] = string(q.Topics[0])
	default:
		in := make(docstore.In, len(q.Topics))
		for i, t := range q.Topics {
			in[i] = string(t)
		}
		filter["topic"] = in
	}
	if q.Difficulty != "" {
		filter["difficulty"] = string(q.Difficulty)
	}
	return filter
}

type ActivityRepo struct {
	store docstore.Store
	cache ActivityCache
	log   *logger.Logger
}

func NewActivityRepo(store docstore.Store, cache ActivityCache, log *logger.Logger) *ActivityRepo {
	if log == nil {
		log = logger.Nop()
	}
	return &ActivityRepo{store: store, cache: cache, log: log}
}

func (r *ActivityRepo) Create(ctx context.Context, a *models.Activity) error {
	id, err := r.store.Insert(ctx, ActivityCollection, a)
	if err != nil {
		return err
	}
	a.ID = id
	if r.cache != nil {
		if err := r.cache.Invalidate(ctx); err != nil {
			r.log.Warn("activity cache invalidation failed", "error", err)
		}
	}
	return nil
}

func (r *ActivityRepo) Count(ctx context.Context) (int64, error) {
	return r.store.Count(ctx, ActivityCollection, nil)
}

// List returns matching activities in catalog insertion order.
func (r *ActivityRepo) List(ctx context.Context, q ActivityQuery) ([]models.Activity, error) {
	key := q.cacheKey()
	if r.cache != nil {
		cached, ok, err := r.cache.Get(ctx, key)
		if err != nil {
			r.log.Warn("activity cache read failed", "key", key, "error", err)
		} else if ok {
			return cached, nil
		}
	}

	records, err := r.store.Find(ctx, ActivityCollection, docstore.Query{Filter: q.filter(), Limit: q.Limit})
	if err != nil {
		return nil, err
	}

	activities := make([]models.Activity, 0, len(records))
	for _, rec := range records {
		var a models.Activity
		if err := rec.Decode(&a); err != nil {
			return nil, err
		}
		a.ID = rec.ID
		activities = append(activities, a)
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, key, activities); err != nil {
			r.log.Warn("activity cache write failed", "key", key, "error", err)
		}
	}
	return activities, nil
}
