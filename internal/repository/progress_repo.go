package repository

import (
	"context"

	"literasi-backend/internal/docstore"
	"literasi-backend/internal/models"
)

type ProgressRepo struct {
	store docstore.Store
}

func NewProgressRepo(store docstore.Store) *ProgressRepo {
	return &ProgressRepo{store: store}
}

func (r *ProgressRepo) Create(ctx context.Context, p *models.Progress) error {
	id, err := r.store.Insert(ctx, ProgressCollection, p)
	if err != nil {
		return err
	}
	p.ID = id
	return nil
}

func (r *ProgressRepo) CountByChild(ctx context.Context, childID docstore.ID) (int64, error) {
	return r.store.Count(ctx, ProgressCollection, docstore.Filter{"child_id": childID.String()})
}

// ListRecentByChild returns up to limit records for the child, newest first.
func (r *ProgressRepo) ListRecentByChild(ctx context.Context, childID docstore.ID, limit int) ([]models.Progress, error) {
	records, err := r.store.Find(ctx, ProgressCollection, docstore.Query{
		Filter: docstore.Filter{"child_id": childID.String()},
		Limit:  limit,
		Newest: true,
	})
	if err != nil {
		return nil, err
	}

	items := make([]models.Progress, 0, len(records))
	for _, rec := range records {
		var p models.Progress
		if err := rec.Decode(&p); err != nil {
			return nil, err
		}
		p.ID = rec.ID
		items = append(items, p)
	}
	return items, nil
}
