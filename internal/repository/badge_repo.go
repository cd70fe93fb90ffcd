package repository

import (
	"context"

	"literasi-backend/internal/docstore"
	"literasi-backend/internal/models"
)

type BadgeRepo struct {
	store docstore.Store
}

func NewBadgeRepo(store docstore.Store) *BadgeRepo {
	return &BadgeRepo{store: store}
}

func (r *BadgeRepo) Create(ctx context.Context, b *models.Badge) error {
	id, err := r.store.Insert(ctx, BadgeCollection, b)
	if err != nil {
		return err
	}
	b.ID = id
	return nil
}

func (r *BadgeRepo) Count(ctx context.Context) (int64, error) {
	return r.store.Count(ctx, BadgeCollection, nil)
}

func (r *BadgeRepo) List(ctx context.Context) ([]models.Badge, error) {
	records, err := r.store.Find(ctx, BadgeCollection, docstore.Query{})
	if err != nil {
		return nil, err
	}

	badges := make([]models.Badge, 0, len(records))
	for _, rec := range records {
		var b models.Badge
		if err := rec.Decode(&b); err != nil {
			return nil, err
		}
		b.ID = rec.ID
		badges = append(badges, b)
	}
	return badges, nil
}
