package repository

import (
	"context"
	"fmt"

	"literasi-backend/internal/docstore"
	"literasi-backend/internal/models"
)

type ChildRepo struct {
	store docstore.Store
}

func NewChildRepo(store docstore.Store) *ChildRepo {
	return &ChildRepo{store: store}
}

func (r *ChildRepo) Create(ctx context.Context, child *models.Child) error {
	id, err := r.store.Insert(ctx, ChildCollection, child)
	if err != nil {
		return err
	}
	child.ID = id
	return nil
}

// GetByID returns docstore.ErrNotFound when no child has this id.
func (r *ChildRepo) GetByID(ctx context.Context, id docstore.ID) (*models.Child, error) {
	child := &models.Child{}
	if err := r.store.Get(ctx, ChildCollection, id, child); err != nil {
		return nil, err
	}
	child.ID = id
	if child.Badges == nil {
		child.Badges = []string{}
	}
	return child, nil
}

func (r *ChildRepo) List(ctx context.Context) ([]models.Child, error) {
	records, err := r.store.Find(ctx, ChildCollection, docstore.Query{})
	if err != nil {
		return nil, err
	}

	children := make([]models.Child, 0, len(records))
	for _, rec := range records {
		var c models.Child
		if err := rec.Decode(&c); err != nil {
			return nil, err
		}
		c.ID = rec.ID
		if c.Badges == nil {
			c.Badges = []string{}
		}
		children = append(children, c)
	}
	return children, nil
}

// SaveRewards writes next's progression fields only if the stored child still
// has the xp, stars and level read into prev. A concurrent writer yields
// docstore.ErrConflict.
func (r *ChildRepo) SaveRewards(ctx context.Context, prev, next *models.Child) error {
	expect := docstore.Filter{
		"xp":    prev.XP,
		"stars": prev.Stars,
		"level": prev.Level,
	}
	set := map[string]any{
		"xp":     next.XP,
		"stars":  next.Stars,
		"level":  next.Level,
		"badges": next.Badges,
	}
	if err := r.store.CompareAndSet(ctx, ChildCollection, prev.ID, expect, set); err != nil {
		return fmt.Errorf("save rewards for child %s: %w", prev.ID, err)
	}
	return nil
}
