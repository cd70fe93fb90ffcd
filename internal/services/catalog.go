package services

import (
	"context"

	"literasi-backend/internal/models"
	"literasi-backend/internal/repository"
)

type CatalogService struct {
	activities *repository.ActivityRepo
	badges     *repository.BadgeRepo
}

func NewCatalogService(activities *repository.ActivityRepo, badges *repository.BadgeRepo) *CatalogService {
	return &CatalogService{activities: activities, badges: badges}
}

// Activities filters the catalog by exact topic and difficulty. Unknown values
// simply match nothing. A zero limit returns every match.
func (s *CatalogService) Activities(ctx context.Context, f models.ActivityFilter) ([]models.Activity, error) {
	if err := validate(f); err != nil {
		return nil, err
	}

	q := repository.ActivityQuery{
		Difficulty: models.Difficulty(f.Difficulty),
		Limit:      f.Limit,
	}
	if f.Topic != "" {
		q.Topics = []models.Topic{models.Topic(f.Topic)}
	}
	return s.activities.List(ctx, q)
}

func (s *CatalogService) Badges(ctx context.Context) ([]models.Badge, error) {
	return s.badges.List(ctx)
}
