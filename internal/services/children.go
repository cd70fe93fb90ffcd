package services

import (
	"context"

	"literasi-backend/internal/docstore"
	"literasi-backend/internal/models"
	"literasi-backend/internal/repository"
)

type ChildService struct {
	children *repository.ChildRepo
}

func NewChildService(children *repository.ChildRepo) *ChildService {
	return &ChildService{children: children}
}

func (s *ChildService) Register(ctx context.Context, req models.CreateChildRequest) (docstore.ID, error) {
	if err := validate(req); err != nil {
		return docstore.ID{}, err
	}

	child := models.NewChild(req.Name, req.Age, req.Avatar)
	if err := s.children.Create(ctx, child); err != nil {
		return docstore.ID{}, err
	}
	return child.ID, nil
}

func (s *ChildService) List(ctx context.Context) ([]models.Child, error) {
	return s.children.List(ctx)
}
