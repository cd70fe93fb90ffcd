package services

import (
	"context"

	"literasi-backend/internal/models"
	"literasi-backend/internal/repository"
)

const maxRecommendedActivities = 6

type RecommendationService struct {
	activities *repository.ActivityRepo
}

func NewRecommendationService(activities *repository.ActivityRepo) *RecommendationService {
	return &RecommendationService{activities: activities}
}

// Recommend picks the next difficulty from the last session and looks up
// matching activities across the suggested topics. It does not read or
// modify the child.
func (s *RecommendationService) Recommend(ctx context.Context, req models.RecommendationRequest) (*models.RecommendationResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if _, err := parseID("child_id", req.ChildID); err != nil {
		return nil, err
	}

	var last *models.Difficulty
	if req.LastDifficulty != nil {
		d := models.Difficulty(*req.LastDifficulty)
		last = &d
	}

	perf := Classify(req.LastAccuracy, req.LastDurationSec)
	next := NextDifficulty(perf, last)
	topics := SuggestTopics(req.PreferredTopic)

	activities, err := s.activities.List(ctx, repository.ActivityQuery{
		Topics:     topics,
		Difficulty: next,
		Limit:      maxRecommendedActivities,
	})
	if err != nil {
		return nil, err
	}

	return &models.RecommendationResponse{
		NextDifficulty:  next,
		Reasoning:       Reasoning(perf, last),
		SuggestedTopics: topics,
		Activities:      activities,
	}, nil
}
