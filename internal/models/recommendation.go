package models

type RecommendationRequest struct {
	ChildID         string   `json:"child_id" validate:"required"`
	LastAccuracy    *float64 `json:"last_accuracy" validate:"omitempty,min=0,max=1"`
	LastDurationSec *int     `json:"last_duration_sec" validate:"omitempty,min=0"`
	LastDifficulty  *string  `json:"last_difficulty" validate:"omitempty,oneof=easy medium hard"`
	PreferredTopic  *string  `json:"preferred_topic"`
}

type RecommendationResponse struct {
	NextDifficulty  Difficulty `json:"next_difficulty"`
	Reasoning       string     `json:"reasoning"`
	SuggestedTopics []Topic    `json:"suggested_topics"`
	Activities      []Activity `json:"activities"`
}
