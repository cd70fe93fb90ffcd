package services

import (
	"literasi-backend/internal/models"
)

// SuggestTopics returns every topic in priority order: a valid preferred topic
// first, the rest in canonical order.
func SuggestTopics(preferred *string) []models.Topic {
	topics := make([]models.Topic, 0, len(models.Topics))
	if preferred == nil || !models.Topic(*preferred).Valid() {
		return append(topics, models.Topics...)
	}

	first := models.Topic(*preferred)
	topics = append(topics, first)
	for _, t := range models.Topics {
		if t != first {
			topics = append(topics, t)
		}
	}
	return topics
}
