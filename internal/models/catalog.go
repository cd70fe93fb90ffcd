package models

import (
	"literasi-backend/internal/docstore"
)

type Topic string

const (
	TopicInternetSafety   Topic = "keamanan_internet"
	TopicDigitalDevices   Topic = "perangkat_digital"
	TopicDigitalEthics    Topic = "etika_digital"
	TopicCriticalThinking Topic = "berpikir_kritis"
)

// Topics lists every topic in canonical order.
var Topics = []Topic{
	TopicInternetSafety,
	TopicDigitalDevices,
	TopicDigitalEthics,
	TopicCriticalThinking,
}

func (t Topic) Valid() bool {
	for _, known := range Topics {
		if t == known {
			return true
		}
	}
	return false
}

type Kind string

const (
	KindQuiz    Kind = "quiz"
	KindPuzzle  Kind = "puzzle"
	KindMemory  Kind = "memory"
	KindSorting Kind = "sorting"
	KindVideo   Kind = "video"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

type Activity struct {
	ID          docstore.ID `json:"id,omitzero"`
	Title       string      `json:"title"`
	Topic       Topic       `json:"topic"`
	Kind        Kind        `json:"kind"`
	Difficulty  Difficulty  `json:"difficulty"`
	EstDuration int         `json:"est_duration"` // minutes
	Points      int         `json:"points"`
	StarsReward int         `json:"stars_reward"`
	Asset       *string     `json:"asset"`
}

type ActivityFilter struct {
	Topic      string `json:"topic"`
	Difficulty string `json:"difficulty"`
	Limit      int    `json:"limit" validate:"min=0"`
}

type Badge struct {
	ID          docstore.ID `json:"id,omitzero"`
	Code        string      `json:"code"`
	Label       string      `json:"label"`
	Description *string     `json:"description"`
	Icon        *string     `json:"icon"`
}
