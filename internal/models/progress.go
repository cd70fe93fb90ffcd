package models

import (
	"time"

	"literasi-backend/internal/docstore"
)

// Progress is one completed attempt. It is never modified after insert.
type Progress struct {
	ID          docstore.ID `json:"id,omitzero"`
	ChildID     docstore.ID `json:"child_id"`
	ActivityID  docstore.ID `json:"activity_id"`
	Accuracy    float64     `json:"accuracy"`
	DurationSec int         `json:"duration_sec"`
	Mistakes    int         `json:"mistakes"`
	Completed   bool        `json:"completed"`
	CreatedAt   time.Time   `json:"created_at"`
}

type SubmitProgressRequest struct {
	ChildID     string   `json:"child_id" validate:"required"`
	ActivityID  string   `json:"activity_id" validate:"required"`
	Accuracy    *float64 `json:"accuracy" validate:"required,min=0,max=1"`
	DurationSec *int     `json:"duration_sec" validate:"required,min=0"`
	Mistakes    int      `json:"mistakes" validate:"min=0"`
}

type ProgressResult struct {
	ProgressID docstore.ID `json:"progress_id"`
	XP         int         `json:"xp"`
	Stars      int         `json:"stars"`
	Level      int         `json:"level"`
	Badges     []string    `json:"badges"`
}

// RewardEvent is published after a submission updates a child.
type RewardEvent struct {
	ChildID     docstore.ID `json:"child_id"`
	ProgressID  docstore.ID `json:"progress_id"`
	ActivityID  docstore.ID `json:"activity_id"`
	XPGained    int         `json:"xp_gained"`
	StarsGained int         `json:"stars_gained"`
	XP          int         `json:"xp"`
	Stars       int         `json:"stars"`
	Level       int         `json:"level"`
	LeveledUp   bool        `json:"leveled_up"`
	NewBadges   []string    `json:"new_badges"`
	At          time.Time   `json:"at"`
}
