package services

import (
	"context"
	"errors"
	"time"

	"literasi-backend/internal/docstore"
	"literasi-backend/internal/events"
	"literasi-backend/internal/logger"
	"literasi-backend/internal/models"
	"literasi-backend/internal/repository"
)

const (
	xpPerLevel        = 100
	maxRewardAttempts = 5

	BadgeStarter = "starter"
)

// RewardFor returns the XP and stars earned for an attempt. The activity's own
// points and stars_reward are not consulted.
func RewardFor(accuracy float64) (xp, stars int) {
	switch {
	case accuracy >= 0.9:
		return 20, 3
	case accuracy >= 0.75:
		return 15, 2
	default:
		return 10, 1
	}
}

// ApplyXP adds gain and converts every full 100 XP into a level.
func ApplyXP(xp, level, gain int) (newXP, newLevel int) {
	newXP, newLevel = xp+gain, level
	for newXP >= xpPerLevel {
		newXP -= xpPerLevel
		newLevel++
	}
	return newXP, newLevel
}

type ProgressService struct {
	progress  *repository.ProgressRepo
	children  *repository.ChildRepo
	publisher events.Publisher
	log       *logger.Logger
	now       func() time.Time
}

func NewProgressService(progress *repository.ProgressRepo, children *repository.ChildRepo, publisher events.Publisher, log *logger.Logger) *ProgressService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ProgressService{
		progress:  progress,
		children:  children,
		publisher: publisher,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Submit records the attempt, then applies XP, stars, level-ups and the
// starter badge to the child. The progress record is stored even when the
// child does not exist.
func (s *ProgressService) Submit(ctx context.Context, req models.SubmitProgressRequest) (*models.ProgressResult, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	childID, err := parseID("child_id", req.ChildID)
	if err != nil {
		return nil, err
	}
	activityID, err := parseID("activity_id", req.ActivityID)
	if err != nil {
		return nil, err
	}

	prog := &models.Progress{
		ChildID:     childID,
		ActivityID:  activityID,
		Accuracy:    *req.Accuracy,
		DurationSec: *req.DurationSec,
		Mistakes:    req.Mistakes,
		Completed:   true,
		CreatedAt:   s.now(),
	}
	if err := s.progress.Create(ctx, prog); err != nil {
		return nil, err
	}

	xpGain, starsGain := RewardFor(prog.Accuracy)
	counted, firstProgress := false, false

	for attempt := 1; ; attempt++ {
		child, err := s.children.GetByID(ctx, childID)
		if isNotFound(err) {
			return nil, &NotFoundError{Message: "Child not found"}
		}
		if err != nil {
			return nil, err
		}

		// counted after the insert above
		if !counted {
			count, err := s.progress.CountByChild(ctx, childID)
			if err != nil {
				return nil, err
			}
			counted, firstProgress = true, count == 1
		}

		next := *child
		next.Badges = append([]string{}, child.Badges...)
		next.XP, next.Level = ApplyXP(child.XP, child.Level, xpGain)
		next.Stars = child.Stars + starsGain

		var newBadges []string
		if firstProgress && next.AddBadge(BadgeStarter) {
			newBadges = append(newBadges, BadgeStarter)
		}

		err = s.children.SaveRewards(ctx, child, &next)
		switch {
		case err == nil:
			s.announce(ctx, prog, child, &next, xpGain, starsGain, newBadges)
			return &models.ProgressResult{
				ProgressID: prog.ID,
				XP:         next.XP,
				Stars:      next.Stars,
				Level:      next.Level,
				Badges:     next.Badges,
			}, nil
		case isNotFound(err):
			return nil, &NotFoundError{Message: "Child not found"}
		case !errors.Is(err, docstore.ErrConflict):
			return nil, err
		}

		if attempt == maxRewardAttempts {
			s.log.Error("reward update kept conflicting", "child_id", childID, "attempts", attempt)
			return nil, &ConflictError{Message: "Child was updated concurrently, please retry"}
		}
		s.log.Warn("reward update conflict, retrying", "child_id", childID, "attempt", attempt)
	}
}

func (s *ProgressService) announce(ctx context.Context, prog *models.Progress, prev, next *models.Child, xpGain, starsGain int, newBadges []string) {
	leveledUp := next.Level > prev.Level
	if leveledUp {
		s.log.Info("child leveled up", "child_id", next.ID, "level", next.Level)
	}
	for _, code := range newBadges {
		s.log.Info("badge awarded", "child_id", next.ID, "badge", code)
	}
	if newBadges == nil {
		newBadges = []string{}
	}

	ev := models.RewardEvent{
		ChildID:     next.ID,
		ProgressID:  prog.ID,
		ActivityID:  prog.ActivityID,
		XPGained:    xpGain,
		StarsGained: starsGain,
		XP:          next.XP,
		Stars:       next.Stars,
		Level:       next.Level,
		LeveledUp:   leveledUp,
		NewBadges:   newBadges,
		At:          s.now(),
	}
	if err := s.publisher.PublishReward(ctx, ev); err != nil {
		s.log.Warn("failed to publish reward event", "child_id", next.ID, "error", err)
	}
}
