package services

import (
	"literasi-backend/internal/models"
)

const (
	highAccuracy   = 0.85
	steadyAccuracy = 0.6
	fastDuration   = 60 // seconds
)

// Performance buckets last-session stats. The difficulty decision and the
// reasoning text are both derived from it.
type Performance int

const (
	PerformanceNoHistory   Performance = iota // no accuracy reported
	PerformanceFast                           // >= 0.85 and under 60s
	PerformanceAccurate                       // >= 0.85, slow or unknown duration
	PerformanceSteady                         // [0.6, 0.85)
	PerformanceStruggling                     // < 0.6
)

func (p Performance) String() string {
	switch p {
	case PerformanceNoHistory:
		return "no_history"
	case PerformanceFast:
		return "fast"
	case PerformanceAccurate:
		return "accurate"
	case PerformanceSteady:
		return "steady"
	case PerformanceStruggling:
		return "struggling"
	default:
		return "unknown"
	}
}

func Classify(lastAccuracy *float64, lastDurationSec *int) Performance {
	if lastAccuracy == nil {
		return PerformanceNoHistory
	}
	acc := *lastAccuracy
	switch {
	case acc >= highAccuracy:
		if lastDurationSec != nil && *lastDurationSec < fastDuration {
			return PerformanceFast
		}
		return PerformanceAccurate
	case acc >= steadyAccuracy:
		return PerformanceSteady
	default:
		return PerformanceStruggling
	}
}

// NextDifficulty maps a performance bucket and the previous tier (nil when
// unknown) to the tier to play next.
func NextDifficulty(p Performance, last *models.Difficulty) models.Difficulty {
	switch p {
	case PerformanceNoHistory:
		if last != nil {
			return *last
		}
		return models.DifficultyEasy
	case PerformanceFast:
		if last != nil {
			switch *last {
			case models.DifficultyEasy:
				return models.DifficultyMedium
			case models.DifficultyMedium:
				return models.DifficultyHard
			}
		}
		return models.DifficultyHard
	case PerformanceAccurate:
		return models.DifficultyMedium
	case PerformanceSteady:
		if last != nil {
			return *last
		}
		return models.DifficultyMedium
	default:
		return models.DifficultyEasy
	}
}

func DecideNextDifficulty(lastAccuracy *float64, lastDurationSec *int, last *models.Difficulty) models.Difficulty {
	return NextDifficulty(Classify(lastAccuracy, lastDurationSec), last)
}

// Reasoning explains the decision made for p in the app's language.
func Reasoning(p Performance, last *models.Difficulty) string {
	switch p {
	case PerformanceFast:
		return "Akurasi tinggi dan waktu cepat → naik tingkat"
	case PerformanceAccurate:
		return "Akurasi tinggi tapi waktu lambat → latihan di tingkat sedang"
	case PerformanceSteady:
		return "Akurasi sedang → pertahankan tingkat saat ini"
	case PerformanceStruggling:
		return "Akurasi rendah → turunkan tingkat untuk penguatan"
	default:
		if last != nil {
			return "Tidak ada histori akurasi → lanjutkan tingkat sebelumnya"
		}
		return "Tidak ada histori → mulai dari tingkat mudah"
	}
}
