package repository

import (
	"context"
	"fmt"

	"literasi-backend/internal/logger"
	"literasi-backend/internal/models"
)

func strPtr(s string) *string { return &s }

// DefaultActivities is the catalog inserted into an empty activity collection:
// one activity per topic and difficulty.
func DefaultActivities() []models.Activity {
	return []models.Activity{
		{Title: "Pilih Kata Sandi Kuat", Topic: models.TopicInternetSafety, Kind: models.KindQuiz, Difficulty: models.DifficultyEasy, EstDuration: 5, Points: 10, StarsReward: 1, Asset: strPtr("/assets/lock.png")},
		{Title: "Rahasia vs Boleh Dibagi", Topic: models.TopicInternetSafety, Kind: models.KindSorting, Difficulty: models.DifficultyMedium, EstDuration: 6, Points: 15, StarsReward: 2, Asset: strPtr("/assets/share.png")},
		{Title: "Tebak Phishing!", Topic: models.TopicInternetSafety, Kind: models.KindQuiz, Difficulty: models.DifficultyHard, EstDuration: 7, Points: 20, StarsReward: 3, Asset: strPtr("/assets/phish.png")},

		{Title: "Kenal Perangkat", Topic: models.TopicDigitalDevices, Kind: models.KindMemory, Difficulty: models.DifficultyEasy, EstDuration: 5, Points: 10, StarsReward: 1, Asset: strPtr("/assets/device.png")},
		{Title: "Pasang Aksesori", Topic: models.TopicDigitalDevices, Kind: models.KindPuzzle, Difficulty: models.DifficultyMedium, EstDuration: 6, Points: 15, StarsReward: 2, Asset: strPtr("/assets/plug.png")},
		{Title: "Perbaiki Jaringan", Topic: models.TopicDigitalDevices, Kind: models.KindPuzzle, Difficulty: models.DifficultyHard, EstDuration: 8, Points: 20, StarsReward: 3, Asset: strPtr("/assets/wifi.png")},

		{Title: "Kata Ajaib Online", Topic: models.TopicDigitalEthics, Kind: models.KindQuiz, Difficulty: models.DifficultyEasy, EstDuration: 5, Points: 10, StarsReward: 1, Asset: strPtr("/assets/please.png")},
		{Title: "Komentar Baik vs Jahil", Topic: models.TopicDigitalEthics, Kind: models.KindSorting, Difficulty: models.DifficultyMedium, EstDuration: 6, Points: 15, StarsReward: 2, Asset: strPtr("/assets/comment.png")},
		{Title: "Jadi Penolong Online", Topic: models.TopicDigitalEthics, Kind: models.KindVideo, Difficulty: models.DifficultyHard, EstDuration: 7, Points: 20, StarsReward: 3, Asset: strPtr("/assets/help.png")},

		{Title: "Cari Perbedaan", Topic: models.TopicCriticalThinking, Kind: models.KindPuzzle, Difficulty: models.DifficultyEasy, EstDuration: 5, Points: 10, StarsReward: 1, Asset: strPtr("/assets/spot.png")},
		{Title: "Fakta atau Opini?", Topic: models.TopicCriticalThinking, Kind: models.KindQuiz, Difficulty: models.DifficultyMedium, EstDuration: 6, Points: 15, StarsReward: 2, Asset: strPtr("/assets/fact.png")},
		{Title: "Susun Bukti", Topic: models.TopicCriticalThinking, Kind: models.KindPuzzle, Difficulty: models.DifficultyHard, EstDuration: 8, Points: 20, StarsReward: 3, Asset: strPtr("/assets/proof.png")},
	}
}

func DefaultBadges() []models.Badge {
	return []models.Badge{
		{Code: "starter", Label: "Petualang Mungil", Description: strPtr("Mulai belajar!"), Icon: strPtr("🌟")},
		{Code: "streak3", Label: "Rajin 3 Hari", Description: strPtr("Belajar 3 hari berturut-turut"), Icon: strPtr("🔥")},
		{Code: "security", Label: "Penjaga Aman", Description: strPtr("Ahli keamanan internet"), Icon: strPtr("🔒")},
		{Code: "critical", Label: "Detektif Kecil", Description: strPtr("Pintar berpikir kritis"), Icon: strPtr("🕵️")},
	}
}

// Seed fills the activity and badge collections when they are empty. It is
// check-then-insert: two instances starting together may both seed.
func Seed(ctx context.Context, activities *ActivityRepo, badges *BadgeRepo, log *logger.Logger) error {
	n, err := activities.Count(ctx)
	if err != nil {
		return fmt.Errorf("count activities: %w", err)
	}
	if n == 0 {
		for _, a := range DefaultActivities() {
			a := a
			if err := activities.Create(ctx, &a); err != nil {
				return fmt.Errorf("seed activity %q: %w", a.Title, err)
			}
		}
		log.Info("seeded activity catalog", "count", len(DefaultActivities()))
	}

	n, err = badges.Count(ctx)
	if err != nil {
		return fmt.Errorf("count badges: %w", err)
	}
	if n == 0 {
		for _, b := range DefaultBadges() {
			b := b
			if err := badges.Create(ctx, &b); err != nil {
				return fmt.Errorf("seed badge %q: %w", b.Code, err)
			}
		}
		log.Info("seeded badge catalog", "count", len(DefaultBadges()))
	}
	return nil
}
