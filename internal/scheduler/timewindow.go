package scheduler

import (
	"time"

	"github.com/julianstephens/studyplan/internal/models"
)

// Time-of-day windows for difficulty and session-type fit. Classification
// uses only the hour component of the given instant; all ranges are
// inclusive.

// IsOptimalTimeForDifficulty reports whether the instant falls in a
// favorable window for the given difficulty level. Hard topics fit the
// morning (8-12) and early evening (18-20), medium topics anything but the
// very early and very late hours (9-22), easy topics any hour.
func IsOptimalTimeForDifficulty(at time.Time, difficulty models.Difficulty) bool {
	hour := at.Hour()

	switch difficulty {
	case models.DifficultyHard:
		return (hour >= 8 && hour <= 12) || (hour >= 18 && hour <= 20)
	case models.DifficultyMedium:
		return hour >= 9 && hour <= 22
	default:
		return true
	}
}

// IsGoodTimeForReview reports whether the instant falls in the review
// window (afternoon/evening, 14-21).
func IsGoodTimeForReview(at time.Time) bool {
	hour := at.Hour()
	return hour >= 14 && hour <= 21
}

// IsGoodTimeForPractice reports whether the instant falls in the practice
// window (morning 9-12 or early evening 16-19).
func IsGoodTimeForPractice(at time.Time) bool {
	hour := at.Hour()
	return (hour >= 9 && hour <= 12) || (hour >= 16 && hour <= 19)
}
