package scheduler

import (
	"testing"
	"time"

	"github.com/julianstephens/studyplan/internal/models"
)

func at(hour int) time.Time {
	return time.Date(2024, 3, 15, hour, 0, 0, 0, time.UTC)
}

func TestIsOptimalTimeForDifficulty(t *testing.T) {
	tests := []struct {
		name       string
		hour       int
		difficulty models.Difficulty
		want       bool
	}{
		{"hard morning", 8, models.DifficultyHard, true},
		{"hard noon", 12, models.DifficultyHard, true},
		{"hard afternoon gap", 15, models.DifficultyHard, false},
		{"hard early evening", 19, models.DifficultyHard, true},
		{"hard late night", 22, models.DifficultyHard, false},
		{"medium early morning", 8, models.DifficultyMedium, false},
		{"medium daytime", 13, models.DifficultyMedium, true},
		{"medium late", 22, models.DifficultyMedium, true},
		{"medium after hours", 23, models.DifficultyMedium, false},
		{"easy midnight", 0, models.DifficultyEasy, true},
		{"easy anytime", 17, models.DifficultyEasy, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsOptimalTimeForDifficulty(at(tt.hour), tt.difficulty)
			if got != tt.want {
				t.Errorf("IsOptimalTimeForDifficulty(hour=%d, %s) = %v, want %v", tt.hour, tt.difficulty, got, tt.want)
			}
		})
	}
}

func TestIsGoodTimeForReview(t *testing.T) {
	if IsGoodTimeForReview(at(13)) {
		t.Error("13:00 should not be in the review window")
	}
	if !IsGoodTimeForReview(at(14)) {
		t.Error("14:00 should be in the review window")
	}
	if !IsGoodTimeForReview(at(21)) {
		t.Error("21:00 should be in the review window")
	}
	if IsGoodTimeForReview(at(22)) {
		t.Error("22:00 should not be in the review window")
	}
}

func TestIsGoodTimeForPractice(t *testing.T) {
	if IsGoodTimeForPractice(at(8)) {
		t.Error("08:00 should not be in the practice window")
	}
	if !IsGoodTimeForPractice(at(10)) {
		t.Error("10:00 should be in the practice window")
	}
	if IsGoodTimeForPractice(at(14)) {
		t.Error("14:00 should not be in the practice window")
	}
	if !IsGoodTimeForPractice(at(17)) {
		t.Error("17:00 should be in the practice window")
	}
	if IsGoodTimeForPractice(at(20)) {
		t.Error("20:00 should not be in the practice window")
	}
}
