package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/julianstephens/studyplan/internal/models"
	"github.com/julianstephens/studyplan/internal/utils"
)

// RecentStudyTime sums recorded study minutes for a subject over the
// trailing window [today-windowDays, today]. Entries with unparseable
// dates are ignored.
func RecentStudyTime(subjectID string, history []models.ProgressEntry, windowDays int, today time.Time) int {
	day := utils.Midnight(today)
	cutoff := day.AddDate(0, 0, -windowDays)

	total := 0
	for _, entry := range history {
		if entry.SubjectID != subjectID {
			continue
		}
		entryDay, err := entry.Day(today.Location())
		if err != nil {
			continue
		}
		if !entryDay.Before(cutoff) && !entryDay.After(day) {
			total += entry.StudyMinutes
		}
	}
	return total
}

// StudyStreak computes the current consecutive-day study streak ending
// today. A day with zero recorded minutes breaks the streak the same as a
// missing day. Multiple entries on the same day (one per subject) count as
// a single day.
func StudyStreak(history []models.ProgressEntry, today time.Time) int {
	var days []time.Time
	for _, entry := range history {
		if entry.StudyMinutes <= 0 {
			continue
		}
		entryDay, err := entry.Day(today.Location())
		if err != nil {
			continue
		}
		days = append(days, entryDay)
	}
	if len(days) == 0 {
		return 0
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].After(days[j])
	})

	start := utils.Midnight(today)
	streak := 0
	for _, d := range days {
		// Round to avoid off-by-one across DST transitions.
		diff := int(math.Round(start.Sub(d).Hours() / 24))
		switch {
		case diff == streak:
			streak++
		case diff == streak-1:
			// Another entry for a day already counted.
			continue
		default:
			return streak
		}
	}
	return streak
}

// SuggestBreakDuration returns the suggested break length in minutes after
// the given session, following the pomodoro cadence: a long break every
// fourth session (longer still after two or more hours of accumulated
// study), a short break otherwise.
func SuggestBreakDuration(studyMinutes, sessionCount int) int {
	if sessionCount > 0 && sessionCount%4 == 0 {
		if studyMinutes >= 120 {
			return 30
		}
		return 15
	}
	return 5
}
