package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/studyplan/internal/constants"
	"github.com/julianstephens/studyplan/internal/models"
	"github.com/julianstephens/studyplan/internal/scheduler"
	"github.com/julianstephens/studyplan/internal/storage"
	"github.com/julianstephens/studyplan/internal/utils"
)

type Context struct {
	Store     storage.Provider
	Scheduler *scheduler.Scheduler
}

// ResolveDate parses a date argument ("today", "tomorrow", or YYYY-MM-DD)
// at midnight in the preferences' timezone.
func ResolveDate(dateStr, timezone string) (time.Time, error) {
	loc, err := utils.LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}

	switch strings.ToLower(dateStr) {
	case "", "today":
		return utils.Midnight(time.Now().In(loc)), nil
	case "tomorrow":
		return utils.Midnight(time.Now().In(loc)).AddDate(0, 0, 1), nil
	default:
		date, err := utils.ParseDateInLocation(dateStr, loc)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date format, use YYYY-MM-DD or 'today': %w", err)
		}
		return date, nil
	}
}

// NowRFC3339 returns the current UTC time as an RFC3339 timestamp, the
// format used for all stored timestamps.
func NowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// FindSubject resolves a subject by ID, then by case-insensitive name.
func FindSubject(store storage.Provider, ref string) (models.Subject, error) {
	if subject, err := store.GetSubject(ref); err == nil {
		return subject, nil
	}

	subjects, err := store.GetAllSubjects()
	if err != nil {
		return models.Subject{}, err
	}
	for _, subject := range subjects {
		if strings.EqualFold(subject.Name, ref) {
			return subject, nil
		}
	}
	return models.Subject{}, fmt.Errorf("subject not found: %s", ref)
}

// PrintDailySchedule renders one day of the generated schedule.
func PrintDailySchedule(schedule models.DailySchedule) {
	fmt.Printf("Schedule for %s:\n\n", schedule.Date)

	if len(schedule.Sessions) == 0 {
		fmt.Println("  No sessions scheduled")
		return
	}

	for _, scheduled := range schedule.Sessions {
		subjectName := "(unknown subject)"
		if scheduled.Subject != nil {
			subjectName = scheduled.Subject.Name
		}
		fmt.Printf("  %s  %-30s %-15s %3d min  [%s/%s]  score %.1f\n",
			scheduled.StartAt.Format(constants.TimeFormat),
			scheduled.Session.Title,
			subjectName,
			scheduled.Session.DurationMin,
			scheduled.Session.Type,
			scheduled.Session.Difficulty,
			scheduled.Score,
		)
	}

	fmt.Printf("\n  Total: %d min across %d sessions (%.0f%% of daily goal)\n",
		schedule.TotalMinutes, schedule.SessionCount, schedule.Efficiency*100)
}
