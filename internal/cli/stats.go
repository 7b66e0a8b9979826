package cli

import (
	"fmt"

	"github.com/julianstephens/studyplan/internal/analytics"
	"github.com/julianstephens/studyplan/internal/models"
	"github.com/julianstephens/studyplan/internal/utils"
)

type StatsCmd struct {
	Window int `short:"w" help:"Recency window in days for per-subject recent time." default:"3"`
}

func (c *StatsCmd) Run(ctx *Context) error {
	prefs, err := ctx.Store.GetPreferences()
	if err != nil {
		return fmt.Errorf("failed to get preferences: %w", err)
	}
	now, err := utils.NowInTimezone(prefs.Timezone)
	if err != nil {
		return err
	}

	subjects, err := ctx.Store.GetAllSubjects()
	if err != nil {
		return err
	}
	sessions, err := ctx.Store.GetAllSessions()
	if err != nil {
		return err
	}
	history, err := ctx.Store.GetAllProgress()
	if err != nil {
		return err
	}

	streak := analytics.StudyStreak(history, now)
	fmt.Printf("Study streak: %d day(s)\n\n", streak)

	planned := 0
	completed := 0
	totalMinutes := 0
	for _, session := range sessions {
		switch session.Status {
		case models.StatusPlanned:
			planned++
		case models.StatusCompleted:
			completed++
			if session.ActualMin != nil {
				totalMinutes += *session.ActualMin
			} else {
				totalMinutes += session.DurationMin
			}
		}
	}
	fmt.Printf("Sessions: %d planned, %d completed (%d min studied)\n\n", planned, completed, totalMinutes)

	if len(subjects) == 0 {
		return nil
	}

	fmt.Printf("%-20s  %-8s  %10s  %9s  %14s\n",
		"SUBJECT", "PRIORITY", "TOTAL MIN", "COMPLETED", "LAST "+fmt.Sprint(c.Window)+" DAYS")
	for _, subject := range subjects {
		recent := analytics.RecentStudyTime(subject.ID, history, c.Window, now)
		fmt.Printf("%-20s  %-8s  %10d  %9d  %11d min\n",
			subject.Name, subject.Priority,
			subject.TotalStudyMinutes, subject.SessionsCompleted, recent)
	}
	return nil
}
