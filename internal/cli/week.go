package cli

import (
	"fmt"
)

type WeekCmd struct {
	Start string `arg:"" help:"First day of the week to plan (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *WeekCmd) Run(ctx *Context) error {
	prefs, err := ctx.Store.GetPreferences()
	if err != nil {
		return fmt.Errorf("failed to get preferences: %w", err)
	}

	start, err := ResolveDate(c.Start, prefs.Timezone)
	if err != nil {
		return err
	}

	subjects, err := ctx.Store.GetAllSubjects()
	if err != nil {
		return fmt.Errorf("failed to get subjects: %w", err)
	}
	sessions, err := ctx.Store.GetAllSessions()
	if err != nil {
		return fmt.Errorf("failed to get sessions: %w", err)
	}
	history, err := ctx.Store.GetAllProgress()
	if err != nil {
		return fmt.Errorf("failed to get progress history: %w", err)
	}

	week, err := ctx.Scheduler.GenerateWeeklySchedule(sessions, subjects, prefs, start, history)
	if err != nil {
		return err
	}

	totalMinutes := 0
	totalSessions := 0
	for i, day := range week {
		if i > 0 {
			fmt.Println()
		}
		PrintDailySchedule(day)
		totalMinutes += day.TotalMinutes
		totalSessions += day.SessionCount
	}

	fmt.Printf("\nWeek total: %d min across %d sessions on %d study days\n",
		totalMinutes, totalSessions, len(week))
	return nil
}
