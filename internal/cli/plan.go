package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/studyplan/internal/validation"
)

type PlanCmd struct {
	Date string `arg:"" help:"Date to plan (YYYY-MM-DD, 'today', or 'tomorrow')." default:"today"`
	Yes  bool   `short:"y" help:"Accept the schedule without prompting."`
}

func (c *PlanCmd) Run(ctx *Context) error {
	ctx.PerformAutomaticBackup()

	prefs, err := ctx.Store.GetPreferences()
	if err != nil {
		return fmt.Errorf("failed to get preferences: %w", err)
	}

	date, err := ResolveDate(c.Date, prefs.Timezone)
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

	schedule, err := ctx.Scheduler.GenerateDailySchedule(sessions, subjects, prefs, date, history)
	if err != nil {
		return err
	}

	PrintDailySchedule(schedule)

	// Surface data problems alongside the proposal without blocking it.
	validator := validation.New()
	subjectResult := validator.ValidateSubjects(subjects)
	sessionResult := validator.ValidateSessions(sessions, subjects, time.Now())
	conflicts := append(subjectResult.Conflicts, sessionResult.Conflicts...)
	if len(conflicts) > 0 {
		fmt.Println("\nWarnings:")
		for _, conflict := range conflicts {
			fmt.Printf("  - %s\n", conflict.Description)
		}
	}

	if len(schedule.Sessions) == 0 {
		return nil
	}

	if !c.Yes {
		fmt.Print("\nAccept this schedule? [y/N]: ")
		reader := bufio.NewReader(os.Stdin)
		response, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		response = strings.ToLower(strings.TrimSpace(response))
		if response != "y" && response != "yes" {
			fmt.Println("Schedule discarded. You can adjust sessions and regenerate.")
			return nil
		}
	}

	// Persist the assigned start times on the accepted sessions.
	now := NowRFC3339()
	for _, scheduled := range schedule.Sessions {
		session, err := ctx.Store.GetSession(scheduled.Session.ID)
		if err != nil {
			return err
		}
		startAt := scheduled.StartAt.UTC().Format(time.RFC3339)
		session.ScheduledAt = &startAt
		session.UpdatedAt = now
		if err := ctx.Store.UpdateSession(session); err != nil {
			return err
		}
	}

	fmt.Printf("Schedule accepted. %d sessions assigned start times.\n", len(schedule.Sessions))
	return nil
}
