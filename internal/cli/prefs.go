package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/studyplan/internal/utils"
	"github.com/julianstephens/studyplan/internal/validation"
)

type PrefsShowCmd struct{}

func (c *PrefsShowCmd) Run(ctx *Context) error {
	prefs, err := ctx.Store.GetPreferences()
	if err != nil {
		return err
	}

	fmt.Printf("daily-goal:     %d min\n", prefs.DailyStudyGoalMin)
	fmt.Printf("session-length: %d min\n", prefs.SessionLengthMin)
	fmt.Printf("break-length:   %d min\n", prefs.BreakLengthMin)
	fmt.Printf("long-break:     %d min\n", prefs.LongBreakLengthMin)
	fmt.Printf("study-days:     %d per week\n", prefs.StudyDaysPerWeek)
	fmt.Printf("max-sessions:   %d per day\n", prefs.MaxSessionsPerDay)
	fmt.Printf("start-times:    %s\n", strings.Join(prefs.PreferredStartTimes, ", "))
	fmt.Printf("timezone:       %s\n", prefs.Timezone)
	return nil
}

type PrefsSetCmd struct {
	Key   string `arg:"" help:"Preference key (daily-goal|session-length|break-length|long-break|study-days|max-sessions|start-times|timezone)."`
	Value string `arg:"" help:"New value. For start-times, a comma-separated list of HH:MM slots."`
}

func (c *PrefsSetCmd) Run(ctx *Context) error {
	prefs, err := ctx.Store.GetPreferences()
	if err != nil {
		return err
	}

	switch c.Key {
	case "daily-goal":
		prefs.DailyStudyGoalMin, err = strconv.Atoi(c.Value)
	case "session-length":
		prefs.SessionLengthMin, err = strconv.Atoi(c.Value)
	case "break-length":
		prefs.BreakLengthMin, err = strconv.Atoi(c.Value)
	case "long-break":
		prefs.LongBreakLengthMin, err = strconv.Atoi(c.Value)
	case "study-days":
		prefs.StudyDaysPerWeek, err = strconv.Atoi(c.Value)
	case "max-sessions":
		prefs.MaxSessionsPerDay, err = strconv.Atoi(c.Value)
	case "start-times":
		var slots []string
		for _, slot := range strings.Split(c.Value, ",") {
			slot = strings.TrimSpace(slot)
			if !utils.ValidateTimeFormat(slot) {
				return fmt.Errorf("invalid start time %q (expected HH:MM)", slot)
			}
			slots = append(slots, slot)
		}
		prefs.PreferredStartTimes = slots
	case "timezone":
		if !utils.ValidateTimezone(c.Value) {
			return fmt.Errorf("invalid timezone: %s", c.Value)
		}
		prefs.Timezone = c.Value
	default:
		return fmt.Errorf("unknown preference key: %s", c.Key)
	}
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", c.Key, err)
	}

	if result := validation.New().ValidatePreferences(prefs); result.HasConflicts() {
		return fmt.Errorf("invalid preferences:\n%s", result.FormatReport())
	}

	if err := ctx.Store.SavePreferences(prefs); err != nil {
		return err
	}

	fmt.Printf("Set %s = %s\n", c.Key, c.Value)
	return nil
}
