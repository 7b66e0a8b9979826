package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/studyplan/internal/analytics"
	"github.com/julianstephens/studyplan/internal/constants"
	"github.com/julianstephens/studyplan/internal/models"
	"github.com/julianstephens/studyplan/internal/utils"
)

type SessionAddCmd struct {
	Title      string `arg:"" help:"Session title."`
	Subject    string `short:"s" help:"Subject ID or name." required:""`
	Duration   int    `short:"d" help:"Duration in minutes. Defaults to the preferred session length."`
	Type       string `short:"t" help:"Session type (study|review|practice|exam)." default:"study"`
	Difficulty string `help:"Difficulty (easy|medium|hard)." default:"medium"`
	Deadline   string `help:"Deadline date (YYYY-MM-DD)."`
	Notes      string `short:"n" help:"Free-form notes."`
}

func (c *SessionAddCmd) Run(ctx *Context) error {
	subject, err := FindSubject(ctx.Store, c.Subject)
	if err != nil {
		return err
	}

	sessionType, err := models.ParseSessionType(c.Type)
	if err != nil {
		return err
	}
	difficulty, err := models.ParseDifficulty(c.Difficulty)
	if err != nil {
		return err
	}

	duration := c.Duration
	if duration == 0 {
		prefs, err := ctx.Store.GetPreferences()
		if err != nil {
			return err
		}
		duration = prefs.SessionLengthMin
	}

	var deadline *string
	if c.Deadline != "" {
		prefs, err := ctx.Store.GetPreferences()
		if err != nil {
			return err
		}
		loc, err := utils.LoadLocation(prefs.Timezone)
		if err != nil {
			return err
		}
		day, err := utils.ParseDateInLocation(c.Deadline, loc)
		if err != nil {
			return fmt.Errorf("invalid deadline, use YYYY-MM-DD: %w", err)
		}
		// Deadlines land at end of day so a same-day deadline is not already past.
		ts := day.AddDate(0, 0, 1).Add(-time.Second).UTC().Format(time.RFC3339)
		deadline = &ts
	}

	now := NowRFC3339()
	session := models.StudySession{
		ID:          uuid.New().String(),
		SubjectID:   subject.ID,
		Title:       c.Title,
		DurationMin: duration,
		Type:        sessionType,
		Difficulty:  difficulty,
		Status:      models.StatusPlanned,
		Deadline:    deadline,
		Notes:       c.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := session.Validate(); err != nil {
		return fmt.Errorf("invalid session: %w", err)
	}

	if err := ctx.Store.AddSession(session); err != nil {
		return err
	}

	fmt.Printf("Added session: %s for %s (ID: %s)\n", session.Title, subject.Name, session.ID)
	return nil
}

type SessionListCmd struct {
	Subject string `short:"s" help:"Filter by subject ID or name."`
	Status  string `help:"Filter by status (planned|in-progress|completed|skipped)."`
}

func (c *SessionListCmd) Run(ctx *Context) error {
	var sessions []models.StudySession

	if c.Subject != "" {
		subject, err := FindSubject(ctx.Store, c.Subject)
		if err != nil {
			return err
		}
		sessions, err = ctx.Store.GetSessionsForSubject(subject.ID)
		if err != nil {
			return err
		}
	} else {
		all, err := ctx.Store.GetAllSessions()
		if err != nil {
			return err
		}
		sessions = all
	}

	if c.Status != "" {
		status, err := models.ParseSessionStatus(c.Status)
		if err != nil {
			return err
		}
		filtered := sessions[:0]
		for _, session := range sessions {
			if session.Status == status {
				filtered = append(filtered, session)
			}
		}
		sessions = filtered
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions found.")
		return nil
	}

	subjects, err := ctx.Store.GetAllSubjects()
	if err != nil {
		return err
	}
	subjectName := make(map[string]string, len(subjects))
	for _, subject := range subjects {
		subjectName[subject.ID] = subject.Name
	}

	fmt.Printf("%-36s  %-25s  %-15s  %-11s  %-8s  %7s  %s\n",
		"ID", "TITLE", "SUBJECT", "STATUS", "TYPE", "MIN", "DEADLINE")
	for _, session := range sessions {
		name := subjectName[session.SubjectID]
		if name == "" {
			name = "(unknown)"
		}
		deadline := "-"
		if session.Deadline != nil {
			if t, err := time.Parse(time.RFC3339, *session.Deadline); err == nil {
				deadline = t.Format(constants.DateFormat)
			}
		}
		fmt.Printf("%-36s  %-25s  %-15s  %-11s  %-8s  %7d  %s\n",
			session.ID, session.Title, name, session.Status, session.Type,
			session.DurationMin, deadline)
	}
	return nil
}

type SessionStartCmd struct {
	ID string `arg:"" help:"Session ID."`
}

func (c *SessionStartCmd) Run(ctx *Context) error {
	session, err := ctx.Store.GetSession(c.ID)
	if err != nil {
		return err
	}

	if !session.Status.CanTransitionTo(models.StatusInProgress) {
		return fmt.Errorf("cannot start session %q: status is %s", session.Title, session.Status)
	}

	now := NowRFC3339()
	session.Status = models.StatusInProgress
	session.StartedAt = &now
	session.UpdatedAt = now

	if err := ctx.Store.UpdateSession(session); err != nil {
		return err
	}

	fmt.Printf("Started session: %s\n", session.Title)
	return nil
}

type SessionCompleteCmd struct {
	ID            string `arg:"" help:"Session ID."`
	Minutes       int    `short:"m" help:"Actual minutes studied. Defaults to the planned duration."`
	Effectiveness int    `short:"e" help:"Effectiveness rating (1-5)."`
	Mood          int    `help:"Mood rating (1-5)."`
	Notes         string `short:"n" help:"Notes about the session."`
}

func (c *SessionCompleteCmd) Validate() error {
	if c.Effectiveness != 0 && (c.Effectiveness < 1 || c.Effectiveness > 5) {
		return fmt.Errorf("effectiveness must be between 1 and 5")
	}
	if c.Mood != 0 && (c.Mood < 1 || c.Mood > 5) {
		return fmt.Errorf("mood must be between 1 and 5")
	}
	if c.Minutes < 0 {
		return fmt.Errorf("minutes must not be negative")
	}
	return nil
}

func (c *SessionCompleteCmd) Run(ctx *Context) error {
	return finishSession(ctx, c.ID, models.StatusCompleted, c.Minutes, c.Effectiveness, c.Mood, c.Notes)
}

type SessionSkipCmd struct {
	ID string `arg:"" help:"Session ID."`
}

func (c *SessionSkipCmd) Run(ctx *Context) error {
	return finishSession(ctx, c.ID, models.StatusSkipped, 0, 0, 0, "")
}

// finishSession moves a session to a terminal state. A planned session
// passes through in-progress first so every transition stays legal. On
// completion the actual study time is merged into the subject totals and
// the day's progress history.
func finishSession(ctx *Context, id string, target models.SessionStatus, minutes, effectiveness, mood int, notes string) error {
	session, err := ctx.Store.GetSession(id)
	if err != nil {
		return err
	}

	if session.Status.Terminal() {
		return fmt.Errorf("session %q is already %s", session.Title, session.Status)
	}

	now := NowRFC3339()
	if session.Status == models.StatusPlanned {
		session.Status = models.StatusInProgress
		session.StartedAt = &now
	}
	if !session.Status.CanTransitionTo(target) {
		return fmt.Errorf("cannot move session %q from %s to %s", session.Title, session.Status, target)
	}

	session.Status = target
	session.CompletedAt = &now
	session.UpdatedAt = now

	if target == models.StatusSkipped {
		if err := ctx.Store.UpdateSession(session); err != nil {
			return err
		}
		fmt.Printf("Skipped session: %s\n", session.Title)
		return nil
	}

	actual := minutes
	if actual == 0 {
		actual = session.DurationMin
	}
	session.ActualMin = &actual
	if effectiveness != 0 {
		session.Effectiveness = &effectiveness
	}
	if notes != "" {
		session.Notes = notes
	}

	if err := ctx.Store.UpdateSession(session); err != nil {
		return err
	}

	subject, err := ctx.Store.GetSubject(session.SubjectID)
	if err != nil {
		return err
	}
	subject.TotalStudyMinutes += actual
	subject.SessionsCompleted++
	subject.UpdatedAt = now
	if err := ctx.Store.UpdateSubject(subject); err != nil {
		return err
	}

	prefs, err := ctx.Store.GetPreferences()
	if err != nil {
		return err
	}
	localNow, err := utils.NowInTimezone(prefs.Timezone)
	if err != nil {
		return err
	}

	entry := models.ProgressEntry{
		SubjectID:         session.SubjectID,
		Date:              localNow.Format(constants.DateFormat),
		StudyMinutes:      actual,
		SessionsCompleted: 1,
		Notes:             notes,
		CreatedAt:         now,
	}
	if effectiveness != 0 {
		eff := float64(effectiveness)
		entry.Effectiveness = &eff
	}
	if mood != 0 {
		entry.Mood = &mood
	}
	if err := ctx.Store.RecordProgress(entry); err != nil {
		return err
	}

	history, err := ctx.Store.GetAllProgress()
	if err != nil {
		return err
	}
	todayMinutes := 0
	todayCount := 0
	today := localNow.Format(constants.DateFormat)
	for _, e := range history {
		if e.Date == today {
			todayMinutes += e.StudyMinutes
			todayCount += e.SessionsCompleted
		}
	}

	fmt.Printf("Completed session: %s (%d min)\n", session.Title, actual)
	fmt.Printf("Today: %d min across %d sessions. Suggested break: %d min\n",
		todayMinutes, todayCount, analytics.SuggestBreakDuration(todayMinutes, todayCount))
	return nil
}
