package scheduler

import (
	"testing"
	"time"

	"github.com/julianstephens/studyplan/internal/models"
)

func packPrefs() models.SchedulingPreferences {
	return models.SchedulingPreferences{
		DailyStudyGoalMin:   120,
		SessionLengthMin:    25,
		BreakLengthMin:      5,
		LongBreakLengthMin:  15,
		StudyDaysPerWeek:    5,
		PreferredStartTimes: []string{"09:00", "14:00", "19:00"},
		MaxSessionsPerDay:   8,
	}
}

func plannedSession(id string, durationMin int, difficulty models.Difficulty) models.StudySession {
	return models.StudySession{
		ID:          id,
		SubjectID:   "subj-1",
		Title:       "Session " + id,
		DurationMin: durationMin,
		Type:        models.SessionStudy,
		Difficulty:  difficulty,
		Status:      models.StatusPlanned,
	}
}

var packDate = time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC) // a Wednesday

func packSubjects() []models.Subject {
	return []models.Subject{
		{ID: "subj-1", Name: "Mathematics", Priority: models.PriorityMedium},
	}
}

func TestGenerateDailySchedule_RespectsBudgets(t *testing.T) {
	sched := New()
	sessions := []models.StudySession{
		plannedSession("a", 60, models.DifficultyHard),
		plannedSession("b", 60, models.DifficultyMedium),
		plannedSession("c", 60, models.DifficultyEasy),
	}

	schedule, err := sched.GenerateDailySchedule(sessions, packSubjects(), packPrefs(), packDate, nil)
	if err != nil {
		t.Fatalf("GenerateDailySchedule failed: %v", err)
	}

	if schedule.TotalMinutes > 120 {
		t.Errorf("Total %d exceeds daily budget 120", schedule.TotalMinutes)
	}
	if schedule.SessionCount != 2 {
		t.Errorf("Expected 2 sessions within the 120 minute budget, got %d", schedule.SessionCount)
	}
	if schedule.Efficiency < 0 || schedule.Efficiency > 1 {
		t.Errorf("Efficiency %v out of [0,1]", schedule.Efficiency)
	}
}

func TestGenerateDailySchedule_MaxSessionsPerDay(t *testing.T) {
	sched := New()
	prefs := packPrefs()
	prefs.MaxSessionsPerDay = 2

	var sessions []models.StudySession
	for _, id := range []string{"a", "b", "c", "d"} {
		sessions = append(sessions, plannedSession(id, 10, models.DifficultyEasy))
	}

	schedule, err := sched.GenerateDailySchedule(sessions, packSubjects(), prefs, packDate, nil)
	if err != nil {
		t.Fatalf("GenerateDailySchedule failed: %v", err)
	}

	if schedule.SessionCount != 2 {
		t.Errorf("Expected session cap of 2 to hold, got %d", schedule.SessionCount)
	}
}

func TestGenerateDailySchedule_EmptyInput(t *testing.T) {
	sched := New()

	schedule, err := sched.GenerateDailySchedule(nil, packSubjects(), packPrefs(), packDate, nil)
	if err != nil {
		t.Fatalf("GenerateDailySchedule failed: %v", err)
	}

	if schedule.SessionCount != 0 || schedule.TotalMinutes != 0 {
		t.Errorf("Expected empty schedule, got count=%d total=%d", schedule.SessionCount, schedule.TotalMinutes)
	}
	if schedule.Efficiency != 0 {
		t.Errorf("Expected efficiency 0 for empty schedule, got %v", schedule.Efficiency)
	}
}

func TestGenerateDailySchedule_SkipsNonPlanned(t *testing.T) {
	sched := New()
	completed := plannedSession("done", 30, models.DifficultyEasy)
	completed.Status = models.StatusCompleted
	inProgress := plannedSession("running", 30, models.DifficultyEasy)
	inProgress.Status = models.StatusInProgress

	schedule, err := sched.GenerateDailySchedule(
		[]models.StudySession{completed, inProgress, plannedSession("open", 30, models.DifficultyEasy)},
		packSubjects(), packPrefs(), packDate, nil)
	if err != nil {
		t.Fatalf("GenerateDailySchedule failed: %v", err)
	}

	if schedule.SessionCount != 1 {
		t.Fatalf("Expected only the planned session to be scheduled, got %d", schedule.SessionCount)
	}
	if schedule.Sessions[0].Session.ID != "open" {
		t.Errorf("Expected session 'open', got %q", schedule.Sessions[0].Session.ID)
	}
}

func TestGenerateDailySchedule_OversizedSessionExcluded(t *testing.T) {
	sched := New()
	sessions := []models.StudySession{
		plannedSession("huge", 600, models.DifficultyHard),
		plannedSession("fits", 60, models.DifficultyEasy),
	}

	schedule, err := sched.GenerateDailySchedule(sessions, packSubjects(), packPrefs(), packDate, nil)
	if err != nil {
		t.Fatalf("GenerateDailySchedule failed: %v", err)
	}

	for _, s := range schedule.Sessions {
		if s.Session.ID == "huge" {
			t.Error("Session larger than the daily budget should never be scheduled")
		}
	}
	if schedule.SessionCount != 1 {
		t.Errorf("Expected the fitting session to be scheduled, got %d sessions", schedule.SessionCount)
	}
}

func TestGenerateDailySchedule_DeterministicTieBreak(t *testing.T) {
	sched := New()
	// Identical sessions, so identical scores: order must fall back to ID.
	sessions := []models.StudySession{
		plannedSession("b", 30, models.DifficultyEasy),
		plannedSession("a", 30, models.DifficultyEasy),
	}

	schedule, err := sched.GenerateDailySchedule(sessions, packSubjects(), packPrefs(), packDate, nil)
	if err != nil {
		t.Fatalf("GenerateDailySchedule failed: %v", err)
	}

	if len(schedule.Sessions) != 2 {
		t.Fatalf("Expected 2 sessions, got %d", len(schedule.Sessions))
	}
	if schedule.Sessions[0].Session.ID != "a" || schedule.Sessions[1].Session.ID != "b" {
		t.Errorf("Expected tie broken by session ID (a before b), got %s, %s",
			schedule.Sessions[0].Session.ID, schedule.Sessions[1].Session.ID)
	}
}

func TestGenerateDailySchedule_StartTimeLadder(t *testing.T) {
	sched := New()
	prefs := packPrefs()
	prefs.DailyStudyGoalMin = 600

	var sessions []models.StudySession
	for _, id := range []string{"a", "b", "c", "d"} {
		sessions = append(sessions, plannedSession(id, 30, models.DifficultyEasy))
	}

	schedule, err := sched.GenerateDailySchedule(sessions, packSubjects(), prefs, packDate, nil)
	if err != nil {
		t.Fatalf("GenerateDailySchedule failed: %v", err)
	}
	if len(schedule.Sessions) != 4 {
		t.Fatalf("Expected 4 sessions, got %d", len(schedule.Sessions))
	}

	wantStarts := []string{"09:00", "14:00", "19:00", "10:30"} // slot 3 = 09:00 + 3*(25+5)min
	for i, want := range wantStarts {
		got := schedule.Sessions[i].StartAt.Format("15:04")
		if got != want {
			t.Errorf("Session %d start = %s, want %s", i, got, want)
		}
	}
	for _, s := range schedule.Sessions {
		if s.StartAt.Format("2006-01-02") != "2024-01-03" {
			t.Errorf("Start time not on the schedule date: %v", s.StartAt)
		}
	}
}

func TestGenerateWeeklySchedule_SkipsWeekends(t *testing.T) {
	sched := New()
	monday := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) // Monday
	sessions := []models.StudySession{plannedSession("a", 30, models.DifficultyEasy)}

	week, err := sched.GenerateWeeklySchedule(sessions, packSubjects(), packPrefs(), monday, nil)
	if err != nil {
		t.Fatalf("GenerateWeeklySchedule failed: %v", err)
	}

	if len(week) != 5 {
		t.Fatalf("Expected 5 study days with a 5-day cadence, got %d", len(week))
	}
	for _, day := range week {
		date, err := time.Parse("2006-01-02", day.Date)
		if err != nil {
			t.Fatalf("Invalid schedule date %q: %v", day.Date, err)
		}
		if date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
			t.Errorf("Weekend day %s should have been omitted", day.Date)
		}
	}
}

func TestGenerateWeeklySchedule_FullWeekCadence(t *testing.T) {
	sched := New()
	prefs := packPrefs()
	prefs.StudyDaysPerWeek = 7
	monday := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	week, err := sched.GenerateWeeklySchedule(nil, packSubjects(), prefs, monday, nil)
	if err != nil {
		t.Fatalf("GenerateWeeklySchedule failed: %v", err)
	}

	if len(week) != 7 {
		t.Errorf("Expected 7 days with a 7-day cadence, got %d", len(week))
	}
}
