package storage

import (
	"path/filepath"
	"testing"

	"github.com/julianstephens/studyplan/internal/models"
)

func providers(t *testing.T) map[string]Provider {
	t.Helper()
	dir := t.TempDir()
	return map[string]Provider{
		"sqlite": NewSQLiteStore(filepath.Join(dir, "studyplan.db")),
		"json":   NewJSONStore(filepath.Join(dir, "studyplan.json")),
	}
}

func initProvider(t *testing.T, p Provider) {
	t.Helper()
	if err := p.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := p.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	t.Cleanup(func() { p.Close() })
}

func testSubject(id, name string) models.Subject {
	return models.Subject{
		ID:        id,
		Name:      name,
		Color:     "#3B82F6",
		Priority:  models.PriorityHigh,
		CreatedAt: "2024-01-01T08:00:00Z",
		UpdatedAt: "2024-01-01T08:00:00Z",
	}
}

func testSession(id, subjectID string) models.StudySession {
	return models.StudySession{
		ID:          id,
		SubjectID:   subjectID,
		Title:       "Session " + id,
		DurationMin: 45,
		Type:        models.SessionStudy,
		Difficulty:  models.DifficultyMedium,
		Status:      models.StatusPlanned,
		CreatedAt:   "2024-01-01T08:00:00Z",
		UpdatedAt:   "2024-01-01T08:00:00Z",
	}
}

func TestInitSeedsDefaultPreferences(t *testing.T) {
	for name, p := range providers(t) {
		t.Run(name, func(t *testing.T) {
			initProvider(t, p)

			prefs, err := p.GetPreferences()
			if err != nil {
				t.Fatalf("GetPreferences failed: %v", err)
			}

			defaults := models.DefaultPreferences()
			if prefs.DailyStudyGoalMin != defaults.DailyStudyGoalMin {
				t.Errorf("DailyStudyGoalMin = %d, want %d", prefs.DailyStudyGoalMin, defaults.DailyStudyGoalMin)
			}
			if len(prefs.PreferredStartTimes) != len(defaults.PreferredStartTimes) {
				t.Errorf("PreferredStartTimes = %v, want %v", prefs.PreferredStartTimes, defaults.PreferredStartTimes)
			}
		})
	}
}

func TestLoadWithoutInit(t *testing.T) {
	for name, p := range providers(t) {
		t.Run(name, func(t *testing.T) {
			if err := p.Load(); err == nil {
				t.Error("Expected error loading uninitialized storage")
			}
		})
	}
}

func TestSubjectCRUD(t *testing.T) {
	for name, p := range providers(t) {
		t.Run(name, func(t *testing.T) {
			initProvider(t, p)

			subject := testSubject("s1", "Math")
			if err := p.AddSubject(subject); err != nil {
				t.Fatalf("AddSubject failed: %v", err)
			}

			got, err := p.GetSubject("s1")
			if err != nil {
				t.Fatalf("GetSubject failed: %v", err)
			}
			if got.Name != "Math" || got.Priority != models.PriorityHigh {
				t.Errorf("GetSubject = %+v", got)
			}

			got.TotalStudyMinutes = 90
			got.SessionsCompleted = 2
			if err := p.UpdateSubject(got); err != nil {
				t.Fatalf("UpdateSubject failed: %v", err)
			}
			updated, err := p.GetSubject("s1")
			if err != nil {
				t.Fatalf("GetSubject after update failed: %v", err)
			}
			if updated.TotalStudyMinutes != 90 || updated.SessionsCompleted != 2 {
				t.Errorf("Update did not persist: %+v", updated)
			}

			if err := p.AddSubject(testSubject("s2", "Physics")); err != nil {
				t.Fatalf("AddSubject failed: %v", err)
			}
			all, err := p.GetAllSubjects()
			if err != nil {
				t.Fatalf("GetAllSubjects failed: %v", err)
			}
			if len(all) != 2 {
				t.Fatalf("GetAllSubjects returned %d subjects, want 2", len(all))
			}
			if all[0].Name != "Math" || all[1].Name != "Physics" {
				t.Errorf("Subjects not ordered by name: %s, %s", all[0].Name, all[1].Name)
			}

			if _, err := p.GetSubject("missing"); err == nil {
				t.Error("Expected error for missing subject")
			}
		})
	}
}

func TestDeleteSubjectCascadesToSessions(t *testing.T) {
	for name, p := range providers(t) {
		t.Run(name, func(t *testing.T) {
			initProvider(t, p)

			if err := p.AddSubject(testSubject("s1", "Math")); err != nil {
				t.Fatal(err)
			}
			if err := p.AddSubject(testSubject("s2", "Physics")); err != nil {
				t.Fatal(err)
			}
			if err := p.AddSession(testSession("a", "s1")); err != nil {
				t.Fatal(err)
			}
			if err := p.AddSession(testSession("b", "s1")); err != nil {
				t.Fatal(err)
			}
			if err := p.AddSession(testSession("c", "s2")); err != nil {
				t.Fatal(err)
			}

			if err := p.DeleteSubject("s1"); err != nil {
				t.Fatalf("DeleteSubject failed: %v", err)
			}

			sessions, err := p.GetAllSessions()
			if err != nil {
				t.Fatalf("GetAllSessions failed: %v", err)
			}
			if len(sessions) != 1 || sessions[0].ID != "c" {
				t.Errorf("Cascade delete left %d sessions: %+v", len(sessions), sessions)
			}

			if err := p.DeleteSubject("s1"); err == nil {
				t.Error("Expected error deleting missing subject")
			}
		})
	}
}

func TestSessionCRUD(t *testing.T) {
	for name, p := range providers(t) {
		t.Run(name, func(t *testing.T) {
			initProvider(t, p)

			if err := p.AddSubject(testSubject("s1", "Math")); err != nil {
				t.Fatal(err)
			}

			session := testSession("a", "s1")
			deadline := "2024-06-01T00:00:00Z"
			session.Deadline = &deadline
			if err := p.AddSession(session); err != nil {
				t.Fatalf("AddSession failed: %v", err)
			}

			got, err := p.GetSession("a")
			if err != nil {
				t.Fatalf("GetSession failed: %v", err)
			}
			if got.Deadline == nil || *got.Deadline != deadline {
				t.Errorf("Deadline not round-tripped: %v", got.Deadline)
			}
			if got.StartedAt != nil {
				t.Errorf("StartedAt should be nil, got %v", *got.StartedAt)
			}

			got.Status = models.StatusInProgress
			started := "2024-01-02T09:00:00Z"
			got.StartedAt = &started
			if err := p.UpdateSession(got); err != nil {
				t.Fatalf("UpdateSession failed: %v", err)
			}
			updated, err := p.GetSession("a")
			if err != nil {
				t.Fatal(err)
			}
			if updated.Status != models.StatusInProgress || updated.StartedAt == nil {
				t.Errorf("Update did not persist: %+v", updated)
			}

			if err := p.AddSession(testSession("b", "s1")); err != nil {
				t.Fatal(err)
			}
			forSubject, err := p.GetSessionsForSubject("s1")
			if err != nil {
				t.Fatal(err)
			}
			if len(forSubject) != 2 {
				t.Errorf("GetSessionsForSubject returned %d, want 2", len(forSubject))
			}

			if err := p.DeleteSession("b"); err != nil {
				t.Fatalf("DeleteSession failed: %v", err)
			}
			if _, err := p.GetSession("b"); err == nil {
				t.Error("Expected error for deleted session")
			}
			if err := p.DeleteSession("b"); err == nil {
				t.Error("Expected error deleting missing session")
			}
		})
	}
}

func TestRecordProgressMergesPerDay(t *testing.T) {
	for name, p := range providers(t) {
		t.Run(name, func(t *testing.T) {
			initProvider(t, p)

			first := models.ProgressEntry{
				SubjectID:         "s1",
				Date:              "2024-01-02",
				StudyMinutes:      30,
				SessionsCompleted: 1,
				CreatedAt:         "2024-01-02T10:00:00Z",
			}
			if err := p.RecordProgress(first); err != nil {
				t.Fatalf("RecordProgress failed: %v", err)
			}

			eff := 4.0
			mood := 5
			second := models.ProgressEntry{
				SubjectID:         "s1",
				Date:              "2024-01-02",
				StudyMinutes:      45,
				SessionsCompleted: 1,
				Effectiveness:     &eff,
				Mood:              &mood,
			}
			if err := p.RecordProgress(second); err != nil {
				t.Fatalf("RecordProgress merge failed: %v", err)
			}

			entries, err := p.GetProgressForSubject("s1")
			if err != nil {
				t.Fatalf("GetProgressForSubject failed: %v", err)
			}
			if len(entries) != 1 {
				t.Fatalf("Expected one merged entry, got %d", len(entries))
			}
			merged := entries[0]
			if merged.StudyMinutes != 75 {
				t.Errorf("StudyMinutes = %d, want 75", merged.StudyMinutes)
			}
			if merged.SessionsCompleted != 2 {
				t.Errorf("SessionsCompleted = %d, want 2", merged.SessionsCompleted)
			}
			if merged.Effectiveness == nil || *merged.Effectiveness != 4.0 {
				t.Errorf("Effectiveness = %v, want 4.0", merged.Effectiveness)
			}
			if merged.Mood == nil || *merged.Mood != 5 {
				t.Errorf("Mood = %v, want 5", merged.Mood)
			}
		})
	}
}

func TestProgressSeparateDaysAndSubjects(t *testing.T) {
	for name, p := range providers(t) {
		t.Run(name, func(t *testing.T) {
			initProvider(t, p)

			days := []models.ProgressEntry{
				{SubjectID: "s1", Date: "2024-01-01", StudyMinutes: 30},
				{SubjectID: "s1", Date: "2024-01-02", StudyMinutes: 40},
				{SubjectID: "s2", Date: "2024-01-02", StudyMinutes: 20},
			}
			for _, d := range days {
				if err := p.RecordProgress(d); err != nil {
					t.Fatalf("RecordProgress failed: %v", err)
				}
			}

			all, err := p.GetAllProgress()
			if err != nil {
				t.Fatalf("GetAllProgress failed: %v", err)
			}
			if len(all) != 3 {
				t.Fatalf("GetAllProgress returned %d entries, want 3", len(all))
			}

			s1, err := p.GetProgressForSubject("s1")
			if err != nil {
				t.Fatal(err)
			}
			if len(s1) != 2 {
				t.Errorf("GetProgressForSubject(s1) returned %d, want 2", len(s1))
			}
		})
	}
}

func TestSavePreferencesRoundTrip(t *testing.T) {
	for name, p := range providers(t) {
		t.Run(name, func(t *testing.T) {
			initProvider(t, p)

			prefs := models.DefaultPreferences()
			prefs.DailyStudyGoalMin = 180
			prefs.PreferredStartTimes = []string{"07:30", "12:15"}
			prefs.Timezone = "America/New_York"

			if err := p.SavePreferences(prefs); err != nil {
				t.Fatalf("SavePreferences failed: %v", err)
			}

			got, err := p.GetPreferences()
			if err != nil {
				t.Fatalf("GetPreferences failed: %v", err)
			}
			if got.DailyStudyGoalMin != 180 {
				t.Errorf("DailyStudyGoalMin = %d, want 180", got.DailyStudyGoalMin)
			}
			if len(got.PreferredStartTimes) != 2 || got.PreferredStartTimes[0] != "07:30" {
				t.Errorf("PreferredStartTimes = %v", got.PreferredStartTimes)
			}
			if got.Timezone != "America/New_York" {
				t.Errorf("Timezone = %s", got.Timezone)
			}
		})
	}
}
