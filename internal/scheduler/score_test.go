package scheduler

import (
	"testing"
	"time"

	"github.com/julianstephens/studyplan/internal/models"
)

// 13:00 keeps the type-fit windows closed and the medium-difficulty window
// open, so individual terms are easy to isolate.
var scoreInstant = time.Date(2024, 3, 15, 13, 0, 0, 0, time.UTC)

func testSubject(priority models.Priority) *models.Subject {
	return &models.Subject{
		ID:       "subj-1",
		Name:     "Mathematics",
		Priority: priority,
	}
}

func testSession(difficulty models.Difficulty) models.StudySession {
	return models.StudySession{
		ID:          "sess-1",
		SubjectID:   "subj-1",
		Title:       "Linear algebra",
		DurationMin: 45,
		Type:        models.SessionStudy,
		Difficulty:  difficulty,
		Status:      models.StatusPlanned,
	}
}

func TestScoreSession_PriorityMonotonicity(t *testing.T) {
	sched := New()
	session := testSession(models.DifficultyMedium)

	var scores []float64
	for _, p := range []models.Priority{models.PriorityLow, models.PriorityMedium, models.PriorityHigh} {
		score, err := sched.ScoreSession(session, testSubject(p), scoreInstant, nil)
		if err != nil {
			t.Fatalf("ScoreSession failed for priority %s: %v", p, err)
		}
		scores = append(scores, score)
	}

	if scores[0] >= scores[1] || scores[1] >= scores[2] {
		t.Errorf("Expected strictly increasing scores across priority tiers, got %v", scores)
	}
}

func TestScoreSession_DeadlineUrgency(t *testing.T) {
	sched := New()
	subject := testSubject(models.PriorityMedium)

	baseline, err := sched.ScoreSession(testSession(models.DifficultyMedium), subject, scoreInstant, nil)
	if err != nil {
		t.Fatalf("ScoreSession failed: %v", err)
	}

	tests := []struct {
		name      string
		deadline  time.Time
		wantBonus float64
	}{
		{"12 hours away", scoreInstant.Add(12 * time.Hour), 20},
		{"overdue", scoreInstant.Add(-24 * time.Hour), 20},
		{"2 days away", scoreInstant.Add(48 * time.Hour), 15},
		{"5 days away", scoreInstant.AddDate(0, 0, 5), 10},
		{"10 days away", scoreInstant.AddDate(0, 0, 10), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := testSession(models.DifficultyMedium)
			deadline := tt.deadline.Format(time.RFC3339)
			session.Deadline = &deadline

			score, err := sched.ScoreSession(session, subject, scoreInstant, nil)
			if err != nil {
				t.Fatalf("ScoreSession failed: %v", err)
			}
			if got := score - baseline; got != tt.wantBonus {
				t.Errorf("deadline bonus = %v, want %v", got, tt.wantBonus)
			}
		})
	}
}

func TestScoreSession_RecencyBalancing(t *testing.T) {
	sched := New()
	subject := testSubject(models.PriorityMedium)
	session := testSession(models.DifficultyMedium)
	today := scoreInstant.Format("2006-01-02")

	// No history at all: the not-studied-recently boost applies.
	fresh, err := sched.ScoreSession(session, subject, scoreInstant, nil)
	if err != nil {
		t.Fatalf("ScoreSession failed: %v", err)
	}

	// Moderate recent load: neither boost nor penalty.
	moderate, err := sched.ScoreSession(session, subject, scoreInstant, []models.ProgressEntry{
		{SubjectID: "subj-1", Date: today, StudyMinutes: 90},
	})
	if err != nil {
		t.Fatalf("ScoreSession failed: %v", err)
	}

	// Heavy recent load: burnout penalty.
	heavy, err := sched.ScoreSession(session, subject, scoreInstant, []models.ProgressEntry{
		{SubjectID: "subj-1", Date: today, StudyMinutes: 200},
	})
	if err != nil {
		t.Fatalf("ScoreSession failed: %v", err)
	}

	if fresh-moderate != 5 {
		t.Errorf("Expected +5 boost for unstudied subject, got %v", fresh-moderate)
	}
	if moderate-heavy != 10 {
		t.Errorf("Expected -10 penalty for heavy recent load, got %v", moderate-heavy)
	}
}

func TestScoreSession_TypeFit(t *testing.T) {
	sched := New()
	subject := testSubject(models.PriorityMedium)
	reviewTime := time.Date(2024, 3, 15, 15, 0, 0, 0, time.UTC) // in review window, not practice

	study := testSession(models.DifficultyMedium)
	review := testSession(models.DifficultyMedium)
	review.Type = models.SessionReview

	studyScore, err := sched.ScoreSession(study, subject, reviewTime, nil)
	if err != nil {
		t.Fatalf("ScoreSession failed: %v", err)
	}
	reviewScore, err := sched.ScoreSession(review, subject, reviewTime, nil)
	if err != nil {
		t.Fatalf("ScoreSession failed: %v", err)
	}

	if reviewScore-studyScore != 5 {
		t.Errorf("Expected +5 type-fit bonus for review in window, got %v", reviewScore-studyScore)
	}
}

func TestScoreSession_Idempotent(t *testing.T) {
	sched := New()
	subject := testSubject(models.PriorityHigh)
	session := testSession(models.DifficultyHard)
	history := []models.ProgressEntry{
		{SubjectID: "subj-1", Date: "2024-03-14", StudyMinutes: 60},
	}

	first, err := sched.ScoreSession(session, subject, scoreInstant, history)
	if err != nil {
		t.Fatalf("ScoreSession failed: %v", err)
	}
	second, err := sched.ScoreSession(session, subject, scoreInstant, history)
	if err != nil {
		t.Fatalf("ScoreSession failed: %v", err)
	}

	if first != second {
		t.Errorf("Expected identical scores for identical inputs, got %v then %v", first, second)
	}
}

func TestScoreSession_MissingSubject(t *testing.T) {
	sched := New()
	session := testSession(models.DifficultyMedium)

	score, err := sched.ScoreSession(session, nil, scoreInstant, nil)
	if err != nil {
		t.Fatalf("ScoreSession failed: %v", err)
	}

	// No base weight, no recency terms: only the difficulty term remains.
	if score != 15 {
		t.Errorf("Expected difficulty-only score 15 for missing subject, got %v", score)
	}
}

func TestScoreSession_InvalidDifficulty(t *testing.T) {
	sched := New()
	session := testSession("impossible")

	if _, err := sched.ScoreSession(session, testSubject(models.PriorityLow), scoreInstant, nil); err == nil {
		t.Error("Expected error for unrecognized difficulty, got nil")
	}
}
