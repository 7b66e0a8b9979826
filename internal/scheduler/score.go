package scheduler

import (
	"math"
	"time"

	"github.com/julianstephens/studyplan/internal/analytics"
	"github.com/julianstephens/studyplan/internal/models"
)

const (
	// recencyWindowDays is the trailing window used for the
	// burnout-avoidance term.
	recencyWindowDays = 3
	// recencyOverloadMin is the recent-minutes threshold above which a
	// subject is deprioritized.
	recencyOverloadMin = 180
)

// ScoreSession computes the priority score for one session at the given
// instant. The model is additive: subject priority, difficulty with a
// time-of-day bonus, deadline urgency, recent-load balancing, and
// session-type fit. The result is never negative and is fully determined
// by the arguments.
//
// A nil subject contributes zero base weight rather than failing, so a
// dangling subject reference degrades the score instead of aborting a
// whole packing run.
func (s *Scheduler) ScoreSession(session models.StudySession, subject *models.Subject, at time.Time, history []models.ProgressEntry) (float64, error) {
	score := 0.0

	if subject != nil {
		weight, err := subject.Priority.Weight()
		if err != nil {
			return 0, err
		}
		score += float64(weight) * 10
	}

	difficulty, err := session.Difficulty.Value()
	if err != nil {
		return 0, err
	}
	timeBonus := 1.0
	if IsOptimalTimeForDifficulty(at, session.Difficulty) {
		timeBonus = 1.5
	}
	score += float64(difficulty) * 5 * timeBonus

	if session.Deadline != nil {
		deadline, err := time.Parse(time.RFC3339, *session.Deadline)
		if err == nil {
			score += deadlineUrgency(deadline, at)
		}
	}

	if subject != nil {
		recent := analytics.RecentStudyTime(subject.ID, history, recencyWindowDays, at)
		if recent > recencyOverloadMin {
			score -= 10
		}
		if recent == 0 {
			score += 5
		}
	}

	if session.Type == models.SessionReview && IsGoodTimeForReview(at) {
		score += 5
	}
	if session.Type == models.SessionPractice && IsGoodTimeForPractice(at) {
		score += 5
	}

	return math.Max(0, score), nil
}

// deadlineUrgency returns the additive deadline term. Overdue deadlines
// fall into the most urgent bucket.
func deadlineUrgency(deadline, at time.Time) float64 {
	daysUntil := int(math.Ceil(deadline.Sub(at).Hours() / 24))
	switch {
	case daysUntil <= 1:
		return 20
	case daysUntil <= 3:
		return 15
	case daysUntil <= 7:
		return 10
	default:
		return 0
	}
}
