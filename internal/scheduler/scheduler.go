package scheduler

import (
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/studyplan/internal/constants"
	"github.com/julianstephens/studyplan/internal/models"
	"github.com/julianstephens/studyplan/internal/utils"
)

type Scheduler struct{}

func New() *Scheduler {
	return &Scheduler{}
}

// GenerateDailySchedule packs planned sessions into one day. Eligible
// sessions (status planned) are scored at the given instant, sorted by
// score descending (ties broken by session ID), then accepted greedily
// while they fit the daily time budget and the per-day session cap. Each
// accepted session gets a start time from the preferred-slot ladder.
//
// The caller supplies the progress history used for the recency term; a
// nil history disables recency-based deprioritization.
func (s *Scheduler) GenerateDailySchedule(sessions []models.StudySession, subjects []models.Subject, prefs models.SchedulingPreferences, date time.Time, history []models.ProgressEntry) (models.DailySchedule, error) {
	schedule := models.DailySchedule{
		Date:     date.Format(constants.DateFormat),
		Sessions: []models.ScheduledSession{},
	}

	subjectByID := make(map[string]*models.Subject, len(subjects))
	for i := range subjects {
		subjectByID[subjects[i].ID] = &subjects[i]
	}

	var scored []models.ScheduledSession
	for _, session := range sessions {
		if session.Status != models.StatusPlanned {
			continue
		}
		subject := subjectByID[session.SubjectID]
		score, err := s.ScoreSession(session, subject, date, history)
		if err != nil {
			return schedule, fmt.Errorf("scoring session %q: %w", session.Title, err)
		}
		scored = append(scored, models.ScheduledSession{
			Session: session,
			Subject: subject,
			Score:   score,
		})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Session.ID < scored[j].Session.ID
	})

	totalTime := 0
	for _, candidate := range scored {
		if totalTime+candidate.Session.DurationMin > prefs.DailyStudyGoalMin {
			continue
		}
		if len(schedule.Sessions) >= prefs.MaxSessionsPerDay {
			break
		}

		startAt, err := startTimeFor(date, len(schedule.Sessions), prefs)
		if err != nil {
			return schedule, err
		}
		candidate.StartAt = startAt
		schedule.Sessions = append(schedule.Sessions, candidate)
		totalTime += candidate.Session.DurationMin
	}

	schedule.TotalMinutes = totalTime
	schedule.SessionCount = len(schedule.Sessions)
	if schedule.SessionCount > 0 && prefs.DailyStudyGoalMin > 0 {
		schedule.Efficiency = float64(totalTime) / float64(prefs.DailyStudyGoalMin)
	}

	return schedule, nil
}

// GenerateWeeklySchedule runs the daily packer over 7 consecutive days
// starting at the given day. Saturdays and Sundays are omitted entirely
// when the weekly cadence is five study days or fewer.
//
// Each day independently considers every planned session, so a session can
// appear on multiple days until the caller persists a status or
// scheduled-at update between generations.
func (s *Scheduler) GenerateWeeklySchedule(sessions []models.StudySession, subjects []models.Subject, prefs models.SchedulingPreferences, start time.Time, history []models.ProgressEntry) ([]models.DailySchedule, error) {
	var week []models.DailySchedule

	for i := 0; i < 7; i++ {
		date := start.AddDate(0, 0, i)
		weekday := date.Weekday()
		if (weekday == time.Saturday || weekday == time.Sunday) && prefs.StudyDaysPerWeek <= 5 {
			continue
		}

		daily, err := s.GenerateDailySchedule(sessions, subjects, prefs, date, history)
		if err != nil {
			return nil, fmt.Errorf("planning %s: %w", date.Format(constants.DateFormat), err)
		}
		week = append(week, daily)
	}

	return week, nil
}

// startTimeFor assigns a start time for the session at the given position
// among the day's accepted sessions. Positions within the preferred-slot
// list use those slots directly; later positions step forward from the
// first slot by position * (session length + break length) minutes. The
// ladder assumes default-length sessions, not the actual durations of the
// sessions packed before it.
func startTimeFor(date time.Time, position int, prefs models.SchedulingPreferences) (time.Time, error) {
	if len(prefs.PreferredStartTimes) == 0 {
		return time.Time{}, fmt.Errorf("no preferred start times configured")
	}

	if position < len(prefs.PreferredStartTimes) {
		return utils.CombineDateAndTime(date, prefs.PreferredStartTimes[position])
	}

	base, err := utils.CombineDateAndTime(date, prefs.PreferredStartTimes[0])
	if err != nil {
		return time.Time{}, err
	}
	step := prefs.SessionLengthMin + prefs.BreakLengthMin
	return base.Add(time.Duration(position*step) * time.Minute), nil
}
