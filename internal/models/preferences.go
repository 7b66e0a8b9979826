package models

import (
	"fmt"
	"time"

	"github.com/julianstephens/studyplan/internal/constants"
)

// SchedulingPreferences are read-only inputs to the scheduling engine.
type SchedulingPreferences struct {
	DailyStudyGoalMin   int      `json:"daily_study_goal_min"`  // daily time budget in minutes
	SessionLengthMin    int      `json:"session_length_min"`    // default session length
	BreakLengthMin      int      `json:"break_length_min"`      // break between sessions
	LongBreakLengthMin  int      `json:"long_break_length_min"` // long break after 4 sessions
	StudyDaysPerWeek    int      `json:"study_days_per_week"`
	PreferredStartTimes []string `json:"preferred_start_times"` // ordered HH:MM start slots
	MaxSessionsPerDay   int      `json:"max_sessions_per_day"`
	Timezone            string   `json:"timezone"` // IANA timezone name, or "Local"
}

// DefaultPreferences returns the stock preference values.
func DefaultPreferences() SchedulingPreferences {
	return SchedulingPreferences{
		DailyStudyGoalMin:   constants.DefaultDailyStudyGoalMin,
		SessionLengthMin:    constants.DefaultSessionLengthMin,
		BreakLengthMin:      constants.DefaultBreakLengthMin,
		LongBreakLengthMin:  constants.DefaultLongBreakMin,
		StudyDaysPerWeek:    constants.DefaultStudyDaysPerWeek,
		PreferredStartTimes: constants.DefaultPreferredStartTimes(),
		MaxSessionsPerDay:   constants.DefaultMaxSessionsPerDay,
		Timezone:            constants.DefaultTimezone,
	}
}

// Validate rejects malformed preferences before they reach the engine.
func (p SchedulingPreferences) Validate() error {
	if p.DailyStudyGoalMin <= 0 {
		return fmt.Errorf("daily study goal must be positive, got %d", p.DailyStudyGoalMin)
	}
	if p.SessionLengthMin <= 0 {
		return fmt.Errorf("session length must be positive, got %d", p.SessionLengthMin)
	}
	if p.BreakLengthMin < 0 {
		return fmt.Errorf("break length must not be negative, got %d", p.BreakLengthMin)
	}
	if p.StudyDaysPerWeek < 1 || p.StudyDaysPerWeek > 7 {
		return fmt.Errorf("study days per week must be 1-7, got %d", p.StudyDaysPerWeek)
	}
	if p.MaxSessionsPerDay <= 0 {
		return fmt.Errorf("max sessions per day must be positive, got %d", p.MaxSessionsPerDay)
	}
	if len(p.PreferredStartTimes) == 0 {
		return fmt.Errorf("at least one preferred start time is required")
	}
	for _, slot := range p.PreferredStartTimes {
		if _, err := time.Parse(constants.TimeFormat, slot); err != nil {
			return fmt.Errorf("invalid preferred start time %q: %w", slot, err)
		}
	}
	if p.Timezone != "" && p.Timezone != "Local" {
		if _, err := time.LoadLocation(p.Timezone); err != nil {
			return fmt.Errorf("invalid timezone %q: %w", p.Timezone, err)
		}
	}
	return nil
}
