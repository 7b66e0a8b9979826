package models

import "time"

// ScheduledSession is a planned session annotated with its computed
// priority score, resolved subject, and assigned start time. It exists
// only inside one schedule generation call.
type ScheduledSession struct {
	Session StudySession `json:"session"`
	Subject *Subject     `json:"subject,omitempty"` // nil when the subject lookup failed
	Score   float64      `json:"score"`
	StartAt time.Time    `json:"start_at"`
}

// DailySchedule is the output of one daily packing call.
type DailySchedule struct {
	Date         string             `json:"date"` // YYYY-MM-DD
	Sessions     []ScheduledSession `json:"sessions"`
	TotalMinutes int                `json:"total_minutes"`
	SessionCount int                `json:"session_count"`
	// Efficiency is TotalMinutes divided by the daily budget, 0 when
	// nothing was scheduled. Always within [0, 1].
	Efficiency float64 `json:"efficiency"`
}
