package models

import (
	"fmt"
	"time"

	"github.com/julianstephens/studyplan/internal/constants"
)

// ProgressEntry is one row per (subject, calendar day) of recorded study
// history. The scheduling engine only reads these; merging new activity
// into history is the storage layer's job.
type ProgressEntry struct {
	ID                string   `json:"id"`
	SubjectID         string   `json:"subject_id"`
	Date              string   `json:"date"` // YYYY-MM-DD
	StudyMinutes      int      `json:"study_minutes"`
	SessionsCompleted int      `json:"sessions_completed"`
	Effectiveness     *float64 `json:"effectiveness,omitempty"` // average 1-5 rating
	Mood              *int     `json:"mood,omitempty"`          // 1-5 rating
	Notes             string   `json:"notes,omitempty"`
	CreatedAt         string   `json:"created_at"` // RFC3339 timestamp
}

// Day parses the entry's calendar date in the given location.
func (e ProgressEntry) Day(loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, e.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid progress date %q: %w", e.Date, err)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// Validate checks progress entry invariants.
func (e ProgressEntry) Validate() error {
	if e.SubjectID == "" {
		return fmt.Errorf("progress entry: subject id is required")
	}
	if _, err := time.Parse(constants.DateFormat, e.Date); err != nil {
		return fmt.Errorf("progress entry: invalid date %q: %w", e.Date, err)
	}
	if e.StudyMinutes < 0 {
		return fmt.Errorf("progress entry: study minutes must not be negative, got %d", e.StudyMinutes)
	}
	return nil
}
