package models

import "fmt"

type SessionType string

const (
	SessionStudy    SessionType = "study"
	SessionReview   SessionType = "review"
	SessionPractice SessionType = "practice"
	SessionExam     SessionType = "exam"
)

// ParseSessionType converts a string into a SessionType, rejecting unknown values.
func ParseSessionType(s string) (SessionType, error) {
	switch SessionType(s) {
	case SessionStudy, SessionReview, SessionPractice, SessionExam:
		return SessionType(s), nil
	default:
		return "", fmt.Errorf("invalid session type %q (want study, review, practice, or exam)", s)
	}
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty converts a string into a Difficulty, rejecting unknown values.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(s) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return Difficulty(s), nil
	default:
		return "", fmt.Errorf("invalid difficulty %q (want easy, medium, or hard)", s)
	}
}

// Value returns the scoring value for a difficulty level.
func (d Difficulty) Value() (int, error) {
	switch d {
	case DifficultyEasy:
		return 1, nil
	case DifficultyMedium:
		return 2, nil
	case DifficultyHard:
		return 3, nil
	default:
		return 0, fmt.Errorf("invalid difficulty %q", string(d))
	}
}

type SessionStatus string

const (
	StatusPlanned    SessionStatus = "planned"
	StatusInProgress SessionStatus = "in-progress"
	StatusCompleted  SessionStatus = "completed"
	StatusSkipped    SessionStatus = "skipped"
)

// ParseSessionStatus converts a string into a SessionStatus, rejecting unknown values.
func ParseSessionStatus(s string) (SessionStatus, error) {
	switch SessionStatus(s) {
	case StatusPlanned, StatusInProgress, StatusCompleted, StatusSkipped:
		return SessionStatus(s), nil
	default:
		return "", fmt.Errorf("invalid session status %q", s)
	}
}

// Terminal reports whether the status is an end state. No transition leaves
// a terminal state without an external reset.
func (s SessionStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusSkipped
}

// CanTransitionTo reports whether the status transition is legal:
// planned → in-progress → {completed, skipped}.
func (s SessionStatus) CanTransitionTo(next SessionStatus) bool {
	switch s {
	case StatusPlanned:
		return next == StatusInProgress
	case StatusInProgress:
		return next == StatusCompleted || next == StatusSkipped
	default:
		return false
	}
}

type StudySession struct {
	ID            string        `json:"id"`
	SubjectID     string        `json:"subject_id"`
	Title         string        `json:"title"`
	Description   string        `json:"description,omitempty"`
	DurationMin   int           `json:"duration_min"`
	Type          SessionType   `json:"type"`
	Difficulty    Difficulty    `json:"difficulty"`
	Status        SessionStatus `json:"status"`
	Deadline      *string       `json:"deadline,omitempty"`     // RFC3339 timestamp
	ScheduledAt   *string       `json:"scheduled_at,omitempty"` // RFC3339 timestamp
	StartedAt     *string       `json:"started_at,omitempty"`   // RFC3339 timestamp
	CompletedAt   *string       `json:"completed_at,omitempty"` // RFC3339 timestamp
	ActualMin     *int          `json:"actual_min,omitempty"`
	Effectiveness *int          `json:"effectiveness,omitempty"` // 1-5 rating after completion
	Notes         string        `json:"notes,omitempty"`
	CreatedAt     string        `json:"created_at"` // RFC3339 timestamp
	UpdatedAt     string        `json:"updated_at"` // RFC3339 timestamp
}

// Validate checks session invariants: a session belongs to exactly one
// subject, duration is positive, and all enum fields are recognized.
func (s StudySession) Validate() error {
	if s.Title == "" {
		return fmt.Errorf("session title is required")
	}
	if s.SubjectID == "" {
		return fmt.Errorf("session %q: subject id is required", s.Title)
	}
	if s.DurationMin <= 0 {
		return fmt.Errorf("session %q: duration must be positive, got %d", s.Title, s.DurationMin)
	}
	if _, err := ParseSessionType(string(s.Type)); err != nil {
		return fmt.Errorf("session %q: %w", s.Title, err)
	}
	if _, err := ParseDifficulty(string(s.Difficulty)); err != nil {
		return fmt.Errorf("session %q: %w", s.Title, err)
	}
	if _, err := ParseSessionStatus(string(s.Status)); err != nil {
		return fmt.Errorf("session %q: %w", s.Title, err)
	}
	if s.Effectiveness != nil && (*s.Effectiveness < 1 || *s.Effectiveness > 5) {
		return fmt.Errorf("session %q: effectiveness must be 1-5, got %d", s.Title, *s.Effectiveness)
	}
	return nil
}
