package models

import "fmt"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority converts a string into a Priority, rejecting unknown values.
func ParsePriority(s string) (Priority, error) {
	switch Priority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(s), nil
	default:
		return "", fmt.Errorf("invalid priority %q (want low, medium, or high)", s)
	}
}

// Weight returns the scoring weight for a priority tier.
func (p Priority) Weight() (int, error) {
	switch p {
	case PriorityLow:
		return 1, nil
	case PriorityMedium:
		return 2, nil
	case PriorityHigh:
		return 3, nil
	default:
		return 0, fmt.Errorf("invalid priority %q", string(p))
	}
}

type Subject struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Color             string   `json:"color"` // hex color for rendering, e.g. "#3B82F6"
	Priority          Priority `json:"priority"`
	TotalStudyMinutes int      `json:"total_study_minutes"`
	SessionsCompleted int      `json:"sessions_completed"`
	CreatedAt         string   `json:"created_at"` // RFC3339 timestamp
	UpdatedAt         string   `json:"updated_at"` // RFC3339 timestamp
}

// Validate checks subject invariants. Invalid records are rejected at
// construction rather than allowed to score as zero.
func (s Subject) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("subject name is required")
	}
	if _, err := ParsePriority(string(s.Priority)); err != nil {
		return fmt.Errorf("subject %q: %w", s.Name, err)
	}
	return nil
}
