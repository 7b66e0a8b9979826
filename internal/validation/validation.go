package validation

import (
	"fmt"
	"time"

	"github.com/julianstephens/studyplan/internal/models"
	"github.com/julianstephens/studyplan/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictInvalidSession       ConflictType = "invalid_session"
	ConflictInvalidSubject       ConflictType = "invalid_subject"
	ConflictUnknownSubject       ConflictType = "unknown_subject"
	ConflictDuplicateSubjectName ConflictType = "duplicate_subject_name"
	ConflictInvalidPreferences   ConflictType = "invalid_preferences"
	ConflictPastDeadline         ConflictType = "past_deadline"
)

// Conflict represents a detected problem in subjects, sessions, or preferences
type Conflict struct {
	Type        ConflictType
	Description string
	Items       []string // Names of the records involved
	IDs         []string // IDs of the records involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

// Validator validates subjects, sessions, and preferences
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateSubjects checks subjects for malformed records and duplicate names.
func (v *Validator) ValidateSubjects(subjects []models.Subject) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	nameCount := make(map[string][]string)
	for _, subject := range subjects {
		if err := subject.Validate(); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidSubject,
				Description: err.Error(),
				Items:       []string{subject.Name},
				IDs:         []string{subject.ID},
			})
			continue
		}
		nameCount[subject.Name] = append(nameCount[subject.Name], subject.ID)
	}

	for name, ids := range nameCount {
		if len(ids) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateSubjectName,
				Description: fmt.Sprintf("Duplicate subject name: %q (IDs: %v)", name, ids),
				Items:       []string{name},
				IDs:         ids,
			})
		}
	}

	return result
}

// ValidateSessions checks sessions for malformed records, dangling subject
// references, and deadlines already in the past relative to now.
func (v *Validator) ValidateSessions(sessions []models.StudySession, subjects []models.Subject, now time.Time) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	subjectIDs := make(map[string]bool, len(subjects))
	for _, subject := range subjects {
		subjectIDs[subject.ID] = true
	}

	for _, session := range sessions {
		if err := session.Validate(); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidSession,
				Description: err.Error(),
				Items:       []string{session.Title},
				IDs:         []string{session.ID},
			})
			continue
		}

		if !subjectIDs[session.SubjectID] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictUnknownSubject,
				Description: fmt.Sprintf("Session %q references missing subject ID: %s", session.Title, session.SubjectID),
				Items:       []string{session.Title},
				IDs:         []string{session.ID},
			})
		}

		if session.Deadline != nil && session.Status == models.StatusPlanned {
			deadline, err := time.Parse(time.RFC3339, *session.Deadline)
			if err != nil {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictInvalidSession,
					Description: fmt.Sprintf("Session %q has invalid deadline: %s", session.Title, *session.Deadline),
					Items:       []string{session.Title},
					IDs:         []string{session.ID},
				})
			} else if deadline.Before(now) {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictPastDeadline,
					Description: fmt.Sprintf("Session %q has a deadline in the past (%s)", session.Title, deadline.Format("2006-01-02")),
					Items:       []string{session.Title},
					IDs:         []string{session.ID},
				})
			}
		}
	}

	return result
}

// ValidatePreferences checks scheduling preferences for invalid values.
func (v *Validator) ValidatePreferences(prefs models.SchedulingPreferences) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	if err := prefs.Validate(); err != nil {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictInvalidPreferences,
			Description: err.Error(),
		})
	}

	// A single session of default length must fit the daily budget, or no
	// schedule can ever be generated from defaults.
	if prefs.SessionLengthMin > prefs.DailyStudyGoalMin && prefs.DailyStudyGoalMin > 0 {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type: ConflictInvalidPreferences,
			Description: fmt.Sprintf("Default session length (%d min) exceeds the daily study goal (%d min)",
				prefs.SessionLengthMin, prefs.DailyStudyGoalMin),
		})
	}

	for _, slot := range prefs.PreferredStartTimes {
		if !utils.ValidateTimeFormat(slot) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidPreferences,
				Description: fmt.Sprintf("Invalid preferred start time: %s", slot),
			})
		}
	}

	return result
}
