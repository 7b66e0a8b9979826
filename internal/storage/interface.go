package storage

import "github.com/julianstephens/studyplan/internal/models"

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Preferences
	GetPreferences() (models.SchedulingPreferences, error)
	SavePreferences(models.SchedulingPreferences) error

	// Subjects
	AddSubject(models.Subject) error
	GetSubject(id string) (models.Subject, error)
	GetAllSubjects() ([]models.Subject, error)
	UpdateSubject(models.Subject) error
	// DeleteSubject removes a subject and cascades to its sessions.
	DeleteSubject(id string) error

	// Sessions
	AddSession(models.StudySession) error
	GetSession(id string) (models.StudySession, error)
	GetAllSessions() ([]models.StudySession, error)
	GetSessionsForSubject(subjectID string) ([]models.StudySession, error)
	UpdateSession(models.StudySession) error
	DeleteSession(id string) error

	// Progress history
	// RecordProgress merges the entry into the row for its (subject, day):
	// study minutes and completed counts accumulate, effectiveness and
	// mood overwrite when present.
	RecordProgress(models.ProgressEntry) error
	GetProgressForSubject(subjectID string) ([]models.ProgressEntry, error)
	GetAllProgress() ([]models.ProgressEntry, error)

	// Utils
	GetConfigPath() string
}
