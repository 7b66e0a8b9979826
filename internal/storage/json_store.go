package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"

	"github.com/julianstephens/studyplan/internal/models"
)

// Store is the on-disk document for the JSON backend.
type Store struct {
	Version     string                          `json:"version"`
	Preferences models.SchedulingPreferences    `json:"preferences"`
	Subjects    map[string]models.Subject       `json:"subjects"`
	Sessions    map[string]models.StudySession  `json:"sessions"`
	Progress    map[string]models.ProgressEntry `json:"progress"`
}

type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{
		path: path,
	}
}

func (j *JSONStore) Init() error {
	dir := filepath.Dir(j.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(j.path); err == nil {
		return fmt.Errorf("storage already exists at %s", j.path)
	}

	j.store = &Store{
		Version:     "1.0",
		Preferences: models.DefaultPreferences(),
		Subjects:    make(map[string]models.Subject),
		Sessions:    make(map[string]models.StudySession),
		Progress:    make(map[string]models.ProgressEntry),
	}

	return j.save()
}

func (j *JSONStore) Load() error {
	data, err := os.ReadFile(j.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'studyplan init' first")
		}
		return fmt.Errorf("failed to read storage file: %w", err)
	}

	store := &Store{}
	if err := json.Unmarshal(data, store); err != nil {
		return fmt.Errorf("failed to parse storage file: %w", err)
	}

	if store.Subjects == nil {
		store.Subjects = make(map[string]models.Subject)
	}
	if store.Sessions == nil {
		store.Sessions = make(map[string]models.StudySession)
	}
	if store.Progress == nil {
		store.Progress = make(map[string]models.ProgressEntry)
	}

	j.store = store
	return nil
}

func (j *JSONStore) Close() error {
	return nil
}

func (j *JSONStore) GetConfigPath() string {
	return j.path
}

func (j *JSONStore) save() error {
	data, err := json.MarshalIndent(j.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal storage: %w", err)
	}

	if err := os.WriteFile(j.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage file: %w", err)
	}

	return nil
}

func (j *JSONStore) checkLoaded() error {
	if j.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	return nil
}

// Preferences

func (j *JSONStore) GetPreferences() (models.SchedulingPreferences, error) {
	if err := j.checkLoaded(); err != nil {
		return models.SchedulingPreferences{}, err
	}
	return j.store.Preferences, nil
}

func (j *JSONStore) SavePreferences(prefs models.SchedulingPreferences) error {
	if err := j.checkLoaded(); err != nil {
		return err
	}
	j.store.Preferences = prefs
	return j.save()
}

// Subjects

func (j *JSONStore) AddSubject(subject models.Subject) error {
	if err := j.checkLoaded(); err != nil {
		return err
	}
	j.store.Subjects[subject.ID] = subject
	return j.save()
}

func (j *JSONStore) GetSubject(id string) (models.Subject, error) {
	if err := j.checkLoaded(); err != nil {
		return models.Subject{}, err
	}
	subject, ok := j.store.Subjects[id]
	if !ok {
		return models.Subject{}, fmt.Errorf("subject not found: %s", id)
	}
	return subject, nil
}

func (j *JSONStore) GetAllSubjects() ([]models.Subject, error) {
	if err := j.checkLoaded(); err != nil {
		return nil, err
	}
	subjects := make([]models.Subject, 0, len(j.store.Subjects))
	for _, subject := range j.store.Subjects {
		subjects = append(subjects, subject)
	}
	sort.Slice(subjects, func(a, b int) bool {
		return subjects[a].Name < subjects[b].Name
	})
	return subjects, nil
}

func (j *JSONStore) UpdateSubject(subject models.Subject) error {
	return j.AddSubject(subject)
}

func (j *JSONStore) DeleteSubject(id string) error {
	if err := j.checkLoaded(); err != nil {
		return err
	}
	if _, ok := j.store.Subjects[id]; !ok {
		return fmt.Errorf("subject not found: %s", id)
	}
	delete(j.store.Subjects, id)
	// Deleting a subject cascades to its sessions.
	for sessionID, session := range j.store.Sessions {
		if session.SubjectID == id {
			delete(j.store.Sessions, sessionID)
		}
	}
	return j.save()
}

// Sessions

func (j *JSONStore) AddSession(session models.StudySession) error {
	if err := j.checkLoaded(); err != nil {
		return err
	}
	j.store.Sessions[session.ID] = session
	return j.save()
}

func (j *JSONStore) GetSession(id string) (models.StudySession, error) {
	if err := j.checkLoaded(); err != nil {
		return models.StudySession{}, err
	}
	session, ok := j.store.Sessions[id]
	if !ok {
		return models.StudySession{}, fmt.Errorf("session not found: %s", id)
	}
	return session, nil
}

func (j *JSONStore) GetAllSessions() ([]models.StudySession, error) {
	if err := j.checkLoaded(); err != nil {
		return nil, err
	}
	sessions := make([]models.StudySession, 0, len(j.store.Sessions))
	for _, session := range j.store.Sessions {
		sessions = append(sessions, session)
	}
	sort.Slice(sessions, func(a, b int) bool {
		if sessions[a].CreatedAt != sessions[b].CreatedAt {
			return sessions[a].CreatedAt < sessions[b].CreatedAt
		}
		return sessions[a].ID < sessions[b].ID
	})
	return sessions, nil
}

func (j *JSONStore) GetSessionsForSubject(subjectID string) ([]models.StudySession, error) {
	sessions, err := j.GetAllSessions()
	if err != nil {
		return nil, err
	}
	filtered := make([]models.StudySession, 0, len(sessions))
	for _, session := range sessions {
		if session.SubjectID == subjectID {
			filtered = append(filtered, session)
		}
	}
	return filtered, nil
}

func (j *JSONStore) UpdateSession(session models.StudySession) error {
	return j.AddSession(session)
}

func (j *JSONStore) DeleteSession(id string) error {
	if err := j.checkLoaded(); err != nil {
		return err
	}
	if _, ok := j.store.Sessions[id]; !ok {
		return fmt.Errorf("session not found: %s", id)
	}
	delete(j.store.Sessions, id)
	return j.save()
}

// Progress

func progressKey(subjectID, date string) string {
	return subjectID + "|" + date
}

func (j *JSONStore) RecordProgress(entry models.ProgressEntry) error {
	if err := j.checkLoaded(); err != nil {
		return err
	}

	key := progressKey(entry.SubjectID, entry.Date)
	existing, ok := j.store.Progress[key]
	if !ok {
		if entry.ID == "" {
			entry.ID = uuid.NewString()
		}
		j.store.Progress[key] = entry
		return j.save()
	}

	// Merge: minutes and counts accumulate, ratings overwrite when present.
	existing.StudyMinutes += entry.StudyMinutes
	existing.SessionsCompleted += entry.SessionsCompleted
	if entry.Effectiveness != nil {
		existing.Effectiveness = entry.Effectiveness
	}
	if entry.Mood != nil {
		existing.Mood = entry.Mood
	}
	if entry.Notes != "" {
		existing.Notes = entry.Notes
	}
	j.store.Progress[key] = existing
	return j.save()
}

func (j *JSONStore) GetProgressForSubject(subjectID string) ([]models.ProgressEntry, error) {
	entries, err := j.GetAllProgress()
	if err != nil {
		return nil, err
	}
	filtered := make([]models.ProgressEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.SubjectID == subjectID {
			filtered = append(filtered, entry)
		}
	}
	return filtered, nil
}

func (j *JSONStore) GetAllProgress() ([]models.ProgressEntry, error) {
	if err := j.checkLoaded(); err != nil {
		return nil, err
	}
	entries := make([]models.ProgressEntry, 0, len(j.store.Progress))
	for _, entry := range j.store.Progress {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(a, b int) bool {
		if entries[a].Date != entries[b].Date {
			return entries[a].Date < entries[b].Date
		}
		return entries[a].SubjectID < entries[b].SubjectID
	})
	return entries, nil
}
