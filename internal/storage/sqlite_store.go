package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/julianstephens/studyplan/internal/constants"
	"github.com/julianstephens/studyplan/internal/models"
)

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

const schema = `
CREATE TABLE IF NOT EXISTS subjects (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	color TEXT NOT NULL DEFAULT '',
	priority TEXT NOT NULL,
	total_study_minutes INTEGER NOT NULL DEFAULT 0,
	sessions_completed INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL DEFAULT '',
	updated_at TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS sessions (
	id TEXT PRIMARY KEY,
	subject_id TEXT NOT NULL REFERENCES subjects(id),
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	duration_min INTEGER NOT NULL,
	type TEXT NOT NULL,
	difficulty TEXT NOT NULL,
	status TEXT NOT NULL,
	deadline TEXT,
	scheduled_at TEXT,
	started_at TEXT,
	completed_at TEXT,
	actual_min INTEGER,
	effectiveness INTEGER,
	notes TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL DEFAULT '',
	updated_at TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS progress (
	id TEXT PRIMARY KEY,
	subject_id TEXT NOT NULL,
	date TEXT NOT NULL,
	study_minutes INTEGER NOT NULL DEFAULT 0,
	sessions_completed INTEGER NOT NULL DEFAULT 0,
	effectiveness REAL,
	mood INTEGER,
	notes TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL DEFAULT '',
	UNIQUE(subject_id, date)
);

CREATE TABLE IF NOT EXISTS preferences (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	// Seed default preferences if not present
	if _, err := s.GetPreferences(); err != nil {
		if err := s.SavePreferences(models.DefaultPreferences()); err != nil {
			return fmt.Errorf("failed to save default preferences: %w", err)
		}
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'studyplan init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

// Preferences

func (s *SQLiteStore) GetPreferences() (models.SchedulingPreferences, error) {
	rows, err := s.db.Query("SELECT key, value FROM preferences")
	if err != nil {
		return models.SchedulingPreferences{}, err
	}
	defer rows.Close()

	prefs := models.SchedulingPreferences{}
	count := 0
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.SchedulingPreferences{}, err
		}
		switch key {
		case constants.PrefDailyStudyGoal:
			prefs.DailyStudyGoalMin, err = strconv.Atoi(value)
		case constants.PrefSessionLength:
			prefs.SessionLengthMin, err = strconv.Atoi(value)
		case constants.PrefBreakLength:
			prefs.BreakLengthMin, err = strconv.Atoi(value)
		case constants.PrefLongBreakLength:
			prefs.LongBreakLengthMin, err = strconv.Atoi(value)
		case constants.PrefStudyDaysPerWeek:
			prefs.StudyDaysPerWeek, err = strconv.Atoi(value)
		case constants.PrefMaxSessionsPerDay:
			prefs.MaxSessionsPerDay, err = strconv.Atoi(value)
		case constants.PrefPreferredStartTimes:
			err = json.Unmarshal([]byte(value), &prefs.PreferredStartTimes)
		case constants.PrefTimezone:
			prefs.Timezone = value
		}
		if err != nil {
			return models.SchedulingPreferences{}, fmt.Errorf("parsing preference %s: %w", key, err)
		}
		count++
	}

	if count == 0 {
		return models.SchedulingPreferences{}, fmt.Errorf("preferences not found")
	}

	return prefs, nil
}

func (s *SQLiteStore) SavePreferences(prefs models.SchedulingPreferences) error {
	slots, err := json.Marshal(prefs.PreferredStartTimes)
	if err != nil {
		return fmt.Errorf("failed to marshal preferred start times: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO preferences (key, value) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	pairs := []struct {
		key   string
		value string
	}{
		{constants.PrefDailyStudyGoal, strconv.Itoa(prefs.DailyStudyGoalMin)},
		{constants.PrefSessionLength, strconv.Itoa(prefs.SessionLengthMin)},
		{constants.PrefBreakLength, strconv.Itoa(prefs.BreakLengthMin)},
		{constants.PrefLongBreakLength, strconv.Itoa(prefs.LongBreakLengthMin)},
		{constants.PrefStudyDaysPerWeek, strconv.Itoa(prefs.StudyDaysPerWeek)},
		{constants.PrefMaxSessionsPerDay, strconv.Itoa(prefs.MaxSessionsPerDay)},
		{constants.PrefPreferredStartTimes, string(slots)},
		{constants.PrefTimezone, prefs.Timezone},
	}
	for _, p := range pairs {
		if _, err := stmt.Exec(p.key, p.value); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Subjects

func (s *SQLiteStore) AddSubject(subject models.Subject) error {
	return s.UpdateSubject(subject)
}

func (s *SQLiteStore) GetSubject(id string) (models.Subject, error) {
	row := s.db.QueryRow(`
		SELECT id, name, color, priority, total_study_minutes, sessions_completed, created_at, updated_at
		FROM subjects WHERE id = ?`, id)

	subject, err := scanSubject(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Subject{}, fmt.Errorf("subject not found: %s", id)
		}
		return models.Subject{}, err
	}
	return subject, nil
}

func (s *SQLiteStore) GetAllSubjects() ([]models.Subject, error) {
	rows, err := s.db.Query(`
		SELECT id, name, color, priority, total_study_minutes, sessions_completed, created_at, updated_at
		FROM subjects ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subjects []models.Subject
	for rows.Next() {
		subject, err := scanSubject(rows)
		if err != nil {
			return nil, err
		}
		subjects = append(subjects, subject)
	}
	return subjects, rows.Err()
}

func (s *SQLiteStore) UpdateSubject(subject models.Subject) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO subjects (
			id, name, color, priority, total_study_minutes, sessions_completed, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		subject.ID, subject.Name, subject.Color, subject.Priority,
		subject.TotalStudyMinutes, subject.SessionsCompleted, subject.CreatedAt, subject.UpdatedAt,
	)
	return err
}

func (s *SQLiteStore) DeleteSubject(id string) error {
	var exists int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM subjects WHERE id = ?", id).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check subject existence: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("subject not found: %s", id)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Deleting a subject cascades to its sessions.
	if _, err := tx.Exec("DELETE FROM sessions WHERE subject_id = ?", id); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM subjects WHERE id = ?", id); err != nil {
		return err
	}

	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubject(row rowScanner) (models.Subject, error) {
	var subject models.Subject
	var priority string
	err := row.Scan(
		&subject.ID, &subject.Name, &subject.Color, &priority,
		&subject.TotalStudyMinutes, &subject.SessionsCompleted, &subject.CreatedAt, &subject.UpdatedAt,
	)
	if err != nil {
		return models.Subject{}, err
	}
	subject.Priority = models.Priority(priority)
	return subject, nil
}

// Sessions

const sessionColumns = `id, subject_id, title, description, duration_min, type, difficulty, status,
	deadline, scheduled_at, started_at, completed_at, actual_min, effectiveness, notes, created_at, updated_at`

func (s *SQLiteStore) AddSession(session models.StudySession) error {
	return s.UpdateSession(session)
}

func (s *SQLiteStore) GetSession(id string) (models.StudySession, error) {
	row := s.db.QueryRow("SELECT "+sessionColumns+" FROM sessions WHERE id = ?", id)

	session, err := scanSession(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.StudySession{}, fmt.Errorf("session not found: %s", id)
		}
		return models.StudySession{}, err
	}
	return session, nil
}

func (s *SQLiteStore) GetAllSessions() ([]models.StudySession, error) {
	rows, err := s.db.Query("SELECT " + sessionColumns + " FROM sessions ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSessions(rows)
}

func (s *SQLiteStore) GetSessionsForSubject(subjectID string) ([]models.StudySession, error) {
	rows, err := s.db.Query("SELECT "+sessionColumns+" FROM sessions WHERE subject_id = ? ORDER BY created_at", subjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSessions(rows)
}

func (s *SQLiteStore) UpdateSession(session models.StudySession) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO sessions (`+sessionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		session.ID, session.SubjectID, session.Title, session.Description, session.DurationMin,
		session.Type, session.Difficulty, session.Status,
		nullString(session.Deadline), nullString(session.ScheduledAt),
		nullString(session.StartedAt), nullString(session.CompletedAt),
		nullInt(session.ActualMin), nullInt(session.Effectiveness),
		session.Notes, session.CreatedAt, session.UpdatedAt,
	)
	return err
}

func (s *SQLiteStore) DeleteSession(id string) error {
	result, err := s.db.Exec("DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("session not found: %s", id)
	}
	return nil
}

func collectSessions(rows *sql.Rows) ([]models.StudySession, error) {
	var sessions []models.StudySession
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

func scanSession(row rowScanner) (models.StudySession, error) {
	var session models.StudySession
	var sessionType, difficulty, status string
	var deadline, scheduledAt, startedAt, completedAt sql.NullString
	var actualMin, effectiveness sql.NullInt64

	err := row.Scan(
		&session.ID, &session.SubjectID, &session.Title, &session.Description, &session.DurationMin,
		&sessionType, &difficulty, &status,
		&deadline, &scheduledAt, &startedAt, &completedAt,
		&actualMin, &effectiveness, &session.Notes, &session.CreatedAt, &session.UpdatedAt,
	)
	if err != nil {
		return models.StudySession{}, err
	}

	session.Type = models.SessionType(sessionType)
	session.Difficulty = models.Difficulty(difficulty)
	session.Status = models.SessionStatus(status)
	session.Deadline = fromNullString(deadline)
	session.ScheduledAt = fromNullString(scheduledAt)
	session.StartedAt = fromNullString(startedAt)
	session.CompletedAt = fromNullString(completedAt)
	session.ActualMin = fromNullInt(actualMin)
	session.Effectiveness = fromNullInt(effectiveness)

	return session, nil
}

// Progress

func (s *SQLiteStore) RecordProgress(entry models.ProgressEntry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var existing models.ProgressEntry
	var eff sql.NullFloat64
	var mood sql.NullInt64
	err = tx.QueryRow(`
		SELECT id, study_minutes, sessions_completed, effectiveness, mood, notes
		FROM progress WHERE subject_id = ? AND date = ?`, entry.SubjectID, entry.Date,
	).Scan(&existing.ID, &existing.StudyMinutes, &existing.SessionsCompleted, &eff, &mood, &existing.Notes)

	switch {
	case err == sql.ErrNoRows:
		if entry.ID == "" {
			entry.ID = uuid.NewString()
		}
		_, err = tx.Exec(`
			INSERT INTO progress (id, subject_id, date, study_minutes, sessions_completed, effectiveness, mood, notes, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			entry.ID, entry.SubjectID, entry.Date, entry.StudyMinutes, entry.SessionsCompleted,
			nullFloat(entry.Effectiveness), nullInt(entry.Mood), entry.Notes, entry.CreatedAt,
		)
		if err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		// Merge: minutes and counts accumulate, ratings overwrite when present.
		effectiveness := fromNullFloat(eff)
		if entry.Effectiveness != nil {
			effectiveness = entry.Effectiveness
		}
		moodVal := fromNullInt(mood)
		if entry.Mood != nil {
			moodVal = entry.Mood
		}
		notes := existing.Notes
		if entry.Notes != "" {
			notes = entry.Notes
		}
		_, err = tx.Exec(`
			UPDATE progress SET study_minutes = ?, sessions_completed = ?, effectiveness = ?, mood = ?, notes = ?
			WHERE subject_id = ? AND date = ?`,
			existing.StudyMinutes+entry.StudyMinutes, existing.SessionsCompleted+entry.SessionsCompleted,
			nullFloat(effectiveness), nullInt(moodVal), notes, entry.SubjectID, entry.Date,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetProgressForSubject(subjectID string) ([]models.ProgressEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, subject_id, date, study_minutes, sessions_completed, effectiveness, mood, notes, created_at
		FROM progress WHERE subject_id = ? ORDER BY date`, subjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProgress(rows)
}

func (s *SQLiteStore) GetAllProgress() ([]models.ProgressEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, subject_id, date, study_minutes, sessions_completed, effectiveness, mood, notes, created_at
		FROM progress ORDER BY date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProgress(rows)
}

func collectProgress(rows *sql.Rows) ([]models.ProgressEntry, error) {
	var entries []models.ProgressEntry
	for rows.Next() {
		var entry models.ProgressEntry
		var eff sql.NullFloat64
		var mood sql.NullInt64
		err := rows.Scan(
			&entry.ID, &entry.SubjectID, &entry.Date, &entry.StudyMinutes, &entry.SessionsCompleted,
			&eff, &mood, &entry.Notes, &entry.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		entry.Effectiveness = fromNullFloat(eff)
		entry.Mood = fromNullInt(mood)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Nullable column helpers

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

func nullInt(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}

func fromNullInt(ni sql.NullInt64) *int {
	if !ni.Valid {
		return nil
	}
	v := int(ni.Int64)
	return &v
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func fromNullFloat(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	v := nf.Float64
	return &v
}
