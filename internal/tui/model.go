package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/studyplan/internal/models"
	"github.com/julianstephens/studyplan/internal/scheduler"
	"github.com/julianstephens/studyplan/internal/storage"
	"github.com/julianstephens/studyplan/internal/utils"
)

type SessionState int

const (
	StateToday SessionState = iota
	StateSessions
	StateStats
	StateAddSession
)

// SessionFormModel holds the huh form inputs for a quick session add.
type SessionFormModel struct {
	SubjectID  string
	Title      string
	Duration   string
	Type       models.SessionType
	Difficulty models.Difficulty
}

type sessionItem struct {
	session models.StudySession
	subject string
}

func (i sessionItem) Title() string {
	return i.session.Title
}

func (i sessionItem) Description() string {
	return fmt.Sprintf("%s · %d min · %s/%s · %s",
		i.subject, i.session.DurationMin, i.session.Type, i.session.Difficulty, i.session.Status)
}

func (i sessionItem) FilterValue() string {
	return i.session.Title + " " + i.subject
}

type Model struct {
	store       storage.Provider
	scheduler   *scheduler.Scheduler
	state       SessionState
	keys        KeyMap
	help        help.Model
	sessionList list.Model
	schedule    models.DailySchedule
	subjects    []models.Subject
	history     []models.ProgressEntry
	prefs       models.SchedulingPreferences
	form        *huh.Form
	sessionForm *SessionFormModel
	statusLine  string
	quitting    bool
	width       int
	height      int
}

func NewModel(store storage.Provider, sched *scheduler.Scheduler) Model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Study Sessions"
	l.SetShowHelp(false)

	m := Model{
		store:       store,
		scheduler:   sched,
		state:       StateToday,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		sessionList: l,
	}
	m.reload()
	return m
}

// reload pulls fresh data from the store and regenerates today's schedule.
func (m *Model) reload() {
	prefs, err := m.store.GetPreferences()
	if err != nil {
		m.statusLine = fmt.Sprintf("Error loading preferences: %v", err)
		return
	}
	m.prefs = prefs

	subjects, err := m.store.GetAllSubjects()
	if err != nil {
		m.statusLine = fmt.Sprintf("Error loading subjects: %v", err)
		return
	}
	m.subjects = subjects

	sessions, err := m.store.GetAllSessions()
	if err != nil {
		m.statusLine = fmt.Sprintf("Error loading sessions: %v", err)
		return
	}

	history, err := m.store.GetAllProgress()
	if err != nil {
		m.statusLine = fmt.Sprintf("Error loading progress: %v", err)
		return
	}
	m.history = history

	subjectName := make(map[string]string, len(subjects))
	for _, subject := range subjects {
		subjectName[subject.ID] = subject.Name
	}

	items := make([]list.Item, 0, len(sessions))
	for _, session := range sessions {
		name := subjectName[session.SubjectID]
		if name == "" {
			name = "(unknown)"
		}
		items = append(items, sessionItem{session: session, subject: name})
	}
	m.sessionList.SetItems(items)

	now := time.Now()
	if loc, err := utils.LoadLocation(prefs.Timezone); err == nil {
		now = now.In(loc)
	}
	schedule, err := m.scheduler.GenerateDailySchedule(sessions, subjects, prefs, utils.Midnight(now), history)
	if err != nil {
		m.statusLine = fmt.Sprintf("Error generating schedule: %v", err)
		return
	}
	m.schedule = schedule
}

// selectedSession returns the session under the cursor on the Sessions tab.
func (m Model) selectedSession() (models.StudySession, bool) {
	item, ok := m.sessionList.SelectedItem().(sessionItem)
	if !ok {
		return models.StudySession{}, false
	}
	return item.session, true
}

func (m *Model) newSessionForm() {
	m.sessionForm = &SessionFormModel{
		Duration:   fmt.Sprintf("%d", m.prefs.SessionLengthMin),
		Type:       models.SessionStudy,
		Difficulty: models.DifficultyMedium,
	}

	subjectOptions := make([]huh.Option[string], 0, len(m.subjects))
	for _, subject := range m.subjects {
		subjectOptions = append(subjectOptions, huh.NewOption(subject.Name, subject.ID))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Subject").
				Options(subjectOptions...).
				Value(&m.sessionForm.SubjectID),
			huh.NewInput().
				Title("Title").
				Value(&m.sessionForm.Title),
			huh.NewInput().
				Title("Duration (minutes)").
				Value(&m.sessionForm.Duration),
			huh.NewSelect[models.SessionType]().
				Title("Type").
				Options(
					huh.NewOption("Study", models.SessionStudy),
					huh.NewOption("Review", models.SessionReview),
					huh.NewOption("Practice", models.SessionPractice),
					huh.NewOption("Exam", models.SessionExam),
				).
				Value(&m.sessionForm.Type),
			huh.NewSelect[models.Difficulty]().
				Title("Difficulty").
				Options(
					huh.NewOption("Easy", models.DifficultyEasy),
					huh.NewOption("Medium", models.DifficultyMedium),
					huh.NewOption("Hard", models.DifficultyHard),
				).
				Value(&m.sessionForm.Difficulty),
		),
	)
}

func (m Model) Init() tea.Cmd {
	return nil
}
