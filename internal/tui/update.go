package tui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/julianstephens/studyplan/internal/constants"
	"github.com/julianstephens/studyplan/internal/models"
	"github.com/julianstephens/studyplan/internal/utils"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.sessionList.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case tea.KeyMsg:
		if m.state == StateAddSession {
			return m.updateAddSession(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil

		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % 3
			return m, nil

		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state + 2) % 3
			return m, nil

		case key.Matches(msg, m.keys.Generate):
			m.reload()
			m.statusLine = "Schedule regenerated"
			return m, nil

		case key.Matches(msg, m.keys.Add):
			if len(m.subjects) == 0 {
				m.statusLine = "Add a subject first: studyplan subject add <name>"
				return m, nil
			}
			m.newSessionForm()
			m.state = StateAddSession
			return m, m.form.Init()
		}

		if m.state == StateSessions {
			switch {
			case key.Matches(msg, m.keys.Start):
				m.startSelected()
				return m, nil
			case key.Matches(msg, m.keys.Complete):
				m.finishSelected(models.StatusCompleted)
				return m, nil
			case key.Matches(msg, m.keys.Skip):
				m.finishSelected(models.StatusSkipped)
				return m, nil
			}
		}
	}

	if m.state == StateSessions {
		var cmd tea.Cmd
		m.sessionList, cmd = m.sessionList.Update(msg)
		return m, cmd
	}

	if m.state == StateAddSession && m.form != nil {
		return m.updateAddSession(msg)
	}

	return m, nil
}

func (m Model) updateAddSession(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.statusLine = m.saveSessionForm()
		m.state = StateSessions
		m.reload()
		return m, nil
	case huh.StateAborted:
		m.state = StateSessions
		return m, nil
	}

	return m, cmd
}

func (m *Model) saveSessionForm() string {
	duration, err := strconv.Atoi(m.sessionForm.Duration)
	if err != nil || duration <= 0 {
		return fmt.Sprintf("Invalid duration: %s", m.sessionForm.Duration)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	session := models.StudySession{
		ID:          uuid.New().String(),
		SubjectID:   m.sessionForm.SubjectID,
		Title:       m.sessionForm.Title,
		DurationMin: duration,
		Type:        m.sessionForm.Type,
		Difficulty:  m.sessionForm.Difficulty,
		Status:      models.StatusPlanned,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := session.Validate(); err != nil {
		return fmt.Sprintf("Invalid session: %v", err)
	}
	if err := m.store.AddSession(session); err != nil {
		return fmt.Sprintf("Error saving session: %v", err)
	}
	return fmt.Sprintf("Added session: %s", session.Title)
}

func (m *Model) startSelected() {
	session, ok := m.selectedSession()
	if !ok {
		return
	}
	if !session.Status.CanTransitionTo(models.StatusInProgress) {
		m.statusLine = fmt.Sprintf("Cannot start %q: status is %s", session.Title, session.Status)
		return
	}

	now := time.Now().UTC().Format(time.RFC3339)
	session.Status = models.StatusInProgress
	session.StartedAt = &now
	session.UpdatedAt = now
	if err := m.store.UpdateSession(session); err != nil {
		m.statusLine = fmt.Sprintf("Error: %v", err)
		return
	}
	m.statusLine = fmt.Sprintf("Started: %s", session.Title)
	m.reload()
}

func (m *Model) finishSelected(target models.SessionStatus) {
	session, ok := m.selectedSession()
	if !ok {
		return
	}
	if session.Status.Terminal() {
		m.statusLine = fmt.Sprintf("%q is already %s", session.Title, session.Status)
		return
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if session.Status == models.StatusPlanned {
		session.Status = models.StatusInProgress
		session.StartedAt = &now
	}
	if !session.Status.CanTransitionTo(target) {
		m.statusLine = fmt.Sprintf("Cannot move %q to %s", session.Title, target)
		return
	}

	session.Status = target
	session.CompletedAt = &now
	session.UpdatedAt = now

	if target == models.StatusCompleted {
		actual := session.DurationMin
		session.ActualMin = &actual
	}

	if err := m.store.UpdateSession(session); err != nil {
		m.statusLine = fmt.Sprintf("Error: %v", err)
		return
	}

	if target == models.StatusCompleted {
		if err := m.recordCompletion(session); err != nil {
			m.statusLine = fmt.Sprintf("Error recording progress: %v", err)
			return
		}
		m.statusLine = fmt.Sprintf("Completed: %s", session.Title)
	} else {
		m.statusLine = fmt.Sprintf("Skipped: %s", session.Title)
	}
	m.reload()
}

func (m *Model) recordCompletion(session models.StudySession) error {
	subject, err := m.store.GetSubject(session.SubjectID)
	if err != nil {
		return err
	}
	actual := session.DurationMin
	if session.ActualMin != nil {
		actual = *session.ActualMin
	}
	subject.TotalStudyMinutes += actual
	subject.SessionsCompleted++
	subject.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	if err := m.store.UpdateSubject(subject); err != nil {
		return err
	}

	localNow, err := utils.NowInTimezone(m.prefs.Timezone)
	if err != nil {
		return err
	}
	return m.store.RecordProgress(models.ProgressEntry{
		SubjectID:         session.SubjectID,
		Date:              localNow.Format(constants.DateFormat),
		StudyMinutes:      actual,
		SessionsCompleted: 1,
		CreatedAt:         time.Now().UTC().Format(time.RFC3339),
	})
}
