package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/studyplan/internal/analytics"
	"github.com/julianstephens/studyplan/internal/constants"
	"github.com/julianstephens/studyplan/internal/utils"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.state == StateAddSession && m.form != nil {
		return docStyle.Render(m.form.View())
	}

	var content string
	switch m.state {
	case StateToday:
		content = m.viewToday()
	case StateSessions:
		content = docStyle.Render(m.sessionList.View())
	case StateStats:
		content = m.viewStats()
	}

	sections := []string{m.viewTabs(), content}
	if m.statusLine != "" {
		sections = append(sections, statusStyle.Render(m.statusLine))
	}
	sections = append(sections, m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Today", "Sessions", "Stats"} {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewToday() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("Schedule for %s", m.schedule.Date)))
	b.WriteString("\n\n")

	if len(m.schedule.Sessions) == 0 {
		b.WriteString(dimStyle.Render("No sessions scheduled. Press 'a' to add one, 'g' to regenerate."))
		return docStyle.Render(b.String())
	}

	for _, scheduled := range m.schedule.Sessions {
		subjectName := "(unknown)"
		if scheduled.Subject != nil {
			subjectName = scheduled.Subject.Name
		}
		b.WriteString(fmt.Sprintf("%s  %-28s %-14s %3d min\n",
			scheduled.StartAt.Format(constants.TimeFormat),
			scheduled.Session.Title,
			subjectName,
			scheduled.Session.DurationMin,
		))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Total: %d min across %d sessions (%.0f%% of goal)",
		m.schedule.TotalMinutes, m.schedule.SessionCount, m.schedule.Efficiency*100)))
	return docStyle.Render(b.String())
}

func (m Model) viewStats() string {
	now := time.Now()
	if loc, err := utils.LoadLocation(m.prefs.Timezone); err == nil {
		now = now.In(loc)
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("Statistics"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Study streak: %d day(s)\n\n", analytics.StudyStreak(m.history, now)))

	if len(m.subjects) == 0 {
		b.WriteString(dimStyle.Render("No subjects yet."))
		return docStyle.Render(b.String())
	}

	b.WriteString(fmt.Sprintf("%-20s %10s %10s %12s\n", "SUBJECT", "TOTAL MIN", "COMPLETED", "LAST 3 DAYS"))
	for _, subject := range m.subjects {
		recent := analytics.RecentStudyTime(subject.ID, m.history, 3, now)
		b.WriteString(fmt.Sprintf("%-20s %10d %10d %8d min\n",
			subject.Name, subject.TotalStudyMinutes, subject.SessionsCompleted, recent))
	}
	return docStyle.Render(b.String())
}
