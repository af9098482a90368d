package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/studyflow/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.Watcher != nil {
		return waitForAlarmCmd(m.Watcher.C())
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.syncBubbleData()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		m.ensurePlanState()

		if m.Palette.Active {
			if typed.String() == m.Keys.Help {
				m.HelpVisible = !m.HelpVisible
				return m, nil
			}
			next := m.handlePaletteKey(typed)
			return next, nil
		}

		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active", IsError: false}
			return m, nil
		case m.Keys.Plan:
			m.CurrentView = ViewPlan
			return m, nil
		case m.Keys.Week:
			m.CurrentView = ViewWeek
			return m, nil
		case m.Keys.Edits:
			m.CurrentView = ViewEdits
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}

		if m.CurrentView == ViewPlan {
			return m.handlePlanKey(typed), nil
		}
		if m.CurrentView == ViewWeek {
			return m.handleWeekKey(typed), nil
		}
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
		}
		return m, nil
	case SetPlansMsg:
		m.Plans = typed.Plans
		m.Cursor = 0
		if len(typed.Plans) > 0 && m.planFor(m.FocusDate) == nil {
			m.FocusDate = typed.Plans[0].Date
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	case AlarmMsg:
		m.applyAlarm(typed.Alarm)
		if m.Watcher != nil {
			return m, waitForAlarmCmd(m.Watcher.C())
		}
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	leftPane := ""
	rightPane := ""
	switch m.CurrentView {
	case ViewPlan:
		leftPane = m.renderPlanView()
		rightPane = m.renderCommandPalette() + m.renderSuggestionsPane() + m.renderHelpIfVisible()
	case ViewWeek:
		leftPane = m.renderWeekView()
		rightPane = m.renderHelpIfVisible()
	case ViewEdits:
		leftPane = m.renderEditsView()
		rightPane = m.renderHelpIfVisible()
	}

	return views.RenderFrame(views.Frame{
		Title:       fmt.Sprintf("studyflow | view: %s | day: %s", m.CurrentView, m.FocusDate),
		Schedule:    leftPane,
		Side:        rightPane,
		Status:      status,
		StatusError: m.Status.IsError,
		AlarmLine:   m.renderAlarmLine(),
		KeyHints:    fmt.Sprintf("keys: %s plan | %s week | %s edits | / cmd | %s help | %s quit", m.Keys.Plan, m.Keys.Week, m.Keys.Edits, m.Keys.Help, m.Keys.Quit),
	})
}

func isKnownView(v View) bool {
	switch v {
	case ViewPlan, ViewWeek, ViewEdits:
		return true
	default:
		return false
	}
}

func formatHours(h float64) string {
	return fmt.Sprintf("%gh", h)
}
