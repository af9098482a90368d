package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/studyflow/internal/model"
	"github.com/sandeepkv93/studyflow/internal/schedule"
)

func (m Model) handlePlanKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.focusSessions())-1 {
			m.Cursor++
		}
	case "h", "left":
		m.shiftFocusDate(-1)
	case "l", "right":
		m.shiftFocusDate(1)
	case "c":
		m.markSelected(model.SessionCompleted)
	case "x":
		m.markSelected(model.SessionSkipped)
	case "s":
		m.suggestForSelected()
	case "r":
		m.redistributeMissed(m.RedistMaxDays)
	case "u":
		m.undoSelectedEdit()
	}
	return m
}

func (m Model) handleWeekKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "h", "left":
		m.shiftFocusDate(-7)
	case "l", "right":
		m.shiftFocusDate(7)
	}
	return m
}

func (m *Model) shiftFocusDate(days int) {
	m.FocusDate = m.FocusDate.AddDays(days)
	m.Cursor = 0
	m.Suggestions = nil
	m.Status = StatusBar{Text: fmt.Sprintf("day: %s (%s)", m.FocusDate, m.FocusDate.Weekday()), IsError: false}
}

func (m *Model) markSelected(status model.SessionStatus) {
	session, ok := m.currentSession()
	if !ok {
		m.Status = StatusBar{Text: "no session selected", IsError: true}
		return
	}
	plan := m.planFor(m.FocusDate)
	target := plan.Session(session.Key())
	if target == nil {
		m.Status = StatusBar{Text: fmt.Sprintf("session %s not found", session.Key()), IsError: true}
		return
	}
	target.Status = status
	plan.Recalculate(m.Settings)
	m.Status = StatusBar{Text: fmt.Sprintf("%s marked %s", session.Key(), status), IsError: false}
}

func (m *Model) suggestForSelected() {
	session, ok := m.currentSession()
	if !ok {
		m.Status = StatusBar{Text: "no session selected", IsError: true}
		return
	}
	m.Suggestions = m.Editor.Checker().Suggest(m.FocusDate, session.AllocatedHours, session.Key())
	if len(m.Suggestions) == 0 {
		m.Status = StatusBar{Text: fmt.Sprintf("no free slots for %s today", session.Key()), IsError: true}
		return
	}
	m.Status = StatusBar{Text: fmt.Sprintf("%d open slot(s) for %s", len(m.Suggestions), session.Key()), IsError: false}
}

func (m *Model) undoSelectedEdit() {
	session, ok := m.currentSession()
	if !ok {
		m.Status = StatusBar{Text: "no session selected", IsError: true}
		return
	}
	removed, err := m.Editor.RemoveEdit(m.FocusDate, session.TaskID, session.Number)
	if !removed {
		m.Status = StatusBar{Text: fmt.Sprintf("no edit to undo for %s", session.Key()), IsError: true}
		return
	}
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	m.Status = StatusBar{Text: fmt.Sprintf("edit removed for %s", session.Key()), IsError: false}
}

// moveSession routes a move through the editor. On conflict the status bar
// carries the reason and the suggestion pane fills with alternatives for
// the same duration.
func (m *Model) moveSession(date model.Date, key model.SessionKey, newStart string) {
	plan := m.planFor(date)
	if plan == nil {
		m.Status = StatusBar{Text: fmt.Sprintf("no plan for %s", date), IsError: true}
		return
	}
	session := plan.Session(key)
	if session == nil {
		m.Status = StatusBar{Text: fmt.Sprintf("session %s not found on %s", key, date), IsError: true}
		return
	}

	err := m.Editor.EditSessionTime(date, session.TaskID, session.Number, newStart, session.AllocatedHours)
	if err != nil {
		m.Suggestions = m.Editor.Checker().Suggest(date, session.AllocatedHours, key)
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	m.Suggestions = nil
	m.Status = StatusBar{Text: fmt.Sprintf("%s moved to %s", key, newStart), IsError: false}
}

func (m *Model) redistributeMissed(maxDays int) {
	opts := schedule.Options{
		PrioritizeMissed:   true,
		RespectDailyLimits: true,
		MaxDays:            maxDays,
	}
	plans, result := schedule.Redistribute(m.Plans, m.Tasks, m.Commitments, m.Settings, m.FocusDate, opts)
	m.Plans = plans
	m.Editor.Rebind(plans, m.Commitments, m.Settings)
	text := fmt.Sprintf("redistributed %d session(s), %d conflict(s) avoided", result.Moved, result.ConflictsAvoided)
	if len(result.Failed) > 0 {
		text = fmt.Sprintf("%s, %d unplaceable", text, len(result.Failed))
	}
	m.Status = StatusBar{Text: text, IsError: len(result.Failed) > 0}
}
