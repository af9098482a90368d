package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/studyflow/internal/commands"
	"github.com/sandeepkv93/studyflow/internal/model"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.Palette.Active = false
		m.Palette.Input = ""
		return m
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Move: func(a commands.MoveArgs) (commands.Result, error) {
			date := m.FocusDate
			if a.Date != "" {
				date = a.Date
			}
			m.moveSession(date, a.Key, a.To)
			if m.Status.IsError {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: m.Status.Text}
			}
			return commands.Result{Message: m.Status.Text}, nil
		},
		Complete: func(a commands.CompleteArgs) (commands.Result, error) {
			return m.setStatusByKey(a.Key, model.SessionCompleted)
		},
		Skip: func(a commands.SkipArgs) (commands.Result, error) {
			return m.setStatusByKey(a.Key, model.SessionSkipped)
		},
		Suggest: func(a commands.SuggestArgs) (commands.Result, error) {
			plan := m.planFor(m.FocusDate)
			if plan == nil || plan.Session(a.Key) == nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("session %s not found on %s", a.Key, m.FocusDate)}
			}
			session := plan.Session(a.Key)
			m.Suggestions = m.Editor.Checker().Suggest(m.FocusDate, session.AllocatedHours, a.Key)
			if len(m.Suggestions) == 0 {
				return commands.Result{Message: fmt.Sprintf("no free slots for %s today", a.Key)}, nil
			}
			return commands.Result{Message: fmt.Sprintf("slots for %s: %s", a.Key, strings.Join(m.Suggestions, ", "))}, nil
		},
		Redistribute: func(a commands.RedistributeArgs) (commands.Result, error) {
			days := a.Days
			if days <= 0 {
				days = m.RedistMaxDays
			}
			m.redistributeMissed(days)
			return commands.Result{Message: m.Status.Text}, nil
		},
		Undo: func(a commands.UndoArgs) (commands.Result, error) {
			plan := m.planFor(m.FocusDate)
			if plan == nil || plan.Session(a.Key) == nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("session %s not found on %s", a.Key, m.FocusDate)}
			}
			session := plan.Session(a.Key)
			removed, err := m.Editor.RemoveEdit(m.FocusDate, session.TaskID, session.Number)
			if !removed {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no edit to undo for %s", a.Key)}
			}
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("edit removed for %s", a.Key)}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	} else {
		m.Status = StatusBar{Text: res.Message, IsError: false}
	}

	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	return m
}

func (m *Model) setStatusByKey(key model.SessionKey, status model.SessionStatus) (commands.Result, error) {
	plan := m.planFor(m.FocusDate)
	if plan == nil {
		return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no plan for %s", m.FocusDate)}
	}
	session := plan.Session(key)
	if session == nil {
		return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("session %s not found on %s", key, m.FocusDate)}
	}
	session.Status = status
	plan.Recalculate(m.Settings)
	return commands.Result{Message: fmt.Sprintf("%s marked %s", key, status)}, nil
}
