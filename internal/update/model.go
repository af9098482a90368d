package update

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/sandeepkv93/studyflow/internal/model"
	"github.com/sandeepkv93/studyflow/internal/schedule"
	"github.com/sandeepkv93/studyflow/internal/watch"
)

type View string

const (
	ViewPlan  View = "Plan"
	ViewWeek  View = "Week"
	ViewEdits View = "Edits"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Plan  string
	Week  string
	Edits string
	Help  string
	Quit  string
}

type PaletteState struct {
	Active bool
	Input  string
}

type Model struct {
	CurrentView View
	FocusDate   model.Date
	Cursor      int

	Tasks       []model.Task
	Commitments []model.FixedCommitment
	Settings    model.Settings
	Plans       []*model.StudyPlan

	Editor  *schedule.Editor
	Watcher *watch.Engine

	AlarmLog    []watch.Alarm
	Suggestions []string
	Palette     PaletteState
	HelpVisible bool
	Status      StatusBar
	Keys        GlobalKeyMap
	Quitting    bool
	LastError   error

	RedistMaxDays int

	now func() time.Time

	// Bubble components used for rich TUI controls
	planTable    table.Model
	commandInput textinput.Model
	helpModel    help.Model
}

type SetPlansMsg struct {
	Plans []*model.StudyPlan
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type AlarmMsg struct {
	Alarm watch.Alarm
}

type SwitchViewMsg struct {
	View View
}

func NewModel(tasks []model.Task, commitments []model.FixedCommitment, settings model.Settings, plans []*model.StudyPlan, editor *schedule.Editor) Model {
	m := Model{
		CurrentView: ViewPlan,
		FocusDate:   model.DateOf(time.Now()),
		Tasks:       tasks,
		Commitments: commitments,
		Settings:    settings,
		Plans:       plans,
		Editor:      editor,
		Keys: GlobalKeyMap{
			Plan:  "1",
			Week:  "2",
			Edits: "3",
			Help:  "?",
			Quit:  "q",
		},
		RedistMaxDays: schedule.DefaultRedistributionDays,
		now:           time.Now,
	}
	if len(plans) > 0 {
		m.FocusDate = plans[0].Date
	}
	m.initBubbleComponents()
	m.syncBubbleData()
	return m
}

func NewModelWithWatcher(tasks []model.Task, commitments []model.FixedCommitment, settings model.Settings, plans []*model.StudyPlan, editor *schedule.Editor, watcher *watch.Engine) Model {
	m := NewModel(tasks, commitments, settings, plans, editor)
	m.Watcher = watcher
	return m
}

func (m *Model) initBubbleComponents() {
	cols := []table.Column{
		{Title: "Session", Width: 16},
		{Title: "Start", Width: 7},
		{Title: "End", Width: 7},
		{Title: "Hours", Width: 6},
		{Title: "Status", Width: 12},
	}
	m.planTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithFocused(true), table.WithHeight(12))

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.helpModel = help.New()
}

func (m *Model) syncBubbleData() {
	sessions := m.focusSessions()
	rows := make([]table.Row, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, table.Row{
			string(s.Key()),
			s.StartTime,
			s.EndTime,
			formatHours(s.AllocatedHours),
			string(s.Status),
		})
	}
	m.planTable.SetRows(rows)
	if len(rows) > 0 && m.Cursor < len(rows) {
		m.planTable.SetCursor(m.Cursor)
	}
}

// focusSessions returns the focused day's sessions with edits applied,
// ordered as stored in the plan.
func (m *Model) focusSessions() []model.StudySession {
	plan := m.planFor(m.FocusDate)
	if plan == nil {
		return nil
	}
	out := make([]model.StudySession, len(plan.Sessions))
	for i, s := range plan.Sessions {
		if m.Editor != nil {
			s = m.Editor.EditedSession(s, plan.Date)
		}
		out[i] = s
	}
	return out
}

func (m *Model) planFor(date model.Date) *model.StudyPlan {
	for _, p := range m.Plans {
		if p.Date == date {
			return p
		}
	}
	return nil
}

func (m *Model) currentSession() (model.StudySession, bool) {
	sessions := m.focusSessions()
	if len(sessions) == 0 || m.Cursor < 0 || m.Cursor >= len(sessions) {
		return model.StudySession{}, false
	}
	return sessions[m.Cursor], true
}

func (m *Model) ensurePlanState() {
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	if n := len(m.focusSessions()); m.Cursor >= n && n > 0 {
		m.Cursor = n - 1
	}
}
