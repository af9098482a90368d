package update

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/studyflow/internal/model"
	"github.com/sandeepkv93/studyflow/internal/schedule"
	"github.com/sandeepkv93/studyflow/internal/views"
)

func (m Model) renderPlanView() string {
	plan := m.planFor(m.FocusDate)
	data := views.PlanPanelData{
		Date:      string(m.FocusDate),
		Weekday:   m.FocusDate.Weekday().String(),
		TableView: m.planTable.View(),
	}
	if plan != nil {
		data.TotalHours = plan.TotalHours
		data.AvailableHours = plan.AvailableHours
		data.Overloaded = plan.Overloaded
	}
	if session, ok := m.currentSession(); ok {
		data.SelectedKey = string(session.Key())
	}
	for _, c := range schedule.CommitmentsOn(m.FocusDate, m.Commitments) {
		data.Commitments = append(data.Commitments, fmt.Sprintf("%s-%s %s", c.StartTime, c.EndTime, c.Title))
	}
	return views.RenderPlanPanel(data)
}

func (m Model) renderWeekView() string {
	start := m.FocusDate.AddDays(-int(m.FocusDate.Weekday()))
	days := make([]views.WeekDayData, 0, 7)
	for offset := 0; offset < 7; offset++ {
		date := start.AddDays(offset)
		day := views.WeekDayData{
			Date:    string(date),
			Weekday: date.Weekday().String(),
			OffDay:  !m.Settings.IsWorkDay(date.Weekday()),
		}
		if plan := m.planFor(date); plan != nil {
			day.PlannedHours = plan.PlannedHours()
			day.Overloaded = plan.Overloaded
			for _, s := range plan.Sessions {
				if s.Status == model.SessionMissed {
					day.Missed++
				}
				if s.Status.Done() {
					day.Done++
				}
				day.Sessions++
			}
		}
		days = append(days, day)
	}
	return views.RenderMarkdown(views.WeekSummaryMarkdown(days))
}

func (m Model) renderEditsView() string {
	edits := m.Editor.Edits()
	rows := make([]views.EditRowData, 0, len(edits))
	for _, e := range edits {
		rows = append(rows, views.EditRowData{
			Date:     string(e.PlanDate),
			Key:      string(e.Key()),
			From:     e.OriginalStart,
			To:       e.NewStart,
			EditedAt: e.EditedAt.Format("Jan 2 15:04"),
		})
	}
	return views.RenderEditsPanel(rows)
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.commandInput.View())
}

func (m Model) renderSuggestionsPane() string {
	if len(m.Suggestions) == 0 {
		return ""
	}
	return "\n" + views.RenderSuggestions(m.Suggestions)
}

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	var plain []string
	for _, kb := range m.viewBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return "\n" + views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		Bindings:    plain,
		HelpView:    m.helpModel.View(m.helpKeyMap()),
	})
}

func (m Model) renderAlarmLine() string {
	if len(m.AlarmLog) == 0 {
		return ""
	}
	last := m.AlarmLog[len(m.AlarmLog)-1]
	return strings.TrimSpace(fmt.Sprintf("last-alarm: %s %s", last.Key, last.Kind))
}
