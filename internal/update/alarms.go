package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/studyflow/internal/watch"
)

const alarmLogLimit = 20

func waitForAlarmCmd(ch <-chan watch.Alarm) tea.Cmd {
	return func() tea.Msg {
		alarm, ok := <-ch
		if !ok {
			return nil
		}
		return AlarmMsg{Alarm: alarm}
	}
}

func (m *Model) applyAlarm(alarm watch.Alarm) {
	m.AlarmLog = append(m.AlarmLog, alarm)
	if len(m.AlarmLog) > alarmLogLimit {
		m.AlarmLog = m.AlarmLog[len(m.AlarmLog)-alarmLogLimit:]
	}

	plan := m.planFor(alarm.Date)
	if plan == nil {
		return
	}
	if watch.Apply(plan, alarm) {
		plan.Recalculate(m.Settings)
		switch alarm.Kind {
		case watch.AlarmSessionStart:
			m.Status = StatusBar{Text: fmt.Sprintf("%s started", alarm.Key), IsError: false}
		case watch.AlarmSessionEnd:
			m.Status = StatusBar{Text: fmt.Sprintf("%s ran past its end time", alarm.Key), IsError: true}
		case watch.AlarmDayEnd:
			m.Status = StatusBar{Text: fmt.Sprintf("unfinished sessions on %s marked missed", alarm.Date), IsError: true}
		}
	}
}

// ScheduleDayAlarms loads the focused day's checkpoints into the watcher,
// replacing whatever was queued before.
func (m *Model) ScheduleDayAlarms(loc *time.Location) {
	if m.Watcher == nil {
		return
	}
	plan := m.planFor(m.FocusDate)
	if plan == nil {
		return
	}
	m.Watcher.Reset()
	for _, alarm := range watch.PlanAlarms(plan, loc) {
		_ = m.Watcher.Schedule(alarm)
	}
}
