package watch

import (
	"time"

	"github.com/sandeepkv93/studyflow/internal/model"
)

// PlanAlarms derives the timed checkpoints for one plan day: a start and an
// end alarm per live session plus a single day-end alarm that sweeps anything
// still unfinished into missed. Sessions already done and malformed clock
// strings are skipped.
func PlanAlarms(plan *model.StudyPlan, loc *time.Location) []Alarm {
	if plan == nil || !plan.Date.IsValid() {
		return nil
	}
	if loc == nil {
		loc = time.Local
	}
	day := plan.Date.Time()
	out := make([]Alarm, 0, len(plan.Sessions)*2+1)
	for i := range plan.Sessions {
		s := &plan.Sessions[i]
		if s.Status.Done() {
			continue
		}
		start := s.StartMinutes()
		end := s.EndMinutes()
		if start < 0 || end < 0 {
			continue
		}
		out = append(out,
			Alarm{Date: plan.Date, Key: s.Key(), Kind: AlarmSessionStart, FireAt: clockAt(day, start, loc)},
			Alarm{Date: plan.Date, Key: s.Key(), Kind: AlarmSessionEnd, FireAt: clockAt(day, end, loc)},
		)
	}
	if len(out) > 0 {
		out = append(out, Alarm{Date: plan.Date, Kind: AlarmDayEnd, FireAt: clockAt(day.AddDate(0, 0, 1), 0, loc)})
	}
	return out
}

// Apply advances the session the alarm points at and reports whether any
// status changed. Transitions only move forward: a completed or skipped
// session never reverts, and a day-end sweep downgrades everything still
// pending to missed.
func Apply(plan *model.StudyPlan, alarm Alarm) bool {
	if plan == nil || plan.Date != alarm.Date {
		return false
	}
	switch alarm.Kind {
	case AlarmSessionStart:
		s := plan.Session(alarm.Key)
		if s == nil || s.Status != model.SessionScheduled {
			return false
		}
		s.Status = model.SessionInProgress
		return true
	case AlarmSessionEnd:
		s := plan.Session(alarm.Key)
		if s == nil {
			return false
		}
		if s.Status != model.SessionScheduled && s.Status != model.SessionInProgress {
			return false
		}
		s.Status = model.SessionOverdue
		return true
	case AlarmDayEnd:
		changed := false
		for i := range plan.Sessions {
			s := &plan.Sessions[i]
			switch s.Status {
			case model.SessionScheduled, model.SessionInProgress, model.SessionOverdue:
				s.Status = model.SessionMissed
				changed = true
			}
		}
		return changed
	}
	return false
}

func clockAt(day time.Time, minutes int, loc *time.Location) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), 0, minutes, 0, 0, loc)
}
