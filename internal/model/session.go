package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidSessionStatus = errors.New("model: invalid session status")

type SessionStatus string

const (
	SessionScheduled   SessionStatus = "scheduled"
	SessionInProgress  SessionStatus = "in-progress"
	SessionCompleted   SessionStatus = "completed"
	SessionMissed      SessionStatus = "missed"
	SessionOverdue     SessionStatus = "overdue"
	SessionRescheduled SessionStatus = "rescheduled"
	SessionSkipped     SessionStatus = "skipped"
)

func (s SessionStatus) IsValid() bool {
	switch s {
	case SessionScheduled, SessionInProgress, SessionCompleted,
		SessionMissed, SessionOverdue, SessionRescheduled, SessionSkipped:
		return true
	default:
		return false
	}
}

// Done reports whether the session no longer occupies its slot for
// conflict purposes.
func (s SessionStatus) Done() bool {
	return s == SessionCompleted || s == SessionSkipped
}

// SessionKey is the stable identity of a session within one plan date:
// "taskId#sessionNumber".
type SessionKey string

func KeyOf(taskID string, number int) SessionKey {
	return SessionKey(fmt.Sprintf("%s#%d", taskID, number))
}

// Reschedule records one move of a session, oldest first.
type Reschedule struct {
	FromDate Date
	FromTime string
	ToDate   Date
	ToTime   string
	At       time.Time
	Reason   string
}

// StudySession is one scheduled block of work for a task on a single day.
// EndTime always equals StartTime plus AllocatedHours.
type StudySession struct {
	TaskID         string
	Number         int
	StartTime      string
	EndTime        string
	AllocatedHours float64
	Status         SessionStatus
	OriginalTime   string
	OriginalDate   Date
	History        []Reschedule
}

func (s StudySession) Key() SessionKey {
	return KeyOf(s.TaskID, s.Number)
}

// StartMinutes returns the session start as minutes since midnight, or -1
// when the start time is malformed.
func (s StudySession) StartMinutes() int {
	return TimeToMinutes(s.StartTime)
}

func (s StudySession) EndMinutes() int {
	return TimeToMinutes(s.EndTime)
}

func (s StudySession) Validate() error {
	if strings.TrimSpace(s.TaskID) == "" {
		return errors.New("model: session task id is required")
	}
	if s.Number < 1 {
		return fmt.Errorf("model: session number must be 1-based, got %d", s.Number)
	}
	if !s.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidSessionStatus, s.Status)
	}
	start := s.StartMinutes()
	if start < 0 {
		return fmt.Errorf("model: session %s start time %q is malformed", s.Key(), s.StartTime)
	}
	if s.AllocatedHours <= 0 && s.Status != SessionSkipped {
		return fmt.Errorf("model: session %s allocated hours must be positive", s.Key())
	}
	if want := start + HoursToMinutes(s.AllocatedHours); s.EndMinutes() != want {
		return fmt.Errorf("model: session %s end time %q does not match start plus duration", s.Key(), s.EndTime)
	}
	return nil
}

// StudyPlan owns the ordered sessions for one calendar date.
type StudyPlan struct {
	Date           Date
	Sessions       []StudySession
	TotalHours     float64
	AvailableHours float64
	Overloaded     bool
}

// Session returns a pointer into the plan's session slice, or nil.
func (p *StudyPlan) Session(key SessionKey) *StudySession {
	for i := range p.Sessions {
		if p.Sessions[i].Key() == key {
			return &p.Sessions[i]
		}
	}
	return nil
}

// PlannedHours sums allocations of sessions still occupying their slot.
func (p *StudyPlan) PlannedHours() float64 {
	total := 0.0
	for _, s := range p.Sessions {
		if s.Status == SessionSkipped {
			continue
		}
		total += s.AllocatedHours
	}
	return total
}

// Recalculate refreshes the aggregate bookkeeping after a mutation.
func (p *StudyPlan) Recalculate(settings Settings) {
	p.TotalHours = p.PlannedHours()
	p.AvailableHours = settings.DailyAvailableHours
	p.Overloaded = p.TotalHours > p.AvailableHours
}
