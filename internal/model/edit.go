package model

import (
	"errors"
	"fmt"
	"time"
)

// SessionTimeEdit is one user-authored override of a session's start/end,
// layered on top of the base plan. Edits for the same key replace each
// other; only the latest survives.
type SessionTimeEdit struct {
	PlanDate      Date
	TaskID        string
	SessionNumber int
	OriginalStart string
	NewStart      string
	NewEnd        string
	EditedAt      time.Time
	Temporary     bool
}

func (e SessionTimeEdit) Key() SessionKey {
	return KeyOf(e.TaskID, e.SessionNumber)
}

func (e SessionTimeEdit) Validate() error {
	if !e.PlanDate.IsValid() {
		return fmt.Errorf("model: edit plan date %q is malformed", e.PlanDate)
	}
	if e.TaskID == "" {
		return errors.New("model: edit task id is required")
	}
	if e.SessionNumber < 1 {
		return fmt.Errorf("model: edit session number must be 1-based, got %d", e.SessionNumber)
	}
	start := TimeToMinutes(e.NewStart)
	end := TimeToMinutes(e.NewEnd)
	if start < 0 || end < 0 {
		return fmt.Errorf("model: edit for %s has malformed times", e.Key())
	}
	if end <= start {
		return fmt.Errorf("model: edit for %s must end after it starts", e.Key())
	}
	if e.EditedAt.IsZero() {
		return errors.New("model: edit timestamp is required")
	}
	return nil
}
