package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidCommitmentType = errors.New("model: invalid commitment type")

type CommitmentType string

const (
	CommitmentClass       CommitmentType = "class"
	CommitmentWork        CommitmentType = "work"
	CommitmentAppointment CommitmentType = "appointment"
	CommitmentOther       CommitmentType = "other"
)

func (c CommitmentType) IsValid() bool {
	switch c {
	case CommitmentClass, CommitmentWork, CommitmentAppointment, CommitmentOther:
		return true
	default:
		return false
	}
}

// OccurrenceOverride is a partial per-date replacement of a commitment's
// fields. Nil fields keep the original value.
type OccurrenceOverride struct {
	Title     *string
	StartTime *string
	EndTime   *string
	Type      *CommitmentType
}

// FixedCommitment is a non-study calendar block. It is either recurring on
// a weekday set or pinned to specific dates; per-date deletions and
// modifications are layered on top without mutating the base record.
type FixedCommitment struct {
	ID                  string
	Title               string
	Type                CommitmentType
	StartTime           string
	EndTime             string
	Recurring           bool
	DaysOfWeek          []time.Weekday
	SpecificDates       []Date
	DeletedOccurrences  []Date
	ModifiedOccurrences map[Date]OccurrenceOverride
}

func (c FixedCommitment) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return errors.New("model: commitment id is required")
	}
	if strings.TrimSpace(c.Title) == "" {
		return errors.New("model: commitment title is required")
	}
	if !c.Type.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCommitmentType, c.Type)
	}
	start := TimeToMinutes(c.StartTime)
	end := TimeToMinutes(c.EndTime)
	if start < 0 || end < 0 {
		return fmt.Errorf("model: commitment %q has malformed times", c.ID)
	}
	if end <= start {
		return fmt.Errorf("model: commitment %q must end after it starts", c.ID)
	}
	if c.Recurring && len(c.DaysOfWeek) == 0 {
		return fmt.Errorf("model: recurring commitment %q needs at least one weekday", c.ID)
	}
	if !c.Recurring && len(c.SpecificDates) == 0 {
		return fmt.Errorf("model: one-off commitment %q needs at least one date", c.ID)
	}
	seen := make(map[time.Weekday]bool, len(c.DaysOfWeek))
	for _, d := range c.DaysOfWeek {
		if seen[d] {
			return fmt.Errorf("model: commitment %q repeats weekday %s", c.ID, d)
		}
		seen[d] = true
	}
	return nil
}
