package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidFrequency     = errors.New("model: invalid task frequency")
	ErrInvalidPreferredTime = errors.New("model: invalid preferred time of day")
)

type Frequency string

const (
	FrequencyDaily    Frequency = "daily"
	Frequency3xWeek   Frequency = "3x-week"
	FrequencyWeekly   Frequency = "weekly"
	FrequencyFlexible Frequency = "flexible"
)

func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, Frequency3xWeek, FrequencyWeekly, FrequencyFlexible:
		return true
	default:
		return false
	}
}

type PreferredTime string

const (
	PreferredMorning   PreferredTime = "morning"
	PreferredAfternoon PreferredTime = "afternoon"
	PreferredEvening   PreferredTime = "evening"
	PreferredAnytime   PreferredTime = "anytime"
)

func (p PreferredTime) IsValid() bool {
	switch p {
	case PreferredMorning, PreferredAfternoon, PreferredEvening, PreferredAnytime:
		return true
	default:
		return false
	}
}

// SchedulingPrefs are per-task knobs consumed by the plan generator.
type SchedulingPrefs struct {
	Frequency         Frequency
	PreferredTime     PreferredTime
	MinSessionHours   float64
	MaxSessionHours   float64
	OneSittingPerTask bool
}

type Task struct {
	ID             string
	Title          string
	EstimatedHours float64
	Deadline       *Date
	Important      bool
	Prefs          SchedulingPrefs
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("model: task title is required")
	}
	if t.EstimatedHours <= 0 {
		return fmt.Errorf("model: task %q estimated hours must be positive", t.ID)
	}
	if t.Deadline != nil && !t.Deadline.IsValid() {
		return fmt.Errorf("model: task %q deadline is malformed", t.ID)
	}
	if t.Prefs.Frequency != "" && !t.Prefs.Frequency.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidFrequency, t.Prefs.Frequency)
	}
	if t.Prefs.PreferredTime != "" && !t.Prefs.PreferredTime.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPreferredTime, t.Prefs.PreferredTime)
	}
	if t.Prefs.MinSessionHours < 0 || t.Prefs.MaxSessionHours < 0 {
		return fmt.Errorf("model: task %q session bounds must not be negative", t.ID)
	}
	if t.Prefs.MaxSessionHours > 0 && t.Prefs.MinSessionHours > t.Prefs.MaxSessionHours {
		return fmt.Errorf("model: task %q min session length exceeds max", t.ID)
	}
	return nil
}
