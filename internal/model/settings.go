package model

import (
	"errors"
	"fmt"
	"time"
)

// Settings are the user-level scheduling constraints. Read-only to the
// schedule core.
type Settings struct {
	DailyAvailableHours   float64
	WorkDays              []time.Weekday
	StudyWindowStartHour  int
	StudyWindowEndHour    int
	MinSessionLengthMins  int
	SuggestionStepMinutes int
}

func DefaultSettings() Settings {
	return Settings{
		DailyAvailableHours:  4,
		WorkDays:             []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
		StudyWindowStartHour: 8,
		StudyWindowEndHour:   20,
		MinSessionLengthMins: 30,
	}
}

// WindowStartMinutes is the first schedulable minute of the day.
func (s Settings) WindowStartMinutes() int {
	return s.StudyWindowStartHour * 60
}

// WindowEndMinutes is the last schedulable minute of the day (exclusive end
// for session placement).
func (s Settings) WindowEndMinutes() int {
	return s.StudyWindowEndHour * 60
}

func (s Settings) IsWorkDay(day time.Weekday) bool {
	for _, d := range s.WorkDays {
		if d == day {
			return true
		}
	}
	return false
}

// StepMinutes is the suggestion scan granularity, defaulting to 30.
func (s Settings) StepMinutes() int {
	if s.SuggestionStepMinutes > 0 {
		return s.SuggestionStepMinutes
	}
	return 30
}

func (s Settings) Validate() error {
	if s.DailyAvailableHours <= 0 {
		return errors.New("model: daily available hours must be positive")
	}
	if len(s.WorkDays) == 0 {
		return errors.New("model: at least one work day is required")
	}
	if s.StudyWindowStartHour < 0 || s.StudyWindowEndHour > 24 {
		return fmt.Errorf("model: study window %d-%d is out of range", s.StudyWindowStartHour, s.StudyWindowEndHour)
	}
	if s.StudyWindowEndHour <= s.StudyWindowStartHour {
		return errors.New("model: study window must end after it starts")
	}
	if s.MinSessionLengthMins < 0 {
		return errors.New("model: minimum session length must not be negative")
	}
	return nil
}
