package schedule

import (
	"sort"
	"time"

	"github.com/sandeepkv93/studyflow/internal/model"
)

// CommitmentsOn resolves the commitments in effect on a date. Deleted
// occurrences are dropped, recurring commitments match on weekday, one-off
// commitments match on their date list, and per-date modifications are
// overlaid field by field. The result is sorted by start time so callers
// and tests see a stable order.
func CommitmentsOn(date model.Date, commitments []model.FixedCommitment) []model.FixedCommitment {
	out := make([]model.FixedCommitment, 0, len(commitments))
	weekday := date.Weekday()

	for _, c := range commitments {
		if containsDate(c.DeletedOccurrences, date) {
			continue
		}
		if c.Recurring {
			if !containsWeekday(c.DaysOfWeek, weekday) {
				continue
			}
		} else if !containsDate(c.SpecificDates, date) {
			continue
		}
		out = append(out, overlayOccurrence(c, date))
	}

	sort.SliceStable(out, func(i, j int) bool {
		return model.TimeToMinutes(out[i].StartTime) < model.TimeToMinutes(out[j].StartTime)
	})
	return out
}

func overlayOccurrence(c model.FixedCommitment, date model.Date) model.FixedCommitment {
	override, ok := c.ModifiedOccurrences[date]
	if !ok {
		return c
	}
	if override.Title != nil {
		c.Title = *override.Title
	}
	if override.StartTime != nil {
		c.StartTime = *override.StartTime
	}
	if override.EndTime != nil {
		c.EndTime = *override.EndTime
	}
	if override.Type != nil {
		c.Type = *override.Type
	}
	return c
}

func containsDate(dates []model.Date, date model.Date) bool {
	for _, d := range dates {
		if d == date {
			return true
		}
	}
	return false
}

func containsWeekday(days []time.Weekday, day time.Weekday) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}
