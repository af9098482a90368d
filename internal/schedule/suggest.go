package schedule

import "github.com/sandeepkv93/studyflow/internal/model"

const maxSuggestions = 3

// Suggest scans the day's study window at the configured step and returns
// up to three conflict-free start times ("HH:MM"). It is a pure function of
// the checker's snapshot; every returned candidate passes Check. Days that
// fail the work-day rule yield nothing, so the scan short-circuits.
func (c *Checker) Suggest(date model.Date, durationHours float64, exclude model.SessionKey) []string {
	if !c.settings.IsWorkDay(date.Weekday()) {
		return nil
	}

	durMinutes := model.HoursToMinutes(durationHours)
	lastStart := c.settings.WindowEndMinutes() - durMinutes
	step := c.settings.StepMinutes()

	var out []string
	for start := c.settings.WindowStartMinutes(); start <= lastStart; start += step {
		if c.Check(date, start, durationHours, exclude) != nil {
			continue
		}
		out = append(out, model.MinutesToTime(start))
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}

// firstFreeSlot is the forward-scan fallback used by redistribution: the
// earliest conflict-free start on date, honoring the weekend-overflow
// policy, or -1 when the whole window is blocked.
func (c *Checker) firstFreeSlot(date model.Date, durationHours float64, exclude model.SessionKey, allowOffDay bool) int {
	durMinutes := model.HoursToMinutes(durationHours)
	lastStart := c.settings.WindowEndMinutes() - durMinutes
	step := c.settings.StepMinutes()

	for start := c.settings.WindowStartMinutes(); start <= lastStart; start += step {
		if c.check(date, start, durationHours, exclude, allowOffDay) == nil {
			return start
		}
	}
	return -1
}
