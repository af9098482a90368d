package schedule

import (
	"sort"

	"github.com/sandeepkv93/studyflow/internal/model"
)

const defaultMaxSessionHours = 2

// GeneratePlans allocates every task into study sessions across the next
// `days` dates starting at from. Deadlined and important work is placed
// first; each day respects the daily available hours and every slot is
// cleared through the conflict checker, so generated sessions never collide
// with commitments or each other.
func GeneratePlans(tasks []model.Task, commitments []model.FixedCommitment, settings model.Settings, from model.Date, days int) []*model.StudyPlan {
	ordered := make([]model.Task, len(tasks))
	copy(ordered, tasks)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.Important != b.Important {
			return a.Important
		}
		ad := deadlineOf(&a)
		bd := deadlineOf(&b)
		if ad != bd {
			if ad == "" {
				return false
			}
			if bd == "" {
				return true
			}
			return ad.Before(bd)
		}
		return a.ID < b.ID
	})

	plans := make([]*model.StudyPlan, 0, days)
	byDate := make(map[model.Date]*model.StudyPlan, days)
	for offset := 0; offset < days; offset++ {
		date := from.AddDays(offset)
		plan := &model.StudyPlan{Date: date, AvailableHours: settings.DailyAvailableHours}
		plans = append(plans, plan)
		byDate[date] = plan
	}

	for _, task := range ordered {
		allocateTask(task, plans, byDate, commitments, settings)
	}
	for _, plan := range plans {
		plan.Recalculate(settings)
	}
	return plans
}

func allocateTask(task model.Task, plans []*model.StudyPlan, byDate map[model.Date]*model.StudyPlan, commitments []model.FixedCommitment, settings model.Settings) {
	remaining := task.EstimatedHours
	number := 1

	for _, plan := range plans {
		if remaining <= 0 {
			break
		}
		if task.Deadline != nil && task.Deadline.Before(plan.Date) {
			break
		}
		if !settings.IsWorkDay(plan.Date.Weekday()) {
			continue
		}

		budget := settings.DailyAvailableHours - plan.PlannedHours()
		if budget <= 0 {
			continue
		}

		length := sessionLength(task, remaining, budget, settings)
		if length <= 0 {
			continue
		}

		checker := NewChecker(plans, commitments, settings)
		start := scanFrom(task.Prefs.PreferredTime, settings)
		slot := -1
		for candidate := start; candidate <= settings.WindowEndMinutes()-model.HoursToMinutes(length); candidate += settings.StepMinutes() {
			if checker.Check(plan.Date, candidate, length, "") == nil {
				slot = candidate
				break
			}
		}
		if slot < 0 {
			continue
		}

		plan.Sessions = append(plan.Sessions, model.StudySession{
			TaskID:         task.ID,
			Number:         number,
			StartTime:      model.MinutesToTime(slot),
			EndTime:        model.MinutesToTime(slot + model.HoursToMinutes(length)),
			AllocatedHours: length,
			Status:         model.SessionScheduled,
		})
		number++
		remaining -= length
	}
}

// sessionLength clamps one sitting of the task between the user minimum,
// the task's own bounds, the day budget, and the remaining estimate.
func sessionLength(task model.Task, remaining, budget float64, settings model.Settings) float64 {
	if task.Prefs.OneSittingPerTask {
		if remaining > budget {
			return 0
		}
		return remaining
	}

	length := defaultMaxSessionHours
	maxHours := task.Prefs.MaxSessionHours
	if maxHours <= 0 {
		maxHours = float64(length)
	}

	out := maxHours
	if out > remaining {
		out = remaining
	}
	if out > budget {
		out = budget
	}

	minHours := float64(settings.MinSessionLengthMins) / 60
	if task.Prefs.MinSessionHours > minHours {
		minHours = task.Prefs.MinSessionHours
	}
	if out < minHours && remaining >= minHours {
		return 0
	}
	return out
}

func scanFrom(pref model.PreferredTime, settings model.Settings) int {
	start := settings.WindowStartMinutes()
	switch pref {
	case model.PreferredAfternoon:
		if noon := 12 * 60; noon > start {
			return noon
		}
	case model.PreferredEvening:
		if evening := 17 * 60; evening > start {
			return evening
		}
	}
	return start
}
