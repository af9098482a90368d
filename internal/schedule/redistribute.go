package schedule

import (
	"container/heap"
	"fmt"
	"sort"
	"time"

	"github.com/sandeepkv93/studyflow/internal/model"
)

const DefaultRedistributionDays = 14

// Options control a redistribution run.
type Options struct {
	PrioritizeMissed     bool
	RespectDailyLimits   bool
	AllowWeekendOverflow bool
	MaxDays              int
}

type FailedSession struct {
	Date    model.Date
	Session model.StudySession
	Reason  string
}

// Result is the mixed outcome of one bulk run: some sessions moved, some
// did not. Callers inspect Failed individually.
type Result struct {
	Moved            int
	Failed           []FailedSession
	ConflictsAvoided int
}

type missedRef struct {
	date    model.Date
	session model.StudySession
	task    *model.Task
}

// urgencyQueue orders missed sessions most-urgent first: important tasks,
// then nearest deadline, then earliest missed date.
type urgencyQueue []missedRef

func (q urgencyQueue) Len() int { return len(q) }

func (q urgencyQueue) Less(i, j int) bool {
	a, b := q[i], q[j]
	aImportant := a.task != nil && a.task.Important
	bImportant := b.task != nil && b.task.Important
	if aImportant != bImportant {
		return aImportant
	}
	aDeadline := deadlineOf(a.task)
	bDeadline := deadlineOf(b.task)
	if aDeadline != bDeadline {
		if aDeadline == "" {
			return false
		}
		if bDeadline == "" {
			return true
		}
		return aDeadline.Before(bDeadline)
	}
	return a.date.Before(b.date)
}

func (q urgencyQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *urgencyQueue) Push(x any) { *q = append(*q, x.(missedRef)) }

func (q *urgencyQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

func deadlineOf(t *model.Task) model.Date {
	if t == nil || t.Deadline == nil {
		return ""
	}
	return *t.Deadline
}

// Redistribute relocates every missed session onto the first legal slot in
// the window (from+1 .. from+MaxDays), mutating the caller-owned plans in
// place and creating plans for in-window dates that have none. The returned
// slice is the full plan set sorted by date. Sessions that cannot be placed
// are reported in Result.Failed and keep their missed status.
func Redistribute(plans []*model.StudyPlan, tasks []model.Task, commitments []model.FixedCommitment, settings model.Settings, from model.Date, opts Options) ([]*model.StudyPlan, Result) {
	window := opts.MaxDays
	if window <= 0 {
		window = DefaultRedistributionDays
	}

	byDate := make(map[model.Date]*model.StudyPlan, len(plans))
	for _, p := range plans {
		byDate[p.Date] = p
	}
	taskByID := make(map[string]*model.Task, len(tasks))
	for i := range tasks {
		taskByID[tasks[i].ID] = &tasks[i]
	}

	queue := collectMissed(plans, taskByID, opts.PrioritizeMissed)

	var result Result
	for len(queue) > 0 {
		ref := heap.Pop(&queue).(missedRef)

		target, start, avoided := findSlot(ref, byDate, &plans, commitments, settings, from, window, opts)
		if target == nil {
			result.Failed = append(result.Failed, FailedSession{
				Date:    ref.date,
				Session: ref.session,
				Reason:  fmt.Sprintf("no available slot within %d days", window),
			})
			continue
		}

		place(ref, target, start, byDate[ref.date], settings)
		result.Moved++
		if avoided {
			result.ConflictsAvoided++
		}
	}

	sort.Slice(plans, func(i, j int) bool { return plans[i].Date.Before(plans[j].Date) })
	return plans, result
}

func collectMissed(plans []*model.StudyPlan, taskByID map[string]*model.Task, prioritize bool) urgencyQueue {
	queue := make(urgencyQueue, 0)
	for _, plan := range plans {
		for _, session := range plan.Sessions {
			if session.Status != model.SessionMissed {
				continue
			}
			queue = append(queue, missedRef{
				date:    plan.Date,
				session: session,
				task:    taskByID[session.TaskID],
			})
		}
	}
	if prioritize {
		heap.Init(&queue)
	} else {
		// Stable order without urgency ranking: plan date, then key.
		sort.SliceStable(queue, func(i, j int) bool {
			if queue[i].date != queue[j].date {
				return queue[i].date.Before(queue[j].date)
			}
			return queue[i].session.Key() < queue[j].session.Key()
		})
	}
	return queue
}

// findSlot scans forward day by day for the first legal placement. The
// first-choice slot on each eligible day is the session's own clock time;
// falling back to a scan counts as an avoided conflict.
func findSlot(ref missedRef, byDate map[model.Date]*model.StudyPlan, plans *[]*model.StudyPlan, commitments []model.FixedCommitment, settings model.Settings, from model.Date, window int, opts Options) (target *model.StudyPlan, start int, avoided bool) {
	duration := ref.session.AllocatedHours

	for offset := 1; offset <= window; offset++ {
		date := from.AddDays(offset)
		if !settings.IsWorkDay(date.Weekday()) && !opts.AllowWeekendOverflow {
			continue
		}

		plan := byDate[date]
		if opts.RespectDailyLimits {
			committed := commitmentHours(date, commitments)
			if plan != nil {
				committed += plan.PlannedHours()
			}
			if committed+duration > settings.DailyAvailableHours {
				continue
			}
		}

		checker := NewChecker(*plans, commitments, settings)
		slot := -1
		fallback := false
		firstChoice := ref.session.StartMinutes()
		if firstChoice >= 0 && checker.check(date, firstChoice, duration, "", opts.AllowWeekendOverflow) == nil {
			slot = firstChoice
		} else if free := checker.firstFreeSlot(date, duration, "", opts.AllowWeekendOverflow); free >= 0 {
			slot, fallback = free, true
		}
		if slot < 0 {
			continue
		}

		// Materialize the day's plan only once a slot is confirmed, so a
		// failed scan leaves the caller's snapshot untouched.
		if plan == nil {
			plan = &model.StudyPlan{Date: date, AvailableHours: settings.DailyAvailableHours}
			byDate[date] = plan
			*plans = append(*plans, plan)
		}
		return plan, slot, fallback
	}
	return nil, 0, false
}

// place supersedes the missed slot and writes the session into the target
// plan at the new start.
func place(ref missedRef, target *model.StudyPlan, start int, source *model.StudyPlan, settings model.Settings) {
	moved := ref.session
	// Session identity is unique per task within one plan; renumber when
	// the target day already holds a session of the same task.
	for target.Session(moved.Key()) != nil {
		moved.Number++
	}
	moved.StartTime = model.MinutesToTime(start)
	moved.EndTime = model.MinutesToTime(start + model.HoursToMinutes(moved.AllocatedHours))
	moved.Status = model.SessionScheduled
	moved.OriginalDate = ref.date
	moved.OriginalTime = ref.session.StartTime
	moved.History = append(moved.History, model.Reschedule{
		FromDate: ref.date,
		FromTime: ref.session.StartTime,
		ToDate:   target.Date,
		ToTime:   moved.StartTime,
		At:       time.Now(),
		Reason:   "redistributed missed session",
	})
	target.Sessions = append(target.Sessions, moved)
	target.Recalculate(settings)

	if source != nil {
		if old := source.Session(ref.session.Key()); old != nil {
			old.Status = model.SessionRescheduled
		}
		source.Recalculate(settings)
	}
}

func commitmentHours(date model.Date, commitments []model.FixedCommitment) float64 {
	total := 0.0
	for _, c := range CommitmentsOn(date, commitments) {
		minutes := model.TimeToMinutes(c.EndTime) - model.TimeToMinutes(c.StartTime)
		if minutes > 0 {
			total += float64(minutes) / 60
		}
	}
	return total
}
