package schedule

import (
	"fmt"

	"github.com/sandeepkv93/studyflow/internal/model"
)

type ConflictKind string

const (
	ConflictWindow     ConflictKind = "window"
	ConflictWorkDay    ConflictKind = "work-day"
	ConflictSession    ConflictKind = "session"
	ConflictCommitment ConflictKind = "commitment"
)

// Conflict describes the first scheduling rule a candidate time violates.
// Reason is a human-readable string suitable for direct display.
type Conflict struct {
	Kind   ConflictKind
	Reason string
}

// Checker answers whether a candidate (date, start, duration) collides with
// the study window, work-day policy, other sessions, or commitments. It
// holds a snapshot of plans/commitments/settings owned by the caller and
// never mutates it; Check is idempotent and safe to call speculatively.
type Checker struct {
	plans       map[model.Date]*model.StudyPlan
	commitments []model.FixedCommitment
	settings    model.Settings
	editFor     func(date model.Date, key model.SessionKey) (model.SessionTimeEdit, bool)
}

func NewChecker(plans []*model.StudyPlan, commitments []model.FixedCommitment, settings model.Settings) *Checker {
	byDate := make(map[model.Date]*model.StudyPlan, len(plans))
	for _, p := range plans {
		byDate[p.Date] = p
	}
	return &Checker{
		plans:       byDate,
		commitments: commitments,
		settings:    settings,
	}
}

// WithEdits overlays a session-time edit lookup onto every other session
// considered during overlap checks. Used by the editor so pending edits
// shift the slots they occupy.
func (c *Checker) WithEdits(lookup func(model.Date, model.SessionKey) (model.SessionTimeEdit, bool)) *Checker {
	c.editFor = lookup
	return c
}

// Check validates a candidate start (minutes since midnight) for a session
// of the given duration on date, ignoring the session identified by exclude.
// Nil means no conflict. Checks run in precedence order and only the first
// violation is reported.
func (c *Checker) Check(date model.Date, startMinutes int, durationHours float64, exclude model.SessionKey) *Conflict {
	return c.check(date, startMinutes, durationHours, exclude, false)
}

func (c *Checker) check(date model.Date, startMinutes int, durationHours float64, exclude model.SessionKey, allowOffDay bool) *Conflict {
	endMinutes := startMinutes + model.HoursToMinutes(durationHours)
	winStart := c.settings.WindowStartMinutes()
	winEnd := c.settings.WindowEndMinutes()

	if startMinutes < winStart || endMinutes > winEnd {
		return &Conflict{
			Kind: ConflictWindow,
			Reason: fmt.Sprintf("time is outside the study window (%s-%s)",
				model.MinutesToTime(winStart), model.MinutesToTime(winEnd)),
		}
	}

	if !allowOffDay && !c.settings.IsWorkDay(date.Weekday()) {
		return &Conflict{
			Kind:   ConflictWorkDay,
			Reason: fmt.Sprintf("%s is not a work day", date.Weekday()),
		}
	}

	if plan, ok := c.plans[date]; ok {
		for _, other := range plan.Sessions {
			if other.Key() == exclude || other.Status.Done() {
				continue
			}
			otherStart, otherEnd := c.effectiveRange(date, other)
			if startMinutes < otherEnd && endMinutes > otherStart {
				return &Conflict{
					Kind: ConflictSession,
					Reason: fmt.Sprintf("overlaps session %s (%s-%s)", other.Key(),
						model.MinutesToTime(otherStart), model.MinutesToTime(otherEnd)),
				}
			}
		}
	}

	for _, commitment := range CommitmentsOn(date, c.commitments) {
		cStart := model.TimeToMinutes(commitment.StartTime)
		cEnd := model.TimeToMinutes(commitment.EndTime)
		if startMinutes < cEnd && endMinutes > cStart {
			return &Conflict{
				Kind: ConflictCommitment,
				Reason: fmt.Sprintf("overlaps %q (%s-%s)", commitment.Title,
					commitment.StartTime, commitment.EndTime),
			}
		}
	}

	return nil
}

// effectiveRange is the session's slot with any pending edit applied.
func (c *Checker) effectiveRange(date model.Date, s model.StudySession) (start, end int) {
	if c.editFor != nil {
		if edit, ok := c.editFor(date, s.Key()); ok {
			return model.TimeToMinutes(edit.NewStart), model.TimeToMinutes(edit.NewEnd)
		}
	}
	return s.StartMinutes(), s.EndMinutes()
}
