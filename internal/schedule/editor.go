package schedule

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/sandeepkv93/studyflow/internal/model"
)

var ErrSessionNotFound = errors.New("schedule: session not found")

// ConflictError is returned by EditSessionTime when the requested time
// violates a scheduling rule. The message is the checker's reason and is
// meant for direct user display.
type ConflictError struct {
	Conflict Conflict
}

func (e *ConflictError) Error() string {
	return e.Conflict.Reason
}

// EditStore persists the full edit log: read-all at construction,
// write-all after every mutation. Any durable keyed store works.
type EditStore interface {
	Load() ([]model.SessionTimeEdit, error)
	Save(edits []model.SessionTimeEdit) error
}

// MemoryEditStore is the in-process store used by tests and ephemeral runs.
type MemoryEditStore struct {
	edits []model.SessionTimeEdit
}

func (s *MemoryEditStore) Load() ([]model.SessionTimeEdit, error) {
	out := make([]model.SessionTimeEdit, len(s.edits))
	copy(out, s.edits)
	return out, nil
}

func (s *MemoryEditStore) Save(edits []model.SessionTimeEdit) error {
	s.edits = make([]model.SessionTimeEdit, len(edits))
	copy(s.edits, edits)
	return nil
}

type editKey struct {
	date model.Date
	key  model.SessionKey
}

// Editor owns the session-time edit log for the lifetime of one plan view.
// Edits are layered onto the base plan without mutating it; multiple edits
// of the same session collapse to the latest. All operations are
// synchronous; the caller owns snapshot consistency between a check and
// the commit that follows it.
type Editor struct {
	store   EditStore
	checker *Checker
	plans   map[model.Date]*model.StudyPlan
	edits   map[editKey]model.SessionTimeEdit
	now     func() time.Time
}

// NewEditor loads the persisted edit log and binds the editor to the
// caller's plan snapshot. An unreadable store is discarded in favor of an
// empty log: edits are derived state and never worth crashing over.
func NewEditor(store EditStore, plans []*model.StudyPlan, commitments []model.FixedCommitment, settings model.Settings) *Editor {
	byDate := make(map[model.Date]*model.StudyPlan, len(plans))
	for _, p := range plans {
		byDate[p.Date] = p
	}

	e := &Editor{
		store: store,
		plans: byDate,
		edits: make(map[editKey]model.SessionTimeEdit),
		now:   time.Now,
	}
	e.checker = NewChecker(plans, commitments, settings).WithEdits(e.editFor)

	if store != nil {
		if loaded, err := store.Load(); err == nil {
			for _, edit := range loaded {
				if edit.Validate() != nil {
					continue
				}
				e.edits[editKey{date: edit.PlanDate, key: edit.Key()}] = edit
			}
		}
	}
	return e
}

// Checker exposes the conflict checker bound to this editor's edit log.
func (e *Editor) Checker() *Checker {
	return e.checker
}

// Rebind points the editor at a new plan snapshot, keeping the edit log.
// Used after redistribution, which grows and reorders the plan set.
func (e *Editor) Rebind(plans []*model.StudyPlan, commitments []model.FixedCommitment, settings model.Settings) {
	byDate := make(map[model.Date]*model.StudyPlan, len(plans))
	for _, p := range plans {
		byDate[p.Date] = p
	}
	e.plans = byDate
	e.checker = NewChecker(plans, commitments, settings).WithEdits(e.editFor)
}

// CheckTimeConflict validates a prospective start time without committing
// anything.
func (e *Editor) CheckTimeConflict(date model.Date, newStart string, durationHours float64, exclude model.SessionKey) *Conflict {
	return e.checker.Check(date, model.TimeToMinutes(newStart), durationHours, exclude)
}

// EditSessionTime moves a session to a new start time. The move is
// re-validated first; on conflict the log is untouched and the returned
// error carries the checker's reason. On success the edit is upserted,
// marked temporary, and the whole log is persisted.
func (e *Editor) EditSessionTime(date model.Date, taskID string, number int, newStart string, durationHours float64) error {
	key := model.KeyOf(taskID, number)

	plan, ok := e.plans[date]
	if !ok {
		return fmt.Errorf("%w: no plan for %s", ErrSessionNotFound, date)
	}
	session := plan.Session(key)
	if session == nil {
		return fmt.Errorf("%w: %s on %s", ErrSessionNotFound, key, date)
	}

	startMinutes := model.TimeToMinutes(newStart)
	if startMinutes < 0 {
		return fmt.Errorf("schedule: new start time %q is malformed", newStart)
	}
	if conflict := e.checker.Check(date, startMinutes, durationHours, key); conflict != nil {
		return &ConflictError{Conflict: *conflict}
	}

	// The audit anchor is the session's current start, edits included, so
	// a replaced edit re-anchors to the immediately prior time.
	current := e.EditedSession(*session, date)

	e.edits[editKey{date: date, key: key}] = model.SessionTimeEdit{
		PlanDate:      date,
		TaskID:        taskID,
		SessionNumber: number,
		OriginalStart: current.StartTime,
		NewStart:      newStart,
		NewEnd:        model.MinutesToTime(startMinutes + model.HoursToMinutes(durationHours)),
		EditedAt:      e.now(),
		Temporary:     true,
	}
	return e.persist()
}

// EditedSession projects the matching edit onto a copy of the session.
// The input is returned unchanged when no edit exists.
func (e *Editor) EditedSession(session model.StudySession, date model.Date) model.StudySession {
	edit, ok := e.edits[editKey{date: date, key: session.Key()}]
	if !ok {
		return session
	}
	session.StartTime = edit.NewStart
	session.EndTime = edit.NewEnd
	return session
}

// ApplyEdits maps every session of every plan through EditedSession. Input
// plans are not mutated.
func (e *Editor) ApplyEdits(plans []model.StudyPlan) []model.StudyPlan {
	out := make([]model.StudyPlan, len(plans))
	for i, plan := range plans {
		projected := plan
		projected.Sessions = make([]model.StudySession, len(plan.Sessions))
		for j, session := range plan.Sessions {
			projected.Sessions[j] = e.EditedSession(session, plan.Date)
		}
		out[i] = projected
	}
	return out
}

// RemoveEdit deletes the edit for one session key and persists. Reports
// whether an edit existed; a save failure is returned alongside.
func (e *Editor) RemoveEdit(date model.Date, taskID string, number int) (bool, error) {
	k := editKey{date: date, key: model.KeyOf(taskID, number)}
	if _, ok := e.edits[k]; !ok {
		return false, nil
	}
	delete(e.edits, k)
	return true, e.persist()
}

// ClearTemporaryEdits drops every edit flagged temporary. Run on plan
// regeneration, which invalidates the slots the edits pointed at.
func (e *Editor) ClearTemporaryEdits() error {
	for k, edit := range e.edits {
		if edit.Temporary {
			delete(e.edits, k)
		}
	}
	return e.persist()
}

// Edits returns a snapshot of the log, ordered by plan date then session
// key. Mutating the returned slice does not affect the editor.
func (e *Editor) Edits() []model.SessionTimeEdit {
	out := make([]model.SessionTimeEdit, 0, len(e.edits))
	for _, edit := range e.edits {
		out = append(out, edit)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PlanDate != out[j].PlanDate {
			return out[i].PlanDate.Before(out[j].PlanDate)
		}
		return out[i].Key() < out[j].Key()
	})
	return out
}

func (e *Editor) editFor(date model.Date, key model.SessionKey) (model.SessionTimeEdit, bool) {
	edit, ok := e.edits[editKey{date: date, key: key}]
	return edit, ok
}

func (e *Editor) persist() error {
	if e.store == nil {
		return nil
	}
	if err := e.store.Save(e.Edits()); err != nil {
		return fmt.Errorf("schedule: persist edit log: %w", err)
	}
	return nil
}
