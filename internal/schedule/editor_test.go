package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/sandeepkv93/studyflow/internal/model"
)

func setupEditor(t *testing.T, store EditStore) (*Editor, *model.StudyPlan) {
	t.Helper()
	plan := &model.StudyPlan{Date: wednesday, Sessions: []model.StudySession{
		session("T1", 1, "09:00", 1),
		session("T2", 1, "13:00", 1.5),
	}}
	editor := NewEditor(store, []*model.StudyPlan{plan}, []model.FixedCommitment{gymCommitment()}, testSettings())
	editor.now = func() time.Time { return time.Date(2024, 1, 9, 20, 0, 0, 0, time.UTC) }
	return editor, plan
}

func TestEditSessionTimeRoundTrip(t *testing.T) {
	editor, plan := setupEditor(t, &MemoryEditStore{})

	if err := editor.EditSessionTime(wednesday, "T1", 1, "11:30", 1); err != nil {
		t.Fatalf("edit failed: %v", err)
	}

	got := editor.EditedSession(plan.Sessions[0], wednesday)
	if got.StartTime != "11:30" || got.EndTime != "12:30" {
		t.Fatalf("projection mismatch: %s-%s", got.StartTime, got.EndTime)
	}
	// The base plan is untouched.
	if plan.Sessions[0].StartTime != "09:00" {
		t.Fatalf("edit mutated the base plan: %s", plan.Sessions[0].StartTime)
	}

	edits := editor.Edits()
	if len(edits) != 1 {
		t.Fatalf("expected one edit, got %d", len(edits))
	}
	edit := edits[0]
	if edit.OriginalStart != "09:00" || !edit.Temporary || edit.EditedAt.IsZero() {
		t.Fatalf("unexpected edit record: %+v", edit)
	}
}

func TestEditSessionTimeConflictLeavesLogUntouched(t *testing.T) {
	editor, _ := setupEditor(t, &MemoryEditStore{})

	// 09:30 + 1h collides with Gym 10:00-11:00.
	err := editor.EditSessionTime(wednesday, "T1", 1, "09:30", 1)
	var conflictErr *ConflictError
	if !errors.As(err, &conflictErr) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if conflictErr.Conflict.Kind != ConflictCommitment {
		t.Fatalf("expected commitment conflict, got %+v", conflictErr.Conflict)
	}
	if len(editor.Edits()) != 0 {
		t.Fatal("failed edit must not be recorded")
	}
}

func TestEditSessionTimeOnOffDayFails(t *testing.T) {
	plan := &model.StudyPlan{Date: model.Date("2024-01-13"), Sessions: []model.StudySession{session("T1", 1, "09:00", 1)}}
	editor := NewEditor(&MemoryEditStore{}, []*model.StudyPlan{plan}, nil, testSettings())

	err := editor.EditSessionTime(plan.Date, "T1", 1, "10:00", 1)
	var conflictErr *ConflictError
	if !errors.As(err, &conflictErr) || conflictErr.Conflict.Kind != ConflictWorkDay {
		t.Fatalf("expected work-day conflict on Saturday, got %v", err)
	}
}

func TestEditSessionTimeNotFound(t *testing.T) {
	editor, _ := setupEditor(t, &MemoryEditStore{})

	if err := editor.EditSessionTime(wednesday, "nope", 1, "11:00", 1); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if err := editor.EditSessionTime(model.Date("2024-01-11"), "T1", 1, "11:00", 1); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound for absent plan, got %v", err)
	}
}

func TestRepeatedEditReanchorsOriginalStart(t *testing.T) {
	editor, _ := setupEditor(t, &MemoryEditStore{})

	if err := editor.EditSessionTime(wednesday, "T1", 1, "11:30", 1); err != nil {
		t.Fatalf("first edit: %v", err)
	}
	if err := editor.EditSessionTime(wednesday, "T1", 1, "15:00", 1); err != nil {
		t.Fatalf("second edit: %v", err)
	}

	edits := editor.Edits()
	if len(edits) != 1 {
		t.Fatalf("edits for one key must collapse, got %d", len(edits))
	}
	// Original re-anchors to the immediately prior (edited) start.
	if edits[0].OriginalStart != "11:30" || edits[0].NewStart != "15:00" {
		t.Fatalf("unexpected anchor: %+v", edits[0])
	}
}

func TestRemoveEditRestoresOriginal(t *testing.T) {
	editor, plan := setupEditor(t, &MemoryEditStore{})

	if err := editor.EditSessionTime(wednesday, "T1", 1, "11:30", 1); err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	removed, err := editor.RemoveEdit(wednesday, "T1", 1)
	if !removed || err != nil {
		t.Fatalf("RemoveEdit should report true for an existing edit, got %v, %v", removed, err)
	}
	if removed, _ = editor.RemoveEdit(wednesday, "T1", 1); removed {
		t.Fatal("second RemoveEdit should report false")
	}

	got := editor.EditedSession(plan.Sessions[0], wednesday)
	if got.StartTime != "09:00" || got.EndTime != "10:00" {
		t.Fatalf("removal did not restore the original slot: %s-%s", got.StartTime, got.EndTime)
	}
}

func TestApplyEditsDoesNotMutateInput(t *testing.T) {
	editor, plan := setupEditor(t, &MemoryEditStore{})
	if err := editor.EditSessionTime(wednesday, "T2", 1, "16:00", 1.5); err != nil {
		t.Fatalf("edit failed: %v", err)
	}

	projected := editor.ApplyEdits([]model.StudyPlan{*plan})
	if projected[0].Sessions[1].StartTime != "16:00" {
		t.Fatalf("projection missing: %+v", projected[0].Sessions[1])
	}
	if plan.Sessions[1].StartTime != "13:00" {
		t.Fatalf("ApplyEdits mutated input: %+v", plan.Sessions[1])
	}
}

func TestEditedSessionsShiftConflictChecks(t *testing.T) {
	editor, _ := setupEditor(t, &MemoryEditStore{})

	// Move T2 from 13:00 to 15:00, then its old slot frees up and the new
	// one blocks.
	if err := editor.EditSessionTime(wednesday, "T2", 1, "15:00", 1.5); err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	if c := editor.CheckTimeConflict(wednesday, "13:00", 1, model.KeyOf("T1", 1)); c != nil {
		t.Fatalf("vacated slot should be free: %s", c.Reason)
	}
	c := editor.CheckTimeConflict(wednesday, "15:30", 1, model.KeyOf("T1", 1))
	if c == nil || c.Kind != ConflictSession {
		t.Fatalf("edited slot should block: %+v", c)
	}
}

func TestClearTemporaryEdits(t *testing.T) {
	store := &MemoryEditStore{}
	editor, _ := setupEditor(t, store)

	if err := editor.EditSessionTime(wednesday, "T1", 1, "11:30", 1); err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	if err := editor.ClearTemporaryEdits(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if len(editor.Edits()) != 0 {
		t.Fatal("temporary edits should be gone")
	}
	persisted, err := store.Load()
	if err != nil || len(persisted) != 0 {
		t.Fatalf("store should hold an empty log, got %v (%v)", persisted, err)
	}
}

func TestEditorReloadsPersistedEdits(t *testing.T) {
	store := &MemoryEditStore{}
	first, _ := setupEditor(t, store)
	if err := first.EditSessionTime(wednesday, "T1", 1, "11:30", 1); err != nil {
		t.Fatalf("edit failed: %v", err)
	}

	second, plan := setupEditor(t, store)
	got := second.EditedSession(plan.Sessions[0], wednesday)
	if got.StartTime != "11:30" {
		t.Fatalf("persisted edit not reloaded: %+v", got)
	}
}

type corruptStore struct{}

func (corruptStore) Load() ([]model.SessionTimeEdit, error) {
	return nil, errors.New("store: corrupt payload")
}

func (corruptStore) Save([]model.SessionTimeEdit) error { return nil }

func TestEditorToleratesCorruptStore(t *testing.T) {
	editor, _ := setupEditor(t, corruptStore{})
	if len(editor.Edits()) != 0 {
		t.Fatal("corrupt store should yield an empty log")
	}
	if err := editor.EditSessionTime(wednesday, "T1", 1, "11:30", 1); err != nil {
		t.Fatalf("editor should keep working after a bad load: %v", err)
	}
}

type flakySaveStore struct {
	MemoryEditStore
	failSaves bool
}

func (s *flakySaveStore) Save(edits []model.SessionTimeEdit) error {
	if s.failSaves {
		return errors.New("store: write failed")
	}
	return s.MemoryEditStore.Save(edits)
}

func TestRemoveEditSurfacesSaveFailure(t *testing.T) {
	store := &flakySaveStore{}
	editor, _ := setupEditor(t, store)
	if err := editor.EditSessionTime(wednesday, "T1", 1, "11:30", 1); err != nil {
		t.Fatalf("edit failed: %v", err)
	}

	store.failSaves = true
	removed, err := editor.RemoveEdit(wednesday, "T1", 1)
	if !removed {
		t.Fatal("removal of an existing edit should report true")
	}
	if err == nil {
		t.Fatal("failed save should surface an error")
	}
}
