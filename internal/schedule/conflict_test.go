package schedule

import (
	"strings"
	"testing"
	"time"

	"github.com/sandeepkv93/studyflow/internal/model"
)

func testSettings() model.Settings {
	return model.Settings{
		DailyAvailableHours:  4,
		WorkDays:             []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
		StudyWindowStartHour: 8,
		StudyWindowEndHour:   20,
		MinSessionLengthMins: 30,
	}
}

func session(taskID string, number int, start string, hours float64) model.StudySession {
	startMin := model.TimeToMinutes(start)
	return model.StudySession{
		TaskID:         taskID,
		Number:         number,
		StartTime:      start,
		EndTime:        model.MinutesToTime(startMin + model.HoursToMinutes(hours)),
		AllocatedHours: hours,
		Status:         model.SessionScheduled,
	}
}

func gymCommitment() model.FixedCommitment {
	return model.FixedCommitment{
		ID:            "gym",
		Title:         "Gym",
		Type:          model.CommitmentOther,
		StartTime:     "10:00",
		EndTime:       "11:00",
		SpecificDates: []model.Date{"2024-01-10"},
	}
}

const wednesday = model.Date("2024-01-10")

func TestCheckFreeSlotHasNoConflict(t *testing.T) {
	plan := &model.StudyPlan{Date: wednesday, Sessions: []model.StudySession{session("t1", 1, "09:00", 1)}}
	checker := NewChecker([]*model.StudyPlan{plan}, nil, testSettings())

	// A session checked against its own slot, with itself excluded, is free.
	if c := checker.Check(wednesday, model.TimeToMinutes("09:00"), 1, model.KeyOf("t1", 1)); c != nil {
		t.Fatalf("own slot reported conflict: %s", c.Reason)
	}
	if c := checker.Check(wednesday, model.TimeToMinutes("14:00"), 1, ""); c != nil {
		t.Fatalf("free afternoon reported conflict: %s", c.Reason)
	}
}

func TestCheckWindowPrecedence(t *testing.T) {
	// Fully booked day: the window violation still wins.
	plan := &model.StudyPlan{Date: wednesday, Sessions: []model.StudySession{session("t1", 1, "08:00", 12)}}
	checker := NewChecker([]*model.StudyPlan{plan}, []model.FixedCommitment{gymCommitment()}, testSettings())

	early := checker.Check(wednesday, model.TimeToMinutes("07:00"), 1, "")
	if early == nil || early.Kind != ConflictWindow {
		t.Fatalf("expected window conflict before 08:00, got %+v", early)
	}
	late := checker.Check(wednesday, model.TimeToMinutes("19:30"), 1, "")
	if late == nil || late.Kind != ConflictWindow {
		t.Fatalf("expected window conflict past 20:00, got %+v", late)
	}
}

func TestCheckWorkDay(t *testing.T) {
	checker := NewChecker(nil, nil, testSettings())
	saturday := model.Date("2024-01-13")

	c := checker.Check(saturday, model.TimeToMinutes("10:00"), 1, "")
	if c == nil || c.Kind != ConflictWorkDay {
		t.Fatalf("expected work-day conflict on Saturday, got %+v", c)
	}
	if !strings.Contains(c.Reason, "not a work day") {
		t.Fatalf("unexpected reason: %q", c.Reason)
	}
}

func TestCheckSessionOverlapNamesBlocker(t *testing.T) {
	plan := &model.StudyPlan{Date: wednesday, Sessions: []model.StudySession{
		session("a", 1, "09:00", 1),
		session("b", 1, "11:00", 1),
	}}
	checker := NewChecker([]*model.StudyPlan{plan}, nil, testSettings())

	// Moving a into b's exact slot, excluding a, must name b.
	c := checker.Check(wednesday, model.TimeToMinutes("11:00"), 1, model.KeyOf("a", 1))
	if c == nil || c.Kind != ConflictSession {
		t.Fatalf("expected session conflict, got %+v", c)
	}
	if !strings.Contains(c.Reason, "b#1") {
		t.Fatalf("conflict should name b#1: %q", c.Reason)
	}
}

func TestCheckIgnoresDoneSessions(t *testing.T) {
	done := session("a", 1, "09:00", 1)
	done.Status = model.SessionCompleted
	skipped := session("b", 1, "10:00", 1)
	skipped.Status = model.SessionSkipped
	plan := &model.StudyPlan{Date: wednesday, Sessions: []model.StudySession{done, skipped}}
	checker := NewChecker([]*model.StudyPlan{plan}, nil, testSettings())

	if c := checker.Check(wednesday, model.TimeToMinutes("09:00"), 2, ""); c != nil {
		t.Fatalf("done/skipped sessions should not block: %s", c.Reason)
	}
}

func TestCheckCommitmentOverlap(t *testing.T) {
	plan := &model.StudyPlan{Date: wednesday, Sessions: []model.StudySession{session("T1", 1, "09:00", 1)}}
	checker := NewChecker([]*model.StudyPlan{plan}, []model.FixedCommitment{gymCommitment()}, testSettings())

	// 09:30 + 1h ends 10:30, overlapping Gym 10:00-11:00.
	c := checker.Check(wednesday, model.TimeToMinutes("09:30"), 1, model.KeyOf("T1", 1))
	if c == nil || c.Kind != ConflictCommitment {
		t.Fatalf("expected commitment conflict, got %+v", c)
	}
	if !strings.Contains(c.Reason, "Gym") {
		t.Fatalf("conflict should name Gym: %q", c.Reason)
	}

	// Half-open intervals: ending exactly at the commitment start is fine.
	if c := checker.Check(wednesday, model.TimeToMinutes("09:00"), 1, model.KeyOf("T1", 1)); c != nil {
		t.Fatalf("back-to-back with commitment should be free: %s", c.Reason)
	}
}

func TestCheckIsIdempotent(t *testing.T) {
	plan := &model.StudyPlan{Date: wednesday, Sessions: []model.StudySession{session("a", 1, "09:00", 1)}}
	checker := NewChecker([]*model.StudyPlan{plan}, []model.FixedCommitment{gymCommitment()}, testSettings())

	first := checker.Check(wednesday, model.TimeToMinutes("09:30"), 1, "")
	second := checker.Check(wednesday, model.TimeToMinutes("09:30"), 1, "")
	if first == nil || second == nil || *first != *second {
		t.Fatalf("repeated checks disagree: %+v vs %+v", first, second)
	}
}

func TestSuggestCandidatesAreConflictFree(t *testing.T) {
	plan := &model.StudyPlan{Date: wednesday, Sessions: []model.StudySession{
		session("a", 1, "08:00", 2),
		session("b", 1, "11:00", 1),
	}}
	checker := NewChecker([]*model.StudyPlan{plan}, []model.FixedCommitment{gymCommitment()}, testSettings())

	got := checker.Suggest(wednesday, 1, "")
	if len(got) == 0 || len(got) > 3 {
		t.Fatalf("expected 1-3 suggestions, got %v", got)
	}
	for _, clock := range got {
		if c := checker.Check(wednesday, model.TimeToMinutes(clock), 1, ""); c != nil {
			t.Fatalf("suggestion %s is not conflict-free: %s", clock, c.Reason)
		}
	}
}

func TestSuggestShortCircuitsOffDays(t *testing.T) {
	checker := NewChecker(nil, nil, testSettings())
	if got := checker.Suggest(model.Date("2024-01-13"), 1, ""); got != nil {
		t.Fatalf("Saturday should yield no suggestions, got %v", got)
	}
}

func TestSuggestEmptyWhenDayFull(t *testing.T) {
	plan := &model.StudyPlan{Date: wednesday, Sessions: []model.StudySession{session("a", 1, "08:00", 12)}}
	checker := NewChecker([]*model.StudyPlan{plan}, nil, testSettings())
	if got := checker.Suggest(wednesday, 1, ""); len(got) != 0 {
		t.Fatalf("fully booked day should yield no suggestions, got %v", got)
	}
}
