package schedule

import (
	"testing"
	"time"

	"github.com/sandeepkv93/studyflow/internal/model"
)

func TestGeneratePlansAllocatesEstimate(t *testing.T) {
	monday := model.Date("2024-01-08")
	tasks := []model.Task{{ID: "T1", Title: "Thesis draft", EstimatedHours: 5}}

	plans := GeneratePlans(tasks, nil, testSettings(), monday, 7)
	if len(plans) != 7 {
		t.Fatalf("expected 7 plans, got %d", len(plans))
	}

	total := 0.0
	numbers := make(map[int]bool)
	for _, plan := range plans {
		for _, s := range plan.Sessions {
			if s.TaskID != "T1" {
				t.Fatalf("unexpected task in plan: %+v", s)
			}
			if numbers[s.Number] {
				t.Fatalf("duplicate session number %d", s.Number)
			}
			numbers[s.Number] = true
			total += s.AllocatedHours
			if err := s.Validate(); err != nil {
				t.Fatalf("generated session invalid: %v", err)
			}
		}
	}
	if total != 5 {
		t.Fatalf("allocated %v hours, want 5", total)
	}
}

func TestGeneratePlansSkipsOffDaysAndCommitments(t *testing.T) {
	monday := model.Date("2024-01-08")
	lecture := model.FixedCommitment{
		ID:         "lecture",
		Title:      "Lecture",
		Type:       model.CommitmentClass,
		StartTime:  "08:00",
		EndTime:    "10:00",
		Recurring:  true,
		DaysOfWeek: []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
	}
	tasks := []model.Task{{ID: "T1", Title: "Problem sets", EstimatedHours: 4}}

	plans := GeneratePlans(tasks, []model.FixedCommitment{lecture}, testSettings(), monday, 7)
	checker := NewChecker(plans, []model.FixedCommitment{lecture}, testSettings())
	for _, plan := range plans {
		if !testSettings().IsWorkDay(plan.Date.Weekday()) && len(plan.Sessions) > 0 {
			t.Fatalf("session generated on off day %s", plan.Date)
		}
		for _, s := range plan.Sessions {
			if c := checker.Check(plan.Date, s.StartMinutes(), s.AllocatedHours, s.Key()); c != nil {
				t.Fatalf("generated session conflicts: %s", c.Reason)
			}
		}
	}
}

func TestGeneratePlansOneSitting(t *testing.T) {
	monday := model.Date("2024-01-08")
	tasks := []model.Task{{
		ID:             "T1",
		Title:          "Mock exam",
		EstimatedHours: 3,
		Prefs:          model.SchedulingPrefs{OneSittingPerTask: true},
	}}

	plans := GeneratePlans(tasks, nil, testSettings(), monday, 7)
	count := 0
	for _, plan := range plans {
		for _, s := range plan.Sessions {
			count++
			if s.AllocatedHours != 3 {
				t.Fatalf("one-sitting task split: %+v", s)
			}
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one session, got %d", count)
	}
}

func TestGeneratePlansHonorsDeadline(t *testing.T) {
	monday := model.Date("2024-01-08")
	deadline := model.Date("2024-01-09")
	tasks := []model.Task{{ID: "T1", Title: "Abstract", EstimatedHours: 8, Deadline: &deadline}}

	plans := GeneratePlans(tasks, nil, testSettings(), monday, 7)
	for _, plan := range plans {
		if deadline.Before(plan.Date) && len(plan.Sessions) > 0 {
			t.Fatalf("session scheduled past the deadline on %s", plan.Date)
		}
	}
}

func TestGeneratePlansPreferredTime(t *testing.T) {
	monday := model.Date("2024-01-08")
	tasks := []model.Task{{
		ID:             "T1",
		Title:          "Evening review",
		EstimatedHours: 1,
		Prefs:          model.SchedulingPrefs{PreferredTime: model.PreferredEvening},
	}}

	plans := GeneratePlans(tasks, nil, testSettings(), monday, 3)
	for _, plan := range plans {
		for _, s := range plan.Sessions {
			if s.StartMinutes() < 17*60 {
				t.Fatalf("evening task scheduled at %s", s.StartTime)
			}
		}
	}
}
