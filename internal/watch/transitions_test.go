package watch

import (
	"testing"
	"time"

	"github.com/sandeepkv93/studyflow/internal/model"
)

func testPlan() *model.StudyPlan {
	return &model.StudyPlan{
		Date: "2024-01-10",
		Sessions: []model.StudySession{
			{TaskID: "math", Number: 1, StartTime: "09:00", EndTime: "10:00", AllocatedHours: 1, Status: model.SessionScheduled},
			{TaskID: "bio", Number: 1, StartTime: "13:00", EndTime: "14:00", AllocatedHours: 1, Status: model.SessionCompleted},
		},
	}
}

func TestPlanAlarmsSkipsDoneSessions(t *testing.T) {
	alarms := PlanAlarms(testPlan(), time.UTC)
	if len(alarms) != 3 {
		t.Fatalf("expected start, end and day-end alarms, got %d", len(alarms))
	}
	if alarms[0].Kind != AlarmSessionStart || alarms[0].Key != model.KeyOf("math", 1) {
		t.Fatalf("unexpected first alarm: %+v", alarms[0])
	}
	wantStart := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	if !alarms[0].FireAt.Equal(wantStart) {
		t.Fatalf("start alarm at %v, want %v", alarms[0].FireAt, wantStart)
	}
	last := alarms[len(alarms)-1]
	if last.Kind != AlarmDayEnd || !last.FireAt.Equal(time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected day-end alarm: %+v", last)
	}
}

func TestApplyStartAndEndTransitions(t *testing.T) {
	plan := testPlan()
	key := model.KeyOf("math", 1)

	if !Apply(plan, Alarm{Date: plan.Date, Key: key, Kind: AlarmSessionStart}) {
		t.Fatal("start alarm should transition a scheduled session")
	}
	if got := plan.Session(key).Status; got != model.SessionInProgress {
		t.Fatalf("status after start = %s", got)
	}

	if !Apply(plan, Alarm{Date: plan.Date, Key: key, Kind: AlarmSessionEnd}) {
		t.Fatal("end alarm should transition an in-progress session")
	}
	if got := plan.Session(key).Status; got != model.SessionOverdue {
		t.Fatalf("status after end = %s", got)
	}
}

func TestApplyNeverRevertsCompleted(t *testing.T) {
	plan := testPlan()
	key := model.KeyOf("bio", 1)

	if Apply(plan, Alarm{Date: plan.Date, Key: key, Kind: AlarmSessionStart}) {
		t.Fatal("completed session must not go back to in-progress")
	}
	if Apply(plan, Alarm{Date: plan.Date, Key: key, Kind: AlarmSessionEnd}) {
		t.Fatal("completed session must not become overdue")
	}
	if got := plan.Session(key).Status; got != model.SessionCompleted {
		t.Fatalf("status changed to %s", got)
	}
}

func TestApplyDayEndSweepsPendingToMissed(t *testing.T) {
	plan := testPlan()
	plan.Sessions[0].Status = model.SessionOverdue

	if !Apply(plan, Alarm{Date: plan.Date, Kind: AlarmDayEnd}) {
		t.Fatal("day-end sweep should change the overdue session")
	}
	if got := plan.Sessions[0].Status; got != model.SessionMissed {
		t.Fatalf("overdue session became %s, want missed", got)
	}
	if got := plan.Sessions[1].Status; got != model.SessionCompleted {
		t.Fatalf("completed session became %s", got)
	}
}

func TestApplyIgnoresOtherDates(t *testing.T) {
	plan := testPlan()
	if Apply(plan, Alarm{Date: "2024-01-11", Key: model.KeyOf("math", 1), Kind: AlarmSessionStart}) {
		t.Fatal("alarm for another date must be ignored")
	}
}
