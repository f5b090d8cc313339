package planning

import (
	"testing"
	"time"

	"studioplan/internal/domain/project"
	"studioplan/internal/domain/stage"
)

func mustParse(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("parse %s: %v", s, err)
	}
	return ts
}

func TestEventForFreeFormTask(t *testing.T) {
	if _, ok := EventFor(Entry{StageIndex: 1, TaskType: "internal meeting"}); ok {
		t.Fatalf("free-form task must not produce a completion event")
	}
}

func TestApplyTaskCompletedIdempotent(t *testing.T) {
	p := project.Normalize(project.Project{ID: "p1"})
	name := stage.Definitions[0].Items[2]
	ev := TaskCompleted{ProjectID: "p1", StageID: 1, TaskName: name}

	after, changed := ApplyTaskCompleted(p, ev)
	if !changed {
		t.Fatalf("first apply should change the project")
	}
	if !after.StageData[1].CheckedItems[2] {
		t.Fatalf("item not checked after apply")
	}

	again, changed := ApplyTaskCompleted(after, ev)
	if changed {
		t.Fatalf("second apply must be a no-op")
	}
	if !again.StageData[1].CheckedItems[2] {
		t.Fatalf("item lost on re-apply")
	}
}

func TestApplyTaskCompletedUnknownTask(t *testing.T) {
	p := project.Normalize(project.Project{ID: "p1"})
	_, changed := ApplyTaskCompleted(p, TaskCompleted{ProjectID: "p1", StageID: 1, TaskName: "no such item"})
	if changed {
		t.Fatalf("unknown task name must not change the project")
	}
}

func TestApplyTaskCompletedDoesNotMutateInput(t *testing.T) {
	p := project.Normalize(project.Project{ID: "p1"})
	name := stage.Definitions[0].Items[0]

	ApplyTaskCompleted(p, TaskCompleted{ProjectID: "p1", StageID: 1, TaskName: name})
	if p.StageData[1].CheckedItems[0] {
		t.Fatalf("input project was mutated")
	}
}

func TestNormalizeTimesOfficeHours(t *testing.T) {
	start, end := mustParse(t, "2025-03-10T13:45:00Z"), mustParse(t, "2025-03-12T02:00:00Z")
	s, e := NormalizeTimes(start, end)

	if s.Hour() != 8 || s.Day() != 10 {
		t.Fatalf("start not pinned to 08:00: %v", s)
	}
	if e.Hour() != 17 || e.Day() != 12 {
		t.Fatalf("end not pinned to 17:00: %v", e)
	}
}

func TestNormalizeTimesEndBeforeStart(t *testing.T) {
	start, end := mustParse(t, "2025-03-10T08:00:00Z"), mustParse(t, "2025-03-08T08:00:00Z")
	s, e := NormalizeTimes(start, end)
	if e.Before(s) {
		t.Fatalf("normalized end %v precedes start %v", e, s)
	}
	if e.Day() != 10 || e.Hour() != 17 {
		t.Fatalf("inverted window should collapse to the start day, got %v", e)
	}
}
