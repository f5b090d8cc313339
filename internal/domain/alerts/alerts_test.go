package alerts

import (
	"fmt"
	"testing"
	"time"

	"studioplan/internal/domain/planning"
	"studioplan/internal/domain/project"
)

var now = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

func stalledProject(id string, daysAgo int) project.Project {
	start := now.AddDate(0, 0, -daysAgo).Format("2006-01-02")
	return project.Normalize(project.Project{
		ID:       id,
		Name:     "House " + id,
		Metadata: project.Metadata{HandoffDate: start},
	})
}

func TestGenerateDelayedThreshold(t *testing.T) {
	projects := []project.Project{
		stalledProject("fresh", 10),
		stalledProject("borderline", 30),
		stalledProject("old", 45),
	}

	got := Generate(projects, now)
	if len(got) != 1 {
		t.Fatalf("expected 1 alert, got %d: %+v", len(got), got)
	}
	if got[0].ProjectID != "old" || got[0].Kind != KindDelayed {
		t.Fatalf("unexpected alert: %+v", got[0])
	}
	if got[0].DaysOverdue != 45 {
		t.Fatalf("expected 45 days overdue, got %d", got[0].DaysOverdue)
	}
}

func TestGenerateSkipsProgressedProjects(t *testing.T) {
	p := stalledProject("busy", 60)
	// Check enough items to cross the 70% ceiling: stages 1, 2, 4 and 7
	// together weigh 11 + 20.5 + 31.5 + 14 = 77.
	for _, id := range []int{1, 2, 4, 7} {
		sp := p.StageData[id]
		for i := range sp.CheckedItems {
			sp.CheckedItems[i] = true
		}
		p.StageData[id] = sp
	}

	if got := Generate([]project.Project{p}, now); len(got) != 0 {
		t.Fatalf("progressed project must not alert, got %+v", got)
	}
}

func TestGenerateCapsAtFiveMostOverdue(t *testing.T) {
	var projects []project.Project
	for i := 0; i < 8; i++ {
		projects = append(projects, stalledProject(fmt.Sprintf("p%d", i), 40+i*10))
	}

	got := Generate(projects, now)
	if len(got) != 5 {
		t.Fatalf("expected 5 alerts, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].DaysOverdue > got[i-1].DaysOverdue {
			t.Fatalf("alerts not ordered most overdue first: %+v", got)
		}
	}
	if got[0].ProjectID != "p7" {
		t.Fatalf("most overdue project should lead, got %s", got[0].ProjectID)
	}
}

func TestGenerateOwnerOverload(t *testing.T) {
	// Two projects fully owned by Mia: 31 open items each stage set.
	p1 := project.Normalize(project.Project{ID: "p1"})
	p2 := project.Normalize(project.Project{ID: "p2"})
	for _, p := range []project.Project{p1, p2} {
		for id, sp := range p.StageData {
			sp.Owner = "Mia"
			p.StageData[id] = sp
		}
	}

	got := Generate([]project.Project{p1, p2}, now)
	var overload *Alert
	for i := range got {
		if got[i].Kind == KindOverload {
			overload = &got[i]
		}
	}
	if overload == nil {
		t.Fatalf("expected an overload alert, got %+v", got)
	}
	if overload.Owner != "Mia" {
		t.Fatalf("expected Mia overloaded, got %+v", overload)
	}

	// An owner with only stage 7's 13 open items stays under the
	// threshold.
	small := project.Normalize(project.Project{ID: "p3"})
	sp := small.StageData[7]
	sp.Owner = "Ben"
	small.StageData[7] = sp

	got = Generate([]project.Project{small}, now)
	for _, a := range got {
		if a.Kind == KindOverload {
			t.Fatalf("13 open items must not alert: %+v", a)
		}
	}
}

func TestStrictDelays(t *testing.T) {
	old := stalledProject("old", 120)
	fresh := stalledProject("fresh", 50)
	building := stalledProject("building", 200)
	building.Metadata.UnderConstruction = true

	got := StrictDelays([]project.Project{fresh, old, building}, now)
	if len(got) != 1 {
		t.Fatalf("expected exactly the old project, got %+v", got)
	}
	if got[0].ProjectID != "old" || got[0].Severity != SeverityCritical {
		t.Fatalf("unexpected strict alert: %+v", got[0])
	}
}

func TestDanglingAssignments(t *testing.T) {
	projects := map[string]project.Project{"p1": {ID: "p1"}}
	entries := []planning.Entry{
		{ID: "e1", ProjectID: "p1", AssignedTo: "Mia", TaskType: "Concept sketches"},
		{ID: "e2", ProjectID: "ghost", AssignedTo: "Ben", TaskType: "Site survey"},
		{ID: "e3", AssignedTo: "Ben", TaskType: "Team meeting"},
	}

	got := DanglingAssignments(entries, projects)
	if len(got) != 1 {
		t.Fatalf("expected 1 dangling alert, got %d", len(got))
	}
	if got[0].Owner != "Ben" {
		t.Fatalf("unexpected alert: %+v", got[0])
	}
}
