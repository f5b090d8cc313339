package planning

import (
	"testing"

	"studioplan/internal/domain/project"
	"studioplan/internal/domain/scope"
	"studioplan/internal/domain/stage"
)

func testProject() project.Project {
	return project.Normalize(project.Project{ID: "p1", Code: "TP2025-001"})
}

func TestIsTaskAvailableBlockedByCheckedItem(t *testing.T) {
	p := testProject()
	name := stage.Definitions[0].Items[0]

	if !IsTaskAvailable(p, 1, 0, name, nil) {
		t.Fatalf("unchecked item should be available")
	}

	p.StageData[1].CheckedItems[0] = true
	if IsTaskAvailable(p, 1, 0, name, nil) {
		t.Fatalf("checked item should not be available")
	}
}

func TestIsTaskAvailableBlockedByExistingEntry(t *testing.T) {
	p := testProject()
	name := stage.Definitions[1].Items[0]
	entries := []Entry{{ID: "e1", ProjectID: "p1", StageIndex: 2, TaskType: name}}

	scheduled := ScheduledSignatures(entries, "")
	if IsTaskAvailable(p, 2, 0, name, scheduled) {
		t.Fatalf("task claimed by another entry should not be available")
	}

	// Same stage and task on a different project stays open.
	other := project.Normalize(project.Project{ID: "p2"})
	if !IsTaskAvailable(other, 2, 0, name, scheduled) {
		t.Fatalf("claim on p1 must not block p2")
	}
}

func TestScheduledSignaturesExcludesEditedEntry(t *testing.T) {
	p := testProject()
	name := stage.Definitions[0].Items[1]
	entries := []Entry{{ID: "e1", ProjectID: "p1", StageIndex: 1, TaskType: name}}

	scheduled := ScheduledSignatures(entries, "e1")
	if !IsTaskAvailable(p, 1, 1, name, scheduled) {
		t.Fatalf("an entry must not block its own task while being edited")
	}
}

func TestOfferedItemsShrinkAsWorkIsClaimed(t *testing.T) {
	p := testProject()
	total := 0
	for _, def := range stage.Definitions {
		total += len(def.Items)
	}

	offered := OfferedItems(p, nil, "")
	if len(offered) != total {
		t.Fatalf("fresh project should offer all %d items, got %d", total, len(offered))
	}

	p.StageData[1].CheckedItems[0] = true
	entries := []Entry{{ID: "e1", ProjectID: "p1", StageIndex: 1, TaskType: stage.Definitions[0].Items[1]}}
	offered = OfferedItems(p, entries, "")
	if len(offered) != total-2 {
		t.Fatalf("expected %d offered items, got %d", total-2, len(offered))
	}
}

func TestOfferedItemsAlwaysIncludeOwnTask(t *testing.T) {
	p := testProject()
	name := stage.Definitions[0].Items[0]
	p.StageData[1].CheckedItems[0] = true
	entries := []Entry{{ID: "e1", ProjectID: "p1", StageIndex: 1, TaskType: name, Status: StatusCompleted}}

	// Without an editing context the checked item is gone.
	for _, o := range OfferedItems(p, entries, "") {
		if o.Name == name {
			t.Fatalf("checked item should not be offered")
		}
	}

	// Editing the entry that owns the task keeps it on offer even
	// though its item is checked.
	found := false
	for _, o := range OfferedItems(p, entries, "e1") {
		if o.StageID == 1 && o.Name == name {
			found = true
		}
	}
	if !found {
		t.Fatalf("the edited entry's own task must stay offered")
	}
}

func TestStageUrgentCountFollowsScopeTags(t *testing.T) {
	p := testProject()
	tags := scope.TagSet{}

	if got := StageUrgentCount(p, 1, tags, nil); got != 0 {
		t.Fatalf("no tags means nothing urgent, got %d", got)
	}

	tags.Toggle("p1", 1, 0)
	tags.Toggle("p1", 1, 1)
	if got := StageUrgentCount(p, 1, tags, nil); got != 2 {
		t.Fatalf("expected 2 urgent items, got %d", got)
	}

	// Checking one tagged item drops it from the count.
	p.StageData[1].CheckedItems[0] = true
	if got := StageUrgentCount(p, 1, tags, nil); got != 1 {
		t.Fatalf("expected 1 urgent item after checking, got %d", got)
	}

	// Scheduling the other does too.
	entries := []Entry{{ID: "e1", ProjectID: "p1", StageIndex: 1, TaskType: stage.Definitions[0].Items[1]}}
	scheduled := ScheduledSignatures(entries, "")
	if got := StageUrgentCount(p, 1, tags, scheduled); got != 0 {
		t.Fatalf("expected 0 urgent items after scheduling, got %d", got)
	}

	// Tags on another project never bleed over.
	tags.Toggle("p2", 1, 2)
	if got := StageUrgentCount(p, 1, tags, scheduled); got != 0 {
		t.Fatalf("foreign tag must not count, got %d", got)
	}
}

func TestProjectUnscheduledCountSpansStages(t *testing.T) {
	p := testProject()
	tags := scope.TagSet{}
	tags.Toggle("p1", 1, 0)
	tags.Toggle("p1", 4, 1)
	tags.Toggle("p1", 7, 3)

	if got := ProjectUnscheduledCount(p, nil, tags); got != 3 {
		t.Fatalf("expected 3 tagged open items, got %d", got)
	}

	entries := []Entry{{ID: "e1", ProjectID: "p1", StageIndex: 4, TaskType: stage.Definitions[3].Items[1]}}
	if got := ProjectUnscheduledCount(p, entries, tags); got != 2 {
		t.Fatalf("expected 2 after scheduling one, got %d", got)
	}
}
