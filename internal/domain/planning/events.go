package planning

import (
	"studioplan/internal/domain/project"
	"studioplan/internal/domain/stage"
)

// TaskCompleted is raised when a plan entry that maps to a checklist
// item reaches COMPLETED, so the project checklist can be updated.
type TaskCompleted struct {
	ProjectID string
	StageID   int
	TaskName  string
}

// EventFor derives the completion event for an entry, if its task
// name matches a checklist item of its stage. Free-form tasks produce
// no event.
func EventFor(e Entry) (TaskCompleted, bool) {
	idx := stage.ItemIndex(e.StageIndex, e.TaskType)
	if idx < 0 {
		return TaskCompleted{}, false
	}
	return TaskCompleted{ProjectID: e.ProjectID, StageID: e.StageIndex, TaskName: e.TaskType}, true
}

// ApplyTaskCompleted checks the matching checklist item on a copy of
// the project and returns it. Applying the same event twice yields the
// same result; an unknown task name returns the project unchanged.
func ApplyTaskCompleted(p project.Project, ev TaskCompleted) (project.Project, bool) {
	idx := stage.ItemIndex(ev.StageID, ev.TaskName)
	if idx < 0 {
		return p, false
	}

	out := project.Normalize(p)
	sp := out.StageData[ev.StageID]
	if idx >= len(sp.CheckedItems) || sp.CheckedItems[idx] {
		return out, false
	}
	sp.CheckedItems[idx] = true
	out.StageData[ev.StageID] = sp
	return out, true
}
