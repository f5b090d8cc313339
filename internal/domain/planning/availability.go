package planning

import (
	"fmt"

	"studioplan/internal/domain/project"
	"studioplan/internal/domain/scope"
	"studioplan/internal/domain/stage"
)

// signature identifies a task slot independent of who scheduled it.
func signature(projectID string, stageID int, taskName string) string {
	return fmt.Sprintf("%s::%d::%s", projectID, stageID, taskName)
}

// ScheduledSignatures collects the task signatures already claimed by
// plan entries, so the editor can hide tasks somebody else picked up.
// When editingID is non-empty, that entry's own signature is excluded
// so an edit does not block its own task.
func ScheduledSignatures(entries []Entry, editingID string) map[string]bool {
	sigs := make(map[string]bool, len(entries))
	for _, e := range entries {
		if editingID != "" && e.ID == editingID {
			continue
		}
		sigs[signature(e.ProjectID, e.StageIndex, e.TaskType)] = true
	}
	return sigs
}

// IsTaskAvailable reports whether a checklist item can still be
// scheduled: its box must be unchecked on the project and no other
// plan entry may already claim the same task.
func IsTaskAvailable(p project.Project, stageID, itemIndex int, taskName string, scheduled map[string]bool) bool {
	if sp, ok := p.StageData[stageID]; ok {
		if itemIndex >= 0 && itemIndex < len(sp.CheckedItems) && sp.CheckedItems[itemIndex] {
			return false
		}
	}
	return !scheduled[signature(p.ID, stageID, taskName)]
}

// OfferedItem is one schedulable checklist item for the task picker.
type OfferedItem struct {
	StageID   int    `json:"stageId"`
	ItemIndex int    `json:"itemIndex"`
	Name      string `json:"name"`
}

// OfferedItems lists every checklist item of the project that is still
// open for scheduling, in stage order. The edited entry's own task is
// always offered, even when its item has since been checked.
func OfferedItems(p project.Project, entries []Entry, editingID string) []OfferedItem {
	scheduled := ScheduledSignatures(entries, editingID)

	ownStage, ownTask := 0, ""
	if editingID != "" {
		for _, e := range entries {
			if e.ID == editingID && e.ProjectID == p.ID {
				ownStage, ownTask = e.StageIndex, e.TaskType
				break
			}
		}
	}

	var out []OfferedItem
	for _, def := range stage.Definitions {
		for i, name := range def.Items {
			own := def.ID == ownStage && name == ownTask
			if own || IsTaskAvailable(p, def.ID, i, name, scheduled) {
				out = append(out, OfferedItem{StageID: def.ID, ItemIndex: i, Name: name})
			}
		}
	}
	return out
}

// StageUrgentCount counts the checklist items of one stage that carry
// a monthly scope tag and are still schedulable. A tag on a checked or
// already-claimed item does not count.
func StageUrgentCount(p project.Project, stageID int, tags scope.TagSet, scheduled map[string]bool) int {
	def, ok := stage.ByID(stageID)
	if !ok {
		return 0
	}
	urgent := 0
	for i, name := range def.Items {
		if tags.Has(p.ID, def.ID, i) && IsTaskAvailable(p, def.ID, i, name, scheduled) {
			urgent++
		}
	}
	return urgent
}

// ProjectUnscheduledCount totals the tagged, still-schedulable items
// across all stages of a project.
func ProjectUnscheduledCount(p project.Project, entries []Entry, tags scope.TagSet) int {
	scheduled := ScheduledSignatures(entries, "")
	total := 0
	for _, def := range stage.Definitions {
		total += StageUrgentCount(p, def.ID, tags, scheduled)
	}
	return total
}
