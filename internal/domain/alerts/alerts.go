// Package alerts scans the portfolio for projects that need a nudge:
// stalled progress, long-running delays and overloaded owners.
package alerts

import (
	"fmt"
	"sort"
	"time"

	"studioplan/internal/domain/planning"
	"studioplan/internal/domain/project"
	"studioplan/internal/domain/stage"
)

// Alert severities.
const (
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// Alert is one dashboard notice.
type Alert struct {
	ID          string  `json:"id"`
	Severity    string  `json:"severity"`
	Kind        string  `json:"kind"`
	ProjectID   string  `json:"projectId,omitempty"`
	ProjectName string  `json:"projectName,omitempty"`
	Owner       string  `json:"owner,omitempty"`
	Message     string  `json:"message"`
	DaysOverdue int     `json:"daysOverdue,omitempty"`
	Progress    float64 `json:"progress,omitempty"`
}

// Alert kinds.
const (
	KindDelayed  = "project_delayed"
	KindOverload = "owner_overload"
	KindStrict   = "strict_delay"
)

const (
	delayedProgressCeiling = 70
	delayedAfterDays       = 30
	strictAfterDays        = 90
	overloadThreshold      = 20
	maxDelayedAlerts       = 5
)

// Generate builds the dashboard alert list: up to five stalled
// projects, most overdue first, plus an overload alert per owner
// carrying more than twenty open checklist items.
func Generate(projects []project.Project, now time.Time) []Alert {
	delayed := delayedProjects(projects, now)
	sort.SliceStable(delayed, func(i, j int) bool {
		return delayed[i].DaysOverdue > delayed[j].DaysOverdue
	})
	if len(delayed) > maxDelayedAlerts {
		delayed = delayed[:maxDelayedAlerts]
	}

	out := delayed
	out = append(out, overloadAlerts(projects)...)
	return out
}

func delayedProjects(projects []project.Project, now time.Time) []Alert {
	var out []Alert
	for _, p := range projects {
		progress := project.CalculateProgress(p)
		if progress >= delayedProgressCeiling {
			continue
		}
		ref, ok := project.ReferenceStart(p)
		if !ok {
			continue
		}
		days := int(now.Sub(ref).Hours() / 24)
		if days <= delayedAfterDays {
			continue
		}
		out = append(out, Alert{
			ID:          fmt.Sprintf("delayed-%s", p.ID),
			Severity:    SeverityWarning,
			Kind:        KindDelayed,
			ProjectID:   p.ID,
			ProjectName: p.DisplayName(),
			Message:     fmt.Sprintf("%s has been running %d days at %.0f%% progress", p.DisplayName(), days, progress),
			DaysOverdue: days,
			Progress:    progress,
		})
	}
	return out
}

// overloadAlerts counts unchecked checklist items per stage owner
// across the whole portfolio.
func overloadAlerts(projects []project.Project) []Alert {
	counts := map[string]int{}
	for _, p := range projects {
		for _, def := range stage.Definitions {
			sp, ok := p.StageData[def.ID]
			if !ok || sp.Owner == "" {
				continue
			}
			for i := 0; i < len(def.Items); i++ {
				if i >= len(sp.CheckedItems) || !sp.CheckedItems[i] {
					counts[sp.Owner]++
				}
			}
		}
	}

	type load struct {
		owner string
		open  int
	}
	var loads []load
	for owner, open := range counts {
		if open > overloadThreshold {
			loads = append(loads, load{owner, open})
		}
	}
	sort.Slice(loads, func(i, j int) bool {
		if loads[i].open != loads[j].open {
			return loads[i].open > loads[j].open
		}
		return loads[i].owner < loads[j].owner
	})

	out := make([]Alert, 0, len(loads))
	for _, l := range loads {
		out = append(out, Alert{
			ID:       fmt.Sprintf("overload-%s", l.owner),
			Severity: SeverityWarning,
			Kind:     KindOverload,
			Owner:    l.owner,
			Message:  fmt.Sprintf("%s has %d open checklist items", l.owner, l.open),
		})
	}
	return out
}

// StrictDelays lists projects that are not under construction, started
// more than ninety days ago and still short of full progress. Used by
// the assistant and the strict dashboard filter.
func StrictDelays(projects []project.Project, now time.Time) []Alert {
	var out []Alert
	for _, p := range projects {
		if p.Metadata.UnderConstruction {
			continue
		}
		progress := project.CalculateProgress(p)
		if progress >= 100 {
			continue
		}
		ref, ok := project.ReferenceStart(p)
		if !ok {
			continue
		}
		days := int(now.Sub(ref).Hours() / 24)
		if days <= strictAfterDays {
			continue
		}
		out = append(out, Alert{
			ID:          fmt.Sprintf("strict-%s", p.ID),
			Severity:    SeverityCritical,
			Kind:        KindStrict,
			ProjectID:   p.ID,
			ProjectName: p.DisplayName(),
			Message:     fmt.Sprintf("%s is %d days in without completion", p.DisplayName(), days),
			DaysOverdue: days,
			Progress:    progress,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DaysOverdue > out[j].DaysOverdue
	})
	return out
}

// DanglingAssignments lists plan entries that reference a project that
// no longer exists, so stale boards surface instead of silently
// earning nothing.
func DanglingAssignments(entries []planning.Entry, projects map[string]project.Project) []Alert {
	var out []Alert
	for _, e := range entries {
		if e.ProjectID == "" {
			continue
		}
		if _, ok := projects[e.ProjectID]; ok {
			continue
		}
		out = append(out, Alert{
			ID:       fmt.Sprintf("dangling-%s", e.ID),
			Severity: SeverityWarning,
			Kind:     "dangling_assignment",
			Owner:    e.AssignedTo,
			Message:  fmt.Sprintf("plan entry %q for %s references a deleted project", e.TaskType, e.AssignedTo),
		})
	}
	return out
}
