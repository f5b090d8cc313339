package kpi

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"studioplan/internal/domain/planning"
	"studioplan/internal/domain/project"
)

// DefaultBaseCost is the per-square-meter design cost used when no
// override is configured.
const DefaultBaseCost = 180

// ProjectBase computes the suggested KPI base for a project from its
// usable and garden areas. Garden area counts at one fifth.
func ProjectBase(usableArea, gardenArea, baseCost float64) float64 {
	if baseCost <= 0 {
		baseCost = DefaultBaseCost
	}
	return (usableArea + gardenArea/5) * baseCost
}

// ParseAmount reads a lenient numeric string: thousands separators and
// surrounding whitespace are ignored, an empty or unparseable value is
// zero.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// BaseFor resolves a project's effective KPI base. Only the stored
// value counts: a project whose base is missing or unparseable earns
// zero points, it never falls back to the area formula. ProjectBase is
// a suggestion for the editor, not an earning input.
func BaseFor(p project.Project) float64 {
	return ParseAmount(p.Metadata.KPIBase)
}

// TaskEarnedPoints computes the points one completed task is worth:
// the project base scaled by the stage weight and the task's share of
// that stage.
func TaskEarnedPoints(projectBase, stageWeight, taskWeight float64) float64 {
	return projectBase * stageWeight / 100 * taskWeight / 100
}

// MonthlyEarned sums an assignee's earned points for one month.
type MonthlyEarned struct {
	TotalPoints float64 `json:"totalPoints"`
	TaskCount   int     `json:"taskCount"`
}

// MonthlyEarnedKPI walks the plan entries completed by assignee in the
// given month and totals their point value. Entries with a project
// that no longer exists, or whose project has no stored KPI base,
// earn nothing.
func MonthlyEarnedKPI(assignee string, month time.Month, year int, entries []planning.Entry, projects map[string]project.Project, cfg WeightConfig) MonthlyEarned {
	var out MonthlyEarned
	for _, e := range entries {
		if e.AssignedTo != assignee || e.Status != planning.StatusCompleted {
			continue
		}
		if e.EndTime.Month() != month || e.EndTime.Year() != year {
			continue
		}
		p, ok := projects[e.ProjectID]
		if !ok {
			continue
		}
		base := BaseFor(p)
		points := TaskEarnedPoints(base, cfg.StageWeightFor(e.StageIndex), cfg.TaskWeightFor(e.StageIndex, e.TaskType))
		out.TotalPoints += points
		out.TaskCount++
	}
	return out
}

// Efficiency is earned over target in percent; a zero target reads as
// zero rather than dividing.
func Efficiency(earned, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return earned / target * 100
}

// LeaderboardRow is one employee's monthly standing.
type LeaderboardRow struct {
	Employee   Employee `json:"employee"`
	Earned     float64  `json:"earned"`
	TaskCount  int      `json:"taskCount"`
	Efficiency float64  `json:"efficiency"`
	Attitude   float64  `json:"attitude"`
}

// Leaderboard ranks employees by earned points for one month.
func Leaderboard(employees []Employee, month time.Month, year int, entries []planning.Entry, projects map[string]project.Project, cfg WeightConfig) []LeaderboardRow {
	rows := make([]LeaderboardRow, 0, len(employees))
	for _, emp := range employees {
		earned := MonthlyEarnedKPI(emp.Name, month, year, entries, projects, cfg)
		rows = append(rows, LeaderboardRow{
			Employee:   emp,
			Earned:     earned.TotalPoints,
			TaskCount:  earned.TaskCount,
			Efficiency: Efficiency(earned.TotalPoints, emp.TargetKPI),
			Attitude:   emp.Attitude.Average(),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Earned > rows[j].Earned })
	return rows
}
