// Package planning manages weekly work plan entries: who works on
// which project task, when, and how the entry moves through its
// lifecycle up to manager review.
package planning

import "time"

// Entry statuses.
const (
	StatusPlanned    = "PLANNED"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
	StatusDelayed    = "DELAYED"
)

// Entry is a single planned unit of work. TaskType carries the
// checklist item name when the entry maps to one, so completing the
// entry can check the matching item on the project.
type Entry struct {
	ID             string     `json:"id"`
	AssignedTo     string     `json:"assignedTo"`
	ProjectID      string     `json:"projectId"`
	ProjectCode    string     `json:"projectCode,omitempty"`
	StageIndex     int        `json:"stageIndex"`
	TaskType       string     `json:"taskType"`
	Detail         string     `json:"detail,omitempty"`
	StartTime      time.Time  `json:"startTime"`
	EndTime        time.Time  `json:"endTime"`
	Status         string     `json:"status"`
	ManagerScore   *int       `json:"managerScore,omitempty"`
	ManagerComment string     `json:"managerComment,omitempty"`
	ReviewedAt     *time.Time `json:"reviewedAt,omitempty"`
}

// IsDone reports whether the entry has been completed.
func (e Entry) IsDone() bool {
	return e.Status == StatusCompleted
}

// ValidStatus reports whether s is one of the known entry statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPlanned, StatusInProgress, StatusCompleted, StatusDelayed:
		return true
	}
	return false
}

// NormalizeTimes pins an entry's working window to office hours: the
// start day begins at 08:00 and the end day finishes at 17:00 local
// time. Calendar placement only cares about the dates.
func NormalizeTimes(start, end time.Time) (time.Time, time.Time) {
	s := time.Date(start.Year(), start.Month(), start.Day(), 8, 0, 0, 0, start.Location())
	e := time.Date(end.Year(), end.Month(), end.Day(), 17, 0, 0, 0, end.Location())
	if e.Before(s) {
		e = time.Date(s.Year(), s.Month(), s.Day(), 17, 0, 0, 0, s.Location())
	}
	return s, e
}
