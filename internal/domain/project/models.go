package project

import (
	"time"

	"studioplan/internal/domain/stage"
)

const (
	StatusInProgress     = "In progress"
	StatusCompleted      = "Completed"
	StatusNeedsAttention = "Needs attention"
)

// StageProgress is the per-stage checklist state stored on a project.
// CheckedItems is positional against the stage definition's item list.
type StageProgress struct {
	Owner        string `json:"owner"`
	CheckedItems []bool `json:"checkedItems"`
}

// Metadata keeps the human-entered project facts. Numeric-ish fields stay
// strings on purpose: values arrive from free-form input and are parsed
// leniently at calculation time.
type Metadata struct {
	Client            string `json:"client"`
	HandoffDate       string `json:"handoffDate"`
	ConstructionStart string `json:"constructionStart"`
	LeadSource        string `json:"leadSource"`
	TotalCost         string `json:"totalCost"`
	Address           string `json:"address"`
	LeadArchitect     string `json:"leadArchitect"`
	InteriorLead      string `json:"interiorLead"`
	DossierLead       string `json:"dossierLead"`
	ClientAdvisor     string `json:"clientAdvisor"`
	Notes             string `json:"notes"`
	Priority          bool   `json:"priority"`
	UnderConstruction bool   `json:"underConstruction"`
	UsableArea        string `json:"usableArea"`
	GardenArea        string `json:"gardenArea"`
	KPIBase           string `json:"kpiBase"`
}

type Project struct {
	ID          string                `json:"id"`
	Code        string                `json:"code"`
	Year        string                `json:"year"`
	Name        string                `json:"name"`
	Status      string                `json:"status"`
	Metadata    Metadata              `json:"metadata"`
	StageData   map[int]StageProgress `json:"stageData"`
	LastUpdated time.Time             `json:"lastUpdated"`
}

// DisplayName prefers "client - address" over the raw project name.
func (p Project) DisplayName() string {
	if p.Metadata.Client != "" && p.Metadata.Address != "" {
		return p.Metadata.Client + " - " + p.Metadata.Address
	}
	if p.Metadata.Client != "" {
		return p.Metadata.Client
	}
	return p.Name
}

// Normalize backfills missing stages and short CheckedItems arrays with
// false so stored stage data always matches the stage definitions.
func Normalize(p Project) Project {
	out := p
	out.StageData = make(map[int]StageProgress, len(stage.Definitions))
	for _, def := range stage.Definitions {
		data := p.StageData[def.ID]
		items := make([]bool, len(def.Items))
		copy(items, data.CheckedItems)
		out.StageData[def.ID] = StageProgress{Owner: data.Owner, CheckedItems: items}
	}
	return out
}

// ReferenceStart is the delay-detection anchor: the handoff date when set,
// the construction start date otherwise.
func ReferenceStart(p Project) (time.Time, bool) {
	for _, raw := range []string{p.Metadata.HandoffDate, p.Metadata.ConstructionStart} {
		if raw == "" {
			continue
		}
		if parsed, err := ParseDate(raw); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// ParseDate accepts RFC3339 or YYYY-MM-DD.
func ParseDate(value string) (time.Time, error) {
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return time.Parse("2006-01-02", value)
}
