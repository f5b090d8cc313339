// Package stage holds the fixed nine-stage workflow table shared by every
// project. The table is configuration, not data: stage ids, item lists and
// weights never change at runtime.
package stage

type Definition struct {
	ID     int      `json:"id"`
	Title  string   `json:"title"`
	Weight float64  `json:"weight"`
	Items  []string `json:"items"`
}

// Definitions is ordered by stage id. The weights are a client decision and
// do not sum to exactly 100; progress math clamps instead of rejecting.
var Definitions = []Definition{
	{
		ID:     1,
		Title:  "Stage 1: Concept preparation and sign-off",
		Weight: 11,
		Items: []string{
			"Site survey",
			"Preliminary zoning check",
			"Functional layout (2D)",
			"Concept preparation",
		},
	},
	{
		ID:     2,
		Title:  "Stage 2: Facade 3D",
		Weight: 20.5,
		Items: []string{
			"Front, corner and gate views",
			"Garden perspective",
			"Rooftop perspective",
		},
	},
	{
		ID:     3,
		Title:  "Stage 3: Building permit dossier",
		Weight: 1.5,
		Items: []string{
			"Preliminary plans, elevations and sections",
			"Permit submission support",
		},
	},
	{
		ID:     4,
		Title:  "Stage 4: Interior 3D",
		Weight: 31.5,
		Items: []string{
			"Living room, kitchen and master bedroom",
			"Remaining bedrooms and auxiliary spaces",
		},
	},
	{
		ID:     5,
		Title:  "Stage 5: Structural package",
		Weight: 9,
		Items: []string{
			"Foundation layout and details",
			"Column layout and details",
			"Beam and floor plans",
			"Secondary structure details",
		},
	},
	{
		ID:     6,
		Title:  "Stage 6: MEP package",
		Weight: 7.5,
		Items: []string{
			"Schematic diagram",
			"Socket layout",
			"Low-voltage systems (ELV)",
			"Water supply and drainage layout",
			"Air conditioning layout",
			"Lighting layout",
		},
	},
	{
		ID:     7,
		Title:  "Stage 7: Architectural detailing",
		Weight: 14,
		Items: []string{
			"Plan control and 3D synchronization",
			"Floor finish details",
			"Construction elevations and sections",
			"Staircase details",
			"Bathroom details",
			"Door details and schedule",
			"Gate and fence details",
			"Canopy, skylight and gutter details",
			"Garden details",
			"Feature wall details",
			"Ceiling and lighting details",
			"Interior dimension drawings",
			"Interior detail drawings",
		},
	},
	{
		ID:     8,
		Title:  "Stage 8: Construction dossier control",
		Weight: 3,
		Items: []string{
			"Information review",
			"Perspective and dossier synchronization check",
		},
	},
	{
		ID:     9,
		Title:  "Stage 9: Sign-off and material selection",
		Weight: 2.5,
		Items: []string{
			"Material sample approval",
			"Handover dossier sign-off",
			"File archival and lock",
		},
	},
}

func ByID(id int) (Definition, bool) {
	for _, def := range Definitions {
		if def.ID == id {
			return def, true
		}
	}
	return Definition{}, false
}

func ItemCount(id int) int {
	def, ok := ByID(id)
	if !ok {
		return 0
	}
	return len(def.Items)
}

// ItemIndex resolves a task name to its position within a stage, -1 when the
// name is not part of that stage. Task identity within a stage is by name;
// the fixed tables never repeat a name inside one stage.
func ItemIndex(stageID int, name string) int {
	def, ok := ByID(stageID)
	if !ok {
		return -1
	}
	for i, item := range def.Items {
		if item == name {
			return i
		}
	}
	return -1
}
