// Package kpi computes performance points for completed plan work.
// Each project carries a KPI base derived from its size; stage and
// task weights split that base across the checklist, and completed
// plan entries earn their share in the month they finish.
package kpi

import "studioplan/internal/domain/stage"

// TaskWeight is the relative share of one checklist item within its
// stage, in percent.
type TaskWeight struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

// StageWeights holds the per-task split of one stage.
type StageWeights struct {
	StageID int          `json:"stageId"`
	Title   string       `json:"title"`
	Weight  float64      `json:"weight"`
	Tasks   []TaskWeight `json:"tasks"`
}

// WeightConfig is the full editable weight table.
type WeightConfig struct {
	Stages []StageWeights `json:"stages"`
}

// Employee is a staff member on the KPI dashboard.
type Employee struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Role      string         `json:"role"`
	AvatarURL string         `json:"avatarUrl,omitempty"`
	TargetKPI float64        `json:"targetKpi"`
	Attitude  AttitudeScores `json:"attitude"`
}

// AttitudeScores are the monthly soft-skill marks, each on a 1..10
// scale.
type AttitudeScores struct {
	Communication float64 `json:"communication"`
	Teamwork      float64 `json:"teamwork"`
	Initiative    float64 `json:"initiative"`
	Reliability   float64 `json:"reliability"`
	Growth        float64 `json:"growth"`
}

// Average returns the mean of the five attitude marks.
func (a AttitudeScores) Average() float64 {
	return (a.Communication + a.Teamwork + a.Initiative + a.Reliability + a.Growth) / 5
}

// defaultTaskWeights carries the stock per-task split for each stage,
// indexed by stage id, in checklist item order.
var defaultTaskWeights = map[int][]float64{
	1: {9, 2, 80, 9},
	2: {82, 9, 9},
	3: {65, 35},
	4: {40, 60},
	5: {25, 25, 25, 25},
	6: {16.6, 16.6, 16.6, 16.6, 16.6, 17},
	7: {7.6, 7.7, 7.7, 7.7, 7.7, 7.7, 7.7, 7.7, 7.7, 7.7, 7.7, 7.7, 7.7},
	8: {50, 50},
	9: {33.3, 33.3, 33.4},
}

// DefaultConfig builds the stock weight table from the stage
// definitions.
func DefaultConfig() WeightConfig {
	cfg := WeightConfig{Stages: make([]StageWeights, 0, len(stage.Definitions))}
	for _, def := range stage.Definitions {
		weights := defaultTaskWeights[def.ID]
		sw := StageWeights{
			StageID: def.ID,
			Title:   def.Title,
			Weight:  def.Weight,
			Tasks:   make([]TaskWeight, 0, len(def.Items)),
		}
		for i, name := range def.Items {
			w := 0.0
			if i < len(weights) {
				w = weights[i]
			}
			sw.Tasks = append(sw.Tasks, TaskWeight{Name: name, Weight: w})
		}
		cfg.Stages = append(cfg.Stages, sw)
	}
	return cfg
}

// TaskWeightFor looks up one task's weight by stage id and item name.
// Unknown tasks weigh zero.
func (c WeightConfig) TaskWeightFor(stageID int, taskName string) float64 {
	for _, sw := range c.Stages {
		if sw.StageID != stageID {
			continue
		}
		for _, tw := range sw.Tasks {
			if tw.Name == taskName {
				return tw.Weight
			}
		}
	}
	return 0
}

// StageWeightFor returns a stage's share of the project base. The
// editable config wins over the stage definitions.
func (c WeightConfig) StageWeightFor(stageID int) float64 {
	for _, sw := range c.Stages {
		if sw.StageID == stageID {
			return sw.Weight
		}
	}
	if def, ok := stage.ByID(stageID); ok {
		return def.Weight
	}
	return 0
}

// StageTaskTotal sums one stage's task weights, used to warn when an
// edited split drifts off 100.
func (c WeightConfig) StageTaskTotal(stageID int) float64 {
	total := 0.0
	for _, sw := range c.Stages {
		if sw.StageID != stageID {
			continue
		}
		for _, tw := range sw.Tasks {
			total += tw.Weight
		}
	}
	return total
}
