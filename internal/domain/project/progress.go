package project

import (
	"math"

	"studioplan/internal/domain/stage"
)

// CalculateProgress maps checklist state to a 0-100 weighted percentage.
// Stages without stored data contribute nothing; the result is clamped at
// 100 so weight tables that drift past a 100 total stay harmless.
func CalculateProgress(p Project) float64 {
	if p.StageData == nil {
		return 0
	}
	var progress float64
	for _, def := range stage.Definitions {
		data, ok := p.StageData[def.ID]
		if !ok {
			continue
		}
		total := len(def.Items)
		if total == 0 {
			continue
		}
		checked := 0
		for i, done := range data.CheckedItems {
			if i >= total {
				break
			}
			if done {
				checked++
			}
		}
		progress += float64(checked) / float64(total) * def.Weight
	}
	return math.Min(100, progress)
}

// DeriveStatus is the redundant stored status string; progress stays the
// source of truth.
func DeriveStatus(progress float64) string {
	switch {
	case progress >= 100:
		return StatusCompleted
	case progress < 50:
		return StatusNeedsAttention
	default:
		return StatusInProgress
	}
}
