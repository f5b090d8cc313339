package project

import (
	"math"
	"testing"
)

func fullyChecked(stageID int, n int) StageProgress {
	items := make([]bool, n)
	for i := range items {
		items[i] = true
	}
	return StageProgress{CheckedItems: items}
}

func TestCalculateProgressWeightedScenario(t *testing.T) {
	// Stage 1 (weight 11, 4 items) fully checked, stage 2 (weight 20.5,
	// 3 items) with one of three checked.
	p := Project{StageData: map[int]StageProgress{
		1: fullyChecked(1, 4),
		2: {CheckedItems: []bool{true, false, false}},
	}}

	got := CalculateProgress(p)
	want := 11 + 20.5*(1.0/3.0)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected progress %v, got %v", want, got)
	}
}

func TestCalculateProgressEmptyAndMissingData(t *testing.T) {
	if got := CalculateProgress(Project{}); got != 0 {
		t.Fatalf("expected 0 for nil stage data, got %v", got)
	}
	if got := CalculateProgress(Project{StageData: map[int]StageProgress{}}); got != 0 {
		t.Fatalf("expected 0 for empty stage data, got %v", got)
	}
}

func TestCalculateProgressToleratesShortArrays(t *testing.T) {
	// Stage 7 has 13 items; only 2 stored, both checked.
	p := Project{StageData: map[int]StageProgress{
		7: {CheckedItems: []bool{true, true}},
	}}
	got := CalculateProgress(p)
	want := 2.0 / 13.0 * 14
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestCalculateProgressIgnoresOverlongArrays(t *testing.T) {
	items := make([]bool, 10)
	for i := range items {
		items[i] = true
	}
	p := Project{StageData: map[int]StageProgress{3: {CheckedItems: items}}}
	if got := CalculateProgress(p); got != 1.5 {
		t.Fatalf("expected stage weight 1.5 for overfull stage, got %v", got)
	}
}

func TestCalculateProgressClampsAt100(t *testing.T) {
	data := map[int]StageProgress{}
	counts := map[int]int{1: 4, 2: 3, 3: 2, 4: 2, 5: 4, 6: 6, 7: 13, 8: 2, 9: 3}
	for id, n := range counts {
		data[id] = fullyChecked(id, n)
	}
	// The configured weights sum to 100.5; the result must still be 100.
	if got := CalculateProgress(Project{StageData: data}); got != 100 {
		t.Fatalf("expected clamp to 100, got %v", got)
	}
}

func TestCalculateProgressMonotonic(t *testing.T) {
	p := Project{StageData: map[int]StageProgress{
		5: {CheckedItems: []bool{true, false, false, false}},
		6: {CheckedItems: []bool{false, false, false, false, false, false}},
	}}
	before := CalculateProgress(p)

	p.StageData[6].CheckedItems[3] = true
	after := CalculateProgress(p)
	if after < before {
		t.Fatalf("progress decreased after checking an item: %v -> %v", before, after)
	}
}

func TestDeriveStatus(t *testing.T) {
	cases := []struct {
		progress float64
		want     string
	}{
		{0, StatusNeedsAttention},
		{49.9, StatusNeedsAttention},
		{50, StatusInProgress},
		{99.9, StatusInProgress},
		{100, StatusCompleted},
	}
	for _, tc := range cases {
		if got := DeriveStatus(tc.progress); got != tc.want {
			t.Fatalf("DeriveStatus(%v) = %q, want %q", tc.progress, got, tc.want)
		}
	}
}

func TestNormalizeBackfillsStageData(t *testing.T) {
	p := Project{StageData: map[int]StageProgress{
		1: {Owner: "Mia", CheckedItems: []bool{true}},
	}}
	normalized := Normalize(p)

	if len(normalized.StageData) != 9 {
		t.Fatalf("expected 9 stages after normalize, got %d", len(normalized.StageData))
	}
	s1 := normalized.StageData[1]
	if s1.Owner != "Mia" {
		t.Fatalf("owner lost during normalize: %+v", s1)
	}
	if len(s1.CheckedItems) != 4 || !s1.CheckedItems[0] || s1.CheckedItems[1] {
		t.Fatalf("stage 1 items not backfilled correctly: %+v", s1.CheckedItems)
	}
	if len(normalized.StageData[7].CheckedItems) != 13 {
		t.Fatalf("stage 7 not backfilled to 13 items")
	}

	// The input project must not be mutated.
	if len(p.StageData) != 1 {
		t.Fatalf("normalize mutated its input")
	}
}
