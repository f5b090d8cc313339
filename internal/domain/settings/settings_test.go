package settings

import (
	"context"
	"encoding/json"
	"testing"

	"studioplan/internal/domain/kpi"
)

func newTestService(t *testing.T) (*Service, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore()
	return NewService(store, 0), store
}

func TestEmployeesDefaultsWhenUnset(t *testing.T) {
	svc, _ := newTestService(t)

	got, err := svc.Employees(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != len(DefaultEmployees()) {
		t.Fatalf("expected default roster, got %d employees", len(got))
	}
}

func TestEmployeesRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	roster := []kpi.Employee{{ID: "e1", Name: "Mia", Role: "architect", TargetKPI: 8000}}
	if err := svc.SaveEmployees(ctx, roster); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := svc.Employees(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Mia" || got[0].TargetKPI != 8000 {
		t.Fatalf("roster did not round-trip: %+v", got)
	}
}

func TestEmployeesMigratesLegacyNameList(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	legacy, _ := json.Marshal(map[string]any{
		"version": 1,
		"data":    []string{"Mia", "Ben"},
	})
	if err := store.Set(ctx, "employees", legacy); err != nil {
		t.Fatalf("seed legacy doc: %v", err)
	}

	got, err := svc.Employees(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 migrated employees, got %d", len(got))
	}
	if got[0].Name != "Mia" || got[0].ID == "" {
		t.Fatalf("migration lost fields: %+v", got[0])
	}
	if got[1].TargetKPI != defaultTargetKPI {
		t.Fatalf("migrated employee missing default target: %+v", got[1])
	}
}

func TestWeightConfigDefaultsAndRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cfg, err := svc.WeightConfig(ctx)
	if err != nil {
		t.Fatalf("load default: %v", err)
	}
	if len(cfg.Stages) != 9 {
		t.Fatalf("expected stock 9-stage config, got %d", len(cfg.Stages))
	}

	cfg.Stages[0].Tasks[0].Weight = 50
	if err := svc.SaveWeightConfig(ctx, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := svc.WeightConfig(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Stages[0].Tasks[0].Weight != 50 {
		t.Fatalf("edited weight did not persist: %v", got.Stages[0].Tasks[0])
	}
}

func TestBaseDesignCost(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cost, err := svc.BaseDesignCost(ctx)
	if err != nil {
		t.Fatalf("default cost: %v", err)
	}
	if cost != kpi.DefaultBaseCost {
		t.Fatalf("expected stock cost %v, got %v", kpi.DefaultBaseCost, cost)
	}

	if err := svc.SetBaseDesignCost(ctx, 210); err != nil {
		t.Fatalf("set: %v", err)
	}
	cost, _ = svc.BaseDesignCost(ctx)
	if cost != 210 {
		t.Fatalf("expected 210, got %v", cost)
	}

	if err := svc.SetBaseDesignCost(ctx, -1); err == nil {
		t.Fatalf("negative cost must be rejected")
	}
}

func TestEnsureDefaultsSeedsOnce(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	if err := svc.EnsureDefaults(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := store.Get(ctx, "employees"); err != nil {
		t.Fatalf("employees not seeded: %v", err)
	}

	// Seeding again must not clobber an edited roster.
	if err := svc.SaveEmployees(ctx, []kpi.Employee{{ID: "x", Name: "Edited"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := svc.EnsureDefaults(ctx); err != nil {
		t.Fatalf("reseed: %v", err)
	}
	got, _ := svc.Employees(ctx)
	if len(got) != 1 || got[0].Name != "Edited" {
		t.Fatalf("reseed clobbered the roster: %+v", got)
	}
}

func TestToggleFavorite(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	links, err := svc.ToggleFavorite(ctx, "link-drive")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !links[0].Favorite {
		t.Fatalf("expected link-drive to become a favorite")
	}

	links, err = svc.ToggleFavorite(ctx, "link-drive")
	if err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	if links[0].Favorite {
		t.Fatalf("expected second toggle to clear the favorite")
	}

	if _, err := svc.ToggleFavorite(ctx, "link-missing"); err == nil {
		t.Fatalf("expected an error for an unknown link id")
	}
}
