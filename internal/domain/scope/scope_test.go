package scope

import (
	"context"
	"testing"
)

func TestKey(t *testing.T) {
	if got := Key("p1", 3, 7); got != "p1::3::7" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestTagSetToggle(t *testing.T) {
	tags := TagSet{}

	if !tags.Toggle("p1", 1, 0) {
		t.Fatalf("first toggle should tag")
	}
	if !tags.Has("p1", 1, 0) {
		t.Fatalf("tag not present after toggle")
	}
	if tags.Toggle("p1", 1, 0) {
		t.Fatalf("second toggle should untag")
	}
	if tags.Has("p1", 1, 0) {
		t.Fatalf("tag still present after second toggle")
	}
}

func TestServiceTogglePersists(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()

	on, err := svc.Toggle(ctx, "p1", 2, 1)
	if err != nil || !on {
		t.Fatalf("toggle on: %v %v", on, err)
	}

	tags, err := svc.Tags(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !tags.Has("p1", 2, 1) {
		t.Fatalf("toggle did not persist")
	}

	if err := svc.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	tags, _ = svc.Tags(ctx)
	if len(tags) != 0 {
		t.Fatalf("clear left %d tags", len(tags))
	}
}

func TestKeysRoundTrip(t *testing.T) {
	tags := TagSet{}
	tags.Toggle("p1", 1, 0)
	tags.Toggle("p2", 4, 3)

	rebuilt := FromKeys(tags.Keys())
	if len(rebuilt) != 2 || !rebuilt.Has("p2", 4, 3) {
		t.Fatalf("keys did not round-trip: %v", rebuilt)
	}
}
