// Package scope tracks which checklist items are in scope for the
// current working month. Tags are keyed per project, stage and item
// index so the planning views can highlight the agreed monthly focus.
package scope

import (
	"context"
	"fmt"
)

// Key builds the canonical tag key for one checklist item.
func Key(projectID string, stageID, itemIndex int) string {
	return fmt.Sprintf("%s::%d::%d", projectID, stageID, itemIndex)
}

// TagSet is the set of tagged item keys. The map value is always true;
// a key's presence marks the item as in scope.
type TagSet map[string]bool

// Has reports whether the given item carries a monthly scope tag.
func (s TagSet) Has(projectID string, stageID, itemIndex int) bool {
	return s[Key(projectID, stageID, itemIndex)]
}

// Toggle flips the tag for one item and returns the new state.
func (s TagSet) Toggle(projectID string, stageID, itemIndex int) bool {
	k := Key(projectID, stageID, itemIndex)
	if s[k] {
		delete(s, k)
		return false
	}
	s[k] = true
	return true
}

// Keys returns the tagged keys as a slice for serialization.
func (s TagSet) Keys() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	return out
}

// FromKeys rebuilds a TagSet from a stored key list.
func FromKeys(keys []string) TagSet {
	s := make(TagSet, len(keys))
	for _, k := range keys {
		s[k] = true
	}
	return s
}

// Store persists the single shared tag set.
type Store interface {
	Load(ctx context.Context) (TagSet, error)
	Save(ctx context.Context, tags TagSet) error
}

// Service exposes the scope operations used by the HTTP layer.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Tags returns the current tag set.
func (s *Service) Tags(ctx context.Context) (TagSet, error) {
	return s.store.Load(ctx)
}

// Toggle flips one tag and persists the result. It returns the new
// state of the tag.
func (s *Service) Toggle(ctx context.Context, projectID string, stageID, itemIndex int) (bool, error) {
	tags, err := s.store.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("load scope tags: %w", err)
	}
	on := tags.Toggle(projectID, stageID, itemIndex)
	if err := s.store.Save(ctx, tags); err != nil {
		return false, fmt.Errorf("save scope tags: %w", err)
	}
	return on, nil
}

// Clear removes every tag, typically at the start of a new month.
func (s *Service) Clear(ctx context.Context) error {
	return s.store.Save(ctx, TagSet{})
}
