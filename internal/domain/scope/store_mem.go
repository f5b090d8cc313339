package scope

import (
	"context"
	"sync"
)

// MemoryStore keeps the tag set in memory for local runs without a
// database.
type MemoryStore struct {
	mu   sync.RWMutex
	tags TagSet
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tags: TagSet{}}
}

func (s *MemoryStore) Load(ctx context.Context) (TagSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(TagSet, len(s.tags))
	for k := range s.tags {
		out[k] = true
	}
	return out, nil
}

func (s *MemoryStore) Save(ctx context.Context, tags TagSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make(TagSet, len(tags))
	for k := range tags {
		copied[k] = true
	}
	s.tags = copied
	return nil
}
