package planning

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no entry exists for the given id.
var ErrNotFound = errors.New("plan entry not found")

// Store persists plan entries.
type Store interface {
	List(ctx context.Context) ([]Entry, error)
	Get(ctx context.Context, id string) (Entry, error)
	Create(ctx context.Context, e Entry) error
	Update(ctx context.Context, e Entry) error
	Delete(ctx context.Context, id string) error
}
