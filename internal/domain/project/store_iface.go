package project

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("project not found")

type Store interface {
	List(ctx context.Context) ([]Project, error)
	Get(ctx context.Context, id string) (Project, error)
	Create(ctx context.Context, p Project) error
	Update(ctx context.Context, p Project) error
	Delete(ctx context.Context, id string) error
}
