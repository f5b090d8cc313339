package planning

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"studioplan/internal/domain/project"
)

// Service coordinates plan entries with the project checklist.
type Service struct {
	store    Store
	projects *project.Service
}

func NewService(store Store, projects *project.Service) *Service {
	return &Service{store: store, projects: projects}
}

func (s *Service) List(ctx context.Context) ([]Entry, error) {
	return s.store.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (Entry, error) {
	return s.store.Get(ctx, id)
}

// Create validates and persists a new entry. The working window is
// pinned to office hours and the project code is denormalized onto the
// entry for display.
func (s *Service) Create(ctx context.Context, e Entry) (Entry, error) {
	if e.AssignedTo == "" {
		return Entry{}, fmt.Errorf("assignedTo is required")
	}
	if e.TaskType == "" {
		return Entry{}, fmt.Errorf("taskType is required")
	}
	if e.Status == "" {
		e.Status = StatusPlanned
	}
	if !ValidStatus(e.Status) {
		return Entry{}, fmt.Errorf("unknown status %q", e.Status)
	}

	e.ID = uuid.NewString()
	e.StartTime, e.EndTime = NormalizeTimes(e.StartTime, e.EndTime)

	if e.ProjectID != "" {
		p, err := s.projects.Get(ctx, e.ProjectID)
		if err != nil {
			return Entry{}, fmt.Errorf("resolve project: %w", err)
		}
		e.ProjectCode = p.Code
	}

	if err := s.store.Create(ctx, e); err != nil {
		return Entry{}, err
	}
	if e.Status == StatusCompleted {
		if err := s.propagateCompletion(ctx, e); err != nil {
			return Entry{}, err
		}
	}
	return e, nil
}

// Update replaces an entry. A transition into COMPLETED also checks
// the matching checklist item on the project.
func (s *Service) Update(ctx context.Context, e Entry) (Entry, error) {
	prev, err := s.store.Get(ctx, e.ID)
	if err != nil {
		return Entry{}, err
	}
	if !ValidStatus(e.Status) {
		return Entry{}, fmt.Errorf("unknown status %q", e.Status)
	}

	e.StartTime, e.EndTime = NormalizeTimes(e.StartTime, e.EndTime)
	e.ManagerScore = prev.ManagerScore
	e.ManagerComment = prev.ManagerComment
	e.ReviewedAt = prev.ReviewedAt

	if e.ProjectID != "" && e.ProjectID != prev.ProjectID {
		p, err := s.projects.Get(ctx, e.ProjectID)
		if err != nil {
			return Entry{}, fmt.Errorf("resolve project: %w", err)
		}
		e.ProjectCode = p.Code
	}

	if err := s.store.Update(ctx, e); err != nil {
		return Entry{}, err
	}
	if e.Status == StatusCompleted && prev.Status != StatusCompleted {
		if err := s.propagateCompletion(ctx, e); err != nil {
			return Entry{}, err
		}
	}
	return e, nil
}

// Review records the manager's score and comment. Reviewing marks the
// entry COMPLETED if it is not already, with the same checklist
// propagation as a direct completion.
func (s *Service) Review(ctx context.Context, id string, score int, comment string) (Entry, error) {
	e, err := s.store.Get(ctx, id)
	if err != nil {
		return Entry{}, err
	}
	if score < 1 || score > 5 {
		return Entry{}, fmt.Errorf("score must be between 1 and 5")
	}

	wasDone := e.Status == StatusCompleted
	e.Status = StatusCompleted
	e.ManagerScore = &score
	e.ManagerComment = comment
	t := time.Now().UTC()
	e.ReviewedAt = &t

	if err := s.store.Update(ctx, e); err != nil {
		return Entry{}, err
	}
	if !wasDone {
		if err := s.propagateCompletion(ctx, e); err != nil {
			return Entry{}, err
		}
	}
	return e, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// propagateCompletion checks the checklist item the entry maps to.
// Free-form entries and already-checked items are a no-op.
func (s *Service) propagateCompletion(ctx context.Context, e Entry) error {
	ev, ok := EventFor(e)
	if !ok || ev.ProjectID == "" {
		return nil
	}
	p, err := s.projects.Get(ctx, ev.ProjectID)
	if err != nil {
		if errors.Is(err, project.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("load project for completion: %w", err)
	}
	updated, changed := ApplyTaskCompleted(p, ev)
	if !changed {
		return nil
	}
	if _, err := s.projects.Update(ctx, updated); err != nil {
		return fmt.Errorf("propagate task completion: %w", err)
	}
	return nil
}
