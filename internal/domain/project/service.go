package project

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) List(ctx context.Context) ([]Project, error) {
	return s.store.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (Project, error) {
	return s.store.Get(ctx, id)
}

type CreateInput struct {
	Year     string
	Name     string
	Code     string
	Metadata Metadata
}

// Create assigns id and code, stamps status, and persists. Projects start
// with empty stage data; Normalize backfills it on first checklist write.
func (s *Service) Create(ctx context.Context, in CreateInput) (Project, error) {
	year := strings.TrimSpace(in.Year)
	if year == "" {
		year = time.Now().Format("2006")
	}
	code := in.Code
	if code == "" {
		existing, err := s.store.List(ctx)
		if err != nil {
			return Project{}, err
		}
		code = NextCode(existing, year, 1)
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = "New project " + year
	}

	p := Project{
		ID:          uuid.NewString(),
		Code:        code,
		Year:        year,
		Name:        name,
		Status:      StatusInProgress,
		Metadata:    in.Metadata,
		StageData:   map[int]StageProgress{},
		LastUpdated: time.Now().UTC(),
	}
	if err := s.store.Create(ctx, p); err != nil {
		return Project{}, err
	}
	return p, nil
}

type BulkLine struct {
	Name    string
	Client  string
	Address string
}

const bulkCreateLimit = 50

// ParseBulkLines reads "name | client | address" lines, capped at 50.
func ParseBulkLines(input string) []BulkLine {
	var lines []BulkLine
	for _, raw := range strings.Split(input, "\n") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		parts := strings.Split(raw, "|")
		line := BulkLine{Name: strings.TrimSpace(parts[0])}
		if len(parts) > 1 {
			line.Client = strings.TrimSpace(parts[1])
		}
		if len(parts) > 2 {
			line.Address = strings.TrimSpace(parts[2])
		}
		if line.Name == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) == bulkCreateLimit {
			break
		}
	}
	return lines
}

// CreateBulk reserves all codes up front so a batch never collides with
// itself, then persists each project in order.
func (s *Service) CreateBulk(ctx context.Context, year string, lines []BulkLine) ([]Project, error) {
	existing, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	codes := NextCodes(existing, year, len(lines))

	now := time.Now().UTC()
	created := make([]Project, 0, len(lines))
	for i, line := range lines {
		p := Project{
			ID:     uuid.NewString(),
			Code:   codes[i],
			Year:   year,
			Name:   line.Name,
			Status: StatusInProgress,
			Metadata: Metadata{
				Client:      line.Client,
				Address:     line.Address,
				HandoffDate: now.Format("2006-01-02"),
			},
			StageData:   map[int]StageProgress{},
			LastUpdated: now,
		}
		if err := s.store.Create(ctx, p); err != nil {
			return created, err
		}
		created = append(created, p)
	}
	return created, nil
}

// Update normalizes stage data and re-derives the stored status string.
func (s *Service) Update(ctx context.Context, p Project) (Project, error) {
	p = Normalize(p)
	p.Status = DeriveStatus(CalculateProgress(p))
	p.LastUpdated = time.Now().UTC()
	if err := s.store.Update(ctx, p); err != nil {
		return Project{}, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
