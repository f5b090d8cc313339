// Package settings stores the editable application state that is not
// a project or a plan entry: the staff roster, the KPI weight table,
// dashboard links and the base design cost. Every document is a
// versioned JSON envelope so old payloads migrate forward on read.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"studioplan/internal/domain/kpi"
)

// ErrNotFound is returned when a settings document does not exist.
var ErrNotFound = errors.New("settings document not found")

// Store persists raw setting documents by key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, raw []byte) error
}

// Document keys.
const (
	keyEmployees = "employees"
	keyAppLinks  = "app_links"
	keyWeights   = "kpi_weights"
	keyBaseCost  = "base_design_cost"
)

// Current document versions.
const (
	employeesVersion = 2
	appLinksVersion  = 1
	weightsVersion   = 1
	baseCostVersion  = 1
)

// envelope wraps every stored document with its schema version.
type envelope struct {
	Version int             `json:"version"`
	Data    json.RawMessage `json:"data"`
}

// AppLink is one external tool shortcut on the dashboard.
type AppLink struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	URL      string `json:"url"`
	Icon     string `json:"icon,omitempty"`
	Favorite bool   `json:"favorite"`
}

// Service reads and writes typed settings over the raw store.
type Service struct {
	store           Store
	defaultBaseCost float64
}

func NewService(store Store, defaultBaseCost float64) *Service {
	if defaultBaseCost <= 0 {
		defaultBaseCost = kpi.DefaultBaseCost
	}
	return &Service{store: store, defaultBaseCost: defaultBaseCost}
}

func (s *Service) load(ctx context.Context, key string) (envelope, error) {
	raw, err := s.store.Get(ctx, key)
	if err != nil {
		return envelope{}, err
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return envelope{}, fmt.Errorf("decode settings %s: %w", key, err)
	}
	return env, nil
}

func (s *Service) save(ctx context.Context, key string, version int, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode settings %s: %w", key, err)
	}
	raw, err := json.Marshal(envelope{Version: version, Data: payload})
	if err != nil {
		return fmt.Errorf("encode settings envelope %s: %w", key, err)
	}
	return s.store.Set(ctx, key, raw)
}

// Employees returns the staff roster, migrating the legacy name-list
// format forward and falling back to the stock roster when nothing is
// stored.
func (s *Service) Employees(ctx context.Context) ([]kpi.Employee, error) {
	env, err := s.load(ctx, keyEmployees)
	if errors.Is(err, ErrNotFound) {
		return DefaultEmployees(), nil
	}
	if err != nil {
		return nil, err
	}
	return decodeEmployees(env)
}

func decodeEmployees(env envelope) ([]kpi.Employee, error) {
	switch env.Version {
	case 1:
		// v1 stored a bare name list.
		var names []string
		if err := json.Unmarshal(env.Data, &names); err != nil {
			return nil, fmt.Errorf("decode employees v1: %w", err)
		}
		out := make([]kpi.Employee, 0, len(names))
		for i, name := range names {
			out = append(out, kpi.Employee{
				ID:        fmt.Sprintf("emp-%d", i+1),
				Name:      name,
				TargetKPI: defaultTargetKPI,
			})
		}
		return out, nil
	case employeesVersion:
		var out []kpi.Employee
		if err := json.Unmarshal(env.Data, &out); err != nil {
			return nil, fmt.Errorf("decode employees: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unknown employees version %d", env.Version)
	}
}

// SaveEmployees replaces the roster at the current version.
func (s *Service) SaveEmployees(ctx context.Context, employees []kpi.Employee) error {
	return s.save(ctx, keyEmployees, employeesVersion, employees)
}

// AppLinks returns the dashboard shortcuts, defaulting when unset.
func (s *Service) AppLinks(ctx context.Context) ([]AppLink, error) {
	env, err := s.load(ctx, keyAppLinks)
	if errors.Is(err, ErrNotFound) {
		return DefaultAppLinks(), nil
	}
	if err != nil {
		return nil, err
	}
	var out []AppLink
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return nil, fmt.Errorf("decode app links: %w", err)
	}
	return out, nil
}

func (s *Service) SaveAppLinks(ctx context.Context, links []AppLink) error {
	return s.save(ctx, keyAppLinks, appLinksVersion, links)
}

// ToggleFavorite flips the favorite flag on one shortcut and returns
// the updated list.
func (s *Service) ToggleFavorite(ctx context.Context, id string) ([]AppLink, error) {
	links, err := s.AppLinks(ctx)
	if err != nil {
		return nil, err
	}
	found := false
	for i := range links {
		if links[i].ID == id {
			links[i].Favorite = !links[i].Favorite
			found = true
			break
		}
	}
	if !found {
		return nil, ErrNotFound
	}
	if err := s.SaveAppLinks(ctx, links); err != nil {
		return nil, err
	}
	return links, nil
}

// WeightConfig returns the KPI weight table, falling back to the stock
// split derived from the stage definitions.
func (s *Service) WeightConfig(ctx context.Context) (kpi.WeightConfig, error) {
	env, err := s.load(ctx, keyWeights)
	if errors.Is(err, ErrNotFound) {
		return kpi.DefaultConfig(), nil
	}
	if err != nil {
		return kpi.WeightConfig{}, err
	}
	var out kpi.WeightConfig
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return kpi.WeightConfig{}, fmt.Errorf("decode weight config: %w", err)
	}
	return out, nil
}

func (s *Service) SaveWeightConfig(ctx context.Context, cfg kpi.WeightConfig) error {
	return s.save(ctx, keyWeights, weightsVersion, cfg)
}

// BaseDesignCost returns the configured cost per square meter.
func (s *Service) BaseDesignCost(ctx context.Context) (float64, error) {
	env, err := s.load(ctx, keyBaseCost)
	if errors.Is(err, ErrNotFound) {
		return s.defaultBaseCost, nil
	}
	if err != nil {
		return 0, err
	}
	var v float64
	if err := json.Unmarshal(env.Data, &v); err != nil {
		return 0, fmt.Errorf("decode base cost: %w", err)
	}
	if v <= 0 {
		return s.defaultBaseCost, nil
	}
	return v, nil
}

func (s *Service) SetBaseDesignCost(ctx context.Context, cost float64) error {
	if cost <= 0 {
		return fmt.Errorf("base design cost must be positive")
	}
	return s.save(ctx, keyBaseCost, baseCostVersion, cost)
}

// EnsureDefaults seeds every missing document so a fresh database
// starts with a usable roster and weight table.
func (s *Service) EnsureDefaults(ctx context.Context) error {
	if _, err := s.load(ctx, keyEmployees); errors.Is(err, ErrNotFound) {
		if err := s.SaveEmployees(ctx, DefaultEmployees()); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}
	if _, err := s.load(ctx, keyAppLinks); errors.Is(err, ErrNotFound) {
		if err := s.SaveAppLinks(ctx, DefaultAppLinks()); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}
	if _, err := s.load(ctx, keyWeights); errors.Is(err, ErrNotFound) {
		if err := s.SaveWeightConfig(ctx, kpi.DefaultConfig()); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}
	return nil
}
