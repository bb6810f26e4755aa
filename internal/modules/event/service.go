// README: Pricing event service implements catalog CRUD and applicability filtering.
package event

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"fareflow/internal/types"
)

var (
	ErrNotFound   = errors.New("pricing event not found")
	ErrBadRequest = errors.New("bad request")
)

// Catalog is the persistence surface the service needs; *Store satisfies it.
type Catalog interface {
	Create(ctx context.Context, e *Event) error
	Get(ctx context.Context, id types.ID) (*Event, error)
	List(ctx context.Context) ([]Event, error)
	ListActive(ctx context.Context, at time.Time) ([]Event, error)
	Update(ctx context.Context, e *Event) error
	Delete(ctx context.Context, id types.ID) error
}

type Service struct {
	store Catalog
	areas AreaClassifier
}

func NewService(store Catalog, areas AreaClassifier) *Service {
	if areas == nil {
		areas = NewBoundingBoxClassifier()
	}
	return &Service{store: store, areas: areas}
}

type CreateCommand struct {
	Name         string
	Type         Type
	StartDate    time.Time
	EndDate      time.Time
	Multiplier   float64
	VehicleTypes []string
	Areas        []string
	Description  string
}

func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*Event, error) {
	if cmd.Name == "" || !ValidType(cmd.Type) || cmd.Multiplier <= 0 {
		return nil, ErrBadRequest
	}
	if cmd.StartDate.After(cmd.EndDate) {
		return nil, ErrBadRequest
	}
	now := time.Now()
	e := &Event{
		ID:           types.ID(uuid.NewString()),
		Name:         cmd.Name,
		Type:         cmd.Type,
		StartDate:    cmd.StartDate,
		EndDate:      cmd.EndDate,
		Multiplier:   cmd.Multiplier,
		VehicleTypes: defaultScope(cmd.VehicleTypes),
		Areas:        defaultScope(cmd.Areas),
		Description:  cmd.Description,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Event, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Event, error) {
	return s.store.List(ctx)
}

func (s *Service) Update(ctx context.Context, id types.ID, p Patch) (*Event, error) {
	e, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Name != nil {
		if *p.Name == "" {
			return nil, ErrBadRequest
		}
		e.Name = *p.Name
	}
	if p.Type != nil {
		if !ValidType(*p.Type) {
			return nil, ErrBadRequest
		}
		e.Type = *p.Type
	}
	if p.StartDate != nil {
		e.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		e.EndDate = *p.EndDate
	}
	if e.StartDate.After(e.EndDate) {
		return nil, ErrBadRequest
	}
	if p.Multiplier != nil {
		if *p.Multiplier <= 0 {
			return nil, ErrBadRequest
		}
		e.Multiplier = *p.Multiplier
	}
	if p.VehicleTypes != nil {
		e.VehicleTypes = defaultScope(p.VehicleTypes)
	}
	if p.Areas != nil {
		e.Areas = defaultScope(p.Areas)
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.IsActive != nil {
		e.IsActive = *p.IsActive
	}
	e.UpdatedAt = time.Now()
	if err := s.store.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) Delete(ctx context.Context, id types.ID) error {
	return s.store.Delete(ctx, id)
}

// FindActive returns active events covering at, filtered by vehicle-type name
// and pickup location where supplied. Window ends are inclusive.
func (s *Service) FindActive(ctx context.Context, at time.Time, pickup *types.Point, vehicleTypeName string) ([]Event, error) {
	events, err := s.store.ListActive(ctx, at)
	if err != nil {
		return nil, err
	}
	area := ""
	if pickup != nil {
		area, err = s.areas.Classify(ctx, *pickup)
		if err != nil {
			return nil, err
		}
	}
	var out []Event
	for _, e := range events {
		if e.AppliesTo(vehicleTypeName, area) {
			out = append(out, e)
		}
	}
	return out, nil
}

// FindActiveForDashboard is FindActive pinned to now with no trip filters,
// used for admin visibility.
func (s *Service) FindActiveForDashboard(ctx context.Context) ([]Event, error) {
	return s.FindActive(ctx, time.Now(), nil, "")
}

// ClassifyArea exposes the area strategy so the calculator can tag trips.
func (s *Service) ClassifyArea(ctx context.Context, p types.Point) (string, error) {
	return s.areas.Classify(ctx, p)
}

func defaultScope(scope []string) []string {
	if len(scope) == 0 {
		return []string{ScopeAll}
	}
	return scope
}
