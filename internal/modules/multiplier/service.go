// README: Multiplier service implements rule CRUD and applicability evaluation.
package multiplier

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"fareflow/internal/types"
)

var (
	ErrNotFound   = errors.New("pricing multiplier not found")
	ErrBadRequest = errors.New("bad request")
)

// RuleSet is the persistence surface the service needs; *Store satisfies it.
type RuleSet interface {
	Create(ctx context.Context, m *Multiplier) error
	Get(ctx context.Context, id types.ID) (*Multiplier, error)
	List(ctx context.Context, vehicleTypeID types.ID, mType Type, activeOnly bool) ([]Multiplier, error)
	Update(ctx context.Context, m *Multiplier) error
	Deactivate(ctx context.Context, id types.ID) error
}

type Service struct {
	store    RuleSet
	holidays HolidayCalendar
	weather  WeatherRule
	demand   DemandGauge
}

// NewService wires the rule predicates. Nil strategies fall back to the
// never-applies defaults.
func NewService(store RuleSet, holidays HolidayCalendar, weather WeatherRule, demand DemandGauge) *Service {
	if holidays == nil {
		holidays = NopHolidayCalendar{}
	}
	if weather == nil {
		weather = NopWeatherRule{}
	}
	if demand == nil {
		demand = NopDemandGauge{}
	}
	return &Service{store: store, holidays: holidays, weather: weather, demand: demand}
}

type CreateCommand struct {
	VehicleTypeID types.ID
	Type          Type
	Value         float64
}

// Create allows duplicate types per vehicle type on purpose; all active
// matching rules apply during calculation.
func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*Multiplier, error) {
	if cmd.VehicleTypeID == "" || !ValidType(cmd.Type) || cmd.Value <= 0 {
		return nil, ErrBadRequest
	}
	now := time.Now()
	m := &Multiplier{
		ID:            types.ID(uuid.NewString()),
		VehicleTypeID: cmd.VehicleTypeID,
		Type:          cmd.Type,
		Value:         cmd.Value,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.store.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Multiplier, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, vehicleTypeID types.ID, mType Type, activeOnly bool) ([]Multiplier, error) {
	if mType != "" && !ValidType(mType) {
		return nil, ErrBadRequest
	}
	return s.store.List(ctx, vehicleTypeID, mType, activeOnly)
}

func (s *Service) Update(ctx context.Context, id types.ID, p Patch) (*Multiplier, error) {
	m, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Type != nil {
		if !ValidType(*p.Type) {
			return nil, ErrBadRequest
		}
		m.Type = *p.Type
	}
	if p.Value != nil {
		if *p.Value <= 0 {
			return nil, ErrBadRequest
		}
		m.Value = *p.Value
	}
	if p.IsActive != nil {
		m.IsActive = *p.IsActive
	}
	m.UpdatedAt = time.Now()
	if err := s.store.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Deactivate is the only delete path; rows are never physically removed.
func (s *Service) Deactivate(ctx context.Context, id types.ID) error {
	return s.store.Deactivate(ctx, id)
}

// Applicable returns the active multipliers for the vehicle type whose
// predicate evaluates true for the trip, preserving store order.
func (s *Service) Applicable(ctx context.Context, vehicleTypeID types.ID, trip TripContext) ([]Multiplier, error) {
	all, err := s.store.List(ctx, vehicleTypeID, "", true)
	if err != nil {
		return nil, err
	}
	var out []Multiplier
	for _, m := range all {
		ok, err := s.applies(ctx, m.Type, trip)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *Service) applies(ctx context.Context, t Type, trip TripContext) (bool, error) {
	switch t {
	case TypePeakHour:
		return isPeakHour(trip), nil
	case TypeWeekend:
		return isWeekend(trip), nil
	case TypeHoliday:
		return s.holidays.IsHoliday(ctx, trip)
	case TypeWeather:
		return s.weather.IsBadWeather(ctx, trip)
	case TypeDemand:
		return s.demand.IsHighDemand(ctx, trip)
	}
	return false, nil
}
