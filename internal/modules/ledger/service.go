// README: Ledger service over the append-only calculation log.
package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"fareflow/internal/types"
)

var ErrBadRequest = errors.New("bad request")

// Log is the persistence surface the service needs; *Store satisfies it.
type Log interface {
	Create(ctx context.Context, c *Calculation) error
	FindByTripID(ctx context.Context, tripID types.ID) ([]Calculation, error)
	FindByVehicleTypeID(ctx context.Context, vehicleTypeID types.ID, page, pageSize int, from, to time.Time) ([]Calculation, error)
	Statistics(ctx context.Context, vehicleTypeID types.ID, periodDays int) (*Statistics, error)
	MultiplierUsage(ctx context.Context, vehicleTypeID types.ID, periodDays int) ([]MultiplierUsage, error)
}

type Service struct {
	store Log
}

func NewService(store Log) *Service {
	return &Service{store: store}
}

// Record appends a calculation. The id and created_at are assigned here;
// everything else is taken as computed by the calculator.
func (s *Service) Record(ctx context.Context, c Calculation) (*Calculation, error) {
	if c.VehicleTypeID == "" {
		return nil, ErrBadRequest
	}
	c.ID = types.ID(uuid.NewString())
	c.CreatedAt = time.Now()
	if err := s.store.Create(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Service) FindByTripID(ctx context.Context, tripID types.ID) ([]Calculation, error) {
	if tripID == "" {
		return nil, ErrBadRequest
	}
	return s.store.FindByTripID(ctx, tripID)
}

func (s *Service) FindByVehicleTypeID(ctx context.Context, vehicleTypeID types.ID, page, pageSize int, from, to time.Time) ([]Calculation, error) {
	if vehicleTypeID == "" {
		return nil, ErrBadRequest
	}
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return nil, ErrBadRequest
	}
	return s.store.FindByVehicleTypeID(ctx, vehicleTypeID, page, pageSize, from, to)
}

func (s *Service) Statistics(ctx context.Context, vehicleTypeID types.ID, periodDays int) (*Statistics, error) {
	if vehicleTypeID == "" {
		return nil, ErrBadRequest
	}
	return s.store.Statistics(ctx, vehicleTypeID, periodDays)
}

func (s *Service) MultiplierUsage(ctx context.Context, vehicleTypeID types.ID, periodDays int) ([]MultiplierUsage, error) {
	if vehicleTypeID == "" {
		return nil, ErrBadRequest
	}
	return s.store.MultiplierUsage(ctx, vehicleTypeID, periodDays)
}
