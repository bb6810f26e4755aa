// README: Vehicle type service implements catalog validation and persistence.
package vehicletype

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"fareflow/internal/types"
)

var (
	ErrNotFound   = errors.New("vehicle type not found")
	ErrInactive   = errors.New("vehicle type is not active")
	ErrBadRequest = errors.New("bad request")
)

// Catalog is the persistence surface the service needs; *Store satisfies it.
type Catalog interface {
	Create(ctx context.Context, vt *VehicleType) error
	Get(ctx context.Context, id types.ID) (*VehicleType, error)
	List(ctx context.Context, includeInactive bool) ([]VehicleType, error)
	Update(ctx context.Context, vt *VehicleType) error
	Deactivate(ctx context.Context, id types.ID) error
}

type Service struct {
	store Catalog
}

func NewService(store Catalog) *Service {
	return &Service{store: store}
}

type CreateCommand struct {
	Name         string
	Description  string
	PerKmCharges float64
	MinimumFare  float64
	MaximumFare  *float64
}

func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*VehicleType, error) {
	if cmd.Name == "" || cmd.PerKmCharges < 0 || cmd.MinimumFare < 0 {
		return nil, ErrBadRequest
	}
	if cmd.MaximumFare != nil && (*cmd.MaximumFare < 0 || *cmd.MaximumFare < cmd.MinimumFare) {
		return nil, ErrBadRequest
	}
	now := time.Now()
	vt := &VehicleType{
		ID:           types.ID(uuid.NewString()),
		Name:         cmd.Name,
		Description:  cmd.Description,
		PerKmCharges: cmd.PerKmCharges,
		MinimumFare:  cmd.MinimumFare,
		MaximumFare:  cmd.MaximumFare,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.Create(ctx, vt); err != nil {
		return nil, err
	}
	return vt, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*VehicleType, error) {
	return s.store.Get(ctx, id)
}

// GetActive resolves a vehicle type and distinguishes "never existed" from
// "exists but disabled".
func (s *Service) GetActive(ctx context.Context, id types.ID) (*VehicleType, error) {
	vt, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !vt.IsActive {
		return nil, ErrInactive
	}
	return vt, nil
}

func (s *Service) List(ctx context.Context, includeInactive bool) ([]VehicleType, error) {
	return s.store.List(ctx, includeInactive)
}

func (s *Service) Update(ctx context.Context, id types.ID, p Patch) (*VehicleType, error) {
	vt, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Name != nil {
		if *p.Name == "" {
			return nil, ErrBadRequest
		}
		vt.Name = *p.Name
	}
	if p.Description != nil {
		vt.Description = *p.Description
	}
	if p.PerKmCharges != nil {
		if *p.PerKmCharges < 0 {
			return nil, ErrBadRequest
		}
		vt.PerKmCharges = *p.PerKmCharges
	}
	if p.MinimumFare != nil {
		if *p.MinimumFare < 0 {
			return nil, ErrBadRequest
		}
		vt.MinimumFare = *p.MinimumFare
	}
	if p.ClearMaximum {
		vt.MaximumFare = nil
	} else if p.MaximumFare != nil {
		vt.MaximumFare = p.MaximumFare
	}
	if vt.MaximumFare != nil && *vt.MaximumFare < vt.MinimumFare {
		return nil, ErrBadRequest
	}
	if p.IsActive != nil {
		vt.IsActive = *p.IsActive
	}
	vt.UpdatedAt = time.Now()
	if err := s.store.Update(ctx, vt); err != nil {
		return nil, err
	}
	return vt, nil
}

// Deactivate is the only delete path; rows are never physically removed.
func (s *Service) Deactivate(ctx context.Context, id types.ID) error {
	return s.store.Deactivate(ctx, id)
}
