// README: Fare calculator composes base rate, rule multipliers, events, and clamping.
package fare

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"fareflow/internal/modules/event"
	"fareflow/internal/modules/ledger"
	"fareflow/internal/modules/multiplier"
	"fareflow/internal/modules/vehicletype"
	"fareflow/internal/types"
)

var ErrInvalidDistance = errors.New("distance must be greater than zero")

// VehicleTypes resolves an active vehicle type for pricing.
type VehicleTypes interface {
	GetActive(ctx context.Context, id types.ID) (*vehicletype.VehicleType, error)
}

// Multipliers returns the active rule multipliers that apply to a trip.
type Multipliers interface {
	Applicable(ctx context.Context, vehicleTypeID types.ID, trip multiplier.TripContext) ([]multiplier.Multiplier, error)
}

// Events returns qualifying pricing events and resolves pickup areas.
type Events interface {
	FindActive(ctx context.Context, at time.Time, pickup *types.Point, vehicleTypeName string) ([]event.Event, error)
	ClassifyArea(ctx context.Context, p types.Point) (string, error)
}

// Recorder appends calculation records to the ledger.
type Recorder interface {
	Record(ctx context.Context, c ledger.Calculation) (*ledger.Calculation, error)
}

type Service struct {
	vehicles    VehicleTypes
	multipliers Multipliers
	events      Events
	recorder    Recorder
	log         *slog.Logger
}

func NewService(vehicles VehicleTypes, multipliers Multipliers, events Events, recorder Recorder, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		vehicles:    vehicles,
		multipliers: multipliers,
		events:      events,
		recorder:    recorder,
		log:         log,
	}
}

// Calculate prices a trip. The multiplier chain compounds in order: rule
// multipliers in store order first, then qualifying events, then the min/max
// clamp, then rounding to two decimals. All reads happen before the single
// optional ledger write; a failed write fails the whole call so served fares
// and the audit trail never diverge.
func (s *Service) Calculate(ctx context.Context, cmd CalculateCommand) (*Result, error) {
	if cmd.DistanceKm <= 0 {
		return nil, ErrInvalidDistance
	}

	vt, err := s.vehicles.GetActive(ctx, cmd.VehicleTypeID)
	if err != nil {
		return nil, err
	}

	area, err := s.events.ClassifyArea(ctx, cmd.Pickup)
	if err != nil {
		return nil, fmt.Errorf("classify pickup area: %w", err)
	}

	trip := multiplier.TripContext{
		DepartureTime: cmd.DepartureTime,
		Pickup:        cmd.Pickup,
		Dropoff:       cmd.Dropoff,
		Weather:       cmd.Weather,
		Area:          area,
	}

	baseFare := round2(cmd.DistanceKm * vt.PerKmCharges)
	running := baseFare

	rules, err := s.multipliers.Applicable(ctx, vt.ID, trip)
	if err != nil {
		return nil, err
	}
	applied := make([]ledger.AppliedMultiplier, 0, len(rules))
	for _, m := range rules {
		running *= m.Value
		applied = append(applied, ledger.AppliedMultiplier{
			ID:        m.ID,
			Type:      string(m.Type),
			Value:     m.Value,
			FareAfter: round2(running),
		})
	}

	events, err := s.events.FindActive(ctx, cmd.DepartureTime, &cmd.Pickup, vt.Name)
	if err != nil {
		return nil, err
	}
	for _, e := range events {
		running *= e.Multiplier
		applied = append(applied, ledger.AppliedMultiplier{
			ID:        e.ID,
			Type:      "event:" + string(e.Type),
			Value:     e.Multiplier,
			FareAfter: round2(running),
		})
	}

	minApplied, maxApplied := false, false
	if running < vt.MinimumFare {
		running = vt.MinimumFare
		minApplied = true
	} else if vt.MaximumFare != nil && running > *vt.MaximumFare {
		running = *vt.MaximumFare
		maxApplied = true
	}
	finalFare := round2(running)

	details := ledger.Details{
		Base: ledger.BaseCalculation{
			DistanceKm:   cmd.DistanceKm,
			PerKmCharges: vt.PerKmCharges,
			BaseFare:     baseFare,
		},
		Constraints: ledger.Constraints{
			MinimumFare:    vt.MinimumFare,
			MaximumFare:    vt.MaximumFare,
			MinimumApplied: minApplied,
			MaximumApplied: maxApplied,
		},
		Multipliers: applied,
		Trip: ledger.TripEcho{
			DepartureTime: cmd.DepartureTime,
			Pickup:        cmd.Pickup,
			Dropoff:       cmd.Dropoff,
			Weather:       cmd.Weather,
			Area:          area,
		},
	}

	if cmd.TripID != nil {
		_, err := s.recorder.Record(ctx, ledger.Calculation{
			TripID:        cmd.TripID,
			VehicleTypeID: vt.ID,
			BaseDistance:  cmd.DistanceKm,
			BaseFare:      baseFare,
			Multipliers:   applied,
			FinalFare:     finalFare,
			Details:       details,
		})
		if err != nil {
			s.log.Error("ledger write failed",
				"trip_id", string(*cmd.TripID),
				"vehicle_type_id", string(vt.ID),
				"err", err,
			)
			return nil, fmt.Errorf("record calculation: %w", err)
		}
	}

	return &Result{
		BaseFare:   baseFare,
		FinalFare:  finalFare,
		DistanceKm: cmd.DistanceKm,
		VehicleType: VehicleSummary{
			ID:           vt.ID,
			Name:         vt.Name,
			PerKmCharges: vt.PerKmCharges,
			MinimumFare:  vt.MinimumFare,
			MaximumFare:  vt.MaximumFare,
		},
		Multipliers: applied,
		Details:     details,
	}, nil
}

// round2 rounds half away from zero, which is half-up for non-negative fares.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
