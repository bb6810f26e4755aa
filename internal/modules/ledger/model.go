// README: Immutable fare calculation records and their structured breakdown.
package ledger

import (
	"time"

	"fareflow/internal/types"
)

// AppliedMultiplier records one step of the multiplicative chain, including
// the running fare after the step. The slice order is the application order.
type AppliedMultiplier struct {
	ID        types.ID `json:"id"`
	Type      string   `json:"type"`
	Value     float64  `json:"value"`
	FareAfter float64  `json:"fare_after"`
}

// BaseCalculation echoes the inputs of the base fare formula.
type BaseCalculation struct {
	DistanceKm   float64 `json:"distance_km"`
	PerKmCharges float64 `json:"per_km_charges"`
	BaseFare     float64 `json:"base_fare"`
}

// Constraints records the clamp outcome. The two flags are mutually
// exclusive: a fare cannot be both below the minimum and above the maximum.
type Constraints struct {
	MinimumFare    float64  `json:"minimum_fare"`
	MaximumFare    *float64 `json:"maximum_fare,omitempty"`
	MinimumApplied bool     `json:"minimum_applied"`
	MaximumApplied bool     `json:"maximum_applied"`
}

// TripEcho mirrors the trip context the caller supplied.
type TripEcho struct {
	DepartureTime time.Time   `json:"departure_time"`
	Pickup        types.Point `json:"pickup_location"`
	Dropoff       types.Point `json:"dropoff_location"`
	Weather       string      `json:"weather,omitempty"`
	Area          string      `json:"area,omitempty"`
}

// Details is the full structured breakdown persisted alongside each record.
type Details struct {
	Base        BaseCalculation     `json:"base_calculation"`
	Constraints Constraints         `json:"constraints"`
	Multipliers []AppliedMultiplier `json:"applied_multipliers"`
	Trip        TripEcho            `json:"trip_context"`
}

// Calculation is a ledger entry. Entries are written once and never updated.
type Calculation struct {
	ID            types.ID            `json:"id"`
	TripID        *types.ID           `json:"trip_id,omitempty"`
	VehicleTypeID types.ID            `json:"vehicle_type_id"`
	BaseDistance  float64             `json:"base_distance"`
	BaseFare      float64             `json:"base_fare"`
	Multipliers   []AppliedMultiplier `json:"applied_multipliers"`
	FinalFare     float64             `json:"final_fare"`
	Details       Details             `json:"calculation_details"`
	CreatedAt     time.Time           `json:"created_at"`
}

// Statistics aggregates ledger rows for a vehicle type over a period.
type Statistics struct {
	VehicleTypeID types.ID `json:"vehicle_type_id"`
	PeriodDays    int      `json:"period_days"`
	Count         int64    `json:"count"`
	AvgBaseFare   float64  `json:"avg_base_fare"`
	MinBaseFare   float64  `json:"min_base_fare"`
	MaxBaseFare   float64  `json:"max_base_fare"`
	AvgFinalFare  float64  `json:"avg_final_fare"`
	MinFinalFare  float64  `json:"min_final_fare"`
	MaxFinalFare  float64  `json:"max_final_fare"`
	AvgDistance   float64  `json:"avg_distance"`
	MinDistance   float64  `json:"min_distance"`
	MaxDistance   float64  `json:"max_distance"`
	TotalRevenue  float64  `json:"total_revenue"`
}

// MultiplierUsage counts how often a multiplier type was applied.
type MultiplierUsage struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}
