// README: Fare calculation request/response shapes.
package fare

import (
	"time"

	"fareflow/internal/modules/ledger"
	"fareflow/internal/types"
)

type CalculateCommand struct {
	DistanceKm    float64
	VehicleTypeID types.ID
	DepartureTime time.Time
	Pickup        types.Point
	Dropoff       types.Point
	// Weather is optional free-form context for the weather rule.
	Weather string
	// TripID, when set, causes the calculation to be persisted to the ledger.
	TripID *types.ID
}

// VehicleSummary is the vehicle-type excerpt echoed to the caller.
type VehicleSummary struct {
	ID           types.ID `json:"id"`
	Name         string   `json:"name"`
	PerKmCharges float64  `json:"per_km_charges"`
	MinimumFare  float64  `json:"minimum_fare"`
	MaximumFare  *float64 `json:"maximum_fare,omitempty"`
}

type Result struct {
	BaseFare    float64                    `json:"base_fare"`
	FinalFare   float64                    `json:"final_fare"`
	DistanceKm  float64                    `json:"distance_km"`
	VehicleType VehicleSummary             `json:"vehicle_type"`
	Multipliers []ledger.AppliedMultiplier `json:"applied_multipliers"`
	Details     ledger.Details             `json:"calculation_details"`
}
