// README: Vehicle type aggregate with embedded pricing columns.
package vehicletype

import (
	"time"

	"fareflow/internal/types"
)

type VehicleType struct {
	ID           types.ID
	Name         string
	Description  string
	PerKmCharges float64
	MinimumFare  float64
	// MaximumFare nil means no cap.
	MaximumFare *float64
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Patch carries a partial update; nil fields are left untouched.
type Patch struct {
	Name         *string
	Description  *string
	PerKmCharges *float64
	MinimumFare  *float64
	MaximumFare  *float64
	ClearMaximum bool
	IsActive     *bool
}
