// README: Pricing multiplier rule definitions per vehicle type.
package multiplier

import (
	"time"

	"fareflow/internal/types"
)

type Type string

const (
	TypePeakHour Type = "peak_hour"
	TypeWeekend  Type = "weekend"
	TypeHoliday  Type = "holiday"
	TypeWeather  Type = "weather"
	TypeDemand   Type = "demand"
)

func ValidType(t Type) bool {
	switch t {
	case TypePeakHour, TypeWeekend, TypeHoliday, TypeWeather, TypeDemand:
		return true
	}
	return false
}

type Multiplier struct {
	ID            types.ID
	VehicleTypeID types.ID
	Type          Type
	Value         float64
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Patch carries a partial update; nil fields are left untouched.
type Patch struct {
	Type     *Type
	Value    *float64
	IsActive *bool
}

// TripContext holds the trip attributes rule predicates evaluate against.
type TripContext struct {
	DepartureTime time.Time
	Pickup        types.Point
	Dropoff       types.Point
	// Weather is free-form caller-supplied context ("rain", "clear", ...).
	Weather string
	// Area is the pickup location's resolved area tag.
	Area string
}
