// README: Pricing event aggregate with vehicle/area scoping.
package event

import (
	"time"

	"fareflow/internal/types"
)

type Type string

const (
	TypeSeasonal     Type = "seasonal"
	TypeHoliday      Type = "holiday"
	TypeSpecialEvent Type = "special_event"
	TypeDemandSurge  Type = "demand_surge"
)

func ValidType(t Type) bool {
	switch t {
	case TypeSeasonal, TypeHoliday, TypeSpecialEvent, TypeDemandSurge:
		return true
	}
	return false
}

// ScopeAll is the sentinel meaning "applies to every vehicle type / area".
const ScopeAll = "all"

type Event struct {
	ID         types.ID
	Name       string
	Type       Type
	StartDate  time.Time
	EndDate    time.Time
	Multiplier float64
	// VehicleTypes holds vehicle-type names, or the "all" sentinel.
	VehicleTypes []string
	// Areas holds area tags, or the "all" sentinel.
	Areas       []string
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Covers reports whether the window contains t. Both ends are inclusive.
func (e *Event) Covers(t time.Time) bool {
	return !t.Before(e.StartDate) && !t.After(e.EndDate)
}

// AppliesTo reports whether the event matches the given vehicle type name and
// pickup area. Empty filter values match everything, which lets callers list
// active events without trip context.
func (e *Event) AppliesTo(vehicleTypeName, area string) bool {
	return matchScope(e.VehicleTypes, vehicleTypeName) && matchScope(e.Areas, area)
}

func matchScope(scope []string, value string) bool {
	if value == "" {
		return true
	}
	for _, s := range scope {
		if s == ScopeAll || s == value {
			return true
		}
	}
	return false
}

// Patch carries a partial update; nil fields are left untouched.
type Patch struct {
	Name         *string
	Type         *Type
	StartDate    *time.Time
	EndDate      *time.Time
	Multiplier   *float64
	VehicleTypes []string
	Areas        []string
	Description  *string
	IsActive     *bool
}
