package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"fareflow/internal/types"
)

// memCatalog is an in-memory Catalog double.
type memCatalog struct {
	events []Event
}

func (m *memCatalog) Create(_ context.Context, e *Event) error {
	m.events = append(m.events, *e)
	return nil
}

func (m *memCatalog) Get(_ context.Context, id types.ID) (*Event, error) {
	for _, e := range m.events {
		if e.ID == id {
			cp := e
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memCatalog) List(context.Context) ([]Event, error) {
	return append([]Event(nil), m.events...), nil
}

func (m *memCatalog) ListActive(_ context.Context, at time.Time) ([]Event, error) {
	var out []Event
	for _, e := range m.events {
		if e.IsActive && e.Covers(at) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memCatalog) Update(_ context.Context, u *Event) error {
	for i, e := range m.events {
		if e.ID == u.ID {
			m.events[i] = *u
			return nil
		}
	}
	return ErrNotFound
}

func (m *memCatalog) Delete(_ context.Context, id types.ID) error {
	for i, e := range m.events {
		if e.ID == id {
			m.events = append(m.events[:i], m.events[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

var (
	windowStart = time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	windowEnd   = time.Date(2026, 7, 31, 23, 59, 59, 0, time.UTC)
)

func summerSurge() Event {
	return Event{
		ID:           "e-summer",
		Name:         "Summer Surge",
		Type:         TypeSeasonal,
		StartDate:    windowStart,
		EndDate:      windowEnd,
		Multiplier:   1.5,
		VehicleTypes: []string{"all"},
		Areas:        []string{"all"},
		IsActive:     true,
	}
}

func TestCovers_InclusiveBothEnds(t *testing.T) {
	e := summerSurge()
	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"before window", windowStart.Add(-time.Second), false},
		{"window start", windowStart, true},
		{"inside window", windowStart.AddDate(0, 0, 15), true},
		{"window end", windowEnd, true},
		{"after window", windowEnd.Add(time.Second), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.Covers(tt.at); got != tt.want {
				t.Errorf("Covers(%v) = %v, want %v", tt.at, got, tt.want)
			}
		})
	}
}

func TestAppliesTo_Scoping(t *testing.T) {
	tests := []struct {
		name         string
		vehicleTypes []string
		areas        []string
		vehicle      string
		area         string
		want         bool
	}{
		{"all/all matches anything", []string{"all"}, []string{"all"}, "Sedan", "downtown", true},
		{"vehicle scoped, match", []string{"Sedan"}, []string{"all"}, "Sedan", "midtown", true},
		{"vehicle scoped, miss", []string{"SUV"}, []string{"all"}, "Sedan", "midtown", false},
		{"area scoped, match", []string{"all"}, []string{"airport"}, "Sedan", "airport", true},
		{"area scoped, miss", []string{"all"}, []string{"airport"}, "Sedan", "suburban", false},
		{"empty filters match", []string{"SUV"}, []string{"airport"}, "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := summerSurge()
			e.VehicleTypes = tt.vehicleTypes
			e.Areas = tt.areas
			if got := e.AppliesTo(tt.vehicle, tt.area); got != tt.want {
				t.Errorf("AppliesTo(%q, %q) = %v, want %v", tt.vehicle, tt.area, got, tt.want)
			}
		})
	}
}

func TestBoundingBoxClassifier(t *testing.T) {
	c := NewBoundingBoxClassifier()
	ctx := context.Background()

	tests := []struct {
		name string
		p    types.Point
		want string
	}{
		{"downtown core", types.Point{Lat: 40.71, Lng: -74.00}, "downtown"},
		{"airport", types.Point{Lat: 40.645, Lng: -73.78}, "airport"},
		{"midtown east", types.Point{Lat: 40.755, Lng: -73.97}, "midtown"},
		{"outside all boxes", types.Point{Lat: 41.50, Lng: -73.00}, "suburban"},
		{"box edge is inside", types.Point{Lat: 40.70, Lng: -74.02}, "downtown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Classify(ctx, tt.p)
			if err != nil {
				t.Fatalf("Classify() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Classify(%v) = %q, want %q", tt.p, got, tt.want)
			}
		})
	}
}

func TestFindActive_Filters(t *testing.T) {
	cat := &memCatalog{events: []Event{
		summerSurge(),
		{
			ID: "e-airport", Name: "Airport Surge", Type: TypeDemandSurge,
			StartDate: windowStart, EndDate: windowEnd, Multiplier: 2.0,
			VehicleTypes: []string{"Sedan"}, Areas: []string{"airport"},
			IsActive: true,
		},
		{
			ID: "e-past", Name: "Expired", Type: TypeHoliday,
			StartDate: windowStart.AddDate(-1, 0, 0), EndDate: windowEnd.AddDate(-1, 0, 0),
			Multiplier: 1.2, VehicleTypes: []string{"all"}, Areas: []string{"all"},
			IsActive: true,
		},
		{
			ID: "e-disabled", Name: "Disabled", Type: TypeSpecialEvent,
			StartDate: windowStart, EndDate: windowEnd, Multiplier: 3.0,
			VehicleTypes: []string{"all"}, Areas: []string{"all"},
			IsActive: false,
		},
	}}
	svc := NewService(cat, nil)
	mid := windowStart.AddDate(0, 0, 10)

	t.Run("no trip context returns all covering active events", func(t *testing.T) {
		got, err := svc.FindActive(context.Background(), mid, nil, "")
		if err != nil {
			t.Fatalf("FindActive() error = %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("events = %d, want 2", len(got))
		}
	})

	t.Run("airport pickup in a Sedan matches both", func(t *testing.T) {
		p := types.Point{Lat: 40.645, Lng: -73.78}
		got, err := svc.FindActive(context.Background(), mid, &p, "Sedan")
		if err != nil {
			t.Fatalf("FindActive() error = %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("events = %d, want 2", len(got))
		}
	})

	t.Run("suburban pickup misses the airport event", func(t *testing.T) {
		p := types.Point{Lat: 41.5, Lng: -73.0}
		got, err := svc.FindActive(context.Background(), mid, &p, "Sedan")
		if err != nil {
			t.Fatalf("FindActive() error = %v", err)
		}
		if len(got) != 1 || got[0].ID != "e-summer" {
			t.Fatalf("events = %v, want only e-summer", got)
		}
	})

	t.Run("SUV misses the Sedan-scoped event", func(t *testing.T) {
		p := types.Point{Lat: 40.645, Lng: -73.78}
		got, err := svc.FindActive(context.Background(), mid, &p, "SUV")
		if err != nil {
			t.Fatalf("FindActive() error = %v", err)
		}
		if len(got) != 1 || got[0].ID != "e-summer" {
			t.Fatalf("events = %v, want only e-summer", got)
		}
	})
}

func TestCreate_Validation(t *testing.T) {
	svc := NewService(&memCatalog{}, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		cmd  CreateCommand
	}{
		{"missing name", CreateCommand{Type: TypeSeasonal, StartDate: windowStart, EndDate: windowEnd, Multiplier: 1.5}},
		{"unknown type", CreateCommand{Name: "x", Type: "flash_sale", StartDate: windowStart, EndDate: windowEnd, Multiplier: 1.5}},
		{"start after end", CreateCommand{Name: "x", Type: TypeSeasonal, StartDate: windowEnd, EndDate: windowStart, Multiplier: 1.5}},
		{"non-positive multiplier", CreateCommand{Name: "x", Type: TypeSeasonal, StartDate: windowStart, EndDate: windowEnd, Multiplier: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, tt.cmd); !errors.Is(err, ErrBadRequest) {
				t.Errorf("error = %v, want ErrBadRequest", err)
			}
		})
	}
}

func TestCreate_DefaultsScopesToAll(t *testing.T) {
	cat := &memCatalog{}
	svc := NewService(cat, nil)

	e, err := svc.Create(context.Background(), CreateCommand{
		Name: "New Year", Type: TypeHoliday,
		StartDate: windowStart, EndDate: windowEnd, Multiplier: 1.4,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if len(e.VehicleTypes) != 1 || e.VehicleTypes[0] != ScopeAll {
		t.Errorf("vehicle types = %v, want [all]", e.VehicleTypes)
	}
	if len(e.Areas) != 1 || e.Areas[0] != ScopeAll {
		t.Errorf("areas = %v, want [all]", e.Areas)
	}
}

func TestDelete_IsHard(t *testing.T) {
	cat := &memCatalog{events: []Event{summerSurge()}}
	svc := NewService(cat, nil)

	if err := svc.Delete(context.Background(), "e-summer"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := svc.Get(context.Background(), "e-summer"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}
}
