package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"fareflow/internal/types"
)

// memLog is an in-memory Log double.
type memLog struct {
	entries []Calculation
}

func (m *memLog) Create(_ context.Context, c *Calculation) error {
	m.entries = append(m.entries, *c)
	return nil
}

func (m *memLog) FindByTripID(_ context.Context, tripID types.ID) ([]Calculation, error) {
	var out []Calculation
	for _, c := range m.entries {
		if c.TripID != nil && *c.TripID == tripID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memLog) FindByVehicleTypeID(_ context.Context, vehicleTypeID types.ID, page, pageSize int, from, to time.Time) ([]Calculation, error) {
	var out []Calculation
	for _, c := range m.entries {
		if c.VehicleTypeID == vehicleTypeID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memLog) Statistics(_ context.Context, vehicleTypeID types.ID, periodDays int) (*Statistics, error) {
	st := &Statistics{VehicleTypeID: vehicleTypeID, PeriodDays: periodDays}
	for _, c := range m.entries {
		if c.VehicleTypeID != vehicleTypeID {
			continue
		}
		if st.Count == 0 || c.BaseDistance < st.MinDistance {
			st.MinDistance = c.BaseDistance
		}
		if c.BaseDistance > st.MaxDistance {
			st.MaxDistance = c.BaseDistance
		}
		st.Count++
		st.AvgDistance += c.BaseDistance
		st.TotalRevenue += c.FinalFare
	}
	if st.Count > 0 {
		st.AvgDistance /= float64(st.Count)
	}
	return st, nil
}

func (m *memLog) MultiplierUsage(_ context.Context, vehicleTypeID types.ID, periodDays int) ([]MultiplierUsage, error) {
	counts := map[string]int64{}
	for _, c := range m.entries {
		if c.VehicleTypeID != vehicleTypeID {
			continue
		}
		for _, am := range c.Multipliers {
			counts[am.Type]++
		}
	}
	var out []MultiplierUsage
	for t, n := range counts {
		out = append(out, MultiplierUsage{Type: t, Count: n})
	}
	return out, nil
}

func TestRecord_RoundTripByTripID(t *testing.T) {
	log := &memLog{}
	svc := NewService(log)
	ctx := context.Background()

	tripID := types.ID("trip-7")
	applied := []AppliedMultiplier{
		{ID: "m1", Type: "peak_hour", Value: 1.25, FareAfter: 31.25},
	}
	recorded, err := svc.Record(ctx, Calculation{
		TripID:        &tripID,
		VehicleTypeID: "vt-1",
		BaseDistance:  10,
		BaseFare:      25,
		Multipliers:   applied,
		FinalFare:     31.25,
	})
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if recorded.ID == "" {
		t.Error("Record() did not assign an id")
	}
	if recorded.CreatedAt.IsZero() {
		t.Error("Record() did not assign created_at")
	}

	found, err := svc.FindByTripID(ctx, tripID)
	if err != nil {
		t.Fatalf("FindByTripID() error = %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("found = %d entries, want 1", len(found))
	}
	got := found[0]
	if got.FinalFare != 31.25 {
		t.Errorf("final fare = %v, want 31.25", got.FinalFare)
	}
	if len(got.Multipliers) != 1 || got.Multipliers[0] != applied[0] {
		t.Errorf("applied multipliers = %v, want %v", got.Multipliers, applied)
	}
}

func TestRecord_RequiresVehicleType(t *testing.T) {
	svc := NewService(&memLog{})
	if _, err := svc.Record(context.Background(), Calculation{}); !errors.Is(err, ErrBadRequest) {
		t.Errorf("error = %v, want ErrBadRequest", err)
	}
}

func TestFindByVehicleTypeID_RejectsInvertedRange(t *testing.T) {
	svc := NewService(&memLog{})
	from := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, -1, 0)
	_, err := svc.FindByVehicleTypeID(context.Background(), "vt-1", 1, 50, from, to)
	if !errors.Is(err, ErrBadRequest) {
		t.Errorf("error = %v, want ErrBadRequest", err)
	}
}

func TestStatistics_DistanceAggregates(t *testing.T) {
	log := &memLog{}
	svc := NewService(log)
	ctx := context.Background()

	for _, d := range []float64{10, 2, 5} {
		_, err := svc.Record(ctx, Calculation{
			VehicleTypeID: "vt-1",
			BaseDistance:  d,
			BaseFare:      d * 2.5,
			FinalFare:     d * 2.5,
		})
		if err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	st, err := svc.Statistics(ctx, "vt-1", 30)
	if err != nil {
		t.Fatalf("Statistics() error = %v", err)
	}
	if st.MinDistance != 2 || st.MaxDistance != 10 {
		t.Errorf("distance bounds = [%v, %v], want [2, 10]", st.MinDistance, st.MaxDistance)
	}
	if diff := st.AvgDistance - 17.0/3; diff < -1e-9 || diff > 1e-9 {
		t.Errorf("avg distance = %v, want %v", st.AvgDistance, 17.0/3)
	}
}

func TestMultiplierUsage_CountsByType(t *testing.T) {
	log := &memLog{}
	svc := NewService(log)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		tripID := types.ID("trip")
		_, err := svc.Record(ctx, Calculation{
			TripID:        &tripID,
			VehicleTypeID: "vt-1",
			BaseFare:      25,
			FinalFare:     31.25,
			Multipliers: []AppliedMultiplier{
				{ID: "m1", Type: "peak_hour", Value: 1.25, FareAfter: 31.25},
			},
		})
		if err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	usage, err := svc.MultiplierUsage(ctx, "vt-1", 30)
	if err != nil {
		t.Fatalf("MultiplierUsage() error = %v", err)
	}
	if len(usage) != 1 || usage[0].Type != "peak_hour" || usage[0].Count != 3 {
		t.Errorf("usage = %v, want peak_hour x3", usage)
	}
}
