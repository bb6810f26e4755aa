// README: Calculation ledger store backed by PostgreSQL with JSONB breakdowns.
package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fareflow/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, c *Calculation) error {
	multipliers, err := json.Marshal(c.Multipliers)
	if err != nil {
		return fmt.Errorf("marshal applied_multipliers: %w", err)
	}
	details, err := json.Marshal(c.Details)
	if err != nil {
		return fmt.Errorf("marshal calculation_details: %w", err)
	}
	var tripID *string
	if c.TripID != nil {
		v := string(*c.TripID)
		tripID = &v
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO pricing_calculations (
			id, trip_id, vehicle_type_id, base_distance, base_fare,
			applied_multipliers, final_fare, calculation_details, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		string(c.ID),
		tripID,
		string(c.VehicleTypeID),
		c.BaseDistance,
		c.BaseFare,
		multipliers,
		c.FinalFare,
		details,
		c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert pricing_calculations: %w", err)
	}
	return nil
}

func (s *Store) FindByTripID(ctx context.Context, tripID types.ID) ([]Calculation, error) {
	rows, err := s.db.Query(ctx, selectColumns+`
		FROM pricing_calculations
		WHERE trip_id = $1
		ORDER BY created_at`, string(tripID),
	)
	if err != nil {
		return nil, fmt.Errorf("query pricing_calculations by trip: %w", err)
	}
	defer rows.Close()
	return collectCalculations(rows)
}

// FindByVehicleTypeID pages through a vehicle type's history, optionally
// bounded by a [from, to] creation window. Zero time values disable a bound.
func (s *Store) FindByVehicleTypeID(ctx context.Context, vehicleTypeID types.ID, page, pageSize int, from, to time.Time) ([]Calculation, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}
	q := selectColumns + `
		FROM pricing_calculations
		WHERE vehicle_type_id = $1`
	args := []any{string(vehicleTypeID)}
	if !from.IsZero() {
		args = append(args, from)
		q += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if !to.IsZero() {
		args = append(args, to)
		q += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}
	args = append(args, pageSize, (page-1)*pageSize)
	q += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query pricing_calculations by vehicle type: %w", err)
	}
	defer rows.Close()
	return collectCalculations(rows)
}

func (s *Store) Statistics(ctx context.Context, vehicleTypeID types.ID, periodDays int) (*Statistics, error) {
	if periodDays < 1 {
		periodDays = 30
	}
	since := time.Now().AddDate(0, 0, -periodDays)
	row := s.db.QueryRow(ctx, `
		SELECT COUNT(*),
		       COALESCE(AVG(base_fare), 0), COALESCE(MIN(base_fare), 0), COALESCE(MAX(base_fare), 0),
		       COALESCE(AVG(final_fare), 0), COALESCE(MIN(final_fare), 0), COALESCE(MAX(final_fare), 0),
		       COALESCE(AVG(base_distance), 0), COALESCE(MIN(base_distance), 0), COALESCE(MAX(base_distance), 0),
		       COALESCE(SUM(final_fare), 0)
		FROM pricing_calculations
		WHERE vehicle_type_id = $1 AND created_at >= $2`,
		string(vehicleTypeID), since,
	)
	st := Statistics{VehicleTypeID: vehicleTypeID, PeriodDays: periodDays}
	err := row.Scan(
		&st.Count,
		&st.AvgBaseFare, &st.MinBaseFare, &st.MaxBaseFare,
		&st.AvgFinalFare, &st.MinFinalFare, &st.MaxFinalFare,
		&st.AvgDistance, &st.MinDistance, &st.MaxDistance,
		&st.TotalRevenue,
	)
	if err != nil {
		return nil, fmt.Errorf("scan pricing statistics: %w", err)
	}
	return &st, nil
}

// MultiplierUsage expands the applied_multipliers JSONB array and groups by
// multiplier type within the period.
func (s *Store) MultiplierUsage(ctx context.Context, vehicleTypeID types.ID, periodDays int) ([]MultiplierUsage, error) {
	if periodDays < 1 {
		periodDays = 30
	}
	since := time.Now().AddDate(0, 0, -periodDays)
	rows, err := s.db.Query(ctx, `
		SELECT m->>'type' AS multiplier_type, COUNT(*)
		FROM pricing_calculations,
		     jsonb_array_elements(applied_multipliers) AS m
		WHERE vehicle_type_id = $1 AND created_at >= $2
		GROUP BY multiplier_type
		ORDER BY COUNT(*) DESC, multiplier_type`,
		string(vehicleTypeID), since,
	)
	if err != nil {
		return nil, fmt.Errorf("query multiplier usage: %w", err)
	}
	defer rows.Close()

	var out []MultiplierUsage
	for rows.Next() {
		var u MultiplierUsage
		if err := rows.Scan(&u.Type, &u.Count); err != nil {
			return nil, fmt.Errorf("scan multiplier usage: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

const selectColumns = `
		SELECT id, trip_id, vehicle_type_id, base_distance, base_fare,
		       applied_multipliers, final_fare, calculation_details, created_at`

func collectCalculations(rows pgx.Rows) ([]Calculation, error) {
	var out []Calculation
	for rows.Next() {
		var c Calculation
		var tripID sql.NullString
		var multipliers, details []byte
		err := rows.Scan(
			&c.ID, &tripID, &c.VehicleTypeID, &c.BaseDistance, &c.BaseFare,
			&multipliers, &c.FinalFare, &details, &c.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan pricing_calculations: %w", err)
		}
		if tripID.Valid {
			v := types.ID(tripID.String)
			c.TripID = &v
		}
		if err := json.Unmarshal(multipliers, &c.Multipliers); err != nil {
			return nil, fmt.Errorf("unmarshal applied_multipliers: %w", err)
		}
		if err := json.Unmarshal(details, &c.Details); err != nil {
			return nil, fmt.Errorf("unmarshal calculation_details: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
