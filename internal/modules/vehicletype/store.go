// README: Vehicle type store backed by PostgreSQL.
package vehicletype

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

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

func (s *Store) Create(ctx context.Context, vt *VehicleType) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO vehicle_types (
			id, name, description, per_km_charges, minimum_fare, maximum_fare,
			is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		string(vt.ID),
		vt.Name,
		vt.Description,
		vt.PerKmCharges,
		vt.MinimumFare,
		vt.MaximumFare,
		vt.IsActive,
		vt.CreatedAt,
		vt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert vehicle_types: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id types.ID) (*VehicleType, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, description, per_km_charges, minimum_fare, maximum_fare,
		       is_active, created_at, updated_at
		FROM vehicle_types
		WHERE id = $1`, string(id),
	)
	return scanVehicleType(row)
}

func (s *Store) List(ctx context.Context, includeInactive bool) ([]VehicleType, error) {
	q := `
		SELECT id, name, description, per_km_charges, minimum_fare, maximum_fare,
		       is_active, created_at, updated_at
		FROM vehicle_types`
	if !includeInactive {
		q += ` WHERE is_active = TRUE`
	}
	q += ` ORDER BY created_at`

	rows, err := s.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query vehicle_types: %w", err)
	}
	defer rows.Close()

	var out []VehicleType
	for rows.Next() {
		vt, err := scanVehicleType(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *vt)
	}
	return out, rows.Err()
}

func (s *Store) Update(ctx context.Context, vt *VehicleType) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE vehicle_types
		SET name = $1, description = $2, per_km_charges = $3,
		    minimum_fare = $4, maximum_fare = $5, is_active = $6, updated_at = $7
		WHERE id = $8`,
		vt.Name,
		vt.Description,
		vt.PerKmCharges,
		vt.MinimumFare,
		vt.MaximumFare,
		vt.IsActive,
		vt.UpdatedAt,
		string(vt.ID),
	)
	if err != nil {
		return fmt.Errorf("update vehicle_types: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Deactivate soft-deletes a vehicle type and soft-deletes its multipliers in
// one transaction, which is the cascade the ownership model expects.
func (s *Store) Deactivate(ctx context.Context, id types.ID) error {
	return pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE vehicle_types SET is_active = FALSE, updated_at = NOW()
			WHERE id = $1`, string(id),
		)
		if err != nil {
			return fmt.Errorf("deactivate vehicle_types: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		_, err = tx.Exec(ctx, `
			UPDATE pricing_multipliers SET is_active = FALSE, updated_at = NOW()
			WHERE vehicle_type_id = $1`, string(id),
		)
		if err != nil {
			return fmt.Errorf("deactivate pricing_multipliers: %w", err)
		}
		return nil
	})
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVehicleType(row rowScanner) (*VehicleType, error) {
	var vt VehicleType
	var maxFare sql.NullFloat64
	err := row.Scan(
		&vt.ID, &vt.Name, &vt.Description, &vt.PerKmCharges, &vt.MinimumFare,
		&maxFare, &vt.IsActive, &vt.CreatedAt, &vt.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan vehicle_types: %w", err)
	}
	if maxFare.Valid {
		v := maxFare.Float64
		vt.MaximumFare = &v
	}
	return &vt, nil
}
