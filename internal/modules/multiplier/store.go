// README: Pricing multiplier store backed by PostgreSQL.
package multiplier

import (
	"context"
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

func (s *Store) Create(ctx context.Context, m *Multiplier) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO pricing_multipliers (
			id, vehicle_type_id, multiplier_type, multiplier_value,
			is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		string(m.ID),
		string(m.VehicleTypeID),
		string(m.Type),
		m.Value,
		m.IsActive,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert pricing_multipliers: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Multiplier, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, vehicle_type_id, multiplier_type, multiplier_value,
		       is_active, created_at, updated_at
		FROM pricing_multipliers
		WHERE id = $1`, string(id),
	)
	var m Multiplier
	err := row.Scan(&m.ID, &m.VehicleTypeID, &m.Type, &m.Value, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan pricing_multipliers: %w", err)
	}
	return &m, nil
}

// List returns multipliers filtered by vehicle type and/or multiplier type.
// Zero values mean no filter. Rows come back in insertion order, which is the
// order the calculator applies them in.
func (s *Store) List(ctx context.Context, vehicleTypeID types.ID, mType Type, activeOnly bool) ([]Multiplier, error) {
	q := `
		SELECT id, vehicle_type_id, multiplier_type, multiplier_value,
		       is_active, created_at, updated_at
		FROM pricing_multipliers
		WHERE 1=1`
	args := []any{}
	if vehicleTypeID != "" {
		args = append(args, string(vehicleTypeID))
		q += fmt.Sprintf(" AND vehicle_type_id = $%d", len(args))
	}
	if mType != "" {
		args = append(args, string(mType))
		q += fmt.Sprintf(" AND multiplier_type = $%d", len(args))
	}
	if activeOnly {
		q += " AND is_active = TRUE"
	}
	q += " ORDER BY created_at, id"

	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query pricing_multipliers: %w", err)
	}
	defer rows.Close()

	var out []Multiplier
	for rows.Next() {
		var m Multiplier
		if err := rows.Scan(&m.ID, &m.VehicleTypeID, &m.Type, &m.Value, &m.IsActive, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan pricing_multipliers: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *Store) Update(ctx context.Context, m *Multiplier) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE pricing_multipliers
		SET multiplier_type = $1, multiplier_value = $2, is_active = $3, updated_at = $4
		WHERE id = $5`,
		string(m.Type),
		m.Value,
		m.IsActive,
		m.UpdatedAt,
		string(m.ID),
	)
	if err != nil {
		return fmt.Errorf("update pricing_multipliers: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Deactivate(ctx context.Context, id types.ID) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE pricing_multipliers SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1`, string(id),
	)
	if err != nil {
		return fmt.Errorf("deactivate pricing_multipliers: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
