// README: Pricing event store backed by PostgreSQL with JSON scope columns.
package event

import (
	"context"
	"encoding/json"
	"errors"
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

func (s *Store) Create(ctx context.Context, e *Event) error {
	vts, areas, err := marshalScopes(e)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO pricing_events (
			id, event_name, event_type, start_date, end_date, pricing_multiplier,
			affected_vehicle_types, affected_areas, description, is_active,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		string(e.ID),
		e.Name,
		string(e.Type),
		e.StartDate,
		e.EndDate,
		e.Multiplier,
		vts,
		areas,
		e.Description,
		e.IsActive,
		e.CreatedAt,
		e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert pricing_events: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Event, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, event_name, event_type, start_date, end_date, pricing_multiplier,
		       affected_vehicle_types, affected_areas, description, is_active,
		       created_at, updated_at
		FROM pricing_events
		WHERE id = $1`, string(id),
	)
	return scanEvent(row)
}

func (s *Store) List(ctx context.Context) ([]Event, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, event_name, event_type, start_date, end_date, pricing_multiplier,
		       affected_vehicle_types, affected_areas, description, is_active,
		       created_at, updated_at
		FROM pricing_events
		ORDER BY start_date, created_at`)
	if err != nil {
		return nil, fmt.Errorf("query pricing_events: %w", err)
	}
	defer rows.Close()
	return collectEvents(rows)
}

// ListActive returns active events whose window covers at. Both window ends
// are inclusive. Vehicle-type and area scoping is filtered in memory by the
// service, matching the JSON scope columns.
func (s *Store) ListActive(ctx context.Context, at time.Time) ([]Event, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, event_name, event_type, start_date, end_date, pricing_multiplier,
		       affected_vehicle_types, affected_areas, description, is_active,
		       created_at, updated_at
		FROM pricing_events
		WHERE is_active = TRUE AND start_date <= $1 AND end_date >= $1
		ORDER BY start_date, created_at`, at)
	if err != nil {
		return nil, fmt.Errorf("query active pricing_events: %w", err)
	}
	defer rows.Close()
	return collectEvents(rows)
}

func (s *Store) Update(ctx context.Context, e *Event) error {
	vts, areas, err := marshalScopes(e)
	if err != nil {
		return err
	}
	tag, err := s.db.Exec(ctx, `
		UPDATE pricing_events
		SET event_name = $1, event_type = $2, start_date = $3, end_date = $4,
		    pricing_multiplier = $5, affected_vehicle_types = $6, affected_areas = $7,
		    description = $8, is_active = $9, updated_at = $10
		WHERE id = $11`,
		e.Name,
		string(e.Type),
		e.StartDate,
		e.EndDate,
		e.Multiplier,
		vts,
		areas,
		e.Description,
		e.IsActive,
		e.UpdatedAt,
		string(e.ID),
	)
	if err != nil {
		return fmt.Errorf("update pricing_events: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the row. Events are the one catalog entity that hard-deletes.
func (s *Store) Delete(ctx context.Context, id types.ID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM pricing_events WHERE id = $1`, string(id))
	if err != nil {
		return fmt.Errorf("delete pricing_events: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func marshalScopes(e *Event) ([]byte, []byte, error) {
	vts, err := json.Marshal(e.VehicleTypes)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal affected_vehicle_types: %w", err)
	}
	areas, err := json.Marshal(e.Areas)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal affected_areas: %w", err)
	}
	return vts, areas, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*Event, error) {
	var e Event
	var vts, areas []byte
	err := row.Scan(
		&e.ID, &e.Name, &e.Type, &e.StartDate, &e.EndDate, &e.Multiplier,
		&vts, &areas, &e.Description, &e.IsActive, &e.CreatedAt, &e.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan pricing_events: %w", err)
	}
	if err := json.Unmarshal(vts, &e.VehicleTypes); err != nil {
		return nil, fmt.Errorf("unmarshal affected_vehicle_types: %w", err)
	}
	if err := json.Unmarshal(areas, &e.Areas); err != nil {
		return nil, fmt.Errorf("unmarshal affected_areas: %w", err)
	}
	return &e, nil
}

func collectEvents(rows pgx.Rows) ([]Event, error) {
	var out []Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}
