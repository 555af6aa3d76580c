package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"seismic-catalog-lab/internal/domain"
	"seismic-catalog-lab/internal/storage"
)

// EventStore implements storage.EventStore using PostgreSQL. A serial
// seq column preserves insertion order across reads.
type EventStore struct {
	pool *Pool
}

// NewEventStore creates a new EventStore.
func NewEventStore(pool *Pool) *EventStore {
	return &EventStore{pool: pool}
}

// Compile-time interface check.
var _ storage.EventStore = (*EventStore)(nil)

const eventColumns = `
	id, time, magnitude, longitude, latitude, depth_km,
	is_synthetic, sample_weight, method,
	rupture_length_km, rupture_width_km, rupture_area_km2,
	avg_slip_m, log_energy, segment_id, strike, dip, rake
`

const insertEventQuery = `
	INSERT INTO events (
		id, time, magnitude, longitude, latitude, depth_km,
		is_synthetic, sample_weight, method,
		rupture_length_km, rupture_width_km, rupture_area_km2,
		avg_slip_m, log_energy, segment_id, strike, dip, rake
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
`

// Insert adds a new event. Returns ErrDuplicateKey if the ID exists.
func (s *EventStore) Insert(ctx context.Context, e *domain.Event) error {
	if e == nil || e.ID == "" {
		return storage.ErrInvalidInput
	}

	_, err := s.pool.Exec(ctx, insertEventQuery, eventArgs(e)...)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// InsertBulk adds multiple events in one transaction. Fails the entire
// batch on any duplicate.
func (s *EventStore) InsertBulk(ctx context.Context, events []*domain.Event) error {
	if len(events) == 0 {
		return nil
	}
	for _, e := range events {
		if e == nil || e.ID == "" {
			return storage.ErrInvalidInput
		}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin bulk insert: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, e := range events {
		if _, err := tx.Exec(ctx, insertEventQuery, eventArgs(e)...); err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("bulk insert event %s: %w", e.ID, err)
		}
	}
	return tx.Commit(ctx)
}

// GetByID retrieves an event by ID. Returns ErrNotFound if not exists.
func (s *EventStore) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	row := s.pool.QueryRow(ctx, query, id)
	e, err := scanEvent(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get event by id: %w", err)
	}
	return e, nil
}

// GetByMethod retrieves all events with a given generation method, in
// insertion order.
func (s *EventStore) GetByMethod(ctx context.Context, method string) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE method = $1 ORDER BY seq ASC`

	rows, err := s.pool.Query(ctx, query, method)
	if err != nil {
		return nil, fmt.Errorf("get events by method: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// GetByMagnitudeRange retrieves events with magnitude in [min, max), in
// insertion order.
func (s *EventStore) GetByMagnitudeRange(ctx context.Context, min, max float64) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE magnitude >= $1 AND magnitude < $2 ORDER BY seq ASC`

	rows, err := s.pool.Query(ctx, query, min, max)
	if err != nil {
		return nil, fmt.Errorf("get events by magnitude range: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// GetAll retrieves every event in insertion order.
func (s *EventStore) GetAll(ctx context.Context) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY seq ASC`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

func eventArgs(e *domain.Event) []any {
	return []any{
		e.ID, e.Time, e.Magnitude, e.Longitude, e.Latitude, e.DepthKm,
		e.IsSynthetic, e.SampleWeight, e.Method,
		e.RuptureLengthKm, e.RuptureWidthKm, e.RuptureAreaKm2,
		e.AvgSlipM, e.LogEnergy, e.SegmentID, e.Strike, e.Dip, e.Rake,
	}
}

func scanEvent(row pgx.Row) (*domain.Event, error) {
	var e domain.Event
	err := row.Scan(
		&e.ID, &e.Time, &e.Magnitude, &e.Longitude, &e.Latitude, &e.DepthKm,
		&e.IsSynthetic, &e.SampleWeight, &e.Method,
		&e.RuptureLengthKm, &e.RuptureWidthKm, &e.RuptureAreaKm2,
		&e.AvgSlipM, &e.LogEnergy, &e.SegmentID, &e.Strike, &e.Dip, &e.Rake,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func scanEvents(rows pgx.Rows) ([]*domain.Event, error) {
	var events []*domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}
