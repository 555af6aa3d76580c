package clickhouse

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"seismic-catalog-lab/internal/domain"
	"seismic-catalog-lab/internal/storage"
)

// CatalogStore implements storage.CatalogStore using ClickHouse. The
// assembled catalog is the analytic table downstream modeling scans, so
// it lives in the column store. MergeTree does not enforce uniqueness;
// duplicates are rejected by explicit checks before each batch, and a
// per-row seq preserves the assembled order under ORDER BY reads.
type CatalogStore struct {
	conn *Conn
}

// NewCatalogStore creates a new CatalogStore.
func NewCatalogStore(conn *Conn) *CatalogStore {
	return &CatalogStore{conn: conn}
}

// Compile-time interface check.
var _ storage.CatalogStore = (*CatalogStore)(nil)

const catalogSelectColumns = `
	id, time, magnitude, longitude, latitude, depth_km,
	is_synthetic, sample_weight, method,
	rupture_length_km, rupture_width_km, rupture_area_km2,
	avg_slip_m, log_energy, segment_id, strike, dip, rake,
	year, cv_fold, mag_range
`

// InsertBulk adds assembled events. Fails the entire batch on any duplicate.
func (s *CatalogStore) InsertBulk(ctx context.Context, events []*domain.Event) error {
	if len(events) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(events))
	ids := make([]string, 0, len(events))
	for _, e := range events {
		if e == nil || e.ID == "" {
			return storage.ErrInvalidInput
		}
		if _, dup := seen[e.ID]; dup {
			return storage.ErrDuplicateKey
		}
		seen[e.ID] = struct{}{}
		ids = append(ids, e.ID)
	}

	var existing uint64
	if err := s.conn.QueryRow(ctx,
		`SELECT count(*) FROM assembled_catalog WHERE id IN (?)`, ids,
	).Scan(&existing); err != nil {
		return fmt.Errorf("check existing ids: %w", err)
	}
	if existing > 0 {
		return storage.ErrDuplicateKey
	}

	var maxSeq uint64
	if err := s.conn.QueryRow(ctx,
		`SELECT coalesce(max(seq), 0) FROM assembled_catalog`,
	).Scan(&maxSeq); err != nil {
		return fmt.Errorf("read max seq: %w", err)
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO assembled_catalog (
			seq, id, time, magnitude, longitude, latitude, depth_km,
			is_synthetic, sample_weight, method,
			rupture_length_km, rupture_width_km, rupture_area_km2,
			avg_slip_m, log_energy, segment_id, strike, dip, rake,
			year, cv_fold, mag_range
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for i, e := range events {
		err = batch.Append(
			maxSeq+uint64(i)+1,
			e.ID, e.Time, e.Magnitude, e.Longitude, e.Latitude, e.DepthKm,
			uint8(e.IsSynthetic), e.SampleWeight, e.Method,
			e.RuptureLengthKm, e.RuptureWidthKm, e.RuptureAreaKm2,
			e.AvgSlipM, e.LogEnergy, e.SegmentID, e.Strike, e.Dip, e.Rake,
			int32(e.Year), int32(e.CVFold), e.MagRange,
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	return nil
}

// GetByFold retrieves all events assigned to a cross-validation fold.
func (s *CatalogStore) GetByFold(ctx context.Context, fold int) ([]*domain.Event, error) {
	query := `SELECT ` + catalogSelectColumns + `
		FROM assembled_catalog WHERE cv_fold = ? ORDER BY seq ASC`

	rows, err := s.conn.Query(ctx, query, int32(fold))
	if err != nil {
		return nil, fmt.Errorf("query by fold: %w", err)
	}
	defer rows.Close()

	return scanCatalogEvents(rows)
}

// GetByMethod retrieves all events with a given generation method.
func (s *CatalogStore) GetByMethod(ctx context.Context, method string) ([]*domain.Event, error) {
	query := `SELECT ` + catalogSelectColumns + `
		FROM assembled_catalog WHERE method = ? ORDER BY seq ASC`

	rows, err := s.conn.Query(ctx, query, method)
	if err != nil {
		return nil, fmt.Errorf("query by method: %w", err)
	}
	defer rows.Close()

	return scanCatalogEvents(rows)
}

// GetAll retrieves the full assembled catalog in insertion order.
func (s *CatalogStore) GetAll(ctx context.Context) ([]*domain.Event, error) {
	query := `SELECT ` + catalogSelectColumns + `
		FROM assembled_catalog ORDER BY seq ASC`

	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query all: %w", err)
	}
	defer rows.Close()

	return scanCatalogEvents(rows)
}

// Count returns the number of stored events.
func (s *CatalogStore) Count(ctx context.Context) (int, error) {
	var n uint64
	if err := s.conn.QueryRow(ctx, `SELECT count(*) FROM assembled_catalog`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count catalog: %w", err)
	}
	return int(n), nil
}

func scanCatalogEvents(rows driver.Rows) ([]*domain.Event, error) {
	var events []*domain.Event
	for rows.Next() {
		var (
			e           domain.Event
			isSynthetic uint8
			year        int32
			fold        int32
		)
		err := rows.Scan(
			&e.ID, &e.Time, &e.Magnitude, &e.Longitude, &e.Latitude, &e.DepthKm,
			&isSynthetic, &e.SampleWeight, &e.Method,
			&e.RuptureLengthKm, &e.RuptureWidthKm, &e.RuptureAreaKm2,
			&e.AvgSlipM, &e.LogEnergy, &e.SegmentID, &e.Strike, &e.Dip, &e.Rake,
			&year, &fold, &e.MagRange,
		)
		if err != nil {
			return nil, fmt.Errorf("scan catalog event: %w", err)
		}
		e.IsSynthetic = int(isSynthetic)
		e.Year = int(year)
		e.CVFold = int(fold)
		events = append(events, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate catalog events: %w", err)
	}
	return events, nil
}
