package postgres

import (
	"context"
	"fmt"

	"seismic-catalog-lab/internal/domain"
	"seismic-catalog-lab/internal/storage"
)

// FaultSegmentStore implements storage.FaultSegmentStore using PostgreSQL.
// Trace vertices are stored as parallel lon/lat arrays; the encoded
// polyline string never reaches this layer.
type FaultSegmentStore struct {
	pool *Pool
}

// NewFaultSegmentStore creates a new FaultSegmentStore.
func NewFaultSegmentStore(pool *Pool) *FaultSegmentStore {
	return &FaultSegmentStore{pool: pool}
}

// Compile-time interface check.
var _ storage.FaultSegmentStore = (*FaultSegmentStore)(nil)

// Insert adds a new segment. Returns ErrDuplicateKey if segment_id exists.
func (s *FaultSegmentStore) Insert(ctx context.Context, seg *domain.FaultSegment) error {
	if seg == nil || seg.SegmentID == "" || len(seg.Coordinates) < 2 {
		return storage.ErrInvalidInput
	}

	lons := make([]float64, len(seg.Coordinates))
	lats := make([]float64, len(seg.Coordinates))
	for i, c := range seg.Coordinates {
		lons[i] = c.Longitude
		lats[i] = c.Latitude
	}

	query := `
		INSERT INTO fault_segments (
			segment_id, name, lons, lats, strike, dip, rake,
			length_km, seismogenic_thickness_km
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.pool.Exec(ctx, query,
		seg.SegmentID, seg.Name, lons, lats,
		seg.Strike, seg.Dip, seg.Rake,
		seg.LengthKm, seg.SeismogenicThicknessKm,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert fault segment: %w", err)
	}
	return nil
}

// GetByID retrieves a segment by ID. Returns ErrNotFound if not exists.
func (s *FaultSegmentStore) GetByID(ctx context.Context, segmentID string) (*domain.FaultSegment, error) {
	query := `
		SELECT segment_id, name, lons, lats, strike, dip, rake,
		       length_km, seismogenic_thickness_km
		FROM fault_segments
		WHERE segment_id = $1
	`

	var (
		seg        domain.FaultSegment
		lons, lats []float64
	)
	err := s.pool.QueryRow(ctx, query, segmentID).Scan(
		&seg.SegmentID, &seg.Name, &lons, &lats,
		&seg.Strike, &seg.Dip, &seg.Rake,
		&seg.LengthKm, &seg.SeismogenicThicknessKm,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get fault segment by id: %w", err)
	}

	if err := attachCoordinates(&seg, lons, lats); err != nil {
		return nil, err
	}
	return &seg, nil
}

// GetAll retrieves every segment in insertion order.
func (s *FaultSegmentStore) GetAll(ctx context.Context) ([]*domain.FaultSegment, error) {
	query := `
		SELECT segment_id, name, lons, lats, strike, dip, rake,
		       length_km, seismogenic_thickness_km
		FROM fault_segments
		ORDER BY seq ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all fault segments: %w", err)
	}
	defer rows.Close()

	var segments []*domain.FaultSegment
	for rows.Next() {
		var (
			seg        domain.FaultSegment
			lons, lats []float64
		)
		if err := rows.Scan(
			&seg.SegmentID, &seg.Name, &lons, &lats,
			&seg.Strike, &seg.Dip, &seg.Rake,
			&seg.LengthKm, &seg.SeismogenicThicknessKm,
		); err != nil {
			return nil, fmt.Errorf("scan fault segment: %w", err)
		}
		if err := attachCoordinates(&seg, lons, lats); err != nil {
			return nil, err
		}
		segments = append(segments, &seg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate fault segments: %w", err)
	}
	return segments, nil
}

func attachCoordinates(seg *domain.FaultSegment, lons, lats []float64) error {
	if len(lons) != len(lats) {
		return fmt.Errorf("fault segment %s: %d lons vs %d lats", seg.SegmentID, len(lons), len(lats))
	}
	seg.Coordinates = make([]domain.Coordinate, len(lons))
	for i := range lons {
		seg.Coordinates[i] = domain.Coordinate{Longitude: lons[i], Latitude: lats[i]}
	}
	return nil
}
