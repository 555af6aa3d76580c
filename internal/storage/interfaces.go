package storage

import (
	"context"

	"seismic-catalog-lab/internal/domain"
)

// EventStore provides access to prepared and synthetic event storage.
// Events are keyed by ID and grouped by generation method.
type EventStore interface {
	// Insert adds a new event. Returns ErrDuplicateKey if the ID exists.
	Insert(ctx context.Context, e *domain.Event) error

	// InsertBulk adds multiple events. Fails the entire batch on any duplicate.
	InsertBulk(ctx context.Context, events []*domain.Event) error

	// GetByID retrieves an event by ID. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, id string) (*domain.Event, error)

	// GetByMethod retrieves all events with a given generation method,
	// in insertion order.
	GetByMethod(ctx context.Context, method string) ([]*domain.Event, error)

	// GetByMagnitudeRange retrieves events with magnitude in [min, max),
	// in insertion order.
	GetByMagnitudeRange(ctx context.Context, min, max float64) ([]*domain.Event, error)

	// GetAll retrieves every event in insertion order.
	GetAll(ctx context.Context) ([]*domain.Event, error)
}

// FaultSegmentStore provides access to fault reference geometry.
type FaultSegmentStore interface {
	// Insert adds a new segment. Returns ErrDuplicateKey if segment_id exists.
	Insert(ctx context.Context, s *domain.FaultSegment) error

	// GetByID retrieves a segment by ID. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, segmentID string) (*domain.FaultSegment, error)

	// GetAll retrieves every segment in insertion order.
	GetAll(ctx context.Context) ([]*domain.FaultSegment, error)
}

// CatalogStore provides access to assembled-catalog storage, the analytic
// table downstream modeling reads from.
type CatalogStore interface {
	// InsertBulk adds assembled events. Fails the entire batch on any duplicate.
	InsertBulk(ctx context.Context, events []*domain.Event) error

	// GetByFold retrieves all events assigned to a cross-validation fold.
	GetByFold(ctx context.Context, fold int) ([]*domain.Event, error)

	// GetByMethod retrieves all events with a given generation method.
	GetByMethod(ctx context.Context, method string) ([]*domain.Event, error)

	// GetAll retrieves the full assembled catalog in insertion order.
	GetAll(ctx context.Context) ([]*domain.Event, error)

	// Count returns the number of stored events.
	Count(ctx context.Context) (int, error)
}
