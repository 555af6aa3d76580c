package memory

import (
	"context"
	"sync"

	"seismic-catalog-lab/internal/domain"
	"seismic-catalog-lab/internal/storage"
)

// EventStore is an in-memory implementation of storage.EventStore.
// Insertion order is preserved so that a fixed seed reproduces the same
// catalog row order end to end.
type EventStore struct {
	mu    sync.RWMutex
	byID  map[string]*domain.Event
	order []string
}

// NewEventStore creates a new in-memory event store.
func NewEventStore() *EventStore {
	return &EventStore{
		byID: make(map[string]*domain.Event),
	}
}

// Insert adds a new event. Returns ErrDuplicateKey if the ID exists.
func (s *EventStore) Insert(_ context.Context, e *domain.Event) error {
	if e == nil || e.ID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(e)
}

// InsertBulk adds multiple events. Fails the entire batch on any duplicate.
func (s *EventStore) InsertBulk(_ context.Context, events []*domain.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Validate the whole batch before touching the map.
	seen := make(map[string]struct{}, len(events))
	for _, e := range events {
		if e == nil || e.ID == "" {
			return storage.ErrInvalidInput
		}
		if _, dup := seen[e.ID]; dup {
			return storage.ErrDuplicateKey
		}
		if _, dup := s.byID[e.ID]; dup {
			return storage.ErrDuplicateKey
		}
		seen[e.ID] = struct{}{}
	}
	for _, e := range events {
		if err := s.insertLocked(e); err != nil {
			return err
		}
	}
	return nil
}

func (s *EventStore) insertLocked(e *domain.Event) error {
	if _, exists := s.byID[e.ID]; exists {
		return storage.ErrDuplicateKey
	}
	// Store a copy to prevent external mutation
	s.byID[e.ID] = e.Clone()
	s.order = append(s.order, e.ID)
	return nil
}

// GetByID retrieves an event by ID. Returns ErrNotFound if not exists.
func (s *EventStore) GetByID(_ context.Context, id string) (*domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, exists := s.byID[id]
	if !exists {
		return nil, storage.ErrNotFound
	}
	return e.Clone(), nil
}

// GetByMethod retrieves all events with a given generation method, in
// insertion order.
func (s *EventStore) GetByMethod(_ context.Context, method string) ([]*domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Event
	for _, id := range s.order {
		if e := s.byID[id]; e.Method == method {
			result = append(result, e.Clone())
		}
	}
	return result, nil
}

// GetByMagnitudeRange retrieves events with magnitude in [min, max), in
// insertion order.
func (s *EventStore) GetByMagnitudeRange(_ context.Context, min, max float64) ([]*domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Event
	for _, id := range s.order {
		if e := s.byID[id]; e.Magnitude >= min && e.Magnitude < max {
			result = append(result, e.Clone())
		}
	}
	return result, nil
}

// GetAll retrieves every event in insertion order.
func (s *EventStore) GetAll(_ context.Context) ([]*domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Event, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.byID[id].Clone())
	}
	return result, nil
}

var _ storage.EventStore = (*EventStore)(nil)
