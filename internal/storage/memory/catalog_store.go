package memory

import (
	"context"
	"sync"

	"seismic-catalog-lab/internal/domain"
	"seismic-catalog-lab/internal/storage"
)

// CatalogStore is an in-memory implementation of storage.CatalogStore.
type CatalogStore struct {
	mu    sync.RWMutex
	byID  map[string]*domain.Event
	order []string
}

// NewCatalogStore creates a new in-memory assembled-catalog store.
func NewCatalogStore() *CatalogStore {
	return &CatalogStore{
		byID: make(map[string]*domain.Event),
	}
}

// InsertBulk adds assembled events. Fails the entire batch on any duplicate.
func (s *CatalogStore) InsertBulk(_ context.Context, events []*domain.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

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
		s.byID[e.ID] = e.Clone()
		s.order = append(s.order, e.ID)
	}
	return nil
}

// GetByFold retrieves all events assigned to a cross-validation fold.
func (s *CatalogStore) GetByFold(_ context.Context, fold int) ([]*domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Event
	for _, id := range s.order {
		if e := s.byID[id]; e.CVFold == fold {
			result = append(result, e.Clone())
		}
	}
	return result, nil
}

// GetByMethod retrieves all events with a given generation method.
func (s *CatalogStore) GetByMethod(_ context.Context, method string) ([]*domain.Event, error) {
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

// GetAll retrieves the full assembled catalog in insertion order.
func (s *CatalogStore) GetAll(_ context.Context) ([]*domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Event, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.byID[id].Clone())
	}
	return result, nil
}

// Count returns the number of stored events.
func (s *CatalogStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order), nil
}

var _ storage.CatalogStore = (*CatalogStore)(nil)
