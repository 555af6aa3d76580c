package memory

import (
	"context"
	"sync"

	"seismic-catalog-lab/internal/domain"
	"seismic-catalog-lab/internal/storage"
)

// FaultSegmentStore is an in-memory implementation of
// storage.FaultSegmentStore.
type FaultSegmentStore struct {
	mu    sync.RWMutex
	byID  map[string]*domain.FaultSegment
	order []string
}

// NewFaultSegmentStore creates a new in-memory fault segment store.
func NewFaultSegmentStore() *FaultSegmentStore {
	return &FaultSegmentStore{
		byID: make(map[string]*domain.FaultSegment),
	}
}

// Insert adds a new segment. Returns ErrDuplicateKey if segment_id exists.
func (s *FaultSegmentStore) Insert(_ context.Context, seg *domain.FaultSegment) error {
	if seg == nil || seg.SegmentID == "" || len(seg.Coordinates) < 2 {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[seg.SegmentID]; exists {
		return storage.ErrDuplicateKey
	}
	s.byID[seg.SegmentID] = seg.Clone()
	s.order = append(s.order, seg.SegmentID)
	return nil
}

// GetByID retrieves a segment by ID. Returns ErrNotFound if not exists.
func (s *FaultSegmentStore) GetByID(_ context.Context, segmentID string) (*domain.FaultSegment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seg, exists := s.byID[segmentID]
	if !exists {
		return nil, storage.ErrNotFound
	}
	return seg.Clone(), nil
}

// GetAll retrieves every segment in insertion order.
func (s *FaultSegmentStore) GetAll(_ context.Context) ([]*domain.FaultSegment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.FaultSegment, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.byID[id].Clone())
	}
	return result, nil
}

var _ storage.FaultSegmentStore = (*FaultSegmentStore)(nil)
