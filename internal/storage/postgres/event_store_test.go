package postgres

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seismic-catalog-lab/internal/domain"
	"seismic-catalog-lab/internal/storage"
)

func testEvent(id string, mag float64, method string) *domain.Event {
	return &domain.Event{
		ID:           id,
		Time:         "2010-03-01 04:05:06",
		Magnitude:    mag,
		Longitude:    28.9,
		Latitude:     40.8,
		DepthKm:      10,
		SampleWeight: 1.0,
		Method:       method,
	}
}

func TestEventStore_InsertAndGet(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewEventStore(pool)
	ctx := context.Background()

	e := testEvent("SYN_PHYS_001", 6.8, domain.MethodPhysics)
	e.RuptureLengthKm = ptr(25.1)
	e.AvgSlipM = ptr(1.4)
	e.SegmentID = ptr("NAF_Central")
	e.Strike = ptr(270.0)

	require.NoError(t, store.Insert(ctx, e))

	got, err := store.GetByID(ctx, "SYN_PHYS_001")
	require.NoError(t, err)
	assert.Equal(t, 6.8, got.Magnitude)
	assert.Equal(t, domain.MethodPhysics, got.Method)
	require.NotNil(t, got.RuptureLengthKm)
	assert.Equal(t, 25.1, *got.RuptureLengthKm)
	require.NotNil(t, got.SegmentID)
	assert.Equal(t, "NAF_Central", *got.SegmentID)
	assert.Nil(t, got.LogEnergy)
}

func TestEventStore_DuplicateKey(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewEventStore(pool)
	ctx := context.Background()

	e := testEvent("EQ_000001", 4.5, domain.MethodReal)
	require.NoError(t, store.Insert(ctx, e))
	assert.ErrorIs(t, store.Insert(ctx, e), storage.ErrDuplicateKey)
}

func TestEventStore_NotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewEventStore(pool)
	_, err := store.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestEventStore_InsertBulkAtomic(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewEventStore(pool)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, testEvent("EQ_000002", 4.0, domain.MethodReal)))

	batch := []*domain.Event{
		testEvent("EQ_000001", 3.9, domain.MethodReal),
		testEvent("EQ_000002", 4.0, domain.MethodReal), // duplicate
	}
	require.ErrorIs(t, store.InsertBulk(ctx, batch), storage.ErrDuplicateKey)

	// The transaction must have rolled back the non-duplicate row.
	_, err := store.GetByID(ctx, "EQ_000001")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestEventStore_QueriesPreserveInsertionOrder(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewEventStore(pool)
	ctx := context.Background()

	var batch []*domain.Event
	for i := 1; i <= 5; i++ {
		batch = append(batch, testEvent(fmt.Sprintf("SYN_SIMPLE_%03d", i), 6.5+float64(i)*0.1, domain.MethodSimple))
	}
	require.NoError(t, store.InsertBulk(ctx, batch))
	require.NoError(t, store.Insert(ctx, testEvent("EQ_000001", 5.5, domain.MethodReal)))

	got, err := store.GetByMethod(ctx, domain.MethodSimple)
	require.NoError(t, err)
	require.Len(t, got, 5)
	for i, e := range got {
		assert.Equal(t, batch[i].ID, e.ID)
	}

	// Half-open magnitude window, like the bootstrap template query.
	window, err := store.GetByMagnitudeRange(ctx, 5.5, 6.7)
	require.NoError(t, err)
	require.Len(t, window, 2)
	assert.Equal(t, "SYN_SIMPLE_001", window[0].ID)
	assert.Equal(t, "EQ_000001", window[1].ID)

	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 6)
}
