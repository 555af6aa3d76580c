package assembler

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seismic-catalog-lab/internal/domain"
)

func event(id, ts string, mag float64, method string, weight float64) *domain.Event {
	synthetic := 0
	if method != domain.MethodReal && method != "" {
		synthetic = 1
	}
	return &domain.Event{
		ID:           id,
		Time:         ts,
		Magnitude:    mag,
		Longitude:    28.9,
		Latitude:     40.8,
		DepthKm:      10,
		IsSynthetic:  synthetic,
		SampleWeight: weight,
		Method:       method,
	}
}

func newTestAssembler(t *testing.T) *Assembler {
	t.Helper()
	a, err := New(domain.DefaultFoldTable(), nil)
	require.NoError(t, err)
	return a
}

func TestAssemble_CountPreservation(t *testing.T) {
	a := newTestAssembler(t)

	realEvents := make([]*domain.Event, 0, 10)
	for i := 0; i < 10; i++ {
		realEvents = append(realEvents, event(fmt.Sprintf("EQ_%06d", i), "2010-03-01 04:05:06", 4.5, domain.MethodReal, 1.0))
	}
	boot := []*domain.Event{
		event("SYN_EQ_000001", "2010-03-01 04:05:06", 7.1, domain.MethodBootstrap, 0.3),
	}
	phys := []*domain.Event{
		event("SYN_PHYS_001", "2012-01-01 00:00:00", 6.8, domain.MethodPhysics, 0.5),
		event("SYN_PHYS_002", "2019-06-15 12:00:00", 7.0, domain.MethodPhysics, 0.5),
	}

	out, summary, err := a.Assemble(realEvents, boot, phys)
	require.NoError(t, err)
	assert.Len(t, out, 13)
	assert.Equal(t, 13, summary.Total)
	assert.Equal(t, 10, summary.ByMethod[domain.MethodReal])
	assert.Equal(t, 1, summary.ByMethod[domain.MethodBootstrap])
	assert.Equal(t, 2, summary.ByMethod[domain.MethodPhysics])

	// Stable concatenation: real first, then synthetic sets in call order.
	assert.Equal(t, "EQ_000000", out[0].ID)
	assert.Equal(t, "SYN_EQ_000001", out[10].ID)
	assert.Equal(t, "SYN_PHYS_002", out[12].ID)
}

func TestAssemble_RealDefaults(t *testing.T) {
	a := newTestAssembler(t)

	// A bare real-catalog row without synthetic-tracking columns.
	raw := &domain.Event{
		ID: "EQ_000001", Time: "2007-08-09 10:11:12",
		Magnitude: 4.1, Longitude: 27.5, Latitude: 40.6, DepthKm: 8,
	}

	out, _, err := a.Assemble([]*domain.Event{raw})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, domain.MethodReal, out[0].Method)
	assert.Equal(t, 0, out[0].IsSynthetic)
	assert.Equal(t, domain.WeightReal, out[0].SampleWeight)

	// Inputs stay untouched.
	assert.Empty(t, raw.Method)
	assert.Zero(t, raw.SampleWeight)
}

func TestAssemble_FoldAssignment(t *testing.T) {
	a := newTestAssembler(t)

	events := []*domain.Event{
		event("EQ_000001", "2003-01-01 00:00:00", 4.0, domain.MethodReal, 1.0),
		event("EQ_000002", "2008-12-31 23:59:59", 4.0, domain.MethodReal, 1.0),
		event("EQ_000003", "2025-06-01 00:00:00", 4.0, domain.MethodReal, 1.0),
		event("EQ_000004", "1999-06-01 00:00:00", 4.0, domain.MethodReal, 1.0),
	}

	out, _, err := a.Assemble(events)
	require.NoError(t, err)
	assert.Equal(t, 0, out[0].CVFold)
	assert.Equal(t, 1, out[1].CVFold)
	assert.Equal(t, 6, out[2].CVFold)
	assert.Equal(t, -1, out[3].CVFold)
	assert.Equal(t, 1999, out[3].Year)

	// Folds land in {-1} or [0, len(folds)).
	for _, e := range out {
		assert.GreaterOrEqual(t, e.CVFold, -1)
		assert.Less(t, e.CVFold, len(domain.DefaultFoldTable()))
	}
}

func TestAssemble_MagRangeLabels(t *testing.T) {
	a := newTestAssembler(t)

	events := []*domain.Event{
		event("EQ_000001", "2010-01-01 00:00:00", 3.0, domain.MethodReal, 1.0), // at the lowest edge, unbinned
		event("EQ_000002", "2010-01-01 00:00:00", 3.5, domain.MethodReal, 1.0),
		event("EQ_000003", "2010-01-01 00:00:00", 4.0, domain.MethodReal, 1.0), // right-inclusive
		event("EQ_000004", "2010-01-01 00:00:00", 7.3, domain.MethodReal, 1.0),
	}

	out, summary, err := a.Assemble(events)
	require.NoError(t, err)
	assert.Equal(t, "", out[0].MagRange)
	assert.Equal(t, "(3.0,4.0]", out[1].MagRange)
	assert.Equal(t, "(3.0,4.0]", out[2].MagRange)
	assert.Equal(t, "(7.0,8.0]", out[3].MagRange)

	assert.Equal(t, 1, summary.Unbinned)
	assert.Equal(t, 2, summary.Count("(3.0,4.0]", domain.MethodReal))
	assert.Equal(t, 1, summary.Count("(7.0,8.0]", domain.MethodReal))
	assert.Equal(t, 0, summary.Count("(5.0,6.0]", domain.MethodReal))
}

func TestAssemble_UnparsableTime(t *testing.T) {
	a := newTestAssembler(t)

	events := []*domain.Event{
		event("EQ_000001", "not-a-timestamp", 4.0, domain.MethodReal, 1.0),
	}
	_, _, err := a.Assemble(events)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EQ_000001")
	assert.Contains(t, err.Error(), "not-a-timestamp")
}

func TestAssemble_MissingFields(t *testing.T) {
	a := newTestAssembler(t)

	cases := []struct {
		name  string
		event *domain.Event
		field string
	}{
		{"id", event("", "2010-01-01 00:00:00", 4.0, domain.MethodPhysics, 0.5), "id"},
		{"time", event("SYN_PHYS_001", "", 4.0, domain.MethodPhysics, 0.5), "time"},
		{"weight", event("SYN_PHYS_001", "2010-01-01 00:00:00", 4.0, domain.MethodPhysics, 0), "sample_weight"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := a.Assemble(nil, []*domain.Event{tc.event})
			require.ErrorIs(t, err, ErrMissingField)
			assert.Contains(t, err.Error(), tc.field)
		})
	}
}

func TestAssemble_AcceptsDateOnlyTimestamps(t *testing.T) {
	a := newTestAssembler(t)

	out, _, err := a.Assemble([]*domain.Event{
		event("EQ_000001", "2014-07-20", 4.0, domain.MethodReal, 1.0),
	})
	require.NoError(t, err)
	assert.Equal(t, 2014, out[0].Year)
	assert.Equal(t, 3, out[0].CVFold)
}

func TestAssemble_Empty(t *testing.T) {
	a := newTestAssembler(t)
	out, summary, err := a.Assemble(nil)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, 0, summary.Total)
}
