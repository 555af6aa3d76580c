package catalogio

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seismic-catalog-lab/internal/domain"
)

func TestPrepareCatalog_AliasedColumns(t *testing.T) {
	csvText := strings.Join([]string{
		"datetime,mag,lon,lat,depth",
		"2010-03-01 04:05:06,4.5,28.9,40.8,10.2",
		"2011-07-15 23:10:00,5.1,27.4,40.6,7.9",
		"",
	}, "\n")

	events, err := PrepareCatalog(strings.NewReader(csvText))
	require.NoError(t, err)
	require.Len(t, events, 2)

	e := events[0]
	assert.Equal(t, "EQ_000001", e.ID)
	assert.Equal(t, "2010-03-01 04:05:06", e.Time)
	assert.Equal(t, 4.5, e.Magnitude)
	assert.Equal(t, 10.2, e.DepthKm)
	assert.Equal(t, 0, e.IsSynthetic)
	assert.Equal(t, domain.WeightReal, e.SampleWeight)
	assert.Equal(t, domain.MethodReal, e.Method)

	require.NotNil(t, e.LogEnergy)
	assert.InDelta(t, 1.5*4.5+4.8, *e.LogEnergy, 1e-12)

	assert.Equal(t, "EQ_000002", events[1].ID)
}

func TestPrepareCatalog_KeepsSourceIDs(t *testing.T) {
	csvText := strings.Join([]string{
		"id,time,magnitude,longitude,latitude,depth_km",
		"KOERI_1234,2010-03-01 04:05:06,4.5,28.9,40.8,10.2",
		"",
	}, "\n")

	events, err := PrepareCatalog(strings.NewReader(csvText))
	require.NoError(t, err)
	assert.Equal(t, "KOERI_1234", events[0].ID)
}

func TestPrepareCatalog_MissingColumn(t *testing.T) {
	csvText := "datetime,mag,lon,lat\n"
	_, err := PrepareCatalog(strings.NewReader(csvText))
	require.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), "depth_km")
}

func TestPrepareCatalog_EnergyProxyMonotone(t *testing.T) {
	csvText := strings.Join([]string{
		"time,magnitude,longitude,latitude,depth_km",
		"2010-01-01 00:00:00,3.0,28.0,40.5,5",
		"2010-01-02 00:00:00,6.0,28.0,40.5,5",
		"",
	}, "\n")

	events, err := PrepareCatalog(strings.NewReader(csvText))
	require.NoError(t, err)
	// A three-unit magnitude step is 4.5 decades of radiated energy.
	assert.InDelta(t, 4.5, *events[1].LogEnergy-*events[0].LogEnergy, 1e-12)
	assert.False(t, math.IsNaN(*events[0].LogEnergy))
}
