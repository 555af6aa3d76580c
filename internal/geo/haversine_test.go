package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance_Identity(t *testing.T) {
	assert.Equal(t, 0.0, Distance(28.0, 40.5, 28.0, 40.5))
}

func TestDistance_Symmetry(t *testing.T) {
	points := [][4]float64{
		{26.7, 40.4, 30.0, 40.6},
		{27.2, 40.5, 28.9, 40.9},
		{-74.0, 40.7, 2.35, 48.85},
	}
	for _, p := range points {
		d1 := Distance(p[0], p[1], p[2], p[3])
		d2 := Distance(p[2], p[3], p[0], p[1])
		assert.Equal(t, d1, d2)
	}
}

func TestDistance_TriangleInequality(t *testing.T) {
	a := [2]float64{26.7, 40.4}
	b := [2]float64{28.3, 40.8}
	c := [2]float64{30.0, 40.6}

	ab := Distance(a[0], a[1], b[0], b[1])
	bc := Distance(b[0], b[1], c[0], c[1])
	ac := Distance(a[0], a[1], c[0], c[1])

	assert.LessOrEqual(t, ac, ab+bc+1e-9)
}

func TestDistance_KnownValue(t *testing.T) {
	// One degree of latitude is ~111.2 km on a 6371 km sphere.
	d := Distance(28.0, 40.0, 28.0, 41.0)
	assert.InDelta(t, 111.19, d, 0.1)
}

func TestDistance_NaNPropagates(t *testing.T) {
	assert.True(t, math.IsNaN(Distance(math.NaN(), 40.0, 28.0, 41.0)))
	assert.True(t, math.IsNaN(Distance(28.0, 40.0, 28.0, math.NaN())))
}
