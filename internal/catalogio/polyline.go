package catalogio

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"seismic-catalog-lab/internal/domain"
)

var ErrMalformedPolyline = errors.New("malformed polyline")

// EncodePolyline renders an ordered vertex sequence as "lon,lat;lon,lat".
// The encoded form exists only in fault-segment tables; everything past
// this package works with parsed coordinates.
func EncodePolyline(coords []domain.Coordinate) string {
	var b strings.Builder
	for i, c := range coords {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(strconv.FormatFloat(c.Longitude, 'f', -1, 64))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(c.Latitude, 'f', -1, 64))
	}
	return b.String()
}

// DecodePolyline parses the "lon,lat;lon,lat" wire form. Unparsable
// vertices are fatal: a fault trace with a corrupt coordinate cannot be
// partially trusted.
func DecodePolyline(s string) ([]domain.Coordinate, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty coordinate string", ErrMalformedPolyline)
	}

	pairs := strings.Split(s, ";")
	coords := make([]domain.Coordinate, 0, len(pairs))
	for i, pair := range pairs {
		parts := strings.Split(strings.TrimSpace(pair), ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w: vertex %d %q", ErrMalformedPolyline, i, pair)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: vertex %d longitude %q", ErrMalformedPolyline, i, parts[0])
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: vertex %d latitude %q", ErrMalformedPolyline, i, parts[1])
		}
		coords = append(coords, domain.Coordinate{Longitude: lon, Latitude: lat})
	}
	return coords, nil
}
