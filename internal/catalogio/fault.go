package catalogio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"seismic-catalog-lab/internal/domain"
)

// faultColumns is the fault-segment table column order.
var faultColumns = []string{
	"segment_id", "name", "coordinates", "strike", "dip", "rake",
	"length_km", "seismogenic_thickness_km",
}

// WriteFaultSegments renders segments as CSV, encoding each trace as a
// "lon,lat;lon,lat" polyline.
func WriteFaultSegments(w io.Writer, segments []*domain.FaultSegment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(faultColumns); err != nil {
		return err
	}
	for _, s := range segments {
		row := []string{
			s.SegmentID,
			s.Name,
			EncodePolyline(s.Coordinates),
			formatFloat(s.Strike),
			formatFloat(s.Dip),
			formatFloat(s.Rake),
			formatFloat(s.LengthKm),
			formatFloat(s.SeismogenicThicknessKm),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadFaultSegments parses a fault-segment CSV, decoding polylines into
// ordered coordinate sequences.
func ReadFaultSegments(r io.Reader) ([]*domain.FaultSegment, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading fault header: %w", err)
	}

	col := indexHeader(header)
	for _, name := range []string{"segment_id", "coordinates"} {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	var segments []*domain.FaultSegment
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading fault line %d: %w", line, err)
		}

		s, err := parseSegment(record, col)
		if err != nil {
			return nil, fmt.Errorf("fault line %d: %w", line, err)
		}
		segments = append(segments, s)
	}
	return segments, nil
}

func parseSegment(record []string, col map[string]int) (*domain.FaultSegment, error) {
	get := func(name string) string {
		if i, ok := col[name]; ok && i < len(record) {
			return record[i]
		}
		return ""
	}

	coords, err := DecodePolyline(get("coordinates"))
	if err != nil {
		return nil, err
	}

	s := &domain.FaultSegment{
		SegmentID:   get("segment_id"),
		Name:        get("name"),
		Coordinates: coords,
	}

	for _, f := range []struct {
		name string
		dst  *float64
	}{
		{"strike", &s.Strike},
		{"dip", &s.Dip},
		{"rake", &s.Rake},
		{"length_km", &s.LengthKm},
		{"seismogenic_thickness_km", &s.SeismogenicThicknessKm},
	} {
		raw := get(f.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s %q", ErrMalformedRow, f.name, raw)
		}
		*f.dst = v
	}
	return s, nil
}
