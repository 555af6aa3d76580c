// Package catalogio adapts the in-memory catalog model to its CSV wire
// forms. All parsing and rendering happens here; core packages never see
// an encoded row. Fatal errors name the missing or malformed column.
package catalogio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"seismic-catalog-lab/internal/domain"
)

var (
	ErrMissingColumn = errors.New("missing required column")
	ErrMalformedRow  = errors.New("malformed row")
)

// catalogColumns is the full assembled-catalog column order.
var catalogColumns = []string{
	"id", "time", "magnitude", "longitude", "latitude", "depth_km",
	"is_synthetic", "sample_weight", "method",
	"rupture_length_km", "rupture_width_km", "rupture_area_km2",
	"avg_slip_m", "log_energy", "segment_id", "strike", "dip", "rake",
	"year", "cv_fold", "mag_range",
}

// WriteCatalog renders events as CSV with the full column set. Nullable
// fields render as empty cells.
func WriteCatalog(w io.Writer, events []*domain.Event) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(catalogColumns); err != nil {
		return err
	}
	for _, e := range events {
		row := []string{
			e.ID,
			e.Time,
			formatFloat(e.Magnitude),
			formatFloat(e.Longitude),
			formatFloat(e.Latitude),
			formatFloat(e.DepthKm),
			strconv.Itoa(e.IsSynthetic),
			formatFloat(e.SampleWeight),
			e.Method,
			formatFloatPtr(e.RuptureLengthKm),
			formatFloatPtr(e.RuptureWidthKm),
			formatFloatPtr(e.RuptureAreaKm2),
			formatFloatPtr(e.AvgSlipM),
			formatFloatPtr(e.LogEnergy),
			formatStringPtr(e.SegmentID),
			formatFloatPtr(e.Strike),
			formatFloatPtr(e.Dip),
			formatFloatPtr(e.Rake),
			strconv.Itoa(e.Year),
			strconv.Itoa(e.CVFold),
			e.MagRange,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCatalog parses an event-catalog CSV. The required columns must all
// be present in the header; rupture and assembly columns are optional so
// per-method synthetic files and fully assembled files share one reader.
func ReadCatalog(r io.Reader) ([]*domain.Event, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading catalog header: %w", err)
	}

	col := indexHeader(header)
	for _, name := range domain.RequiredColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	var events []*domain.Event
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading catalog line %d: %w", line, err)
		}

		e, err := parseEvent(record, col)
		if err != nil {
			return nil, fmt.Errorf("catalog line %d: %w", line, err)
		}
		events = append(events, e)
	}
	return events, nil
}

func parseEvent(record []string, col map[string]int) (*domain.Event, error) {
	get := func(name string) string {
		if i, ok := col[name]; ok && i < len(record) {
			return record[i]
		}
		return ""
	}

	e := &domain.Event{
		ID:     get("id"),
		Time:   get("time"),
		Method: get("method"),
	}

	var err error
	if e.Magnitude, err = parseFloatCol(get, "magnitude"); err != nil {
		return nil, err
	}
	if e.Longitude, err = parseFloatCol(get, "longitude"); err != nil {
		return nil, err
	}
	if e.Latitude, err = parseFloatCol(get, "latitude"); err != nil {
		return nil, err
	}
	if e.DepthKm, err = parseFloatCol(get, "depth_km"); err != nil {
		return nil, err
	}
	if e.SampleWeight, err = parseFloatCol(get, "sample_weight"); err != nil {
		return nil, err
	}
	if e.IsSynthetic, err = parseIntCol(get, "is_synthetic"); err != nil {
		return nil, err
	}

	// Optional numeric columns.
	if e.RuptureLengthKm, err = parseOptFloatCol(get, "rupture_length_km"); err != nil {
		return nil, err
	}
	if e.RuptureWidthKm, err = parseOptFloatCol(get, "rupture_width_km"); err != nil {
		return nil, err
	}
	if e.RuptureAreaKm2, err = parseOptFloatCol(get, "rupture_area_km2"); err != nil {
		return nil, err
	}
	if e.AvgSlipM, err = parseOptFloatCol(get, "avg_slip_m"); err != nil {
		return nil, err
	}
	if e.LogEnergy, err = parseOptFloatCol(get, "log_energy"); err != nil {
		return nil, err
	}
	if e.Strike, err = parseOptFloatCol(get, "strike"); err != nil {
		return nil, err
	}
	if e.Dip, err = parseOptFloatCol(get, "dip"); err != nil {
		return nil, err
	}
	if e.Rake, err = parseOptFloatCol(get, "rake"); err != nil {
		return nil, err
	}
	if s := get("segment_id"); s != "" {
		e.SegmentID = &s
	}

	if s := get("year"); s != "" {
		if e.Year, err = strconv.Atoi(s); err != nil {
			return nil, fmt.Errorf("%w: year %q", ErrMalformedRow, s)
		}
	}
	if s := get("cv_fold"); s != "" {
		if e.CVFold, err = strconv.Atoi(s); err != nil {
			return nil, fmt.Errorf("%w: cv_fold %q", ErrMalformedRow, s)
		}
	}
	e.MagRange = get("mag_range")

	return e, nil
}

func indexHeader(header []string) map[string]int {
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	return col
}

func parseFloatCol(get func(string) string, name string) (float64, error) {
	s := get(name)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", ErrMalformedRow, name, s)
	}
	return v, nil
}

func parseIntCol(get func(string) string, name string) (int, error) {
	s := get(name)
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", ErrMalformedRow, name, s)
	}
	return v, nil
}

func parseOptFloatCol(get func(string) string, name string) (*float64, error) {
	s := get(name)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %q", ErrMalformedRow, name, s)
	}
	return &v, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatFloatPtr(p *float64) string {
	if p == nil {
		return ""
	}
	return formatFloat(*p)
}

func formatStringPtr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
