package catalogio

import (
	"encoding/csv"
	"fmt"
	"io"

	"seismic-catalog-lab/internal/domain"
)

// columnAliases maps canonical catalog columns to the raw-source header
// variants seen in regional catalog exports, in preference order.
var columnAliases = map[string][]string{
	"id":        {"id", "event_id"},
	"time":      {"time", "datetime", "origin_time"},
	"magnitude": {"magnitude", "mag", "mw"},
	"longitude": {"longitude", "lon"},
	"latitude":  {"latitude", "lat"},
	"depth_km":  {"depth_km", "depth"},
}

// PrepareCatalog loads a raw real-event CSV and normalizes it into the
// canonical catalog form: header aliases resolved, EQ_%06d identifiers
// generated when the source has none, radiated-energy proxy
// log10 E = 1.5 M + 4.8 attached, and real-catalog defaults applied.
func PrepareCatalog(r io.Reader) ([]*domain.Event, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading raw catalog header: %w", err)
	}

	raw := indexHeader(header)
	col := make(map[string]int, len(columnAliases))
	for canonical, aliases := range columnAliases {
		for _, alias := range aliases {
			if i, ok := raw[alias]; ok {
				col[canonical] = i
				break
			}
		}
	}
	for _, name := range []string{"time", "magnitude", "longitude", "latitude", "depth_km"} {
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
			return nil, fmt.Errorf("reading raw catalog line %d: %w", line, err)
		}

		get := func(name string) string {
			if i, ok := col[name]; ok && i < len(record) {
				return record[i]
			}
			return ""
		}

		e := &domain.Event{
			ID:           get("id"),
			Time:         get("time"),
			IsSynthetic:  0,
			SampleWeight: domain.WeightReal,
			Method:       domain.MethodReal,
		}
		if e.ID == "" {
			e.ID = fmt.Sprintf("EQ_%06d", len(events)+1)
		}

		if e.Magnitude, err = parseFloatCol(get, "magnitude"); err != nil {
			return nil, fmt.Errorf("raw catalog line %d: %w", line, err)
		}
		if e.Longitude, err = parseFloatCol(get, "longitude"); err != nil {
			return nil, fmt.Errorf("raw catalog line %d: %w", line, err)
		}
		if e.Latitude, err = parseFloatCol(get, "latitude"); err != nil {
			return nil, fmt.Errorf("raw catalog line %d: %w", line, err)
		}
		if e.DepthKm, err = parseFloatCol(get, "depth_km"); err != nil {
			return nil, fmt.Errorf("raw catalog line %d: %w", line, err)
		}

		logEnergy := 1.5*e.Magnitude + 4.8
		e.LogEnergy = &logEnergy

		events = append(events, e)
	}
	return events, nil
}
